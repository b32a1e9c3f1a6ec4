/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rivulet Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package values defines the runtime values flowing through expression
// evaluation. Absence ("no data here") is a first-class value, distinct
// from the optional marker on static types.
package values

import (
	"strconv"
	"time"

	"github.com/google/rivulet/core/dtype"
)

// Value represents a runtime value.
type Value struct {
	typ     valueType
	intVal  int64
	numVal  float64
	strVal  string
	boolVal bool
}

type valueType int

const (
	typeNone     valueType = iota // Absent value
	typeInt                       // Integer value
	typeFloat                     // Floating-point value
	typeString                    // String value
	typeBool                      // Boolean value
	typeDuration                  // Duration in nanoseconds
	typeDatetime                  // Datetime as Unix nanoseconds
)

// None returns the absent value.
func None() Value {
	return Value{typ: typeNone}
}

// NewInt creates an integer value.
func NewInt(n int64) Value {
	return Value{typ: typeInt, intVal: n}
}

// NewFloat creates a floating-point value.
func NewFloat(n float64) Value {
	return Value{typ: typeFloat, numVal: n}
}

// NewString creates a string value.
func NewString(s string) Value {
	return Value{typ: typeString, strVal: s}
}

// NewBool creates a boolean value.
func NewBool(b bool) Value {
	return Value{typ: typeBool, boolVal: b}
}

// NewDuration creates a duration value (nanoseconds).
func NewDuration(nanos int64) Value {
	return Value{typ: typeDuration, intVal: nanos}
}

// NewDatetime creates a datetime value (Unix nanoseconds).
func NewDatetime(unixNanos int64) Value {
	return Value{typ: typeDatetime, intVal: unixNanos}
}

// IsNone checks if the value is absent.
func (v Value) IsNone() bool { return v.typ == typeNone }

// IsInt checks if value is an integer.
func (v Value) IsInt() bool { return v.typ == typeInt }

// IsFloat checks if value is a floating-point number.
func (v Value) IsFloat() bool { return v.typ == typeFloat }

// IsString checks if value is a string.
func (v Value) IsString() bool { return v.typ == typeString }

// IsBool checks if value is a boolean.
func (v Value) IsBool() bool { return v.typ == typeBool }

// IsDuration checks if value is a duration.
func (v Value) IsDuration() bool { return v.typ == typeDuration }

// IsDatetime checks if value is a datetime.
func (v Value) IsDatetime() bool { return v.typ == typeDatetime }

// AsInt returns the integer value.
func (v Value) AsInt() int64 {
	switch v.typ {
	case typeInt:
		return v.intVal
	case typeFloat:
		return int64(v.numVal)
	case typeDuration, typeDatetime:
		return v.intVal
	default:
		return 0
	}
}

// AsFloat returns the floating-point value.
func (v Value) AsFloat() float64 {
	switch v.typ {
	case typeFloat:
		return v.numVal
	case typeInt:
		return float64(v.intVal)
	case typeDuration, typeDatetime:
		return float64(v.intVal)
	default:
		return 0
	}
}

// AsBool returns the boolean value.
func (v Value) AsBool() bool { return v.boolVal }

// AsDuration returns the duration value.
func (v Value) AsDuration() time.Duration { return time.Duration(v.intVal) }

// AsDatetime returns the datetime value as time.Time.
func (v Value) AsDatetime() time.Time { return time.Unix(0, v.intVal) }

// AsString returns the string value, formatting non-string values for
// display. Absent values format as "None".
func (v Value) AsString() string {
	switch v.typ {
	case typeString:
		return v.strVal
	case typeInt:
		return strconv.FormatInt(v.intVal, 10)
	case typeFloat:
		return strconv.FormatFloat(v.numVal, 'g', -1, 64)
	case typeBool:
		if v.boolVal {
			return "True"
		}
		return "False"
	case typeDuration:
		return time.Duration(v.intVal).String()
	case typeDatetime:
		return time.Unix(0, v.intVal).Format(time.RFC3339)
	default:
		return "None"
	}
}

// TypeOf returns the static type inferred from a runtime value. Absent
// values have no base type of their own; they infer as the unbound
// optional type.
func TypeOf(v Value) dtype.Type {
	switch v.typ {
	case typeInt:
		return dtype.Int()
	case typeFloat:
		return dtype.Float()
	case typeString:
		return dtype.String()
	case typeBool:
		return dtype.Bool()
	case typeDuration:
		return dtype.Duration()
	case typeDatetime:
		return dtype.DateTime()
	default:
		return dtype.Unbound()
	}
}
