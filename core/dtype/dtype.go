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

// Package dtype describes the static types of columns and expressions.
// Types are plain values compared structurally; an optional flag marks
// columns and expressions that may hold no data for a row.
package dtype

// Kind identifies a primitive type.
type Kind int

const (
	KindUnbound  Kind = iota // type of a bare absence literal, carries no base type
	KindString               // String value
	KindInt                  // Integer value
	KindFloat                // Floating-point value
	KindBool                 // Boolean value
	KindDateTime             // Datetime value (Unix nanoseconds)
	KindDuration             // Duration value (nanoseconds)
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDateTime:
		return "datetime"
	case KindDuration:
		return "duration"
	case KindUnbound:
		return "unbound"
	default:
		return "unknown"
	}
}

// Type describes the static type of a column or expression: a primitive
// kind, possibly optional. The zero value is the non-optional unbound type
// and should not appear outside this package; use the constructors.
type Type struct {
	kind     Kind
	optional bool
}

// String returns the string type.
func String() Type { return Type{kind: KindString} }

// Int returns the integer type.
func Int() Type { return Type{kind: KindInt} }

// Float returns the floating-point type.
func Float() Type { return Type{kind: KindFloat} }

// Bool returns the boolean type.
func Bool() Type { return Type{kind: KindBool} }

// DateTime returns the datetime type.
func DateTime() Type { return Type{kind: KindDateTime} }

// Duration returns the duration type.
func Duration() Type { return Type{kind: KindDuration} }

// Unbound returns the type of a bare absence literal. It is always
// optional: absence carries no base type of its own.
func Unbound() Type { return Type{kind: KindUnbound, optional: true} }

// Optional returns the optional version of t. Optional types do not nest:
// Optional(Optional(t)) is the same value as Optional(t).
func Optional(t Type) Type {
	t.optional = true
	return t
}

// Kind returns the primitive kind, ignoring optionality.
func (t Type) Kind() Kind { return t.kind }

// IsOptional reports whether the type admits absence.
func (t Type) IsOptional() bool { return t.optional }

// Base returns the non-optional version of t.
func (t Type) Base() Type {
	t.optional = false
	return t
}

// Equal reports structural equality of two types.
func (t Type) Equal(o Type) bool { return t == o }

// String returns a human-readable name, e.g. "int" or "int?".
func (t Type) String() string {
	if t.optional {
		return t.kind.String() + "?"
	}
	return t.kind.String()
}
