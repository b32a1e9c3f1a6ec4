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

// Package columns provides typed in-memory columns. A column stores one
// value per row; optional columns additionally track absent rows.
package columns

import (
	"github.com/google/rivulet/core/dtype"
	"github.com/google/rivulet/core/values"
)

// ColumnDef describes a column's identity.
type ColumnDef struct {
	name        string // must not contain any of the following characters: & = : ,
	displayName string
}

// NewColumnDef creates a new ColumnDef with the given name and display name.
func NewColumnDef(name, displayName string) *ColumnDef {
	return &ColumnDef{
		name:        name,
		displayName: displayName,
	}
}

func (cd *ColumnDef) Name() string {
	return cd.name
}

func (cd *ColumnDef) DisplayName() string {
	return cd.displayName
}

// Column is the interface implemented by all column kinds.
type Column interface {
	Def() *ColumnDef
	// Type returns the declared type of the column's values.
	Type() dtype.Type
	Len() int
	// Value returns the value at row i; absent rows yield values.None().
	Value(i uint32) (values.Value, error)
	// GetString returns the display string for row i.
	GetString(i uint32) (string, error)
}

// MutableColumn is a column that accepts rows after construction.
// Derived columns are not mutable.
type MutableColumn interface {
	Column
	// AppendValue adds a row. Absent values require an optional column;
	// present values must match the column's base type.
	AppendValue(v values.Value) error
}

// NewColumn creates an empty column storing values of the given type.
// Optional types produce columns that admit absent rows. Datetime and
// duration columns are not supported.
func NewColumn(def *ColumnDef, t dtype.Type) (MutableColumn, error) {
	optional := t.IsOptional()
	switch t.Kind() {
	case dtype.KindString:
		if optional {
			return NewOptionalStringColumn(def), nil
		}
		return NewStringColumn(def), nil
	case dtype.KindInt:
		if optional {
			return NewOptionalInt64Column(def), nil
		}
		return NewInt64Column(def), nil
	case dtype.KindFloat:
		if optional {
			return NewOptionalFloat64Column(def), nil
		}
		return NewFloat64Column(def), nil
	case dtype.KindBool:
		if optional {
			return NewOptionalBoolColumn(def), nil
		}
		return NewBoolColumn(def), nil
	default:
		return nil, &UnsupportedColumnTypeError{Type: t}
	}
}

// UnsupportedColumnTypeError reports a type with no column representation.
type UnsupportedColumnTypeError struct {
	Type dtype.Type
}

func (e *UnsupportedColumnTypeError) Error() string {
	return "no column representation for type " + e.Type.String()
}
