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

package columns

import (
	"fmt"
	"strconv"

	"github.com/google/rivulet/core/dtype"
	"github.com/google/rivulet/core/values"
)

// Int64Column stores integer data row by row.
type Int64Column struct {
	columnDef *ColumnDef
	data      []int64
	nulls     []bool // nil unless the column is optional
	optional  bool
}

// NewInt64Column creates a new integer column.
func NewInt64Column(columnDef *ColumnDef) *Int64Column {
	return &Int64Column{columnDef: columnDef}
}

// NewOptionalInt64Column creates an integer column that admits absent rows.
func NewOptionalInt64Column(columnDef *ColumnDef) *Int64Column {
	return &Int64Column{columnDef: columnDef, optional: true}
}

func (c *Int64Column) Def() *ColumnDef {
	return c.columnDef
}

func (c *Int64Column) Type() dtype.Type {
	if c.optional {
		return dtype.Optional(dtype.Int())
	}
	return dtype.Int()
}

func (c *Int64Column) Len() int {
	return len(c.data)
}

// Append adds a present value.
func (c *Int64Column) Append(value int64) {
	c.data = append(c.data, value)
	if c.optional {
		c.nulls = append(c.nulls, false)
	}
}

// AppendNone adds an absent row. The column must be optional.
func (c *Int64Column) AppendNone() error {
	if !c.optional {
		return fmt.Errorf("column %q is not optional", c.columnDef.Name())
	}
	c.data = append(c.data, 0)
	c.nulls = append(c.nulls, true)
	return nil
}

// AppendValue adds a row from a runtime value. Absent values require an
// optional column; anything else must be an int.
func (c *Int64Column) AppendValue(v values.Value) error {
	if v.IsNone() {
		return c.AppendNone()
	}
	if !v.IsInt() {
		return fmt.Errorf("column %q expects int, got %s", c.columnDef.Name(), values.TypeOf(v))
	}
	c.Append(v.AsInt())
	return nil
}

func (c *Int64Column) Value(i uint32) (values.Value, error) {
	if i >= uint32(len(c.data)) {
		return values.None(), fmt.Errorf("index %d out of bounds (length: %d)", i, len(c.data))
	}
	if c.optional && c.nulls[i] {
		return values.None(), nil
	}
	return values.NewInt(c.data[i]), nil
}

func (c *Int64Column) GetString(i uint32) (string, error) {
	if i >= uint32(len(c.data)) {
		return "", fmt.Errorf("index %d out of bounds (length: %d)", i, len(c.data))
	}
	if c.optional && c.nulls[i] {
		return "None", nil
	}
	return strconv.FormatInt(c.data[i], 10), nil
}
