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

// Float64Column stores floating-point data row by row.
type Float64Column struct {
	columnDef *ColumnDef
	data      []float64
	nulls     []bool // nil unless the column is optional
	optional  bool
}

// NewFloat64Column creates a new floating-point column.
func NewFloat64Column(columnDef *ColumnDef) *Float64Column {
	return &Float64Column{columnDef: columnDef}
}

// NewOptionalFloat64Column creates a floating-point column that admits
// absent rows.
func NewOptionalFloat64Column(columnDef *ColumnDef) *Float64Column {
	return &Float64Column{columnDef: columnDef, optional: true}
}

func (c *Float64Column) Def() *ColumnDef {
	return c.columnDef
}

func (c *Float64Column) Type() dtype.Type {
	if c.optional {
		return dtype.Optional(dtype.Float())
	}
	return dtype.Float()
}

func (c *Float64Column) Len() int {
	return len(c.data)
}

// Append adds a present value.
func (c *Float64Column) Append(value float64) {
	c.data = append(c.data, value)
	if c.optional {
		c.nulls = append(c.nulls, false)
	}
}

// AppendNone adds an absent row. The column must be optional.
func (c *Float64Column) AppendNone() error {
	if !c.optional {
		return fmt.Errorf("column %q is not optional", c.columnDef.Name())
	}
	c.data = append(c.data, 0)
	c.nulls = append(c.nulls, true)
	return nil
}

// AppendValue adds a row from a runtime value. Absent values require an
// optional column; anything else must be a float.
func (c *Float64Column) AppendValue(v values.Value) error {
	if v.IsNone() {
		return c.AppendNone()
	}
	if !v.IsFloat() {
		return fmt.Errorf("column %q expects float, got %s", c.columnDef.Name(), values.TypeOf(v))
	}
	c.Append(v.AsFloat())
	return nil
}

func (c *Float64Column) Value(i uint32) (values.Value, error) {
	if i >= uint32(len(c.data)) {
		return values.None(), fmt.Errorf("index %d out of bounds (length: %d)", i, len(c.data))
	}
	if c.optional && c.nulls[i] {
		return values.None(), nil
	}
	return values.NewFloat(c.data[i]), nil
}

func (c *Float64Column) GetString(i uint32) (string, error) {
	if i >= uint32(len(c.data)) {
		return "", fmt.Errorf("index %d out of bounds (length: %d)", i, len(c.data))
	}
	if c.optional && c.nulls[i] {
		return "None", nil
	}
	return strconv.FormatFloat(c.data[i], 'g', -1, 64), nil
}
