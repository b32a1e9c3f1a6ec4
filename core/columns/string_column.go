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

	"github.com/google/rivulet/core/dtype"
	"github.com/google/rivulet/core/values"
)

// StringColumn stores string data row by row.
type StringColumn struct {
	columnDef *ColumnDef
	data      []string
	nulls     []bool // nil unless the column is optional
	optional  bool
}

// NewStringColumn creates a new string column.
func NewStringColumn(columnDef *ColumnDef) *StringColumn {
	return &StringColumn{columnDef: columnDef}
}

// NewOptionalStringColumn creates a string column that admits absent rows.
func NewOptionalStringColumn(columnDef *ColumnDef) *StringColumn {
	return &StringColumn{columnDef: columnDef, optional: true}
}

func (c *StringColumn) Def() *ColumnDef {
	return c.columnDef
}

func (c *StringColumn) Type() dtype.Type {
	if c.optional {
		return dtype.Optional(dtype.String())
	}
	return dtype.String()
}

func (c *StringColumn) Len() int {
	return len(c.data)
}

// Append adds a present value.
func (c *StringColumn) Append(value string) {
	c.data = append(c.data, value)
	if c.optional {
		c.nulls = append(c.nulls, false)
	}
}

// AppendNone adds an absent row. The column must be optional.
func (c *StringColumn) AppendNone() error {
	if !c.optional {
		return fmt.Errorf("column %q is not optional", c.columnDef.Name())
	}
	c.data = append(c.data, "")
	c.nulls = append(c.nulls, true)
	return nil
}

// AppendValue adds a row from a runtime value. Absent values require an
// optional column; anything else must be a string.
func (c *StringColumn) AppendValue(v values.Value) error {
	if v.IsNone() {
		return c.AppendNone()
	}
	if !v.IsString() {
		return fmt.Errorf("column %q expects string, got %s", c.columnDef.Name(), values.TypeOf(v))
	}
	c.Append(v.AsString())
	return nil
}

func (c *StringColumn) Value(i uint32) (values.Value, error) {
	if i >= uint32(len(c.data)) {
		return values.None(), fmt.Errorf("index %d out of bounds (length: %d)", i, len(c.data))
	}
	if c.optional && c.nulls[i] {
		return values.None(), nil
	}
	return values.NewString(c.data[i]), nil
}

func (c *StringColumn) GetString(i uint32) (string, error) {
	v, err := c.Value(i)
	if err != nil {
		return "", err
	}
	return v.AsString(), nil
}
