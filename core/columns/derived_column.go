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

// ComputeFn computes the value for a given row index. The function should
// capture any source columns it needs in a closure.
type ComputeFn func(i uint32) (values.Value, error)

// DerivedColumn represents a column whose values are computed from other
// columns on demand. Its declared type comes from the expression that
// defines it.
type DerivedColumn struct {
	columnDef *ColumnDef
	typ       dtype.Type
	computeFn ComputeFn
	length    int
}

// NewDerivedColumn creates a new derived column. The length parameter
// specifies the number of rows and should match the source columns.
func NewDerivedColumn(columnDef *ColumnDef, typ dtype.Type, length int, computeFn ComputeFn) *DerivedColumn {
	return &DerivedColumn{
		columnDef: columnDef,
		typ:       typ,
		computeFn: computeFn,
		length:    length,
	}
}

func (c *DerivedColumn) Def() *ColumnDef {
	return c.columnDef
}

func (c *DerivedColumn) Type() dtype.Type {
	return c.typ
}

func (c *DerivedColumn) Len() int {
	return c.length
}

func (c *DerivedColumn) Value(i uint32) (values.Value, error) {
	if i >= uint32(c.length) {
		return values.None(), fmt.Errorf("index %d out of bounds (length: %d)", i, c.length)
	}
	return c.computeFn(i)
}

func (c *DerivedColumn) GetString(i uint32) (string, error) {
	v, err := c.Value(i)
	if err != nil {
		return "", err
	}
	return v.AsString(), nil
}
