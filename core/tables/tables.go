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

// Package tables provides the in-memory DataTable: an ordered set of
// equally long columns with a derivable schema.
package tables

import (
	"fmt"

	"github.com/google/rivulet/core/columns"
	"github.com/google/rivulet/core/schema"
)

// DataTable is an ordered collection of named columns.
type DataTable struct {
	names   []string
	columns map[string]columns.Column
}

// NewDataTable creates an empty table.
func NewDataTable() *DataTable {
	return &DataTable{
		columns: make(map[string]columns.Column),
	}
}

// AddColumn appends a column to the table. The column must match the
// length of the existing columns.
func (dt *DataTable) AddColumn(col columns.Column) error {
	name := col.Def().Name()
	if _, ok := dt.columns[name]; ok {
		return fmt.Errorf("table already has a column named %q", name)
	}
	if len(dt.names) > 0 && col.Len() != dt.NumRows() {
		return fmt.Errorf("column %q has %d rows, table has %d", name, col.Len(), dt.NumRows())
	}
	dt.names = append(dt.names, name)
	dt.columns[name] = col
	return nil
}

// GetColumn returns a column by name, or nil if absent.
func (dt *DataTable) GetColumn(name string) columns.Column {
	return dt.columns[name]
}

// GetColumnNames returns the column names in insertion order.
func (dt *DataTable) GetColumnNames() []string {
	names := make([]string, len(dt.names))
	copy(names, dt.names)
	return names
}

// NumRows returns the number of rows.
func (dt *DataTable) NumRows() int {
	if len(dt.names) == 0 {
		return 0
	}
	return dt.columns[dt.names[0]].Len()
}

// Schema returns the declared column types in column order.
func (dt *DataTable) Schema() *schema.Schema {
	s := schema.New()
	for _, name := range dt.names {
		s.Add(name, dt.columns[name].Type())
	}
	return s
}
