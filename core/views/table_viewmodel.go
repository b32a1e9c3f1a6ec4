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

// Package views builds template-ready view models from tables.
package views

import (
	"github.com/google/safehtml"

	"github.com/google/rivulet/core/query"
	"github.com/google/rivulet/core/tables"
)

// TableViewModel contains the data from the table formatted for template
// consumption.
type TableViewModel struct {
	Title   string
	Headers []ColumnHeader      // Visible columns in order
	Rows    []map[string]string // Each row is a map of column name to value

	// Derived columns that failed to compile, with their build errors
	DerivedErrors map[string]string

	// Pagination info
	TotalRows     int  // Total number of rows in the table
	DisplayedRows int  // Number of rows actually displayed
	HasMoreRows   bool // True if there are more rows than displayed
	CurrentLimit  int

	CurrentURL safehtml.URL // Current URL for building links
	ShowAllURL safehtml.URL
}

// ColumnHeader describes one visible column.
type ColumnHeader struct {
	Name        string // Column internal name
	DisplayName string
	Type        string // Declared type, e.g. "string" or "int?"
	IsDerived   bool
	RemoveURL   safehtml.URL // For derived columns: URL without this column
}

// LandingViewModel lists the available tables.
type LandingViewModel struct {
	Title  string
	Tables []TableInfo
}

// TableInfo describes one table on the landing page.
type TableInfo struct {
	Name    string
	NumRows int
	NumCols int
	URL     safehtml.URL
}

// BuildTableViewModel assembles the view model for one table. Derived
// columns are expected to already be present on the table; build errors
// for ones that failed to compile are passed through for display.
func BuildTableViewModel(name string, dt *tables.DataTable, q *query.Query, derivedErrors map[string]string) TableViewModel {
	visible := q.Columns
	if len(visible) == 0 {
		visible = dt.GetColumnNames()
	}

	derived := make(map[string]bool)
	for _, d := range q.Derived {
		derived[d.Name] = true
	}

	vm := TableViewModel{
		Title:         name,
		DerivedErrors: derivedErrors,
		TotalRows:     dt.NumRows(),
		CurrentLimit:  q.Limit,
		CurrentURL:    q.ToSafeURL(),
		ShowAllURL:    q.WithLimit(0),
	}

	for _, colName := range visible {
		col := dt.GetColumn(colName)
		if col == nil {
			continue
		}
		header := ColumnHeader{
			Name:        colName,
			DisplayName: col.Def().DisplayName(),
			Type:        col.Type().String(),
			IsDerived:   derived[colName],
		}
		if header.IsDerived {
			header.RemoveURL = q.WithoutDerived(colName)
		}
		vm.Headers = append(vm.Headers, header)
	}

	numRows := dt.NumRows()
	if q.Limit > 0 && numRows > q.Limit {
		numRows = q.Limit
		vm.HasMoreRows = true
	}
	vm.DisplayedRows = numRows

	for row := 0; row < numRows; row++ {
		rowData := make(map[string]string, len(vm.Headers))
		for _, header := range vm.Headers {
			col := dt.GetColumn(header.Name)
			value, err := col.GetString(uint32(row))
			if err != nil {
				value = "#ERR"
			}
			rowData[header.Name] = value
		}
		vm.Rows = append(vm.Rows, rowData)
	}

	return vm
}
