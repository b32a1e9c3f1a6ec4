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

// Package demo provides small sample tables with derived columns that
// showcase the string expression operations.
package demo

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/google/rivulet/core/tables"
	"github.com/google/rivulet/datasources"
)

//go:embed data/people.csv
var peopleCSV string

//go:embed data/readings.csv
var readingsCSV string

// importTable imports an embedded CSV dataset with inferred column types.
func importTable(name, csv string) *tables.DataTable {
	table, err := datasources.ImportCsv(strings.NewReader(csv))
	if err != nil {
		panic(fmt.Sprintf("failed to import %s CSV: %v", name, err))
	}
	return table
}

// CreatePeopleTable creates the people sample table. The age and hobby
// columns contain absent values.
func CreatePeopleTable() *tables.DataTable {
	return importTable("people", peopleCSV)
}

// CreateReadingsTable creates the sensor readings sample table. All
// columns are strings; the parse operations turn them into typed
// derived columns.
func CreateReadingsTable() *tables.DataTable {
	return importTable("readings", readingsCSV)
}
