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

package datasources

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/rivulet/core/columns"
	"github.com/google/rivulet/core/dtype"
	"github.com/google/rivulet/core/tables"
	"github.com/google/rivulet/core/values"
)

// CsvLoader implements Loader for CSV files. Column types are inferred
// from the data: a column whose every non-empty cell parses as an int
// is an int column, then float, then bool, otherwise string. Columns
// containing empty cells become optional, and empty cells load as
// absent values.
//
// Required config keys:
//   - file_path: path to the CSV file
//
// Optional config keys:
//   - has_header: "true" or "false" (default "true")
//   - delimiter: field delimiter (default ",")
type CsvLoader struct{}

// NewCsvLoader creates a new CSV loader.
func NewCsvLoader() *CsvLoader {
	return &CsvLoader{}
}

// SourceType returns "csv".
func (l *CsvLoader) SourceType() string {
	return "csv"
}

type csvContents struct {
	names []string
	rows  [][]string
}

func readCsv(config map[string]string) (*csvContents, error) {
	filePath := config["file_path"]
	if filePath == "" {
		return nil, fmt.Errorf("file_path is required")
	}

	delimiter := ','
	if d := config["delimiter"]; d != "" {
		delimiter = rune(d[0])
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return readCsvReader(file, config["has_header"] != "false", delimiter)
}

func readCsvReader(r io.Reader, hasHeader bool, delimiter rune) (*csvContents, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	c := &csvContents{}
	if hasHeader {
		c.names = records[0]
		c.rows = records[1:]
	} else {
		for i := range records[0] {
			c.names = append(c.names, fmt.Sprintf("col_%d", i))
		}
		c.rows = records
	}
	return c, nil
}

// DiscoverSpec reads the file and infers a typed column spec.
func (l *CsvLoader) DiscoverSpec(config map[string]string) (*TableSpec, error) {
	contents, err := readCsv(config)
	if err != nil {
		return nil, err
	}

	spec := &TableSpec{Columns: make([]ColumnSpec, len(contents.names))}
	for i, name := range contents.names {
		spec.Columns[i] = ColumnSpec{
			Name: name,
			Type: inferColumnType(i, contents.rows),
		}
	}
	return spec, nil
}

// Load reads the file and builds a DataTable with the given columns.
func (l *CsvLoader) Load(config map[string]string, spec *TableSpec) (*tables.DataTable, error) {
	contents, err := readCsv(config)
	if err != nil {
		return nil, err
	}
	return buildCsvTable(contents, spec)
}

func buildCsvTable(contents *csvContents, spec *TableSpec) (*tables.DataTable, error) {
	table := tables.NewDataTable()
	for i, cs := range spec.Columns {
		col, err := columns.NewColumn(columns.NewColumnDef(cs.Name, spec.displayName(i)), cs.Type)
		if err != nil {
			return nil, err
		}
		for _, row := range contents.rows {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			v, err := parseCell(cell, cs.Type)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", cs.Name, err)
			}
			if err := col.AppendValue(v); err != nil {
				return nil, err
			}
		}
		if err := table.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// ImportCsv builds a typed table from CSV text with a header row.
// Column types are inferred the same way the file-based loader infers
// them. Intended for small embedded datasets.
func ImportCsv(r io.Reader) (*tables.DataTable, error) {
	contents, err := readCsvReader(r, true, ',')
	if err != nil {
		return nil, err
	}

	spec := &TableSpec{Columns: make([]ColumnSpec, len(contents.names))}
	for i, name := range contents.names {
		spec.Columns[i] = ColumnSpec{Name: name, Type: inferColumnType(i, contents.rows)}
	}
	return buildCsvTable(contents, spec)
}

// parseCell converts a CSV cell to a value of the column's base type.
// Empty cells are absent.
func parseCell(cell string, t dtype.Type) (values.Value, error) {
	if cell == "" {
		return values.None(), nil
	}
	switch t.Kind() {
	case dtype.KindInt:
		n, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			return values.None(), fmt.Errorf("cannot parse %q as int", cell)
		}
		return values.NewInt(n), nil
	case dtype.KindFloat:
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return values.None(), fmt.Errorf("cannot parse %q as float", cell)
		}
		return values.NewFloat(f), nil
	case dtype.KindBool:
		b, ok := parseBoolCell(cell)
		if !ok {
			return values.None(), fmt.Errorf("cannot parse %q as bool", cell)
		}
		return values.NewBool(b), nil
	default:
		return values.NewString(cell), nil
	}
}

func parseBoolCell(cell string) (value, ok bool) {
	switch cell {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	}
	return false, false
}

// inferColumnType scans a column's cells. Narrower parses win: int over
// float over bool over string. Empty cells make the column optional.
func inferColumnType(colIdx int, rows [][]string) dtype.Type {
	isInt, isFloat, isBool := true, true, true
	optional := false

	for _, row := range rows {
		if colIdx >= len(row) || row[colIdx] == "" {
			optional = true
			continue
		}
		cell := row[colIdx]

		if isInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			if _, ok := parseBoolCell(cell); !ok {
				isBool = false
			}
		}
	}

	t := dtype.String()
	switch {
	case isInt:
		t = dtype.Int()
	case isFloat:
		t = dtype.Float()
	case isBool:
		t = dtype.Bool()
	}
	if optional {
		t = dtype.Optional(t)
	}
	return t
}
