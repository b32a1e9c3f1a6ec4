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

// Package datasources provides a unified interface for loading tables
// from various sources (textproto, CSV, ...). Loaders discover a typed
// schema first, so callers can inspect or override column types before
// any data is read.
package datasources

import (
	"github.com/google/rivulet/core/dtype"
	"github.com/google/rivulet/core/tables"
)

// ColumnSpec describes one column a data source will produce.
type ColumnSpec struct {
	Name string
	Type dtype.Type
	// DisplayName defaults to Name when empty.
	DisplayName string
}

// TableSpec is the full set of columns discovered from a data source.
type TableSpec struct {
	Columns []ColumnSpec
}

// Loader is implemented by all data source loaders. Built-in loaders
// exist for "proto" and "csv"; additional loaders can be registered for
// databases, APIs or custom formats.
type Loader interface {
	// SourceType returns the type identifier used in source definitions
	// (e.g. "proto", "csv").
	SourceType() string

	// DiscoverSpec returns the columns the source will produce. Called
	// before Load to determine column names and types.
	DiscoverSpec(config map[string]string) (*TableSpec, error)

	// Load reads the source and builds a DataTable with the given
	// columns. The spec is the discovered one, possibly adjusted by the
	// caller (display names, widened-to-optional types).
	Load(config map[string]string, spec *TableSpec) (*tables.DataTable, error)
}

func (s *TableSpec) displayName(i int) string {
	if s.Columns[i].DisplayName != "" {
		return s.Columns[i].DisplayName
	}
	return s.Columns[i].Name
}
