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

// Package models manages the set of named tables served by an application.
package models

import (
	"github.com/google/rivulet/core/tables"
)

// DataModel is a registry of named tables.
type DataModel struct {
	names  []string
	tables map[string]*tables.DataTable
}

// NewDataModel creates a new DataModel instance.
func NewDataModel() *DataModel {
	return &DataModel{
		tables: make(map[string]*tables.DataTable),
	}
}

// AddTable adds a table to the data model.
func (dm *DataModel) AddTable(name string, table *tables.DataTable) {
	if _, ok := dm.tables[name]; !ok {
		dm.names = append(dm.names, name)
	}
	dm.tables[name] = table
}

// GetTable returns a table by name, or nil if absent.
func (dm *DataModel) GetTable(name string) *tables.DataTable {
	return dm.tables[name]
}

// TableNames returns the table names in registration order.
func (dm *DataModel) TableNames() []string {
	names := make([]string, len(dm.names))
	copy(names, dm.names)
	return names
}
