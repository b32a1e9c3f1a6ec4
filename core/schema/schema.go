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

// Package schema holds the declared column types of a table. Expression
// building consults declared types only; actual data is never inspected.
package schema

import (
	"fmt"

	"github.com/google/rivulet/core/dtype"
	"github.com/google/rivulet/core/exprs"
)

// Schema is an ordered mapping from column names to declared types.
type Schema struct {
	names []string
	types map[string]dtype.Type
}

// New creates an empty schema.
func New() *Schema {
	return &Schema{types: make(map[string]dtype.Type)}
}

// Add appends a column with its declared type. Re-adding a name replaces
// its type but keeps its position.
func (s *Schema) Add(name string, t dtype.Type) {
	if _, ok := s.types[name]; !ok {
		s.names = append(s.names, name)
	}
	s.types[name] = t
}

// ColumnNames returns the column names in declaration order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// DeclaredType looks up the declared type of a column.
func (s *Schema) DeclaredType(name string) (dtype.Type, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Ref builds a typed column reference leaf for the named column.
func (s *Schema) Ref(name string) (*exprs.ColumnNode, error) {
	t, ok := s.types[name]
	if !ok {
		return nil, fmt.Errorf("column %q not found in schema", name)
	}
	return exprs.Column(name, t), nil
}
