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

// Package engine evaluates resolved expression trees against tables, one
// row at a time. Dispatch was decided when the tree was built; the engine
// only walks children and invokes the bound adaptors. Operation names are
// used for diagnostics alone.
package engine

import (
	"fmt"

	"github.com/google/rivulet/core/columns"
	"github.com/google/rivulet/core/exprs"
	"github.com/google/rivulet/core/tables"
	"github.com/google/rivulet/core/values"
)

// ColumnGetter retrieves a column value by name for a given row.
type ColumnGetter func(colName string, rowIndex uint32) (values.Value, error)

// Evaluator evaluates an expression tree bound to a column getter.
type Evaluator struct {
	root      exprs.Node
	getColumn ColumnGetter
}

// NewEvaluator creates a new evaluator.
func NewEvaluator(root exprs.Node, getColumn ColumnGetter) *Evaluator {
	return &Evaluator{root: root, getColumn: getColumn}
}

// Eval evaluates the expression for the given row.
func (e *Evaluator) Eval(rowIndex uint32) (values.Value, error) {
	return e.eval(e.root, rowIndex)
}

func (e *Evaluator) eval(node exprs.Node, row uint32) (values.Value, error) {
	switch n := node.(type) {
	case *exprs.LiteralNode:
		return n.Value(), nil

	case *exprs.ColumnNode:
		return e.getColumn(n.Name(), row)

	case *exprs.CallNode:
		children := n.Children()
		args := make([]values.Value, len(children))
		for i, child := range children {
			v, err := e.eval(child, row)
			if err != nil {
				return values.None(), err
			}
			args[i] = v
		}
		v, err := n.Adaptor()(args)
		if err != nil {
			return values.None(), fmt.Errorf("%s: %w", n.Op(), err)
		}
		return v, nil

	default:
		return values.None(), fmt.Errorf("unknown expression node %T", node)
	}
}

// TableGetter returns a ColumnGetter reading from the given table.
func TableGetter(dt *tables.DataTable) ColumnGetter {
	return func(colName string, rowIndex uint32) (values.Value, error) {
		col := dt.GetColumn(colName)
		if col == nil {
			return values.None(), fmt.Errorf("column not found: %s", colName)
		}
		return col.Value(rowIndex)
	}
}

// Derive builds a derived column over the table from a resolved
// expression tree. Values are computed lazily per row.
func Derive(dt *tables.DataTable, name string, node exprs.Node) *columns.DerivedColumn {
	ev := NewEvaluator(node, TableGetter(dt))
	def := columns.NewColumnDef(name, name)
	return columns.NewDerivedColumn(def, node.Type(), dt.NumRows(), ev.Eval)
}

// AddDerived derives a column and adds it to the table.
func AddDerived(dt *tables.DataTable, name string, node exprs.Node) error {
	return dt.AddColumn(Derive(dt, name, node))
}
