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

/*
Package exprs provides the deferred column-expression model: immutable,
typed expression trees and the overload resolver that builds them.

A tree is assembled during the build phase of a program and handed to the
execution engine afterwards. Nodes are never mutated once constructed, so
the same sub-expression may safely appear under several parents and be
read from multiple goroutines. Every node knows its static type without
looking at any data.
*/
package exprs

import (
	"github.com/google/rivulet/core/dtype"
	"github.com/google/rivulet/core/values"
)

// Node is the interface for all expression tree nodes.
type Node interface {
	// Type returns the static type of the expression in constant time.
	Type() dtype.Type
	// Children returns the ordered child expressions, nil for leaves.
	Children() []Node
	node()
}

// LiteralNode represents an immediate value.
type LiteralNode struct {
	val values.Value
	typ dtype.Type
}

func (n *LiteralNode) node() {}

// Type returns the static type inferred from the literal value.
func (n *LiteralNode) Type() dtype.Type { return n.typ }

// Children returns nil: literals are leaves.
func (n *LiteralNode) Children() []Node { return nil }

// Value returns the literal value.
func (n *LiteralNode) Value() values.Value { return n.val }

// ColumnNode references an externally owned column by name. The declared
// type comes from the schema; the node never inspects data.
type ColumnNode struct {
	name string
	typ  dtype.Type
}

func (n *ColumnNode) node() {}

// Type returns the column's declared type.
func (n *ColumnNode) Type() dtype.Type { return n.typ }

// Children returns nil: column references are leaves.
func (n *ColumnNode) Children() []Node { return nil }

// Name returns the lookup key into the owning table's column space.
func (n *ColumnNode) Name() string { return n.name }

// CallNode represents a resolved method call: an operation name for
// diagnostics, the result type chosen by overload resolution (possibly
// widened to optional), the bound implementation adaptor, and the ordered
// argument expressions. Dispatch is fully decided at construction time;
// consumers must not re-derive it from the operation name.
type CallNode struct {
	op       string
	typ      dtype.Type
	adaptor  Adaptor
	children []Node
}

func (n *CallNode) node() {}

// Type returns the resolved result type.
func (n *CallNode) Type() dtype.Type { return n.typ }

// Children returns the ordered argument expressions.
func (n *CallNode) Children() []Node { return n.children }

// Op returns the symbolic operation name, e.g. "str.lower".
func (n *CallNode) Op() string { return n.op }

// Adaptor returns the bound implementation wrapper. The engine invokes it
// with the evaluated child values in order.
func (n *CallNode) Adaptor() Adaptor { return n.adaptor }

// Column builds a column reference leaf with the given declared type.
func Column(name string, declared dtype.Type) *ColumnNode {
	return &ColumnNode{name: name, typ: declared}
}

// NewLiteral builds a literal leaf from an already-typed runtime value.
func NewLiteral(v values.Value) *LiteralNode {
	return &LiteralNode{val: v, typ: values.TypeOf(v)}
}

// Literal builds a literal leaf from a raw Go value, inferring its type:
// integers map to int, text to string, booleans to bool, floating-point
// values to float, and nil to the absence literal.
func Literal(v interface{}) (*LiteralNode, error) {
	switch val := v.(type) {
	case nil:
		return NewLiteral(values.None()), nil
	case int:
		return NewLiteral(values.NewInt(int64(val))), nil
	case int32:
		return NewLiteral(values.NewInt(int64(val))), nil
	case int64:
		return NewLiteral(values.NewInt(val)), nil
	case float32:
		return NewLiteral(values.NewFloat(float64(val))), nil
	case float64:
		return NewLiteral(values.NewFloat(val)), nil
	case string:
		return NewLiteral(values.NewString(val)), nil
	case bool:
		return NewLiteral(values.NewBool(val)), nil
	case values.Value:
		return NewLiteral(val), nil
	default:
		return nil, &BadLiteralError{Value: v}
	}
}
