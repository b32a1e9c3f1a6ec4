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
Package exprlang compiles textual expressions into resolved expression
trees. It supports column references by name, string/number/boolean/none
literals, and the string operations in both function and method form:

	lower(name)
	name.lower()
	name.replace("d", "Z")
	replace(name, old, new)

Overload resolution and typing happen in the exprs package; this package
only parses and maps operation names to their registrations. Compilation
errors (unknown columns, unknown operations, no matching overload) are
build-time errors.
*/
package exprlang

import (
	"fmt"

	"github.com/google/rivulet/core/exprs"
	"github.com/google/rivulet/core/schema"
	"github.com/google/rivulet/core/strops"
	"github.com/google/rivulet/core/values"
)

// Compile parses source and resolves it against the schema's declared
// column types.
func Compile(source string, s *schema.Schema) (exprs.Node, error) {
	if source == "" {
		return nil, fmt.Errorf("empty expression")
	}

	parser := NewParser(source)
	ast, err := parser.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return compile(ast, s)
}

func compile(node astNode, s *schema.Schema) (exprs.Node, error) {
	switch n := node.(type) {
	case *intLit:
		return exprs.NewLiteral(values.NewInt(n.Value)), nil

	case *floatLit:
		return exprs.NewLiteral(values.NewFloat(n.Value)), nil

	case *stringLit:
		return exprs.NewLiteral(values.NewString(n.Value)), nil

	case *boolLit:
		return exprs.NewLiteral(values.NewBool(n.Value)), nil

	case *noneLit:
		return exprs.NewLiteral(values.None()), nil

	case *ident:
		return s.Ref(n.Name)

	case *call:
		// Function form is sugar for the method form: the first
		// argument is the receiver.
		if len(n.Args) == 0 {
			return nil, fmt.Errorf("%s() needs at least one argument", n.Func)
		}
		recv, err := compile(n.Args[0], s)
		if err != nil {
			return nil, err
		}
		return buildMethod(n.Func, recv, n.Args[1:], s)

	case *methodCall:
		recv, err := compile(n.Recv, s)
		if err != nil {
			return nil, err
		}
		return buildMethod(n.Name, recv, n.Args, s)

	default:
		return nil, fmt.Errorf("unknown node type %T", node)
	}
}

func buildMethod(name string, recv exprs.Node, argNodes []astNode, s *schema.Schema) (exprs.Node, error) {
	m, ok := methods[name]
	if !ok {
		return nil, fmt.Errorf("unknown operation: %s", name)
	}
	if len(argNodes) < m.minArgs || len(argNodes) > m.maxArgs {
		return nil, fmt.Errorf("%s takes %d to %d arguments, got %d", name, m.minArgs, m.maxArgs, len(argNodes))
	}
	args := make([]exprs.Node, len(argNodes))
	for i, a := range argNodes {
		node, err := compile(a, s)
		if err != nil {
			return nil, err
		}
		args[i] = node
	}
	return m.build(recv, args)
}

// method maps an operation name to its registration in strops.
type method struct {
	minArgs int
	maxArgs int
	build   func(recv exprs.Node, args []exprs.Node) (exprs.Node, error)
}

var methods = map[string]method{
	"lower": {0, 0, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		return strops.On(recv).Lower()
	}},
	"upper": {0, 0, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		return strops.On(recv).Upper()
	}},
	"reversed": {0, 0, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		return strops.On(recv).Reversed()
	}},
	"len": {0, 0, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		return strops.On(recv).Len()
	}},
	"replace": {2, 3, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		return strops.On(recv).Replace(args[0], args[1], rest(args, 2)...)
	}},
	"startswith": {1, 1, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		return strops.On(recv).StartsWith(args[0])
	}},
	"endswith": {1, 1, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		return strops.On(recv).EndsWith(args[0])
	}},
	"swapcase": {0, 0, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		return strops.On(recv).SwapCase()
	}},
	"strip": {0, 1, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		return strops.On(recv).Strip(rest(args, 0)...)
	}},
	"title": {0, 0, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		return strops.On(recv).Title()
	}},
	"count": {1, 3, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		return strops.On(recv).Count(args[0], rest(args, 1)...)
	}},
	"find": {1, 3, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		return strops.On(recv).Find(args[0], rest(args, 1)...)
	}},
	"rfind": {1, 3, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		return strops.On(recv).RFind(args[0], rest(args, 1)...)
	}},
	"removeprefix": {1, 1, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		return strops.On(recv).RemovePrefix(args[0])
	}},
	"removesuffix": {1, 1, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		return strops.On(recv).RemoveSuffix(args[0])
	}},
	"slice": {2, 2, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		return strops.On(recv).Slice(args[0], args[1])
	}},
	"parse_int": {0, 1, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		optional, err := literalBoolArg("parse_int", args, 0)
		if err != nil {
			return nil, err
		}
		return strops.On(recv).ParseInt(optional)
	}},
	"parse_float": {0, 1, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		optional, err := literalBoolArg("parse_float", args, 0)
		if err != nil {
			return nil, err
		}
		return strops.On(recv).ParseFloat(optional)
	}},
	"parse_bool": {0, 1, func(recv exprs.Node, args []exprs.Node) (exprs.Node, error) {
		p := strops.DefaultBoolParsing()
		optional, err := literalBoolArg("parse_bool", args, 0)
		if err != nil {
			return nil, err
		}
		p.Optional = optional
		return strops.On(recv).ParseBool(p)
	}},
}

// rest converts trailing expression arguments into the variadic form the
// strops methods take.
func rest(args []exprs.Node, from int) []interface{} {
	if len(args) <= from {
		return nil
	}
	out := make([]interface{}, 0, len(args)-from)
	for _, a := range args[from:] {
		out = append(out, a)
	}
	return out
}

// literalBoolArg reads an optional boolean literal flag argument. The
// flag changes the operation's result type, so it must be known at
// build time rather than be an expression.
func literalBoolArg(op string, args []exprs.Node, i int) (bool, error) {
	if len(args) <= i {
		return false, nil
	}
	lit, ok := args[i].(*exprs.LiteralNode)
	if !ok || !lit.Value().IsBool() {
		return false, fmt.Errorf("%s flag must be a boolean literal", op)
	}
	return lit.Value().AsBool(), nil
}
