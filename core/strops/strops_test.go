/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rivulet Authors
*/

package strops

import (
	"errors"
	"testing"

	"github.com/google/rivulet/core/dtype"
	"github.com/google/rivulet/core/engine"
	"github.com/google/rivulet/core/exprs"
	"github.com/google/rivulet/core/values"
)

// evalOn evaluates a one-column expression against a single input value.
func evalOn(t *testing.T, node exprs.Node, input values.Value) values.Value {
	t.Helper()
	v, err := evalOnErr(node, input)
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}
	return v
}

func evalOnErr(node exprs.Node, input values.Value) (values.Value, error) {
	getter := func(colName string, rowIndex uint32) (values.Value, error) {
		return input, nil
	}
	return engine.NewEvaluator(node, getter).Eval(0)
}

func strCol() *exprs.ColumnNode {
	return exprs.Column("s", dtype.String())
}

func optStrCol() *exprs.ColumnNode {
	return exprs.Column("s", dtype.Optional(dtype.String()))
}

func TestStringOps(t *testing.T) {
	tests := []struct {
		name  string
		build func(o Ops) (exprs.Node, error)
		input string
		want  values.Value
	}{
		{"lower", func(o Ops) (exprs.Node, error) { return o.Lower() }, "MiXeD", values.NewString("mixed")},
		{"upper", func(o Ops) (exprs.Node, error) { return o.Upper() }, "MiXeD", values.NewString("MIXED")},
		{"reversed", func(o Ops) (exprs.Node, error) { return o.Reversed() }, "déjà", values.NewString("àjéd")},
		{"len counts runes", func(o Ops) (exprs.Node, error) { return o.Len() }, "déjà", values.NewInt(4)},
		{"len empty", func(o Ops) (exprs.Node, error) { return o.Len() }, "", values.NewInt(0)},
		{"replace all", func(o Ops) (exprs.Node, error) { return o.Replace("d", "Z") }, "david", values.NewString("ZaviZ")},
		{"replace count", func(o Ops) (exprs.Node, error) { return o.Replace("d", "Z", 1) }, "david", values.NewString("Zavid")},
		{"replace zero count", func(o Ops) (exprs.Node, error) { return o.Replace("d", "Z", 0) }, "david", values.NewString("david")},
		{"starts_with yes", func(o Ops) (exprs.Node, error) { return o.StartsWith("da") }, "david", values.NewBool(true)},
		{"starts_with no", func(o Ops) (exprs.Node, error) { return o.StartsWith("av") }, "david", values.NewBool(false)},
		{"ends_with yes", func(o Ops) (exprs.Node, error) { return o.EndsWith("id") }, "david", values.NewBool(true)},
		{"ends_with no", func(o Ops) (exprs.Node, error) { return o.EndsWith("av") }, "david", values.NewBool(false)},
		{"swap_case", func(o Ops) (exprs.Node, error) { return o.SwapCase() }, "GoLang", values.NewString("gOlANG")},
		{"strip whitespace", func(o Ops) (exprs.Node, error) { return o.Strip() }, "  hi\t", values.NewString("hi")},
		{"strip cutset", func(o Ops) (exprs.Node, error) { return o.Strip("xd") }, "xxhidd", values.NewString("hi")},
		{"title", func(o Ops) (exprs.Node, error) { return o.Title() }, "they're bill's", values.NewString("They'Re Bill'S")},
		{"count", func(o Ops) (exprs.Node, error) { return o.Count("an") }, "banana", values.NewInt(2)},
		{"count empty sub", func(o Ops) (exprs.Node, error) { return o.Count("") }, "abc", values.NewInt(4)},
		{"count with start", func(o Ops) (exprs.Node, error) { return o.Count("a", 2) }, "banana", values.NewInt(2)},
		{"count with range", func(o Ops) (exprs.Node, error) { return o.Count("a", 1, 4) }, "banana", values.NewInt(2)},
		{"find", func(o Ops) (exprs.Node, error) { return o.Find("na") }, "banana", values.NewInt(2)},
		{"find miss", func(o Ops) (exprs.Node, error) { return o.Find("xy") }, "banana", values.NewInt(-1)},
		{"find with start", func(o Ops) (exprs.Node, error) { return o.Find("na", 3) }, "banana", values.NewInt(4)},
		{"rfind", func(o Ops) (exprs.Node, error) { return o.RFind("na") }, "banana", values.NewInt(4)},
		{"rfind with end", func(o Ops) (exprs.Node, error) { return o.RFind("na", 0, 4) }, "banana", values.NewInt(2)},
		{"remove_prefix", func(o Ops) (exprs.Node, error) { return o.RemovePrefix("foo") }, "foobar", values.NewString("bar")},
		{"remove_prefix miss", func(o Ops) (exprs.Node, error) { return o.RemovePrefix("bar") }, "foobar", values.NewString("foobar")},
		{"remove_suffix", func(o Ops) (exprs.Node, error) { return o.RemoveSuffix("bar") }, "foobar", values.NewString("foo")},
		{"slice", func(o Ops) (exprs.Node, error) { return o.Slice(1, 4) }, "hello", values.NewString("ell")},
		{"slice negative end", func(o Ops) (exprs.Node, error) { return o.Slice(1, -1) }, "hello", values.NewString("ell")},
		{"slice negative start", func(o Ops) (exprs.Node, error) { return o.Slice(-3, 99) }, "hello", values.NewString("llo")},
		{"slice empty range", func(o Ops) (exprs.Node, error) { return o.Slice(4, 2) }, "hello", values.NewString("")},
		{"slice runes", func(o Ops) (exprs.Node, error) { return o.Slice(1, 3) }, "déjà", values.NewString("éj")},
		{"parse_int", func(o Ops) (exprs.Node, error) { return o.ParseInt(false) }, "42", values.NewInt(42)},
		{"parse_int trims", func(o Ops) (exprs.Node, error) { return o.ParseInt(false) }, " -7 ", values.NewInt(-7)},
		{"parse_int optional miss", func(o Ops) (exprs.Node, error) { return o.ParseInt(true) }, "3.5", values.None()},
		{"parse_float", func(o Ops) (exprs.Node, error) { return o.ParseFloat(false) }, "2.5", values.NewFloat(2.5)},
		{"parse_float optional miss", func(o Ops) (exprs.Node, error) { return o.ParseFloat(true) }, "oops", values.None()},
		{"parse_bool true", func(o Ops) (exprs.Node, error) { return o.ParseBool(DefaultBoolParsing()) }, "On", values.NewBool(true)},
		{"parse_bool false", func(o Ops) (exprs.Node, error) { return o.ParseBool(DefaultBoolParsing()) }, "NO", values.NewBool(false)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node, err := tc.build(On(strCol()))
			if err != nil {
				t.Fatalf("failed to build expression: %v", err)
			}
			got := evalOn(t, node, values.NewString(tc.input))
			if got.IsNone() != tc.want.IsNone() || got.AsString() != tc.want.AsString() {
				t.Errorf("got %s, want %s", got.AsString(), tc.want.AsString())
			}
		})
	}
}

func TestResultTypes(t *testing.T) {
	tests := []struct {
		name  string
		build func(o Ops) (exprs.Node, error)
		want  dtype.Type
	}{
		{"lower", func(o Ops) (exprs.Node, error) { return o.Lower() }, dtype.String()},
		{"len", func(o Ops) (exprs.Node, error) { return o.Len() }, dtype.Int()},
		{"starts_with", func(o Ops) (exprs.Node, error) { return o.StartsWith("x") }, dtype.Bool()},
		{"parse_int", func(o Ops) (exprs.Node, error) { return o.ParseInt(false) }, dtype.Int()},
		{"parse_int optional", func(o Ops) (exprs.Node, error) { return o.ParseInt(true) }, dtype.Optional(dtype.Int())},
		{"parse_float optional", func(o Ops) (exprs.Node, error) { return o.ParseFloat(true) }, dtype.Optional(dtype.Float())},
		{"parse_bool optional", func(o Ops) (exprs.Node, error) {
			p := DefaultBoolParsing()
			p.Optional = true
			return o.ParseBool(p)
		}, dtype.Optional(dtype.Bool())},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node, err := tc.build(On(strCol()))
			if err != nil {
				t.Fatalf("failed to build expression: %v", err)
			}
			if !node.Type().Equal(tc.want) {
				t.Errorf("type = %s, want %s", node.Type(), tc.want)
			}
		})
	}
}

// A replace call on a column reference produces a four-argument call
// node typed string: receiver, old, new, count.
func TestReplaceCallShape(t *testing.T) {
	node, err := On(strCol()).Replace("d", "Z", -1)
	if err != nil {
		t.Fatalf("failed to build replace: %v", err)
	}
	call, ok := node.(*exprs.CallNode)
	if !ok {
		t.Fatalf("node is %T, want *exprs.CallNode", node)
	}
	if call.Op() != "str.replace" {
		t.Errorf("op = %q, want str.replace", call.Op())
	}
	if !call.Type().Equal(dtype.String()) {
		t.Errorf("type = %s, want string", call.Type())
	}
	if len(call.Children()) != 4 {
		t.Errorf("expected 4 children, got %d", len(call.Children()))
	}
}

func TestOptionalColumnWidensAndShortCircuits(t *testing.T) {
	node, err := On(optStrCol()).Upper()
	if err != nil {
		t.Fatalf("failed to build upper: %v", err)
	}
	if !node.Type().Equal(dtype.Optional(dtype.String())) {
		t.Errorf("type = %s, want string?", node.Type())
	}

	got := evalOn(t, node, values.None())
	if !got.IsNone() {
		t.Errorf("expected absent result for absent input, got %q", got.AsString())
	}

	got = evalOn(t, node, values.NewString("hi"))
	if got.AsString() != "HI" {
		t.Errorf("got %q, want HI", got.AsString())
	}
}

func TestRejectsNonStringReceiver(t *testing.T) {
	intCol := exprs.Column("n", dtype.Int())
	_, err := On(intCol).Lower()
	if err == nil {
		t.Fatal("expected error for int receiver")
	}
	var noMatch *exprs.NoMatchingOverloadError
	if !errors.As(err, &noMatch) {
		t.Fatalf("error is %T, want *NoMatchingOverloadError", err)
	}
}

func TestRejectsBadArgumentType(t *testing.T) {
	if _, err := On(strCol()).Replace(1, "Z"); err == nil {
		t.Fatal("expected error for int oldValue")
	}
	if _, err := On(strCol()).StartsWith(true); err == nil {
		t.Fatal("expected error for bool prefix")
	}
}

func TestParseIntStrictFailsAtRuntime(t *testing.T) {
	node, err := On(strCol()).ParseInt(false)
	if err != nil {
		t.Fatalf("failed to build parse_int: %v", err)
	}
	if _, err := evalOnErr(node, values.NewString("oops")); err == nil {
		t.Error("expected runtime error for unparsable strict parse_int")
	}
}

func TestParseBoolStrictFailsAtRuntime(t *testing.T) {
	node, err := On(strCol()).ParseBool(DefaultBoolParsing())
	if err != nil {
		t.Fatalf("failed to build parse_bool: %v", err)
	}
	if _, err := evalOnErr(node, values.NewString("maybe")); err == nil {
		t.Error("expected runtime error for unrecognized strict parse_bool")
	}
}

func TestChainedOps(t *testing.T) {
	// s.strip().lower().replace("d", "Z")
	stripped, err := On(strCol()).Strip()
	if err != nil {
		t.Fatalf("failed to build strip: %v", err)
	}
	lowered, err := On(stripped).Lower()
	if err != nil {
		t.Fatalf("failed to build lower: %v", err)
	}
	fixed, err := On(lowered).Replace("d", "Z")
	if err != nil {
		t.Fatalf("failed to build replace: %v", err)
	}

	got := evalOn(t, fixed, values.NewString("  DAVID  "))
	if got.AsString() != "ZaviZ" {
		t.Errorf("got %q, want ZaviZ", got.AsString())
	}
}
