/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rivulet Authors
*/

package exprlang

import (
	"strings"
	"testing"

	"github.com/google/rivulet/core/dtype"
	"github.com/google/rivulet/core/engine"
	"github.com/google/rivulet/core/exprs"
	"github.com/google/rivulet/core/schema"
	"github.com/google/rivulet/core/values"
)

func peopleSchema() *schema.Schema {
	s := schema.New()
	s.Add("name", dtype.String())
	s.Add("nickname", dtype.Optional(dtype.String()))
	return s
}

// compileEval compiles source against the schema and evaluates it on a
// single row whose column values come from row.
func compileEval(t *testing.T, source string, row map[string]values.Value) values.Value {
	t.Helper()
	node, err := Compile(source, peopleSchema())
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", source, err)
	}
	getter := func(colName string, rowIndex uint32) (values.Value, error) {
		return row[colName], nil
	}
	v, err := engine.NewEvaluator(node, getter).Eval(0)
	if err != nil {
		t.Fatalf("evaluating %q failed: %v", source, err)
	}
	return v
}

func TestCompileAndEvaluate(t *testing.T) {
	row := map[string]values.Value{
		"name":     values.NewString("david"),
		"nickname": values.None(),
	}
	tests := []struct {
		source string
		want   values.Value
	}{
		{`name.lower()`, values.NewString("david")},
		{`name.upper()`, values.NewString("DAVID")},
		{`lower(name)`, values.NewString("david")},
		{`name.replace("d", "Z")`, values.NewString("ZaviZ")},
		{`name.replace('d', 'Z', 1)`, values.NewString("Zavid")},
		{`replace(name, "d", "Z")`, values.NewString("ZaviZ")},
		{`name.len()`, values.NewInt(5)},
		{`name.slice(1, -1)`, values.NewString("avi")},
		{`name.startswith("da")`, values.NewBool(true)},
		{`name.find("vi")`, values.NewInt(2)},
		{`name.find("vi", 3)`, values.NewInt(-1)},
		{`name.strip().title()`, values.NewString("David")},
		{`name.upper().lower().reversed()`, values.NewString("divad")},
		{`(name.removeprefix("da")).upper()`, values.NewString("VID")},
		{`nickname.upper()`, values.None()},
		{`name`, values.NewString("david")},
		{`"hi".upper()`, values.NewString("HI")},
		{`42`, values.NewInt(42)},
		{`-3.5`, values.NewFloat(-3.5)},
		{`none`, values.None()},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got := compileEval(t, tt.source, row)
			if got != tt.want {
				t.Errorf("got %s, want %s", got.AsString(), tt.want.AsString())
			}
		})
	}
}

func TestCompileTypes(t *testing.T) {
	tests := []struct {
		source string
		want   dtype.Type
	}{
		{`name.lower()`, dtype.String()},
		{`name.len()`, dtype.Int()},
		{`name.startswith("a")`, dtype.Bool()},
		{`nickname.lower()`, dtype.Optional(dtype.String())},
		{`name.parse_int()`, dtype.Int()},
		{`name.parse_int(true)`, dtype.Optional(dtype.Int())},
		{`name.parse_float(True)`, dtype.Optional(dtype.Float())},
		{`name.parse_bool()`, dtype.Bool()},
		{`3.5`, dtype.Float()},
		{`none`, dtype.Unbound()},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			node, err := Compile(tt.source, peopleSchema())
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", tt.source, err)
			}
			if !node.Type().Equal(tt.want) {
				t.Errorf("type = %s, want %s", node.Type(), tt.want)
			}
		})
	}
}

func TestCompileParseOptionalMiss(t *testing.T) {
	row := map[string]values.Value{"name": values.NewString("oops")}
	got := compileEval(t, `name.parse_int(true)`, row)
	if !got.IsNone() {
		t.Errorf("parse_int(true) on %q = %s, want None", "oops", got.AsString())
	}
}

func TestCompileBuildsCallNode(t *testing.T) {
	node, err := Compile(`name.replace("d", "Z")`, peopleSchema())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	cn, ok := node.(*exprs.CallNode)
	if !ok {
		t.Fatalf("node is %T, want *exprs.CallNode", node)
	}
	if cn.Op() != "str.replace" {
		t.Errorf("Op() = %q, want %q", cn.Op(), "str.replace")
	}
	if len(cn.Children()) != 4 {
		t.Errorf("len(Children()) = %d, want 4", len(cn.Children()))
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr string
	}{
		{"empty", ``, "empty expression"},
		{"unknown column", `missing.lower()`, `column "missing" not found in schema`},
		{"unknown operation", `name.frobnicate()`, "unknown operation: frobnicate"},
		{"function form without receiver", `lower()`, "lower() needs at least one argument"},
		{"too few arguments", `name.replace("a")`, "replace takes 2 to 3 arguments, got 1"},
		{"too many arguments", `name.slice(1, 2, 3)`, "slice takes 2 to 2 arguments, got 3"},
		{"non-literal parse flag", `name.parse_int(name)`, "parse_int flag must be a boolean literal"},
		{"none parse flag", `name.parse_bool(none)`, "parse_bool flag must be a boolean literal"},
		{"receiver type mismatch", `42.lower()`, "no matching overload"},
		{"trailing tokens", `name.lower() name`, "after expression"},
		{"unterminated string", `name.replace("d`, "unterminated string"},
		{"missing paren", `name.lower(`, "unexpected end of expression"},
		{"bare minus", `-name`, "expected number after '-'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.source, peopleSchema())
			if err == nil {
				t.Fatalf("Compile(%q) succeeded, want error", tt.source)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
