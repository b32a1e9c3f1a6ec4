/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rivulet Authors
*/

package columns

import (
	"testing"

	"github.com/google/rivulet/core/dtype"
	"github.com/google/rivulet/core/values"
)

func TestStringColumn(t *testing.T) {
	col := NewStringColumn(NewColumnDef("name", "Name"))
	col.Append("Alice")
	col.Append("Bob")

	if col.Len() != 2 {
		t.Errorf("Len = %d, want 2", col.Len())
	}
	if !col.Type().Equal(dtype.String()) {
		t.Errorf("Type = %s, want string", col.Type())
	}

	v, err := col.Value(1)
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if v.AsString() != "Bob" {
		t.Errorf("Value(1) = %q, want Bob", v.AsString())
	}

	if _, err := col.Value(2); err == nil {
		t.Error("expected out-of-bounds error")
	}
	if err := col.AppendNone(); err == nil {
		t.Error("expected error appending absence to non-optional column")
	}
}

func TestOptionalColumn(t *testing.T) {
	col := NewOptionalInt64Column(NewColumnDef("age", "Age"))
	col.Append(30)
	if err := col.AppendNone(); err != nil {
		t.Fatalf("AppendNone failed: %v", err)
	}

	if !col.Type().Equal(dtype.Optional(dtype.Int())) {
		t.Errorf("Type = %s, want int?", col.Type())
	}

	v, err := col.Value(0)
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if v.AsInt() != 30 {
		t.Errorf("Value(0) = %d, want 30", v.AsInt())
	}

	v, err = col.Value(1)
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if !v.IsNone() {
		t.Error("Value(1) should be absent")
	}

	s, err := col.GetString(1)
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if s != "None" {
		t.Errorf("GetString(1) = %q, want None", s)
	}
}

func TestAppendValue(t *testing.T) {
	col := NewOptionalFloat64Column(NewColumnDef("score", "Score"))
	if err := col.AppendValue(values.NewFloat(1.5)); err != nil {
		t.Fatalf("AppendValue failed: %v", err)
	}
	if err := col.AppendValue(values.None()); err != nil {
		t.Fatalf("AppendValue(None) failed: %v", err)
	}
	if err := col.AppendValue(values.NewString("oops")); err == nil {
		t.Error("expected type error appending string to float column")
	}
	if col.Len() != 2 {
		t.Errorf("Len = %d, want 2", col.Len())
	}
}

func TestNewColumn(t *testing.T) {
	tests := []struct {
		typ dtype.Type
	}{
		{dtype.String()},
		{dtype.Optional(dtype.String())},
		{dtype.Int()},
		{dtype.Float()},
		{dtype.Bool()},
		{dtype.Optional(dtype.Bool())},
	}
	for _, tc := range tests {
		col, err := NewColumn(NewColumnDef("c", "C"), tc.typ)
		if err != nil {
			t.Fatalf("NewColumn(%s) failed: %v", tc.typ, err)
		}
		if !col.Type().Equal(tc.typ) {
			t.Errorf("NewColumn(%s).Type() = %s", tc.typ, col.Type())
		}
	}

	if _, err := NewColumn(NewColumnDef("c", "C"), dtype.Unbound()); err == nil {
		t.Error("expected error for unbound column type")
	}
}

func TestDerivedColumn(t *testing.T) {
	col := NewDerivedColumn(NewColumnDef("twice", "Twice"), dtype.Int(), 3, func(i uint32) (values.Value, error) {
		return values.NewInt(int64(i) * 2), nil
	})

	if col.Len() != 3 {
		t.Errorf("Len = %d, want 3", col.Len())
	}
	v, err := col.Value(2)
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if v.AsInt() != 4 {
		t.Errorf("Value(2) = %d, want 4", v.AsInt())
	}
	if _, err := col.Value(3); err == nil {
		t.Error("expected out-of-bounds error")
	}
}
