/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rivulet Authors
*/

package datasources

import (
	"testing"

	"github.com/google/rivulet/core/columns"
	"github.com/google/rivulet/core/dtype"
	"github.com/google/rivulet/core/tables"
)

// fakeLoader builds a one-column table and counts how often it is asked.
type fakeLoader struct {
	discoverCalls int
	loadCalls     int
}

func (l *fakeLoader) SourceType() string {
	return "fake"
}

func (l *fakeLoader) DiscoverSpec(config map[string]string) (*TableSpec, error) {
	l.discoverCalls++
	return &TableSpec{Columns: []ColumnSpec{{Name: "name", Type: dtype.String()}}}, nil
}

func (l *fakeLoader) Load(config map[string]string, spec *TableSpec) (*tables.DataTable, error) {
	l.loadCalls++
	col := columns.NewStringColumn(columns.NewColumnDef("name", "Name"))
	col.Append("alice")
	col.Append("bob")
	table := tables.NewDataTable()
	if err := table.AddColumn(col); err != nil {
		return nil, err
	}
	return table, nil
}

func TestManagerLazyLoading(t *testing.T) {
	manager := NewManager()
	loader := &fakeLoader{}
	manager.RegisterLoader(loader)
	manager.AddSource(&Source{Name: "people", SourceType: "fake"})

	if manager.IsLoaded("people") {
		t.Error("people should not be loaded before first access")
	}
	if loader.loadCalls != 0 {
		t.Errorf("expected 0 load calls before first access, got %d", loader.loadCalls)
	}

	table, err := manager.LoadData("people")
	if err != nil {
		t.Fatalf("failed to load data: %v", err)
	}
	if got := table.NumRows(); got != 2 {
		t.Errorf("expected 2 rows, got %d", got)
	}
	if !manager.IsLoaded("people") {
		t.Error("people should be loaded now")
	}

	table2, err := manager.LoadData("people")
	if err != nil {
		t.Fatalf("failed to load cached data: %v", err)
	}
	if table != table2 {
		t.Error("expected same table instance from cache")
	}
	if loader.loadCalls != 1 {
		t.Errorf("expected 1 load call after cached access, got %d", loader.loadCalls)
	}

	manager.InvalidateCache("people")
	if manager.IsLoaded("people") {
		t.Error("people should not be loaded after invalidation")
	}
	if _, err := manager.LoadData("people"); err != nil {
		t.Fatalf("failed to reload data: %v", err)
	}
	if loader.loadCalls != 2 {
		t.Errorf("expected 2 load calls after invalidation, got %d", loader.loadCalls)
	}
}

func TestManagerErrors(t *testing.T) {
	manager := NewManager()

	if _, err := manager.LoadData("missing"); err == nil {
		t.Error("expected error for unknown source")
	}

	manager.AddSource(&Source{Name: "orphan", SourceType: "nosuch"})
	if _, err := manager.LoadData("orphan"); err == nil {
		t.Error("expected error for unregistered loader type")
	}
}

func TestManagerSourceNames(t *testing.T) {
	manager := NewManager()
	manager.AddSource(&Source{Name: "zeta", SourceType: "fake"})
	manager.AddSource(&Source{Name: "alpha", SourceType: "fake"})

	names := manager.GetSourceNames()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("expected sorted names [alpha zeta], got %v", names)
	}
}
