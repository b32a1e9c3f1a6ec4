/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rivulet Authors
*/

package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/rivulet/core/columns"
	"github.com/google/rivulet/core/models"
	"github.com/google/rivulet/core/tables"
)

func newTestModel(t *testing.T) *models.DataModel {
	t.Helper()
	name := columns.NewStringColumn(columns.NewColumnDef("name", "Name"))
	for _, n := range []string{"Alice", "Bob", "CAROLE", "david"} {
		name.Append(n)
	}
	dt := tables.NewDataTable()
	if err := dt.AddColumn(name); err != nil {
		t.Fatalf("AddColumn failed: %v", err)
	}

	dm := models.NewDataModel()
	dm.AddTable("people", dt)
	return dm
}

func newTestServer(t *testing.T) (*models.DataModel, *http.ServeMux) {
	t.Helper()
	dm := newTestModel(t)
	srv, err := NewServer(dm, "Test Tables")
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	mux := http.NewServeMux()
	srv.RegisterHandlers(mux)
	return dm, mux
}

func get(t *testing.T, mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
	return rec
}

func TestLandingPage(t *testing.T) {
	_, mux := newTestServer(t)
	rec := get(t, mux, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "people") {
		t.Errorf("landing page does not list the people table:\n%s", body)
	}
	if !strings.Contains(body, "table=people") {
		t.Errorf("landing page does not link to the table view:\n%s", body)
	}
}

func TestLandingPageUnknownPath(t *testing.T) {
	_, mux := newTestServer(t)
	if rec := get(t, mux, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /nope = %d, want 404", rec.Code)
	}
}

func TestTablePage(t *testing.T) {
	_, mux := newTestServer(t)
	rec := get(t, mux, "/table?table=people")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /table = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Alice", "CAROLE", "david"} {
		if !strings.Contains(body, want) {
			t.Errorf("table page missing %q:\n%s", want, body)
		}
	}
}

func TestTablePageUnknownTable(t *testing.T) {
	_, mux := newTestServer(t)
	if rec := get(t, mux, "/table?table=ghosts"); rec.Code != http.StatusNotFound {
		t.Errorf("GET unknown table = %d, want 404", rec.Code)
	}
}

func TestTablePageWithDerivedColumn(t *testing.T) {
	dm, mux := newTestServer(t)
	rec := get(t, mux, "/table?table=people&derived=name_lower%3Dname.lower()")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET with derived = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "carole") {
		t.Errorf("derived column values missing:\n%s", body)
	}

	// The request must not have mutated the shared base table.
	if dm.GetTable("people").GetColumn("name_lower") != nil {
		t.Error("request added the derived column to the base table")
	}
}

func TestTablePageChainedDerived(t *testing.T) {
	// The second definition references the first.
	_, mux := newTestServer(t)
	rec := get(t, mux, "/table?table=people&derived=low%3Dname.lower()%3Bup%3Dlow.upper()")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET with chained derived = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "DAVID") {
		t.Errorf("chained derived column missing:\n%s", body)
	}
}

func TestTablePageDerivedError(t *testing.T) {
	_, mux := newTestServer(t)
	rec := get(t, mux, "/table?table=people&derived=bad%3Dname.frobnicate()")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET with bad derived = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "unknown operation: frobnicate") {
		t.Errorf("compile error not surfaced:\n%s", body)
	}
	// The failed column never becomes part of the view.
	if strings.Contains(body, `<th class="derived"`) {
		t.Errorf("failed derived column rendered as header:\n%s", body)
	}
}

func TestTablePageLimit(t *testing.T) {
	_, mux := newTestServer(t)
	rec := get(t, mux, "/table?table=people&limit=2")
	body := rec.Body.String()
	if !strings.Contains(body, "Showing 2 of 4 rows") {
		t.Errorf("pagination line missing:\n%s", body)
	}
	if strings.Contains(body, "david") {
		t.Errorf("rows past the limit rendered:\n%s", body)
	}
}
