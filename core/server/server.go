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

// Package server serves tables over HTTP for inspection. Users can add
// derived columns to a view by URL, e.g.
//
//	/table?table=people&derived=name_lower=name.lower()
//
// Derived-column expressions are compiled at request time; compilation
// failures are reported on the page and never reach evaluation.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/google/rivulet/core/engine"
	"github.com/google/rivulet/core/exprlang"
	"github.com/google/rivulet/core/models"
	"github.com/google/rivulet/core/query"
	"github.com/google/rivulet/core/rendering"
	"github.com/google/rivulet/core/tables"
	"github.com/google/rivulet/core/views"
)

// Server represents the application server with all its dependencies.
type Server struct {
	dataModel *models.DataModel
	renderer  *rendering.TableRenderer
	title     string
}

// NewServer creates a new server with the given data model.
func NewServer(dataModel *models.DataModel, title string) (*Server, error) {
	renderer, err := rendering.NewTableRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	return &Server{
		dataModel: dataModel,
		renderer:  renderer,
		title:     title,
	}, nil
}

// RegisterHandlers registers the server's routes on the mux.
func (s *Server) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleLanding)
	mux.HandleFunc("/table", s.handleTable)
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	vm := views.LandingViewModel{Title: s.title}
	for _, name := range s.dataModel.TableNames() {
		dt := s.dataModel.GetTable(name)
		q := &query.Query{Path: "/table", Table: name, Limit: query.DefaultLimit}
		vm.Tables = append(vm.Tables, views.TableInfo{
			Name:    name,
			NumRows: dt.NumRows(),
			NumCols: len(dt.GetColumnNames()),
			URL:     q.ToSafeURL(),
		})
	}

	if err := s.renderer.RenderLanding(w, vm); err != nil {
		log.Printf("failed to render landing page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	q := query.NewQuery(r.URL)

	base := s.dataModel.GetTable(q.Table)
	if base == nil {
		http.Error(w, fmt.Sprintf("table %q not found", q.Table), http.StatusNotFound)
		return
	}

	view, derivedErrors := buildView(base, q)

	vm := views.BuildTableViewModel(q.Table, view, q, derivedErrors)
	if err := s.renderer.Render(w, vm); err != nil {
		log.Printf("failed to render table %q: %v", q.Table, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// buildView assembles a per-request table: the base columns plus the
// requested derived columns. The base table is shared and never mutated.
// Derived expressions compile against the view's schema, so a definition
// may reference derived columns defined before it.
func buildView(base *tables.DataTable, q *query.Query) (*tables.DataTable, map[string]string) {
	view := tables.NewDataTable()
	for _, name := range base.GetColumnNames() {
		// ignore: names are unique and lengths match the base table
		_ = view.AddColumn(base.GetColumn(name))
	}

	derivedErrors := make(map[string]string)
	for _, def := range q.Derived {
		node, err := exprlang.Compile(def.Expression, view.Schema())
		if err != nil {
			derivedErrors[def.Name] = err.Error()
			continue
		}
		if err := engine.AddDerived(view, def.Name, node); err != nil {
			derivedErrors[def.Name] = err.Error()
		}
	}
	return view, derivedErrors
}
