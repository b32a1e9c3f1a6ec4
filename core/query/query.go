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

// Package query parses and re-encodes the URL state of a table view.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/safehtml"
)

// DerivedColumnDef represents a derived column definition from a URL.
type DerivedColumnDef struct {
	Name       string // Column name
	Expression string // Expression as entered by the user, e.g. name.lower()
}

// Query represents the parsed state of a table view URL.
type Query struct {
	// Base path (e.g., "/table")
	Path string

	Table   string             // The table being viewed
	Columns []string           // Ordered list of visible columns (empty = all)
	Limit   int                // Number of rows to display (0 = show all)
	Derived []DerivedColumnDef // Derived column definitions
}

// DefaultLimit is used when the URL does not carry a limit parameter.
const DefaultLimit = 25

// NewQuery creates a Query from a URL.
func NewQuery(u *url.URL) *Query {
	state := &Query{
		Path:  u.Path,
		Limit: DefaultLimit,
	}

	q := u.Query()

	state.Table = q.Get("table")

	columnsStr := q.Get("columns")
	if columnsStr != "" {
		state.Columns = strings.Split(columnsStr, ",")
	}

	limitStr := q.Get("limit")
	if limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 0 {
			state.Limit = limit
		}
	}

	// Derived columns parameter, format: name=expression;name2=expression2
	derivedStr := q.Get("derived")
	if derivedStr != "" {
		state.Derived = parseDerivedColumns(derivedStr)
	}

	return state
}

// parseDerivedColumns parses the derived parameter string.
// Format: name=expression (e.g., name_lower=name.lower())
func parseDerivedColumns(derivedStr string) []DerivedColumnDef {
	var result []DerivedColumnDef
	definitions := strings.Split(derivedStr, ";")
	for _, def := range definitions {
		if def == "" {
			continue
		}
		eqIdx := strings.Index(def, "=")
		if eqIdx == -1 {
			continue
		}
		result = append(result, DerivedColumnDef{
			Name:       def[:eqIdx],
			Expression: def[eqIdx+1:],
		})
	}
	return result
}

// Encode converts the Query back to a URL query string.
func (s *Query) Encode() string {
	q := url.Values{}
	if s.Table != "" {
		q.Set("table", s.Table)
	}
	if len(s.Columns) > 0 {
		q.Set("columns", strings.Join(s.Columns, ","))
	}
	if s.Limit != DefaultLimit {
		q.Set("limit", strconv.Itoa(s.Limit))
	}
	if len(s.Derived) > 0 {
		defs := make([]string, len(s.Derived))
		for i, d := range s.Derived {
			defs[i] = d.Name + "=" + d.Expression
		}
		q.Set("derived", strings.Join(defs, ";"))
	}
	return q.Encode()
}

// ToSafeURL converts the Query to a safehtml.URL.
func (s *Query) ToSafeURL() safehtml.URL {
	urlStr := s.Path + "?" + s.Encode()
	return safehtml.URLSanitized(urlStr)
}

// WithLimit returns a URL with the row limit replaced.
func (s *Query) WithLimit(limit int) safehtml.URL {
	clone := *s
	clone.Limit = limit
	return clone.ToSafeURL()
}

// WithoutDerived returns a URL with the named derived column removed.
func (s *Query) WithoutDerived(name string) safehtml.URL {
	clone := *s
	clone.Derived = nil
	for _, d := range s.Derived {
		if d.Name != name {
			clone.Derived = append(clone.Derived, d)
		}
	}
	return clone.ToSafeURL()
}
