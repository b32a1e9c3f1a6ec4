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

package demo

import (
	"fmt"

	"github.com/google/rivulet/core/engine"
	"github.com/google/rivulet/core/exprs"
	"github.com/google/rivulet/core/strops"
	"github.com/google/rivulet/core/tables"
)

// AttachPeopleDerived adds derived columns to the people table:
//
//	name_title: name in title case
//	name_len:   rune count of name
//	fixed:      name with every "d" replaced by "Z"
//	initial:    first character of name
func AttachPeopleDerived(dt *tables.DataTable) error {
	name, err := dt.Schema().Ref("name")
	if err != nil {
		return err
	}

	derived := []struct {
		column string
		build  func() (exprs.Node, error)
	}{
		{"name_title", func() (exprs.Node, error) { return strops.On(name).Title() }},
		{"name_len", func() (exprs.Node, error) { return strops.On(name).Len() }},
		{"fixed", func() (exprs.Node, error) { return strops.On(name).Replace("d", "Z") }},
		{"initial", func() (exprs.Node, error) { return strops.On(name).Slice(0, 1) }},
	}

	for _, d := range derived {
		node, err := d.build()
		if err != nil {
			return fmt.Errorf("failed to build %s: %w", d.column, err)
		}
		if err := engine.AddDerived(dt, d.column, node); err != nil {
			return err
		}
	}
	return nil
}

// AttachReadingsDerived adds typed derived columns to the readings
// table. Raw values that do not parse come out absent rather than
// failing the evaluation.
func AttachReadingsDerived(dt *tables.DataTable) error {
	rawValue, err := dt.Schema().Ref("raw_value")
	if err != nil {
		return err
	}
	rawFlag, err := dt.Schema().Ref("raw_flag")
	if err != nil {
		return err
	}

	derived := []struct {
		column string
		build  func() (exprs.Node, error)
	}{
		{"value_int", func() (exprs.Node, error) { return strops.On(rawValue).ParseInt(true) }},
		{"value_float", func() (exprs.Node, error) { return strops.On(rawValue).ParseFloat(true) }},
		{"flag", func() (exprs.Node, error) { return strops.On(rawFlag).ParseBool(strops.DefaultBoolParsing()) }},
	}

	for _, d := range derived {
		node, err := d.build()
		if err != nil {
			return fmt.Errorf("failed to build %s: %w", d.column, err)
		}
		if err := engine.AddDerived(dt, d.column, node); err != nil {
			return err
		}
	}
	return nil
}
