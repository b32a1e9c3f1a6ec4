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

package tables

import (
	"fmt"
	"strings"
)

// ToAscii returns a string representation of the table with ASCII borders,
// for debugging and tests.
func (dt *DataTable) ToAscii() string {
	names := dt.GetColumnNames()
	if len(names) == 0 {
		return ""
	}

	// Column widths: header vs widest cell
	widths := make([]int, len(names))
	for i, name := range names {
		widths[i] = len(name)
	}
	numRows := dt.NumRows()
	cells := make([][]string, numRows)
	for row := 0; row < numRows; row++ {
		cells[row] = make([]string, len(names))
		for i, name := range names {
			s, err := dt.columns[name].GetString(uint32(row))
			if err != nil {
				s = fmt.Sprintf("<%v>", err)
			}
			cells[row][i] = s
			if len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			sb.WriteString("| ")
			sb.WriteString(fmt.Sprintf("%-*s ", widths[i], cell))
		}
		sb.WriteString("|\n")
	}
	writeBorder := func() {
		for _, w := range widths {
			sb.WriteString("+")
			sb.WriteString(strings.Repeat("-", w+2))
		}
		sb.WriteString("+\n")
	}

	writeBorder()
	writeRow(names)
	writeBorder()
	for _, row := range cells {
		writeRow(row)
	}
	writeBorder()
	return sb.String()
}
