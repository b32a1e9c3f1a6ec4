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

package strops

import (
	"strings"
	"unicode"

	"github.com/google/rivulet/core/values"
)

// stringImpl adapts a plain string function into a one-argument
// implementation.
func stringImpl(f func(string) string) func([]values.Value) (values.Value, error) {
	return func(args []values.Value) (values.Value, error) {
		return values.NewString(f(args[0].AsString())), nil
	}
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		default:
			return r
		}
	}, s)
}

// titleCase uppercases every letter that follows a non-letter and
// lowercases the rest, so "they're bill's" becomes "They'Re Bill'S".
func titleCase(s string) string {
	var sb strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				sb.WriteRune(unicode.ToLower(r))
			} else {
				sb.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			sb.WriteRune(r)
			prevLetter = false
		}
	}
	return sb.String()
}

// optionalBounds spreads up to two variadic bound arguments into start
// and end, defaulting missing bounds to absence literals.
func optionalBounds(bounds []interface{}) (start, end interface{}) {
	if len(bounds) > 0 {
		start = bounds[0]
	}
	if len(bounds) > 1 {
		end = bounds[1]
	}
	return start, end
}

// sliceBounds normalizes slice-notation indices over n runes: negative
// indices count from the end and out-of-range indices clamp.
func sliceBounds(start, end int64, n int) (int, int) {
	lo := normalizeIndex(start, n)
	hi := normalizeIndex(end, n)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func normalizeIndex(i int64, n int) int {
	if i < 0 {
		i += int64(n)
	}
	if i < 0 {
		return 0
	}
	if i > int64(n) {
		return n
	}
	return int(i)
}

// sliceRange applies optional slice bounds to s and returns the sliced
// string together with the rune offset of its first character.
func sliceRange(s string, start, end values.Value) (string, int) {
	runes := []rune(s)
	lo, hi := 0, len(runes)
	if !start.IsNone() {
		lo = normalizeIndex(start.AsInt(), len(runes))
	}
	if !end.IsNone() {
		hi = normalizeIndex(end.AsInt(), len(runes))
	}
	if hi < lo {
		hi = lo
	}
	return string(runes[lo:hi]), lo
}

func lowercaseSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		set[strings.ToLower(tok)] = true
	}
	return set
}
