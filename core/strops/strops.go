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

/*
Package strops registers the string operations available on column
expressions. Every method follows the same pattern: it computes nothing
itself, it hands a signature list, an operation name, and the argument
expressions to the overload resolver and returns the deferred call node.
Extra arguments may be other expressions or raw Go values; raw values are
wrapped into literals by the resolver.

Indexing operations (slice, find, count bounds) follow the original
slice-notation semantics: indices count runes, negative indices count
from the end, and out-of-range indices clamp.
*/
package strops

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/rivulet/core/dtype"
	"github.com/google/rivulet/core/exprs"
	"github.com/google/rivulet/core/values"
)

// Ops provides the string operations on one column expression.
type Ops struct {
	expr exprs.Node
}

// On wraps an expression for string operations.
func On(expr exprs.Node) Ops {
	return Ops{expr: expr}
}

// Lower returns a lowercase copy of a string.
func (o Ops) Lower() (exprs.Node, error) {
	return exprs.Resolve("str.lower", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String()},
			Result: dtype.String(),
			Impl:   stringImpl(strings.ToLower),
		},
	}, o.expr)
}

// Upper returns an uppercase copy of a string.
func (o Ops) Upper() (exprs.Node, error) {
	return exprs.Resolve("str.upper", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String()},
			Result: dtype.String(),
			Impl:   stringImpl(strings.ToUpper),
		},
	}, o.expr)
}

// Reversed returns a reversed copy of a string.
func (o Ops) Reversed() (exprs.Node, error) {
	return exprs.Resolve("str.reverse", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String()},
			Result: dtype.String(),
			Impl:   stringImpl(reverse),
		},
	}, o.expr)
}

// Len returns the length of a string in runes.
func (o Ops) Len() (exprs.Node, error) {
	return exprs.Resolve("str.len", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String()},
			Result: dtype.Int(),
			Impl: func(args []values.Value) (values.Value, error) {
				return values.NewInt(int64(len([]rune(args[0].AsString())))), nil
			},
		},
	}, o.expr)
}

// Replace returns a copy of the string where occurrences of oldValue are
// replaced by newValue. The optional count limits the number of
// replacements; -1 (the default) replaces all occurrences. The sentinel
// is interpreted by the implementation, not the resolver.
func (o Ops) Replace(oldValue, newValue interface{}, count ...interface{}) (exprs.Node, error) {
	cnt := interface{}(-1)
	if len(count) > 0 {
		cnt = count[0]
	}
	return exprs.Resolve("str.replace", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String(), dtype.String(), dtype.String(), dtype.Int()},
			Result: dtype.String(),
			Impl: func(args []values.Value) (values.Value, error) {
				s := strings.Replace(args[0].AsString(), args[1].AsString(), args[2].AsString(), int(args[3].AsInt()))
				return values.NewString(s), nil
			},
		},
	}, o.expr, oldValue, newValue, cnt)
}

// StartsWith returns true if the string starts with prefix.
func (o Ops) StartsWith(prefix interface{}) (exprs.Node, error) {
	return exprs.Resolve("str.starts_with", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String(), dtype.String()},
			Result: dtype.Bool(),
			Impl: func(args []values.Value) (values.Value, error) {
				return values.NewBool(strings.HasPrefix(args[0].AsString(), args[1].AsString())), nil
			},
		},
	}, o.expr, prefix)
}

// EndsWith returns true if the string ends with suffix.
func (o Ops) EndsWith(suffix interface{}) (exprs.Node, error) {
	return exprs.Resolve("str.ends_with", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String(), dtype.String()},
			Result: dtype.Bool(),
			Impl: func(args []values.Value) (values.Value, error) {
				return values.NewBool(strings.HasSuffix(args[0].AsString(), args[1].AsString())), nil
			},
		},
	}, o.expr, suffix)
}

// SwapCase returns a copy of the string with the case of every letter
// inverted.
func (o Ops) SwapCase() (exprs.Node, error) {
	return exprs.Resolve("str.swap_case", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String()},
			Result: dtype.String(),
			Impl:   stringImpl(swapCase),
		},
	}, o.expr)
}

// Strip returns a copy of the string with leading and trailing characters
// from the cutset removed. Without a cutset, whitespace is removed.
func (o Ops) Strip(chars ...interface{}) (exprs.Node, error) {
	cutset := interface{}(nil)
	if len(chars) > 0 {
		cutset = chars[0]
	}
	return exprs.Resolve("str.strip", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String(), dtype.Optional(dtype.String())},
			Result: dtype.String(),
			Impl: func(args []values.Value) (values.Value, error) {
				if args[1].IsNone() {
					return values.NewString(strings.TrimSpace(args[0].AsString())), nil
				}
				return values.NewString(strings.Trim(args[0].AsString(), args[1].AsString())), nil
			},
		},
	}, o.expr, cutset)
}

// Title returns a copy of the string where every word starts with an
// uppercase letter and the remaining letters are lowercase.
func (o Ops) Title() (exprs.Node, error) {
	return exprs.Resolve("str.title", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String()},
			Result: dtype.String(),
			Impl:   stringImpl(titleCase),
		},
	}, o.expr)
}

// Count returns the number of non-overlapping occurrences of sub in the
// range [start, end). The bounds are optional and interpreted as in slice
// notation.
func (o Ops) Count(sub interface{}, bounds ...interface{}) (exprs.Node, error) {
	start, end := optionalBounds(bounds)
	return exprs.Resolve("str.count", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String(), dtype.String(), dtype.Optional(dtype.Int()), dtype.Optional(dtype.Int())},
			Result: dtype.Int(),
			Impl: func(args []values.Value) (values.Value, error) {
				sliced, _ := sliceRange(args[0].AsString(), args[2], args[3])
				return values.NewInt(int64(strings.Count(sliced, args[1].AsString()))), nil
			},
		},
	}, o.expr, sub, start, end)
}

// Find returns the lowest rune index where sub is found within the slice
// [start, end), or -1 if absent.
func (o Ops) Find(sub interface{}, bounds ...interface{}) (exprs.Node, error) {
	start, end := optionalBounds(bounds)
	return exprs.Resolve("str.find", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String(), dtype.String(), dtype.Optional(dtype.Int()), dtype.Optional(dtype.Int())},
			Result: dtype.Int(),
			Impl: func(args []values.Value) (values.Value, error) {
				sliced, offset := sliceRange(args[0].AsString(), args[2], args[3])
				idx := strings.Index(sliced, args[1].AsString())
				if idx < 0 {
					return values.NewInt(-1), nil
				}
				return values.NewInt(int64(offset + len([]rune(sliced[:idx])))), nil
			},
		},
	}, o.expr, sub, start, end)
}

// RFind returns the highest rune index where sub is found within the
// slice [start, end), or -1 if absent.
func (o Ops) RFind(sub interface{}, bounds ...interface{}) (exprs.Node, error) {
	start, end := optionalBounds(bounds)
	return exprs.Resolve("str.rfind", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String(), dtype.String(), dtype.Optional(dtype.Int()), dtype.Optional(dtype.Int())},
			Result: dtype.Int(),
			Impl: func(args []values.Value) (values.Value, error) {
				sliced, offset := sliceRange(args[0].AsString(), args[2], args[3])
				idx := strings.LastIndex(sliced, args[1].AsString())
				if idx < 0 {
					return values.NewInt(-1), nil
				}
				return values.NewInt(int64(offset + len([]rune(sliced[:idx])))), nil
			},
		},
	}, o.expr, sub, start, end)
}

// RemovePrefix returns the string without the given prefix, or the
// original string if it does not start with it.
func (o Ops) RemovePrefix(prefix interface{}) (exprs.Node, error) {
	return exprs.Resolve("str.remove_prefix", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String(), dtype.String()},
			Result: dtype.String(),
			Impl: func(args []values.Value) (values.Value, error) {
				return values.NewString(strings.TrimPrefix(args[0].AsString(), args[1].AsString())), nil
			},
		},
	}, o.expr, prefix)
}

// RemoveSuffix returns the string without the given suffix, or the
// original string if it does not end with it.
func (o Ops) RemoveSuffix(suffix interface{}) (exprs.Node, error) {
	return exprs.Resolve("str.remove_suffix", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String(), dtype.String()},
			Result: dtype.String(),
			Impl: func(args []values.Value) (values.Value, error) {
				return values.NewString(strings.TrimSuffix(args[0].AsString(), args[1].AsString())), nil
			},
		},
	}, o.expr, suffix)
}

// Slice returns the substring [start, end) in slice notation.
func (o Ops) Slice(start, end interface{}) (exprs.Node, error) {
	return exprs.Resolve("str.slice", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String(), dtype.Int(), dtype.Int()},
			Result: dtype.String(),
			Impl: func(args []values.Value) (values.Value, error) {
				runes := []rune(args[0].AsString())
				lo, hi := sliceBounds(args[1].AsInt(), args[2].AsInt(), len(runes))
				return values.NewString(string(runes[lo:hi])), nil
			},
		},
	}, o.expr, start, end)
}

// ParseInt parses the string to an integer. With optional set, the result
// type is optional and unparsable strings yield absence instead of a
// runtime error.
func (o Ops) ParseInt(optional bool) (exprs.Node, error) {
	result := dtype.Int()
	if optional {
		result = dtype.Optional(result)
	}
	return exprs.Resolve("str.parse_int", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String()},
			Result: result,
			Impl: func(args []values.Value) (values.Value, error) {
				n, err := strconv.ParseInt(strings.TrimSpace(args[0].AsString()), 10, 64)
				if err != nil {
					if optional {
						return values.None(), nil
					}
					return values.None(), fmt.Errorf("cannot parse %q as int", args[0].AsString())
				}
				return values.NewInt(n), nil
			},
		},
	}, o.expr)
}

// ParseFloat parses the string to a float. With optional set, the result
// type is optional and unparsable strings yield absence instead of a
// runtime error.
func (o Ops) ParseFloat(optional bool) (exprs.Node, error) {
	result := dtype.Float()
	if optional {
		result = dtype.Optional(result)
	}
	return exprs.Resolve("str.parse_float", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String()},
			Result: result,
			Impl: func(args []values.Value) (values.Value, error) {
				f, err := strconv.ParseFloat(strings.TrimSpace(args[0].AsString()), 64)
				if err != nil {
					if optional {
						return values.None(), nil
					}
					return values.None(), fmt.Errorf("cannot parse %q as float", args[0].AsString())
				}
				return values.NewFloat(f), nil
			},
		},
	}, o.expr)
}

// BoolParsing configures ParseBool. The recognized token sets are
// explicit configuration rather than process-wide defaults so resolution
// stays pure and testable.
type BoolParsing struct {
	TrueValues  []string
	FalseValues []string
	Optional    bool
}

// DefaultBoolParsing returns the conventional true/false token sets.
func DefaultBoolParsing() BoolParsing {
	return BoolParsing{
		TrueValues:  []string{"on", "true", "yes", "1"},
		FalseValues: []string{"off", "false", "no", "0"},
	}
}

// ParseBool parses the string to a boolean by membership in the
// configured token sets. Matching is case-insensitive. Strings in neither
// set yield absence when Optional is set and a runtime error otherwise.
func (o Ops) ParseBool(p BoolParsing) (exprs.Node, error) {
	trueSet := lowercaseSet(p.TrueValues)
	falseSet := lowercaseSet(p.FalseValues)
	result := dtype.Bool()
	if p.Optional {
		result = dtype.Optional(result)
	}
	return exprs.Resolve("str.parse_bool", []exprs.Signature{
		{
			Args:   []dtype.Type{dtype.String()},
			Result: result,
			Impl: func(args []values.Value) (values.Value, error) {
				s := strings.ToLower(args[0].AsString())
				if trueSet[s] {
					return values.NewBool(true), nil
				}
				if falseSet[s] {
					return values.NewBool(false), nil
				}
				if p.Optional {
					return values.None(), nil
				}
				return values.None(), fmt.Errorf("cannot parse %q as bool", args[0].AsString())
			},
		},
	}, o.expr)
}
