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

package exprs

import (
	"github.com/google/rivulet/core/dtype"
	"github.com/google/rivulet/core/values"
)

// Impl is a native implementation of one signature. It receives the
// evaluated argument values in order and returns the result. Arguments
// declared optional by the signature may be absent; all others are
// guaranteed present by the adaptor.
type Impl func(args []values.Value) (values.Value, error)

// Signature is one candidate of an overloaded operation: the accepted
// argument types, the result type, and the native implementation invoked
// when the candidate is chosen.
type Signature struct {
	Args   []dtype.Type
	Result dtype.Type
	Impl   Impl
}

// Adaptor wraps a chosen implementation with the absence handling decided
// at resolution time. The execution engine invokes it with runtime values
// and never needs to know about optionality rules.
type Adaptor func(args []values.Value) (values.Value, error)

// Resolve selects the first signature matching the argument types and
// builds the call node. Arguments may be already-built nodes or raw Go
// values, which are auto-wrapped into literals.
//
// Candidates are tried strictly in declaration order and the first match
// wins; there is no backtracking and no most-specific tie-break, so
// signature lists must be authored with the intended candidate first.
// A candidate matches when every position matches:
//
//   - the argument type equals the expected type, or
//   - the expected type is optional and the argument is its base type,
//     the same optional type, or the absence literal, or
//   - the expected type is non-optional and the argument is its optional
//     version; the call is then nullable-tainted and its result type is
//     widened to optional, since an absent argument must yield an absent
//     result rather than reach the implementation.
//
// Resolution is pure and deterministic; failure is a build-time
// *NoMatchingOverloadError.
func Resolve(op string, sigs []Signature, args ...interface{}) (*CallNode, error) {
	children := make([]Node, len(args))
	argTypes := make([]dtype.Type, len(args))
	for i, arg := range args {
		node, ok := arg.(Node)
		if !ok {
			lit, err := Literal(arg)
			if err != nil {
				return nil, err
			}
			node = lit
		}
		children[i] = node
		argTypes[i] = node.Type()
	}

	for _, sig := range sigs {
		tainted, ok := match(sig.Args, argTypes)
		if !ok {
			continue
		}
		result := sig.Result
		if tainted {
			result = dtype.Optional(result)
		}
		return &CallNode{
			op:       op,
			typ:      result,
			adaptor:  makeAdaptor(sig.Impl, tainted),
			children: children,
		}, nil
	}

	return nil, &NoMatchingOverloadError{Op: op, ArgTypes: argTypes}
}

// match checks one candidate's argument pattern against the actual types.
// It reports whether the candidate is nullable-tainted and whether it
// matches at all.
func match(expected, actual []dtype.Type) (tainted, ok bool) {
	if len(expected) != len(actual) {
		return false, false
	}
	for i := range expected {
		exp, act := expected[i], actual[i]
		switch {
		case act.Equal(exp):
			// exact match
		case exp.IsOptional() && (act.Equal(exp.Base()) || act.Equal(dtype.Unbound())):
			// expected admits absence; a present base value or a bare
			// absence literal both fit
		case !exp.IsOptional() && act.Equal(dtype.Optional(exp)):
			tainted = true
		default:
			return false, false
		}
	}
	return tainted, true
}

// makeAdaptor binds the chosen implementation. For nullable-tainted calls
// any absent runtime argument short-circuits to an absent result without
// invoking the implementation; arguments the signature itself declared
// optional are passed through, absent or not.
func makeAdaptor(impl Impl, tainted bool) Adaptor {
	if !tainted {
		return Adaptor(impl)
	}
	return func(args []values.Value) (values.Value, error) {
		for _, a := range args {
			if a.IsNone() {
				return values.None(), nil
			}
		}
		return impl(args)
	}
}
