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
	"fmt"
	"strings"

	"github.com/google/rivulet/core/dtype"
)

// NoMatchingOverloadError reports that no candidate signature matched the
// argument types of an operation. It surfaces at program build time and
// must prevent the tree from reaching the execution engine.
type NoMatchingOverloadError struct {
	Op       string
	ArgTypes []dtype.Type
}

func (e *NoMatchingOverloadError) Error() string {
	names := make([]string, len(e.ArgTypes))
	for i, t := range e.ArgTypes {
		names[i] = t.String()
	}
	return fmt.Sprintf("no matching overload for %s(%s)", e.Op, strings.Join(names, ", "))
}

// BadLiteralError reports a raw argument value whose type cannot be
// inferred for auto-wrapping into a literal.
type BadLiteralError struct {
	Value interface{}
}

func (e *BadLiteralError) Error() string {
	return fmt.Sprintf("cannot infer expression type for literal value of type %T", e.Value)
}
