// Copyright 2022 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parse

import "github.com/irtext/llparse/ir"

// parseValue implements the context-sensitive value occurrence of spec
// §4.6 "Value resolution within an instruction": a `%name` is resolved to
// ValArgument(i) when it matches the i-th named entry of args, and falls
// back to ValLocal otherwise; anything else is a constant. Constants never
// participate in the argument lookup.
func parseValue(s scanner, args []ir.Arg) (scanner, ir.Value, bool) {
	if n, name, ok := s.localName(); ok {
		if i, found := resolveArgument(args, name); found {
			return n, ir.ValArgument{Index: i}, true
		}
		return n, ir.ValLocal{Name: name}, true
	}
	if n, c, ok := parseConstant(s); ok {
		return n, ir.ValConstant{Const: c}, true
	}
	return s, nil, false
}

// resolveArgument searches args for a named entry equal to name, the
// lookup behind spec invariant 2 (every Argument(i) names a parameter that
// itself carries that name).
func resolveArgument(args []ir.Arg, name string) (int, bool) {
	for i, a := range args {
		if a.Name != "" && a.Name == name {
			return i, true
		}
	}
	return 0, false
}

// parseTypedValue implements the `T V` typed-value form and its `metadata`
// typed-value special case (spec §4.5/§4.6).
func parseTypedValue(s scanner, args []ir.Arg) (scanner, ir.TypedValue, bool) {
	if n, ok := s.consumeTag("metadata"); ok && !identFollows(n) {
		n = n.hspace()
		if n2, m, ok := parseMetadata(n, args); ok {
			return n2, ir.TypedValue{Type: ir.MetadataType{}, Value: ir.ValMetadata{Metadata: m}}, true
		}
	}
	n, t, ok := parseType(s)
	if !ok {
		return s, ir.TypedValue{}, false
	}
	n = n.hspace()
	n, v, ok := parseValue(n, args)
	if !ok {
		return s, ir.TypedValue{}, false
	}
	return n, ir.TypedValue{Type: t, Value: v}, true
}
