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

// parseGEP implements spec §4.7: a getelementptr form parameterized by the
// leaf-value parser parseLeaf (Constant for the constant-expression form,
// Value for the instruction form) and by whether the grammar is
// parenthesized (the constant-expression form `getelementptr (...)` is;
// the instruction form is not).
func parseGEP[T any](s scanner, parseLeaf func(scanner) (scanner, T, bool), paren bool) (scanner, *ir.GEP[T], bool) {
	n, ok := s.consumeTag("getelementptr")
	if !ok {
		return s, nil, false
	}
	n = n.hspace()
	inbounds := false
	if n2, ok := n.consumeTag("inbounds"); ok {
		inbounds = true
		n = n2.hspace()
	}
	if paren {
		var ok2 bool
		n, ok2 = n.consumeTag("(")
		if !ok2 {
			return s, nil, false
		}
		n = n.hspace()
	}
	n, elemType, ok := parseType(n)
	if !ok {
		return s, nil, false
	}
	n = n.hspace()
	n, ok = n.consumeTag(",")
	if !ok {
		return s, nil, false
	}
	n = n.hspace()
	n, baseType, ok := parseType(n)
	if !ok {
		return s, nil, false
	}
	n = n.hspace()
	n, base, ok := parseLeaf(n)
	if !ok {
		return s, nil, false
	}

	var indices []ir.GEPIndex[T]
	for {
		save := n
		n2 := n.hspace()
		n2, ok2 := n2.consumeTag(",")
		if !ok2 {
			n = save
			break
		}
		n2 = n2.hspace()
		inRange := false
		if n3, ok3 := n2.consumeTag("inrange"); ok3 {
			inRange = true
			n2 = n3.hspace()
		}
		n2, idxType, ok2 := parseType(n2)
		if !ok2 {
			n = save
			break
		}
		n2 = n2.hspace()
		n2, idx, ok2 := parseLeaf(n2)
		if !ok2 {
			n = save
			break
		}
		indices = append(indices, ir.GEPIndex[T]{Type: idxType, Index: idx, InRange: inRange})
		n = n2
	}

	if paren {
		n = n.hspace()
		var ok2 bool
		n, ok2 = n.consumeTag(")")
		if !ok2 {
			return s, nil, false
		}
	}

	return n, &ir.GEP[T]{ElemType: elemType, BaseType: baseType, Base: base, Inbounds: inbounds, Indices: indices}, true
}
