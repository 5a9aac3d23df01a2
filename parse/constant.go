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

import (
	"math/big"

	"github.com/irtext/llparse/ir"
)

// parseConstant implements spec §4.4, ordered by discriminating prefix:
// null, false/true, @name, c"...", optional-minus digits, and constant GEP.
// `zeroinitializer` is deliberately absent here: it is not a constant in
// this grammar, only a global initializer keyword elaborated in parseGlobal.
func parseConstant(s scanner) (scanner, ir.Constant, bool) {
	if n, ok := s.consumeTag("null"); ok && !identFollows(n) {
		return n, ir.ConstNullPtr{}, true
	}
	if n, ok := s.consumeTag("false"); ok && !identFollows(n) {
		return n, ir.NewConstInt(0), true
	}
	if n, ok := s.consumeTag("true"); ok && !identFollows(n) {
		return n, ir.NewConstInt(1), true
	}
	if n, name, ok := s.globalName(); ok {
		return n, ir.ConstGlobal{Name: name}, true
	}
	if n, elems, ok := parseByteArrayConstant(s); ok {
		return n, elems, true
	}
	if n, val, ok := parseIntConstant(s); ok {
		return n, val, true
	}
	if n, gep, ok := parseGEP(s, parseConstant, true); ok {
		return n, ir.ConstGEP{GEP: gep}, true
	}
	return s, nil, false
}

func parseIntConstant(s scanner) (scanner, ir.Constant, bool) {
	n := s
	neg := false
	if n2, ok := n.consumeTag("-"); ok {
		neg = true
		n = n2
	}
	n, digits, ok := n.decimalDigits()
	if !ok {
		return s, nil, false
	}
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return s, nil, false
	}
	if neg {
		v.Neg(v)
	}
	return n, ir.ConstInt{Val: v}, true
}

// parseByteArrayConstant parses the `c"..."` textual byte-array constant
// form: one ConstInt in [0,255] per decoded byte, honoring `\HH` hex
// escapes; an unescaped `"` terminates the literal.
func parseByteArrayConstant(s scanner) (scanner, ir.Constant, bool) {
	n, ok := s.consumeTag("c")
	if !ok {
		return s, nil, false
	}
	if b, ok := n.peek(); !ok || b != '"' {
		return s, nil, false
	}
	n.pos++
	var elems []ir.Constant
	for {
		b, ok := n.peek()
		if !ok {
			return s, nil, false
		}
		if b == '"' {
			n.pos++
			return n, ir.ConstArray{Elems: elems}, true
		}
		if b == '\\' {
			if n.pos+2 >= len(n.src) {
				return s, nil, false
			}
			hi, lo := n.src[n.pos+1], n.src[n.pos+2]
			if !isHexDigit(hi) || !isHexDigit(lo) {
				return s, nil, false
			}
			elems = append(elems, ir.NewConstInt(int64(hexVal(hi)*16+hexVal(lo))))
			n.pos += 3
			continue
		}
		elems = append(elems, ir.NewConstInt(int64(b)))
		n.pos++
	}
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}
