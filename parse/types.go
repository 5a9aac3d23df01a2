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
	"github.com/irtext/llparse/ir"
)

// parseType parses the type grammar of spec §4.2: an atom (int, pointer
// base, array, vector, struct, named reference, void/metadata/label/
// opaque) followed by zero or more `*` (each optionally preceded by an
// `addrspace(N)` clause that tags that pointer wrap) and an optional
// trailing function-type parameter list.
func parseType(s scanner) (scanner, ir.Type, bool) {
	s, t, ok := parseAtomType(s)
	if !ok {
		return s, nil, false
	}
	for {
		save := s
		s2 := s.hspace()
		addrSpace := uint64(0)
		if s2.hasPrefix("addrspace(") {
			s3 := s2
			s3.pos += len("addrspace(")
			s3 = s3.hspace()
			var n uint64
			var ok2 bool
			s3, n, ok2 = s3.uint64Lit()
			if !ok2 {
				s = save
				break
			}
			s3 = s3.hspace()
			s3, ok2 = s3.consumeTag(")")
			if !ok2 {
				s = save
				break
			}
			s4 := s3.hspace()
			if b, ok3 := s4.peek(); !ok3 || b != '*' {
				s = save
				break
			}
			addrSpace = n
			s2 = s4
		}
		if b, ok2 := s2.peek(); ok2 && b == '*' {
			s2.pos++
			t = ir.PointerType{Elem: t, AddrSpace: addrSpace}
			s = s2
			continue
		}
		s = save
		break
	}

	save := s
	s2 := s.hspace()
	if b, ok2 := s2.peek(); ok2 && b == '(' {
		s2.pos++
		s2, params, varArgs, ok2 := parseTypeList(s2)
		if ok2 {
			s2 = s2.hspace()
			if s3, ok3 := s2.consumeTag(")"); ok3 {
				return s3, ir.FuncType{Ret: t, Params: params, VarArgs: varArgs}, true
			}
		}
		s = save
	}
	return s, t, true
}

// parseTypeList parses a function type's comma-separated parameter type
// list, optionally terminated with a bare `...` var-args marker.
func parseTypeList(s scanner) (scanner, []ir.Type, bool, bool) {
	var params []ir.Type
	s = s.hspace()
	if b, ok := s.peek(); ok && b == ')' {
		return s, nil, false, true
	}
	for {
		s = s.hspace()
		if s.hasPrefix("...") {
			s.pos += 3
			return s, params, true, true
		}
		n, t, ok := parseType(s)
		if !ok {
			return s, nil, false, false
		}
		s = n
		params = append(params, t)
		s = s.hspace()
		if n2, ok := s.consumeTag(","); ok {
			s = n2
			continue
		}
		break
	}
	return s, params, false, true
}

func parseAtomType(s scanner) (scanner, ir.Type, bool) {
	if n, ok := s.consumeTag("void"); ok && !identFollows(n) {
		return n, ir.VoidType{}, true
	}
	if n, ok := s.consumeTag("metadata"); ok && !identFollows(n) {
		return n, ir.MetadataType{}, true
	}
	if n, ok := s.consumeTag("opaque"); ok && !identFollows(n) {
		return n, ir.OpaqueType{}, true
	}
	if n, ok := s.consumeTag("label"); ok && !identFollows(n) {
		return n, ir.LabelType{}, true
	}
	if n, bw, ok := parseIntType(s); ok {
		return n, ir.IntType{BitWidth: bw}, true
	}
	if n, name, ok := s.localName(); ok {
		return n, ir.NamedType{Name: name}, true
	}
	if n, ok := s.consumeTag("["); ok {
		return parseArrayType(n)
	}
	if n, ok := s.consumeTag("<{"); ok {
		return parseStructFields(n, true, "}>")
	}
	if n, ok := s.consumeTag("<"); ok {
		return parseVectorType(n)
	}
	if n, ok := s.consumeTag("{"); ok {
		return parseStructFields(n, false, "}")
	}
	return s, nil, false
}

// identFollows reports whether the scanner sits on another identifier
// character, used to reject a keyword match that is really the prefix of a
// longer identifier (e.g. "voidish").
func identFollows(s scanner) bool {
	b, ok := s.peek()
	return ok && isIdentCont(b)
}

func parseIntType(s scanner) (scanner, uint64, bool) {
	n, ok := s.consumeTag("i")
	if !ok {
		return s, 0, false
	}
	n, bw, ok := n.uint64Lit()
	if !ok {
		return s, 0, false
	}
	return n, bw, true
}

func parseArrayType(s scanner) (scanner, ir.Type, bool) {
	s = s.hspace()
	s, n, ok := s.uint64Lit()
	if !ok {
		return s, nil, false
	}
	s = s.hspace()
	s, ok = s.consumeTag("x")
	if !ok {
		return s, nil, false
	}
	s = s.hspace()
	s, elem, ok := parseType(s)
	if !ok {
		return s, nil, false
	}
	s = s.hspace()
	s, ok = s.consumeTag("]")
	if !ok {
		return s, nil, false
	}
	return s, ir.ArrayType{Len: n, Elem: elem}, true
}

func parseVectorType(s scanner) (scanner, ir.Type, bool) {
	s = s.hspace()
	s, n, ok := s.uint64Lit()
	if !ok {
		return s, nil, false
	}
	s = s.hspace()
	s, ok = s.consumeTag("x")
	if !ok {
		return s, nil, false
	}
	s = s.hspace()
	s, elem, ok := parseType(s)
	if !ok {
		return s, nil, false
	}
	s = s.hspace()
	s, ok = s.consumeTag(">")
	if !ok {
		return s, nil, false
	}
	return s, ir.VectorType{Len: n, Elem: elem}, true
}

func parseStructFields(s scanner, packed bool, closer string) (scanner, ir.Type, bool) {
	var fields []ir.Type
	s = s.hspace()
	if n, ok := s.consumeTag(closer); ok {
		return n, ir.StructType{Packed: packed, Fields: fields}, true
	}
	for {
		s = s.hspace()
		n, t, ok := parseType(s)
		if !ok {
			return s, nil, false
		}
		s = n
		fields = append(fields, t)
		s = s.hspace()
		if n2, ok := s.consumeTag(","); ok {
			s = n2
			continue
		}
		break
	}
	s = s.hspace()
	s, ok := s.consumeTag(closer)
	if !ok {
		return s, nil, false
	}
	return s, ir.StructType{Packed: packed, Fields: fields}, true
}
