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

// parseParAttrs implements spec §4.8: a parameter-attribute accumulator
// that greedily consumes recognized attribute keywords until the next
// token is not one, returning the accumulated ir.ParAttrs. No backtracking
// is needed across attributes since every keyword is unambiguous in this
// position; the single point of backtracking is the final failed attempt,
// which leaves the scanner at the position right after the last
// successfully consumed attribute.
func parseParAttrs(s scanner) (scanner, ir.ParAttrs) {
	var attrs ir.ParAttrs
	for {
		save := s
		n, ok := tryParAttr(s, &attrs)
		if !ok {
			return save, attrs
		}
		s = n.hspace()
	}
}

func tryParAttr(s scanner, attrs *ir.ParAttrs) (scanner, bool) {
	type flag struct {
		tag string
		set func()
	}
	flags := []flag{
		{"zeroext", func() { attrs.ZeroExt = true }},
		{"signext", func() { attrs.SignExt = true }},
		{"inreg", func() { attrs.InReg = true }},
		{"byval", func() { attrs.ByVal = true }},
		{"inalloca", func() { attrs.InAlloca = true }},
		{"sret", func() { attrs.Sret = true }},
		{"noalias", func() { attrs.NoAlias = true }},
		{"nocapture", func() { attrs.NoCapture = true }},
		{"nest", func() { attrs.Nest = true }},
		{"returned", func() { attrs.Returned = true }},
		{"nonnull", func() { attrs.NonNull = true }},
		{"swiftself", func() { attrs.SwiftSelf = true }},
		{"swifterror", func() { attrs.SwiftError = true }},
	}
	if n, ok := s.consumeTag("align"); ok {
		n = n.hspace()
		if n2, v, ok := n.uint64Lit(); ok {
			attrs.Align = &v
			return n2, true
		}
		return s, false
	}
	if n, v, ok := parseParenthesizedUint(s, "dereferenceable_or_null"); ok {
		attrs.DereferenceableOrNull = &v
		return n, true
	}
	if n, v, ok := parseParenthesizedUint(s, "dereferenceable"); ok {
		attrs.Dereferenceable = &v
		return n, true
	}
	for _, f := range flags {
		if n, ok := s.consumeTag(f.tag); ok && !identFollows(n) {
			f.set()
			return n, true
		}
	}
	return s, false
}

func parseParenthesizedUint(s scanner, tag string) (scanner, uint64, bool) {
	n, ok := s.consumeTag(tag)
	if !ok {
		return s, 0, false
	}
	n, ok = n.consumeTag("(")
	if !ok {
		return s, 0, false
	}
	n, v, ok := n.uint64Lit()
	if !ok {
		return s, 0, false
	}
	n, ok = n.consumeTag(")")
	if !ok {
		return s, 0, false
	}
	return n, v, true
}

// parseAttribute parses one entry of an attribute-group body: a bare
// keyword, or a quoted key[=value] pair (spec §4.8, scenario S5).
func parseAttribute(s scanner) (scanner, ir.Attribute, bool) {
	n, raw, quoted, ok := parseAttrName(s)
	if !ok {
		return s, ir.Attribute{}, false
	}
	s = n
	save := s
	s = s.hspace()
	if n2, ok := s.consumeTag("="); ok {
		n2 = n2.hspace()
		if n3, val, ok := n2.quotedString(); ok {
			return n3, ir.Attribute{Name: raw, Value: val, HasValue: true, Quoted: quoted}, true
		}
	}
	return save, ir.Attribute{Name: raw, Quoted: quoted}, true
}

func parseAttrName(s scanner) (scanner, string, bool, bool) {
	if n, val, ok := s.quotedString(); ok {
		return n, val, true, true
	}
	n, name, ok := s.ident()
	if !ok {
		return s, "", false, false
	}
	return n, name, false, true
}

// parseAttributeGroup parses the module-scope `attributes #N = { Attr* }`
// declaration (spec §4.8/§4.12).
func parseAttributeGroup(s scanner) (scanner, uint64, []ir.Attribute, bool) {
	n, ok := s.consumeTag("attributes")
	if !ok {
		return s, 0, nil, false
	}
	n = n.hspace()
	n, ok = n.consumeTag("#")
	if !ok {
		return s, 0, nil, false
	}
	n, id, ok := n.uint64Lit()
	if !ok {
		return s, 0, nil, false
	}
	n = n.hspace()
	n, ok = n.consumeTag("=")
	if !ok {
		return s, 0, nil, false
	}
	n = n.hspace()
	n, ok = n.consumeTag("{")
	if !ok {
		return s, 0, nil, false
	}
	var attrs []ir.Attribute
	for {
		n = n.hspace()
		if n2, ok := n.consumeTag("}"); ok {
			return n2, id, attrs, true
		}
		n2, a, ok := parseAttribute(n)
		if !ok {
			return s, 0, nil, false
		}
		attrs = append(attrs, a)
		n = n2
	}
}
