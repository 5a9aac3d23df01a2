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

// parseMetadata implements spec §4.5: null, !N, !{ m, ... }, !"...",
// !MDLocation(line:, column:, scope:), or a typed value occurrence. args is
// the enclosing function's named-argument list (empty at module scope),
// threaded through for `%name` resolution inside a Metadata(Value) wrapper.
func parseMetadata(s scanner, args []ir.Arg) (scanner, ir.Metadata, bool) {
	if n, ok := s.consumeTag("null"); ok && !identFollows(n) {
		return n, ir.MetadataNull{}, true
	}
	if n, ok := s.consumeTag("!"); ok {
		if n2, m, ok := parseMetadataBang(n, args); ok {
			return n2, m, true
		}
	}
	n, tv, ok := parseTypedValue(s, args)
	if !ok {
		return s, nil, false
	}
	return n, ir.MetadataValue{Type: tv.Type, Value: tv.Value}, true
}

func parseMetadataBang(s scanner, args []ir.Arg) (scanner, ir.Metadata, bool) {
	if n, ok := s.consumeTag("{"); ok {
		return parseMetadataStruct(n, args)
	}
	if n, id, ok := s.uint64Lit(); ok {
		return n, ir.MetadataRef{ID: id}, true
	}
	if n, raw, ok := s.quotedString(); ok {
		b, ok := decodeEscapes(raw)
		if !ok {
			return s, nil, false
		}
		return n, ir.MetadataBytes{Bytes: b}, true
	}
	if n, ok := s.consumeTag("MDLocation"); ok {
		return parseMDLocation(n, args)
	}
	return s, nil, false
}

func parseMetadataStruct(s scanner, args []ir.Arg) (scanner, ir.Metadata, bool) {
	var elems []ir.Metadata
	s = s.hspace()
	if n, ok := s.consumeTag("}"); ok {
		return n, ir.MetadataStruct{Elems: elems}, true
	}
	for {
		s = s.hspace()
		n, m, ok := parseMetadata(s, args)
		if !ok {
			return s, nil, false
		}
		s = n
		elems = append(elems, m)
		s = s.hspace()
		if n2, ok := s.consumeTag(","); ok {
			s = n2
			continue
		}
		break
	}
	s = s.hspace()
	n, ok := s.consumeTag("}")
	if !ok {
		return s, nil, false
	}
	return n, ir.MetadataStruct{Elems: elems}, true
}

func parseMDLocation(s scanner, args []ir.Arg) (scanner, ir.Metadata, bool) {
	s = s.hspace()
	n, ok := s.consumeTag("(")
	if !ok {
		return s, nil, false
	}
	n = n.hspace()
	n, ok = n.consumeTag("line:")
	if !ok {
		return s, nil, false
	}
	n = n.hspace()
	n, line, ok := n.uint64Lit()
	if !ok {
		return s, nil, false
	}
	n = n.hspace()
	n, ok = n.consumeTag(",")
	if !ok {
		return s, nil, false
	}
	n = n.hspace()
	n, ok = n.consumeTag("column:")
	if !ok {
		return s, nil, false
	}
	n = n.hspace()
	n, col, ok := n.uint64Lit()
	if !ok {
		return s, nil, false
	}
	n = n.hspace()
	n, ok = n.consumeTag(",")
	if !ok {
		return s, nil, false
	}
	n = n.hspace()
	n, ok = n.consumeTag("scope:")
	if !ok {
		return s, nil, false
	}
	n = n.hspace()
	n, scope, ok := parseMetadata(n, args)
	if !ok {
		return s, nil, false
	}
	n = n.hspace()
	n, ok = n.consumeTag(")")
	if !ok {
		return s, nil, false
	}
	return n, ir.MetadataLocation{Line: line, Column: col, Scope: scope}, true
}

// decodeEscapes resolves `\HH` hex escapes in a quoted string's raw
// contents, used for metadata byte strings (`!"..."`).
func decodeEscapes(raw string) ([]byte, bool) {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' {
			if i+2 >= len(raw) {
				return nil, false
			}
			hi, lo := raw[i+1], raw[i+2]
			if !isHexDigit(hi) || !isHexDigit(lo) {
				return nil, false
			}
			out = append(out, byte(hexVal(hi)*16+hexVal(lo)))
			i += 2
			continue
		}
		out = append(out, raw[i])
	}
	return out, true
}
