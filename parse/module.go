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
	"fmt"
	"os"

	"github.com/irtext/llparse/ir"
)

// Bytes parses src as a complete module (spec §4.12/§6): module-id comment,
// datalayout, triple, type definitions, globals, function declarations and
// definitions, attribute groups, and named/numbered metadata, in any order
// and any number of times, tolerating `;` line comments between elements.
func Bytes(src []byte) (*ir.Module, error) {
	m := ir.NewModule()
	s := newScanner(src)
	s = s.moduleWS()
	for !s.eof() {
		n, err := parseModuleElement(s, m)
		if err != nil {
			return nil, err
		}
		n = n.moduleWS()
		if n.pos == s.pos {
			return nil, errAt(src, n.pos, "module", Truncated)
		}
		s = n
	}
	return m, nil
}

// File reads path and parses its contents as a module. A read failure is
// reported as an IoUnavailable *Error, the one case Bytes itself can never
// raise.
func File(path string) (*ir.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: IoUnavailable, Production: "file", Err: fmt.Errorf("read %s: %w", path, err)}
	}
	return Bytes(data)
}

// parseModuleElement dispatches one top-level construct and applies it to m.
func parseModuleElement(s scanner, m *ir.Module) (scanner, error) {
	if n, id, ok := parseModuleID(s); ok {
		m.ID = &id
		return n, nil
	}
	if n, dl, ok := parseTargetDataLayout(s); ok {
		m.DataLayout = parseDataLayout(m.DataLayout, dl)
		return n, nil
	}
	if n, tr, ok := parseTargetTriple(s); ok {
		m.Triple = &tr
		return n, nil
	}
	if n, name, t, ok := parseTypeDef(s); ok {
		m.Types[name] = t
		return n, nil
	}
	if n, name, g, err := parseGlobal(s, m.Types); err != errNoMatch {
		if err != nil {
			return s, err
		}
		m.Globals[name] = g
		return n, nil
	}
	if n, name, f, err := parseFunction(s); err != errNoMatch {
		if err != nil {
			return s, err
		}
		m.MergeFunction(f)
		_ = name
		return n, nil
	}
	if n, id, attrs, ok := parseAttributeGroup(s); ok {
		m.AttrGroups[id] = attrs
		return n, nil
	}
	if n, id, md, ok := parseNumberedMetadata(s); ok {
		m.NumberedMetadata[id] = md
		return n, nil
	}
	if n, name, md, ok := parseNamedMetadata(s); ok {
		m.NamedMetadata[name] = md
		return n, nil
	}
	return s, errAt(s.src, s.pos, "module", UnexpectedToken)
}

// parseModuleID parses the `; ModuleID = '...'` header comment.
func parseModuleID(s scanner) (scanner, string, bool) {
	n, ok := s.consumeTag("; ModuleID = '")
	if !ok {
		return s, "", false
	}
	start := n.pos
	for {
		b, ok := n.peek()
		if !ok {
			return s, "", false
		}
		if b == '\'' {
			id := string(n.src[start:n.pos])
			n.pos++
			return n, id, true
		}
		n.pos++
	}
}

func parseTargetDataLayout(s scanner) (scanner, string, bool) {
	n, ok := s.consumeTag("target")
	if !ok {
		return s, "", false
	}
	n = n.hspace()
	n, ok = n.consumeTag("datalayout")
	if !ok {
		return s, "", false
	}
	n = n.hspace()
	n, ok = n.consumeTag("=")
	if !ok {
		return s, "", false
	}
	n = n.hspace()
	n, spec, ok := n.quotedString()
	if !ok {
		return s, "", false
	}
	return n, spec, true
}

func parseTargetTriple(s scanner) (scanner, string, bool) {
	n, ok := s.consumeTag("target")
	if !ok {
		return s, "", false
	}
	n = n.hspace()
	n, ok = n.consumeTag("triple")
	if !ok {
		return s, "", false
	}
	n = n.hspace()
	n, ok = n.consumeTag("=")
	if !ok {
		return s, "", false
	}
	n = n.hspace()
	n, tr, ok := n.quotedString()
	if !ok {
		return s, "", false
	}
	return n, tr, true
}

// parseTypeDef parses `%name = type <type>`.
func parseTypeDef(s scanner) (scanner, string, ir.Type, bool) {
	n, name, ok := s.localName()
	if !ok {
		return s, "", nil, false
	}
	n = n.hspace()
	n, ok = n.consumeTag("=")
	if !ok {
		return s, "", nil, false
	}
	n = n.hspace()
	n, ok = n.consumeTag("type")
	if !ok || identFollows(n) {
		return s, "", nil, false
	}
	n = n.hspace()
	n, t, ok := parseType(n)
	if !ok {
		return s, "", nil, false
	}
	return n, name, t, true
}

func parseNumberedMetadata(s scanner) (scanner, uint64, ir.Metadata, bool) {
	n, ok := s.consumeTag("!")
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
	n, md, ok := parseMetadata(n, nil)
	if !ok {
		return s, 0, nil, false
	}
	return n, id, md, true
}

func parseNamedMetadata(s scanner) (scanner, string, ir.Metadata, bool) {
	n, ok := s.consumeTag("!")
	if !ok {
		return s, "", nil, false
	}
	n, name, ok := n.ident()
	if !ok {
		return s, "", nil, false
	}
	n = n.hspace()
	n, ok = n.consumeTag("=")
	if !ok {
		return s, "", nil, false
	}
	n = n.hspace()
	n, md, ok := parseMetadata(n, nil)
	if !ok {
		return s, "", nil, false
	}
	return n, name, md, true
}
