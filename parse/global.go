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

// parseGlobal implements spec §4.10: `@name = ` followed by a fixed-order
// run of optional qualifiers (linkage, visibility, dll storage class,
// thread-local, unnamed-addr, address space, externally-initialized), the
// global/constant tag, the type, an optional initializer, and trailing
// `, section "..."` / `, align N` clauses (scenario S2). types is the
// module's named-type table, needed to elaborate a `zeroinitializer`
// initializer. A returned error of errNoMatch means the input is not a
// global at all; any other non-nil error is a hard failure to propagate.
func parseGlobal(s scanner, types map[string]ir.Type) (scanner, string, *ir.GlobalVariable, error) {
	n, name, ok := s.globalName()
	if !ok {
		return s, "", nil, errNoMatch
	}
	n = n.hspace()
	n, ok = n.consumeTag("=")
	if !ok {
		return s, "", nil, errNoMatch
	}
	n = n.hspace()

	g := &ir.GlobalVariable{}

	if n2, l, ok := parseLinkage(n); ok {
		g.Linkage = l
		n = n2.hspace()
	}
	if n2, v, ok := parseVisibility(n); ok {
		g.Visibility = v
		n = n2.hspace()
	}
	if n2, d, ok := parseDLLStorageClass(n); ok {
		g.DLLStorageClass = d
		n = n2.hspace()
	}
	if n2, t, ok := parseThreadLocalMode(n); ok {
		g.ThreadLocal = t
		n = n2.hspace()
	}
	if n2, u, ok := parseUnnamedAddr(n); ok {
		g.UnnamedAddr = u
		n = n2.hspace()
	}
	if n2, as, ok := parseAddressSpace(n); ok {
		g.AddrSpace = &as
		n = n2.hspace()
	}
	if n2, ok := parseExternallyInitialized(n); ok {
		g.ExternallyInitialized = true
		n = n2.hspace()
	}

	n, isConst, ok := parseGlobalTag(n)
	if !ok {
		return s, "", nil, errNoMatch
	}
	g.IsConstant = isConst
	n = n.hspace()

	n, t, ok := parseType(n)
	if !ok {
		return s, "", nil, errAt(s.src, n.pos, "global", UnexpectedToken)
	}
	g.Type = t

	save := n
	n2 := n.hspace()
	if n3, ok := n2.consumeTag("zeroinitializer"); ok && !identFollows(n3) {
		c, err := ir.ZeroInit(types, t)
		if err != nil {
			return s, "", nil, errSemantic(n2, "global-initializer", err)
		}
		g.Init = c
		n = n3
	} else if n3, c, ok := parseConstant(n2); ok {
		g.Init = c
		n = n3
	} else {
		n = save
	}

	for {
		save := n
		n2 := n.hspace()
		n3, ok := n2.consumeTag(",")
		if !ok {
			break
		}
		n3 = n3.hspace()
		if n4, ok := n3.consumeTag("section"); ok && !identFollows(n4) {
			n4 = n4.hspace()
			n5, str, ok := n4.quotedString()
			if !ok {
				n = save
				break
			}
			g.Section = &str
			n = n5
			continue
		}
		if n4, ok := n3.consumeTag("align"); ok {
			n4 = n4.hspace()
			n5, v, ok := n4.uint64Lit()
			if !ok {
				n = save
				break
			}
			g.Align = &v
			n = n5
			continue
		}
		n = save
		break
	}

	return n, name, g, nil
}
