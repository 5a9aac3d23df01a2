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

// parseFunction implements spec §4.6's declare/define form: the keyword,
// optional linkage/visibility/dll-storage/calling-convention, the return
// (void or parattrs+type), the name, the argument list, optional varargs
// marker, attribute-group references, and — only for a definition — the
// `{ ... }` body.
func parseFunction(s scanner) (scanner, string, *ir.Function, error) {
	var isDefined bool
	n, ok := s.consumeTag("define")
	if ok && !identFollows(n) {
		isDefined = true
	} else if n2, ok2 := s.consumeTag("declare"); ok2 && !identFollows(n2) {
		n = n2
		isDefined = false
	} else {
		return s, "", nil, errNoMatch
	}
	n = n.hspace()

	f := &ir.Function{}

	if n2, l, ok := parseLinkage(n); ok {
		f.Linkage = l
		n = n2.hspace()
	}
	if n2, v, ok := parseVisibility(n); ok {
		f.Visibility = v
		n = n2.hspace()
	}
	if n2, d, ok := parseDLLStorageClass(n); ok {
		f.DLLStorageClass = d
		n = n2.hspace()
	}
	if n2, cc, ok := parseCallingConv(n); ok {
		f.CC = cc
		n = n2.hspace()
	}

	if n2, ok := n.consumeTag("void"); ok && !identFollows(n2) {
		n = n2
	} else {
		n2, attrs := parseParAttrs(n)
		n2 = n2.hspace()
		n3, t, ok := parseType(n2)
		if !ok {
			return s, "", nil, errAt(s.src, n.pos, "function", UnexpectedToken)
		}
		f.RetAttrs = attrs
		f.RetType = t
		n = n3
	}
	n = n.hspace()

	n, name, ok := n.globalName()
	if !ok {
		return s, "", nil, errAt(s.src, n.pos, "function", UnexpectedToken)
	}
	f.Name = name
	n = n.hspace()

	n, ok = n.consumeTag("(")
	if !ok {
		return s, "", nil, errAt(s.src, n.pos, "function", UnexpectedToken)
	}
	n = n.hspace()

	var args []ir.Arg
	if b, ok := n.peek(); !ok || b != ')' {
		for {
			n = n.hspace()
			if n.hasPrefix("...") {
				n.pos += 3
				f.VarArgs = true
				break
			}
			n2, t, ok := parseType(n)
			if !ok {
				return s, "", nil, errAt(s.src, n.pos, "function-args", UnexpectedToken)
			}
			n = n2
			arg := ir.Arg{Type: t}
			save := n
			n2 = n.hspace()
			if n3, argName, ok := n2.localName(); ok {
				arg.Name = argName
				n = n3
			} else {
				n = save
			}
			args = append(args, arg)
			n = n.hspace()
			if n2, ok := n.consumeTag(","); ok {
				n = n2
				continue
			}
			break
		}
	}
	f.Args = args
	n = n.hspace()
	n, ok = n.consumeTag(")")
	if !ok {
		return s, "", nil, errAt(s.src, n.pos, "function", UnexpectedToken)
	}

	for {
		save := n
		n2 := n.hspace()
		n3, ok := n2.consumeTag("#")
		if !ok {
			n = save
			break
		}
		n4, id, ok := n3.uint64Lit()
		if !ok {
			n = save
			break
		}
		f.AttrGroups = append(f.AttrGroups, id)
		n = n4
	}

	if !isDefined {
		return n, name, f, nil
	}

	n = n.hspace()
	n, ok = n.consumeTag("{")
	if !ok {
		return s, "", nil, errAt(s.src, n.pos, "function-body", UnexpectedToken)
	}

	var blocks []*ir.BasicBlock
	for {
		n = n.moduleWS()
		if n2, ok := n.consumeTag("}"); ok {
			n = n2
			break
		}
		n2, blk, err := parseBasicBlock(n, args)
		if err != nil {
			return s, "", nil, err
		}
		blocks = append(blocks, blk)
		n = n2
	}
	f.Blocks = blocks

	return n, name, f, nil
}

// parseBasicBlock implements spec §4.6: a label, a colon, and a run of
// instructions terminated by either the next label or the block's closing
// `}`. A line that is not a bare identifier immediately followed by `:` is
// not a label and the loop falls through to instruction parsing instead.
func parseBasicBlock(s scanner, args []ir.Arg) (scanner, *ir.BasicBlock, error) {
	n, label, ok := s.ident()
	if !ok {
		return s, nil, errAt(s.src, s.pos, "basic-block", UnexpectedToken)
	}
	n, ok = n.consumeTag(":")
	if !ok {
		return s, nil, errAt(s.src, s.pos, "basic-block", UnexpectedToken)
	}

	blk := &ir.BasicBlock{Label: label}
	for {
		save := n
		n2 := n.moduleWS()
		if n2.eof() {
			return s, nil, errAt(s.src, n2.pos, "basic-block", Truncated)
		}
		if n2.hasPrefix("}") {
			n = n2
			break
		}
		if isNewLabel(n2) {
			n = n2
			break
		}
		n3, instr, err := parseInstruction(n2, args)
		if err != nil {
			return s, nil, err
		}
		blk.Instrs = append(blk.Instrs, instr)
		n = n3
		_ = save
	}
	return n, blk, nil
}

// isNewLabel reports whether the scanner sits on an identifier immediately
// followed by `:`, the lookahead that distinguishes a label line from an
// instruction, since both start with a bare identifier.
func isNewLabel(s scanner) bool {
	n, _, ok := s.ident()
	if !ok {
		return false
	}
	_, ok = n.consumeTag(":")
	return ok
}
