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

// parseInstruction implements spec §4.6: one basic-block entry, dispatched
// first on the unbound forms (a bare call statement, the terminators,
// store) and, failing those, on a `%name = ` prefix followed by the bound
// opcode keyword. A recognized `%name = ` prefix with no matching opcode is
// an UnknownOpcode hard failure, not a soft non-match: once the assignment
// arrow is seen the production is committed.
func parseInstruction(s scanner, args []ir.Arg) (scanner, *ir.Instruction, error) {
	n, content, err := parseInstructionC(s, args)
	if err != nil {
		return s, nil, err
	}
	n = n.hspace()
	meta := map[string]uint64{}
	for {
		save := n
		n2 := n.hspace()
		n3, ok := n2.consumeTag(",")
		if !ok {
			n = save
			break
		}
		n3 = n3.hspace()
		n4, ok := n3.consumeTag("!")
		if !ok {
			n = save
			break
		}
		n5, kind, ok := n4.ident()
		if !ok {
			n = save
			break
		}
		n5 = n5.hspace()
		n6, ok := n5.consumeTag("!")
		if !ok {
			n = save
			break
		}
		n6, id, ok := n6.uint64Lit()
		if !ok {
			n = save
			break
		}
		meta[kind] = id
		n = n6
	}
	if len(meta) == 0 {
		meta = nil
	}
	return n, &ir.Instruction{Content: content, Metadata: meta}, nil
}

func parseInstructionC(s scanner, args []ir.Arg) (scanner, ir.InstructionC, error) {
	if n, call, ok := parseCall(s, args); ok {
		return n, call, nil
	}
	if n, ok := s.consumeTag("br"); ok && !identFollows(n) {
		return parseBr(n, args)
	}
	if n, ok := s.consumeTag("unreachable"); ok && !identFollows(n) {
		return n, ir.InstTerm{Term: ir.TermUnreachable{}}, nil
	}
	if n, ok := s.consumeTag("store"); ok && !identFollows(n) {
		return parseStore(n, args)
	}
	if n, ok := s.consumeTag("ret"); ok && !identFollows(n) {
		return parseRet(n, args)
	}
	if n, ok := s.consumeTag("switch"); ok && !identFollows(n) {
		return parseSwitch(n, args)
	}

	n, name, ok := s.localName()
	if !ok {
		return s, nil, errNoMatch
	}
	n = n.hspace()
	n, ok = n.consumeTag("=")
	if !ok {
		return s, nil, errNoMatch
	}
	n = n.hspace()

	if n2, call, ok := parseCall(n, args); ok {
		c := call.(ir.InstCall)
		c.Result = name
		return n2, c, nil
	}
	if n2, ok := n.consumeTag("icmp"); ok && !identFollows(n2) {
		return parseICmp(n2, args, name)
	}
	if n2, ok := n.consumeTag("load"); ok && !identFollows(n2) {
		return parseLoad(n2, args, name)
	}
	if n2, kind, ok := parseCastKind(n); ok {
		return parseCast(n2, args, name, kind)
	}
	if n2, gep, ok := parseGEP(n, func(s scanner) (scanner, ir.Value, bool) {
		return parseValue(s, args)
	}, false); ok {
		return n2, ir.InstGEP{Result: name, GEP: gep}, nil
	}
	if n2, ok := n.consumeTag("select"); ok && !identFollows(n2) {
		return parseSelect(n2, args, name)
	}
	if n2, ok := n.consumeTag("phi"); ok && !identFollows(n2) {
		return parsePhi(n2, args, name)
	}
	if n2, op, ok := parseBinOp(n); ok {
		return parseBin(n2, args, name, op)
	}
	if n2, ok := n.consumeTag("alloca"); ok && !identFollows(n2) {
		return parseAlloca(n2, args, name)
	}

	return s, nil, &Error{Kind: UnknownOpcode, Offset: n.pos, Production: "instruction", Excerpt: excerpt(n.src, n.pos)}
}

func parseCall(s scanner, args []ir.Arg) (scanner, ir.InstructionC, bool) {
	n, ok := s.consumeTag("call")
	if !ok || identFollows(n) {
		return s, nil, false
	}
	n = n.hspace()
	call := ir.InstCall{}
	if n2, cc, ok := parseCallingConv(n); ok {
		call.CC = cc
		n = n2.hspace()
	}
	n2, pattrs := parseParAttrs(n)
	n2 = n2.hspace()
	if n3, ok := n2.consumeTag("void"); ok && !identFollows(n3) {
		n = n3
	} else {
		n3, t, ok := parseType(n2)
		if !ok {
			return s, nil, false
		}
		call.RetAttrs = pattrs
		call.RetType = t
		n = n3
	}
	n = n.hspace()
	n, callee, ok := parseValue(n, args)
	if !ok {
		return s, nil, false
	}
	call.Callee = callee
	n = n.hspace()
	n, ok = n.consumeTag("(")
	if !ok {
		return s, nil, false
	}
	n = n.hspace()
	if b, ok := n.peek(); !ok || b != ')' {
		for {
			n = n.hspace()
			n2, tv, ok := parseTypedValue(n, args)
			if !ok {
				return s, nil, false
			}
			call.Args = append(call.Args, tv)
			n = n2
			n = n.hspace()
			if n2, ok := n.consumeTag(","); ok {
				n = n2
				continue
			}
			break
		}
	}
	n = n.hspace()
	n, ok = n.consumeTag(")")
	if !ok {
		return s, nil, false
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
		call.AttrGroups = append(call.AttrGroups, id)
		n = n4
	}
	return n, call, true
}

func parseBr(s scanner, args []ir.Arg) (scanner, ir.InstructionC, error) {
	n := s.hspace()
	if n2, ok := n.consumeTag("label"); ok && !identFollows(n2) {
		n2 = n2.hspace()
		n3, label, ok := n2.localName()
		if !ok {
			return s, nil, errAt(s.src, n2.pos, "br", UnexpectedToken)
		}
		return n3, ir.InstTerm{Term: ir.TermBr{Label: label}}, nil
	}
	n, ok := n.consumeTag("i1")
	if !ok || identFollows(n) {
		return s, nil, errAt(s.src, n.pos, "br", UnexpectedToken)
	}
	n = n.hspace()
	n, cond, ok := parseValue(n, args)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "br", UnexpectedToken)
	}
	n = n.hspace()
	n, ok = n.consumeTag(",")
	if !ok {
		return s, nil, errAt(s.src, n.pos, "br", UnexpectedToken)
	}
	n = n.hspace()
	n, ok = n.consumeTag("label")
	if !ok {
		return s, nil, errAt(s.src, n.pos, "br", UnexpectedToken)
	}
	n = n.hspace()
	n, trueLabel, ok := n.localName()
	if !ok {
		return s, nil, errAt(s.src, n.pos, "br", UnexpectedToken)
	}
	n = n.hspace()
	n, ok = n.consumeTag(",")
	if !ok {
		return s, nil, errAt(s.src, n.pos, "br", UnexpectedToken)
	}
	n = n.hspace()
	n, ok = n.consumeTag("label")
	if !ok {
		return s, nil, errAt(s.src, n.pos, "br", UnexpectedToken)
	}
	n = n.hspace()
	n, falseLabel, ok := n.localName()
	if !ok {
		return s, nil, errAt(s.src, n.pos, "br", UnexpectedToken)
	}
	return n, ir.InstTerm{Term: ir.TermBrCond{Cond: cond, TrueLabel: trueLabel, FalseLabel: falseLabel}}, nil
}

func parseStore(s scanner, args []ir.Arg) (scanner, ir.InstructionC, error) {
	n := s.hspace()
	volatile := false
	if n2, ok := n.consumeTag("volatile"); ok && !identFollows(n2) {
		volatile = true
		n = n2.hspace()
	}
	n, val, ok := parseTypedValue(n, args)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "store", UnexpectedToken)
	}
	n = n.hspace()
	n, ok = n.consumeTag(",")
	if !ok {
		return s, nil, errAt(s.src, n.pos, "store", UnexpectedToken)
	}
	n = n.hspace()
	n, ptr, ok := parseTypedValue(n, args)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "store", UnexpectedToken)
	}
	n, align := parseAlignSuffix(n)
	return n, ir.InstStore{Volatile: volatile, Val: val, Ptr: ptr, Align: align}, nil
}

func parseRet(s scanner, args []ir.Arg) (scanner, ir.InstructionC, error) {
	n := s.hspace()
	if n2, ok := n.consumeTag("void"); ok && !identFollows(n2) {
		return n2, ir.InstTerm{Term: ir.TermRet{}}, nil
	}
	n, tv, ok := parseTypedValue(n, args)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "ret", UnexpectedToken)
	}
	return n, ir.InstTerm{Term: ir.TermRet{Type: tv.Type, Value: tv.Value}}, nil
}

func parseSwitch(s scanner, args []ir.Arg) (scanner, ir.InstructionC, error) {
	n := s.hspace()
	n, t, ok := parseType(n)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "switch", UnexpectedToken)
	}
	n = n.hspace()
	n, val, ok := parseValue(n, args)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "switch", UnexpectedToken)
	}
	n = n.hspace()
	n, ok = n.consumeTag(",")
	if !ok {
		return s, nil, errAt(s.src, n.pos, "switch", UnexpectedToken)
	}
	n = n.hspace()
	n, ok = n.consumeTag("label")
	if !ok {
		return s, nil, errAt(s.src, n.pos, "switch", UnexpectedToken)
	}
	n = n.hspace()
	n, def, ok := n.localName()
	if !ok {
		return s, nil, errAt(s.src, n.pos, "switch", UnexpectedToken)
	}
	n = n.hspace()
	n, ok = n.consumeTag("[")
	if !ok {
		return s, nil, errAt(s.src, n.pos, "switch", UnexpectedToken)
	}
	var cases []ir.SwitchCase
	for {
		n = n.moduleWS()
		if n2, ok := n.consumeTag("]"); ok {
			n = n2
			break
		}
		n2, _, ok := parseType(n)
		if !ok {
			return s, nil, errAt(s.src, n.pos, "switch-case", UnexpectedToken)
		}
		n2 = n2.hspace()
		n3, c, ok := parseConstant(n2)
		if !ok {
			return s, nil, errAt(s.src, n2.pos, "switch-case", UnexpectedToken)
		}
		n3 = n3.hspace()
		n3, ok = n3.consumeTag(",")
		if !ok {
			return s, nil, errAt(s.src, n3.pos, "switch-case", UnexpectedToken)
		}
		n3 = n3.hspace()
		n3, ok = n3.consumeTag("label")
		if !ok {
			return s, nil, errAt(s.src, n3.pos, "switch-case", UnexpectedToken)
		}
		n3 = n3.hspace()
		n4, lbl, ok := n3.localName()
		if !ok {
			return s, nil, errAt(s.src, n3.pos, "switch-case", UnexpectedToken)
		}
		cases = append(cases, ir.SwitchCase{Value: c, Label: lbl})
		n = n4
	}
	return n, ir.InstTerm{Term: ir.TermSwitch{Type: t, Value: val, Default: def, Cases: cases}}, nil
}

func parseICmp(s scanner, args []ir.Arg, name string) (scanner, ir.InstructionC, error) {
	n := s.hspace()
	n, cond, ok := parseCmpKind(n)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "icmp", UnexpectedToken)
	}
	n = n.hspace()
	n, t, ok := parseType(n)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "icmp", UnexpectedToken)
	}
	n = n.hspace()
	n, lhs, ok := parseValue(n, args)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "icmp", UnexpectedToken)
	}
	n = n.hspace()
	n, ok = n.consumeTag(",")
	if !ok {
		return s, nil, errAt(s.src, n.pos, "icmp", UnexpectedToken)
	}
	n = n.hspace()
	n, rhs, ok := parseValue(n, args)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "icmp", UnexpectedToken)
	}
	return n, ir.InstICmp{Result: name, Cond: cond, Type: t, LHS: lhs, RHS: rhs}, nil
}

func parseLoad(s scanner, args []ir.Arg, name string) (scanner, ir.InstructionC, error) {
	n := s.hspace()
	volatile := false
	if n2, ok := n.consumeTag("volatile"); ok && !identFollows(n2) {
		volatile = true
		n = n2.hspace()
	}
	n, ptr, ok := parseTypedValue(n, args)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "load", UnexpectedToken)
	}
	n, align := parseAlignSuffix(n)
	return n, ir.InstUnary{Result: name, Operand: ptr, Op: ir.LoadOp{Volatile: volatile, Align: align}}, nil
}

func parseCastKind(s scanner) (scanner, ir.CastKind, bool) {
	return matchKeywordTable(s, []keywordRule[ir.CastKind]{
		{"trunc", ir.CastTrunc},
		{"zext", ir.CastZExt},
		{"sext", ir.CastSExt},
		{"bitcast", ir.CastBitcast},
		{"inttoptr", ir.CastIntToPtr},
		{"ptrtoint", ir.CastPtrToInt},
	})
}

func parseCast(s scanner, args []ir.Arg, name string, kind ir.CastKind) (scanner, ir.InstructionC, error) {
	n := s.hspace()
	n, val, ok := parseTypedValue(n, args)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "cast", UnexpectedToken)
	}
	n = n.hspace()
	n, ok = n.consumeTag("to")
	if !ok || identFollows(n) {
		return s, nil, errAt(s.src, n.pos, "cast", UnexpectedToken)
	}
	n = n.hspace()
	n, target, ok := parseType(n)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "cast", UnexpectedToken)
	}
	return n, ir.InstUnary{Result: name, Operand: val, Op: ir.CastOp{Kind: kind, Target: target}}, nil
}

func parseSelect(s scanner, args []ir.Arg, name string) (scanner, ir.InstructionC, error) {
	n := s.hspace()
	n, ok := n.consumeTag("i1")
	if !ok || identFollows(n) {
		return s, nil, errAt(s.src, n.pos, "select", UnexpectedToken)
	}
	n = n.hspace()
	n, cond, ok := parseValue(n, args)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "select", UnexpectedToken)
	}
	n = n.hspace()
	n, ok = n.consumeTag(",")
	if !ok {
		return s, nil, errAt(s.src, n.pos, "select", UnexpectedToken)
	}
	n = n.hspace()
	n, t, ok := parseType(n)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "select", UnexpectedToken)
	}
	n = n.hspace()
	n, trueVal, ok := parseValue(n, args)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "select", UnexpectedToken)
	}
	n = n.hspace()
	n, ok = n.consumeTag(",")
	if !ok {
		return s, nil, errAt(s.src, n.pos, "select", UnexpectedToken)
	}
	n = n.hspace()
	n, _, ok = parseType(n)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "select", UnexpectedToken)
	}
	n = n.hspace()
	n, falseVal, ok := parseValue(n, args)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "select", UnexpectedToken)
	}
	return n, ir.InstSelect{Result: name, Cond: cond, Type: t, True: trueVal, False: falseVal}, nil
}

func parsePhi(s scanner, args []ir.Arg, name string) (scanner, ir.InstructionC, error) {
	n := s.hspace()
	n, t, ok := parseType(n)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "phi", UnexpectedToken)
	}
	var incoming []ir.PhiIncoming
	for {
		n = n.hspace()
		n, ok = n.consumeTag("[")
		if !ok {
			return s, nil, errAt(s.src, n.pos, "phi", UnexpectedToken)
		}
		n = n.hspace()
		n, val, ok := parseValue(n, args)
		if !ok {
			return s, nil, errAt(s.src, n.pos, "phi", UnexpectedToken)
		}
		n = n.hspace()
		n, ok = n.consumeTag(",")
		if !ok {
			return s, nil, errAt(s.src, n.pos, "phi", UnexpectedToken)
		}
		n = n.hspace()
		n, label, ok := n.localName()
		if !ok {
			return s, nil, errAt(s.src, n.pos, "phi", UnexpectedToken)
		}
		n = n.hspace()
		n, ok = n.consumeTag("]")
		if !ok {
			return s, nil, errAt(s.src, n.pos, "phi", UnexpectedToken)
		}
		incoming = append(incoming, ir.PhiIncoming{Value: val, Label: label})
		save := n
		n2 := n.hspace()
		if n3, ok := n2.consumeTag(","); ok {
			n = n3
			continue
		}
		n = save
		break
	}
	return n, ir.InstPhi{Result: name, Type: t, Incoming: incoming}, nil
}

func parseBinOp(s scanner) (scanner, ir.BinOp, bool) {
	if n, ok := matchKeyword(s, "add"); ok {
		n, nuw, nsw := parseWrapFlags(n)
		return n, ir.BinOp{Kind: ir.BinAdd, NUW: nuw, NSW: nsw}, true
	}
	if n, ok := matchKeyword(s, "sub"); ok {
		n, nuw, nsw := parseWrapFlags(n)
		return n, ir.BinOp{Kind: ir.BinSub, NUW: nuw, NSW: nsw}, true
	}
	if n, ok := matchKeyword(s, "mul"); ok {
		n, nuw, nsw := parseWrapFlags(n)
		return n, ir.BinOp{Kind: ir.BinMul, NUW: nuw, NSW: nsw}, true
	}
	if n, ok := matchKeyword(s, "and"); ok {
		return n, ir.BinOp{Kind: ir.BinAnd}, true
	}
	if n, ok := matchKeyword(s, "or"); ok {
		return n, ir.BinOp{Kind: ir.BinOr}, true
	}
	if n, ok := matchKeyword(s, "xor"); ok {
		return n, ir.BinOp{Kind: ir.BinXor}, true
	}
	if n, ok := matchKeyword(s, "ashr"); ok {
		return n, ir.BinOp{Kind: ir.BinAShr}, true
	}
	if n, ok := matchKeyword(s, "lshr"); ok {
		return n, ir.BinOp{Kind: ir.BinLShr}, true
	}
	if n, ok := matchKeyword(s, "shl"); ok {
		return n, ir.BinOp{Kind: ir.BinShl}, true
	}
	if n, ok := matchKeyword(s, "sdiv"); ok {
		save := n
		n2 := n.hspace()
		if n3, ok := matchKeyword(n2, "exact"); ok {
			return n3, ir.BinOp{Kind: ir.BinSDiv, Exact: true}, true
		}
		return save, ir.BinOp{Kind: ir.BinSDiv}, true
	}
	return s, ir.BinOp{}, false
}

// parseWrapFlags parses the optional `nuw`/`nsw` modifiers that follow
// add/sub/mul, in either order, matching the grammar's opt!(preceded!(...))
// repetition.
func parseWrapFlags(s scanner) (scanner, bool, bool) {
	var nuw, nsw bool
	for {
		save := s
		n := s.hspace()
		if n2, ok := matchKeyword(n, "nuw"); ok && !nuw {
			nuw = true
			s = n2
			continue
		}
		if n2, ok := matchKeyword(n, "nsw"); ok && !nsw {
			nsw = true
			s = n2
			continue
		}
		s = save
		break
	}
	return s, nuw, nsw
}

func parseBin(s scanner, args []ir.Arg, name string, op ir.BinOp) (scanner, ir.InstructionC, error) {
	n := s.hspace()
	n, t, ok := parseType(n)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "binop", UnexpectedToken)
	}
	n = n.hspace()
	n, lhs, ok := parseValue(n, args)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "binop", UnexpectedToken)
	}
	n = n.hspace()
	n, ok = n.consumeTag(",")
	if !ok {
		return s, nil, errAt(s.src, n.pos, "binop", UnexpectedToken)
	}
	n = n.hspace()
	n, rhs, ok := parseValue(n, args)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "binop", UnexpectedToken)
	}
	return n, ir.InstBin{Result: name, Op: op, Type: t, LHS: lhs, RHS: rhs}, nil
}

func parseAlloca(s scanner, args []ir.Arg, name string) (scanner, ir.InstructionC, error) {
	n := s.hspace()
	n, t, ok := parseType(n)
	if !ok {
		return s, nil, errAt(s.src, n.pos, "alloca", UnexpectedToken)
	}
	inst := ir.InstAlloca{Result: name, Type: t}
	save := n
	n2 := n.hspace()
	if n3, ok := n2.consumeTag(","); ok {
		n3 = n3.hspace()
		if n4, count, ok := parseTypedValue(n3, args); ok {
			inst.CountType = count.Type
			inst.Count = count.Value
			n = n4
		} else {
			n = save
		}
	} else {
		n = save
	}
	n, align := parseAlignSuffix(n)
	inst.Align = align
	return n, inst, nil
}
