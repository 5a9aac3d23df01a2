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

// matchKeyword consumes tag only when it is not merely the prefix of a
// longer identifier, e.g. matching "weak" must not also accept "weak_odr".
func matchKeyword(s scanner, tag string) (scanner, bool) {
	n, ok := s.consumeTag(tag)
	if !ok || identFollows(n) {
		return s, false
	}
	return n, true
}

type keywordRule[V any] struct {
	tag string
	val V
}

func matchKeywordTable[V any](s scanner, rules []keywordRule[V]) (scanner, V, bool) {
	for _, r := range rules {
		if n, ok := matchKeyword(s, r.tag); ok {
			return n, r.val, true
		}
	}
	var zero V
	return s, zero, false
}

func parseLinkage(s scanner) (scanner, ir.Linkage, bool) {
	return matchKeywordTable(s, []keywordRule[ir.Linkage]{
		{"private", ir.LinkagePrivate},
		{"internal", ir.LinkageInternal},
		{"available_externally", ir.LinkageAvailableExternally},
		{"linkonce_odr", ir.LinkageLinkOnceODR},
		{"linkonce", ir.LinkageLinkOnce},
		{"weak_odr", ir.LinkageWeakODR},
		{"weak", ir.LinkageWeak},
		{"common", ir.LinkageCommon},
		{"appending", ir.LinkageAppending},
		{"extern_weak", ir.LinkageExternWeak},
		{"external", ir.LinkageExternal},
	})
}

func parseVisibility(s scanner) (scanner, ir.Visibility, bool) {
	return matchKeywordTable(s, []keywordRule[ir.Visibility]{
		{"default", ir.VisibilityDefault},
		{"hidden", ir.VisibilityHidden},
		{"protected", ir.VisibilityProtected},
	})
}

func parseDLLStorageClass(s scanner) (scanner, ir.DLLStorageClass, bool) {
	return matchKeywordTable(s, []keywordRule[ir.DLLStorageClass]{
		{"dllimport", ir.DLLStorageClassImport},
		{"dllexport", ir.DLLStorageClassExport},
	})
}

func parseThreadLocalMode(s scanner) (scanner, ir.ThreadLocalMode, bool) {
	if n, ok := s.consumeTag("thread"); ok {
		n = n.hspace()
		if n2, ok := matchKeyword(n, "local"); ok {
			return n2, ir.ThreadLocalGeneral, true
		}
	}
	return matchKeywordTable(s, []keywordRule[ir.ThreadLocalMode]{
		{"localdynamic", ir.ThreadLocalLocalDynamic},
		{"initialexec", ir.ThreadLocalInitialExec},
		{"localexec", ir.ThreadLocalLocalExec},
	})
}

func parseUnnamedAddr(s scanner) (scanner, ir.UnnamedAddrMode, bool) {
	return matchKeywordTable(s, []keywordRule[ir.UnnamedAddrMode]{
		{"local_unnamed_addr", ir.LocalUnnamedAddr},
		{"unnamed_addr", ir.UnnamedAddr},
	})
}

// parseAddressSpace parses the `addrspace(N)` qualifier used by globals.
func parseAddressSpace(s scanner) (scanner, uint64, bool) {
	n, ok := s.consumeTag("addrspace")
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

func parseExternallyInitialized(s scanner) (scanner, bool) {
	return matchKeyword(s, "externally_initialized")
}

// parseGlobalTag parses the `global`/`constant` tag, returning true for
// `constant` (the IsConstant flag).
func parseGlobalTag(s scanner) (scanner, bool, bool) {
	if n, ok := matchKeyword(s, "constant"); ok {
		return n, true, true
	}
	if n, ok := matchKeyword(s, "global"); ok {
		return n, false, true
	}
	return s, false, false
}

func parseCmpKind(s scanner) (scanner, ir.CmpKind, bool) {
	return matchKeywordTable(s, []keywordRule[ir.CmpKind]{
		{"eq", ir.CmpEq},
		{"ne", ir.CmpNe},
		{"ugt", ir.CmpUGt},
		{"uge", ir.CmpUGe},
		{"ult", ir.CmpULt},
		{"ule", ir.CmpULe},
		{"sgt", ir.CmpSGt},
		{"sge", ir.CmpSGe},
		{"slt", ir.CmpSLt},
		{"sle", ir.CmpSLe},
	})
}

func parseCallingConv(s scanner) (scanner, ir.CallingConv, bool) {
	kinds := []keywordRule[ir.CallingConvKind]{
		{"ccc", ir.CallConvC},
		{"fastcc", ir.CallConvFast},
		{"coldcc", ir.CallConvCold},
		{"webkit_jscc", ir.CallConvWebKitJS},
		{"anyregcc", ir.CallConvAnyReg},
		{"preserve_mostcc", ir.CallConvPreserveMost},
		{"preserve_allcc", ir.CallConvPreserveAll},
		{"cxx_fast_tlscc", ir.CallConvCxxFastTLS},
		{"swiftcc", ir.CallConvSwift},
	}
	if n, kind, ok := matchKeywordTable(s, kinds); ok {
		return n, ir.CallingConv{Kind: kind}, true
	}
	if n, ok := matchKeyword(s, "cc"); ok {
		n = n.hspace()
		if n2, v, ok := n.uint64Lit(); ok {
			return n2, ir.CallingConv{Kind: ir.CallConvNumbered, N: v}, true
		}
	}
	return s, ir.CallingConv{}, false
}

// parseAlignSuffix parses the optional trailing `, align N` clause shared
// by allocas, loads and stores.
func parseAlignSuffix(s scanner) (scanner, *uint64) {
	save := s
	n := s.hspace()
	n, ok := n.consumeTag(",")
	if !ok {
		return save, nil
	}
	n = n.hspace()
	n, ok = n.consumeTag("align")
	if !ok {
		return save, nil
	}
	n = n.hspace()
	n, v, ok := n.uint64Lit()
	if !ok {
		return save, nil
	}
	return n, &v
}
