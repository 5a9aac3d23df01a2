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
	"errors"
	"testing"

	"github.com/irtext/llparse/ir"
)

func TestBytes_TripleAndDeclare(t *testing.T) {
	src := `target triple = "x86_64-unknown-linux-gnu"
declare i32 @foo(i32, i32)
`
	m, err := Bytes([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Triple == nil || *m.Triple != "x86_64-unknown-linux-gnu" {
		t.Fatalf("triple = %v, want x86_64-unknown-linux-gnu", m.Triple)
	}
	f, ok := m.Functions["foo"]
	if !ok {
		t.Fatal("function foo not found")
	}
	if !f.IsDeclaration() {
		t.Fatal("expected foo to be a declaration")
	}
	if len(f.Args) != 2 {
		t.Fatalf("len(Args) = %d, want 2", len(f.Args))
	}
}

func TestBytes_GlobalZeroInitializer(t *testing.T) {
	src := `@g = global [4 x i8] zeroinitializer, align 1
`
	m, err := Bytes([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, ok := m.Globals["g"]
	if !ok {
		t.Fatal("global g not found")
	}
	arr, ok := g.Init.(ir.ConstArray)
	if !ok {
		t.Fatalf("Init = %T, want ir.ConstArray", g.Init)
	}
	if len(arr.Elems) != 4 {
		t.Fatalf("len(Elems) = %d, want 4", len(arr.Elems))
	}
	if g.Align == nil || *g.Align != 1 {
		t.Fatalf("Align = %v, want 1", g.Align)
	}
}

func TestBytes_ConstantGEPInitializer(t *testing.T) {
	src := `@s = constant [3 x i8] c"hi\00"
@p = global i8* getelementptr inbounds ([3 x i8], [3 x i8]* @s, i32 0, i32 0)
`
	m, err := Bytes([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, ok := m.Globals["p"]
	if !ok {
		t.Fatal("global p not found")
	}
	gep, ok := p.Init.(ir.ConstGEP)
	if !ok {
		t.Fatalf("Init = %T, want ir.ConstGEP", p.Init)
	}
	base, ok := gep.GEP.Base.(ir.ConstGlobal)
	if !ok || base.Name != "s" {
		t.Fatalf("GEP.Base = %#v, want ConstGlobal{s}", gep.GEP.Base)
	}
	if len(gep.GEP.Indices) != 2 {
		t.Fatalf("len(Indices) = %d, want 2", len(gep.GEP.Indices))
	}
}

func TestBytes_BranchAndArgumentResolution(t *testing.T) {
	src := `define i32 @id(i32 %x) {
entry:
  %c = icmp eq i32 %x, 0
  br i1 %c, label %zero, label %nonzero
zero:
  ret i32 0
nonzero:
  ret i32 %x
}
`
	m, err := Bytes([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, ok := m.Functions["id"]
	if !ok {
		t.Fatal("function id not found")
	}
	if f.IsDeclaration() {
		t.Fatal("expected id to be a definition")
	}
	if len(f.Blocks) != 3 {
		t.Fatalf("len(Blocks) = %d, want 3", len(f.Blocks))
	}
	entry := f.Blocks[0]
	icmp, ok := entry.Instrs[0].Content.(ir.InstICmp)
	if !ok {
		t.Fatalf("Instrs[0] = %T, want ir.InstICmp", entry.Instrs[0].Content)
	}
	arg, ok := icmp.LHS.(ir.ValArgument)
	if !ok || arg.Index != 0 {
		t.Fatalf("icmp.LHS = %#v, want ValArgument{0}", icmp.LHS)
	}
	br, ok := entry.Instrs[1].Content.(ir.InstTerm)
	if !ok {
		t.Fatalf("Instrs[1] = %T, want ir.InstTerm", entry.Instrs[1].Content)
	}
	cond, ok := br.Term.(ir.TermBrCond)
	if !ok {
		t.Fatalf("Term = %T, want ir.TermBrCond", br.Term)
	}
	if cond.TrueLabel != "zero" || cond.FalseLabel != "nonzero" {
		t.Fatalf("cond = %#v", cond)
	}
	lastBlock := f.Blocks[2]
	ret, ok := lastBlock.Instrs[0].Content.(ir.InstTerm)
	if !ok {
		t.Fatalf("Instrs[0] = %T, want ir.InstTerm", lastBlock.Instrs[0].Content)
	}
	retTerm, ok := ret.Term.(ir.TermRet)
	if !ok {
		t.Fatalf("Term = %T, want ir.TermRet", ret.Term)
	}
	if _, ok := retTerm.Value.(ir.ValArgument); !ok {
		t.Fatalf("ret value = %#v, want ValArgument", retTerm.Value)
	}
}

func TestBytes_AttributeGroupReuse(t *testing.T) {
	src := `attributes #0 = { noinline "frame-pointer"="all" }
declare void @a() #0
declare void @b() #0
`
	m, err := Bytes([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	attrs, ok := m.AttrGroups[0]
	if !ok || len(attrs) != 2 {
		t.Fatalf("AttrGroups[0] = %#v", attrs)
	}
	a, ok := m.Functions["a"]
	if !ok || len(a.AttrGroups) != 1 || a.AttrGroups[0] != 0 {
		t.Fatalf("a.AttrGroups = %#v", a)
	}
	b, ok := m.Functions["b"]
	if !ok || len(b.AttrGroups) != 1 || b.AttrGroups[0] != 0 {
		t.Fatalf("b.AttrGroups = %#v", b)
	}
}

func TestBytes_DeclareThenDefine(t *testing.T) {
	src := `declare i32 @f(i32)
define i32 @f(i32 %x) {
entry:
  ret i32 %x
}
`
	m, err := Bytes([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := m.Functions["f"]
	if f.IsDeclaration() {
		t.Fatal("expected the definition to win over the earlier declaration")
	}
}

func TestBytes_DefineThenDeclare(t *testing.T) {
	src := `define i32 @f(i32 %x) {
entry:
  ret i32 %x
}
declare i32 @f(i32)
`
	m, err := Bytes([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := m.Functions["f"]
	if f.IsDeclaration() {
		t.Fatal("expected the earlier definition to survive a later declaration")
	}
}

func TestBytes_UnknownOpcode(t *testing.T) {
	src := `define void @f() {
entry:
  %x = frobnicate i32 0
}
`
	_, err := Bytes([]byte(src))
	if err == nil {
		t.Fatal("expected an error")
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if perr.Kind != UnknownOpcode {
		t.Fatalf("Kind = %v, want UnknownOpcode", perr.Kind)
	}
}

func TestBytes_ZeroInitOnOpaqueIsSemanticRejection(t *testing.T) {
	src := `%opaque_t = type opaque
@g = global %opaque_t zeroinitializer
`
	_, err := Bytes([]byte(src))
	if err == nil {
		t.Fatal("expected an error")
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if perr.Kind != SemanticRejection {
		t.Fatalf("Kind = %v, want SemanticRejection", perr.Kind)
	}
}

func TestBytes_WhitespaceIdempotence(t *testing.T) {
	tight := `@g = global i32 1`
	loose := "\n\n  @g   =    global   i32   1  \n\n"
	m1, err := Bytes([]byte(tight))
	if err != nil {
		t.Fatalf("tight: %v", err)
	}
	m2, err := Bytes([]byte(loose))
	if err != nil {
		t.Fatalf("loose: %v", err)
	}
	g1 := m1.Globals["g"].Init.(ir.ConstInt)
	g2 := m2.Globals["g"].Init.(ir.ConstInt)
	if g1.Val.Cmp(g2.Val) != 0 {
		t.Fatalf("g1 = %v, g2 = %v", g1.Val, g2.Val)
	}
}

func TestBytes_TruncatedInput(t *testing.T) {
	src := `define i32 @f(i32 %x) {
entry:
  ret i32 %x
`
	_, err := Bytes([]byte(src))
	if err == nil {
		t.Fatal("expected an error for an unterminated function body")
	}
}
