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

package ir

import "testing"

func TestMergeFunction_DeclareThenDefine(t *testing.T) {
	m := NewModule()
	m.MergeFunction(&Function{Name: "g"})
	m.MergeFunction(&Function{Name: "g", Blocks: []*BasicBlock{{Label: "entry"}}})
	f := m.Functions["g"]
	if f.IsDeclaration() {
		t.Fatal("expected defined function to win over a prior declaration")
	}
}

func TestMergeFunction_DefineThenDeclare(t *testing.T) {
	m := NewModule()
	m.MergeFunction(&Function{Name: "g", Blocks: []*BasicBlock{{Label: "entry"}}})
	m.MergeFunction(&Function{Name: "g"})
	f := m.Functions["g"]
	if f.IsDeclaration() {
		t.Fatal("a later declaration must not overwrite an existing definition")
	}
	if len(f.Blocks) != 1 || f.Blocks[0].Label != "entry" {
		t.Fatal("original definition body was discarded")
	}
}

func TestMergeFunction_DeclareThenDeclare(t *testing.T) {
	m := NewModule()
	m.MergeFunction(&Function{Name: "g", RetType: IntType{BitWidth: 32}})
	m.MergeFunction(&Function{Name: "g", RetType: IntType{BitWidth: 64}})
	f := m.Functions["g"]
	if !f.IsDeclaration() {
		t.Fatal("expected declaration to remain a declaration")
	}
	if f.RetType != (IntType{BitWidth: 64}) {
		t.Fatal("expected the later declaration to replace the earlier one")
	}
}

func TestResolveNamed(t *testing.T) {
	types := map[string]Type{
		"a": NamedType{Name: "b"},
		"b": IntType{BitWidth: 32},
	}
	got := ResolveNamed(types, NamedType{Name: "a"})
	if got != (IntType{BitWidth: 32}) {
		t.Errorf("ResolveNamed chain = %v, want i32", got)
	}
}

func TestResolveNamed_Unresolved(t *testing.T) {
	types := map[string]Type{}
	got := ResolveNamed(types, NamedType{Name: "missing"})
	if got != (NamedType{Name: "missing"}) {
		t.Errorf("ResolveNamed(missing) = %v, want unchanged NamedType", got)
	}
}
