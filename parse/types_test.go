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
	"reflect"
	"testing"

	"github.com/irtext/llparse/ir"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ir.Type
	}{
		{"int", "i32", ir.IntType{BitWidth: 32}},
		{"void", "void", ir.VoidType{}},
		{"pointer", "i8*", ir.PointerType{Elem: ir.IntType{BitWidth: 8}}},
		{"pointer-addrspace", "i8 addrspace(1)*", ir.PointerType{Elem: ir.IntType{BitWidth: 8}, AddrSpace: 1}},
		{"array", "[4 x i32]", ir.ArrayType{Len: 4, Elem: ir.IntType{BitWidth: 32}}},
		{"vector", "<4 x i32>", ir.VectorType{Len: 4, Elem: ir.IntType{BitWidth: 32}}},
		{"struct", "{i32, i8}", ir.StructType{Fields: []ir.Type{ir.IntType{BitWidth: 32}, ir.IntType{BitWidth: 8}}}},
		{"packed-struct", "<{i32, i8}>", ir.StructType{Packed: true, Fields: []ir.Type{ir.IntType{BitWidth: 32}, ir.IntType{BitWidth: 8}}}},
		{"named", "%mytype", ir.NamedType{Name: "mytype"}},
		{"func", "i32 (i32, i8*)", ir.FuncType{Ret: ir.IntType{BitWidth: 32}, Params: []ir.Type{ir.IntType{BitWidth: 32}, ir.PointerType{Elem: ir.IntType{BitWidth: 8}}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, got, ok := parseType(newScanner([]byte(tc.src)))
			if !ok {
				t.Fatalf("parseType(%q) failed", tc.src)
			}
			if !n.eof() {
				t.Fatalf("parseType(%q) left unconsumed input: %q", tc.src, n.rest())
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("parseType(%q) = %#v, want %#v", tc.src, got, tc.want)
			}
		})
	}
}

func TestParseType_VarArgsFunc(t *testing.T) {
	n, got, ok := parseType(newScanner([]byte("void (i32, ...)")))
	if !ok || !n.eof() {
		t.Fatalf("parseType failed or left input: ok=%v rest=%q", ok, n.rest())
	}
	ft, ok := got.(ir.FuncType)
	if !ok {
		t.Fatalf("got %T, want ir.FuncType", got)
	}
	if !ft.VarArgs || len(ft.Params) != 1 {
		t.Fatalf("ft = %#v", ft)
	}
}
