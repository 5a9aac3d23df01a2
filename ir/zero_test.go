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

import (
	"errors"
	"testing"
)

func TestZeroInit(t *testing.T) {
	types := map[string]Type{}
	tests := []struct {
		name string
		typ  Type
		want Constant
	}{
		{"int", IntType{BitWidth: 8}, NewConstInt(0)},
		{"pointer", PointerType{Elem: IntType{BitWidth: 8}}, ConstNullPtr{}},
		{
			"array",
			ArrayType{Len: 4, Elem: IntType{BitWidth: 8}},
			ConstArray{Elems: []Constant{NewConstInt(0), NewConstInt(0), NewConstInt(0), NewConstInt(0)}},
		},
		{
			"nested array",
			ArrayType{Len: 2, Elem: ArrayType{Len: 2, Elem: IntType{BitWidth: 32}}},
			ConstArray{Elems: []Constant{
				ConstArray{Elems: []Constant{NewConstInt(0), NewConstInt(0)}},
				ConstArray{Elems: []Constant{NewConstInt(0), NewConstInt(0)}},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ZeroInit(types, tt.typ)
			if err != nil {
				t.Fatalf("ZeroInit(%v) error = %v", tt.typ, err)
			}
			if !constantsEqual(got, tt.want) {
				t.Errorf("ZeroInit(%v) = %#v, want %#v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestZeroInit_NoZero(t *testing.T) {
	types := map[string]Type{}
	noZero := []Type{
		FuncType{Ret: VoidType{}},
		OpaqueType{},
		MetadataType{},
		VoidType{},
	}
	for _, typ := range noZero {
		_, err := ZeroInit(types, typ)
		var e *ErrNoZero
		if !errors.As(err, &e) {
			t.Errorf("ZeroInit(%v) error = %v, want *ErrNoZero", typ, err)
		}
	}
}

func TestZeroInit_NamedType(t *testing.T) {
	types := map[string]Type{
		"intpair": StructType{Fields: []Type{IntType{BitWidth: 32}, IntType{BitWidth: 32}}},
	}
	got, err := ZeroInit(types, NamedType{Name: "intpair"})
	if err != nil {
		t.Fatalf("ZeroInit error = %v", err)
	}
	want := ConstArray{Elems: []Constant{NewConstInt(0), NewConstInt(0)}}
	if !constantsEqual(got, want) {
		t.Errorf("ZeroInit(named) = %#v, want %#v", got, want)
	}
}

func constantsEqual(a, b Constant) bool {
	switch av := a.(type) {
	case ConstInt:
		bv, ok := b.(ConstInt)
		return ok && av.Val.Cmp(bv.Val) == 0
	case ConstNullPtr:
		_, ok := b.(ConstNullPtr)
		return ok
	case ConstArray:
		bv, ok := b.(ConstArray)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !constantsEqual(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
