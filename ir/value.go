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

import "math/big"

// Constant is the sum type of constant expressions: ConstGlobal, ConstInt,
// ConstArray, ConstGEP, ConstNullPtr.
type Constant interface {
	isConstant()
}

// ConstGlobal is a reference to a global by name (the @ sigil is stripped).
type ConstGlobal struct {
	Name string
}

func (ConstGlobal) isConstant() {}

// ConstInt is an arbitrary-precision signed integer constant. Val is never
// nil for a well-formed ConstInt.
type ConstInt struct {
	Val *big.Int
}

func (ConstInt) isConstant() {}

// NewConstInt builds a ConstInt from a plain int64, used by zero-init
// elaboration and tests where arbitrary precision is not in play.
func NewConstInt(v int64) ConstInt {
	return ConstInt{Val: big.NewInt(v)}
}

// ConstArray is an ordered array of element constants, produced either by a
// c"..." byte-string literal or by zeroinitializer elaboration over an
// array, vector or struct type.
type ConstArray struct {
	Elems []Constant
}

func (ConstArray) isConstant() {}

// ConstGEP is a constant-expression getelementptr.
type ConstGEP struct {
	GEP *GEP[Constant]
}

func (ConstGEP) isConstant() {}

// ConstNullPtr is the null pointer constant, also the zero-init value of any
// pointer type.
type ConstNullPtr struct{}

func (ConstNullPtr) isConstant() {}

// GEPIndex is one (typed index, inrange) pair of a GEP index list.
type GEPIndex[T any] struct {
	Type    Type
	Index   T
	InRange bool
}

// GEP is a typed pointer base, an inbounds flag and an ordered index list.
// T is Constant for the constant-expression form and Value for the
// instruction form. ElemType is the leading element type the address
// computation walks (`getelementptr ElemType, BaseType Base, ...`);
// BaseType is the declared type of Base itself, normally a pointer to
// ElemType.
type GEP[T any] struct {
	ElemType Type
	BaseType Type
	Base     T
	Inbounds bool
	Indices  []GEPIndex[T]
}
