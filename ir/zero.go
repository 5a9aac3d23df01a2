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

import "fmt"

// ErrNoZero is returned by ZeroInit for a type with no defined zero value
// (function, opaque, metadata, void). Callers in package parse wrap it into
// a parse.Error with Kind SemanticRejection.
type ErrNoZero struct {
	Type Type
}

func (e *ErrNoZero) Error() string {
	return fmt.Sprintf("zeroinitializer has no defined value for type %v", e.Type)
}

// ZeroInit elaborates the `zeroinitializer` keyword into a concrete
// type-shaped Constant: Int -> zero, Pointer -> NullPtr, Array -> an array
// of per-element zero-init built recursively. Types has no defined zero and
// returns ErrNoZero for function, opaque, metadata and void types, along
// with named types that resolve to one of those.
func ZeroInit(types map[string]Type, t Type) (Constant, error) {
	switch tt := ResolveNamed(types, t).(type) {
	case IntType:
		return NewConstInt(0), nil
	case PointerType:
		return ConstNullPtr{}, nil
	case ArrayType:
		elems := make([]Constant, tt.Len)
		for i := range elems {
			elem, err := ZeroInit(types, tt.Elem)
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return ConstArray{Elems: elems}, nil
	case StructType:
		elems := make([]Constant, len(tt.Fields))
		for i, f := range tt.Fields {
			elem, err := ZeroInit(types, f)
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return ConstArray{Elems: elems}, nil
	case VectorType:
		elems := make([]Constant, tt.Len)
		for i := range elems {
			elem, err := ZeroInit(types, tt.Elem)
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return ConstArray{Elems: elems}, nil
	default:
		return nil, &ErrNoZero{Type: t}
	}
}
