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

// Package ir is the in-memory data model produced by package parse: modules,
// types, constants, globals, functions and their basic blocks and
// instructions, and metadata. The package never parses anything itself; it
// only describes the shapes parse assembles.
package ir

import "fmt"

// Type is the sum type of the IR type grammar. Concrete variants are
// IntType, PointerType, ArrayType, VectorType, StructType, NamedType,
// FuncType, VoidType, MetadataType, OpaqueType and LabelType.
type Type interface {
	isType()
	String() string
}

// IntType is an integer type of arbitrary bit width, e.g. i1, i32, i128.
type IntType struct {
	BitWidth uint64
}

func (IntType) isType() {}

func (t IntType) String() string { return fmt.Sprintf("i%d", t.BitWidth) }

// PointerType is a pointer to Elem, optionally in a non-default address space.
type PointerType struct {
	Elem      Type
	AddrSpace uint64
}

func (PointerType) isType() {}

func (t PointerType) String() string {
	if t.AddrSpace != 0 {
		return fmt.Sprintf("%v addrspace(%d)*", t.Elem, t.AddrSpace)
	}
	return fmt.Sprintf("%v*", t.Elem)
}

// ArrayType is a fixed-length homogeneous aggregate, e.g. [4 x i8].
type ArrayType struct {
	Len  uint64
	Elem Type
}

func (ArrayType) isType() {}

func (t ArrayType) String() string { return fmt.Sprintf("[%d x %v]", t.Len, t.Elem) }

// VectorType is a fixed-length SIMD aggregate, e.g. <4 x i32>.
type VectorType struct {
	Len  uint64
	Elem Type
}

func (VectorType) isType() {}

func (t VectorType) String() string { return fmt.Sprintf("<%d x %v>", t.Len, t.Elem) }

// StructType is an ordered aggregate of heterogeneous fields, optionally
// packed (no inter-field padding), e.g. {i32, i8*} or <{i32, i8}>.
type StructType struct {
	Packed bool
	Fields []Type
}

func (StructType) isType() {}

func (t StructType) String() string {
	open, close := "{ ", " }"
	if t.Packed {
		open, close = "<{ ", " }>"
	}
	s := open
	for i, f := range t.Fields {
		if i > 0 {
			s += ", "
		}
		s += f.String()
	}
	return s + close
}

// NamedType is a forward-resolvable reference to a %name = type ... definition.
type NamedType struct {
	Name string
}

func (NamedType) isType() {}

func (t NamedType) String() string { return "%" + t.Name }

// FuncType is a function signature, e.g. i32 (i32, i8*, ...).
type FuncType struct {
	Ret     Type
	Params  []Type
	VarArgs bool
}

func (FuncType) isType() {}

func (t FuncType) String() string {
	s := fmt.Sprintf("%v (", t.Ret)
	for i, p := range t.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	if t.VarArgs {
		if len(t.Params) > 0 {
			s += ", "
		}
		s += "..."
	}
	return s + ")"
}

// VoidType is the absence of a value, used as a function return type.
type VoidType struct{}

func (VoidType) isType() {}

func (VoidType) String() string { return "void" }

// MetadataType is the type of metadata-tagged values.
type MetadataType struct{}

func (MetadataType) isType() {}

func (MetadataType) String() string { return "metadata" }

// OpaqueType is an incomplete type with no known body.
type OpaqueType struct{}

func (OpaqueType) isType() {}

func (OpaqueType) String() string { return "opaque" }

// LabelType is the type of a basic block label.
type LabelType struct{}

func (LabelType) isType() {}

func (LabelType) String() string { return "label" }

// ResolveNamed follows a NamedType through the module's type table until it
// reaches a non-NamedType, or returns the type unchanged if t is not a
// NamedType. A NamedType with no definition in types, or one at which the
// chain loops back on itself, is returned unchanged.
func ResolveNamed(types map[string]Type, t Type) Type {
	seen := map[string]bool{}
	for {
		nt, ok := t.(NamedType)
		if !ok {
			return t
		}
		next, ok := types[nt.Name]
		if !ok || seen[nt.Name] {
			return t
		}
		seen[nt.Name] = true
		t = next
	}
}
