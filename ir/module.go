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

// Arg is one entry of a function's parameter list: an optional name (unnamed
// for declarations that only give the type) and its type.
type Arg struct {
	Name string
	Type Type
}

// BasicBlock is a label plus its ordered instruction list.
type BasicBlock struct {
	Label string
	Instrs []*Instruction
}

// Function is a declaration (Blocks == nil) or definition (Blocks != nil).
type Function struct {
	Name            string
	Linkage         Linkage
	Visibility      Visibility
	DLLStorageClass DLLStorageClass
	CC              CallingConv
	RetAttrs        ParAttrs
	// RetType is nil when the function returns void.
	RetType    Type
	Args       []Arg
	VarArgs    bool
	AttrGroups []uint64
	Blocks     []*BasicBlock
}

// IsDeclaration reports whether f has no body.
func (f *Function) IsDeclaration() bool { return f.Blocks == nil }

// GlobalVariable is a module-scope global or constant definition.
type GlobalVariable struct {
	Linkage               Linkage
	Visibility            Visibility
	DLLStorageClass       DLLStorageClass
	ThreadLocal           ThreadLocalMode
	UnnamedAddr           UnnamedAddrMode
	AddrSpace             *uint64
	ExternallyInitialized bool
	// IsConstant is true for `constant`, false for `global`.
	IsConstant bool
	Type       Type
	// Init is nil when the global has no initializer (a pure declaration).
	Init    Constant
	Section *string
	Align   *uint64
}

// Module is the top-level parse result: type definitions, global variables,
// function declarations/definitions, attribute groups and metadata, plus the
// module id, target triple and data layout.
type Module struct {
	ID       *string
	Triple   *string
	DataLayout DataLayout

	Functions        map[string]*Function
	Types            map[string]Type
	Globals          map[string]*GlobalVariable
	AttrGroups       map[uint64][]Attribute
	NamedMetadata    map[string]Metadata
	NumberedMetadata map[uint64]Metadata
}

// NewModule returns an empty Module ready for incremental population by the
// module-element dispatcher in package parse.
func NewModule() *Module {
	return &Module{
		DataLayout:       DataLayout{},
		Functions:        make(map[string]*Function),
		Types:            make(map[string]Type),
		Globals:          make(map[string]*GlobalVariable),
		AttrGroups:       make(map[uint64][]Attribute),
		NamedMetadata:    make(map[string]Metadata),
		NumberedMetadata: make(map[uint64]Metadata),
	}
}

// MergeFunction applies the function merge rule: if absent, insert; if
// present and the existing entry has no body, overwrite (a later
// declaration or definition replaces a plain declaration); if present and
// the existing entry has a body, the new entry is dropped. This realizes
// spec invariant "function definitions override declarations; declarations
// never overwrite definitions" regardless of which order the two entries
// appear in the source.
func (m *Module) MergeFunction(f *Function) {
	existing, ok := m.Functions[f.Name]
	if !ok {
		m.Functions[f.Name] = f
		return
	}
	if existing.IsDeclaration() {
		m.Functions[f.Name] = f
	}
	// existing has a body: keep it, drop f.
}
