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

// Endianness is the target byte order recorded by a data layout.
type Endianness int

const (
	LittleEndian Endianness = iota // default
	BigEndian
)

// AlignSpec is an (abi, preferred) alignment pair in bits, as recorded by an
// i/f/v/a datalayout segment.
type AlignSpec struct {
	ABI       uint64
	Preferred uint64
}

// PointerSpec is the per-address-space pointer layout recorded by a p[n]
// datalayout segment.
type PointerSpec struct {
	Size      uint64
	ABI       uint64
	Preferred uint64
	IndexSize uint64
}

// DataLayout is the structured form of a `target datalayout = "..."` string.
// The zero value is the empty layout the spec requires as the Module
// default.
type DataLayout struct {
	Endian            Endianness
	Mangling          string
	StackAlign        *uint64
	ProgramAddrSpace  *uint64
	AllocaAddrSpace   *uint64
	Pointers          map[uint64]PointerSpec
	IntAlign          map[uint64]AlignSpec
	FloatAlign        map[uint64]AlignSpec
	VectorAlign       map[uint64]AlignSpec
	AggregateAlign    map[uint64]AlignSpec
	NativeIntWidths   map[uint64]struct{}
}
