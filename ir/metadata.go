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

// Metadata is the sum type of the metadata sub-language: MetadataNull,
// MetadataRef, MetadataValue, MetadataStruct, MetadataBytes,
// MetadataLocation.
type Metadata interface {
	isMetadata()
}

// MetadataNull is the literal `null` metadata node.
type MetadataNull struct{}

func (MetadataNull) isMetadata() {}

// MetadataRef is a reference to a numbered metadata node, `!N`.
type MetadataRef struct {
	ID uint64
}

func (MetadataRef) isMetadata() {}

// MetadataValue wraps a typed value occurrence used in metadata position.
type MetadataValue struct {
	Type  Type
	Value Value
}

func (MetadataValue) isMetadata() {}

// MetadataStruct is an ordered node list, `!{ m, m, ... }`.
type MetadataStruct struct {
	Elems []Metadata
}

func (MetadataStruct) isMetadata() {}

// MetadataBytes is a decoded quoted byte string, `!"..."`.
type MetadataBytes struct {
	Bytes []byte
}

func (MetadataBytes) isMetadata() {}

// MetadataLocation is the `!MDLocation(line: L, column: C, scope: m)` form.
type MetadataLocation struct {
	Line   uint64
	Column uint64
	Scope  Metadata
}

func (MetadataLocation) isMetadata() {}
