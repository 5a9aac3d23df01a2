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
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/irtext/llparse/parse"
)

func TestWriteSummary(t *testing.T) {
	src := `; ModuleID = 'test'
target triple = "x86_64-unknown-linux-gnu"
declare i32 @used(i32)
define i32 @id(i32 %x) {
entry:
  ret i32 %x
}
`
	m, err := parse.Bytes([]byte(src))
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, writeSummary(&buf, m, false))
	out := buf.String()
	assert.Contains(t, out, "module: test")
	assert.Contains(t, out, "triple: x86_64-unknown-linux-gnu")
	assert.Contains(t, out, "definitions: 1, declarations: 1")
}

func TestWriteSummaryVerboseListsFunctions(t *testing.T) {
	src := `define void @f() {
entry:
  ret void
}
`
	m, err := parse.Bytes([]byte(src))
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, writeSummary(&buf, m, true))
	assert.True(t, strings.Contains(buf.String(), "@f: 1 block(s), 1 instruction(s)"))
}

func TestWriteSummaryFormatsAttributeGroups(t *testing.T) {
	src := `attributes #0 = { noinline "frame-pointer"="all" }
declare void @a() #0
`
	m, err := parse.Bytes([]byte(src))
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, writeSummary(&buf, m, true))
	out := buf.String()
	assert.Contains(t, out, "attribute groups:")
	assert.Contains(t, out, "noinline")
	assert.Contains(t, out, "frame-pointer")
}
