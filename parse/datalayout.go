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
	"strconv"
	"strings"

	"github.com/irtext/llparse/ir"
)

// parseDataLayout implements spec §4.3: split the quoted mini-language on
// `-`, dispatch each segment on its leading sigil and merge the result into
// dl, with later segments for the same key overriding earlier ones. Unknown
// segments are tolerated silently.
func parseDataLayout(dl ir.DataLayout, spec string) ir.DataLayout {
	if dl.Pointers == nil {
		dl.Pointers = make(map[uint64]ir.PointerSpec)
	}
	if dl.IntAlign == nil {
		dl.IntAlign = make(map[uint64]ir.AlignSpec)
	}
	if dl.FloatAlign == nil {
		dl.FloatAlign = make(map[uint64]ir.AlignSpec)
	}
	if dl.VectorAlign == nil {
		dl.VectorAlign = make(map[uint64]ir.AlignSpec)
	}
	if dl.AggregateAlign == nil {
		dl.AggregateAlign = make(map[uint64]ir.AlignSpec)
	}
	if dl.NativeIntWidths == nil {
		dl.NativeIntWidths = make(map[uint64]struct{})
	}

	for _, seg := range strings.Split(spec, "-") {
		if seg == "" {
			continue
		}
		applyDataLayoutSegment(&dl, seg)
	}
	return dl
}

func applyDataLayoutSegment(dl *ir.DataLayout, seg string) {
	switch seg[0] {
	case 'e':
		dl.Endian = ir.LittleEndian
	case 'E':
		dl.Endian = ir.BigEndian
	case 'm':
		rest := strings.TrimPrefix(seg, "m")
		rest = strings.TrimPrefix(rest, ":")
		dl.Mangling = rest
	case 'p':
		applyPointerSegment(dl, seg)
	case 'i':
		applyAlignSegment(dl.IntAlign, seg[1:])
	case 'f':
		applyAlignSegment(dl.FloatAlign, seg[1:])
	case 'v':
		applyAlignSegment(dl.VectorAlign, seg[1:])
	case 'a':
		applyAlignSegment(dl.AggregateAlign, seg[1:])
	case 'n':
		for _, w := range strings.Split(seg[1:], ":") {
			if n, ok := parseUintField(w); ok {
				dl.NativeIntWidths[n] = struct{}{}
			}
		}
	case 'S':
		if n, ok := parseUintField(seg[1:]); ok {
			dl.StackAlign = &n
		}
	case 'P':
		if n, ok := parseUintField(seg[1:]); ok {
			dl.ProgramAddrSpace = &n
		}
	case 'A':
		if n, ok := parseUintField(seg[1:]); ok {
			dl.AllocaAddrSpace = &n
		}
	default:
		// Unknown segment sigil: tolerated silently per spec §4.3.
	}
}

// applyAlignSegment parses an "N:abi[:pref]" or bare ":abi[:pref]" (for the
// aggregate "a" sigil, which has no bit-width field) segment tail into m,
// keyed by N (0 for the aggregate form).
func applyAlignSegment(m map[uint64]ir.AlignSpec, tail string) {
	parts := strings.Split(tail, ":")
	if len(parts) == 0 {
		return
	}
	key, ok := parseUintField(parts[0])
	rest := parts[1:]
	if !ok {
		key = 0
	}
	if len(rest) == 0 {
		return
	}
	abi, ok := parseUintField(rest[0])
	if !ok {
		return
	}
	spec := ir.AlignSpec{ABI: abi, Preferred: abi}
	if len(rest) > 1 {
		if pref, ok := parseUintField(rest[1]); ok {
			spec.Preferred = pref
		}
	}
	m[key] = spec
}

func applyPointerSegment(dl *ir.DataLayout, seg string) {
	rest := seg[1:]
	addrSpace := uint64(0)
	if len(rest) > 0 && rest[0] != ':' {
		end := strings.IndexByte(rest, ':')
		if end < 0 {
			return
		}
		n, ok := parseUintField(rest[:end])
		if !ok {
			return
		}
		addrSpace = n
		rest = rest[end:]
	}
	rest = strings.TrimPrefix(rest, ":")
	fields := strings.Split(rest, ":")
	if len(fields) < 2 {
		return
	}
	size, ok := parseUintField(fields[0])
	if !ok {
		return
	}
	abi, ok := parseUintField(fields[1])
	if !ok {
		return
	}
	spec := ir.PointerSpec{Size: size, ABI: abi, Preferred: abi, IndexSize: size}
	if len(fields) > 2 {
		if pref, ok := parseUintField(fields[2]); ok {
			spec.Preferred = pref
		}
	}
	if len(fields) > 3 {
		if idx, ok := parseUintField(fields[3]); ok {
			spec.IndexSize = idx
		}
	}
	dl.Pointers[addrSpace] = spec
}

func parseUintField(s string) (uint64, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
