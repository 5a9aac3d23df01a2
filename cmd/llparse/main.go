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
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/klauspost/asmfmt"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/irtext/llparse/ir"
	"github.com/irtext/llparse/parse"
)

var command = &cobra.Command{
	Use:  "llparse path [-o output_file]",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.PersistentFlags().GetString("output")
		verbose, _ := cmd.PersistentFlags().GetBool("verbose")

		m, err := parse.File(args[0])
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		w := io.Writer(os.Stdout)
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				_, _ = fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			defer f.Close()
			w = f
		}

		if err := writeSummary(w, m, verbose); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	command.PersistentFlags().StringP("output", "o", "", "write the summary to a file instead of stdout")
	command.PersistentFlags().BoolP("verbose", "v", false, "print per-function block/instruction counts and attribute groups")
}

func main() {
	if err := command.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// writeSummary reports the shape of a parsed module: counts of its top-level
// constructs, then, with -v, a per-function breakdown and the raw attribute
// groups reformatted through asmfmt so the dumped Go syntax reads the way
// gofmt would lay it out.
func writeSummary(w io.Writer, m *ir.Module, verbose bool) error {
	if m.ID != nil {
		fmt.Fprintf(w, "module: %s\n", *m.ID)
	}
	if m.Triple != nil {
		fmt.Fprintf(w, "triple: %s\n", *m.Triple)
	}
	fmt.Fprintf(w, "types: %d, globals: %d, functions: %d, attribute groups: %d\n",
		len(m.Types), len(m.Globals), len(m.Functions), len(m.AttrGroups))

	defs, decls := lo.FilterReject(functionNames(m), func(name string, _ int) bool {
		return !m.Functions[name].IsDeclaration()
	})
	fmt.Fprintf(w, "definitions: %d, declarations: %d\n", len(defs), len(decls))

	if !verbose {
		return nil
	}

	for _, name := range defs {
		f := m.Functions[name]
		blocks := len(f.Blocks)
		instrs := lo.SumBy(f.Blocks, func(b *ir.BasicBlock) int { return len(b.Instrs) })
		fmt.Fprintf(w, "  @%s: %d block(s), %d instruction(s)\n", name, blocks, instrs)
	}
	for _, name := range decls {
		fmt.Fprintf(w, "  @%s: declaration\n", name)
	}

	if len(m.AttrGroups) == 0 {
		return nil
	}
	dump := formatAttrGroups(m.AttrGroups)
	formatted, err := asmfmt.Format(bytes.NewReader(dump))
	if err != nil {
		return fmt.Errorf("format attribute groups: %w", err)
	}
	fmt.Fprintln(w, "attribute groups:")
	w.Write(formatted)
	return nil
}

// functionNames returns m's function names in a deterministic, sorted order;
// lo.Keys over a map never promises one on its own.
func functionNames(m *ir.Module) []string {
	names := lo.Keys(m.Functions)
	sort.Strings(names)
	return names
}

// formatAttrGroups renders m's attribute groups as Go struct literals, the
// source text asmfmt.Format expects to line up the way a `#N = { ... }`
// clause does in its textual form.
func formatAttrGroups(groups map[uint64][]ir.Attribute) []byte {
	ids := lo.Keys(groups)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var buf bytes.Buffer
	for _, id := range ids {
		fmt.Fprintf(&buf, "#%d = []ir.Attribute{\n", id)
		for _, a := range groups[id] {
			if a.HasValue {
				fmt.Fprintf(&buf, "\t{Name: %q, Value: %q},\n", a.Name, a.Value)
			} else {
				fmt.Fprintf(&buf, "\t{Name: %q},\n", a.Name)
			}
		}
		buf.WriteString("}\n")
	}
	return buf.Bytes()
}
