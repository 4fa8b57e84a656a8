/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cloudwego/tacopt/internal/dfa"
	"github.com/cloudwego/tacopt/internal/lang"
	"github.com/cloudwego/tacopt/internal/passes"
)

// PassTable lists the names of one table of passes, by index.
type PassTable struct {
	Name   string   `json:"name"   msgpack:"name"`
	Passes []string `json:"passes" msgpack:"passes"`
}

type passTables []PassTable

func (self passTables) WriteText(w io.Writer) {
	for _, t := range self {
		fmt.Fprintf(w, "%s:\n", t.Name)
		for i, v := range t.Passes {
			fmt.Fprintf(w, "  %2d  %s\n", i, v)
		}
		fmt.Fprintln(w)
	}
}

func listPasses() passTables {
	ast := PassTable { Name: "AST rewrites" }
	for _, v := range lang.Rewrites {
		ast.Passes = append(ast.Passes, v.Name)
	}

	/* block and program passes */
	bps := PassTable { Name: "Block passes" }
	for _, v := range passes.BlockPasses {
		bps.Passes = append(bps.Passes, v.Name)
	}
	pps := PassTable { Name: "Program passes" }
	for _, v := range passes.ProgramPasses {
		pps.Passes = append(pps.Passes, v.Name)
	}

	/* graph rewrites always run together */
	cps := PassTable { Name: "Graph rewrites" }
	for _, v := range dfa.CFGPasses {
		cps.Passes = append(cps.Passes, v.Name)
	}
	return passTables { ast, bps, pps, cps }
}

func newPassesCmd() *cobra.Command {
	return &cobra.Command {
		Use   : "passes",
		Short : "List the rewrites and passes with their indices",
		Args  : cobra.NoArgs,
		RunE  : func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			return s.emit(cmd, listPasses())
		},
	}
}
