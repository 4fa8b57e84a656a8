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
	"io"

	"github.com/nikandfor/errors"
	"github.com/spf13/cobra"

	"github.com/cloudwego/tacopt/internal/cfg"
	"github.com/cloudwego/tacopt/internal/dfa"
	"github.com/cloudwego/tacopt/internal/report"
)

// analysis is the output of the analyze command.
type analysis struct {
	Facts   report.Analysis      `json:"facts"             msgpack:"facts"`
	Rewrite *report.Optimization `json:"rewrite,omitempty" msgpack:"rewrite,omitempty"`
}

func (self *analysis) WriteText(w io.Writer) {
	self.Facts.WriteText(w)
	if self.Rewrite != nil {
		self.Rewrite.WriteText(w)
	}
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command {
		Use   : "analyze [file]",
		Short : "Solve the dataflow analyses of a program",
		Long  : `Solves available expressions, live variables, reaching definitions and
constant propagation over the control flow graph of a program and shows the
facts at the entry and the exit of every block. With --rewrite the analysis
driven rewrites are applied afterwards, each one until it changes nothing,
and the blocks are shown before and after.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			/* translate and build the graph */
			optimize, _ := cmd.Flags().GetBool("optimize")
			prog, err := s.program(src, optimize)
			if err != nil {
				return err
			}
			g, err := cfg.Build(prog)
			if err != nil {
				return errors.Wrap(err, "build graph")
			}

			/* solve every analysis */
			ret := &analysis { Facts: report.Analyze(g, s.cfg.Renumber) }
			if rewrite, _ := cmd.Flags().GetBool("rewrite"); rewrite {
				o := dfa.Optimizer { Renumber: s.cfg.Renumber, Logger: s.logger }
				if ret.Rewrite, err = report.Rewrite(g, o, nil); err != nil {
					return err
				}
			}
			return s.emit(cmd, ret)
		},
	}
	cmd.Flags().BoolP("optimize", "O", false, "Optimize the code first")
	cmd.Flags().Bool("rewrite", false, "Apply the analysis driven rewrites")
	return cmd
}
