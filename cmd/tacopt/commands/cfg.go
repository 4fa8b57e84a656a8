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
	"github.com/spf13/cobra"

	"github.com/cloudwego/tacopt"
)

func newCFGCmd() *cobra.Command {
	cmd := &cobra.Command {
		Use   : "cfg [file]",
		Short : "Show the control flow graph of a program",
		Long  : `Builds the control flow graph of the three address code of a program and
shows its blocks, dominators, edge classification, depth-first traversals,
back edges, reducibility and natural loops.`,
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

			/* translate and describe */
			optimize, _ := cmd.Flags().GetBool("optimize")
			prog, err := s.program(src, optimize)
			if err != nil {
				return err
			}
			r, err := tacopt.Describe(prog)
			if err != nil {
				return err
			}
			return s.emit(cmd, r)
		},
	}
	cmd.Flags().BoolP("optimize", "O", false, "Optimize the code first")
	return cmd
}
