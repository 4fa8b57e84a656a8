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

// program translates the source, optimizing it when asked to.
func (self *session) program(src string, optimize bool) (tacopt.Program, error) {
	if optimize {
		return tacopt.Compile(src, self.options()...)
	} else {
		return tacopt.Translate(src)
	}
}

func newTacCmd() *cobra.Command {
	cmd := &cobra.Command {
		Use   : "tac [file]",
		Short : "Translate a program into three address code",
		Long  : `Translates a program into three address code. With --optimize the syntax
tree rewrites, the block passes and the program passes are applied, and with
--graph the analysis driven rewrites of the control flow graph follow.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			/* read and translate */
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			optimize, _ := cmd.Flags().GetBool("optimize")
			prog, err := s.program(src, optimize)
			if err != nil {
				return err
			}

			/* graph rewrites */
			if graph, _ := cmd.Flags().GetBool("graph"); graph {
				if prog, err = tacopt.OptimizeGraph(prog, s.options()...); err != nil {
					return err
				}
			}
			return s.emit(cmd, prog)
		},
	}
	cmd.Flags().BoolP("optimize", "O", false, "Optimize the code")
	cmd.Flags().Bool("graph", false, "Apply the control flow graph rewrites")
	return cmd
}
