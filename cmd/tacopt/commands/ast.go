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

func newASTCmd() *cobra.Command {
	cmd := &cobra.Command {
		Use   : "ast [file]",
		Short : "Simplify the syntax tree of a program",
		Long  : `Applies the syntax tree rewrites until none of them applies and prints the
program back. With --raw the program is printed as parsed.`,
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

			/* an empty selection disables every rewrite */
			options := s.options()
			if raw, _ := cmd.Flags().GetBool("raw"); raw {
				options = append(options, tacopt.WithASTRewrites())
			}

			/* simplify and print */
			out, err := tacopt.OptimizeAST(src, options...)
			if err != nil {
				return err
			}
			return s.emit(cmd, out)
		},
	}
	cmd.Flags().Bool("raw", false, "Print the program without rewriting it")
	return cmd
}
