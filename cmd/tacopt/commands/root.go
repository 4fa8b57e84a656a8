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

// Package commands provides the subcommands of the tacopt tool.
package commands

import (
	"io"
	"os"

	"github.com/nikandfor/errors"
	"github.com/nikandfor/tlog"
	"github.com/spf13/cobra"

	"github.com/cloudwego/tacopt"
	"github.com/cloudwego/tacopt/internal/config"
	"github.com/cloudwego/tacopt/internal/report"
)

// session is the configuration shared by every subcommand of one invocation.
type session struct {
	cfg    *config.Config
	logger *tlog.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command {
		Use   : "tacopt",
		Short : "tacopt - three address code optimizer",
		Long  : `tacopt translates programs into three address code, optimizes them and
shows their control flow graphs and dataflow facts.

Commands:
  tac       Translate a program, optionally optimized
  ast       Simplify the syntax tree of a program
  cfg       Show the control flow graph of a program
  analyze   Solve the dataflow analyses of a program
  passes    List the rewrites and passes with their indices
  init      Write a configuration file with every default spelled out

A program is read from the file named by the argument, or from the standard
input when the argument is "-" or missing.`,
		SilenceUsage: true,
	}

	/* persistent flags */
	root.PersistentFlags().String("config", "", "Config file path")
	root.PersistentFlags().String("format", "", "Output format (text, json, msgpack or debug)")
	root.PersistentFlags().Bool("trace", false, "Trace every rewrite to stderr")
	root.PersistentFlags().Int("max-rounds", 0, "Round limit of the optimization driver, 0 for none")
	root.PersistentFlags().IntSlice("ast-rewrites", nil, "Indices of the syntax tree rewrites to apply")
	root.PersistentFlags().IntSlice("block-passes", nil, "Indices of the block passes to apply")
	root.PersistentFlags().IntSlice("program-passes", nil, "Indices of the program passes to apply")

	/* subcommands */
	root.AddCommand(newTacCmd())
	root.AddCommand(newASTCmd())
	root.AddCommand(newCFGCmd())
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newPassesCmd())
	root.AddCommand(newInitCmd())
	return root
}

// Execute runs the command tree over the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

// newSession loads the configuration file and applies the command line flags
// over it.
func newSession(cmd *cobra.Command) (*session, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	/* command line overrides */
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("trace") {
		cfg.Trace, _ = flags.GetBool("trace")
	}
	if flags.Changed("max-rounds") {
		cfg.MaxRounds, _ = flags.GetInt("max-rounds")
	}
	if flags.Changed("ast-rewrites") {
		cfg.ASTRewrites, _ = flags.GetIntSlice("ast-rewrites")
	}
	if flags.Changed("block-passes") {
		cfg.BlockPasses, _ = flags.GetIntSlice("block-passes")
	}
	if flags.Changed("program-passes") {
		cfg.ProgramPasses, _ = flags.GetIntSlice("program-passes")
	}

	/* the flags may break the configuration */
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	/* tracing goes to stderr */
	ret := &session { cfg: cfg }
	if cfg.Trace {
		ret.logger = tlog.New(tlog.NewConsoleWriter(cmd.ErrOrStderr(), tlog.LstdFlags))
	}
	return ret, nil
}

// options converts the session into optimizer options.
func (self *session) options() []tacopt.Option {
	ret := []tacopt.Option {
		tacopt.WithMaxRounds(self.cfg.MaxRounds),
		tacopt.WithRenumber(self.cfg.Renumber),
		tacopt.WithUnreachable(self.cfg.Unreachable),
		tacopt.WithLogger(self.logger),
	}

	/* nil selections keep every pass */
	if self.cfg.ASTRewrites != nil {
		ret = append(ret, tacopt.WithASTRewrites(self.cfg.ASTRewrites...))
	}
	if self.cfg.BlockPasses != nil {
		ret = append(ret, tacopt.WithBlockPasses(self.cfg.BlockPasses...))
	}
	if self.cfg.ProgramPasses != nil {
		ret = append(ret, tacopt.WithProgramPasses(self.cfg.ProgramPasses...))
	}
	return ret
}

// emit writes v to the standard output of the command in the configured format.
func (self *session) emit(cmd *cobra.Command, v interface{}) error {
	return report.Encode(cmd.OutOrStdout(), self.cfg.Format, v)
}

// readSource reads the program named by the first argument.
func readSource(cmd *cobra.Command, args []string) (string, error) {
	var err error
	var buf []byte

	/* read the file or stdin */
	if len(args) == 0 || args[0] == "-" {
		buf, err = io.ReadAll(cmd.InOrStdin())
	} else {
		buf, err = os.ReadFile(args[0])
	}

	/* check for errors */
	if err != nil {
		return "", errors.Wrap(err, "read source")
	}
	return string(buf), nil
}
