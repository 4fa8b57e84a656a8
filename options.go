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

package tacopt

import (
	"fmt"

	"github.com/nikandfor/tlog"

	"github.com/cloudwego/tacopt/internal/lang"
	"github.com/cloudwego/tacopt/internal/opts"
	"github.com/cloudwego/tacopt/internal/passes"
)

// Option is the property setter function for opts.Options.
type Option func(*opts.Options)

// Block passes, in the order the driver applies them.
const (
	DefUseDCE             = passes.DefUseDCE
	DeadVarsDCE           = passes.DeadVarsDCE
	AlgebraicIdentities   = passes.AlgebraicIdentities
	CommonExprElimination = passes.CommonExprElimination
	CopyPropagation       = passes.CopyPropagation
	ConstantPropagation   = passes.ConstantPropagation
	ConstantFolding       = passes.ConstantFolding
)

// Program passes, in the order the driver applies them.
const (
	GotoToGoto      = passes.GotoToGoto
	GotoThroughGoto = passes.GotoThroughGoto
	RemoveNoops     = passes.RemoveNoops
)

func getOptions(options []Option) opts.Options {
	o := opts.GetDefaultOptions()
	for _, fn := range options {
		fn(&o)
	}
	return o
}

func checkSelection(what string, sel []int, n int) {
	for _, v := range sel {
		if v < 0 || v >= n {
			panic(fmt.Sprintf("tacopt: invalid %s: %d", what, v))
		}
	}
}

// WithMaxRounds sets the maximum number of rounds of the optimization driver.
//
// Set this option to "0" disables this limit, which means optimizing until a
// round changes nothing.
//
// The default value of this option is "64".
func WithMaxRounds(rounds int) Option {
	if rounds < 0 {
		panic(fmt.Sprintf("tacopt: invalid round limit: %d", rounds))
	} else {
		return func(o *opts.Options) { o.MaxRounds = rounds }
	}
}

// WithRenumber makes the analyses visit the blocks in depth-first order, which
// usually reaches the fixed point in fewer sweeps.
func WithRenumber(v bool) Option {
	return func(o *opts.Options) { o.Renumber = v }
}

// WithUnreachable controls the final unreachable code elimination.
func WithUnreachable(v bool) Option {
	return func(o *opts.Options) { o.Unreachable = v }
}

// WithASTRewrites selects the syntax tree rewrites by their index. Calling it
// without arguments disables every rewrite.
func WithASTRewrites(sel ...int) Option {
	checkSelection("ast rewrite", sel, len(lang.Rewrites))
	sel = append([]int{}, sel...)
	return func(o *opts.Options) { o.ASTRewrites = sel }
}

// WithBlockPasses selects the block passes, in application order. Calling it
// without arguments disables every block pass.
func WithBlockPasses(sel ...int) Option {
	checkSelection("block pass", sel, len(passes.BlockPasses))
	sel = append([]int{}, sel...)
	return func(o *opts.Options) { o.BlockPasses = sel }
}

// WithProgramPasses selects the program passes, in application order. Calling it
// without arguments disables every program pass.
func WithProgramPasses(sel ...int) Option {
	checkSelection("program pass", sel, len(passes.ProgramPasses))
	sel = append([]int{}, sel...)
	return func(o *opts.Options) { o.ProgramPasses = sel }
}

// WithLogger traces every change made by the optimizers.
func WithLogger(l *tlog.Logger) Option {
	return func(o *opts.Options) { o.Logger = l }
}

// SetMaxRounds sets the default round limit for every call from now on.
//
// This value can also be configured with the `TACOPT_MAX_ROUNDS` environment
// variable.
//
// Returns the old opts.MaxRounds value.
func SetMaxRounds(rounds int) int {
	rounds, opts.MaxRounds = opts.MaxRounds, rounds
	return rounds
}
