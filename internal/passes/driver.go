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

package passes

import (
	"fmt"

	"github.com/cloudwego/tacopt/internal/cfg"
	"github.com/cloudwego/tacopt/internal/opts"
	"github.com/cloudwego/tacopt/internal/tac"
)

// Select picks passes from a table by index, a nil selection picks all of them.
func Select(table []PassDescriptor, sel []int) []PassDescriptor {
	if sel == nil {
		return table
	}

	/* pick the passes in the requested order */
	ret := make([]PassDescriptor, 0, len(sel))
	for _, i := range sel {
		if i < 0 || i >= len(table) {
			panic(fmt.Sprintf("tacopt: invalid pass index: %d", i))
		}
		ret = append(ret, table[i])
	}
	return ret
}

// Optimize applies the selected passes until a whole round changes nothing.
//
// Every round first applies the block passes to every basic block until none of
// them changes the block, then applies each program pass once to the whole
// stream. With o.Unreachable set, unreachable code is eliminated at the end.
func Optimize(ins []tac.Instruction, o *opts.Options) ([]tac.Instruction, error) {
	if err := tac.Program(ins).Validate(); err != nil {
		return nil, err
	}

	/* select the passes */
	prog := tac.Program(ins).Clone()
	bps := Select(BlockPasses[:], o.BlockPasses)
	pps := Select(ProgramPasses[:], o.ProgramPasses)

	/* optimize until nothing changes */
	for round := 0;; round++ {
		if !o.CanContinue(round) {
			o.Logger.Printw("round limit reached", "rounds", round)
			break
		}

		/* split into basic blocks */
		bbs, err := cfg.BuildBlocks(prog)
		if err != nil {
			return nil, err
		}

		/* phase 1: block passes */
		changed := false
		for i, bb := range bbs {
			if runBlockPasses(o, round, i, bb, bps) {
				changed = true
			}
		}

		/* phase 2: program passes */
		prog = cfg.Flatten(bbs)
		for _, p := range pps {
			if ok, ret := p.Pass(prog); ok {
				o.Logger.Printw("program pass", "round", round, "pass", p.Name)
				prog, changed = ret, true
			}
		}

		/* check for changes */
		if !changed {
			o.Logger.Printw("fixed point reached", "rounds", round + 1)
			break
		}
	}

	/* final unreachable code elimination */
	if o.Unreachable {
		ok, ret, err := EliminateUnreachableCode(prog)
		if err != nil {
			return nil, err
		}
		if ok {
			o.Logger.Printw("program pass", "pass", UnreachableCode)
			prog = ret
		}
	}

	/* all done */
	return prog, nil
}

func runBlockPasses(o *opts.Options, round int, id int, bb *cfg.BasicBlock, bps []PassDescriptor) bool {
	rc := false
	for it := 0; o.CanContinue(it); it++ {
		changed := false
		for _, p := range bps {
			if ok, ret := p.Pass(bb.Ins); ok {
				o.Logger.Printw("block pass", "round", round, "block", id, "pass", p.Name)
				bb.Ins, changed = ret, true
			}
		}
		if !changed {
			break
		}
		rc = true
	}
	return rc
}

// OptimizeAll applies every pass with the default options.
func OptimizeAll(ins []tac.Instruction) ([]tac.Instruction, error) {
	o := opts.GetDefaultOptions()
	return Optimize(ins, &o)
}
