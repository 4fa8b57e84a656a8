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

package dfa

import (
	"github.com/nikandfor/tlog"

	"github.com/cloudwego/tacopt/internal/cfg"
	"github.com/cloudwego/tacopt/internal/tac"
)

// Optimizer rewrites a graph using the solutions of the analyses.
type Optimizer struct {
	Renumber bool
	Logger   *tlog.Logger
}

// CFGPass is a graph rewrite, it reports whether the graph changed.
type CFGPass func(self Optimizer, g *cfg.CFG) (bool, error)

// CFGPassDescriptor names a graph rewrite.
type CFGPassDescriptor struct {
	Name string
	Pass CFGPass
}

// CFGPasses lists the graph rewrites in the order they are usually applied.
var CFGPasses = [...]CFGPassDescriptor {
	{ Name: "Available Expressions Elimination" , Pass: Optimizer.EliminateRedundantExpressions },
	{ Name: "Dead Code Elimination (Liveness)"  , Pass: Optimizer.EliminateDeadCode },
	{ Name: "Dead Definition Elimination"       , Pass: Optimizer.EliminateDeadDefinitions },
}

// Run applies every graph rewrite until none of them changes the graph.
func (self Optimizer) Run(g *cfg.CFG) (bool, error) {
	var err error
	var rc, ok bool

	/* iterate to a fixed point */
	for ok = true; ok; rc = rc || ok {
		ok = false
		for _, p := range CFGPasses {
			var changed bool
			if changed, err = p.Pass(self, g); err != nil {
				return rc, err
			}
			if changed {
				ok = true
				self.Logger.Printw("cfg pass changed the graph", "pass", p.Name)
			}
		}
	}
	return rc, nil
}

// removeAt drops an instruction from a block, a labeled instruction becomes a
// labeled noop so that jumps to it stay valid.
func removeAt(bb *cfg.BasicBlock, i int) {
	if ins := bb.Ins[i]; ins.Label != "" {
		bb.Replace(i, tac.Noop().At(ins.Label))
	} else {
		bb.Remove(i)
	}
}

// removable reports whether an instruction only assigns its result.
func removable(ins tac.Instruction) bool {
	return ins.Op == tac.OpAssign || ins.Op.IsExpr()
}
