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
	"github.com/cloudwego/tacopt/internal/cfg"
)

type ExprSet = Set[Expr]

// Universe collects every expression computed anywhere in the graph.
func Universe(g *cfg.CFG) ExprSet {
	rs := NewSet[Expr]()
	for _, bb := range g.Blocks {
		for _, ins := range bb.Ins {
			if e, ok := ExprOf(ins); ok {
				rs.Add(e)
			}
		}
	}
	return rs
}

// ExprGenKill computes the expressions a block makes available (gen) and the
// expressions of the universe it invalidates (kill).
func ExprGenKill(bb *cfg.BasicBlock, universe ExprSet) (gen ExprSet, kill ExprSet) {
	gen = NewSet[Expr]()
	kill = NewSet[Expr]()

	/* scan every instruction */
	for _, ins := range bb.Ins {
		if e, ok := ExprOf(ins); ok {
			gen.Add(e)
		}

		/* a definition invalidates every expression reading it */
		if d := ins.Def(); d != "" {
			for e := range gen {
				if e.Uses(d) {
					gen.Remove(e)
				}
			}
			for e := range universe {
				if e.Uses(d) {
					kill.Add(e)
				}
			}
		}
	}
	return
}

// AvailableExpressions is the forward must-problem of expressions computed on
// every path reaching a block and not invalidated since.
func AvailableExpressions(g *cfg.CFG) *Framework[ExprSet] {
	nb := g.Len()
	all := Universe(g)
	gen := make([]ExprSet, nb)
	kill := make([]ExprSet, nb)

	/* summarize every block */
	for i, bb := range g.Blocks {
		gen[i], kill[i] = ExprGenKill(bb, all)
	}

	/* construct the problem */
	return &Framework[ExprSet] {
		Direction : Forward,
		Collect   : intersect[Expr],
		Equal     : equal[Expr],
		Init      : all.Clone,
		InitFirst : func() ExprSet { return NewSet[Expr]() },
		Transfer  : func(bb int, in ExprSet) ExprSet {
			return in.Clone().Minus(kill[bb]).Union(gen[bb])
		},
	}
}

// firstExpr finds the first computation of e in the block whose operands are not
// redefined before it.
func firstExpr(bb *cfg.BasicBlock, e Expr) int {
	for i, ins := range bb.Ins {
		if x, ok := ExprOf(ins); ok && x == e {
			return i
		}
		if d := ins.Def(); e.Uses(d) {
			return -1
		}
	}
	return -1
}

// lastExpr finds the last computation of e in the block whose operands are not
// redefined after it.
func lastExpr(bb *cfg.BasicBlock, e Expr) int {
	for i := len(bb.Ins) - 1; i >= 0; i-- {
		ins := bb.Ins[i]
		if x, ok := ExprOf(ins); ok && x == e && !e.Uses(ins.Def()) {
			return i
		}
		if d := ins.Def(); e.Uses(d) {
			return -1
		}
	}
	return -1
}
