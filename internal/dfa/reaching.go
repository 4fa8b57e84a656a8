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
	"fmt"

	"github.com/cloudwego/tacopt/internal/cfg"
)

// Definition is an instruction assigning Var, addressed by block and index.
type Definition struct {
	Block int
	Index int
	Var   string
}

func (self Definition) String() string {
	return fmt.Sprintf("%s@%d:%d", self.Var, self.Block, self.Index)
}

type DefSet = Set[Definition]

// Definitions lists every definition site of the graph grouped by variable.
func Definitions(g *cfg.CFG) map[string][]Definition {
	rs := make(map[string][]Definition)
	for b, bb := range g.Blocks {
		for i, ins := range bb.Ins {
			if d := ins.Def(); d != "" {
				rs[d] = append(rs[d], Definition { Block: b, Index: i, Var: d })
			}
		}
	}
	return rs
}

// DefGenKill computes the definitions of a block that reach its exit (gen) and
// every definition of the variables it assigns (kill).
func DefGenKill(b int, bb *cfg.BasicBlock, defs map[string][]Definition) (gen DefSet, kill DefSet) {
	last := make(map[string]Definition)
	gen = NewSet[Definition]()
	kill = NewSet[Definition]()

	/* the last assignment of each variable wins */
	for i, ins := range bb.Ins {
		if d := ins.Def(); d != "" {
			last[d] = Definition { Block: b, Index: i, Var: d }
		}
	}

	/* build the sets */
	for v, d := range last {
		gen.Add(d)
		for _, k := range defs[v] {
			kill.Add(k)
		}
	}
	return
}

// ReachingDefinitions is the forward may-problem of definitions that reach a
// block without being overwritten.
func ReachingDefinitions(g *cfg.CFG) *Framework[DefSet] {
	nb := g.Len()
	defs := Definitions(g)
	gen := make([]DefSet, nb)
	kill := make([]DefSet, nb)

	/* summarize every block */
	for i, bb := range g.Blocks {
		gen[i], kill[i] = DefGenKill(i, bb, defs)
	}

	/* construct the problem */
	return &Framework[DefSet] {
		Direction : Forward,
		Collect   : union[Definition],
		Equal     : equal[Definition],
		Init      : func() DefSet { return NewSet[Definition]() },
		InitFirst : func() DefSet { return NewSet[Definition]() },
		Transfer  : func(bb int, in DefSet) DefSet {
			return in.Clone().Minus(kill[bb]).Union(gen[bb])
		},
	}
}
