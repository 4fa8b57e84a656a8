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

// Use is a variable read by an instruction.
type Use struct {
	Block int
	Index int
	Var   string
}

func (self Use) String() string {
	return fmt.Sprintf("%s@%d:%d", self.Var, self.Block, self.Index)
}

// Chains links definitions to the uses they reach and back.
type Chains struct {
	DefUse map[Definition][]Use
	UseDef map[Use][]Definition
}

// BuildChains computes the def-use and use-def chains from a reaching
// definitions solution.
func BuildChains(g *cfg.CFG, res *Result[DefSet]) *Chains {
	ret := &Chains {
		DefUse: make(map[Definition][]Use),
		UseDef: make(map[Use][]Definition),
	}

	/* every definition starts without uses */
	for _, ds := range Definitions(g) {
		for _, d := range ds {
			ret.DefUse[d] = nil
		}
	}

	/* replay every block */
	for b, bb := range g.Blocks {
		reach := res.In[b].Clone()
		for i, ins := range bb.Ins {
			for _, v := range ins.Uses() {
				u := Use { Block: b, Index: i, Var: v }
				for _, d := range reach.Sorted() {
					if d.Var == v {
						ret.DefUse[d] = append(ret.DefUse[d], u)
						ret.UseDef[u] = append(ret.UseDef[u], d)
					}
				}
			}

			/* the definition replaces every other definition of the variable */
			if v := ins.Def(); v != "" {
				for d := range reach {
					if d.Var == v {
						reach.Remove(d)
					}
				}
				reach.Add(Definition { Block: b, Index: i, Var: v })
			}
		}
	}
	return ret
}

// EliminateDeadDefinitions removes assignments that reach no use.
func (self Optimizer) EliminateDeadDefinitions(g *cfg.CFG) (bool, error) {
	rc := false
	for {
		res := ReachingDefinitions(g).Solve(g, self.Renumber)
		chains := BuildChains(g, res)
		changed := false

		/* scan every block backwards so indices stay valid */
		for b, bb := range g.Blocks {
			for i := len(bb.Ins) - 1; i >= 0; i-- {
				ins := bb.Ins[i]
				if !removable(ins) {
					continue
				}

				/* check for uses */
				if d := (Definition { Block: b, Index: i, Var: ins.Def() }); len(chains.DefUse[d]) == 0 {
					self.Logger.Printw("unused definition", "def", d, "ins", ins.String())
					removeAt(bb, i)
					changed = true
				}
			}
		}

		/* check for changes */
		if !changed {
			return rc, nil
		}

		/* rebuild the label index */
		if err := g.Rebuild(); err != nil {
			return true, err
		}
		rc = true
	}
}
