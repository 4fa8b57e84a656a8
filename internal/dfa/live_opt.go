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

// EliminateDeadCode removes assignments whose result is not live right after
// them, until no assignment is dead.
func (self Optimizer) EliminateDeadCode(g *cfg.CFG) (bool, error) {
	rc := false
	for {
		res := LiveVariables(g).Solve(g, self.Renumber)
		changed := false

		/* scan every block backwards so indices stay valid */
		for b, bb := range g.Blocks {
			live := LiveAfter(bb, res.Out[b])
			for i := len(bb.Ins) - 1; i >= 0; i-- {
				if ins := bb.Ins[i]; removable(ins) && !live[i].Has(ins.Def()) {
					self.Logger.Printw("dead assignment", "block", b, "ins", ins.String())
					removeAt(bb, i)
					changed = true
				}
			}
		}

		/* check for changes */
		if !changed {
			return rc, nil
		}

		/* the terminals never change, but the label index does */
		if err := g.Rebuild(); err != nil {
			return true, err
		}

		/* removing one assignment may kill another */
		rc = true
	}
}
