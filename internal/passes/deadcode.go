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
	"github.com/cloudwego/tacopt/internal/tac"
)

// EliminateDefUse removes an assignment whose result is redefined later in the
// block before being read. The result of the last assignment is assumed live
// out of the block.
func EliminateDefUse(ins []tac.Instruction) (bool, []tac.Instruction) {
	changed := false
	ret := make([]tac.Instruction, 0, len(ins))

	/* check every assignment against the rest of the block */
	for i, v := range ins {
		if removable(v) && isOverwritten(v.Def(), ins[i + 1:]) {
			ret = drop(ret, v)
			changed = true
		} else {
			ret = append(ret, v)
		}
	}
	return changed, ret
}

func isOverwritten(d string, rest []tac.Instruction) bool {
	for _, v := range rest {
		for _, u := range v.Uses() {
			if u == d {
				return false
			}
		}
		if v.Def() == d {
			return true
		}
	}
	return false
}

// EliminateDeadVars removes assignments to variables that are dead, scanning the
// block backwards from its exit where every variable is live.
func EliminateDeadVars(ins []tac.Instruction) (bool, []tac.Instruction) {
	changed := false
	dead := make(map[string]bool)
	rev := make([]tac.Instruction, 0, len(ins))

	/* scan backwards */
	for i := len(ins) - 1; i >= 0; i-- {
		v := ins[i]
		d := v.Def()

		/* the assignment is dead */
		if removable(v) && dead[d] {
			rev = drop(rev, v)
			changed = true
			continue
		}

		/* kill the result and revive the operands */
		if d != "" {
			dead[d] = true
		}
		for _, u := range v.Uses() {
			dead[u] = false
		}
		rev = append(rev, v)
	}

	/* restore the order */
	for i, j := 0, len(rev) - 1; i < j; i, j = i + 1, j - 1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return changed, rev
}
