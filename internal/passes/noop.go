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

// RemoveNoop drops every noop. The label of a dropped noop moves onto the next
// instruction, or, when that one is labeled already, jumps to it are redirected
// to the existing label. A labeled noop at the very end is kept.
func RemoveNoop(ins []tac.Instruction) (bool, []tac.Instruction) {
	changed := false
	alias := make(map[string]string)
	rev := make([]tac.Instruction, 0, len(ins))

	/* scan backwards so the next surviving instruction is always known */
	for i := len(ins) - 1; i >= 0; i-- {
		v := ins[i]
		if v.Op != tac.OpNoop {
			rev = append(rev, v)
			continue
		}

		/* unlabeled noops just go away */
		if v.Label == "" {
			changed = true
			continue
		}

		/* nothing to carry the label */
		if len(rev) == 0 {
			rev = append(rev, v)
			continue
		}

		/* merge the label into the next instruction */
		changed = true
		if next := &rev[len(rev) - 1]; next.Label == "" {
			next.Label = v.Label
		} else {
			alias[v.Label] = next.Label
		}
	}

	/* restore the order and redirect the jumps */
	ret := make([]tac.Instruction, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		v := rev[i]
		if to, ok := alias[v.Target()]; ok && v.Op.IsJump() {
			v = v.WithTarget(to)
		}
		ret = append(ret, v)
	}
	return changed, ret
}
