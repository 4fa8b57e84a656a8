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

// PropagateCopies replaces reads of x by y after `x = y`, until either of them
// is redefined.
func PropagateCopies(ins []tac.Instruction) (bool, []tac.Instruction) {
	changed := false
	copies := make(map[string]string)
	ret := make([]tac.Instruction, 0, len(ins))

	/* forward scan */
	for _, v := range ins {
		r := v.ReplaceUses(func(s string) string {
			if src, ok := copies[s]; ok {
				return src
			} else {
				return s
			}
		})

		/* check for changes */
		if r != v {
			changed = true
		}

		/* the definition breaks every copy involving it */
		if d := r.Def(); d != "" {
			delete(copies, d)
			for k, src := range copies {
				if src == d {
					delete(copies, k)
				}
			}
			if r.Op == tac.OpAssign && tac.IsIdent(r.Arg1) && r.Arg1 != d {
				copies[d] = r.Arg1
			}
		}

		/* add to the result */
		ret = append(ret, r)
	}
	return changed, ret
}

// PropagateConstants replaces reads of x by c after `x = c` for a literal c,
// until x is redefined.
func PropagateConstants(ins []tac.Instruction) (bool, []tac.Instruction) {
	changed := false
	consts := make(map[string]string)
	ret := make([]tac.Instruction, 0, len(ins))

	/* forward scan */
	for _, v := range ins {
		r := v.ReplaceUses(func(s string) string {
			if c, ok := consts[s]; ok {
				return c
			} else {
				return s
			}
		})

		/* check for changes */
		if r != v {
			changed = true
		}

		/* update the known constants */
		if d := r.Def(); d != "" {
			delete(consts, d)
			if r.Op == tac.OpAssign && tac.IsLiteral(r.Arg1) {
				consts[d] = r.Arg1
			}
		}

		/* add to the result */
		ret = append(ret, r)
	}
	return changed, ret
}
