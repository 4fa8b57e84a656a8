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

func isInt(s string, v int64) bool {
	n, ok := tac.ParseInt(s)
	return ok && n == v
}

// simplify returns the operand an identity reduces the instruction to.
func simplify(ins tac.Instruction) (string, bool) {
	x, y := ins.Arg1, ins.Arg2
	switch ins.Op {
		case tac.OpPlus: {
			switch {
				case isInt(y, 0) : return x, true
				case isInt(x, 0) : return y, true
			}
		}
		case tac.OpMinus: {
			switch {
				case isInt(y, 0)              : return x, true
				case tac.IsIdent(x) && x == y : return "0", true
			}
		}
		case tac.OpMult: {
			switch {
				case isInt(y, 1)              : return x, true
				case isInt(x, 1)              : return y, true
				case isInt(x, 0), isInt(y, 0) : return "0", true
			}
		}
		case tac.OpDiv: {
			if isInt(y, 1) {
				return x, true
			}
		}
	}
	return "", false
}

// RemoveAlgebraicIdentities rewrites `x + 0`, `x - 0`, `x * 1`, `x / 1` into
// copies of x, `x * 0` and `x - x` into copies of 0, and removes `x = x`.
func RemoveAlgebraicIdentities(ins []tac.Instruction) (bool, []tac.Instruction) {
	changed := false
	ret := make([]tac.Instruction, 0, len(ins))

	/* check every instruction */
	for _, v := range ins {
		if v.Op == tac.OpAssign && v.Arg1 == v.Result {
			ret = drop(ret, v)
			changed = true
		} else if r, ok := simplify(v); ok {
			ret = append(ret, copyOf(v, r))
			changed = true
		} else {
			ret = append(ret, v)
		}
	}
	return changed, ret
}
