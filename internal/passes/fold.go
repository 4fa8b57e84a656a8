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

// FoldConstants evaluates operations whose operands are all literals of the
// same kind. Integer division by zero is left to the run time. It panics with
// tac.UnsupportedConstantFold on an operation undefined for the operand kind.
func FoldConstants(ins []tac.Instruction) (bool, []tac.Instruction) {
	changed := false
	ret := make([]tac.Instruction, 0, len(ins))

	/* check every instruction */
	for _, v := range ins {
		var ok bool
		var r string

		/* evaluate the operation */
		switch {
			case v.Op.IsBinary() : r, ok = tac.EvalBinary(v.Op, v.Arg1, v.Arg2)
			case v.Op.IsUnary()  : r, ok = tac.EvalUnary(v.Op, v.Arg1)
		}

		/* replace with the result */
		if ok {
			ret = append(ret, copyOf(v, r))
			changed = true
		} else {
			ret = append(ret, v)
		}
	}
	return changed, ret
}
