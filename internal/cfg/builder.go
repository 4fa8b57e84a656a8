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

package cfg

import (
	"github.com/cloudwego/tacopt/internal/tac"
)

// BuildBlocks partitions an instruction stream into maximal basic blocks.
//
// An instruction is a leader if it is the first instruction, the target of a jump,
// or it immediately follows a jump. Each block runs from one leader up to the next.
func BuildBlocks(ins []tac.Instruction) ([]*BasicBlock, error) {
	if len(ins) == 0 {
		return nil, nil
	}

	/* index all the labels */
	labels := make(map[string]int, len(ins))
	for i, v := range ins {
		if v.Label != "" {
			labels[v.Label] = i
		}
	}

	/* mark all the leaders */
	leader := make([]bool, len(ins))
	leader[0] = true

	/* jump targets and jump followers */
	for i, v := range ins {
		if !v.Op.IsJump() {
			continue
		}

		/* the target must exist */
		to, ok := labels[v.Target()]
		if !ok {
			return nil, tac.EInvalidRef(v.Target(), i)
		}

		/* mark the target and the follower */
		leader[to] = true
		if i + 1 < len(ins) {
			leader[i + 1] = true
		}
	}

	/* cut the stream at every leader */
	var ret []*BasicBlock
	for i, v := range ins {
		if leader[i] {
			ret = append(ret, new(BasicBlock))
		}
		bb := ret[len(ret) - 1]
		bb.Ins = append(bb.Ins, v)
	}
	return ret, nil
}
