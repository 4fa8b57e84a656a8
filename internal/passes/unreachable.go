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
	"github.com/cloudwego/tacopt/internal/cfg"
	"github.com/cloudwego/tacopt/internal/tac"
)

// EliminateUnreachableCode drops the basic blocks that no path from the entry
// block reaches.
func EliminateUnreachableCode(ins []tac.Instruction) (bool, []tac.Instruction, error) {
	g, err := cfg.Build(ins)
	if err != nil {
		return false, ins, err
	}

	/* keep the reachable blocks only */
	changed := false
	ret := make([]tac.Instruction, 0, len(ins))
	for i, ok := range g.Reachable() {
		if ok {
			ret = append(ret, g.Blocks[i].Ins...)
		} else {
			changed = true
		}
	}
	return changed, ret, nil
}
