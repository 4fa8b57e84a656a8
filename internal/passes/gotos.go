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

// resolve follows a chain of unconditional gotos starting at label. A chain that
// runs into a cycle ends at the first label seen twice, the label of the jump
// being resolved counts as seen.
func resolve(prog []tac.Instruction, labels map[string]int, own string, label string) string {
	seen := make(map[string]bool)
	if own != "" {
		seen[own] = true
	}

	/* follow the chain */
	for !seen[label] {
		i, ok := labels[label]
		if !ok || prog[i].Op != tac.OpGoto {
			break
		}
		seen[label] = true
		label = prog[i].Target()
	}
	return label
}

// ReplaceGotoToGoto makes every jump whose target is an unconditional goto jump
// to the end of the goto chain instead. A pure cycle of gotos collapses onto the
// label the chain returns to.
func ReplaceGotoToGoto(ins []tac.Instruction) (bool, []tac.Instruction) {
	changed := false
	ret := tac.Program(ins).Clone()
	labels := ret.Labels()

	/* resolve the jumps in order, later ones see the earlier rewrites */
	for i, v := range ret {
		if !v.Op.IsJump() {
			continue
		}

		/* retarget if needed */
		if to := resolve(ret, labels, v.Label, v.Target()); to != v.Target() {
			ret[i] = v.WithTarget(to)
			changed = true
		}
	}
	return changed, ret
}

// destination follows labeled noops forward to the first labeled instruction
// control falls into.
func destination(prog []tac.Instruction, labels map[string]int, label string) string {
	i, ok := labels[label]
	if !ok {
		return label
	}

	/* skip the noops */
	for prog[i].Op == tac.OpNoop && i + 1 < len(prog) && prog[i + 1].Label != "" {
		i++
		label = prog[i].Label
	}
	return label
}

// RemoveGotoThroughGoto short-circuits jumps that land on a noop falling into
// another label, and turns a goto to the very next instruction into a noop. The
// branch structure of conditional jumps is kept.
func RemoveGotoThroughGoto(ins []tac.Instruction) (bool, []tac.Instruction) {
	changed := false
	ret := tac.Program(ins).Clone()
	labels := ret.Labels()

	/* check every jump */
	for i, v := range ret {
		if !v.Op.IsJump() {
			continue
		}

		/* skip over the noops */
		if to := destination(ret, labels, v.Target()); to != v.Target() {
			v = v.WithTarget(to)
			ret[i] = v
			changed = true
		}

		/* a goto to the next instruction does nothing */
		if v.Op == tac.OpGoto && i + 1 < len(ret) && ret[i + 1].Label == v.Target() {
			ret[i] = tac.Noop().At(v.Label)
			changed = true
		}
	}
	return changed, ret
}
