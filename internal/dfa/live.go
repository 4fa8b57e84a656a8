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

type VarSet = Set[string]

// DefUse computes the variables a block defines before using them (def) and the
// variables it reads before defining them (use).
func DefUse(bb *cfg.BasicBlock) (def VarSet, use VarSet) {
	def = NewSet[string]()
	use = NewSet[string]()

	/* scan every instruction */
	for _, ins := range bb.Ins {
		for _, v := range ins.Uses() {
			if !def.Has(v) {
				use.Add(v)
			}
		}
		if d := ins.Def(); d != "" && !use.Has(d) {
			def.Add(d)
		}
	}
	return
}

// LiveVariables is the backward may-problem of variables read on some path
// before being redefined.
func LiveVariables(g *cfg.CFG) *Framework[VarSet] {
	nb := g.Len()
	def := make([]VarSet, nb)
	use := make([]VarSet, nb)

	/* summarize every block */
	for i, bb := range g.Blocks {
		def[i], use[i] = DefUse(bb)
	}

	/* construct the problem */
	return &Framework[VarSet] {
		Direction : Backward,
		Collect   : union[string],
		Equal     : equal[string],
		Init      : func() VarSet { return NewSet[string]() },
		InitFirst : func() VarSet { return NewSet[string]() },
		Transfer  : func(bb int, out VarSet) VarSet {
			return out.Clone().Minus(def[bb]).Union(use[bb])
		},
	}
}

// LiveAfter returns the variables live right after every instruction of the
// block, given the variables live at the block exit.
func LiveAfter(bb *cfg.BasicBlock, out VarSet) []VarSet {
	rs := make([]VarSet, len(bb.Ins))
	live := out.Clone()

	/* walk backwards */
	for i := len(bb.Ins) - 1; i >= 0; i-- {
		rs[i] = live.Clone()
		if d := bb.Ins[i].Def(); d != "" {
			live.Remove(d)
		}
		for _, v := range bb.Ins[i].Uses() {
			live.Add(v)
		}
	}
	return rs
}
