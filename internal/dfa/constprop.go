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
	"fmt"
	"sort"
	"strings"

	"github.com/cloudwego/tacopt/internal/cfg"
	"github.com/cloudwego/tacopt/internal/tac"
)

// Kind is the height of a constant propagation lattice value.
type Kind uint8

const (
	Undef Kind = iota
	Const
	NAC
)

// Value is an abstract variable value, Const carries the literal text.
type Value struct {
	Kind  Kind
	Const string
}

func (self Value) String() string {
	switch self.Kind {
		case Undef : return "UNDEF"
		case Const : return self.Const
		case NAC   : return "NAC"
		default    : return fmt.Sprintf("Kind(%d)", self.Kind)
	}
}

// Meet combines two values flowing into the same point.
func Meet(x Value, y Value) Value {
	switch {
		case x.Kind == Undef : return y
		case y.Kind == Undef : return x
		case x == y          : return x
		default              : return Value { Kind: NAC }
	}
}

// Env maps variables to abstract values, absent variables are Undef.
type Env map[string]Value

func (self Env) Get(v string) Value {
	return self[v]
}

func (self Env) Set(v string, x Value) {
	if x.Kind == Undef {
		delete(self, v)
	} else {
		self[v] = x
	}
}

func (self Env) Clone() Env {
	rs := make(Env, len(self))
	for k, v := range self {
		rs[k] = v
	}
	return rs
}

// Operand evaluates an operand, literals are constants.
func (self Env) Operand(s string) Value {
	if tac.IsIdent(s) {
		return self.Get(s)
	} else {
		return Value { Kind: Const, Const: s }
	}
}

// Eval computes the abstract value assigned by an instruction.
func (self Env) Eval(ins tac.Instruction) Value {
	switch {
		case ins.Op == tac.OpAssign : return self.Operand(ins.Arg1)
		case ins.Op == tac.OpInput  : return Value { Kind: NAC }
		case ins.Op.IsUnary()       : return self.evalUnary(ins)
		case ins.Op.IsBinary()      : return self.evalBinary(ins)
		default                     : return Value { Kind: NAC }
	}
}

func (self Env) evalUnary(ins tac.Instruction) Value {
	x := self.Operand(ins.Arg1)
	if x.Kind != Const {
		return x
	} else if !tac.Foldable(ins.Op, x.Const, "") {
		return Value { Kind: NAC }
	} else if r, ok := tac.EvalUnary(ins.Op, x.Const); ok {
		return Value { Kind: Const, Const: r }
	} else {
		return Value { Kind: NAC }
	}
}

func (self Env) evalBinary(ins tac.Instruction) Value {
	x := self.Operand(ins.Arg1)
	y := self.Operand(ins.Arg2)

	/* non-constants win over undefined values */
	switch {
		case x.Kind == NAC || y.Kind == NAC     : return Value { Kind: NAC }
		case x.Kind == Undef || y.Kind == Undef : return Value { Kind: Undef }
	}

	/* fold the constants */
	if !tac.Foldable(ins.Op, x.Const, y.Const) {
		return Value { Kind: NAC }
	} else if r, ok := tac.EvalBinary(ins.Op, x.Const, y.Const); ok {
		return Value { Kind: Const, Const: r }
	} else {
		return Value { Kind: NAC }
	}
}

// Apply updates the environment with the effect of an instruction.
func (self Env) Apply(ins tac.Instruction) {
	if d := ins.Def(); d != "" {
		self.Set(d, self.Eval(ins))
	}
}

func (self Env) String() string {
	keys := make([]string, 0, len(self))
	for k := range self {
		keys = append(keys, k)
	}

	/* sort by variable name */
	sort.Strings(keys)
	rs := make([]string, 0, len(keys))

	/* convert every binding */
	for _, k := range keys {
		rs = append(rs, fmt.Sprintf("%s: %s", k, self[k]))
	}

	/* join them together */
	return fmt.Sprintf(
		"{%s}",
		strings.Join(rs, ", "),
	)
}

func mergeEnv(x Env, y Env) Env {
	for k, v := range y {
		x.Set(k, Meet(x.Get(k), v))
	}
	return x
}

func equalEnv(x Env, y Env) bool {
	if len(x) != len(y) {
		return false
	}
	for k, v := range x {
		if w, ok := y[k]; !ok || w != v {
			return false
		}
	}
	return true
}

// Variables collects every variable read or written in the graph.
func Variables(g *cfg.CFG) VarSet {
	rs := NewSet[string]()
	for _, bb := range g.Blocks {
		for _, ins := range bb.Ins {
			if d := ins.Def(); d != "" {
				rs.Add(d)
			}
			for _, v := range ins.Uses() {
				rs.Add(v)
			}
		}
	}
	return rs
}

// ConstantPropagation is the forward problem mapping variables to constants.
// Every variable is non-constant at the entry since it may be read before being
// assigned.
func ConstantPropagation(g *cfg.CFG) *Framework[Env] {
	vars := Variables(g)
	return &Framework[Env] {
		Direction : Forward,
		Collect   : mergeEnv,
		Equal     : equalEnv,
		Init      : func() Env { return make(Env) },
		InitFirst : func() Env {
			rs := make(Env, len(vars))
			for v := range vars {
				rs[v] = Value { Kind: NAC }
			}
			return rs
		},
		Transfer  : func(bb int, in Env) Env {
			rs := in.Clone()
			for _, ins := range g.Blocks[bb].Ins {
				rs.Apply(ins)
			}
			return rs
		},
	}
}
