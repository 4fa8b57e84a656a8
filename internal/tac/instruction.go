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

package tac

import (
	"fmt"
	"strings"
)

// Instruction is a single three-address code quadruple with an optional label.
// It is a value type, two instructions are equal iff all of their fields are equal.
type Instruction struct {
	Label  string `json:"label,omitempty"  msgpack:"label,omitempty"`
	Op     Op     `json:"op"               msgpack:"op"`
	Arg1   string `json:"arg1,omitempty"   msgpack:"arg1,omitempty"`
	Arg2   string `json:"arg2,omitempty"   msgpack:"arg2,omitempty"`
	Result string `json:"result,omitempty" msgpack:"result,omitempty"`
}

func Assign(res string, v string) Instruction {
	return Instruction { Op: OpAssign, Arg1: v, Result: res }
}

func Binary(op Op, res string, x string, y string) Instruction {
	return Instruction { Op: op, Arg1: x, Arg2: y, Result: res }
}

func Unary(op Op, res string, v string) Instruction {
	return Instruction { Op: op, Arg1: v, Result: res }
}

func Goto(label string) Instruction {
	return Instruction { Op: OpGoto, Arg1: label }
}

func IfGoto(cond string, label string) Instruction {
	return Instruction { Op: OpIfGoto, Arg1: cond, Arg2: label }
}

func Input(res string) Instruction {
	return Instruction { Op: OpInput, Result: res }
}

func Print(v string) Instruction {
	return Instruction { Op: OpPrint, Arg1: v }
}

func Noop() Instruction {
	return Instruction { Op: OpNoop }
}

// At returns a copy of the instruction carrying the label.
func (self Instruction) At(label string) Instruction {
	self.Label = label
	return self
}

// Target returns the jump target of a goto or ifgoto, or an empty string.
func (self Instruction) Target() string {
	switch self.Op {
		case OpGoto   : return self.Arg1
		case OpIfGoto : return self.Arg2
		default       : return ""
	}
}

// WithTarget returns a copy of a jump with its target replaced.
func (self Instruction) WithTarget(label string) Instruction {
	switch self.Op {
		case OpGoto   : self.Arg1 = label
		case OpIfGoto : self.Arg2 = label
		default       : panic("tac: not a jump: " + self.String())
	}
	return self
}

// Def returns the variable written by the instruction, if any.
func (self Instruction) Def() string {
	switch {
		case self.Op == OpAssign || self.Op == OpInput : return self.Result
		case self.Op.IsExpr()                          : return self.Result
		default                                        : return ""
	}
}

// Operands returns the value operands read by the instruction, literals included.
func (self Instruction) Operands() []string {
	switch {
		case self.Op.IsBinary()                                                     : return []string { self.Arg1, self.Arg2 }
		case self.Op.IsUnary()                                                      : return []string { self.Arg1 }
		case self.Op == OpAssign || self.Op == OpIfGoto || self.Op == OpPrint       : return []string { self.Arg1 }
		default                                                                     : return nil
	}
}

// Uses returns the variables read by the instruction, in operand order.
func (self Instruction) Uses() []string {
	var ret []string
	for _, v := range self.Operands() {
		if IsIdent(v) {
			ret = append(ret, v)
		}
	}
	return ret
}

// ReplaceUses returns a copy with every variable operand rewritten by fn.
func (self Instruction) ReplaceUses(fn func(string) string) Instruction {
	switch {
		case self.Op.IsBinary(): {
			self.Arg1 = replaceIdent(self.Arg1, fn)
			self.Arg2 = replaceIdent(self.Arg2, fn)
		}
		case self.Op.IsUnary(), self.Op == OpAssign, self.Op == OpIfGoto, self.Op == OpPrint: {
			self.Arg1 = replaceIdent(self.Arg1, fn)
		}
	}
	return self
}

func replaceIdent(v string, fn func(string) string) string {
	if IsIdent(v) {
		return fn(v)
	} else {
		return v
	}
}

func (self Instruction) String() string {
	var label string
	if self.Label != "" {
		label = self.Label + ": "
	}

	/* render by operation shape */
	switch {
		case self.Op == OpAssign : return fmt.Sprintf("%s%s = %s", label, self.Result, self.Arg1)
		case self.Op == OpIfGoto : return fmt.Sprintf("%sif %s goto %s", label, self.Arg1, self.Arg2)
		case self.Op == OpGoto   : return fmt.Sprintf("%sgoto %s", label, self.Arg1)
		case self.Op == OpInput  : return fmt.Sprintf("%sinput %s", label, self.Result)
		case self.Op == OpPrint  : return fmt.Sprintf("%sprint %s", label, self.Arg1)
		case self.Op == OpNoop   : return label + "noop"
		case self.Op.IsUnary()   : return fmt.Sprintf("%s%s = %s%s", label, self.Result, self.Op.Symbol(), self.Arg1)
		case self.Op.IsBinary()  : return fmt.Sprintf("%s%s = %s %s %s", label, self.Result, self.Arg1, self.Op.Symbol(), self.Arg2)
	}

	/* unknown operations */
	return fmt.Sprintf(
		"label: %s; op %s; arg1: %s; arg2: %s; res: %s",
		self.Label,
		self.Op,
		self.Arg1,
		self.Arg2,
		self.Result,
	)
}

// Program is an ordered instruction stream.
type Program []Instruction

func (self Program) String() string {
	buf := make([]string, 0, len(self))
	for _, v := range self {
		buf = append(buf, v.String())
	}
	return strings.Join(buf, "\n")
}

// Strings renders every instruction.
func (self Program) Strings() []string {
	ret := make([]string, len(self))
	for i, v := range self {
		ret[i] = v.String()
	}
	return ret
}

// Clone returns a copy that shares no storage with the original.
func (self Program) Clone() Program {
	return append(Program(nil), self...)
}

// Labels maps every label to the index of the instruction carrying it.
func (self Program) Labels() map[string]int {
	ret := make(map[string]int)
	for i, v := range self {
		if v.Label != "" {
			ret[v.Label] = i
		}
	}
	return ret
}

// Validate checks operation tags, label uniqueness and jump targets.
func (self Program) Validate() error {
	seen := make(map[string]int, len(self))
	for i, v := range self {
		if !v.Op.Valid() {
			return EInvalidOp(i, v)
		}
		if v.Label == "" {
			continue
		}
		if j, ok := seen[v.Label]; ok {
			return EDuplicateLabel(v.Label, j, i)
		}
		seen[v.Label] = i
	}

	/* every jump must land on an existing label */
	for i, v := range self {
		if v.Op.IsJump() {
			if _, ok := seen[v.Target()]; !ok {
				return EInvalidRef(v.Target(), i)
			}
		}
	}
	return nil
}
