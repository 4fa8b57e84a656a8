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

// Op is the operation tag of an Instruction.
type Op string

const (
	OpAssign    Op = "assign"
	OpGoto      Op = "goto"
	OpIfGoto    Op = "ifgoto"
	OpInput     Op = "input"
	OpPrint     Op = "print"
	OpNoop      Op = "noop"
	OpNot       Op = "NOT"
	OpUnMinus   Op = "UNMINUS"
	OpOr        Op = "OR"
	OpAnd       Op = "AND"
	OpEqual     Op = "EQUAL"
	OpNotEqual  Op = "NOTEQUAL"
	OpLess      Op = "LESS"
	OpGreater   Op = "GREATER"
	OpEqGreater Op = "EQGREATER"
	OpEqLess    Op = "EQLESS"
	OpPlus      Op = "PLUS"
	OpMinus     Op = "MINUS"
	OpMult      Op = "MULT"
	OpDiv       Op = "DIV"
)

var _OpSymbols = map[Op]string {
	OpNot       : "!",
	OpUnMinus   : "-",
	OpOr        : "or",
	OpAnd       : "and",
	OpEqual     : "==",
	OpNotEqual  : "!=",
	OpLess      : "<",
	OpGreater   : ">",
	OpEqGreater : ">=",
	OpEqLess    : "<=",
	OpPlus      : "+",
	OpMinus     : "-",
	OpMult      : "*",
	OpDiv       : "/",
}

// Ops lists every operation tag accepted by the middle-end.
var Ops = [...]Op {
	OpAssign, OpGoto, OpIfGoto, OpInput, OpPrint, OpNoop,
	OpNot, OpUnMinus,
	OpOr, OpAnd, OpEqual, OpNotEqual, OpLess, OpGreater, OpEqGreater, OpEqLess,
	OpPlus, OpMinus, OpMult, OpDiv,
}

func (self Op) Valid() bool {
	for _, op := range Ops {
		if op == self {
			return true
		}
	}
	return false
}

func (self Op) IsUnary() bool {
	return self == OpNot || self == OpUnMinus
}

func (self Op) IsBinary() bool {
	switch self {
		case OpOr, OpAnd, OpEqual, OpNotEqual, OpLess, OpGreater, OpEqGreater, OpEqLess: return true
		case OpPlus, OpMinus, OpMult, OpDiv: return true
		default: return false
	}
}

// IsExpr reports whether the operation computes a value from its operands.
func (self Op) IsExpr() bool {
	return self.IsUnary() || self.IsBinary()
}

func (self Op) IsJump() bool {
	return self == OpGoto || self == OpIfGoto
}

// IsCommutative reports whether swapping the operands leaves the value unchanged.
func (self Op) IsCommutative() bool {
	switch self {
		case OpOr, OpAnd, OpEqual, OpNotEqual, OpPlus, OpMult: return true
		default: return false
	}
}

// Symbol returns the infix notation of an operator, or the tag itself.
func (self Op) Symbol() string {
	if s, ok := _OpSymbols[self]; ok {
		return s
	} else {
		return string(self)
	}
}
