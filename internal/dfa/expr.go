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

	"github.com/cloudwego/tacopt/internal/tac"
)

// Expr is a computed expression, operands of commutative operations are kept in
// ascending order so that `a + b` and `b + a` are the same expression.
type Expr struct {
	Op   tac.Op
	Arg1 string
	Arg2 string
}

// ExprOf extracts the expression computed by an instruction.
func ExprOf(ins tac.Instruction) (Expr, bool) {
	if !ins.Op.IsExpr() {
		return Expr{}, false
	}

	/* normalize commutative operands */
	x, y := ins.Arg1, ins.Arg2
	if ins.Op.IsCommutative() && y < x {
		x, y = y, x
	}

	/* construct the expression */
	return Expr {
		Op   : ins.Op,
		Arg1 : x,
		Arg2 : y,
	}, true
}

// Uses reports whether the expression reads the variable.
func (self Expr) Uses(v string) bool {
	return v != "" && (self.Arg1 == v || self.Arg2 == v)
}

// Instruction builds the instruction computing the expression into res.
func (self Expr) Instruction(res string) tac.Instruction {
	if self.Op.IsUnary() {
		return tac.Unary(self.Op, res, self.Arg1)
	} else {
		return tac.Binary(self.Op, res, self.Arg1, self.Arg2)
	}
}

func (self Expr) String() string {
	if self.Op.IsUnary() {
		return fmt.Sprintf("%s%s", self.Op.Symbol(), self.Arg1)
	} else {
		return fmt.Sprintf("%s %s %s", self.Arg1, self.Op.Symbol(), self.Arg2)
	}
}
