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

// EvalBinary computes a binary operation over two literal operands.
//
// It returns false when the operands are not both integer literals or both boolean
// literals, or when the result is undefined (integer division by zero). It panics
// with UnsupportedConstantFold when the operation has no meaning for the operand kind.
func EvalBinary(op Op, x string, y string) (string, bool) {
	if a, ok := ParseInt(x); ok {
		if b, ok := ParseInt(y); ok {
			return evalint(op, a, b)
		} else {
			return "", false
		}
	}

	/* both must be booleans */
	if a, ok := ParseBool(x); ok {
		if b, ok := ParseBool(y); ok {
			return evalbool(op, a, b), true
		}
	}
	return "", false
}

// EvalUnary computes NOT over a boolean literal or UNMINUS over an integer literal.
func EvalUnary(op Op, x string) (string, bool) {
	if v, ok := ParseInt(x); ok {
		if op != OpUnMinus {
			panic(UnsupportedConstantFold { Op: op, Kind: "integer" })
		}
		return FormatInt(-v), true
	}

	/* boolean negation */
	if v, ok := ParseBool(x); ok {
		if op != OpNot {
			panic(UnsupportedConstantFold { Op: op, Kind: "boolean" })
		}
		return FormatBool(!v), true
	}
	return "", false
}

func evalint(op Op, x int64, y int64) (string, bool) {
	switch op {
		case OpEqual     : return FormatBool(x == y), true
		case OpNotEqual  : return FormatBool(x != y), true
		case OpLess      : return FormatBool(x < y), true
		case OpGreater   : return FormatBool(x > y), true
		case OpEqGreater : return FormatBool(x >= y), true
		case OpEqLess    : return FormatBool(x <= y), true
		case OpPlus      : return FormatInt(x + y), true
		case OpMinus     : return FormatInt(x - y), true
		case OpMult      : return FormatInt(x * y), true
		case OpDiv       : if y == 0 { return "", false } else { return FormatInt(x / y), true }
		default          : panic(UnsupportedConstantFold { Op: op, Kind: "integer" })
	}
}

func evalbool(op Op, x bool, y bool) string {
	switch op {
		case OpOr       : return FormatBool(x || y)
		case OpAnd      : return FormatBool(x && y)
		case OpEqual    : return FormatBool(x == y)
		case OpNotEqual : return FormatBool(x != y)
		default         : panic(UnsupportedConstantFold { Op: op, Kind: "boolean" })
	}
}

// Foldable reports whether the operation is defined over the kinds of the literal
// operands, pass an empty y for unary operations.
func Foldable(op Op, x string, y string) bool {
	_, xi := ParseInt(x)
	_, xb := ParseBool(x)

	/* unary operations */
	if op.IsUnary() {
		return op == OpUnMinus && xi || op == OpNot && xb
	}

	/* binary operations over two literals of the same kind */
	_, yi := ParseInt(y)
	_, yb := ParseBool(y)

	/* check for operations */
	switch {
		case xi && yi : return op.IsBinary() && op != OpOr && op != OpAnd
		case xb && yb : return op == OpOr || op == OpAnd || op == OpEqual || op == OpNotEqual
		default       : return false
	}
}
