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

package lang

import (
	"strconv"

	"github.com/nikandfor/tlog"

	"github.com/cloudwego/tacopt/internal/tac"
)

// Rewrite tries to simplify node i in place, it reports whether it did.
type Rewrite func(a *AST, i int) bool

type RewriteDescriptor struct {
	Name    string
	Rewrite Rewrite
}

// Rewrites are applied in this order, restarting from the first one whenever
// any of them changes the tree.
var Rewrites = [...]RewriteDescriptor {
	{ Name: "Var Equal To Itself"       , Rewrite: varEqualToItself },
	{ Name: "Mult Div By One"           , Rewrite: multDivByOne },
	{ Name: "Mult Zero"                 , Rewrite: multZero },
	{ Name: "Sum Zero"                  , Rewrite: sumZero },
	{ Name: "Operations Between Consts" , Rewrite: constOperations },
	{ Name: "If True"                   , Rewrite: ifTrue },
	{ Name: "If False"                  , Rewrite: ifFalse },
	{ Name: "Equal Bool Num"            , Rewrite: equalBoolNum },
	{ Name: "While False"               , Rewrite: whileFalse },
	{ Name: "Var Not Equal To Itself"   , Rewrite: varNotEqualToItself },
	{ Name: "Assign Equality"           , Rewrite: assignEquality },
	{ Name: "If Null Else Null"         , Rewrite: ifNullElseNull },
	{ Name: "Fold Unary"                , Rewrite: foldUnary },
	{ Name: "Sub Equal Var"             , Rewrite: subEqualVar },
}

// Optimize applies the selected rewrites until none of them applies, nil
// selects all of them. It reports whether the tree changed.
func Optimize(a *AST, sel []int, l *tlog.Logger) bool {
	rws := Rewrites[:]
	if sel != nil {
		rws = make([]RewriteDescriptor, 0, len(sel))
		for _, i := range sel {
			if i < 0 || i >= len(Rewrites) {
				panic("lang: invalid rewrite index: " + strconv.Itoa(i))
			}
			rws = append(rws, Rewrites[i])
		}
	}

	/* restart after every change */
	a.FillParents()
	changed := false
	for i := 0; i < len(rws); {
		if !a.Walk(func(n int) bool { return rws[i].Rewrite(a, n) }) {
			i++
		} else {
			l.Printw("ast rewrite", "rewrite", rws[i].Name)
			changed, i = true, 0
		}
	}
	return changed
}

func (self *AST) binop(i int, op ...tac.Op) (*Node, *Node, bool) {
	n := &self.Nodes[i]
	if n.Kind != K_binop {
		return nil, nil, false
	}
	for _, v := range op {
		if n.Op == v {
			return &self.Nodes[n.Kids[0]], &self.Nodes[n.Kids[1]], true
		}
	}
	return nil, nil, false
}

func isInt(n *Node, v int64) bool {
	return n.Kind == K_int && n.Int == v
}

func sameVar(x *Node, y *Node) bool {
	return x.Kind == K_ident && y.Kind == K_ident && x.Name == y.Name
}

// a == a, a <= a, a >= a
func varEqualToItself(a *AST, i int) bool {
	if x, y, ok := a.binop(i, tac.OpEqual, tac.OpEqLess, tac.OpEqGreater); ok && sameVar(x, y) {
		a.Replace(i, a.Bool(true))
		return true
	}
	return false
}

// a != a, a < a, a > a
func varNotEqualToItself(a *AST, i int) bool {
	if x, y, ok := a.binop(i, tac.OpNotEqual, tac.OpLess, tac.OpGreater); ok && sameVar(x, y) {
		a.Replace(i, a.Bool(false))
		return true
	}
	return false
}

// a * 1, 1 * a, a / 1
func multDivByOne(a *AST, i int) bool {
	x, y, ok := a.binop(i, tac.OpMult, tac.OpDiv)
	if !ok {
		return false
	}

	/* keep the other operand */
	kids := a.Nodes[i].Kids
	switch {
		case isInt(y, 1)                                 : a.Replace(i, kids[0])
		case isInt(x, 1) && a.Nodes[i].Op == tac.OpMult : a.Replace(i, kids[1])
		default                                          : return false
	}
	return true
}

// a * 0, 0 * a
func multZero(a *AST, i int) bool {
	if x, y, ok := a.binop(i, tac.OpMult); ok && (isInt(x, 0) || isInt(y, 0)) {
		a.Replace(i, a.Int(0))
		return true
	}
	return false
}

// a + 0, 0 + a
func sumZero(a *AST, i int) bool {
	x, y, ok := a.binop(i, tac.OpPlus)
	if !ok {
		return false
	}

	/* keep the other operand */
	kids := a.Nodes[i].Kids
	switch {
		case isInt(x, 0) : a.Replace(i, kids[1])
		case isInt(y, 0) : a.Replace(i, kids[0])
		default          : return false
	}
	return true
}

// a - a
func subEqualVar(a *AST, i int) bool {
	if x, y, ok := a.binop(i, tac.OpMinus); ok && sameVar(x, y) {
		a.Replace(i, a.Int(0))
		return true
	}
	return false
}

func literal(n *Node) (string, bool) {
	switch n.Kind {
		case K_int  : return tac.FormatInt(n.Int), true
		case K_bool : return tac.FormatBool(n.Bool), true
		default     : return "", false
	}
}

func (self *AST) value(v string) int {
	if b, ok := tac.ParseBool(v); ok {
		return self.Bool(b)
	} else if n, ok := tac.ParseInt(v); ok {
		return self.Int(n)
	} else {
		panic("lang: invalid literal: " + v)
	}
}

// operations other than equality between two literals of the same kind
func constOperations(a *AST, i int) bool {
	n := &a.Nodes[i]
	if n.Kind != K_binop || n.Op == tac.OpEqual {
		return false
	}

	/* both operands must be literals */
	x, xok := literal(&a.Nodes[n.Kids[0]])
	y, yok := literal(&a.Nodes[n.Kids[1]])
	if !xok || !yok || !tac.Foldable(n.Op, x, y) {
		return false
	}

	/* division by zero is left to the run time */
	if v, ok := tac.EvalBinary(n.Op, x, y); !ok {
		return false
	} else {
		a.Replace(i, a.value(v))
		return true
	}
}

// 5 == 5, true == false
func equalBoolNum(a *AST, i int) bool {
	x, y, ok := a.binop(i, tac.OpEqual)
	switch {
		case !ok                                   : return false
		case x.Kind == K_int && y.Kind == K_int   : a.Replace(i, a.Bool(x.Int == y.Int))
		case x.Kind == K_bool && y.Kind == K_bool : a.Replace(i, a.Bool(x.Bool == y.Bool))
		default                                    : return false
	}
	return true
}

// -5, !true
func foldUnary(a *AST, i int) bool {
	n := &a.Nodes[i]
	if n.Kind != K_unop {
		return false
	}

	/* fold over the literal */
	switch x := &a.Nodes[n.Kids[0]]; {
		case n.Op == tac.OpUnMinus && x.Kind == K_int : a.Replace(i, a.Int(-x.Int))
		case n.Op == tac.OpNot && x.Kind == K_bool    : a.Replace(i, a.Bool(!x.Bool))
		default                                        : return false
	}
	return true
}

func isBool(a *AST, i int, v bool) bool {
	n := &a.Nodes[i]
	return n.Kind == K_bool && n.Bool == v
}

// if true then s1 else s2 => s1
func ifTrue(a *AST, i int) bool {
	if n := &a.Nodes[i]; n.Kind == K_if && isBool(a, n.Kids[0], true) {
		a.Replace(i, n.Kids[1])
		return true
	}
	return false
}

// if false then s1 else s2 => s2
func ifFalse(a *AST, i int) bool {
	n := &a.Nodes[i]
	if n.Kind != K_if || !isBool(a, n.Kids[0], false) {
		return false
	}

	/* the else branch, if any */
	if len(n.Kids) == 3 {
		a.Replace(i, n.Kids[2])
	} else {
		a.Replace(i, a.Empty())
	}
	return true
}

// while false s => nothing
func whileFalse(a *AST, i int) bool {
	if n := &a.Nodes[i]; n.Kind == K_while && isBool(a, n.Kids[0], false) {
		a.Replace(i, a.Empty())
		return true
	}
	return false
}

// a = a
func assignEquality(a *AST, i int) bool {
	if n := &a.Nodes[i]; n.Kind == K_assign {
		if x := &a.Nodes[n.Kids[0]]; x.Kind == K_ident && x.Name == n.Name {
			a.Replace(i, a.Empty())
			return true
		}
	}
	return false
}

// if c ; else ; => nothing
func ifNullElseNull(a *AST, i int) bool {
	n := &a.Nodes[i]
	if n.Kind != K_if || a.Nodes[n.Kids[1]].Kind != K_empty {
		return false
	}
	if len(n.Kids) == 3 && a.Nodes[n.Kids[2]].Kind != K_empty {
		return false
	}
	a.Replace(i, a.Empty())
	return true
}
