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
	"github.com/cloudwego/tacopt/internal/dfa"
	"github.com/cloudwego/tacopt/internal/tac"
)

type _ExprTable struct {
	results map[dfa.Expr][]string
	exprs   map[string]dfa.Expr
	users   map[string]dfa.ExprSet
}

func newExprTable() *_ExprTable {
	return &_ExprTable {
		results : make(map[dfa.Expr][]string),
		exprs   : make(map[string]dfa.Expr),
		users   : make(map[string]dfa.ExprSet),
	}
}

// lookup returns the earliest variable still holding the value of e.
func (self *_ExprTable) lookup(e dfa.Expr) (string, bool) {
	if rs := self.results[e]; len(rs) == 0 {
		return "", false
	} else {
		return rs[0], true
	}
}

// invalidate forgets everything that no longer holds once d is redefined.
func (self *_ExprTable) invalidate(d string) {
	if e, ok := self.exprs[d]; ok {
		self.unbind(e, d)
	}

	/* every expression reading d changes its value */
	for e := range self.users[d] {
		for _, r := range self.results[e] {
			delete(self.exprs, r)
		}
		delete(self.results, e)
	}
}

func (self *_ExprTable) unbind(e dfa.Expr, r string) {
	rs := self.results[e]
	for i, v := range rs {
		if v == r {
			self.results[e] = append(rs[:i:i], rs[i + 1:]...)
			break
		}
	}
	delete(self.exprs, r)
}

func (self *_ExprTable) bind(e dfa.Expr, r string) {
	self.results[e] = append(self.results[e], r)
	self.exprs[r] = e

	/* link the operands */
	for _, v := range []string { e.Arg1, e.Arg2 } {
		if tac.IsIdent(v) {
			if self.users[v] == nil {
				self.users[v] = dfa.NewSet[dfa.Expr]()
			}
			self.users[v].Add(e)
		}
	}
}

// EliminateCommonExprs replaces the computation of an expression that some
// variable still holds by a copy of that variable. When several variables hold
// it, the one assigned first is used.
func EliminateCommonExprs(ins []tac.Instruction) (bool, []tac.Instruction) {
	changed := false
	table := newExprTable()
	ret := make([]tac.Instruction, 0, len(ins))

	/* forward scan */
	for _, v := range ins {
		e, isExpr := dfa.ExprOf(v)

		/* replace by a copy if already computed */
		if r, ok := table.lookup(e); isExpr && ok {
			ret = append(ret, copyOf(v, r))
			changed = true
		} else {
			ret = append(ret, v)
		}

		/* the definition invalidates the tables */
		d := v.Def()
		if d == "" {
			continue
		}

		/* the result now holds e unless e reads it */
		table.invalidate(d)
		if isExpr && !e.Uses(d) {
			table.bind(e, d)
		}
	}
	return changed, ret
}
