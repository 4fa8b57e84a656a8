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
	"sort"

	"github.com/oleiade/lane"

	"github.com/cloudwego/tacopt/internal/cfg"
	"github.com/cloudwego/tacopt/internal/tac"
)

type _ExprSite struct {
	block int
	index int
}

type _ExprKey struct {
	block int
	expr  Expr
}

type _ExprElim struct {
	Optimizer
	g     *cfg.CFG
	namer *tac.Namer
	temps map[Expr]string
	fails map[_ExprKey]struct{}
}

// EliminateRedundantExpressions replaces a computation that is available at the
// entry of its block by a copy from a temporary. Every block that last computed
// the expression on the way back stores the value into that temporary as well.
// Graphs that are not reducible are left untouched.
func (self Optimizer) EliminateRedundantExpressions(g *cfg.CFG) (bool, error) {
	if !g.IsReducible() {
		return false, nil
	}

	/* eliminate one occurrence at a time */
	rc := false
	elim := &_ExprElim {
		Optimizer : self,
		g         : g,
		namer     : tac.NewNamer(g.Instructions()),
		temps     : make(map[Expr]string),
		fails     : make(map[_ExprKey]struct{}),
	}

	/* rewrite until nothing is available */
	for {
		ok, err := elim.step()
		if err != nil || !ok {
			return rc, err
		}
		rc = true
	}
}

func (self *_ExprElim) step() (bool, error) {
	res := AvailableExpressions(self.g).Solve(self.g, self.Renumber)

	/* find the first redundant computation */
	for b, bb := range self.g.Blocks {
		for _, e := range res.In[b].Sorted() {
			key := _ExprKey { block: b, expr: e }
			if _, ok := self.fails[key]; ok {
				continue
			}

			/* the expression must be computed before being invalidated */
			i := firstExpr(bb, e)
			if i < 0 {
				continue
			}

			/* find where the value comes from */
			sites, ok := self.search(b, e)
			if !ok {
				self.fails[key] = struct{}{}
				self.Logger.Printw("expression is not available on every path", "block", b, "expr", e)
				continue
			}

			/* rewrite the sites and the redundant computation */
			self.rewrite(b, i, e, sites)
			return true, self.g.Rebuild()
		}
	}

	/* nothing to eliminate */
	return false, nil
}

// search walks the predecessors of b backwards, stopping at the first block on
// each path that computes e. It fails if a path returns to b or ends without
// computing e.
func (self *_ExprElim) search(b int, e Expr) ([]_ExprSite, bool) {
	var ret []_ExprSite
	st := lane.NewStack()
	vis := make(map[int]bool)

	/* start from the predecessors */
	for _, p := range self.g.Predecessors(b) {
		if !vis[p] {
			vis[p] = true
			st.Push(p)
		}
	}

	/* depth-first search */
	for !st.Empty() {
		p := st.Pop().(int)
		if p == b {
			return nil, false
		}

		/* this block computes the expression */
		if i := lastExpr(self.g.Blocks[p], e); i >= 0 {
			ret = append(ret, _ExprSite { block: p, index: i })
			continue
		}

		/* the expression is invalidated without being computed again */
		if _, kill := ExprGenKill(self.g.Blocks[p], NewSet(e)); kill.Has(e) {
			return nil, false
		}

		/* the path ends without computing the expression */
		ps := self.g.Predecessors(p)
		if len(ps) == 0 {
			return nil, false
		}

		/* continue with the predecessors */
		for _, q := range ps {
			if !vis[q] {
				vis[q] = true
				st.Push(q)
			}
		}
	}

	/* the lowest block goes first */
	sort.Slice(ret, func(i int, j int) bool {
		return ret[i].block < ret[j].block
	})
	return ret, len(ret) != 0
}

func (self *_ExprElim) rewrite(b int, i int, e Expr, sites []_ExprSite) {
	tmp, ok := self.temps[e]
	if !ok {
		tmp = self.namer.Temp()
		self.temps[e] = tmp
	}

	/* every site keeps its result and stores the value into the temporary */
	for _, s := range sites {
		bb := self.g.Blocks[s.block]
		ins := bb.Ins[s.index]

		/* already stored */
		if ins.Result == tmp {
			continue
		}

		/* t = e; r = t */
		bb.Replace(s.index, e.Instruction(tmp).At(ins.Label))
		bb.Insert(s.index + 1, tac.Assign(ins.Result, tmp))
	}

	/* the redundant computation becomes a copy */
	if ins := self.g.Blocks[b].Ins[i]; ins.Result == tmp {
		removeAt(self.g.Blocks[b], i)
	} else {
		self.g.Blocks[b].Replace(i, tac.Assign(ins.Result, tmp).At(ins.Label))
	}
	self.Logger.Printw("redundant expression", "block", b, "expr", e, "temp", tmp, "sites", len(sites))
}
