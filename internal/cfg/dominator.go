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

package cfg

import (
	"sort"
)

// DominatorTree holds the dominator sets computed by the iterative algorithm.
//
// Dom[v] is the set of vertices that dominate v. Iterations counts the sweeps
// over the graph, including the final sweep that changed nothing.
type DominatorTree struct {
	Dom        []IntSet
	Iterations int
	reach      []bool
}

// Dominators returns the cached dominator tree, vertices are swept in
// depth-first order.
func (self *CFG) Dominators() *DominatorTree {
	if self.dom == nil {
		self.dom = BuildDominators(self, true)
	}
	return self.dom
}

// BuildDominators solves Dom(v) = {v} ∪ ⋂ Dom(p) for all predecessors p of v,
// with Dom(entry) = {entry}. With renumber the vertices are swept in
// depth-first order, otherwise in index order.
func BuildDominators(g *CFG, renumber bool) *DominatorTree {
	nb := g.Len()
	ret := &DominatorTree {
		Dom   : make([]IntSet, nb),
		reach : g.Reachable(),
	}

	/* empty graph */
	if nb == 0 {
		return ret
	}

	/* the entry is dominated by itself only, everything else by all vertices */
	for i := range ret.Dom {
		if i == 0 {
			ret.Dom[i] = IntSet { 0: {} }
		} else {
			ret.Dom[i] = Span(nb)
		}
	}

	/* sweep order, the entry is fixed */
	order := make([]int, 0, nb - 1)
	for i := 1; i < nb; i++ {
		order = append(order, i)
	}

	/* sort by depth-first number if needed */
	if renumber {
		sort.SliceStable(order, func(i int, j int) bool {
			return g.DepthFirstNumber(order[i]) < g.DepthFirstNumber(order[j])
		})
	}

	/* iterate until nothing changes */
	for changed := true; changed; {
		changed = false
		ret.Iterations++

		/* update every vertex */
		for _, v := range order {
			var ds IntSet
			ps := g.Predecessors(v)

			/* intersect the sets of all the predecessors */
			if len(ps) == 0 {
				ds = Span(nb)
			} else {
				ds = ret.Dom[ps[0]].Clone()
				for _, p := range ps[1:] {
					ds.Intersect(ret.Dom[p])
				}
			}

			/* a vertex always dominates itself */
			ds.Add(v)
			if !ds.Equal(ret.Dom[v]) {
				ret.Dom[v] = ds
				changed = true
			}
		}
	}

	/* all done */
	return ret
}

// Dominates reports whether a dominates b.
func (self *DominatorTree) Dominates(a int, b int) bool {
	return self.Dom[b].Has(a)
}

// DominatorsOf returns the dominators of v in ascending order.
func (self *DominatorTree) DominatorsOf(v int) []int {
	return self.Dom[v].Sorted()
}

// Idom returns the immediate dominator of v, or -1 for the entry and for
// vertices not reachable from the entry.
func (self *DominatorTree) Idom(v int) int {
	if v == 0 || !self.reach[v] {
		return -1
	}

	/* the closest strict dominator has the largest dominator set */
	id := -1
	for d := range self.Dom[v] {
		if d != v && (id < 0 || len(self.Dom[d]) > len(self.Dom[id])) {
			id = d
		}
	}
	return id
}

// Children returns the vertices immediately dominated by v, in ascending order.
func (self *DominatorTree) Children(v int) []int {
	var ret []int
	for i := range self.Dom {
		if self.Idom(i) == v {
			ret = append(ret, i)
		}
	}
	return ret
}
