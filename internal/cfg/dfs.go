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
	"fmt"

	"github.com/oleiade/lane"
)

// EdgeKind classifies an edge against the depth-first spanning forest.
type EdgeKind uint8

const (
	EdgeTree EdgeKind = iota
	EdgeForward
	EdgeBack
	EdgeCross
)

func (self EdgeKind) String() string {
	switch self {
		case EdgeTree    : return "tree"
		case EdgeForward : return "forward"
		case EdgeBack    : return "back"
		case EdgeCross   : return "cross"
		default          : return fmt.Sprintf("EdgeKind(%d)", self)
	}
}

type Edge struct {
	From int
	To   int
}

func (self Edge) String() string {
	return fmt.Sprintf("%d -> %d", self.From, self.To)
}

// ClassifiedEdge is an edge tagged with its kind.
type ClassifiedEdge struct {
	Edge
	Kind EdgeKind
}

// DepthFirst holds the numbering produced by a depth-first search started at
// vertex 0 and then restarted at every unvisited vertex in index order.
type DepthFirst struct {
	Pre       []int
	Post      []int
	Number    []int
	PreOrder  []int
	PostOrder []int
	Tree      []Edge
	tree      map[Edge]struct{}
}

type _DfsFrame struct {
	v int
	i int
}

func (self *CFG) depthFirst() *DepthFirst {
	if self.dfs == nil {
		self.dfs = newDepthFirst(self.succ)
	}
	return self.dfs
}

func newDepthFirst(succ [][]int) *DepthFirst {
	nb := len(succ)
	st := lane.NewStack()
	ret := &DepthFirst {
		Pre    : make([]int, nb),
		Post   : make([]int, nb),
		Number : make([]int, nb),
		tree   : make(map[Edge]struct{}, nb),
	}

	/* mark all vertices as unvisited */
	for i := range ret.Pre {
		ret.Pre[i] = -1
		ret.Post[i] = -1
	}

	/* search from every unvisited vertex, the entry goes first */
	for root := 0; root < nb; root++ {
		if ret.Pre[root] >= 0 {
			continue
		}

		/* start a new tree */
		mark := len(ret.PostOrder)
		ret.visit(root)
		st.Push(&_DfsFrame { v: root })

		/* iterative search */
		for !st.Empty() {
			fp := st.Head().(*_DfsFrame)
			ss := succ[fp.v]

			/* descend into the next unvisited successor */
			if fp.i < len(ss) {
				w := ss[fp.i]
				fp.i++

				/* add the tree edge */
				if ret.Pre[w] < 0 {
					ret.visit(w)
					ret.addTree(fp.v, w)
					st.Push(&_DfsFrame { v: w })
				}

				/* continue with the new top */
				continue
			}

			/* all the successors are done */
			st.Pop()
			ret.Post[fp.v] = len(ret.PostOrder)
			ret.PostOrder = append(ret.PostOrder, fp.v)
		}

		/* number this tree in reverse postorder, after all the previous trees */
		for i := len(ret.PostOrder) - 1; i >= mark; i-- {
			ret.Number[ret.PostOrder[i]] = mark + len(ret.PostOrder) - 1 - i
		}
	}

	/* all done */
	return ret
}

func (self *DepthFirst) visit(v int) {
	self.Pre[v] = len(self.PreOrder)
	self.PreOrder = append(self.PreOrder, v)
}

func (self *DepthFirst) addTree(u int, v int) {
	e := Edge { From: u, To: v }
	self.Tree = append(self.Tree, e)
	self.tree[e] = struct{}{}
}

// IsAncestor reports whether u is an ancestor of v in the spanning forest, a
// vertex is an ancestor of itself.
func (self *DepthFirst) IsAncestor(u int, v int) bool {
	return self.Pre[u] <= self.Pre[v] && self.Post[v] <= self.Post[u]
}

func (self *DepthFirst) classify(e Edge) EdgeKind {
	if _, ok := self.tree[e]; ok {
		return EdgeTree
	} else if e.From != e.To && self.IsAncestor(e.From, e.To) {
		return EdgeForward
	} else if self.IsAncestor(e.To, e.From) {
		return EdgeBack
	} else {
		return EdgeCross
	}
}

// DepthFirst returns the depth-first numbering of the graph.
func (self *CFG) DepthFirst() *DepthFirst {
	return self.depthFirst()
}

func (self *CFG) PreOrder() []int {
	return self.depthFirst().PreOrder
}

func (self *CFG) PostOrder() []int {
	return self.depthFirst().PostOrder
}

// DepthFirstNumber returns the reverse-postorder number of v.
func (self *CFG) DepthFirstNumber(v int) int {
	return self.depthFirst().Number[v]
}

// SpanningTree returns the tree edges in discovery order.
func (self *CFG) SpanningTree() []Edge {
	return self.depthFirst().Tree
}

// Classify tags every edge of the graph as tree, forward, back or cross.
func (self *CFG) Classify() []ClassifiedEdge {
	df := self.depthFirst()
	es := self.Edges()
	ret := make([]ClassifiedEdge, 0, len(es))

	/* classify every edge */
	for _, e := range es {
		ret = append(ret, ClassifiedEdge { Edge: e, Kind: df.classify(e) })
	}
	return ret
}

// EdgeKinds groups the edges by their kinds.
func (self *CFG) EdgeKinds() map[EdgeKind][]Edge {
	ret := make(map[EdgeKind][]Edge, 4)
	for _, e := range self.Classify() {
		ret[e.Kind] = append(ret[e.Kind], e.Edge)
	}
	return ret
}

// BackEdges returns the edges whose target is an ancestor of their source,
// including self loops.
func (self *CFG) BackEdges() []Edge {
	return self.EdgeKinds()[EdgeBack]
}

// IsReducible reports whether the head of every back edge dominates its tail.
func (self *CFG) IsReducible() bool {
	dom := self.Dominators()
	for _, e := range self.BackEdges() {
		if !dom.Dominates(e.To, e.From) {
			return false
		}
	}
	return true
}
