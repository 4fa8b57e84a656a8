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
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// Graph converts the CFG into a gonum directed graph with node IDs equal to
// the vertex indices. Self loops are dropped since simple graphs forbid them.
func (self *CFG) Graph() *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for i := range self.Blocks {
		g.AddNode(simple.Node(i))
	}

	/* add all the edges */
	for u, ss := range self.succ {
		for _, v := range ss {
			if u != v {
				g.SetEdge(simple.Edge { F: simple.Node(u), T: simple.Node(v) })
			}
		}
	}
	return g
}

// Reachable marks every vertex reachable from the entry.
func (self *CFG) Reachable() []bool {
	ret := make([]bool, len(self.Blocks))
	if len(ret) == 0 {
		return ret
	}

	/* walk from the entry */
	df := traverse.DepthFirst {
		Visit: func(n graph.Node) { ret[n.ID()] = true },
	}

	/* mark every visited vertex */
	df.Walk(self.Graph(), simple.Node(0), nil)
	return ret
}

// Unreachable returns the vertices not reachable from the entry, in ascending order.
func (self *CFG) Unreachable() []int {
	var ret []int
	for i, ok := range self.Reachable() {
		if !ok {
			ret = append(ret, i)
		}
	}
	return ret
}
