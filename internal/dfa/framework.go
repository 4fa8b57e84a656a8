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

	"github.com/cloudwego/tacopt/internal/cfg"
	"github.com/cloudwego/tacopt/internal/tac"
)

// Direction is the direction facts flow through the graph.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (self Direction) String() string {
	switch self {
		case Forward  : return "forward"
		case Backward : return "backward"
		default       : return "unknown"
	}
}

// Framework is a monotone dataflow problem solved by round-robin iteration.
//
// For a forward problem the boundary is the entry block, In is computed from the
// Out facts of the predecessors and Out from In through Transfer. A backward
// problem mirrors this: the boundary is the last block, Out is computed from the
// In facts of the successors and In from Out through Transfer.
type Framework[T any] struct {
	Direction Direction
	Collect   func(x T, y T) T
	Equal     func(x T, y T) bool
	Init      func() T
	InitFirst func() T
	Transfer  func(bb int, x T) T
}

// Result holds the solution of a Framework. Iterations counts the full sweeps,
// including the last one that changed nothing.
type Result[T any] struct {
	In         []T
	Out        []T
	Iterations int
}

// Solve iterates the problem to a fixed point. With renumber the blocks are swept
// in ascending depth-first number for forward problems and descending for
// backward ones, otherwise in index order.
func (self *Framework[T]) Solve(g *cfg.CFG, renumber bool) *Result[T] {
	nb := g.Len()
	ret := &Result[T] {
		In  : make([]T, nb),
		Out : make([]T, nb),
	}

	/* empty graph */
	if nb == 0 {
		return ret
	}

	/* select the neighbours and the boundary by direction */
	var first int
	var edges func(int) []int
	var src, dst []T

	/* check for direction */
	switch self.Direction {
		case Forward  : first, edges, src, dst = 0, g.Predecessors, ret.Out, ret.In
		case Backward : first, edges, src, dst = nb - 1, g.Successors, ret.In, ret.Out
		default       : panic(tac.UnsupportedDirection { Direction: int(self.Direction) })
	}

	/* initialize every block */
	for i := 0; i < nb; i++ {
		if i == first {
			src[i], dst[i] = self.InitFirst(), self.InitFirst()
		} else {
			src[i], dst[i] = self.Init(), self.Init()
		}
	}

	/* sweep until nothing changes */
	for order, changed := self.order(g, renumber), true; changed; {
		changed = false
		ret.Iterations++

		/* update every block */
		for _, v := range order {
			var x T
			if v == first {
				x = self.InitFirst()
			} else {
				x = self.Init()
			}

			/* combine the facts of the neighbours */
			for _, p := range edges(v) {
				x = self.Collect(x, src[p])
			}

			/* apply the transfer function */
			y := self.Transfer(v, x)
			dst[v] = x

			/* check for changes */
			if !self.Equal(y, src[v]) {
				src[v] = y
				changed = true
			}
		}
	}

	/* all done */
	return ret
}

func (self *Framework[T]) order(g *cfg.CFG, renumber bool) []int {
	nb := g.Len()
	ret := make([]int, nb)

	/* index order */
	for i := range ret {
		ret[i] = i
	}

	/* sort by depth-first numbers if needed */
	if renumber {
		sort.SliceStable(ret, func(i int, j int) bool {
			if self.Direction == Backward {
				return g.DepthFirstNumber(ret[i]) > g.DepthFirstNumber(ret[j])
			} else {
				return g.DepthFirstNumber(ret[i]) < g.DepthFirstNumber(ret[j])
			}
		})
	}
	return ret
}
