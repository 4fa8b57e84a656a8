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

	"github.com/oleiade/lane"
)

// Loop is the natural loop of a back edge Tail -> Head.
type Loop struct {
	Head int
	Tail int
	Body []int
}

// Contains reports whether v belongs to the loop body.
func (self Loop) Contains(v int) bool {
	i := sort.SearchInts(self.Body, v)
	return i < len(self.Body) && self.Body[i] == v
}

// NaturalLoops returns one loop per back edge, in back edge order. Natural
// loops are undefined on irreducible graphs, in which case the result is
// empty and the second return value is false.
func (self *CFG) NaturalLoops() ([]Loop, bool) {
	if !self.IsReducible() {
		return nil, false
	}

	/* find the loop of every back edge */
	var ret []Loop
	for _, e := range self.BackEdges() {
		ret = append(ret, self.naturalLoop(e))
	}
	return ret, true
}

func (self *CFG) naturalLoop(e Edge) Loop {
	st := lane.NewStack()
	body := IntSet { e.To: {} }

	/* the tail starts the backward search, unless it is the head itself */
	if body.Add(e.From) {
		st.Push(e.From)
	}

	/* collect every vertex that reaches the tail without passing the head */
	for !st.Empty() {
		v := st.Pop().(int)
		for _, p := range self.pred[v] {
			if body.Add(p) {
				st.Push(p)
			}
		}
	}

	/* all done */
	return Loop {
		Head: e.To,
		Tail: e.From,
		Body: body.Sorted(),
	}
}
