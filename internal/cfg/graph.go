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
	"github.com/cloudwego/tacopt/internal/tac"
)

// Vertex pairs a vertex index with the block it stands for.
type Vertex struct {
	Id    int
	Block *BasicBlock
}

// CFG is the control-flow graph over a sequence of basic blocks. Vertex i is
// Blocks[i], control falls through from vertex i to vertex i + 1.
//
// The graph is derived from the blocks, after mutating the blocks the caller
// must call Rebuild to keep the derived data consistent.
type CFG struct {
	Blocks []*BasicBlock
	succ   [][]int
	pred   [][]int
	index  map[*BasicBlock]int
	labels map[string]int
	dfs    *DepthFirst
	dom    *DominatorTree
}

// Build partitions the instructions into basic blocks and builds the graph over them.
func Build(ins []tac.Instruction) (*CFG, error) {
	if bbs, err := BuildBlocks(ins); err != nil {
		return nil, err
	} else {
		return New(bbs)
	}
}

// New builds the graph over an existing block sequence.
func New(blocks []*BasicBlock) (*CFG, error) {
	ret := &CFG { Blocks: blocks }
	return ret, ret.Rebuild()
}

// Rebuild recomputes the edges and drops every cached analysis.
func (self *CFG) Rebuild() error {
	nb := len(self.Blocks)
	self.dfs = nil
	self.dom = nil
	self.succ = make([][]int, nb)
	self.pred = make([][]int, nb)
	self.index = make(map[*BasicBlock]int, nb)
	self.labels = make(map[string]int, nb)

	/* index the blocks and every label inside them */
	for i, bb := range self.Blocks {
		self.index[bb] = i
		for _, ins := range bb.Ins {
			if ins.Label != "" {
				self.labels[ins.Label] = i
			}
		}
	}

	/* derive the edges from the terminal instructions */
	for i, bb := range self.Blocks {
		ins, ok := bb.Terminal()
		fall := i + 1 < nb

		/* empty blocks and ordinary instructions fall through */
		if !ok || !ins.Op.IsJump() {
			if fall {
				self.addEdge(i, i + 1)
			}
			continue
		}

		/* look up the jump target */
		to, ok := self.labels[ins.Target()]
		if !ok {
			return tac.EInvalidRef(ins.Target(), self.offsetOf(i) + len(bb.Ins) - 1)
		}

		/* conditional jumps may also fall through */
		if ins.Op == tac.OpIfGoto && fall {
			self.addEdge(i, i + 1)
		}

		/* add the jump edge */
		self.addEdge(i, to)
	}

	/* all done */
	return nil
}

func (self *CFG) addEdge(from int, to int) {
	for _, v := range self.succ[from] {
		if v == to {
			return
		}
	}
	self.succ[from] = append(self.succ[from], to)
	self.pred[to] = append(self.pred[to], from)
}

func (self *CFG) offsetOf(v int) int {
	n := 0
	for _, bb := range self.Blocks[:v] {
		n += len(bb.Ins)
	}
	return n
}

// Len returns the number of vertices.
func (self *CFG) Len() int {
	return len(self.Blocks)
}

func (self *CFG) Block(v int) *BasicBlock {
	return self.Blocks[v]
}

// Successors returns the successor indices of v: the fall-through vertex
// first, then the jump target.
func (self *CFG) Successors(v int) []int {
	return self.succ[v]
}

func (self *CFG) Predecessors(v int) []int {
	return self.pred[v]
}

func (self *CFG) Children(v int) []Vertex {
	return self.vertices(self.succ[v])
}

func (self *CFG) Parents(v int) []Vertex {
	return self.vertices(self.pred[v])
}

func (self *CFG) vertices(ids []int) []Vertex {
	ret := make([]Vertex, 0, len(ids))
	for _, id := range ids {
		ret = append(ret, Vertex { Id: id, Block: self.Blocks[id] })
	}
	return ret
}

// VertexOf returns the vertex index of a block owned by this graph.
func (self *CFG) VertexOf(bb *BasicBlock) (int, error) {
	if v, ok := self.index[bb]; ok {
		return v, nil
	} else {
		return -1, tac.ENotFound("basic block %p is not in the graph", bb)
	}
}

// LabelVertex returns the vertex holding the given label.
func (self *CFG) LabelVertex(label string) (int, bool) {
	v, ok := self.labels[label]
	return v, ok
}

// Edges lists every edge ordered by source vertex then successor order.
func (self *CFG) Edges() []Edge {
	var ret []Edge
	for u, ss := range self.succ {
		for _, v := range ss {
			ret = append(ret, Edge { From: u, To: v })
		}
	}
	return ret
}

// Instructions concatenates the instructions of all the blocks.
func (self *CFG) Instructions() tac.Program {
	return Flatten(self.Blocks)
}
