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

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/tacopt/internal/cfg"
	"github.com/cloudwego/tacopt/internal/tac"
)

// Block is one basic block. Jump is the vertex its terminal jump lands on, or
// -1 when the block does not end with a jump.
type Block struct {
	Id           int      `json:"id"           msgpack:"id"`
	Instructions []string `json:"instructions" msgpack:"instructions"`
	Children     []int    `json:"children"     msgpack:"children"`
	Parents      []int    `json:"parents"      msgpack:"parents"`
	Jump         int      `json:"jump"         msgpack:"jump"`
}

// Dominance reads "Dominator dom Block".
type Dominance struct {
	Dominator int `json:"dominator" msgpack:"dominator"`
	Block     int `json:"block"     msgpack:"block"`
}

type Edge struct {
	From int    `json:"from"           msgpack:"from"`
	To   int    `json:"to"             msgpack:"to"`
	Kind string `json:"kind,omitempty" msgpack:"kind,omitempty"`
}

type Loop struct {
	Head   int     `json:"head"   msgpack:"head"`
	Tail   int     `json:"tail"   msgpack:"tail"`
	Blocks []Block `json:"blocks" msgpack:"blocks"`
}

// Graph is a read-only projection of a control flow graph.
type Graph struct {
	Blocks       []Block     `json:"blocks"        msgpack:"blocks"`
	Dominators   []Dominance `json:"dominators"    msgpack:"dominators"`
	Edges        []Edge      `json:"edges"         msgpack:"edges"`
	PreOrder     []int       `json:"pre_order"     msgpack:"pre_order"`
	PostOrder    []int       `json:"post_order"    msgpack:"post_order"`
	SpanningTree []Edge      `json:"spanning_tree" msgpack:"spanning_tree"`
	BackEdges    []Edge      `json:"back_edges"    msgpack:"back_edges"`
	Reducible    bool        `json:"reducible"     msgpack:"reducible"`
	Loops        []Loop      `json:"loops"         msgpack:"loops"`
}

func ids(vs []cfg.Vertex) []int {
	ret := make([]int, len(vs))
	for i, v := range vs {
		ret[i] = v.Id
	}
	return ret
}

func edges(es []cfg.Edge) []Edge {
	ret := make([]Edge, len(es))
	for i, e := range es {
		ret[i] = Edge { From: e.From, To: e.To }
	}
	return ret
}

func block(g *cfg.CFG, v int) Block {
	ret := Block {
		Id           : v,
		Instructions : tac.Program(g.Block(v).Instructions()).Strings(),
		Children     : ids(g.Children(v)),
		Parents      : ids(g.Parents(v)),
		Jump         : -1,
	}

	/* resolve the jump target */
	if ins, ok := g.Block(v).Terminal(); ok && ins.Op.IsJump() {
		if to, ok := g.LabelVertex(ins.Target()); ok {
			ret.Jump = to
		}
	}
	return ret
}

// Describe builds the report of a graph.
func Describe(g *cfg.CFG) *Graph {
	dom := g.Dominators()
	ret := &Graph {
		PreOrder     : g.PreOrder(),
		PostOrder    : g.PostOrder(),
		SpanningTree : edges(g.SpanningTree()),
		BackEdges    : edges(g.BackEdges()),
	}

	/* blocks and dominators */
	for v := 0; v < g.Len(); v++ {
		ret.Blocks = append(ret.Blocks, block(g, v))
		for _, d := range dom.DominatorsOf(v) {
			ret.Dominators = append(ret.Dominators, Dominance { Dominator: d, Block: v })
		}
	}

	/* classified edges */
	for _, e := range g.Classify() {
		ret.Edges = append(ret.Edges, Edge { From: e.From, To: e.To, Kind: e.Kind.String() })
	}

	/* natural loops, only defined on reducible graphs */
	loops, ok := g.NaturalLoops()
	ret.Reducible = ok
	for _, l := range loops {
		lr := Loop { Head: l.Head, Tail: l.Tail }
		for _, v := range l.Body {
			lr.Blocks = append(lr.Blocks, block(g, v))
		}
		ret.Loops = append(ret.Loops, lr)
	}
	return ret
}

func join(vs []int, sep string) string {
	buf := make([]string, len(vs))
	for i, v := range vs {
		buf[i] = fmt.Sprint(v)
	}
	return strings.Join(buf, sep)
}

// WriteBlocks dumps every block with its children and parents.
func (self *Graph) WriteBlocks(w io.Writer) {
	for _, b := range self.Blocks {
		fmt.Fprintf(w, "%d --------\n", b.Id)
		for _, v := range b.Instructions {
			fmt.Fprintln(w, v)
		}
		fmt.Fprintln(w, "----------")
		fmt.Fprintf(w, " children: %s\n", join(b.Children, " | "))
		fmt.Fprintf(w, " parents: %s\n", join(b.Parents, " | "))
		if b.Jump >= 0 {
			fmt.Fprintf(w, " jump: %d\n", b.Jump)
		}
		fmt.Fprintln(w)
	}
}

// WriteText dumps the whole report as plain text.
func (self *Graph) WriteText(w io.Writer) {
	self.WriteBlocks(w)

	/* dominator pairs, grouped by block */
	fmt.Fprintln(w, "Dominators:")
	for i, d := range self.Dominators {
		fmt.Fprintf(w, "%d dom %d\n", d.Dominator, d.Block)
		if i == len(self.Dominators) - 1 || self.Dominators[i + 1].Block != d.Block {
			fmt.Fprintln(w, "----------------")
		}
	}

	/* edges and traversals */
	fmt.Fprintln(w, "\nEdge classification:")
	for _, e := range self.Edges {
		fmt.Fprintf(w, "%d -> %d: %s\n", e.From, e.To, e.Kind)
	}
	fmt.Fprintln(w, "\nTraversals:")
	fmt.Fprintf(w, "Pre-order: %s\n", join(self.PreOrder, " -> "))
	fmt.Fprintf(w, "Post-order: %s\n", join(self.PostOrder, " -> "))
	fmt.Fprintln(w, "\nDepth-first spanning tree:")
	for _, e := range self.SpanningTree {
		fmt.Fprintf(w, "(%d -> %d)\n", e.From, e.To)
	}

	/* back edges */
	if len(self.BackEdges) == 0 {
		fmt.Fprintln(w, "\nNo back edges")
	} else {
		fmt.Fprintln(w, "\nBack edges:")
		for _, e := range self.BackEdges {
			fmt.Fprintf(w, "(%d, %d)\n", e.From, e.To)
		}
	}

	/* reducibility and loops */
	switch {
		case !self.Reducible: {
			fmt.Fprintln(w, "\nThe graph is irreducible")
			fmt.Fprintln(w, "\nNatural loops are undefined on an irreducible graph")
		}
		case len(self.Loops) == 0: {
			fmt.Fprintln(w, "\nThe graph is reducible")
			fmt.Fprintln(w, "\nNo natural loops")
		}
		default: {
			fmt.Fprintln(w, "\nThe graph is reducible")
			fmt.Fprintln(w, "\nNatural loops:")
			for _, l := range self.Loops {
				for _, b := range l.Blocks {
					fmt.Fprintf(w, "Block: %d\n", b.Id)
					for _, v := range b.Instructions {
						fmt.Fprintln(w, v)
					}
				}
				fmt.Fprintln(w, "\n-------------")
			}
		}
	}
}
