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
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/flow"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/cloudwego/tacopt/internal/tac"
)

func loopProgram() []tac.Instruction {
	return []tac.Instruction {
		tac.Assign("a", "1"),
		tac.IfGoto("a", "L2").At("L1"),
		tac.Binary(tac.OpPlus, "a", "a", "1"),
		tac.Goto("L1"),
		tac.Print("a").At("L2"),
	}
}

func irreducibleProgram() []tac.Instruction {
	return []tac.Instruction {
		tac.IfGoto("c", "A"),
		tac.Goto("B"),
		tac.Assign("x", "1").At("A"),
		tac.Assign("y", "2").At("B"),
		tac.Goto("A"),
	}
}

func crossProgram() []tac.Instruction {
	return []tac.Instruction {
		tac.IfGoto("c", "L2"),
		tac.Assign("x", "1").At("L1"),
		tac.Goto("L3"),
		tac.Assign("y", "1").At("L2"),
		tac.Print("x").At("L3"),
	}
}

func mustBuild(t *testing.T, ins []tac.Instruction) *CFG {
	g, err := Build(ins)
	require.NoError(t, err)
	return g
}

func TestBuildBlocks_Leaders(t *testing.T) {
	bbs, err := BuildBlocks(loopProgram())
	require.NoError(t, err)
	require.Len(t, bbs, 4)
	require.Equal(t, []int { 1, 1, 2, 1 }, []int { bbs[0].Len(), bbs[1].Len(), bbs[2].Len(), bbs[3].Len() })
	require.Equal(t, "L1", bbs[1].Label())
	require.Equal(t, loopProgram(), Flatten(bbs))
}

func TestBuildBlocks_LabelWithoutJumpIsNotLeader(t *testing.T) {
	bbs, err := BuildBlocks([]tac.Instruction {
		tac.Assign("a", "1"),
		tac.Assign("b", "2").At("L1"),
		tac.Print("b"),
	})
	require.NoError(t, err)
	require.Len(t, bbs, 1)
}

func TestBuildBlocks_Empty(t *testing.T) {
	bbs, err := BuildBlocks(nil)
	require.NoError(t, err)
	require.Empty(t, bbs)
	g, err := New(bbs)
	require.NoError(t, err)
	require.Zero(t, g.Len())
	require.Empty(t, g.Reachable())
}

func TestBuild_InvalidReference(t *testing.T) {
	_, err := Build([]tac.Instruction { tac.Assign("a", "1"), tac.Goto("nowhere") })
	require.Equal(t, tac.EInvalidRef("nowhere", 1), err)
}

func TestCFG_Edges(t *testing.T) {
	g := mustBuild(t, loopProgram())
	require.Equal(t, []int { 1 }, g.Successors(0))
	require.Equal(t, []int { 2, 3 }, g.Successors(1))
	require.Equal(t, []int { 1 }, g.Successors(2))
	require.Empty(t, g.Successors(3))
	require.Equal(t, []int { 0, 2 }, g.Predecessors(1))
	require.Equal(t, []Vertex { { Id: 1, Block: g.Blocks[1] } }, g.Children(0))
	require.Equal(t, []Vertex { { Id: 1, Block: g.Blocks[1] } }, g.Parents(3))
}

func TestCFG_VertexOf(t *testing.T) {
	g := mustBuild(t, loopProgram())
	v, err := g.VertexOf(g.Blocks[2])
	require.NoError(t, err)
	require.Equal(t, 2, v)
	_, err = g.VertexOf(NewBasicBlock(tac.Noop()))
	require.IsType(t, tac.NotFound{}, err)
}

func TestCFG_DepthFirst(t *testing.T) {
	g := mustBuild(t, loopProgram())
	require.Equal(t, []int { 0, 1, 2, 3 }, g.PreOrder())
	require.Equal(t, []int { 2, 3, 1, 0 }, g.PostOrder())
	require.Equal(t, []int { 0, 1, 3, 2 }, g.DepthFirst().Number)
	require.Equal(t, []Edge { { 0, 1 }, { 1, 2 }, { 1, 3 } }, g.SpanningTree())
	require.Equal(t, []ClassifiedEdge {
		{ Edge { 0, 1 }, EdgeTree },
		{ Edge { 1, 2 }, EdgeTree },
		{ Edge { 1, 3 }, EdgeTree },
		{ Edge { 2, 1 }, EdgeBack },
	}, g.Classify())
	require.True(t, g.IsReducible())
}

func TestCFG_CrossEdges(t *testing.T) {
	g := mustBuild(t, crossProgram())
	kinds := g.EdgeKinds()
	require.Equal(t, []Edge { { 2, 3 } }, kinds[EdgeCross])
	require.Empty(t, kinds[EdgeBack])
	require.Empty(t, kinds[EdgeForward])
	require.Equal(t, []int { 0, 1, 3, 2 }, g.PreOrder())
}

func TestCFG_ForwardAndIrreducible(t *testing.T) {
	g := mustBuild(t, irreducibleProgram())
	kinds := g.EdgeKinds()
	require.Equal(t, []Edge { { 0, 2 } }, kinds[EdgeForward])
	require.Equal(t, []Edge { { 2, 3 } }, kinds[EdgeBack])
	require.False(t, g.IsReducible())
	loops, ok := g.NaturalLoops()
	require.False(t, ok)
	require.Empty(t, loops)
}

func TestCFG_SelfLoop(t *testing.T) {
	g := mustBuild(t, []tac.Instruction {
		tac.Assign("i", "0"),
		tac.Binary(tac.OpPlus, "i", "i", "1").At("L1"),
		tac.Goto("L1"),
	})
	require.Equal(t, []Edge { { 1, 1 } }, g.BackEdges())
	require.True(t, g.IsReducible())
	loops, ok := g.NaturalLoops()
	require.True(t, ok)
	require.Equal(t, []Loop { { Head: 1, Tail: 1, Body: []int { 1 } } }, loops)
}

func TestCFG_Unreachable(t *testing.T) {
	g := mustBuild(t, []tac.Instruction {
		tac.Goto("L1"),
		tac.Assign("x", "1"),
		tac.Print("x").At("L1"),
	})
	require.Equal(t, []bool { true, false, true }, g.Reachable())
	require.Equal(t, []int { 1 }, g.Unreachable())
	require.Equal(t, []int { 0, 2, 1 }, g.PreOrder())
	require.Equal(t, []int { 0, 2, 1 }, g.DepthFirst().Number)
	require.Equal(t, EdgeCross, g.Classify()[1].Kind)
	dom := g.Dominators()
	require.Equal(t, -1, dom.Idom(1))
	require.Equal(t, 0, dom.Idom(2))
	require.Equal(t, []int { 0, 2 }, dom.DominatorsOf(2))
}

func TestDominators(t *testing.T) {
	g := mustBuild(t, loopProgram())
	dom := g.Dominators()
	require.Equal(t, []int { 0 }, dom.DominatorsOf(0))
	require.Equal(t, []int { 0, 1 }, dom.DominatorsOf(1))
	require.Equal(t, []int { 0, 1, 2 }, dom.DominatorsOf(2))
	require.Equal(t, []int { 0, 1, 3 }, dom.DominatorsOf(3))
	require.Equal(t, []int { 2, 3 }, dom.Children(1))
	require.Equal(t, -1, dom.Idom(0))
	require.Equal(t, 2, dom.Iterations)
}

func TestNaturalLoops(t *testing.T) {
	g := mustBuild(t, loopProgram())
	loops, ok := g.NaturalLoops()
	require.True(t, ok)
	require.Equal(t, []Loop { { Head: 1, Tail: 2, Body: []int { 1, 2 } } }, loops)
	require.True(t, loops[0].Contains(2))
	require.False(t, loops[0].Contains(3))
}

func TestCFG_Rebuild(t *testing.T) {
	g := mustBuild(t, loopProgram())
	require.Len(t, g.BackEdges(), 1)
	g.Blocks[2].Replace(1, tac.Noop())
	require.NoError(t, g.Rebuild())
	require.Empty(t, g.BackEdges())
	require.Equal(t, []int { 3 }, g.Successors(2))
}

func randomProgram(f *gofakeit.Faker, n int) []tac.Instruction {
	ret := make([]tac.Instruction, 0, n)
	for i := 0; i < n; i++ {
		var ins tac.Instruction
		switch f.Number(0, 3) {
			case 0  : ins = tac.Goto(fmt.Sprintf("L%d", f.Number(0, n - 1)))
			case 1  : ins = tac.IfGoto("c", fmt.Sprintf("L%d", f.Number(0, n - 1)))
			case 2  : ins = tac.Print("x")
			default : ins = tac.Assign("x", fmt.Sprint(f.Number(0, 9)))
		}
		ret = append(ret, ins.At(fmt.Sprintf("L%d", i)))
	}
	return ret
}

func TestCFG_RandomGraphs(t *testing.T) {
	f := gofakeit.New(20240501)
	for round := 0; round < 200; round++ {
		ins := randomProgram(f, f.Number(1, 24))
		g := mustBuild(t, ins)

		/* blocks partition the instruction stream */
		require.Equal(t, tac.Program(ins), g.Instructions())

		/* the gonum dominator tree agrees on every reachable vertex */
		dom := g.Dominators()
		oracle := flow.Dominators(simple.Node(0), g.Graph())
		reach := g.Reachable()
		for v := 1; v < g.Len(); v++ {
			if reach[v] {
				require.Equal(t, oracle.DominatorOf(int64(v)).ID(), int64(dom.Idom(v)), "vertex %d of\n%s", v, tac.Program(ins))
			}
		}

		/* sweeping in index order gives the same sets */
		plain := BuildDominators(g, false)
		for v := range dom.Dom {
			require.True(t, dom.Dom[v].Equal(plain.Dom[v]))
		}

		/* the spanning forest has one less edge than vertices per tree */
		roots := 0
		for v := range g.Blocks {
			if isRoot(g, v) {
				roots++
			}
		}
		require.Equal(t, g.Len() - roots, len(g.SpanningTree()))

		/* every edge falls into exactly one class */
		kinds := g.EdgeKinds()
		seen := make(map[Edge]int)
		total := 0
		for k, es := range kinds {
			require.Contains(t, []EdgeKind { EdgeTree, EdgeForward, EdgeBack, EdgeCross }, k)
			total += len(es)
			for _, e := range es {
				seen[e]++
			}
		}
		require.Equal(t, len(g.Edges()), total)
		for _, e := range g.Edges() {
			require.Equal(t, 1, seen[e], "edge %s", e)
		}

		/* reducible iff the head of every back edge dominates its tail */
		reducible := true
		for _, e := range kinds[EdgeBack] {
			if !plain.Dominates(e.To, e.From) {
				reducible = false
			}
		}
		require.Equal(t, reducible, g.IsReducible(), "program\n%s", tac.Program(ins))

		/* every loop head dominates its body */
		if loops, ok := g.NaturalLoops(); ok {
			for _, l := range loops {
				for _, v := range l.Body {
					require.True(t, dom.Dominates(l.Head, v))
				}
			}
		}
	}
}

func isRoot(g *CFG, v int) bool {
	for _, e := range g.SpanningTree() {
		if e.To == v {
			return false
		}
	}
	return true
}
