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
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/tacopt/internal/cfg"
	"github.com/cloudwego/tacopt/internal/tac"
)

func mustBuild(t *testing.T, ins []tac.Instruction) *cfg.CFG {
	g, err := cfg.Build(ins)
	require.NoError(t, err)
	return g
}

// liveProgram has a known liveness solution:
//
//     b0: input a; b = a + 1; c = 5; if a goto L2
//     b1: c = 7; d = b; goto L3
//     b2: L2: print b
//     b3: L3: print c
func liveProgram() []tac.Instruction {
	return []tac.Instruction {
		tac.Input("a"),
		tac.Binary(tac.OpPlus, "b", "a", "1"),
		tac.Assign("c", "5"),
		tac.IfGoto("a", "L2"),
		tac.Assign("c", "7"),
		tac.Assign("d", "b"),
		tac.Goto("L3"),
		tac.Print("b").At("L2"),
		tac.Print("c").At("L3"),
	}
}

func nestedLoopProgram() []tac.Instruction {
	return []tac.Instruction {
		tac.Assign("i", "0"),
		tac.Assign("s", "0"),
		tac.Binary(tac.OpLess, "#t1", "i", "10").At("L1"),
		tac.IfGoto("#t1", "L2"),
		tac.Goto("L5"),
		tac.Assign("j", "0").At("L2"),
		tac.Binary(tac.OpLess, "#t2", "j", "i").At("L3"),
		tac.IfGoto("#t2", "L4"),
		tac.Goto("L6"),
		tac.Binary(tac.OpPlus, "s", "s", "j").At("L4"),
		tac.Binary(tac.OpPlus, "#t3", "i", "j"),
		tac.Binary(tac.OpPlus, "j", "j", "1"),
		tac.Goto("L3"),
		tac.Binary(tac.OpPlus, "i", "i", "1").At("L6"),
		tac.Goto("L1"),
		tac.Print("s").At("L5"),
	}
}

func requireSameSolution[T any](t *testing.T, g *cfg.CFG, p *Framework[T]) (int, int) {
	fast := p.Solve(g, true)
	slow := p.Solve(g, false)
	for i := 0; i < g.Len(); i++ {
		require.True(t, p.Equal(fast.In[i], slow.In[i]), "In[%d]: %v != %v", i, fast.In[i], slow.In[i])
		require.True(t, p.Equal(fast.Out[i], slow.Out[i]), "Out[%d]: %v != %v", i, fast.Out[i], slow.Out[i])
	}
	return fast.Iterations, slow.Iterations
}

func TestFramework_UnsupportedDirection(t *testing.T) {
	g := mustBuild(t, liveProgram())
	p := LiveVariables(g)
	p.Direction = Direction(7)
	require.PanicsWithValue(t, tac.UnsupportedDirection { Direction: 7 }, func() { p.Solve(g, false) })
}

func TestFramework_EmptyGraph(t *testing.T) {
	g := mustBuild(t, nil)
	res := LiveVariables(g).Solve(g, true)
	require.Empty(t, res.In)
	require.Zero(t, res.Iterations)
}

func TestFramework_RenumberingIsFaster(t *testing.T) {
	for _, ins := range [][]tac.Instruction { liveProgram(), nestedLoopProgram() } {
		g := mustBuild(t, ins)
		fast, slow := requireSameSolution(t, g, AvailableExpressions(g))
		require.LessOrEqual(t, fast, slow)
		fast, slow = requireSameSolution(t, g, LiveVariables(g))
		require.LessOrEqual(t, fast, slow)
		fast, slow = requireSameSolution(t, g, ReachingDefinitions(g))
		require.LessOrEqual(t, fast, slow)
		fast, slow = requireSameSolution(t, g, ConstantPropagation(g))
		require.LessOrEqual(t, fast, slow)
		require.LessOrEqual(t, cfg.BuildDominators(g, true).Iterations, cfg.BuildDominators(g, false).Iterations)
	}
}

func randomProgram(f *gofakeit.Faker, n int) []tac.Instruction {
	vars := []string { "a", "b", "c" }
	ops := []tac.Op { tac.OpPlus, tac.OpMinus, tac.OpMult, tac.OpLess }
	ret := make([]tac.Instruction, 0, n)

	/* generate every instruction */
	for i := 0; i < n; i++ {
		var ins tac.Instruction
		x := vars[f.Number(0, len(vars) - 1)]
		y := vars[f.Number(0, len(vars) - 1)]

		/* pick a shape */
		switch f.Number(0, 6) {
			case 0  : ins = tac.Goto(fmt.Sprintf("L%d", f.Number(0, n - 1)))
			case 1  : ins = tac.IfGoto(x, fmt.Sprintf("L%d", f.Number(0, n - 1)))
			case 2  : ins = tac.Input(x)
			case 3  : ins = tac.Print(x)
			case 4  : ins = tac.Assign(x, fmt.Sprint(f.Number(0, 3)))
			default : ins = tac.Binary(ops[f.Number(0, len(ops) - 1)], x, y, vars[f.Number(0, len(vars) - 1)])
		}
		ret = append(ret, ins.At(fmt.Sprintf("L%d", i)))
	}
	return ret
}

func TestFramework_RenumberingKeepsSolution(t *testing.T) {
	f := gofakeit.New(7)
	for round := 0; round < 100; round++ {
		g := mustBuild(t, randomProgram(f, f.Number(1, 20)))
		requireSameSolution(t, g, AvailableExpressions(g))
		requireSameSolution(t, g, LiveVariables(g))
		requireSameSolution(t, g, ReachingDefinitions(g))
		requireSameSolution(t, g, ConstantPropagation(g))
	}
}
