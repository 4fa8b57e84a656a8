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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudwego/tacopt/internal/tac"
)

// redundantProgram computes a + b on both branches before the join:
//
//     b0: if c goto L1
//     b1: x = a + b; goto L2
//     b2: L1: y = b + a
//     b3: L2: z = a + b; print z
func redundantProgram() []tac.Instruction {
	return []tac.Instruction {
		tac.IfGoto("c", "L1"),
		tac.Binary(tac.OpPlus, "x", "a", "b"),
		tac.Goto("L2"),
		tac.Binary(tac.OpPlus, "y", "b", "a").At("L1"),
		tac.Binary(tac.OpPlus, "z", "a", "b").At("L2"),
		tac.Print("z"),
	}
}

func run(t *testing.T, prog tac.Program, vars map[string]string) []string {
	m := tac.NewMachine(vars)
	require.NoError(t, m.Run(prog))
	return m.Output
}

func TestEliminateRedundantExpressions(t *testing.T) {
	g := mustBuild(t, redundantProgram())
	ok, err := Optimizer { Renumber: true }.EliminateRedundantExpressions(g)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string {
		"if c goto L1",
		"#t1 = a + b",
		"x = #t1",
		"goto L2",
		"L1: #t1 = a + b",
		"y = #t1",
		"L2: z = #t1",
		"print z",
	}, g.Instructions().Strings())

	/* the rewrite keeps the program meaning on both branches */
	for _, c := range []string { "true", "false" } {
		vars := map[string]string { "a": "2", "b": "3", "c": c }
		require.Equal(t, run(t, redundantProgram(), vars), run(t, g.Instructions(), vars))
	}

	/* nothing left to eliminate */
	ok, err = Optimizer { Renumber: true }.EliminateRedundantExpressions(g)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEliminateRedundantExpressions_LoopBack(t *testing.T) {
	prog := []tac.Instruction {
		tac.Binary(tac.OpPlus, "x", "a", "b"),
		tac.Binary(tac.OpPlus, "y", "a", "b").At("L1"),
		tac.IfGoto("c", "L1"),
		tac.Print("y"),
	}
	g := mustBuild(t, prog)
	ok, err := Optimizer{}.EliminateRedundantExpressions(g)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, tac.Program(prog), g.Instructions())
}

func TestEliminateRedundantExpressions_Irreducible(t *testing.T) {
	prog := []tac.Instruction {
		tac.Binary(tac.OpPlus, "x", "a", "b"),
		tac.IfGoto("c", "A"),
		tac.Goto("B"),
		tac.Binary(tac.OpPlus, "y", "a", "b").At("A"),
		tac.Binary(tac.OpPlus, "z", "a", "b").At("B"),
		tac.Goto("A"),
	}
	g := mustBuild(t, prog)
	require.False(t, g.IsReducible())
	ok, err := Optimizer{}.EliminateRedundantExpressions(g)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, tac.Program(prog), g.Instructions())
}

func TestEliminateDeadCode(t *testing.T) {
	g := mustBuild(t, liveProgram())
	res := LiveVariables(g).Solve(g, true)

	/* collect what must go */
	var dead []tac.Instruction
	for b, bb := range g.Blocks {
		live := LiveAfter(bb, res.Out[b])
		for i, ins := range bb.Ins {
			if removable(ins) && !live[i].Has(ins.Def()) {
				dead = append(dead, ins)
			}
		}
	}

	/* only `d = b` is dead */
	require.Equal(t, []tac.Instruction { tac.Assign("d", "b") }, dead)
	ok, err := Optimizer { Renumber: true }.EliminateDeadCode(g)
	require.NoError(t, err)
	require.True(t, ok)

	/* everything else survives */
	want := tac.Program(liveProgram())
	want = append(want[:5:5], want[6:]...)
	require.Equal(t, want, g.Instructions())
}

func TestEliminateDeadCode_Cascade(t *testing.T) {
	g := mustBuild(t, []tac.Instruction {
		tac.Input("a"),
		tac.Binary(tac.OpPlus, "b", "a", "1"),
		tac.Binary(tac.OpMult, "c", "b", "2").At("L1"),
		tac.Print("a"),
	})
	ok, err := Optimizer{}.EliminateDeadCode(g)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string { "input a", "L1: noop", "print a" }, g.Instructions().Strings())
}

func TestEliminateDeadDefinitions(t *testing.T) {
	g := mustBuild(t, liveProgram())
	ok, err := Optimizer{}.EliminateDeadDefinitions(g)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotContains(t, g.Instructions(), tac.Assign("d", "b"))
	require.Contains(t, g.Instructions(), tac.Assign("c", "5"))
}

func TestOptimizer_Run(t *testing.T) {
	g := mustBuild(t, redundantProgram())
	ok, err := Optimizer { Renumber: true }.Run(g)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string {
		"if c goto L1",
		"#t1 = a + b",
		"goto L2",
		"L1: #t1 = a + b",
		"L2: z = #t1",
		"print z",
	}, g.Instructions().Strings())
}
