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

package passes

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/tacopt/internal/opts"
	"github.com/cloudwego/tacopt/internal/tac"
)

func TestOptimize_Block(t *testing.T) {
	ret, err := Optimize([]tac.Instruction {
		tac.Assign("x", "2"),
		tac.Binary(tac.OpMult, "y", "x", "1"),
		tac.Print("y"),
	}, &opts.Options { MaxRounds: 64, Unreachable: true })
	require.NoError(t, err)
	require.Equal(t, []string { "x = 2", "y = 2", "print 2" }, strs(ret))
}

func TestOptimize_MultiGoto(t *testing.T) {
	o := &opts.Options {
		MaxRounds     : 64,
		Unreachable   : true,
		BlockPasses   : []int {},
		ProgramPasses : []int { GotoToGoto },
	}
	ret, err := Optimize([]tac.Instruction {
		tac.Goto("2").At("1"),
		tac.Goto("3").At("2"),
		tac.Goto("4").At("3"),
		tac.Goto("5").At("4"),
		tac.Goto("6").At("5"),
		tac.Assign("a", "b").At("6"),
	}, o)
	require.NoError(t, err)
	require.Equal(t, []string { "1: goto 6", "6: a = b" }, strs(ret))
}

func TestOptimize_InfiniteLoop(t *testing.T) {
	ins := []tac.Instruction { tac.Goto("1").At("1") }
	ret, err := Optimize(ins, &opts.Options { MaxRounds: 64, BlockPasses: []int {}, ProgramPasses: []int { GotoToGoto } })
	require.NoError(t, err)
	require.Equal(t, ins, ret)
}

func TestOptimize_RoundLimit(t *testing.T) {
	ins := []tac.Instruction {
		tac.Goto("1"),
		tac.Goto("2").At("1"),
		tac.Assign("a", "1").At("2"),
	}
	ret, err := Optimize(ins, &opts.Options { MaxRounds: 1, BlockPasses: []int {}, ProgramPasses: []int { GotoToGoto } })
	require.NoError(t, err)
	require.Equal(t, []string { "goto 2", "1: goto 2", "2: a = 1" }, strs(ret))
	ret, err = Optimize(ins, &opts.Options { MaxRounds: 1, BlockPasses: []int {}, ProgramPasses: []int {}, Unreachable: true })
	require.NoError(t, err)
	require.Equal(t, []string { "goto 1", "1: goto 2", "2: a = 1" }, strs(ret))
}

func TestOptimize_Invalid(t *testing.T) {
	_, err := OptimizeAll([]tac.Instruction { tac.Goto("7") })
	require.Equal(t, tac.EInvalidRef("7", 0), err)
	_, err = OptimizeAll([]tac.Instruction { tac.Noop().At("1"), tac.Noop().At("1") })
	require.Error(t, err)
}

func TestSelect(t *testing.T) {
	require.Len(t, Select(BlockPasses[:], nil), len(BlockPasses))
	require.Empty(t, Select(BlockPasses[:], []int {}))
	ps := Select(ProgramPasses[:], []int { RemoveNoops, GotoToGoto })
	require.Equal(t, []string { "No-op Removal", "Goto to Goto" }, []string { ps[0].Name, ps[1].Name })
	require.Panics(t, func() { Select(ProgramPasses[:], []int { len(ProgramPasses) }) })
}

var (
	intVars  = []string { "a", "b", "c" }
	boolVars = []string { "p", "q" }
	intOps   = []tac.Op { tac.OpPlus, tac.OpMinus, tac.OpMult }
	cmpOps   = []tac.Op { tac.OpEqual, tac.OpNotEqual, tac.OpLess, tac.OpGreater, tac.OpEqGreater, tac.OpEqLess }
)

func operand(f *gofakeit.Faker) string {
	switch f.Number(0, 3) {
		case 0  : return fmt.Sprint(f.Number(-2, 2))
		default : return f.RandomString(intVars)
	}
}

// randomProgram draws a well typed program whose jumps only go forward.
func randomProgram(f *gofakeit.Faker) []tac.Instruction {
	n := f.Number(4, 24)
	labels := make([]string, n + 1)
	for i := range labels {
		if i == n || f.Number(0, 2) == 0 {
			labels[i] = fmt.Sprintf("L%d", i)
		}
	}

	/* pick a later label */
	target := func(i int) string {
		var ls []string
		for _, v := range labels[i + 1:] {
			if v != "" {
				ls = append(ls, v)
			}
		}
		return f.RandomString(ls)
	}

	/* generate the body */
	ret := make([]tac.Instruction, 0, n + 1)
	for i := 0; i < n; i++ {
		var ins tac.Instruction
		switch f.Number(0, 9) {
			case 0  : ins = tac.Assign(f.RandomString(intVars), operand(f))
			case 1  : ins = tac.Unary(tac.OpUnMinus, f.RandomString(intVars), operand(f))
			case 2  : ins = tac.Binary(cmpOps[f.Number(0, len(cmpOps) - 1)], f.RandomString(boolVars), operand(f), operand(f))
			case 3  : ins = tac.Unary(tac.OpNot, f.RandomString(boolVars), f.RandomString(boolVars))
			case 4  : ins = tac.IfGoto(f.RandomString(boolVars), target(i))
			case 5  : ins = tac.Goto(target(i))
			case 6  : ins = tac.Print(operand(f))
			case 7  : ins = tac.Input(f.RandomString(intVars))
			case 8  : ins = tac.Noop()
			default : ins = tac.Binary(intOps[f.Number(0, len(intOps) - 1)], f.RandomString(intVars), operand(f), operand(f))
		}
		ret = append(ret, ins.At(labels[i]))
	}
	return append(ret, tac.Print("a").At(labels[n]))
}

func execute(t *testing.T, ins []tac.Instruction, vars map[string]string, input []string) *tac.Machine {
	m := tac.NewMachine(vars, input...)
	require.NoError(t, m.Run(ins))
	return m
}

func TestOptimize_PreservesSemantics(t *testing.T) {
	f := gofakeit.New(42)
	for i := 0; i < 200; i++ {
		prog := randomProgram(f)
		ret, err := OptimizeAll(prog)
		require.NoError(t, err)
		require.NoError(t, tac.Program(ret).Validate())
		require.LessOrEqual(t, len(ret), len(prog))

		/* run both on the same state */
		vars := map[string]string {
			"a": fmt.Sprint(f.Number(-50, 50)),
			"b": fmt.Sprint(f.Number(-50, 50)),
			"c": fmt.Sprint(f.Number(-50, 50)),
			"p": fmt.Sprint(f.Bool()),
			"q": fmt.Sprint(f.Bool()),
		}
		input := []string { fmt.Sprint(f.Number(-9, 9)), fmt.Sprint(f.Number(-9, 9)) }
		want := execute(t, prog, vars, input)
		got := execute(t, ret, vars, input)

		/* compare the observable state */
		msg := tac.Program(prog).String() + "\n=>\n" + tac.Program(ret).String()
		require.Equal(t, want.Output, got.Output, msg)
		for k := range vars {
			require.Equal(t, want.Vars[k], got.Vars[k], msg)
		}
	}
}

func TestEliminateCommonExprs_PreservesSemantics(t *testing.T) {
	f := gofakeit.New(7)
	for i := 0; i < 200; i++ {
		var ins []tac.Instruction
		for j := f.Number(2, 16); j > 0; j-- {
			ins = append(ins, tac.Binary(intOps[f.Number(0, len(intOps) - 1)], f.RandomString(intVars), operand(f), operand(f)))
		}

		/* same final values on random inputs */
		_, ret := EliminateCommonExprs(ins)
		vars := map[string]string {
			"a": fmt.Sprint(f.Number(-100, 100)),
			"b": fmt.Sprint(f.Number(-100, 100)),
			"c": fmt.Sprint(f.Number(-100, 100)),
		}
		require.Equal(t, execute(t, ins, vars, nil).Vars, execute(t, ret, vars, nil).Vars, tac.Program(ins).String())
	}
}
