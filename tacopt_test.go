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

package tacopt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudwego/tacopt/internal/tac"
)

const forLoop = `
var i, n, s;
input(n);
s = 0;
for i = 1, n {
    s = s + i * 1;
}
print(s);
`

func run(t *testing.T, prog Program, input ...string) []string {
	m := tac.NewMachine(nil, input...)
	require.NoError(t, m.Run(prog))
	return m.Output
}

func TestTranslate(t *testing.T) {
	prog, err := Translate(forLoop)
	require.NoError(t, err)
	require.Equal(t, []string { "10" }, run(t, prog, "4"))
	require.Contains(t, prog.Strings(), "input n")
}

func TestCompile(t *testing.T) {
	raw, err := Translate(forLoop)
	require.NoError(t, err)
	prog, err := Compile(forLoop)
	require.NoError(t, err)
	require.NotContains(t, prog.String(), "* 1")
	for _, n := range []string { "0", "1", "5", "-3" } {
		require.Equal(t, run(t, raw, n), run(t, prog, n), n)
	}
}

func TestOptimizeAST(t *testing.T) {
	src, err := OptimizeAST("var a;\na = a == a;\n")
	require.NoError(t, err)
	require.Equal(t, "var a;\na = true;", src)

	/* no rewrites selected */
	src, err = OptimizeAST("var a;\na = a == a;\n", WithASTRewrites())
	require.NoError(t, err)
	require.Equal(t, "var a;\na = (a == a);", src)
}

func TestOptimize(t *testing.T) {
	prog := Program {
		tac.Assign("x", "2"),
		tac.Binary(tac.OpMult, "y", "x", "1"),
		tac.Print("y"),
	}
	ret, err := Optimize(prog)
	require.NoError(t, err)
	require.Equal(t, []string { "x = 2", "y = 2", "print 2" }, ret.Strings())
	require.Equal(t, "y = x * 1", prog[1].String())

	/* nothing selected */
	ret, err = Optimize(prog, WithBlockPasses(), WithProgramPasses(), WithUnreachable(false))
	require.NoError(t, err)
	require.Equal(t, prog, ret)
}

func TestOptimize_InvalidReference(t *testing.T) {
	_, err := Optimize(Program { tac.Goto("L9") })
	require.Error(t, err)
	var e InvalidReference
	require.True(t, errors.As(err, &e))
	require.Equal(t, "L9", e.Label)
}

func TestSyntaxError(t *testing.T) {
	_, err := Translate("var a;\nb = 1;")
	var e SyntaxError
	require.True(t, errors.As(err, &e))
	require.Equal(t, 2, e.Line)
}

func TestOptimizeGraph(t *testing.T) {
	prog := Program {
		tac.Input("a"),
		tac.Assign("x", "5"),
		tac.Binary(tac.OpPlus, "b", "a", "1"),
		tac.Binary(tac.OpPlus, "c", "a", "1"),
		tac.Print("c"),
	}
	ret, err := OptimizeGraph(prog)
	require.NoError(t, err)
	require.NotContains(t, ret.Strings(), "x = 5")
	require.Equal(t, run(t, prog, "3"), run(t, ret, "3"))
}

func TestDescribe(t *testing.T) {
	r, err := Describe(Program {
		tac.Assign("i", "0"),
		tac.Binary(tac.OpLess, "t", "i", "3").At("L1"),
		tac.IfGoto("t", "L2"),
		tac.Goto("L3"),
		tac.Binary(tac.OpPlus, "i", "i", "1").At("L2"),
		tac.Goto("L1"),
		tac.Print("i").At("L3"),
	})
	require.NoError(t, err)
	require.True(t, r.Reducible)
	require.Len(t, r.Loops, 1)
}

func TestAnalyze(t *testing.T) {
	fs, err := Analyze(Program { tac.Input("a"), tac.Print("a") })
	require.NoError(t, err)
	require.Len(t, fs, 4)
	_, err = Analyze(Program { tac.Goto("nowhere") })
	require.Error(t, err)
}

func TestOptions(t *testing.T) {
	require.Panics(t, func() { WithMaxRounds(-1) })
	require.Panics(t, func() { WithBlockPasses(ConstantFolding + 1) })
	require.Panics(t, func() { WithProgramPasses(-1) })
	require.Panics(t, func() { WithASTRewrites(100) })
	o := getOptions([]Option {
		WithMaxRounds(3),
		WithRenumber(false),
		WithBlockPasses(ConstantFolding, ConstantPropagation),
	})
	require.Equal(t, 3, o.MaxRounds)
	require.False(t, o.Renumber)
	require.Equal(t, []int { ConstantFolding, ConstantPropagation }, o.BlockPasses)
	require.Nil(t, o.ProgramPasses)
}

func TestSetMaxRounds(t *testing.T) {
	old := SetMaxRounds(5)
	defer SetMaxRounds(old)
	require.Equal(t, 5, getOptions(nil).MaxRounds)
}
