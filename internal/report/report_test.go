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
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudwego/tacopt/internal/cfg"
	"github.com/cloudwego/tacopt/internal/config"
	"github.com/cloudwego/tacopt/internal/dfa"
	"github.com/cloudwego/tacopt/internal/tac"
)

func loopGraph(t *testing.T) *cfg.CFG {
	g, err := cfg.Build([]tac.Instruction {
		tac.Assign("i", "0"),
		tac.Assign("x", "5"),
		tac.Binary(tac.OpLess, "#t1", "i", "3").At("L1"),
		tac.IfGoto("#t1", "L2"),
		tac.Goto("L3"),
		tac.Binary(tac.OpPlus, "i", "i", "1").At("L2"),
		tac.Goto("L1"),
		tac.Print("i").At("L3"),
	})
	require.NoError(t, err)
	return g
}

func TestDescribe(t *testing.T) {
	r := Describe(loopGraph(t))
	require.Len(t, r.Blocks, 5)
	require.Equal(t, Block {
		Id           : 1,
		Instructions : []string { "L1: #t1 = i < 3", "if #t1 goto L2" },
		Children     : []int { 2, 3 },
		Parents      : []int { 0, 3 },
		Jump         : 3,
	}, r.Blocks[1])
	require.Equal(t, -1, r.Blocks[0].Jump)
	require.Equal(t, 4, r.Blocks[2].Jump)
	require.Equal(t, 1, r.Blocks[3].Jump)
	require.Equal(t, -1, r.Blocks[4].Jump)
	require.Equal(t, []int { 0, 1, 2, 4, 3 }, r.PreOrder)
	require.Equal(t, []int { 4, 2, 3, 1, 0 }, r.PostOrder)
	require.Equal(t, []Edge { { From: 3, To: 1 } }, r.BackEdges)
	require.Equal(t, []Edge {
		{ From: 0, To: 1, Kind: "tree" },
		{ From: 1, To: 2, Kind: "tree" },
		{ From: 1, To: 3, Kind: "tree" },
		{ From: 2, To: 4, Kind: "tree" },
		{ From: 3, To: 1, Kind: "back" },
	}, r.Edges)
	require.Contains(t, r.Dominators, Dominance { Dominator: 2, Block: 4 })
	require.NotContains(t, r.Dominators, Dominance { Dominator: 3, Block: 4 })
	require.True(t, r.Reducible)
	require.Len(t, r.Loops, 1)
	require.Equal(t, 1, r.Loops[0].Head)
	require.Equal(t, 3, r.Loops[0].Tail)
	require.Equal(t, []int { 1, 3 }, []int { r.Loops[0].Blocks[0].Id, r.Loops[0].Blocks[1].Id })
}

func TestDescribe_Irreducible(t *testing.T) {
	g, err := cfg.Build([]tac.Instruction {
		tac.IfGoto("c", "L2"),
		tac.Assign("a", "1").At("L1"),
		tac.Goto("L2"),
		tac.Assign("a", "2").At("L2"),
		tac.Goto("L1"),
	})
	require.NoError(t, err)
	r := Describe(g)
	require.False(t, r.Reducible)
	require.Empty(t, r.Loops)

	/* the text says so */
	var buf bytes.Buffer
	r.WriteText(&buf)
	require.Contains(t, buf.String(), "The graph is irreducible")
}

func TestGraph_WriteText(t *testing.T) {
	var buf bytes.Buffer
	Describe(loopGraph(t)).WriteText(&buf)
	text := buf.String()
	for _, v := range []string {
		"1 --------\nL1: #t1 = i < 3\nif #t1 goto L2\n----------\n children: 2 | 3\n parents: 0 | 3\n jump: 3\n\n",
		"0 --------\ni = 0\nx = 5\n----------\n children: 1\n parents: \n\n",
		"0 dom 4\n1 dom 4\n2 dom 4\n4 dom 4\n----------------\n",
		"3 -> 1: back\n",
		"Pre-order: 0 -> 1 -> 2 -> 4 -> 3\n",
		"Post-order: 4 -> 2 -> 3 -> 1 -> 0\n",
		"(2 -> 4)\n",
		"Back edges:\n(3, 1)\n",
		"The graph is reducible\n",
		"Natural loops:\nBlock: 1\nL1: #t1 = i < 3\nif #t1 goto L2\nBlock: 3\nL2: i = i + 1\ngoto L1\n",
	} {
		require.Contains(t, text, v)
	}
}

func TestAnalyze(t *testing.T) {
	fs := Analyze(loopGraph(t), true)
	require.Len(t, fs, 4)
	require.Equal(t, "Live Variables", fs[1].Name)
	require.Equal(t, "backward", fs[1].Direction)
	require.Equal(t, []string { "{}", "{i}", "{i}", "{i}", "{i}" }, fs[1].In)
	require.Equal(t, []string { "{i}", "{i}", "{i}", "{i}", "{}" }, fs[1].Out)
	require.Equal(t, "forward", fs[0].Direction)

	/* text rendering */
	var buf bytes.Buffer
	fs.WriteText(&buf)
	require.Contains(t, buf.String(), "Live Variables (backward, ")
	require.Contains(t, buf.String(), "  4: in {i} out {}\n")
}

func TestRewrite(t *testing.T) {
	g := loopGraph(t)
	r, err := Rewrite(g, dfa.Optimizer { Renumber: true }, nil)
	require.NoError(t, err)
	require.Len(t, r.Passes, len(dfa.CFGPasses))
	require.Equal(t, []string { "i = 0", "x = 5" }, r.Before[0])
	require.Equal(t, []string { "i = 0" }, r.After[0])
	require.Equal(t, r.Before[1:], r.After[1:])

	/* nothing selected, nothing changes */
	r, err = Rewrite(loopGraph(t), dfa.Optimizer{}, []int {})
	require.NoError(t, err)
	require.Empty(t, r.Passes)
	require.Equal(t, r.Before, r.After)
}

func TestEncode(t *testing.T) {
	r := Describe(loopGraph(t))

	/* json */
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, config.FormatJSON, r))
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	require.Equal(t, true, m["reducible"])
	require.Len(t, m["blocks"], 5)

	/* msgpack */
	buf.Reset()
	require.NoError(t, Encode(&buf, config.FormatMsgpack, r))
	var ret Graph
	require.NoError(t, DecodeMsgpack(&buf, &ret))
	require.Equal(t, r.Edges, ret.Edges)
	require.Equal(t, r.PreOrder, ret.PreOrder)
	require.Equal(t, r.Blocks[1], ret.Blocks[1])
	require.True(t, ret.Reducible)

	/* text */
	buf.Reset()
	require.NoError(t, Encode(&buf, config.FormatText, tac.Program { tac.Print("a"), tac.Goto("L1") }))
	require.Equal(t, "print a\ngoto L1\n", buf.String())
	require.Error(t, Encode(&buf, "xml", r))

	/* debug */
	buf.Reset()
	require.NoError(t, Encode(&buf, config.FormatDebug, r))
	require.Equal(t, Debug(r), buf.String())
	require.Contains(t, buf.String(), "Reducible: (bool) true")
}

func TestDebug(t *testing.T) {
	text := Debug(Describe(loopGraph(t)))
	require.True(t, strings.Contains(text, "Reducible: (bool) true"), text)
}
