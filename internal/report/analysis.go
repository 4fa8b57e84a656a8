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

	"github.com/cloudwego/tacopt/internal/cfg"
	"github.com/cloudwego/tacopt/internal/dfa"
)

// Facts is the solution of one analysis, rendered per block.
type Facts struct {
	Name       string   `json:"name"       msgpack:"name"`
	Direction  string   `json:"direction"  msgpack:"direction"`
	Iterations int      `json:"iterations" msgpack:"iterations"`
	In         []string `json:"in"         msgpack:"in"`
	Out        []string `json:"out"        msgpack:"out"`
}

func facts[T fmt.Stringer](name string, fw *dfa.Framework[T], g *cfg.CFG, renumber bool) Facts {
	res := fw.Solve(g, renumber)
	ret := Facts {
		Name       : name,
		Direction  : fw.Direction.String(),
		Iterations : res.Iterations,
	}

	/* render the facts */
	for i := range res.In {
		ret.In = append(ret.In, res.In[i].String())
		ret.Out = append(ret.Out, res.Out[i].String())
	}
	return ret
}

// Analysis holds the solutions of every analysis over one graph.
type Analysis []Facts

// Analyze solves every analysis over the graph.
func Analyze(g *cfg.CFG, renumber bool) Analysis {
	return Analysis {
		facts("Available Expressions", dfa.AvailableExpressions(g), g, renumber),
		facts("Live Variables", dfa.LiveVariables(g), g, renumber),
		facts("Reaching Definitions", dfa.ReachingDefinitions(g), g, renumber),
		facts("Constant Propagation", dfa.ConstantPropagation(g), g, renumber),
	}
}

// WriteText dumps the solutions as plain text.
func (self Analysis) WriteText(w io.Writer) {
	for _, f := range self {
		fmt.Fprintf(w, "%s (%s, %d iterations):\n", f.Name, f.Direction, f.Iterations)
		for i := range f.In {
			fmt.Fprintf(w, "  %d: in %s out %s\n", i, f.In[i], f.Out[i])
		}
		fmt.Fprintln(w)
	}
}

// Optimization shows a graph before and after the graph rewrites.
type Optimization struct {
	Passes []string   `json:"passes" msgpack:"passes"`
	Before [][]string `json:"before" msgpack:"before"`
	After  [][]string `json:"after"  msgpack:"after"`
}

func dumpBlocks(g *cfg.CFG) [][]string {
	ret := make([][]string, g.Len())
	for v := range ret {
		ret[v] = block(g, v).Instructions
	}
	return ret
}

// Rewrite applies the selected graph rewrites, nil selects all of them, and
// records the blocks before and after.
func Rewrite(g *cfg.CFG, o dfa.Optimizer, sel []int) (*Optimization, error) {
	ret := &Optimization { Before: dumpBlocks(g) }

	/* apply the selected rewrites, each one to its fixed point */
	for i, p := range dfa.CFGPasses {
		if !selected(sel, i) {
			continue
		}
		for {
			ok, err := p.Pass(o, g)
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
		}
		ret.Passes = append(ret.Passes, p.Name)
	}

	/* the result */
	ret.After = dumpBlocks(g)
	return ret, nil
}

func selected(sel []int, i int) bool {
	if sel == nil {
		return true
	}
	for _, v := range sel {
		if v == i {
			return true
		}
	}
	return false
}

// WriteText dumps both versions of the blocks.
func (self *Optimization) WriteText(w io.Writer) {
	for _, bs := range [][][]string { self.Before, self.After } {
		for _, b := range bs {
			for _, v := range b {
				fmt.Fprintln(w, v)
			}
			fmt.Fprintln(w, "----------")
		}
		fmt.Fprintln(w)
	}
}
