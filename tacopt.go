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

// Package tacopt is an optimizing middle-end for three address code.
//
// Programs enter either as instruction lists or as the source text of a small
// structured language, which is parsed, simplified on the syntax tree and then
// translated into three address code. The code is optimized by local rewrites
// of basic blocks and global rewrites of the instruction stream, and can be
// inspected through its control flow graph and dataflow analyses.
package tacopt

import (
	"github.com/nikandfor/errors"

	"github.com/cloudwego/tacopt/internal/cfg"
	"github.com/cloudwego/tacopt/internal/dfa"
	"github.com/cloudwego/tacopt/internal/lang"
	"github.com/cloudwego/tacopt/internal/opts"
	"github.com/cloudwego/tacopt/internal/passes"
	"github.com/cloudwego/tacopt/internal/report"
	"github.com/cloudwego/tacopt/internal/tac"
)

type (
	Instruction = tac.Instruction
	Program     = tac.Program
)

func parse(src string, o *opts.Options, simplify bool) (*lang.Context, *lang.AST, error) {
	ctx := lang.NewContext()
	ast, err := lang.Parse(ctx, src)

	/* check for syntax errors */
	if err != nil {
		return nil, nil, errors.Wrap(err, "parse")
	}

	/* simplify the tree if needed */
	if simplify {
		lang.Optimize(ast, o.ASTRewrites, o.Logger)
	}
	return ctx, ast, nil
}

// Translate parses the source program and translates it into three address
// code without any optimization.
func Translate(src string) (Program, error) {
	o := getOptions(nil)
	ctx, ast, err := parse(src, &o, false)
	if err != nil {
		return nil, err
	}
	return lang.Generate(ctx, ast), nil
}

// OptimizeAST parses the source program, applies the syntax tree rewrites and
// returns the simplified program as source text.
func OptimizeAST(src string, options ...Option) (string, error) {
	o := getOptions(options)
	_, ast, err := parse(src, &o, true)
	if err != nil {
		return "", err
	}
	return ast.String(), nil
}

// Compile parses the source program, simplifies its syntax tree, translates it
// into three address code and optimizes the result.
func Compile(src string, options ...Option) (Program, error) {
	o := getOptions(options)
	ctx, ast, err := parse(src, &o, true)
	if err != nil {
		return nil, err
	}
	return optimize(lang.Generate(ctx, ast), &o)
}

// Optimize applies the selected passes to the program until they reach a fixed
// point. The input is left untouched.
func Optimize(prog []Instruction, options ...Option) (Program, error) {
	o := getOptions(options)
	return optimize(prog, &o)
}

func optimize(prog []Instruction, o *opts.Options) (Program, error) {
	ret, err := passes.Optimize(prog, o)
	if err != nil {
		return nil, errors.Wrap(err, "optimize")
	}
	return ret, nil
}

// OptimizeGraph applies the analysis driven rewrites of the control flow graph:
// redundant expressions, dead code and dead definitions are removed until none
// is left.
func OptimizeGraph(prog []Instruction, options ...Option) (Program, error) {
	o := getOptions(options)
	g, err := cfg.Build(prog)
	if err != nil {
		return nil, errors.Wrap(err, "build graph")
	}

	/* rewrite the graph */
	dopt := dfa.Optimizer { Renumber: o.Renumber, Logger: o.Logger }
	if _, err = dopt.Run(g); err != nil {
		return nil, errors.Wrap(err, "optimize graph")
	}
	return g.Instructions(), nil
}

// Describe builds the control flow graph of the program and reports its blocks,
// dominators, traversals and natural loops.
func Describe(prog []Instruction) (*report.Graph, error) {
	g, err := cfg.Build(prog)
	if err != nil {
		return nil, errors.Wrap(err, "build graph")
	}
	return report.Describe(g), nil
}

// Analyze solves every dataflow analysis over the control flow graph of the
// program.
func Analyze(prog []Instruction, options ...Option) (report.Analysis, error) {
	o := getOptions(options)
	g, err := cfg.Build(prog)
	if err != nil {
		return nil, errors.Wrap(err, "build graph")
	}
	return report.Analyze(g, o.Renumber), nil
}
