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

package lang

import (
	"fmt"
	"strconv"

	"github.com/cloudwego/tacopt/internal/tac"
)

type _Parser struct {
	sc  *Scanner
	tk  Token
	ast *AST
	ctx *Context
}

// binary operator precedence levels, lowest first
var levels = [...]map[string]tac.Op {
	{ "or": tac.OpOr },
	{ "and": tac.OpAnd },
	{ "==": tac.OpEqual, "!=": tac.OpNotEqual },
	{ "<": tac.OpLess, ">": tac.OpGreater, "<=": tac.OpEqLess, ">=": tac.OpEqGreater },
	{ "+": tac.OpPlus, "-": tac.OpMinus },
	{ "*": tac.OpMult, "/": tac.OpDiv },
}

// Parse builds the AST of a program, declaring its variables and labels in ctx.
// The parent indices of the result are filled.
func Parse(ctx *Context, src string) (*AST, error) {
	var err error
	p := &_Parser { sc: NewScanner(src), ast: new(AST), ctx: ctx }

	/* read the first token */
	if err = p.next(); err != nil {
		return nil, err
	}

	/* the program is a statement list */
	root := p.ast.Add(Node { Kind: K_stmts })
	for p.tk.Kind != T_eof {
		var st int
		if st, err = p.stmt(); err != nil {
			return nil, err
		}
		p.ast.Nodes[root].Kids = append(p.ast.Nodes[root].Kids, st)
	}

	/* every goto must have a target */
	if err = ctx.resolve(); err != nil {
		return nil, err
	}

	/* link the parents */
	p.ast.Root = root
	p.ast.FillParents()
	return p.ast, nil
}

func (self *_Parser) next() (err error) {
	self.tk, err = self.sc.Next()
	return
}

func (self *_Parser) is(text string) bool {
	return (self.tk.Kind == T_punct || self.tk.Kind == T_keyword) && self.tk.Text == text
}

func (self *_Parser) fail(reason string) error {
	return tac.ESyntax(self.tk.Pos, self.tk.Line, reason)
}

func (self *_Parser) expect(text string) error {
	if !self.is(text) {
		return self.fail(fmt.Sprintf("'%s' expected, got %s", text, self.tk))
	} else {
		return self.next()
	}
}

func (self *_Parser) ident() (Token, error) {
	tk := self.tk
	if tk.Kind != T_ident {
		return tk, self.fail(fmt.Sprintf("identifier expected, got %s", tk))
	} else {
		return tk, self.next()
	}
}

func (self *_Parser) variable() (Token, error) {
	if tk, err := self.ident(); err != nil {
		return tk, err
	} else {
		return tk, self.ctx.use(tk)
	}
}

func (self *_Parser) stmt() (int, error) {
	switch tk := self.tk; {
		case tk.Kind == T_int   : return self.labeled()
		case tk.Kind == T_ident : return self.assign()
		case self.is("var")     : return self.vars()
		case self.is("if")      : return self.ifelse()
		case self.is("while")   : return self.while()
		case self.is("for")     : return self.loop()
		case self.is("goto")    : return self.jump()
		case self.is("input")   : return self.input()
		case self.is("print")   : return self.print()
		case self.is("{")       : return self.block()
		case self.is(";")       : return self.ast.Empty(), self.next()
		default                 : return -1, self.fail(fmt.Sprintf("statement expected, got %s", tk))
	}
}

func (self *_Parser) labeled() (int, error) {
	tk := self.tk
	if err := self.ctx.label(tk); err != nil {
		return -1, err
	}

	/* label ':' stmt */
	if err := self.next(); err != nil {
		return -1, err
	}
	if err := self.expect(":"); err != nil {
		return -1, err
	}
	st, err := self.stmt()
	if err != nil {
		return -1, err
	}
	return self.ast.Add(Node { Kind: K_label, Name: tk.Text, Kids: []int { st } }), nil
}

func (self *_Parser) assign() (int, error) {
	id, err := self.variable()
	if err != nil {
		return -1, err
	}

	/* id '=' expr ';' */
	if err = self.expect("="); err != nil {
		return -1, err
	}
	ex, err := self.expr(0)
	if err != nil {
		return -1, err
	}
	if err = self.expect(";"); err != nil {
		return -1, err
	}
	return self.ast.Add(Node { Kind: K_assign, Name: id.Text, Kids: []int { ex } }), nil
}

func (self *_Parser) vars() (int, error) {
	var names []string
	if err := self.next(); err != nil {
		return -1, err
	}

	/* 'var' id { ',' id } ';' */
	for {
		tk, err := self.ident()
		if err != nil {
			return -1, err
		}
		if err = self.ctx.declare(tk); err != nil {
			return -1, err
		}
		names = append(names, tk.Text)

		/* check for the end of the list */
		if !self.is(",") {
			break
		} else if err = self.next(); err != nil {
			return -1, err
		}
	}

	/* the terminating semicolon */
	if err := self.expect(";"); err != nil {
		return -1, err
	}
	return self.ast.Add(Node { Kind: K_var, Vars: names }), nil
}

func (self *_Parser) ifelse() (int, error) {
	if err := self.next(); err != nil {
		return -1, err
	}

	/* 'if' expr stmt */
	cond, err := self.expr(0)
	if err != nil {
		return -1, err
	}
	st, err := self.stmt()
	if err != nil {
		return -1, err
	}

	/* optional else branch */
	kids := []int { cond, st }
	if self.is("else") {
		if err = self.next(); err != nil {
			return -1, err
		}
		if st, err = self.stmt(); err != nil {
			return -1, err
		}
		kids = append(kids, st)
	}
	return self.ast.Add(Node { Kind: K_if, Kids: kids }), nil
}

func (self *_Parser) while() (int, error) {
	if err := self.next(); err != nil {
		return -1, err
	}

	/* 'while' expr stmt */
	cond, err := self.expr(0)
	if err != nil {
		return -1, err
	}
	st, err := self.stmt()
	if err != nil {
		return -1, err
	}
	return self.ast.Add(Node { Kind: K_while, Kids: []int { cond, st } }), nil
}

func (self *_Parser) loop() (int, error) {
	if err := self.next(); err != nil {
		return -1, err
	}

	/* 'for' id '=' expr ',' expr stmt */
	id, err := self.variable()
	if err != nil {
		return -1, err
	}
	if err = self.expect("="); err != nil {
		return -1, err
	}
	from, err := self.expr(0)
	if err != nil {
		return -1, err
	}
	if err = self.expect(","); err != nil {
		return -1, err
	}
	to, err := self.expr(0)
	if err != nil {
		return -1, err
	}
	st, err := self.stmt()
	if err != nil {
		return -1, err
	}
	return self.ast.Add(Node { Kind: K_for, Name: id.Text, Kids: []int { from, to, st } }), nil
}

func (self *_Parser) jump() (int, error) {
	if err := self.next(); err != nil {
		return -1, err
	}

	/* 'goto' label ';' */
	tk := self.tk
	if tk.Kind != T_int {
		return -1, self.fail(fmt.Sprintf("label expected, got %s", tk))
	}
	if err := self.next(); err != nil {
		return -1, err
	}
	if err := self.expect(";"); err != nil {
		return -1, err
	}
	self.ctx.gotos = append(self.ctx.gotos, tk)
	return self.ast.Add(Node { Kind: K_goto, Name: tk.Text }), nil
}

func (self *_Parser) input() (int, error) {
	if err := self.next(); err != nil {
		return -1, err
	}

	/* 'input' '(' id ')' ';' */
	if err := self.expect("("); err != nil {
		return -1, err
	}
	id, err := self.variable()
	if err != nil {
		return -1, err
	}
	if err = self.expect(")"); err != nil {
		return -1, err
	}
	if err = self.expect(";"); err != nil {
		return -1, err
	}
	return self.ast.Add(Node { Kind: K_input, Name: id.Text }), nil
}

func (self *_Parser) print() (int, error) {
	var kids []int
	if err := self.next(); err != nil {
		return -1, err
	}

	/* 'print' '(' expr { ',' expr } ')' ';' */
	if err := self.expect("("); err != nil {
		return -1, err
	}
	for {
		ex, err := self.expr(0)
		if err != nil {
			return -1, err
		}
		kids = append(kids, ex)

		/* check for the end of the list */
		if !self.is(",") {
			break
		} else if err = self.next(); err != nil {
			return -1, err
		}
	}

	/* closing tokens */
	if err := self.expect(")"); err != nil {
		return -1, err
	}
	if err := self.expect(";"); err != nil {
		return -1, err
	}
	return self.ast.Add(Node { Kind: K_print, Kids: kids }), nil
}

func (self *_Parser) block() (int, error) {
	var kids []int
	if err := self.next(); err != nil {
		return -1, err
	}

	/* '{' { stmt } '}' */
	for !self.is("}") {
		if self.tk.Kind == T_eof {
			return -1, self.fail("'}' expected, got EOF")
		}
		st, err := self.stmt()
		if err != nil {
			return -1, err
		}
		kids = append(kids, st)
	}

	/* skip the closing brace */
	if err := self.next(); err != nil {
		return -1, err
	}
	list := self.ast.Add(Node { Kind: K_stmts, Kids: kids })
	return self.ast.Add(Node { Kind: K_block, Kids: []int { list } }), nil
}

// expr parses a binary expression at the given precedence level, operators of
// the same level associate to the left.
func (self *_Parser) expr(level int) (int, error) {
	if level == len(levels) {
		return self.unary()
	}

	/* the left operand */
	lhs, err := self.expr(level + 1)
	if err != nil {
		return -1, err
	}

	/* operator sequence */
	for self.tk.Kind == T_punct || self.tk.Kind == T_keyword {
		op, ok := levels[level][self.tk.Text]
		if !ok {
			break
		}
		if err = self.next(); err != nil {
			return -1, err
		}
		rhs, err := self.expr(level + 1)
		if err != nil {
			return -1, err
		}
		lhs = self.ast.Add(Node { Kind: K_binop, Op: op, Kids: []int { lhs, rhs } })
	}
	return lhs, nil
}

func (self *_Parser) unary() (int, error) {
	var op tac.Op
	switch {
		case self.is("!") : op = tac.OpNot
		case self.is("-") : op = tac.OpUnMinus
		default           : return self.primary()
	}

	/* prefix operator */
	if err := self.next(); err != nil {
		return -1, err
	}
	ex, err := self.unary()
	if err != nil {
		return -1, err
	}
	return self.ast.Add(Node { Kind: K_unop, Op: op, Kids: []int { ex } }), nil
}

func (self *_Parser) primary() (int, error) {
	tk := self.tk
	switch {
		case tk.Kind == T_int: {
			v, err := strconv.ParseInt(tk.Text, 10, 64)
			if err != nil {
				return -1, self.fail("integer literal out of range")
			}
			return self.ast.Int(v), self.next()
		}
		case tk.Kind == T_ident: {
			if err := self.ctx.use(tk); err != nil {
				return -1, err
			}
			return self.ast.Add(Node { Kind: K_ident, Name: tk.Text }), self.next()
		}
		case self.is("true"), self.is("false"): {
			return self.ast.Bool(tk.Text == "true"), self.next()
		}
		case self.is("("): {
			if err := self.next(); err != nil {
				return -1, err
			}
			ex, err := self.expr(0)
			if err != nil {
				return -1, err
			}
			return ex, self.expect(")")
		}
		default: {
			return -1, self.fail(fmt.Sprintf("expression expected, got %s", tk))
		}
	}
}
