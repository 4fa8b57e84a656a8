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
	"github.com/cloudwego/tacopt/internal/tac"
)

type _Generator struct {
	ast     *AST
	ctx     *Context
	ins     []tac.Instruction
	pending string
}

// Generate translates the program into three address code. Temporaries and
// labels come from the context, so that a context used for generation twice
// never hands out the same name again.
func Generate(ctx *Context, a *AST) tac.Program {
	g := &_Generator { ast: a, ctx: ctx }
	g.stmt(a.Root)

	/* a label at the very end needs something to stick to */
	if g.pending != "" {
		g.emit(tac.Noop())
	}
	return g.ins
}

// emit appends an instruction, attaching the pending label.
func (self *_Generator) emit(ins tac.Instruction) {
	ins.Label, self.pending = self.pending, ""
	self.ins = append(self.ins, ins)
}

// label makes the next emitted instruction carry the label.
func (self *_Generator) label(name string) {
	if self.pending != "" {
		self.emit(tac.Noop())
	}
	self.pending = name
}

func (self *_Generator) stmt(i int) {
	n := &self.ast.Nodes[i]
	switch n.Kind {
		case K_stmts: {
			for _, v := range n.Kids {
				self.stmt(v)
			}
		}
		case K_block: {
			self.stmt(n.Kids[0])
		}
		case K_assign: {
			self.emit(tac.Assign(n.Name, self.expr(n.Kids[0])))
		}
		case K_if: {
			self.ifelse(n)
		}
		case K_while: {
			self.while(n)
		}
		case K_for: {
			self.loop(n)
		}
		case K_label: {
			self.label(n.Name)
			self.stmt(n.Kids[0])
		}
		case K_goto: {
			self.emit(tac.Goto(n.Name))
		}
		case K_input: {
			self.emit(tac.Input(n.Name))
		}
		case K_print: {
			for _, v := range n.Kids {
				self.emit(tac.Print(self.expr(v)))
			}
		}
		case K_var, K_empty: {
			break
		}
		default: {
			panic("lang: not a statement")
		}
	}
}

//   if c goto L1
//   <else>
//   goto L2
//   L1: <then>
//   L2:
func (self *_Generator) ifelse(n *Node) {
	cond := self.expr(n.Kids[0])
	then, done := self.ctx.Names.Label(), self.ctx.Names.Label()

	/* false branch first */
	self.emit(tac.IfGoto(cond, then))
	if len(n.Kids) == 3 {
		self.stmt(n.Kids[2])
	}

	/* then the true branch */
	self.emit(tac.Goto(done))
	self.label(then)
	self.stmt(n.Kids[1])
	self.label(done)
}

//   L1: c = <cond>
//   if c goto L2
//   goto L3
//   L2: <body>
//   goto L1
//   L3:
func (self *_Generator) while(n *Node) {
	head := self.ctx.Names.Label()
	body := self.ctx.Names.Label()
	done := self.ctx.Names.Label()

	/* loop condition */
	self.label(head)
	cond := self.expr(n.Kids[0])
	self.emit(tac.IfGoto(cond, body))
	self.emit(tac.Goto(done))

	/* loop body */
	self.label(body)
	self.stmt(n.Kids[1])
	self.emit(tac.Goto(head))
	self.label(done)
}

//   i = <from>
//   L1: t = i > <to>
//   if t goto L2
//   <body>
//   i = i + 1
//   goto L1
//   L2:
func (self *_Generator) loop(n *Node) {
	self.emit(tac.Assign(n.Name, self.expr(n.Kids[0])))
	head, done := self.ctx.Names.Label(), self.ctx.Names.Label()

	/* exit check, the bound is evaluated on every iteration */
	self.label(head)
	to := self.expr(n.Kids[1])
	t := self.ctx.Names.Temp()
	self.emit(tac.Binary(tac.OpGreater, t, n.Name, to))
	self.emit(tac.IfGoto(t, done))

	/* loop body */
	self.stmt(n.Kids[2])
	self.emit(tac.Binary(tac.OpPlus, n.Name, n.Name, "1"))
	self.emit(tac.Goto(head))
	self.label(done)
}

// expr returns the operand holding the value of the expression, emitting the
// instructions computing it.
func (self *_Generator) expr(i int) string {
	n := &self.ast.Nodes[i]
	switch n.Kind {
		case K_ident : return n.Name
		case K_int   : return tac.FormatInt(n.Int)
		case K_bool  : return tac.FormatBool(n.Bool)
	}

	/* operations go through a fresh temporary */
	switch n.Kind {
		case K_unop: {
			x := self.expr(n.Kids[0])
			t := self.ctx.Names.Temp()
			self.emit(tac.Unary(n.Op, t, x))
			return t
		}
		case K_binop: {
			x := self.expr(n.Kids[0])
			y := self.expr(n.Kids[1])
			t := self.ctx.Names.Temp()
			self.emit(tac.Binary(n.Op, t, x, y))
			return t
		}
		default: {
			panic("lang: not an expression")
		}
	}
}
