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
	"strconv"
	"strings"
)

type _Printer struct {
	ast    *AST
	buf    strings.Builder
	indent int
}

func (self *_Printer) pad() {
	self.buf.WriteString(strings.Repeat(" ", self.indent))
}

// String renders the program back into source text, one statement per line.
// Empty statements are omitted from statement lists.
func (self *AST) String() string {
	p := &_Printer { ast: self }
	p.stmt(self.Root)
	return p.buf.String()
}

// Expr renders a single expression, binary and unary operations are fully
// parenthesized.
func (self *AST) Expr(i int) string {
	p := &_Printer { ast: self }
	p.expr(i)
	return p.buf.String()
}

func (self *_Printer) stmts(kids []int) {
	first := true
	for _, v := range kids {
		if self.ast.Nodes[v].Kind == K_empty {
			continue
		}
		if !first {
			self.buf.WriteByte('\n')
		}
		first = false
		self.stmt(v)
	}
}

// nested renders the body of a compound statement.
func (self *_Printer) nested(i int) {
	if self.ast.Nodes[i].Kind == K_block {
		self.buf.WriteByte(' ')
		self.stmt(i)
	} else {
		self.indent += 4
		self.buf.WriteByte('\n')
		self.stmt(i)
		self.indent -= 4
	}
}

func (self *_Printer) stmt(i int) {
	n := &self.ast.Nodes[i]
	switch n.Kind {
		case K_stmts: {
			self.stmts(n.Kids)
		}
		case K_block: {
			self.buf.WriteString("{\n")
			self.indent += 4
			self.stmts(self.ast.Nodes[n.Kids[0]].Kids)
			self.indent -= 4
			self.buf.WriteByte('\n')
			self.pad()
			self.buf.WriteByte('}')
		}
		case K_var: {
			self.pad()
			self.buf.WriteString("var " + strings.Join(n.Vars, ", ") + ";")
		}
		case K_assign: {
			self.pad()
			self.buf.WriteString(n.Name + " = ")
			self.expr(n.Kids[0])
			self.buf.WriteByte(';')
		}
		case K_if: {
			self.pad()
			self.buf.WriteString("if ")
			self.expr(n.Kids[0])
			self.nested(n.Kids[1])
			if len(n.Kids) == 3 {
				self.buf.WriteByte('\n')
				self.pad()
				self.buf.WriteString("else")
				self.nested(n.Kids[2])
			}
		}
		case K_while: {
			self.pad()
			self.buf.WriteString("while ")
			self.expr(n.Kids[0])
			self.nested(n.Kids[1])
		}
		case K_for: {
			self.pad()
			self.buf.WriteString("for " + n.Name + " = ")
			self.expr(n.Kids[0])
			self.buf.WriteString(", ")
			self.expr(n.Kids[1])
			self.nested(n.Kids[2])
		}
		case K_label: {
			self.pad()
			self.buf.WriteString(n.Name + ": ")
			saved := self.indent
			self.indent = 0
			self.stmt(n.Kids[0])
			self.indent = saved
		}
		case K_goto: {
			self.pad()
			self.buf.WriteString("goto " + n.Name + ";")
		}
		case K_input: {
			self.pad()
			self.buf.WriteString("input(" + n.Name + ");")
		}
		case K_print: {
			self.pad()
			self.buf.WriteString("print(")
			for j, v := range n.Kids {
				if j != 0 {
					self.buf.WriteString(", ")
				}
				self.expr(v)
			}
			self.buf.WriteString(");")
		}
		case K_empty: {
			self.pad()
			self.buf.WriteByte(';')
		}
		default: {
			self.expr(i)
		}
	}
}

func (self *_Printer) expr(i int) {
	n := &self.ast.Nodes[i]
	switch n.Kind {
		case K_ident : self.buf.WriteString(n.Name)
		case K_int   : self.buf.WriteString(strconv.FormatInt(n.Int, 10))
		case K_bool  : self.buf.WriteString(strconv.FormatBool(n.Bool))
		case K_unop: {
			self.buf.WriteString("(" + n.Op.Symbol())
			self.expr(n.Kids[0])
			self.buf.WriteByte(')')
		}
		case K_binop: {
			self.buf.WriteByte('(')
			self.expr(n.Kids[0])
			self.buf.WriteString(" " + n.Op.Symbol() + " ")
			self.expr(n.Kids[1])
			self.buf.WriteByte(')')
		}
		default: {
			panic("lang: not an expression")
		}
	}
}
