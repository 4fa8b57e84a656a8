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

	"github.com/cloudwego/tacopt/internal/tac"
)

// Context owns the state of one compilation: the declared variables, the labels
// and the generator of fresh names. Nothing is shared between compilations.
type Context struct {
	Vars   []string
	Names  *tac.Namer
	decl   map[string]bool
	labels map[string]int
	gotos  []Token
}

func NewContext() *Context {
	return &Context {
		Names  : new(tac.Namer),
		decl   : make(map[string]bool),
		labels : make(map[string]int),
	}
}

func (self *Context) Declared(name string) bool {
	return self.decl[name]
}

func (self *Context) declare(tk Token) error {
	if self.decl[tk.Text] {
		return tac.ESyntax(tk.Pos, tk.Line, fmt.Sprintf("variable %s is already declared", tk.Text))
	}
	self.Vars = append(self.Vars, tk.Text)
	self.decl[tk.Text] = true
	return nil
}

func (self *Context) use(tk Token) error {
	if !self.decl[tk.Text] {
		return tac.ESyntax(tk.Pos, tk.Line, fmt.Sprintf("variable %s is not declared", tk.Text))
	} else {
		return nil
	}
}

func (self *Context) label(tk Token) error {
	if _, ok := self.labels[tk.Text]; ok {
		return tac.ESyntax(tk.Pos, tk.Line, fmt.Sprintf("label %s is already defined", tk.Text))
	}
	self.labels[tk.Text] = tk.Pos
	return nil
}

// resolve checks that every goto lands on a defined label.
func (self *Context) resolve() error {
	for _, tk := range self.gotos {
		if _, ok := self.labels[tk.Text]; !ok {
			return tac.ESyntax(tk.Pos, tk.Line, fmt.Sprintf("label %s is not defined", tk.Text))
		}
	}
	return nil
}
