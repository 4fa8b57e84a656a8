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
	"github.com/oleiade/lane"

	"github.com/cloudwego/tacopt/internal/tac"
)

type Kind uint8

const (
	K_stmts Kind = iota
	K_block
	K_var
	K_assign
	K_if
	K_while
	K_for
	K_goto
	K_label
	K_print
	K_input
	K_empty
	K_binop
	K_unop
	K_ident
	K_int
	K_bool
)

func (self Kind) IsExpr() bool {
	return self >= K_binop
}

// Node is an AST node stored in the arena of an AST, children are referenced by
// their index.
//
//   K_assign    Name = Kids[0]
//   K_if        if Kids[0] Kids[1] [else Kids[2]]
//   K_while     while Kids[0] Kids[1]
//   K_for       for Name = Kids[0], Kids[1] Kids[2]
//   K_label     Name: Kids[0]
//   K_goto      goto Name
//   K_input     input(Name)
//   K_print     print(Kids...)
//   K_var       var Vars...
//
type Node struct {
	Kind   Kind
	Op     tac.Op
	Name   string
	Int    int64
	Bool   bool
	Vars   []string
	Kids   []int
	Parent int
}

// AST is an arena of nodes. Parent indices are only valid after FillParents, or
// after rewrites done through Replace.
type AST struct {
	Nodes []Node
	Root  int
}

func (self *AST) Add(n Node) int {
	n.Parent = -1
	self.Nodes = append(self.Nodes, n)
	return len(self.Nodes) - 1
}

func (self *AST) Node(i int) *Node {
	return &self.Nodes[i]
}

func (self *AST) Int(v int64) int {
	return self.Add(Node { Kind: K_int, Int: v })
}

func (self *AST) Bool(v bool) int {
	return self.Add(Node { Kind: K_bool, Bool: v })
}

func (self *AST) Empty() int {
	return self.Add(Node { Kind: K_empty })
}

// FillParents recomputes the parent index of every node reachable from the root.
func (self *AST) FillParents() {
	st := lane.NewStack()
	st.Push(self.Root)
	self.Nodes[self.Root].Parent = -1

	/* walk the tree */
	for !st.Empty() {
		p := st.Pop().(int)
		for _, v := range self.Nodes[p].Kids {
			self.Nodes[v].Parent = p
			st.Push(v)
		}
	}
}

// Replace puts node n in place of node old within the parent of old.
func (self *AST) Replace(old int, n int) {
	p := self.Nodes[old].Parent
	self.Nodes[n].Parent = p

	/* replacing the root */
	if p < 0 {
		self.Root = n
		return
	}

	/* find the slot */
	for i, v := range self.Nodes[p].Kids {
		if v == old {
			self.Nodes[p].Kids[i] = n
			return
		}
	}
	panic("lang: node is not a child of its parent")
}

// Walk calls fn on every node reachable from the root, children first.
func (self *AST) Walk(fn func(i int) bool) bool {
	return self.walk(self.Root, fn)
}

func (self *AST) walk(i int, fn func(i int) bool) bool {
	changed := false
	for _, v := range self.Nodes[i].Kids {
		if self.walk(v, fn) {
			changed = true
		}
	}
	if fn(i) {
		changed = true
	}
	return changed
}
