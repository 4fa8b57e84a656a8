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

package cfg

import (
	"fmt"
	"strings"

	"github.com/cloudwego/tacopt/internal/tac"
)

// BasicBlock is a straight-line run of instructions, control enters only at the
// first instruction and leaves only after the last one.
type BasicBlock struct {
	Ins []tac.Instruction
}

func NewBasicBlock(ins ...tac.Instruction) *BasicBlock {
	return &BasicBlock { Ins: ins }
}

func (self *BasicBlock) Len() int {
	return len(self.Ins)
}

// Instructions returns the instructions of the block, the slice is owned by the block.
func (self *BasicBlock) Instructions() []tac.Instruction {
	return self.Ins
}

// Terminal returns the last instruction of the block.
func (self *BasicBlock) Terminal() (tac.Instruction, bool) {
	if len(self.Ins) == 0 {
		return tac.Instruction{}, false
	} else {
		return self.Ins[len(self.Ins) - 1], true
	}
}

// Label returns the label of the leading instruction.
func (self *BasicBlock) Label() string {
	if len(self.Ins) == 0 {
		return ""
	} else {
		return self.Ins[0].Label
	}
}

func (self *BasicBlock) Insert(i int, ins tac.Instruction) {
	self.Ins = append(self.Ins, tac.Instruction{})
	copy(self.Ins[i + 1:], self.Ins[i:])
	self.Ins[i] = ins
}

func (self *BasicBlock) Remove(i int) tac.Instruction {
	ins := self.Ins[i]
	self.Ins = append(self.Ins[:i], self.Ins[i + 1:]...)
	return ins
}

func (self *BasicBlock) Replace(i int, ins tac.Instruction) {
	self.Ins[i] = ins
}

func (self *BasicBlock) String() string {
	buf := make([]string, 0, len(self.Ins))
	for _, v := range self.Ins {
		buf = append(buf, "    " + v.String())
	}
	return fmt.Sprintf("{\n%s\n}", strings.Join(buf, "\n"))
}

// Flatten concatenates the instructions of the blocks in order.
func Flatten(blocks []*BasicBlock) []tac.Instruction {
	n := 0
	for _, bb := range blocks {
		n += len(bb.Ins)
	}

	/* copy every instruction */
	ret := make([]tac.Instruction, 0, n)
	for _, bb := range blocks {
		ret = append(ret, bb.Ins...)
	}
	return ret
}
