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

package tac

import (
	"fmt"
	"strconv"
	"strings"
)

// Namer hands out fresh temporaries ("#tN") and labels ("LN").
//
// A Namer is owned by one compilation, it must never be shared between programs
// that are transformed concurrently.
type Namer struct {
	tmp   int
	label int
}

// NewNamer creates a Namer whose names do not collide with any name already used
// in the instruction streams.
func NewNamer(progs ...[]Instruction) *Namer {
	ret := new(Namer)
	for _, p := range progs {
		for _, v := range p {
			ret.observe(v.Label)
			ret.observe(v.Arg1)
			ret.observe(v.Arg2)
			ret.observe(v.Result)
		}
	}
	return ret
}

func (self *Namer) observe(s string) {
	if n, ok := suffixOf(s, "#t"); ok && n > self.tmp {
		self.tmp = n
	}
	if n, ok := suffixOf(s, "L"); ok && n > self.label {
		self.label = n
	}
}

func suffixOf(s string, prefix string) (int, bool) {
	if !strings.HasPrefix(s, prefix) {
		return 0, false
	} else if n, err := strconv.Atoi(s[len(prefix):]); err != nil || n < 0 {
		return 0, false
	} else {
		return n, true
	}
}

func (self *Namer) Temp() string {
	self.tmp++
	return fmt.Sprintf("#t%d", self.tmp)
}

func (self *Namer) Label() string {
	self.label++
	return fmt.Sprintf("L%d", self.label)
}
