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
	"sort"
	"strings"
)

// IntSet is a set of vertex indices.
type IntSet map[int]struct{}

// Span returns the set {0, 1, ..., n - 1}.
func Span(n int) IntSet {
	rs := make(IntSet, n)
	for i := 0; i < n; i++ {
		rs[i] = struct{}{}
	}
	return rs
}

func (self IntSet) Add(v int) bool {
	if _, ok := self[v]; ok {
		return false
	} else {
		self[v] = struct{}{}
		return true
	}
}

func (self IntSet) Has(v int) bool {
	_, ok := self[v]
	return ok
}

func (self IntSet) Clone() (rs IntSet) {
	rs = make(IntSet, len(self))
	for v := range self {
		rs.Add(v)
	}
	return
}

func (self IntSet) Remove(v int) bool {
	if _, ok := self[v]; !ok {
		return false
	} else {
		delete(self, v)
		return true
	}
}

// Intersect removes every element that is not in other.
func (self IntSet) Intersect(other IntSet) IntSet {
	for v := range self {
		if !other.Has(v) {
			delete(self, v)
		}
	}
	return self
}

func (self IntSet) Equal(other IntSet) bool {
	if len(self) != len(other) {
		return false
	}
	for v := range self {
		if !other.Has(v) {
			return false
		}
	}
	return true
}

func (self IntSet) Sorted() []int {
	rs := make([]int, 0, len(self))
	for v := range self {
		rs = append(rs, v)
	}
	sort.Ints(rs)
	return rs
}

func (self IntSet) String() string {
	rr := self.Sorted()
	rs := make([]string, 0, len(rr))

	/* convert every element */
	for _, v := range rr {
		rs = append(rs, fmt.Sprint(v))
	}

	/* join them together */
	return fmt.Sprintf(
		"{%s}",
		strings.Join(rs, ", "),
	)
}
