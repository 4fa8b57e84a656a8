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

package dfa

import (
	"fmt"
	"sort"
	"strings"
)

// Set is a finite set used as a lattice element.
type Set[K comparable] map[K]struct{}

func NewSet[K comparable](items ...K) Set[K] {
	rs := make(Set[K], len(items))
	for _, v := range items {
		rs[v] = struct{}{}
	}
	return rs
}

func (self Set[K]) Add(v K) bool {
	if _, ok := self[v]; ok {
		return false
	} else {
		self[v] = struct{}{}
		return true
	}
}

func (self Set[K]) Has(v K) bool {
	_, ok := self[v]
	return ok
}

func (self Set[K]) Remove(v K) bool {
	if _, ok := self[v]; !ok {
		return false
	} else {
		delete(self, v)
		return true
	}
}

func (self Set[K]) Clone() Set[K] {
	rs := make(Set[K], len(self))
	for v := range self {
		rs[v] = struct{}{}
	}
	return rs
}

// Union adds every element of other in place.
func (self Set[K]) Union(other Set[K]) Set[K] {
	for v := range other {
		self[v] = struct{}{}
	}
	return self
}

// Intersect removes every element not in other in place.
func (self Set[K]) Intersect(other Set[K]) Set[K] {
	for v := range self {
		if !other.Has(v) {
			delete(self, v)
		}
	}
	return self
}

// Minus removes every element of other in place.
func (self Set[K]) Minus(other Set[K]) Set[K] {
	for v := range other {
		delete(self, v)
	}
	return self
}

func (self Set[K]) Equal(other Set[K]) bool {
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

// Sorted lists the elements ordered by their text form.
func (self Set[K]) Sorted() []K {
	rs := make([]K, 0, len(self))
	for v := range self {
		rs = append(rs, v)
	}
	sort.Slice(rs, func(i int, j int) bool {
		return fmt.Sprint(rs[i]) < fmt.Sprint(rs[j])
	})
	return rs
}

func (self Set[K]) String() string {
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

func union[K comparable](x Set[K], y Set[K]) Set[K] {
	return x.Union(y)
}

func intersect[K comparable](x Set[K], y Set[K]) Set[K] {
	return x.Intersect(y)
}

func equal[K comparable](x Set[K], y Set[K]) bool {
	return x.Equal(y)
}
