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

package opts

import (
	"github.com/nikandfor/tlog"
)

// Options controls the optimization driver and the graph analyses.
//
// ASTRewrites, BlockPasses and ProgramPasses select passes by their index in the
// pass tables, in application order. A nil selection means every pass of the
// table.
type Options struct {
	MaxRounds     int
	Renumber      bool
	Unreachable   bool
	ASTRewrites   []int
	BlockPasses   []int
	ProgramPasses []int
	Logger        *tlog.Logger
}

// CanContinue reports whether the driver may start another round.
func (self *Options) CanContinue(round int) bool {
	return self.MaxRounds == 0 || round < self.MaxRounds
}

func GetDefaultOptions() Options {
	return Options {
		MaxRounds   : MaxRounds,
		Renumber    : Renumber,
		Unreachable : Unreachable,
	}
}
