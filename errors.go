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

package tacopt

import (
	"github.com/cloudwego/tacopt/internal/tac"
)

// InvalidReference occurs when a jump names a label that no instruction has.
type InvalidReference = tac.InvalidReference

// NotFound occurs when looking up a vertex or a block that does not exist.
type NotFound = tac.NotFound

// MalformedProgram occurs when an instruction stream is not well formed, such
// as an unknown operation or a duplicated label.
type MalformedProgram = tac.MalformedProgram

// SyntaxError occurs when failed to parse the source program.
type SyntaxError = tac.SyntaxError

// UnsupportedDirection is the panic value of a dataflow problem with an
// unknown direction.
type UnsupportedDirection = tac.UnsupportedDirection

// UnsupportedConstantFold is the panic value of folding an operation over
// operands of the wrong kind.
type UnsupportedConstantFold = tac.UnsupportedConstantFold
