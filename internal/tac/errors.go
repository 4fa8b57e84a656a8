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
)

// InvalidReference occurs when a jump targets a label that does not exist.
type InvalidReference struct {
	Label string
	Index int
}

func (self InvalidReference) Error() string {
	return fmt.Sprintf("invalid reference at instruction %d: label %q does not exist", self.Index, self.Label)
}

// NotFound occurs when looking up an object that is not owned by the queried graph.
type NotFound struct {
	What string
}

func (self NotFound) Error() string {
	return fmt.Sprintf("not found: %s", self.What)
}

// MalformedProgram occurs when an instruction stream violates the structural rules
// of the IR (unknown operations, duplicated labels).
type MalformedProgram struct {
	Index  int
	Reason string
}

func (self MalformedProgram) Error() string {
	return fmt.Sprintf("malformed program at instruction %d: %s", self.Index, self.Reason)
}

// SyntaxError occurs when the front end fails to scan or parse the source.
type SyntaxError struct {
	Pos    int
	Line   int
	Reason string
}

func (self SyntaxError) Error() string {
	return fmt.Sprintf("Syntax error at line %d (position %d): %s", self.Line, self.Pos, self.Reason)
}

// UnsupportedDirection is raised (as a panic value) when an analysis declares a
// direction the iterative engine does not implement.
type UnsupportedDirection struct {
	Direction int
}

func (self UnsupportedDirection) Error() string {
	return fmt.Sprintf("dataflow: unsupported direction: %d", self.Direction)
}

// UnsupportedConstantFold is raised (as a panic value) when folding an operation
// that has no constant semantics for the given operand kind.
type UnsupportedConstantFold struct {
	Op   Op
	Kind string
}

func (self UnsupportedConstantFold) Error() string {
	return fmt.Sprintf("constfold: unsupported %s operation: %s", self.Kind, self.Op)
}

func EInvalidRef(label string, idx int) InvalidReference {
	return InvalidReference {
		Label: label,
		Index: idx,
	}
}

func ENotFound(format string, args ...interface{}) NotFound {
	return NotFound {
		What: fmt.Sprintf(format, args...),
	}
}

func EInvalidOp(idx int, ins Instruction) MalformedProgram {
	return MalformedProgram {
		Index  : idx,
		Reason : fmt.Sprintf("unknown operation %q", ins.Op),
	}
}

func EDuplicateLabel(label string, first int, second int) MalformedProgram {
	return MalformedProgram {
		Index  : second,
		Reason : fmt.Sprintf("label %q is already defined at instruction %d", label, first),
	}
}

func ESyntax(pos int, line int, reason string) SyntaxError {
	return SyntaxError {
		Pos    : pos,
		Line   : line,
		Reason : reason,
	}
}
