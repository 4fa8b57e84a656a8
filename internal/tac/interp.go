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

const (
	_DefaultMaxSteps = 100000
)

// ExecutionError occurs when the interpreter cannot continue.
type ExecutionError struct {
	Index  int
	Reason string
}

func (self ExecutionError) Error() string {
	return fmt.Sprintf("execution failed at instruction %d: %s", self.Index, self.Reason)
}

// Machine is a reference interpreter for instruction streams. Unset variables read
// as "0" and exhausted input reads as "0".
type Machine struct {
	Vars     map[string]string
	Input    []string
	Output   []string
	Steps    int
	MaxSteps int
}

func NewMachine(vars map[string]string, input ...string) *Machine {
	ret := &Machine {
		Vars     : make(map[string]string, len(vars)),
		Input    : input,
		MaxSteps : _DefaultMaxSteps,
	}

	/* copy the initial variable values */
	for k, v := range vars {
		ret.Vars[k] = v
	}
	return ret
}

func (self *Machine) value(v string) string {
	if !IsIdent(v) {
		return v
	} else if r, ok := self.Vars[v]; ok {
		return r
	} else {
		return "0"
	}
}

// Run executes the program from the first instruction until it falls off the end.
func (self *Machine) Run(prog []Instruction) error {
	pc := 0
	labels := Program(prog).Labels()

	/* main interpreter loop */
	for pc < len(prog) {
		if self.Steps++; self.MaxSteps > 0 && self.Steps > self.MaxSteps {
			return ExecutionError { Index: pc, Reason: "step limit exceeded" }
		}

		/* decode the current instruction */
		ins := prog[pc]
		pc++

		/* execute it */
		switch {
			case ins.Op == OpNoop: {
				break
			}
			case ins.Op == OpAssign: {
				self.Vars[ins.Result] = self.value(ins.Arg1)
			}
			case ins.Op == OpInput: {
				if len(self.Input) == 0 {
					self.Vars[ins.Result] = "0"
				} else {
					self.Vars[ins.Result], self.Input = self.Input[0], self.Input[1:]
				}
			}
			case ins.Op == OpPrint: {
				self.Output = append(self.Output, self.value(ins.Arg1))
			}
			case ins.Op.IsUnary(): {
				if v, ok := EvalUnary(ins.Op, self.value(ins.Arg1)); !ok {
					return ExecutionError { Index: pc - 1, Reason: "invalid operand: " + ins.String() }
				} else {
					self.Vars[ins.Result] = v
				}
			}
			case ins.Op.IsBinary(): {
				if v, ok := EvalBinary(ins.Op, self.value(ins.Arg1), self.value(ins.Arg2)); !ok {
					return ExecutionError { Index: pc - 1, Reason: "invalid operands: " + ins.String() }
				} else {
					self.Vars[ins.Result] = v
				}
			}
			case ins.Op.IsJump(): {
				if ins.Op == OpIfGoto {
					if c, ok := ParseBool(self.value(ins.Arg1)); !ok {
						return ExecutionError { Index: pc - 1, Reason: "non-boolean condition: " + ins.String() }
					} else if !c {
						break
					}
				}
				if to, ok := labels[ins.Target()]; !ok {
					return EInvalidRef(ins.Target(), pc - 1)
				} else {
					pc = to
				}
			}
			default: {
				return ExecutionError { Index: pc - 1, Reason: "unknown operation: " + string(ins.Op) }
			}
		}
	}
	return nil
}
