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

package passes

import (
	"github.com/cloudwego/tacopt/internal/tac"
)

// Pass rewrites an instruction list, it reports whether anything changed. Block
// passes see one basic block at a time, program passes see the whole program.
type Pass func(ins []tac.Instruction) (bool, []tac.Instruction)

type PassDescriptor struct {
	Pass Pass
	Name string
}

const (
	DefUseDCE = iota
	DeadVarsDCE
	AlgebraicIdentities
	CommonExprElimination
	CopyPropagation
	ConstantPropagation
	ConstantFolding
)

const (
	GotoToGoto = iota
	GotoThroughGoto
	RemoveNoops
)

// BlockPasses are the rewrites applied within a single basic block.
var BlockPasses = [...]PassDescriptor {
	DefUseDCE             : { Name: "Dead Code Elimination (Def-Use)"   , Pass: EliminateDefUse },
	DeadVarsDCE           : { Name: "Dead Code Elimination (Dead Vars)" , Pass: EliminateDeadVars },
	AlgebraicIdentities   : { Name: "Algebraic Identities"              , Pass: RemoveAlgebraicIdentities },
	CommonExprElimination : { Name: "Common Subexpression Elimination"  , Pass: EliminateCommonExprs },
	CopyPropagation       : { Name: "Copy Propagation"                  , Pass: PropagateCopies },
	ConstantPropagation   : { Name: "Constant Propagation"              , Pass: PropagateConstants },
	ConstantFolding       : { Name: "Constant Folding"                  , Pass: FoldConstants },
}

// ProgramPasses are the rewrites applied to the whole instruction stream.
var ProgramPasses = [...]PassDescriptor {
	GotoToGoto      : { Name: "Goto to Goto"         , Pass: ReplaceGotoToGoto },
	GotoThroughGoto : { Name: "Goto through Goto"    , Pass: RemoveGotoThroughGoto },
	RemoveNoops     : { Name: "No-op Removal"        , Pass: RemoveNoop },
}

// UnreachableCode names the final pass of the driver.
const UnreachableCode = "Unreachable Code Elimination"

// removable reports whether an instruction does nothing but assign its result.
func removable(ins tac.Instruction) bool {
	return ins.Op == tac.OpAssign || ins.Op.IsExpr()
}

// drop appends the replacement of a removed instruction: nothing, or a labeled
// noop that keeps the label for jumps.
func drop(ret []tac.Instruction, ins tac.Instruction) []tac.Instruction {
	if ins.Label == "" {
		return ret
	} else {
		return append(ret, tac.Noop().At(ins.Label))
	}
}

// copyOf turns an instruction into `res = v`, keeping its label.
func copyOf(ins tac.Instruction, v string) tac.Instruction {
	return tac.Assign(ins.Result, v).At(ins.Label)
}
