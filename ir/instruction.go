// Copyright 2022 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ir

// Value is the sum type of value occurrences inside an instruction:
// ValConstant, ValLocal, ValArgument, ValMetadata.
type Value interface {
	isValue()
}

// ValConstant wraps a constant value occurrence.
type ValConstant struct {
	Const Constant
}

func (ValConstant) isValue() {}

// ValLocal is a %name occurrence that did not resolve against the enclosing
// function's named argument list.
type ValLocal struct {
	Name string
}

func (ValLocal) isValue() {}

// ValArgument is a %name occurrence that resolved to the Index-th argument
// of the enclosing function.
type ValArgument struct {
	Index int
}

func (ValArgument) isValue() {}

// ValMetadata wraps a metadata value occurrence (the `metadata` typed-value
// form).
type ValMetadata struct {
	Metadata Metadata
}

func (ValMetadata) isValue() {}

// TypedValue pairs a declared type with a value occurrence, the `T V` form
// used throughout the instruction grammar.
type TypedValue struct {
	Type  Type
	Value Value
}

// BinOpKind enumerates the binary arithmetic/logic opcodes.
type BinOpKind int

const (
	BinAdd BinOpKind = iota
	BinSub
	BinMul
	BinAnd
	BinOr
	BinXor
	BinAShr
	BinLShr
	BinShl
	BinSDiv
)

// BinOp is a binary opcode plus its applicable wrap/exactness modifiers.
// NUW/NSW apply only to Add/Sub/Mul; Exact applies only to SDiv.
type BinOp struct {
	Kind BinOpKind
	NUW  bool
	NSW  bool
	Exact bool
}

// CastKind enumerates the cast opcodes.
type CastKind int

const (
	CastTrunc CastKind = iota
	CastZExt
	CastSExt
	CastBitcast
	CastIntToPtr
	CastPtrToInt
)

// CmpKind enumerates the icmp condition codes.
type CmpKind int

const (
	CmpEq CmpKind = iota
	CmpNe
	CmpUGt
	CmpUGe
	CmpULt
	CmpULe
	CmpSGt
	CmpSGe
	CmpSLt
	CmpSLe
)

// Terminator is the sum type of basic-block terminators: TermBr, TermBrCond,
// TermRet, TermSwitch, TermUnreachable.
type Terminator interface {
	isTerminator()
}

// TermBr is an unconditional branch.
type TermBr struct {
	Label string
}

func (TermBr) isTerminator() {}

// TermBrCond is a conditional branch.
type TermBrCond struct {
	Cond        Value
	TrueLabel   string
	FalseLabel  string
}

func (TermBrCond) isTerminator() {}

// TermRet is a return; Type is nil for `ret void`.
type TermRet struct {
	Type  Type
	Value Value
}

func (TermRet) isTerminator() {}

// SwitchCase is one (constant, label) arm of a switch.
type SwitchCase struct {
	Value Constant
	Label string
}

// TermSwitch is a multi-way branch on an integer value.
type TermSwitch struct {
	Type    Type
	Value   Value
	Default string
	Cases   []SwitchCase
}

func (TermSwitch) isTerminator() {}

// TermUnreachable marks a basic block as never falling through.
type TermUnreachable struct{}

func (TermUnreachable) isTerminator() {}

// UnaryOp is the sum type carried by InstUnary: CastOp or LoadOp.
type UnaryOp interface {
	isUnaryOp()
}

// CastOp is a cast instruction's payload: the source typed value (carried by
// the enclosing InstUnary's Operand) is cast via Kind to Target.
type CastOp struct {
	Kind   CastKind
	Target Type
}

func (CastOp) isUnaryOp() {}

// LoadOp is a load instruction's payload.
type LoadOp struct {
	Volatile bool
	Align    *uint64
}

func (LoadOp) isUnaryOp() {}

// PhiIncoming is one [value, %label] arm of a phi.
type PhiIncoming struct {
	Value Value
	Label string
}

// InstructionC is the sum type of instruction content: InstAlloca, InstCall,
// InstICmp, InstUnary, InstGEP, InstStore, InstSelect, InstPhi, InstBin,
// InstTerm.
type InstructionC interface {
	isInstructionC()
}

// InstAlloca allocates stack space for one value of Type, or Count of them
// when Count is non-nil.
type InstAlloca struct {
	Result    string
	Type      Type
	CountType Type
	Count     Value
	Align     *uint64
}

func (InstAlloca) isInstructionC() {}

// InstCall is a function call, bound to Result when the call form was
// `%x = call ...` and unbound (Result == "") for a bare `call ...`
// statement. RetType is nil for a void call.
type InstCall struct {
	Result     string
	CC         CallingConv
	RetAttrs   ParAttrs
	RetType    Type
	Callee     Value
	Args       []TypedValue
	AttrGroups []uint64
}

func (InstCall) isInstructionC() {}

// InstICmp is an integer/pointer comparison.
type InstICmp struct {
	Result string
	Cond   CmpKind
	Type   Type
	LHS    Value
	RHS    Value
}

func (InstICmp) isInstructionC() {}

// InstUnary is a load or cast instruction; Operand carries the source typed
// value in both cases.
type InstUnary struct {
	Result  string
	Operand TypedValue
	Op      UnaryOp
}

func (InstUnary) isInstructionC() {}

// InstGEP is the getelementptr instruction form.
type InstGEP struct {
	Result string
	GEP    *GEP[Value]
}

func (InstGEP) isInstructionC() {}

// InstStore writes Val to the memory addressed by Ptr.
type InstStore struct {
	Volatile bool
	Val      TypedValue
	Ptr      TypedValue
	Align    *uint64
}

func (InstStore) isInstructionC() {}

// InstSelect chooses between True and False based on Cond.
type InstSelect struct {
	Result string
	Cond   Value
	Type   Type
	True   Value
	False  Value
}

func (InstSelect) isInstructionC() {}

// InstPhi selects a value based on the predecessor block.
type InstPhi struct {
	Result   string
	Type     Type
	Incoming []PhiIncoming
}

func (InstPhi) isInstructionC() {}

// InstBin is a binary arithmetic/logic instruction.
type InstBin struct {
	Result string
	Op     BinOp
	Type   Type
	LHS    Value
	RHS    Value
}

func (InstBin) isInstructionC() {}

// InstTerm wraps a basic block terminator.
type InstTerm struct {
	Term Terminator
}

func (InstTerm) isInstructionC() {}

// Instruction is one basic-block entry: its opcode-specific content plus any
// trailing `, !kind !N` metadata annotations, keyed by kind name.
type Instruction struct {
	Content  InstructionC
	Metadata map[string]uint64
}
