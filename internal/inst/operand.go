package inst

import "github.com/mewmew/x86lift/internal/arch"

// OperandKind classifies an Operand's payload.
type OperandKind int

const (
	KindReg OperandKind = iota
	KindImm
	KindMem
	KindPC // the synthetic EFLAGS/RIP operand slot carried for schema fidelity
)

// MemOperand is the five-slot positional group x86 addressing decodes into:
// Segment:[Base + Index*Scale + Disp].
type MemOperand struct {
	Base    arch.Register
	Scale   int64
	Index   arch.Register
	Disp    int64
	Segment arch.Register
}

// Operand is one element of an Instruction's operand list. Exactly one of
// the payload fields is meaningful, selected by Kind.
type Operand struct {
	Kind OperandKind
	Reg  arch.Register
	Imm  int64
	Mem  MemOperand
}

// RegOperand builds a register operand.
func RegOperand(r arch.Register) Operand { return Operand{Kind: KindReg, Reg: r} }

// ImmOperand builds an immediate operand.
func ImmOperand(v int64) Operand { return Operand{Kind: KindImm, Imm: v} }

// MemOperandOf builds a memory operand from its five positional fields.
func MemOperandOf(base arch.Register, scale int64, index arch.Register, disp int64, seg arch.Register) Operand {
	return Operand{Kind: KindMem, Mem: MemOperand{Base: base, Scale: scale, Index: index, Disp: disp, Segment: seg}}
}

// IsReg reports whether the operand holds a register.
func (o Operand) IsReg() bool { return o.Kind == KindReg }

// IsImm reports whether the operand holds an immediate.
func (o Operand) IsImm() bool { return o.Kind == KindImm }

// IsMem reports whether the operand holds a memory positional group.
func (o Operand) IsMem() bool { return o.Kind == KindMem }
