package lift

import (
	"github.com/llir/llvm/ir/value"

	"github.com/mewmew/x86lift/internal/arch"
	"github.com/mewmew/x86lift/internal/emitter"
	"github.com/mewmew/x86lift/internal/flags"
	"github.com/mewmew/x86lift/internal/inst"
)

// rhsValue resolves an ADD/SUB/CMP right-hand operand: a register loaded
// at width w, or an immediate sign-extended from its encoded width to w.
func rhsValue(f *emitter.Function, bb *emitter.BasicBlock, op inst.Operand, encoded, w arch.Width) value.Value {
	if op.IsImm() {
		return emitter.SignExtend(bb, emitter.Imm(op.Imm, encoded), w)
	}
	return f.LoadReg(bb, op.Reg)
}

// addR implements the des=lhs(reg), rhs, EFLAGS shape shared by every ADD
// form: des and lhs name the same register.
func addR(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction, encoded, w arch.Width) {
	des := in.Operands[0].Reg
	lhs := f.LoadReg(bb, des)
	rhs := rhsValue(f, bb, in.Operands[1], encoded, w)
	result := bb.NewAdd(lhs, rhs)
	f.StoreReg(bb, des, result)
	f.StoreFlags(bb, flags.Add(bb.BasicBlock, lhs, rhs, result))
}

func liftADD32rr(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	addR(f, bb, in, arch.Width32, arch.Width32)
}
func liftADD64rr(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	addR(f, bb, in, arch.Width64, arch.Width64)
}
func liftADD32ri8(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	addR(f, bb, in, arch.Width8, arch.Width32)
}
func liftADD64ri8(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	addR(f, bb, in, arch.Width8, arch.Width64)
}
func liftADD64ri32(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	addR(f, bb, in, arch.Width32, arch.Width64)
}

// ADD64i32: the immediate-first layout. rhs_imm=op0, EFLAGS=op2, lhs=op3,
// des=op1 (des and lhs name the same register).
func liftADD64i32(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	des := in.Operands[1].Reg
	lhs := f.LoadReg(bb, des)
	rhs := emitter.SignExtend(bb, emitter.Imm(in.Operands[0].Imm, arch.Width32), arch.Width64)
	result := bb.NewAdd(lhs, rhs)
	f.StoreReg(bb, des, result)
	f.StoreFlags(bb, flags.Add(bb.BasicBlock, lhs, rhs, result))
}

// subR mirrors addR for the SUB family.
func subR(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction, encoded, w arch.Width) {
	des := in.Operands[0].Reg
	lhs := f.LoadReg(bb, des)
	rhs := rhsValue(f, bb, in.Operands[1], encoded, w)
	result := bb.NewSub(lhs, rhs)
	f.StoreReg(bb, des, result)
	f.StoreFlags(bb, flags.Sub(bb.BasicBlock, lhs, rhs, result))
}

func liftSUB32rr(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	subR(f, bb, in, arch.Width32, arch.Width32)
}
func liftSUB64rr(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	subR(f, bb, in, arch.Width64, arch.Width64)
}
func liftSUB32ri8(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	subR(f, bb, in, arch.Width8, arch.Width32)
}
func liftSUB64ri8(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	subR(f, bb, in, arch.Width8, arch.Width64)
}
func liftSUB64ri32(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	subR(f, bb, in, arch.Width32, arch.Width64)
}
