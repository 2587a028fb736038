package lift

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/value"

	"github.com/mewmew/x86lift/internal/arch"
	"github.com/mewmew/x86lift/internal/emitter"
	"github.com/mewmew/x86lift/internal/flags"
	"github.com/mewmew/x86lift/internal/inst"
)

// AND64ri8: des=lhs(reg) & imm8 sign-extended to 64. PF/ZF/SF reflect the
// result; CF/OF are cleared.
func liftAND64ri8(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	des := in.Operands[0].Reg
	lhs := f.LoadReg(bb, des)
	rhs := emitter.SignExtend(bb, emitter.Imm(in.Operands[1].Imm, arch.Width8), arch.Width64)
	result := bb.NewAnd(lhs, rhs)
	f.StoreReg(bb, des, result)
	f.StoreFlags(bb, flags.Logic(bb.BasicBlock, result))
}

// AND32i32: immediate-first layout, imm32=op0, des=lhs(reg)=op1.
func liftAND32i32(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	des := in.Operands[1].Reg
	lhs := f.LoadReg(bb, des)
	rhs := emitter.Imm(in.Operands[0].Imm, arch.Width32)
	result := bb.NewAnd(lhs, rhs)
	f.StoreReg(bb, des, result)
	f.StoreFlags(bb, flags.Logic(bb.BasicBlock, result))
}

// OR64ri8: des=lhs(reg) | imm8 sign-extended to 64.
func liftOR64ri8(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	des := in.Operands[0].Reg
	lhs := f.LoadReg(bb, des)
	rhs := emitter.SignExtend(bb, emitter.Imm(in.Operands[1].Imm, arch.Width8), arch.Width64)
	result := bb.NewOr(lhs, rhs)
	f.StoreReg(bb, des, result)
	f.StoreFlags(bb, flags.Logic(bb.BasicBlock, result))
}

// XOR32r: des=lhs(reg) ^ rhs, where rhs may be a register or (despite the
// mnemonic) an immediate — the source this handler is grounded on checks
// rhs_opr.isImm() rather than assuming a register form.
func liftXOR32r(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	des := in.Operands[0].Reg
	lhs := f.LoadReg(bb, des)
	rhsOp := in.Operands[1]
	var rhs value.Value
	if rhsOp.IsImm() {
		rhs = emitter.Imm(rhsOp.Imm, arch.Width32)
	} else {
		rhs = f.LoadReg(bb, rhsOp.Reg)
	}
	result := bb.NewXor(lhs, rhs)
	f.StoreReg(bb, des, result)
	f.StoreFlags(bb, flags.Logic(bb.BasicBlock, result))
}

// NEG32r: des = 0 - src. All six flags are written (see DESIGN.md for the
// resolution of this handler's flag-coverage discrepancy).
func liftNEG32r(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	des := in.Operands[0].Reg
	src := f.LoadReg(bb, des)
	result := bb.NewSub(constant.NewInt(0, src.Type()), src)
	f.StoreReg(bb, des, result)
	f.StoreFlags(bb, flags.Neg(bb.BasicBlock, src, result))
}
