package lift

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/mewmew/x86lift/internal/arch"
	"github.com/mewmew/x86lift/internal/emitter"
	"github.com/mewmew/x86lift/internal/flags"
	"github.com/mewmew/x86lift/internal/inst"
)

// shiftedOutBit extracts the bit a shift by count pushes out of the
// register, which becomes the new CF: for a right shift, that is bit
// (count-1) of the pre-shift value.
func shiftedOutBit(bb *emitter.BasicBlock, before, count value.Value) value.Value {
	countMinus1 := bb.NewSub(count, constant.NewInt(1, types.I64))
	shifted := bb.NewLShr(before, countMinus1)
	bit := bb.NewAnd(shifted, constant.NewInt(1, types.I64))
	return bb.NewICmp(ir.IntEQ, bit, constant.NewInt(1, types.I64))
}

// sarOrShr implements the SAR64r1 / SAR64ri / SHR64ri shape: des=lhs(reg)
// shifted by either the literal 1 or an immediate count. SAR is an
// arithmetic (sign-preserving) shift; SHR is logical.
func sarOrShr(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction, arithmetic bool, count value.Value) {
	des := in.Operands[0].Reg
	before := f.LoadReg(bb, des)
	var result value.Value
	if arithmetic {
		result = bb.NewAShr(before, count)
	} else {
		result = bb.NewLShr(before, count)
	}
	f.StoreReg(bb, des, result)
	cf := shiftedOutBit(bb, before, count)
	f.StoreFlags(bb, flags.Shift(bb.BasicBlock, before, result, cf))
}

func liftSAR64r1(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	sarOrShr(f, bb, in, true, constant.NewInt(1, types.I64))
}

func liftSAR64ri(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	count := emitter.ZeroExtend(bb, emitter.Imm(in.Operands[1].Imm, arch.Width8), arch.Width64)
	sarOrShr(f, bb, in, true, count)
}

func liftSHR64ri(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	count := emitter.ZeroExtend(bb, emitter.Imm(in.Operands[1].Imm, arch.Width8), arch.Width64)
	sarOrShr(f, bb, in, false, count)
}
