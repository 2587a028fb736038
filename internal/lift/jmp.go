package lift

import (
	"github.com/decomp/exp/bin"

	"github.com/mewmew/x86lift/internal/emitter"
	"github.com/mewmew/x86lift/internal/inst"
)

// JMP64pcrel32: direct relative jump. target = next + off.
func liftJMP64pcrel32(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	off := in.Operands[0].Imm
	target := f.BlockAt(in.NextAddr() + bin.Address(off))
	bb.NewBr(target.BasicBlock)
}

// JMP64r: indirect jump through a register. The target register is read
// (per the operand schema) but indirect control flow is not modelled, so
// this always emits unreachable, matching the decompiler this handler is
// grounded on.
func liftJMP64r(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	_ = f.LoadReg(bb, in.Operands[0].Reg)
	bb.NewUnreachable()
}
