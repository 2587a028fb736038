package lift

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"github.com/mewmew/x86lift/internal/arch"
	"github.com/mewmew/x86lift/internal/emitter"
	"github.com/mewmew/x86lift/internal/inst"
)

// PUSH64r: rsp -= 8, then [rsp] = src. src may be a register or an
// immediate; rsp is decremented before the store.
func liftPUSH64r(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	decRSP(f, bb)
	src := in.Operands[0]
	v := emitter.Imm(src.Imm, arch.Width64)
	if !src.IsImm() {
		v = f.LoadReg(bb, src.Reg)
	}
	f.StoreMem(bb, arch.RSP, arch.NoRegister, 0, 0, arch.Width64, v)
}

// POP64r: des = [rsp], then rsp += 8.
func liftPOP64r(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	des := in.Operands[0].Reg
	v := f.LoadMem(bb, arch.RSP, arch.NoRegister, 0, 0, arch.Width64)
	f.StoreReg(bb, des, v)
	incRSP(f, bb)
}

// LEAVE64: rsp = rbp; rbp = [rsp]; rsp += 8. The instruction carries no
// operands (schema.Decode emits LEAVE64 with an empty operand list), so
// the implicit RBP/RSP shape is neither carried nor checked; the handler
// always works on RBP and RSP.
func liftLEAVE64(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	f.StoreReg(bb, arch.RSP, f.LoadReg(bb, arch.RBP))
	f.StoreReg(bb, arch.RBP, f.LoadMem(bb, arch.RSP, arch.NoRegister, 0, 0, arch.Width64))
	incRSP(f, bb)
}

func decRSP(f *emitter.Function, bb *emitter.BasicBlock) {
	rsp := f.LoadReg(bb, arch.RSP)
	f.StoreReg(bb, arch.RSP, bb.NewSub(rsp, constant.NewInt(8, types.I64)))
}

func incRSP(f *emitter.Function, bb *emitter.BasicBlock) {
	rsp := f.LoadReg(bb, arch.RSP)
	f.StoreReg(bb, arch.RSP, bb.NewAdd(rsp, constant.NewInt(8, types.I64)))
}
