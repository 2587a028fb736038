package lift

import (
	"github.com/llir/llvm/ir/value"

	"github.com/mewmew/x86lift/internal/arch"
	"github.com/mewmew/x86lift/internal/emitter"
	"github.com/mewmew/x86lift/internal/flags"
	"github.com/mewmew/x86lift/internal/inst"
)

// cmpRR compares two register (or register/immediate) operands: the
// subtraction result is discarded, only the flags are kept.
func cmpRR(f *emitter.Function, bb *emitter.BasicBlock, lhs, rhs value.Value) {
	result := bb.NewSub(lhs, rhs)
	f.StoreFlags(bb, flags.Sub(bb.BasicBlock, lhs, rhs, result))
}

// CMP32ri8 / CMP64ri8: lhs(reg)=op0, rhs(imm8 sign-extended)=op1.
func cmpRI(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction, w arch.Width) {
	lhs := f.LoadReg(bb, in.Operands[0].Reg)
	rhs := emitter.SignExtend(bb, emitter.Imm(in.Operands[1].Imm, arch.Width8), w)
	cmpRR(f, bb, lhs, rhs)
}

func liftCMP32ri8(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	cmpRI(f, bb, in, arch.Width32)
}
func liftCMP64ri8(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	cmpRI(f, bb, in, arch.Width64)
}

// CMP64i32: immediate-first 4-operand layout. imm=op0, used-reg(lhs)=op1,
// EFLAGS=op2, used-reg(again)=op3 — op1 and op3 name the same register.
func liftCMP64i32(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	lhs := f.LoadReg(bb, in.Operands[1].Reg)
	rhs := emitter.SignExtend(bb, emitter.Imm(in.Operands[0].Imm, arch.Width32), arch.Width64)
	cmpRR(f, bb, lhs, rhs)
}

// CMP64rr: lhs(reg)=op0, rhs(reg)=op1.
func liftCMP64rr(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	lhs := f.LoadReg(bb, in.Operands[0].Reg)
	rhs := f.LoadReg(bb, in.Operands[1].Reg)
	cmpRR(f, bb, lhs, rhs)
}

// CMP32mi8 / CMP64mi8 / CMP8mi: mem5, rhs(imm).
func cmpMI(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction, w arch.Width) {
	base, index, scale, disp, _ := memGroup(in.Operands, 0)
	lhs := f.LoadMem(bb, base, index, scale, disp, w)
	rhs := emitter.SignExtend(bb, emitter.Imm(in.Operands[1].Imm, arch.Width8), w)
	cmpRR(f, bb, lhs, rhs)
}

func liftCMP32mi8(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	cmpMI(f, bb, in, arch.Width32)
}
func liftCMP64mi8(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	cmpMI(f, bb, in, arch.Width64)
}
func liftCMP8mi(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	cmpMI(f, bb, in, arch.Width8)
}

// CMP64rm: lhs(reg)=op0, mem5 rhs.
func liftCMP64rm(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	lhs := f.LoadReg(bb, in.Operands[0].Reg)
	base, index, scale, disp, _ := memGroup(in.Operands, 1)
	rhs := f.LoadMem(bb, base, index, scale, disp, arch.Width64)
	cmpRR(f, bb, lhs, rhs)
}

// TEST computes lhs & rhs, keeping only the flags (PF/ZF/SF; CF/OF
// cleared), never storing the bitwise result.
func testRR(f *emitter.Function, bb *emitter.BasicBlock, lhs, rhs value.Value) {
	result := bb.NewAnd(lhs, rhs)
	f.StoreFlags(bb, flags.Logic(bb.BasicBlock, result))
}

func liftTEST32rr(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	lhs := f.LoadReg(bb, in.Operands[0].Reg)
	rhs := f.LoadReg(bb, in.Operands[1].Reg)
	testRR(f, bb, lhs, rhs)
}

func liftTEST64rr(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	lhs := f.LoadReg(bb, in.Operands[0].Reg)
	rhs := f.LoadReg(bb, in.Operands[1].Reg)
	testRR(f, bb, lhs, rhs)
}

func liftTEST32ri(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	lhs := f.LoadReg(bb, in.Operands[0].Reg)
	rhs := emitter.Imm(in.Operands[1].Imm, arch.Width32)
	testRR(f, bb, lhs, rhs)
}
