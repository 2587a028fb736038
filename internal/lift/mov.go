// Package lift implements the Instruction Handlers and Dispatcher: one
// function per concrete opcode form, each grounded on the corresponding
// IREmitter-*.cpp handler, plus an exhaustive switch that routes an
// inst.Instruction to its handler.
package lift

import (
	"github.com/mewmew/x86lift/internal/arch"
	"github.com/mewmew/x86lift/internal/emitter"
	"github.com/mewmew/x86lift/internal/inst"
)

// MOV32r: des(reg), src(reg|imm32). Flags untouched.
func movR(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction, w arch.Width) {
	des := in.Operands[0].Reg
	src := in.Operands[1]
	if src.IsImm() {
		f.StoreReg(bb, des, emitter.Imm(src.Imm, w))
		return
	}
	f.StoreReg(bb, des, f.LoadReg(bb, src.Reg))
}

func movMOV32r(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	movR(f, bb, in, arch.Width32)
}

func movMOV64r(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	movR(f, bb, in, arch.Width64)
}

// MOV64ri32: des(reg), src(imm32 sign-extended to 64).
func movMOV64ri32(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	des := in.Operands[0].Reg
	src := in.Operands[1]
	v := emitter.SignExtend(bb, emitter.Imm(src.Imm, arch.Width32), arch.Width64)
	f.StoreReg(bb, des, v)
}

func memGroup(ops []inst.Operand, start int) (base, index arch.Register, scale, disp int64, seg arch.Register) {
	m := ops[start].Mem
	return m.Base, m.Index, m.Scale, m.Disp, m.Segment
}

// MOV32rm / MOV64rm: des(reg), mem5.
func movRM(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction, w arch.Width) {
	des := in.Operands[0].Reg
	base, index, scale, disp, _ := memGroup(in.Operands, 1)
	v := f.LoadMem(bb, base, index, scale, disp, w)
	f.StoreReg(bb, des, v)
}

func movMOV32rm(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	movRM(f, bb, in, arch.Width32)
}

func movMOV64rm(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	movRM(f, bb, in, arch.Width64)
}

// MOV8m / MOV32m / MOV64m: mem5, src(reg|imm).
func movM(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction, w arch.Width) {
	base, index, scale, disp, _ := memGroup(in.Operands, 0)
	src := in.Operands[1]
	v := emitter.Imm(src.Imm, w)
	if !src.IsImm() {
		v = f.LoadReg(bb, src.Reg)
	}
	f.StoreMem(bb, base, index, scale, disp, w, v)
}

func movMOV8m(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	movM(f, bb, in, arch.Width8)
}

func movMOV32m(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	movM(f, bb, in, arch.Width32)
}

func movMOV64m(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	movM(f, bb, in, arch.Width64)
}

// MOV64mi32: mem5, src(imm32 sign-extended to 64). The source form always
// carries an immediate, never a register.
func movMOV64mi32(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	base, index, scale, disp, _ := memGroup(in.Operands, 0)
	src := in.Operands[1]
	v := emitter.SignExtend(bb, emitter.Imm(src.Imm, arch.Width32), arch.Width64)
	f.StoreMem(bb, base, index, scale, disp, arch.Width64, v)
}

// LEA64r: des(reg), mem5. Computes the address only; no load is performed.
func liftLEA64r(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	des := in.Operands[0].Reg
	base, index, scale, disp, _ := memGroup(in.Operands, 1)
	addr := f.EffectiveAddress(bb, base, index, scale, disp)
	f.StoreReg(bb, des, addr)
}
