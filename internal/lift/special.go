package lift

import (
	"github.com/llir/llvm/ir/value"

	"github.com/mewmew/x86lift/internal/arch"
	"github.com/mewmew/x86lift/internal/emitter"
	"github.com/mewmew/x86lift/internal/inst"
)

// RET: src = [rsp]; rip = src; rsp += 8; emit a void return. This lifter
// targets a single function at a time, so the return value (if any) is
// modelled by the caller-visible RAX cell rather than an LLVM return
// value — the handler only needs to retire the stack slot and terminate
// the block.
func liftRET(ctx *Context, bb *emitter.BasicBlock, in *inst.Instruction) {
	f := ctx.Func
	src := f.LoadMem(bb, arch.RSP, arch.NoRegister, 0, 0, arch.Width64)
	f.StoreReg(bb, arch.RIP, src)
	incRSP(f, bb)
	bb.NewRet(nil)
}

// NOOP emits nothing.
func liftNOOP(ctx *Context, bb *emitter.BasicBlock, in *inst.Instruction) {
}

// syscallArgRegs is the fixed System V register order a raw syscall reads
// its number and arguments from.
var syscallArgRegs = [...]arch.Register{arch.RAX, arch.RDI, arch.RSI, arch.RDX, arch.R10, arch.R8, arch.R9}

// SYSCALL reads the syscall number and up to six arguments from their
// fixed registers, calls the saib_syscall runtime helper, and stores the
// result back into RAX.
func liftSYSCALL(ctx *Context, bb *emitter.BasicBlock, in *inst.Instruction) {
	f := ctx.Func
	args := make([]value.Value, len(syscallArgRegs))
	for i, reg := range syscallArgRegs {
		args[i] = f.LoadReg(bb, reg)
	}
	result := bb.NewCall(ctx.Module.SaibSyscall(), args...)
	f.StoreReg(bb, arch.RAX, result)
}
