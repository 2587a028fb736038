package lift

import (
	"github.com/decomp/exp/bin"
	"github.com/llir/llvm/ir/types"

	"github.com/mewmew/x86lift/internal/arch"
	"github.com/mewmew/x86lift/internal/emitter"
	"github.com/mewmew/x86lift/internal/inst"
	"github.com/mewmew/x86lift/internal/xlog"
)

// callPrologue pushes the return address: rsp -= 8; [rsp] = retAddr. Every
// call form performs this before dispatching on its target, matching the
// decompiler's CALL64* handlers.
func callPrologue(ctx *Context, bb *emitter.BasicBlock, retAddr bin.Address) {
	f := ctx.Func
	decRSP(f, bb)
	f.StoreMem(bb, arch.RSP, arch.NoRegister, 0, 0, arch.Width64, emitter.Imm(int64(retAddr), arch.Width64))
}

// liftCALL64pcrel32: direct relative call. target = next + off. If target
// names a locally defined function, emit a direct call. Otherwise resolve
// the section containing target; a lookup failure is fatal. If the
// section is the import-thunk section (".plt"), emit a call to the
// externally declared symbol. Any other section emits unreachable,
// since this lifter does not model arbitrary indirect call resolution.
func liftCALL64pcrel32(ctx *Context, bb *emitter.BasicBlock, in *inst.Instruction) {
	retAddr := in.NextAddr()
	callPrologue(ctx, bb, retAddr)
	off := in.Operands[0].Imm
	target := retAddr + bin.Address(off)

	if fn, ok := ctx.Funcs.FunctionByAddr(target); ok {
		bb.NewCall(fn)
		return
	}
	sectionName, err := ctx.Sections.SectionNameAt(target)
	if err != nil {
		xlog.Warn.Fatalf("lifting CALL64pcrel32 at %v: %v", in.Addr, err)
	}
	if sectionName == ".plt" {
		if name, ok := ctx.Sections.ExternFuncNameAt(target); ok {
			fn := ctx.Module.DeclareFunc(name, types.Void)
			bb.NewCall(fn)
			return
		}
	}
	bb.NewUnreachable()
}

// liftCALL64r: indirect call through a register. The target is read and
// forwarded to the saib_collect_indirect runtime helper for later
// (offline) resolution; no direct IR call is emitted since the callee is
// unknown at lift time.
func liftCALL64r(ctx *Context, bb *emitter.BasicBlock, in *inst.Instruction) {
	retAddr := in.NextAddr()
	callPrologue(ctx, bb, retAddr)
	target := ctx.Func.LoadReg(bb, in.Operands[0].Reg)
	bb.NewCall(ctx.Module.SaibCollectIndirect(), target)
}

// liftCALL64m: indirect call through a memory operand. The target address
// is never resolved (the decompiler this is grounded on pushes the return
// address but never even loads the callee), so this always emits
// unreachable.
func liftCALL64m(ctx *Context, bb *emitter.BasicBlock, in *inst.Instruction) {
	retAddr := in.NextAddr()
	callPrologue(ctx, bb, retAddr)
	bb.NewUnreachable()
}
