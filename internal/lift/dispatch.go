package lift

import (
	"fmt"

	"github.com/kr/pretty"

	"github.com/mewmew/x86lift/internal/arch"
	"github.com/mewmew/x86lift/internal/emitter"
	"github.com/mewmew/x86lift/internal/inst"
	"github.com/mewmew/x86lift/internal/xlog"
)

// Dispatch routes one decoded instruction to its handler: an exhaustive
// switch over inst.Opcode rather than a runtime-populated lookup table, so
// an unimplemented opcode is a compile-time-visible gap rather than a
// silent map miss. Handlers for Jcc, JMP, CALL64m, and RET leave bb
// terminated with exactly one terminator. CALL64pcrel32 terminates bb only
// when it emits unreachable; CALL64r, and a CALL64pcrel32 that emits a
// call, leave bb open so lifting continues with the next instruction in
// the same block. Every other handler appends to bb without terminating
// it. An unrecognized opcode is a fatal,
// unrecoverable condition: the operand schema for every opcode this
// lifter claims to support is fixed at compile time, so reaching the
// default case means the decoder fed an opcode no handler exists for.
//
// RIP is modelled as an ordinary register cell (arch.RIP) and is written
// with this instruction's next address before its handler runs, so a
// handler that ever needs to observe "the address of the following
// instruction" through the register file sees a live value rather than a
// stale one. Handlers that need that address for compile-time target
// resolution (the CALL* family, see call.go) still read it directly off
// in.NextAddr() instead of loading the cell back out, since that
// resolution happens against the decoder's own address bookkeeping, not
// against emitted IR.
func Dispatch(ctx *Context, bb *emitter.BasicBlock, in *inst.Instruction) {
	f := ctx.Func
	xlog.Dbg.Printf("lifting %v at %v", in.Op, in.Addr)

	f.StoreReg(bb, arch.RIP, emitter.Imm(int64(in.NextAddr()), arch.Width64))

	if inst.IsJcc(in.Op) {
		liftJcc(f, bb, in)
		return
	}

	switch in.Op {
	case inst.OpMOV32r:
		movMOV32r(f, bb, in)
	case inst.OpMOV64r:
		movMOV64r(f, bb, in)
	case inst.OpMOV64ri32:
		movMOV64ri32(f, bb, in)
	case inst.OpMOV32rm:
		movMOV32rm(f, bb, in)
	case inst.OpMOV64rm:
		movMOV64rm(f, bb, in)
	case inst.OpMOV8m:
		movMOV8m(f, bb, in)
	case inst.OpMOV32m:
		movMOV32m(f, bb, in)
	case inst.OpMOV64m:
		movMOV64m(f, bb, in)
	case inst.OpMOV64mi32:
		movMOV64mi32(f, bb, in)
	case inst.OpLEA64r:
		liftLEA64r(f, bb, in)

	case inst.OpADD32rr:
		liftADD32rr(f, bb, in)
	case inst.OpADD64rr:
		liftADD64rr(f, bb, in)
	case inst.OpADD32ri8:
		liftADD32ri8(f, bb, in)
	case inst.OpADD64ri8:
		liftADD64ri8(f, bb, in)
	case inst.OpADD64ri32:
		liftADD64ri32(f, bb, in)
	case inst.OpADD64i32:
		liftADD64i32(f, bb, in)

	case inst.OpSUB32rr:
		liftSUB32rr(f, bb, in)
	case inst.OpSUB64rr:
		liftSUB64rr(f, bb, in)
	case inst.OpSUB32ri8:
		liftSUB32ri8(f, bb, in)
	case inst.OpSUB64ri8:
		liftSUB64ri8(f, bb, in)
	case inst.OpSUB64ri32:
		liftSUB64ri32(f, bb, in)

	case inst.OpSAR64r1:
		liftSAR64r1(f, bb, in)
	case inst.OpSAR64ri:
		liftSAR64ri(f, bb, in)
	case inst.OpSHR64ri:
		liftSHR64ri(f, bb, in)

	case inst.OpAND64ri8:
		liftAND64ri8(f, bb, in)
	case inst.OpAND32i32:
		liftAND32i32(f, bb, in)
	case inst.OpOR64ri8:
		liftOR64ri8(f, bb, in)
	case inst.OpXOR32r:
		liftXOR32r(f, bb, in)
	case inst.OpNEG32r:
		liftNEG32r(f, bb, in)

	case inst.OpCMP32ri8:
		liftCMP32ri8(f, bb, in)
	case inst.OpCMP64ri8:
		liftCMP64ri8(f, bb, in)
	case inst.OpCMP64i32:
		liftCMP64i32(f, bb, in)
	case inst.OpCMP64rr:
		liftCMP64rr(f, bb, in)
	case inst.OpCMP32mi8:
		liftCMP32mi8(f, bb, in)
	case inst.OpCMP64mi8:
		liftCMP64mi8(f, bb, in)
	case inst.OpCMP8mi:
		liftCMP8mi(f, bb, in)
	case inst.OpCMP64rm:
		liftCMP64rm(f, bb, in)
	case inst.OpTEST32rr:
		liftTEST32rr(f, bb, in)
	case inst.OpTEST64rr:
		liftTEST64rr(f, bb, in)
	case inst.OpTEST32ri:
		liftTEST32ri(f, bb, in)

	case inst.OpPUSH64r:
		liftPUSH64r(f, bb, in)
	case inst.OpPOP64r:
		liftPOP64r(f, bb, in)
	case inst.OpLEAVE64:
		liftLEAVE64(f, bb, in)

	case inst.OpJMP64pcrel32:
		liftJMP64pcrel32(f, bb, in)
	case inst.OpJMP64r:
		liftJMP64r(f, bb, in)

	case inst.OpCALL64pcrel32:
		liftCALL64pcrel32(ctx, bb, in)
	case inst.OpCALL64r:
		liftCALL64r(ctx, bb, in)
	case inst.OpCALL64m:
		liftCALL64m(ctx, bb, in)
	case inst.OpRET:
		liftRET(ctx, bb, in)

	case inst.OpNOOP:
		liftNOOP(ctx, bb, in)
	case inst.OpSYSCALL:
		liftSYSCALL(ctx, bb, in)

	default:
		panic(fmt.Errorf("lift: no handler registered for opcode %v, operands: %# v", in.Op, pretty.Formatter(in.Operands)))
	}
}
