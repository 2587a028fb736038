package lift

import (
	"github.com/decomp/exp/bin"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/value"

	"github.com/mewmew/x86lift/internal/emitter"
	"github.com/mewmew/x86lift/internal/flags"
	"github.com/mewmew/x86lift/internal/inst"
)

// jccCond computes the branch condition for a Jcc opcode from the current
// flag cells, per the condition table in the Intel manual's Jcc
// description (§3.2, "Jump if Condition Is Met").
func jccCond(f *emitter.Function, bb *emitter.BasicBlock, op inst.Opcode) value.Value {
	cf := func() value.Value { return f.LoadFlag(bb, flags.CF) }
	zf := func() value.Value { return f.LoadFlag(bb, flags.ZF) }
	sf := func() value.Value { return f.LoadFlag(bb, flags.SF) }
	of := func() value.Value { return f.LoadFlag(bb, flags.OF) }
	pf := func() value.Value { return f.LoadFlag(bb, flags.PF) }

	isTrue := func(v value.Value) value.Value { return bb.NewICmp(ir.IntEQ, v, constant.True) }
	isFalse := func(v value.Value) value.Value { return bb.NewICmp(ir.IntEQ, v, constant.False) }

	switch op {
	case inst.OpJA: // CF=0 and ZF=0
		return bb.NewAnd(isFalse(cf()), isFalse(zf()))
	case inst.OpJAE: // CF=0
		return isFalse(cf())
	case inst.OpJB: // CF=1
		return isTrue(cf())
	case inst.OpJBE: // CF=1 or ZF=1
		return bb.NewOr(isTrue(cf()), isTrue(zf()))
	case inst.OpJE: // ZF=1
		return isTrue(zf())
	case inst.OpJNE: // ZF=0
		return isFalse(zf())
	case inst.OpJG: // ZF=0 and SF=OF
		return bb.NewAnd(isFalse(zf()), bb.NewICmp(ir.IntEQ, sf(), of()))
	case inst.OpJGE: // SF=OF
		return bb.NewICmp(ir.IntEQ, sf(), of())
	case inst.OpJL: // SF<>OF
		return bb.NewICmp(ir.IntNE, sf(), of())
	case inst.OpJLE: // ZF=1 or SF<>OF
		return bb.NewOr(isTrue(zf()), bb.NewICmp(ir.IntNE, sf(), of()))
	case inst.OpJNO: // OF=0
		return isFalse(of())
	case inst.OpJO: // OF=1
		return isTrue(of())
	case inst.OpJNP: // PF=0
		return isFalse(pf())
	case inst.OpJP: // PF=1
		return isTrue(pf())
	case inst.OpJNS: // SF=0
		return isFalse(sf())
	case inst.OpJS: // SF=1
		return isTrue(sf())
	default:
		panic("lift: " + op.String() + " is not a Jcc opcode")
	}
}

// liftJcc emits the conditional branch for any Jcc opcode. The taken
// target is next+off, the fallthrough target is next, where next is the
// address immediately following the branch instruction; the taken block
// is passed first to NewCondBr, fallthrough second.
func liftJcc(f *emitter.Function, bb *emitter.BasicBlock, in *inst.Instruction) {
	off := in.Operands[0].Imm
	next := in.NextAddr()
	taken := f.BlockAt(next + bin.Address(off))
	fallthroughBB := f.BlockAt(next)
	cond := jccCond(f, bb, in.Op)
	bb.NewCondBr(cond, taken.BasicBlock, fallthroughBB.BasicBlock)
}
