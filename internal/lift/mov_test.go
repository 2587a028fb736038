package lift

import (
	"testing"

	"github.com/decomp/exp/bin"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"github.com/mewmew/x86lift/internal/arch"
	"github.com/mewmew/x86lift/internal/emitter"
	"github.com/mewmew/x86lift/internal/flags"
	"github.com/mewmew/x86lift/internal/inst"
)

func newTestBlock() (*emitter.Function, *emitter.BasicBlock) {
	f := emitter.NewFunction("f_test", bin.Address(0))
	bb := f.BlockAt(bin.Address(0))
	return f, bb
}

// storedFlag returns the value the last store in bb wrote into fl's cell,
// or nil if bb never stores to it. FlagCell allocates a cell on first use,
// so whether a cell exists says nothing about whether a handler wrote it.
func storedFlag(f *emitter.Function, bb *emitter.BasicBlock, fl flags.Flag) value.Value {
	cell := value.Value(f.FlagCell(fl))
	var v value.Value
	for _, i := range bb.Insts {
		if st, ok := i.(*ir.InstStore); ok && st.Dst == cell {
			v = st.Src
		}
	}
	return v
}

func TestMovMOV32rRegToReg(t *testing.T) {
	f, bb := newTestBlock()
	in := &inst.Instruction{
		Op:       inst.OpMOV32r,
		Operands: []inst.Operand{inst.RegOperand(arch.RAX), inst.RegOperand(arch.RCX)},
	}
	movMOV32r(f, bb, in)
	if len(bb.Insts) == 0 {
		t.Fatal("movMOV32r emitted no instructions")
	}
}

func TestMovMOV64ri32SignExtends(t *testing.T) {
	f, bb := newTestBlock()
	in := &inst.Instruction{
		Op:       inst.OpMOV64ri32,
		Operands: []inst.Operand{inst.RegOperand(arch.RAX), inst.ImmOperand(-1)},
	}
	movMOV64ri32(f, bb, in)
	if len(bb.Insts) == 0 {
		t.Fatal("movMOV64ri32 emitted no instructions")
	}
}

func TestMovMOV64mWithImmediateSourceDoesNotLoadARegister(t *testing.T) {
	f, bb := newTestBlock()
	mem := inst.MemOperandOf(arch.RSP, 0, arch.NoRegister, 0, arch.NoRegister)
	ops := []inst.Operand{mem, inst.ImmOperand(7)}
	in := &inst.Instruction{Op: inst.OpMOV64m, Operands: ops}
	movMOV64m(f, bb, in)
	if len(bb.Insts) == 0 {
		t.Fatal("movMOV64m emitted no instructions")
	}
}

func TestLiftLEA64rComputesAddressWithoutLoad(t *testing.T) {
	f, bb := newTestBlock()
	mem := inst.MemOperandOf(arch.RAX, 4, arch.RCX, 0x20, arch.NoRegister)
	ops := []inst.Operand{inst.RegOperand(arch.RDX), mem, mem, mem, mem, mem}
	in := &inst.Instruction{Op: inst.OpLEA64r, Operands: ops}
	liftLEA64r(f, bb, in)
	if len(bb.Insts) == 0 {
		t.Fatal("liftLEA64r emitted no instructions")
	}
}
