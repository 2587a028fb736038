package lift

import (
	"testing"

	"github.com/mewmew/x86lift/internal/arch"
	"github.com/mewmew/x86lift/internal/flags"
	"github.com/mewmew/x86lift/internal/inst"
)

func TestLiftSAR64r1ShiftsByOneAndOmitsAF(t *testing.T) {
	f, bb := newTestBlock()
	in := &inst.Instruction{Op: inst.OpSAR64r1, Operands: []inst.Operand{inst.RegOperand(arch.RAX)}}
	liftSAR64r1(f, bb, in)
	if storedFlag(f, bb, flags.AF) != nil {
		t.Error("SAR64r1 should not write AF")
	}
	for _, fl := range []flags.Flag{flags.CF, flags.PF, flags.ZF, flags.SF, flags.OF} {
		if storedFlag(f, bb, fl) == nil {
			t.Errorf("SAR64r1 did not write flag %v", fl)
		}
	}
}

func TestLiftSAR64riUsesImmediateCount(t *testing.T) {
	f, bb := newTestBlock()
	before := len(bb.Insts)
	in := &inst.Instruction{
		Op:       inst.OpSAR64ri,
		Operands: []inst.Operand{inst.RegOperand(arch.RAX), inst.ImmOperand(4)},
	}
	liftSAR64ri(f, bb, in)
	if len(bb.Insts) <= before {
		t.Fatal("liftSAR64ri emitted no instructions")
	}
}

func TestLiftSHR64riIsLogicalNotArithmetic(t *testing.T) {
	f, bb := newTestBlock()
	before := len(bb.Insts)
	in := &inst.Instruction{
		Op:       inst.OpSHR64ri,
		Operands: []inst.Operand{inst.RegOperand(arch.RAX), inst.ImmOperand(2)},
	}
	liftSHR64ri(f, bb, in)
	if len(bb.Insts) <= before {
		t.Fatal("liftSHR64ri emitted no instructions")
	}
}
