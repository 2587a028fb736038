package lift

import (
	"testing"

	"github.com/mewmew/x86lift/internal/arch"
	"github.com/mewmew/x86lift/internal/flags"
	"github.com/mewmew/x86lift/internal/inst"
)

func TestLiftADD64rrStoresResultAndFlags(t *testing.T) {
	f, bb := newTestBlock()
	in := &inst.Instruction{
		Op:       inst.OpADD64rr,
		Operands: []inst.Operand{inst.RegOperand(arch.RAX), inst.RegOperand(arch.RCX)},
	}
	liftADD64rr(f, bb, in)
	for _, fl := range flags.All {
		if storedFlag(f, bb, fl) == nil {
			t.Fatalf("flag %v not written", fl)
		}
	}
	if len(bb.Insts) == 0 {
		t.Fatal("liftADD64rr emitted no instructions")
	}
}

func TestLiftADD64i32ImmediateFirstLayout(t *testing.T) {
	f, bb := newTestBlock()
	in := &inst.Instruction{
		Op: inst.OpADD64i32,
		Operands: []inst.Operand{
			inst.ImmOperand(100),    // op0: rhs imm
			inst.RegOperand(arch.RAX), // op1: des=lhs
			{},                        // op2: EFLAGS placeholder
			inst.RegOperand(arch.RAX), // op3: lhs again
		},
	}
	liftADD64i32(f, bb, in)
	if len(bb.Insts) == 0 {
		t.Fatal("liftADD64i32 emitted no instructions")
	}
}

func TestLiftSUB32ri8SignExtendsImmediate(t *testing.T) {
	f, bb := newTestBlock()
	in := &inst.Instruction{
		Op:       inst.OpSUB32ri8,
		Operands: []inst.Operand{inst.RegOperand(arch.RAX), inst.ImmOperand(-1)},
	}
	liftSUB32ri8(f, bb, in)
	if len(bb.Insts) == 0 {
		t.Fatal("liftSUB32ri8 emitted no instructions")
	}
}
