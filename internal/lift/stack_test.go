package lift

import (
	"testing"

	"github.com/mewmew/x86lift/internal/arch"
	"github.com/mewmew/x86lift/internal/inst"
)

func TestLiftPUSH64rDecrementsRSPBeforeStore(t *testing.T) {
	f, bb := newTestBlock()
	in := &inst.Instruction{Op: inst.OpPUSH64r, Operands: []inst.Operand{inst.RegOperand(arch.RAX)}}
	before := len(bb.Insts)
	liftPUSH64r(f, bb, in)
	if len(bb.Insts) <= before {
		t.Fatal("liftPUSH64r emitted no instructions")
	}
}

func TestLiftPOP64rIncrementsRSPAfterLoad(t *testing.T) {
	f, bb := newTestBlock()
	in := &inst.Instruction{Op: inst.OpPOP64r, Operands: []inst.Operand{inst.RegOperand(arch.RAX)}}
	before := len(bb.Insts)
	liftPOP64r(f, bb, in)
	if len(bb.Insts) <= before {
		t.Fatal("liftPOP64r emitted no instructions")
	}
}

func TestLiftLEAVE64DoesNotTerminateBlock(t *testing.T) {
	f, bb := newTestBlock()
	in := &inst.Instruction{Op: inst.OpLEAVE64}
	liftLEAVE64(f, bb, in)
	if bb.Terminated() {
		t.Fatal("LEAVE64 should not terminate its block")
	}
}
