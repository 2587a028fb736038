package lift

import (
	"testing"

	"github.com/decomp/exp/bin"

	"github.com/mewmew/x86lift/internal/inst"
)

func TestLiftJccCreatesTakenAndFallthroughBlocks(t *testing.T) {
	f, bb := newTestBlock()
	in := &inst.Instruction{
		Op:       inst.OpJE,
		Addr:     bin.Address(0x100),
		Size:     6,
		Operands: []inst.Operand{inst.ImmOperand(0x20)},
	}
	liftJcc(f, bb, in)
	if !bb.Terminated() {
		t.Fatal("liftJcc left the block unterminated")
	}
	taken := f.BlockAt(bin.Address(0x100 + 6 + 0x20))
	fallthroughBB := f.BlockAt(bin.Address(0x100 + 6))
	if taken.Name == fallthroughBB.Name {
		t.Fatal("taken and fallthrough blocks resolved to the same name")
	}
}

func TestJccConditionCoversAllOpcodes(t *testing.T) {
	f, bb := newTestBlock()
	ops := []inst.Opcode{
		inst.OpJA, inst.OpJAE, inst.OpJB, inst.OpJBE, inst.OpJE, inst.OpJG,
		inst.OpJGE, inst.OpJL, inst.OpJLE, inst.OpJNE, inst.OpJNO, inst.OpJNP,
		inst.OpJNS, inst.OpJO, inst.OpJP, inst.OpJS,
	}
	for _, op := range ops {
		if !inst.IsJcc(op) {
			t.Fatalf("%v is not recognized as a Jcc opcode", op)
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("jccCond(%v) panicked: %v", op, r)
				}
			}()
			jccCond(f, bb, op)
		}()
	}
}
