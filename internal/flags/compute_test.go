package flags

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

func newBlock() *ir.BasicBlock {
	return &ir.BasicBlock{}
}

func wantAllSix(t *testing.T, r Result) {
	t.Helper()
	for _, f := range All {
		if r[f] == nil {
			t.Errorf("Result missing flag %v", f)
		}
	}
}

func TestAddSetsAllSixFlags(t *testing.T) {
	block := newBlock()
	x := constant.NewInt(1, types.I32)
	y := constant.NewInt(2, types.I32)
	result := block.NewAdd(x, y)
	wantAllSix(t, Add(block, x, y, result))
}

func TestSubSetsAllSixFlags(t *testing.T) {
	block := newBlock()
	x := constant.NewInt(5, types.I32)
	y := constant.NewInt(3, types.I32)
	result := block.NewSub(x, y)
	wantAllSix(t, Sub(block, x, y, result))
}

func TestNegSetsAllSixFlags(t *testing.T) {
	block := newBlock()
	src := constant.NewInt(5, types.I32)
	result := block.NewSub(constant.NewInt(0, types.I32), src)
	wantAllSix(t, Neg(block, src, result))
}

func TestShiftOmitsAF(t *testing.T) {
	block := newBlock()
	before := constant.NewInt(16, types.I64)
	result := block.NewAShr(before, constant.NewInt(1, types.I64))
	shiftedOut := constant.NewInt(0, types.I1)
	r := Shift(block, before, result, shiftedOut)
	if _, ok := r[AF]; ok {
		t.Errorf("Shift result includes AF, want it omitted")
	}
	for _, f := range []Flag{CF, PF, ZF, SF, OF} {
		if r[f] == nil {
			t.Errorf("Shift result missing flag %v", f)
		}
	}
}

func TestLogicClearsCarryAndOverflow(t *testing.T) {
	block := newBlock()
	result := block.NewAnd(constant.NewInt(0xF0, types.I32), constant.NewInt(0x0F, types.I32))
	r := Logic(block, result)
	if r[CF] != constant.False {
		t.Errorf("Logic CF = %v, want constant.False", r[CF])
	}
	if r[OF] != constant.False {
		t.Errorf("Logic OF = %v, want constant.False", r[OF])
	}
}
