package flags

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// intWidth returns the bit width of an integer-typed value.
func intWidth(v value.Value) int64 {
	t, ok := v.Type().(*types.IntType)
	if !ok {
		panic("flags: expected integer type")
	}
	return int64(t.BitSize)
}

// parity computes PF: true if the low byte of v has an even number of set
// bits.
func parity(block *ir.BasicBlock, v value.Value) value.Value {
	w := intWidth(v)
	var low value.Value = v
	if w > 8 {
		low = block.NewTrunc(v, types.I8)
	}
	p := value.Value(low)
	for _, shift := range []int64{4, 2, 1} {
		shifted := block.NewLShr(p, constant.NewInt(shift, types.I8))
		p = block.NewXor(p, shifted)
	}
	bit := block.NewAnd(p, constant.NewInt(1, types.I8))
	return block.NewICmp(ir.IntEQ, bit, constant.NewInt(0, types.I8))
}

// signBit extracts the sign bit of v as an i1.
func signBit(block *ir.BasicBlock, v value.Value) value.Value {
	return block.NewICmp(ir.IntSLT, v, constant.NewInt(0, v.Type()))
}

// zero reports whether v is zero.
func zero(block *ir.BasicBlock, v value.Value) value.Value {
	return block.NewICmp(ir.IntEQ, v, constant.NewInt(0, v.Type()))
}

// Result bundles the six computed flag values for one operation, ready to
// be stored into the caller's flag cells.
type Result map[Flag]value.Value

// Add computes all six flags for x + y = result (ADD family).
func Add(block *ir.BasicBlock, x, y, result value.Value) Result {
	carryOut := block.NewICmp(ir.IntULT, result, x)
	xorXY := block.NewXor(x, y)
	xorXR := block.NewXor(x, result)
	ofBits := block.NewAnd(block.NewXor(xorXY, constant.NewInt(-1, x.Type())), xorXR)
	of := block.NewICmp(ir.IntSLT, ofBits, constant.NewInt(0, x.Type()))
	afBits := block.NewXor(block.NewXor(x, y), result)
	af := block.NewICmp(ir.IntNE, block.NewAnd(afBits, constant.NewInt(0x10, x.Type())), constant.NewInt(0, x.Type()))
	return Result{
		CF: carryOut,
		PF: parity(block, result),
		AF: af,
		ZF: zero(block, result),
		SF: signBit(block, result),
		OF: of,
	}
}

// Sub computes all six flags for x - y = result (SUB/CMP family). CMP
// callers compute result but discard it, storing only the flags.
func Sub(block *ir.BasicBlock, x, y, result value.Value) Result {
	carryOut := block.NewICmp(ir.IntULT, x, y)
	xorXY := block.NewXor(x, y)
	xorXR := block.NewXor(x, result)
	of := block.NewICmp(ir.IntSLT, block.NewAnd(xorXY, xorXR), constant.NewInt(0, x.Type()))
	afBits := block.NewXor(block.NewXor(x, y), result)
	af := block.NewICmp(ir.IntNE, block.NewAnd(afBits, constant.NewInt(0x10, x.Type())), constant.NewInt(0, x.Type()))
	return Result{
		CF: carryOut,
		PF: parity(block, result),
		AF: af,
		ZF: zero(block, result),
		SF: signBit(block, result),
		OF: of,
	}
}

// Neg computes all six flags for result = 0 - src (NEG). Per this lifter's
// resolution of the flag-coverage invariant (see DESIGN.md), NEG writes all
// six cells rather than CF alone.
func Neg(block *ir.BasicBlock, src, result value.Value) Result {
	zeroVal := constant.NewInt(0, src.Type())
	return Sub(block, zeroVal, src, result)
}

// Shift computes the five flags a shift instruction defines (SAR/SHR): AF
// is left unset by the x86 architecture for shifts, matching the source
// this lifter is grounded on, so it is omitted from the returned Result.
// OF is computed as a sign flip between operand and result, the rule the
// architecture specifies for single-bit shifts; for the immediate-count
// forms (SAR64ri, SHR64ri) the architecture leaves OF undefined when the
// count isn't 1, so this is a deliberate simplification applied uniformly
// rather than a precise per-count formula.
func Shift(block *ir.BasicBlock, before, result, shiftedOutBit value.Value) Result {
	of := block.NewICmp(ir.IntNE, signBit(block, before), signBit(block, result))
	return Result{
		CF: shiftedOutBit,
		PF: parity(block, result),
		ZF: zero(block, result),
		SF: signBit(block, result),
		OF: of,
	}
}

// Logic computes the flags for AND/OR/XOR: PF/ZF/SF reflect the result,
// and CF/OF are unconditionally cleared.
func Logic(block *ir.BasicBlock, result value.Value) Result {
	return Result{
		CF: constant.False,
		PF: parity(block, result),
		ZF: zero(block, result),
		SF: signBit(block, result),
		OF: constant.False,
	}
}
