package emitter

import (
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/mewbak/x86/x86asm"

	"github.com/mewmew/x86lift/internal/arch"
	"github.com/mewmew/x86lift/internal/flags"
)

// regType maps a register width to its LLVM IR integer type.
func regType(w arch.Width) types.Type {
	switch w {
	case arch.Width8:
		return types.I8
	case arch.Width16:
		return types.I16
	case arch.Width32:
		return types.I32
	case arch.Width64:
		return types.I64
	default:
		panic("emitter: unsupported register width")
	}
}

// cell returns the alloca backing the canonical 64-bit register that owns
// reg's storage, allocating and naming it on first use.
func (f *Function) cell(reg arch.Register) *ir.InstAlloca {
	canon := arch.CanonicalOf(reg)
	if v, ok := f.regs[canon]; ok {
		return v
	}
	v := ir.NewAlloca(types.I64)
	v.SetName(strings.ToLower(x86asm.Reg(canon).String()))
	f.regs[canon] = v
	return v
}

// FlagCell returns the alloca backing the given status flag, allocating it
// on first use.
func (f *Function) FlagCell(fl flags.Flag) *ir.InstAlloca {
	if v, ok := f.flags[fl]; ok {
		return v
	}
	v := ir.NewAlloca(types.I1)
	v.SetName(fl.String())
	f.flags[fl] = v
	return v
}

// LoadFlag reads the current value of a status flag.
func (f *Function) LoadFlag(bb *BasicBlock, fl flags.Flag) value.Value {
	return bb.NewLoad(f.FlagCell(fl))
}

// StoreFlag writes v into a status flag's storage cell.
func (f *Function) StoreFlag(bb *BasicBlock, fl flags.Flag, v value.Value) {
	bb.NewStore(v, f.FlagCell(fl))
}

// StoreFlags writes every flag present in r into its storage cell.
func (f *Function) StoreFlags(bb *BasicBlock, r flags.Result) {
	for _, fl := range flags.All {
		if v, ok := r[fl]; ok {
			f.StoreFlag(bb, fl, v)
		}
	}
}

// LoadReg reads reg at its natural width, truncating or extracting from
// the 64-bit canonical cell as needed. High-byte registers (AH, BH, CH,
// DH) read bits [15:8] of the canonical cell.
func (f *Function) LoadReg(bb *BasicBlock, reg arch.Register) value.Value {
	w := arch.WidthOf(reg)
	full := bb.NewLoad(f.cell(reg))
	if w == arch.Width64 {
		return full
	}
	v := value.Value(full)
	if arch.IsHighByte(reg) {
		v = bb.NewLShr(v, constant.NewInt(8, types.I64))
	}
	return bb.NewTrunc(v, regType(w))
}

// StoreReg writes v (of reg's natural width) into reg's storage cell,
// applying the x86 sub-register write rule: a 32-bit write zero-extends
// and replaces the full 64-bit cell; a 16-bit or 8-bit write merges into
// the low (or, for AH/BH/CH/DH, second) byte(s) of the existing 64-bit
// value, preserving the untouched bits.
func (f *Function) StoreReg(bb *BasicBlock, reg arch.Register, v value.Value) {
	w := arch.WidthOf(reg)
	cell := f.cell(reg)
	if w == arch.Width64 {
		bb.NewStore(v, cell)
		return
	}
	if w == arch.Width32 {
		zext := bb.NewZExt(v, types.I64)
		bb.NewStore(zext, cell)
		return
	}
	// 8-bit and 16-bit writes merge into the existing 64-bit value.
	old := bb.NewLoad(cell)
	var mask int64
	var shift int64
	switch {
	case w == arch.Width16:
		mask = 0xFFFF
		shift = 0
	case arch.IsHighByte(reg):
		mask = 0xFF
		shift = 8
	default:
		mask = 0xFF
		shift = 0
	}
	cleared := bb.NewAnd(old, constant.NewInt(^(mask << uint(shift)), types.I64))
	widened := bb.NewZExt(v, types.I64)
	if shift != 0 {
		widened = bb.NewShl(widened, constant.NewInt(shift, types.I64))
	}
	merged := bb.NewOr(cleared, widened)
	bb.NewStore(merged, cell)
}

// EffectiveAddress computes the 64-bit address denoted by a memory
// operand's positional group: Segment:[Base + Index*Scale + Disp].
// Segment overrides are not modelled (flat 64-bit address space), matching
// the supported-instruction scope.
func (f *Function) EffectiveAddress(bb *BasicBlock, base, index arch.Register, scale, disp int64) value.Value {
	var addr value.Value = constant.NewInt(disp, types.I64)
	if base != arch.NoRegister {
		addr = bb.NewAdd(addr, f.LoadReg(bb, base))
	}
	if index != arch.NoRegister {
		scaled := bb.NewMul(f.LoadReg(bb, index), constant.NewInt(scale, types.I64))
		addr = bb.NewAdd(addr, scaled)
	}
	return addr
}

// LoadMem reads a value of the given width from the address denoted by a
// memory operand's positional group.
func (f *Function) LoadMem(bb *BasicBlock, base, index arch.Register, scale, disp int64, width arch.Width) value.Value {
	addr := f.EffectiveAddress(bb, base, index, scale, disp)
	ptr := bb.NewIntToPtr(addr, types.NewPointer(regType(width)))
	return bb.NewLoad(ptr)
}

// StoreMem writes v to the address denoted by a memory operand's
// positional group.
func (f *Function) StoreMem(bb *BasicBlock, base, index arch.Register, scale, disp int64, width arch.Width, v value.Value) {
	addr := f.EffectiveAddress(bb, base, index, scale, disp)
	ptr := bb.NewIntToPtr(addr, types.NewPointer(regType(width)))
	bb.NewStore(v, ptr)
}

// SignExtend sign-extends (or truncates) v to width w.
func SignExtend(bb *BasicBlock, v value.Value, w arch.Width) value.Value {
	target := regType(w)
	vw := v.Type().(*types.IntType).BitSize
	switch {
	case int64(vw) == int64(w):
		return v
	case int64(vw) < int64(w):
		return bb.NewSExt(v, target)
	default:
		return bb.NewTrunc(v, target)
	}
}

// ZeroExtend zero-extends (or truncates) v to width w.
func ZeroExtend(bb *BasicBlock, v value.Value, w arch.Width) value.Value {
	target := regType(w)
	vw := v.Type().(*types.IntType).BitSize
	switch {
	case int64(vw) == int64(w):
		return v
	case int64(vw) < int64(w):
		return bb.NewZExt(v, target)
	default:
		return bb.NewTrunc(v, target)
	}
}

// Imm builds a constant integer operand of the given width.
func Imm(val int64, w arch.Width) value.Value {
	return constant.NewInt(val, regType(w))
}
