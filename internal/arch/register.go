// Package arch models the x86-64 register file used by the lifter: the set
// of architectural registers, their storage width, and the canonical
// 64-bit backing cell each sub-register writes through.
package arch

import "github.com/mewbak/x86/x86asm"

// Register identifies an x86 architectural register. The zero value is
// NoRegister, the sentinel used by memory operands that omit a base, index,
// or segment register.
type Register x86asm.Reg

// NoRegister is the sentinel value for an absent register in a memory
// operand's positional group (base, index, or segment).
const NoRegister Register = Register(x86asm.Reg(0))

// String implements fmt.Stringer.
func (r Register) String() string {
	if r == NoRegister {
		return "<none>"
	}
	return x86asm.Reg(r).String()
}

// Width is the storage width of a register in bits.
type Width uint

const (
	Width8 Width = 8
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

// WidthOf returns the storage width of reg, panicking if reg belongs to a
// register class this lifter does not model (FPU, MMX, XMM, segment,
// system, control, debug, or task registers — all out of scope per the
// supported instruction set).
func WidthOf(reg Register) Width {
	switch x86asm.Reg(reg) {
	case x86asm.AL, x86asm.CL, x86asm.DL, x86asm.BL, x86asm.AH, x86asm.CH, x86asm.DH, x86asm.BH,
		x86asm.SPB, x86asm.BPB, x86asm.SIB, x86asm.DIB,
		x86asm.R8B, x86asm.R9B, x86asm.R10B, x86asm.R11B, x86asm.R12B, x86asm.R13B, x86asm.R14B, x86asm.R15B:
		return Width8
	case x86asm.AX, x86asm.CX, x86asm.DX, x86asm.BX, x86asm.SP, x86asm.BP, x86asm.SI, x86asm.DI,
		x86asm.R8W, x86asm.R9W, x86asm.R10W, x86asm.R11W, x86asm.R12W, x86asm.R13W, x86asm.R14W, x86asm.R15W,
		x86asm.IP:
		return Width16
	case x86asm.EAX, x86asm.ECX, x86asm.EDX, x86asm.EBX, x86asm.ESP, x86asm.EBP, x86asm.ESI, x86asm.EDI,
		x86asm.R8L, x86asm.R9L, x86asm.R10L, x86asm.R11L, x86asm.R12L, x86asm.R13L, x86asm.R14L, x86asm.R15L,
		x86asm.EIP:
		return Width32
	case x86asm.RAX, x86asm.RCX, x86asm.RDX, x86asm.RBX, x86asm.RSP, x86asm.RBP, x86asm.RSI, x86asm.RDI,
		x86asm.R8, x86asm.R9, x86asm.R10, x86asm.R11, x86asm.R12, x86asm.R13, x86asm.R14, x86asm.R15,
		x86asm.RIP:
		return Width64
	default:
		panic("arch: unsupported register class for " + reg.String())
	}
}

// CanonicalOf returns the 64-bit register that owns the storage cell reg
// writes through. MOV into AL/AX/EAX all ultimately read and write through
// the RAX backing cell, just at different widths and with different
// extension behaviour (see emitter.Function.StoreReg).
func CanonicalOf(reg Register) Register {
	switch x86asm.Reg(reg) {
	case x86asm.AL, x86asm.AH, x86asm.AX, x86asm.EAX, x86asm.RAX:
		return Register(x86asm.RAX)
	case x86asm.CL, x86asm.CH, x86asm.CX, x86asm.ECX, x86asm.RCX:
		return Register(x86asm.RCX)
	case x86asm.DL, x86asm.DH, x86asm.DX, x86asm.EDX, x86asm.RDX:
		return Register(x86asm.RDX)
	case x86asm.BL, x86asm.BH, x86asm.BX, x86asm.EBX, x86asm.RBX:
		return Register(x86asm.RBX)
	case x86asm.SPB, x86asm.SP, x86asm.ESP, x86asm.RSP:
		return Register(x86asm.RSP)
	case x86asm.BPB, x86asm.BP, x86asm.EBP, x86asm.RBP:
		return Register(x86asm.RBP)
	case x86asm.SIB, x86asm.SI, x86asm.ESI, x86asm.RSI:
		return Register(x86asm.RSI)
	case x86asm.DIB, x86asm.DI, x86asm.EDI, x86asm.RDI:
		return Register(x86asm.RDI)
	case x86asm.R8B, x86asm.R8W, x86asm.R8L, x86asm.R8:
		return Register(x86asm.R8)
	case x86asm.R9B, x86asm.R9W, x86asm.R9L, x86asm.R9:
		return Register(x86asm.R9)
	case x86asm.R10B, x86asm.R10W, x86asm.R10L, x86asm.R10:
		return Register(x86asm.R10)
	case x86asm.R11B, x86asm.R11W, x86asm.R11L, x86asm.R11:
		return Register(x86asm.R11)
	case x86asm.R12B, x86asm.R12W, x86asm.R12L, x86asm.R12:
		return Register(x86asm.R12)
	case x86asm.R13B, x86asm.R13W, x86asm.R13L, x86asm.R13:
		return Register(x86asm.R13)
	case x86asm.R14B, x86asm.R14W, x86asm.R14L, x86asm.R14:
		return Register(x86asm.R14)
	case x86asm.R15B, x86asm.R15W, x86asm.R15L, x86asm.R15:
		return Register(x86asm.R15)
	case x86asm.IP, x86asm.EIP, x86asm.RIP:
		return Register(x86asm.RIP)
	default:
		panic("arch: unsupported register class for " + reg.String())
	}
}

// IsHighByte reports whether reg addresses the high byte of its 16-bit
// parent (AH, CH, DH, BH), which writes bits [15:8] of the canonical cell
// rather than bits [7:0].
func IsHighByte(reg Register) bool {
	switch x86asm.Reg(reg) {
	case x86asm.AH, x86asm.CH, x86asm.DH, x86asm.BH:
		return true
	default:
		return false
	}
}

// Well-known registers referenced by name throughout the lifter.
var (
	RAX = Register(x86asm.RAX)
	RSP = Register(x86asm.RSP)
	RBP = Register(x86asm.RBP)
	RDI = Register(x86asm.RDI)
	RSI = Register(x86asm.RSI)
	RDX = Register(x86asm.RDX)
	RCX = Register(x86asm.RCX)
	R8  = Register(x86asm.R8)
	R9  = Register(x86asm.R9)
	R10 = Register(x86asm.R10)
	RIP = Register(x86asm.RIP)
)
