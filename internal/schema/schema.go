// Package schema implements the Operand Decoder: validation of a decoded
// x86 instruction's operand shape against the shapes accepted for its
// mnemonic, and translation into the closed inst.Instruction/inst.Opcode
// model the dispatcher consumes.
//
// Decode is a switch over x86asm.Op; each arm checks the operand-kind
// pattern and names the concrete Opcode that (x86asm.Op, operand-kind
// pattern) pair decodes to, following the decompiler's own
// schema-validate-then-dispatch split between the Operand Decoder and the
// handlers it feeds.
package schema

import (
	"fmt"

	"github.com/decomp/exp/bin"
	"github.com/mewbak/x86/x86asm"

	"github.com/mewmew/x86lift/internal/arch"
	"github.com/mewmew/x86lift/internal/inst"
)

// argKind classifies one decoded x86asm.Arg for pattern matching against a
// descriptor.
type argKind int

const (
	argReg argKind = iota
	argImm
	argMem
	argRel
	argNone
)

func kindOf(arg x86asm.Arg) argKind {
	if arg == nil {
		return argNone
	}
	switch arg.(type) {
	case x86asm.Reg:
		return argReg
	case x86asm.Imm:
		return argImm
	case x86asm.Mem:
		return argMem
	case x86asm.Rel:
		return argRel
	default:
		return argNone
	}
}

// regOperand converts a decoded register argument into an Operand.
func regOperand(arg x86asm.Arg) inst.Operand {
	return inst.RegOperand(arch.Register(arg.(x86asm.Reg)))
}

// immOperand converts a decoded immediate argument into an Operand.
func immOperand(arg x86asm.Arg) inst.Operand {
	return inst.ImmOperand(int64(arg.(x86asm.Imm)))
}

// memOperand converts a decoded memory argument into the five-slot
// positional group schema.Decode's callers expect. The segment register is
// copied through as decoded; address computation ignores it, since this
// lifter models a flat 64-bit address space.
func memOperand(arg x86asm.Arg) inst.Operand {
	m := arg.(x86asm.Mem)
	return inst.MemOperandOf(
		arch.Register(m.Base),
		int64(m.Scale),
		arch.Register(m.Index),
		m.Disp,
		arch.Register(m.Segment),
	)
}

// width reports the bit width a register argument decodes at.
func width(arg x86asm.Arg) arch.Width {
	return arch.WidthOf(arch.Register(arg.(x86asm.Reg)))
}

// Decode validates and translates one decoded x86asm instruction at addr
// into the closed inst.Instruction model. An unrecognized opcode or
// operand shape is a fatal schema violation (error §7 item 1/2): Decode
// returns an error rather than guessing, and callers are expected to
// abort the lift on any non-nil error.
func Decode(raw x86asm.Inst, addr bin.Address) (*inst.Instruction, error) {
	args := raw.Args
	kinds := [4]argKind{kindOf(args[0]), kindOf(args[1]), kindOf(args[2]), kindOf(args[3])}

	mk := func(op inst.Opcode, operands ...inst.Operand) (*inst.Instruction, error) {
		return &inst.Instruction{Op: op, Addr: addr, Size: uint8(raw.Len), Operands: operands}, nil
	}
	unsupported := func() (*inst.Instruction, error) {
		return nil, fmt.Errorf("schema: unsupported operand shape for %v: %v", raw.Op, kinds)
	}

	switch raw.Op {
	case x86asm.MOV:
		switch {
		case kinds[0] == argReg && kinds[1] == argReg:
			des := regOperand(args[0])
			if width(args[0]) == arch.Width64 {
				return mk(inst.OpMOV64r, des, regOperand(args[1]))
			}
			return mk(inst.OpMOV32r, des, regOperand(args[1]))
		case kinds[0] == argReg && kinds[1] == argImm:
			des := regOperand(args[0])
			if width(args[0]) == arch.Width64 {
				return mk(inst.OpMOV64ri32, des, immOperand(args[1]))
			}
			return mk(inst.OpMOV32r, des, immOperand(args[1]))
		case kinds[0] == argReg && kinds[1] == argMem:
			des := regOperand(args[0])
			if width(args[0]) == arch.Width64 {
				return mk(inst.OpMOV64rm, des, memOperand(args[1]))
			}
			return mk(inst.OpMOV32rm, des, memOperand(args[1]))
		case kinds[0] == argMem && kinds[1] == argReg:
			w := width(args[1])
			mem := memOperand(args[0])
			switch w {
			case arch.Width64:
				return mk(inst.OpMOV64m, mem, regOperand(args[1]))
			case arch.Width8:
				return mk(inst.OpMOV8m, mem, regOperand(args[1]))
			default:
				return mk(inst.OpMOV32m, mem, regOperand(args[1]))
			}
		case kinds[0] == argMem && kinds[1] == argImm:
			return mk(inst.OpMOV64mi32, memOperand(args[0]), immOperand(args[1]))
		}
		return unsupported()

	case x86asm.LEA:
		if kinds[0] == argReg && kinds[1] == argMem {
			return mk(inst.OpLEA64r, regOperand(args[0]), memOperand(args[1]))
		}
		return unsupported()

	case x86asm.ADD:
		return decodeAddSub(true, args, kinds, mk, unsupported)
	case x86asm.SUB:
		return decodeAddSub(false, args, kinds, mk, unsupported)

	case x86asm.SAR:
		if kinds[0] == argReg && kinds[1] == argImm {
			return mk(inst.OpSAR64ri, regOperand(args[0]), immOperand(args[1]))
		}
		if kinds[0] == argReg && kinds[1] == argNone {
			return mk(inst.OpSAR64r1, regOperand(args[0]))
		}
		return unsupported()
	case x86asm.SHR:
		if kinds[0] == argReg && kinds[1] == argImm {
			return mk(inst.OpSHR64ri, regOperand(args[0]), immOperand(args[1]))
		}
		return unsupported()

	case x86asm.AND:
		if kinds[0] == argReg && kinds[1] == argImm {
			return mk(inst.OpAND64ri8, regOperand(args[0]), immOperand(args[1]))
		}
		return unsupported()
	case x86asm.OR:
		if kinds[0] == argReg && kinds[1] == argImm {
			return mk(inst.OpOR64ri8, regOperand(args[0]), immOperand(args[1]))
		}
		return unsupported()
	case x86asm.XOR:
		if kinds[0] == argReg && (kinds[1] == argReg || kinds[1] == argImm) {
			if kinds[1] == argImm {
				return mk(inst.OpXOR32r, regOperand(args[0]), immOperand(args[1]))
			}
			return mk(inst.OpXOR32r, regOperand(args[0]), regOperand(args[1]))
		}
		return unsupported()
	case x86asm.NEG:
		if kinds[0] == argReg {
			return mk(inst.OpNEG32r, regOperand(args[0]))
		}
		return unsupported()

	case x86asm.CMP:
		switch {
		case kinds[0] == argReg && kinds[1] == argReg:
			return mk(inst.OpCMP64rr, regOperand(args[0]), regOperand(args[1]))
		case kinds[0] == argReg && kinds[1] == argImm:
			return mk(inst.OpCMP64ri8, regOperand(args[0]), immOperand(args[1]))
		case kinds[0] == argReg && kinds[1] == argMem:
			return mk(inst.OpCMP64rm, regOperand(args[0]), memOperand(args[1]))
		case kinds[0] == argMem && kinds[1] == argImm:
			if raw.MemBytes == 1 {
				return mk(inst.OpCMP8mi, memOperand(args[0]), immOperand(args[1]))
			}
			return mk(inst.OpCMP32mi8, memOperand(args[0]), immOperand(args[1]))
		}
		return unsupported()

	case x86asm.TEST:
		switch {
		case kinds[0] == argReg && kinds[1] == argReg:
			if width(args[0]) == arch.Width64 {
				return mk(inst.OpTEST64rr, regOperand(args[0]), regOperand(args[1]))
			}
			return mk(inst.OpTEST32rr, regOperand(args[0]), regOperand(args[1]))
		case kinds[0] == argReg && kinds[1] == argImm:
			return mk(inst.OpTEST32ri, regOperand(args[0]), immOperand(args[1]))
		}
		return unsupported()

	case x86asm.PUSH:
		if kinds[0] == argReg || kinds[0] == argImm {
			if kinds[0] == argImm {
				return mk(inst.OpPUSH64r, immOperand(args[0]))
			}
			return mk(inst.OpPUSH64r, regOperand(args[0]))
		}
		return unsupported()
	case x86asm.POP:
		if kinds[0] == argReg {
			return mk(inst.OpPOP64r, regOperand(args[0]))
		}
		return unsupported()
	case x86asm.LEAVE:
		return mk(inst.OpLEAVE64)

	case x86asm.JMP:
		if kinds[0] == argRel {
			return mk(inst.OpJMP64pcrel32, inst.ImmOperand(int64(args[0].(x86asm.Rel))))
		}
		if kinds[0] == argReg {
			return mk(inst.OpJMP64r, regOperand(args[0]))
		}
		return unsupported()

	case x86asm.JA:
		return jcc(inst.OpJA, args, kinds, mk, unsupported)
	case x86asm.JAE:
		return jcc(inst.OpJAE, args, kinds, mk, unsupported)
	case x86asm.JB:
		return jcc(inst.OpJB, args, kinds, mk, unsupported)
	case x86asm.JBE:
		return jcc(inst.OpJBE, args, kinds, mk, unsupported)
	case x86asm.JE:
		return jcc(inst.OpJE, args, kinds, mk, unsupported)
	case x86asm.JG:
		return jcc(inst.OpJG, args, kinds, mk, unsupported)
	case x86asm.JGE:
		return jcc(inst.OpJGE, args, kinds, mk, unsupported)
	case x86asm.JL:
		return jcc(inst.OpJL, args, kinds, mk, unsupported)
	case x86asm.JLE:
		return jcc(inst.OpJLE, args, kinds, mk, unsupported)
	case x86asm.JNE:
		return jcc(inst.OpJNE, args, kinds, mk, unsupported)
	case x86asm.JNO:
		return jcc(inst.OpJNO, args, kinds, mk, unsupported)
	case x86asm.JNP:
		return jcc(inst.OpJNP, args, kinds, mk, unsupported)
	case x86asm.JNS:
		return jcc(inst.OpJNS, args, kinds, mk, unsupported)
	case x86asm.JO:
		return jcc(inst.OpJO, args, kinds, mk, unsupported)
	case x86asm.JP:
		return jcc(inst.OpJP, args, kinds, mk, unsupported)
	case x86asm.JS:
		return jcc(inst.OpJS, args, kinds, mk, unsupported)

	case x86asm.CALL:
		if kinds[0] == argRel {
			return mk(inst.OpCALL64pcrel32, inst.ImmOperand(int64(args[0].(x86asm.Rel))))
		}
		if kinds[0] == argReg {
			return mk(inst.OpCALL64r, regOperand(args[0]))
		}
		if kinds[0] == argMem {
			return mk(inst.OpCALL64m, memOperand(args[0]))
		}
		return unsupported()
	case x86asm.RET:
		return mk(inst.OpRET)
	case x86asm.NOP:
		return mk(inst.OpNOOP)
	case x86asm.SYSCALL:
		return mk(inst.OpSYSCALL)
	}
	return nil, fmt.Errorf("schema: unsupported opcode %v", raw.Op)
}

type maker func(op inst.Opcode, operands ...inst.Operand) (*inst.Instruction, error)
type failer func() (*inst.Instruction, error)

func jcc(op inst.Opcode, args [4]x86asm.Arg, kinds [4]argKind, mk maker, fail failer) (*inst.Instruction, error) {
	if kinds[0] != argRel {
		return fail()
	}
	return mk(op, inst.ImmOperand(int64(args[0].(x86asm.Rel))))
}

// decodeAddSub picks the ADD/SUB opcode family by the actual register
// width of args[0], the same way MOV's reg-reg and reg-imm shapes are
// routed to their 32- vs 64-bit forms above. The supported opcode set
// names no 32-bit ri32 form (ADD32ri32/SUB32ri32 do not exist), so every
// 32-bit immediate, regardless of its encoded size, routes through the
// ri8 form.
func decodeAddSub(isAdd bool, args [4]x86asm.Arg, kinds [4]argKind, mk maker, fail failer) (*inst.Instruction, error) {
	if kinds[0] != argReg {
		return fail()
	}
	rr, ri32, ri8, rr32, ri832 := inst.OpADD64rr, inst.OpADD64ri32, inst.OpADD64ri8, inst.OpADD32rr, inst.OpADD32ri8
	if !isAdd {
		rr, ri32, ri8, rr32, ri832 = inst.OpSUB64rr, inst.OpSUB64ri32, inst.OpSUB64ri8, inst.OpSUB32rr, inst.OpSUB32ri8
	}
	is64 := width(args[0]) == arch.Width64

	switch kinds[1] {
	case argReg:
		if is64 {
			return mk(rr, regOperand(args[0]), regOperand(args[1]))
		}
		return mk(rr32, regOperand(args[0]), regOperand(args[1]))
	case argImm:
		if !is64 {
			return mk(ri832, regOperand(args[0]), immOperand(args[1]))
		}
		imm := args[1].(x86asm.Imm)
		if imm >= -128 && imm <= 127 {
			return mk(ri8, regOperand(args[0]), immOperand(args[1]))
		}
		return mk(ri32, regOperand(args[0]), immOperand(args[1]))
	}
	return fail()
}
