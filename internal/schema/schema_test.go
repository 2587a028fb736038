package schema

import (
	"testing"

	"github.com/decomp/exp/bin"
	"github.com/google/go-cmp/cmp"
	"github.com/mewbak/x86/x86asm"

	"github.com/mewmew/x86lift/internal/arch"
	"github.com/mewmew/x86lift/internal/inst"
)

func decodeRaw(t *testing.T, raw x86asm.Inst) *inst.Instruction {
	t.Helper()
	in, err := Decode(raw, bin.Address(0x1000))
	if err != nil {
		t.Fatalf("Decode(%v): %v", raw.Op, err)
	}
	return in
}

func TestDecodeMOV64rRegReg(t *testing.T) {
	raw := x86asm.Inst{Op: x86asm.MOV, Len: 3, Args: [4]x86asm.Arg{x86asm.RAX, x86asm.RCX}}
	in := decodeRaw(t, raw)
	if in.Op != inst.OpMOV64r {
		t.Errorf("Decode(MOV RAX, RCX).Op = %v, want %v", in.Op, inst.OpMOV64r)
	}
	if len(in.Operands) != 2 {
		t.Fatalf("len(Operands) = %d, want 2", len(in.Operands))
	}
}

func TestDecodeMOV64rOperandShape(t *testing.T) {
	raw := x86asm.Inst{Op: x86asm.MOV, Len: 3, Args: [4]x86asm.Arg{x86asm.RAX, x86asm.RCX}}
	in := decodeRaw(t, raw)
	want := []inst.Operand{inst.RegOperand(arch.RAX), inst.RegOperand(arch.RCX)}
	if diff := cmp.Diff(want, in.Operands); diff != "" {
		t.Errorf("Decode(MOV RAX, RCX) operands mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeMOV32rRegReg(t *testing.T) {
	raw := x86asm.Inst{Op: x86asm.MOV, Len: 2, Args: [4]x86asm.Arg{x86asm.EAX, x86asm.ECX}}
	in := decodeRaw(t, raw)
	if in.Op != inst.OpMOV32r {
		t.Errorf("Decode(MOV EAX, ECX).Op = %v, want %v", in.Op, inst.OpMOV32r)
	}
}

func TestDecodeADDPicksImmediateWidthByRange(t *testing.T) {
	small := x86asm.Inst{Op: x86asm.ADD, Len: 3, Args: [4]x86asm.Arg{x86asm.RAX, x86asm.Imm(5)}}
	in := decodeRaw(t, small)
	if in.Op != inst.OpADD64ri8 {
		t.Errorf("Decode(ADD RAX, 5).Op = %v, want %v", in.Op, inst.OpADD64ri8)
	}

	large := x86asm.Inst{Op: x86asm.ADD, Len: 6, Args: [4]x86asm.Arg{x86asm.RAX, x86asm.Imm(1000)}}
	in = decodeRaw(t, large)
	if in.Op != inst.OpADD64ri32 {
		t.Errorf("Decode(ADD RAX, 1000).Op = %v, want %v", in.Op, inst.OpADD64ri32)
	}
}

func TestDecodeADDAndSUBRouteOn32BitRegisterWidth(t *testing.T) {
	rr := x86asm.Inst{Op: x86asm.ADD, Len: 2, Args: [4]x86asm.Arg{x86asm.EAX, x86asm.ECX}}
	in := decodeRaw(t, rr)
	if in.Op != inst.OpADD32rr {
		t.Errorf("Decode(ADD EAX, ECX).Op = %v, want %v", in.Op, inst.OpADD32rr)
	}

	ri := x86asm.Inst{Op: x86asm.ADD, Len: 3, Args: [4]x86asm.Arg{x86asm.EAX, x86asm.Imm(1000)}}
	in = decodeRaw(t, ri)
	if in.Op != inst.OpADD32ri8 {
		t.Errorf("Decode(ADD EAX, 1000).Op = %v, want %v (no 32-bit ri32 form exists)", in.Op, inst.OpADD32ri8)
	}

	subRR := x86asm.Inst{Op: x86asm.SUB, Len: 2, Args: [4]x86asm.Arg{x86asm.EAX, x86asm.ECX}}
	in = decodeRaw(t, subRR)
	if in.Op != inst.OpSUB32rr {
		t.Errorf("Decode(SUB EAX, ECX).Op = %v, want %v", in.Op, inst.OpSUB32rr)
	}

	subRI := x86asm.Inst{Op: x86asm.SUB, Len: 3, Args: [4]x86asm.Arg{x86asm.EAX, x86asm.Imm(5)}}
	in = decodeRaw(t, subRI)
	if in.Op != inst.OpSUB32ri8 {
		t.Errorf("Decode(SUB EAX, 5).Op = %v, want %v", in.Op, inst.OpSUB32ri8)
	}
}

func TestDecodeSUB64PicksImmediateWidthByRange(t *testing.T) {
	small := x86asm.Inst{Op: x86asm.SUB, Len: 3, Args: [4]x86asm.Arg{x86asm.RAX, x86asm.Imm(5)}}
	in := decodeRaw(t, small)
	if in.Op != inst.OpSUB64ri8 {
		t.Errorf("Decode(SUB RAX, 5).Op = %v, want %v", in.Op, inst.OpSUB64ri8)
	}

	large := x86asm.Inst{Op: x86asm.SUB, Len: 6, Args: [4]x86asm.Arg{x86asm.RAX, x86asm.Imm(1000)}}
	in = decodeRaw(t, large)
	if in.Op != inst.OpSUB64ri32 {
		t.Errorf("Decode(SUB RAX, 1000).Op = %v, want %v", in.Op, inst.OpSUB64ri32)
	}
}

func TestDecodeJccRequiresRelOperand(t *testing.T) {
	raw := x86asm.Inst{Op: x86asm.JE, Len: 2, Args: [4]x86asm.Arg{x86asm.Rel(0x10)}}
	in := decodeRaw(t, raw)
	if in.Op != inst.OpJE {
		t.Errorf("Decode(JE rel).Op = %v, want %v", in.Op, inst.OpJE)
	}
	if !inst.IsJcc(in.Op) {
		t.Errorf("Decode(JE rel).Op is not recognized as Jcc")
	}
}

func TestDecodeJccRejectsNonRelOperand(t *testing.T) {
	raw := x86asm.Inst{Op: x86asm.JE, Len: 2, Args: [4]x86asm.Arg{x86asm.RAX}}
	if _, err := Decode(raw, bin.Address(0)); err == nil {
		t.Fatal("Decode(JE reg) should have failed; JE only accepts a relative operand")
	}
}

func TestDecodeUnsupportedOpcodeErrors(t *testing.T) {
	raw := x86asm.Inst{Op: x86asm.CPUID, Len: 2}
	if _, err := Decode(raw, bin.Address(0)); err == nil {
		t.Fatal("Decode(CPUID) should have failed; not in the supported opcode set")
	}
}

func TestDecodeRETAndNOP(t *testing.T) {
	ret := decodeRaw(t, x86asm.Inst{Op: x86asm.RET, Len: 1})
	if ret.Op != inst.OpRET {
		t.Errorf("Decode(RET).Op = %v, want %v", ret.Op, inst.OpRET)
	}
	nop := decodeRaw(t, x86asm.Inst{Op: x86asm.NOP, Len: 1})
	if nop.Op != inst.OpNOOP {
		t.Errorf("Decode(NOP).Op = %v, want %v", nop.Op, inst.OpNOOP)
	}
}
