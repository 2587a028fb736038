package objfile

import (
	"testing"

	"github.com/decomp/exp/bin"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

func newTestPEFile() *PEFile {
	return &PEFile{
		raw: []byte{0xaa, 0xbb, 0x31, 0xc0, 0xc3, 0xcc},
		sections: []section{
			{name: ".text", start: bin.Address(0x1000), end: bin.Address(0x2000), fileOffset: 2},
			{name: ".plt", start: bin.Address(0x2000), end: bin.Address(0x2100), fileOffset: 0},
		},
		externs: make(map[bin.Address]string),
		funcs:   make(map[bin.Address]*ir.Function),
	}
}

func TestCodeAtResolvesFileOffsetWithinSection(t *testing.T) {
	pf := newTestPEFile()
	buf, err := pf.CodeAt(bin.Address(0x1002))
	if err != nil {
		t.Fatalf("CodeAt: %v", err)
	}
	if len(buf) == 0 || buf[0] != 0xc3 {
		t.Fatalf("CodeAt returned %v, want bytes starting with 0xc3", buf)
	}
}

func TestCodeAtRejectsAddressOutsideAnySection(t *testing.T) {
	pf := newTestPEFile()
	if _, err := pf.CodeAt(bin.Address(0x9000)); err == nil {
		t.Fatal("CodeAt should have failed for an address not in any section")
	}
}

func TestSectionNameAtFindsContainingSection(t *testing.T) {
	pf := newTestPEFile()
	name, err := pf.SectionNameAt(bin.Address(0x2050))
	if err != nil {
		t.Fatalf("SectionNameAt: %v", err)
	}
	if name != ".plt" {
		t.Errorf("SectionNameAt = %q, want .plt", name)
	}
}

func TestExternFuncNameAtUnregisteredIsNotOK(t *testing.T) {
	pf := newTestPEFile()
	if _, ok := pf.ExternFuncNameAt(bin.Address(0x2010)); ok {
		t.Fatal("ExternFuncNameAt should report not-ok for an unregistered address")
	}
	pf.RegisterExtern(bin.Address(0x2010), "puts")
	name, ok := pf.ExternFuncNameAt(bin.Address(0x2010))
	if !ok || name != "puts" {
		t.Errorf("ExternFuncNameAt = (%q, %v), want (puts, true)", name, ok)
	}
}

func TestFunctionByAddrRoundTrips(t *testing.T) {
	pf := newTestPEFile()
	fn := &ir.Function{}
	fn.Sig = types.NewFunc(types.Void)
	pf.RegisterFunc(bin.Address(0x1000), fn)
	got, ok := pf.FunctionByAddr(bin.Address(0x1000))
	if !ok || got != fn {
		t.Fatalf("FunctionByAddr = (%v, %v), want the registered function", got, ok)
	}
	if _, ok := pf.FunctionByAddr(bin.Address(0x1234)); ok {
		t.Fatal("FunctionByAddr should report not-ok for an unregistered address")
	}
}

func TestSectionsReturnsReadOnlyView(t *testing.T) {
	pf := newTestPEFile()
	secs := pf.Sections()
	if len(secs) != 2 {
		t.Fatalf("Sections() returned %d entries, want 2", len(secs))
	}
	if secs[0].Name != ".text" || secs[1].Name != ".plt" {
		t.Errorf("Sections() = %+v, want .text then .plt in header order", secs)
	}
}
