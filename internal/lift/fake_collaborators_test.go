package lift

import (
	"github.com/decomp/exp/bin"
	"github.com/llir/llvm/ir"

	"github.com/mewmew/x86lift/internal/emitter"
)

// fakeObjfile is a minimal FunctionTable/SectionTable double: no local
// functions, no import thunks, every address resolves to section ".text".
type fakeObjfile struct{}

func (fakeObjfile) FunctionByAddr(addr bin.Address) (*ir.Function, bool) { return nil, false }

func (fakeObjfile) SectionNameAt(addr bin.Address) (string, error) { return ".text", nil }

func (fakeObjfile) ExternFuncNameAt(addr bin.Address) (string, bool) { return "", false }

func newTestContext() (*Context, *emitter.BasicBlock) {
	f, bb := newTestBlock()
	mod := emitter.NewModule("m_test")
	ctx := &Context{Module: mod, Func: f, Funcs: fakeObjfile{}, Sections: fakeObjfile{}}
	return ctx, bb
}
