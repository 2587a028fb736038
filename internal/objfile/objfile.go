// Package objfile defines the external collaborator interfaces this
// lifter depends on for information it does not itself compute: the set
// of known function entry points in the binary being lifted, and the
// section layout needed to resolve indirect call targets that land in an
// import-thunk section. A concrete, intentionally minimal PE-backed
// implementation is provided in pefile.go.
package objfile

import (
	"github.com/decomp/exp/bin"
	"github.com/llir/llvm/ir"
)

// FunctionTable resolves an address to the locally defined function
// starting there, mirroring the decompiler's getFunctionByAddr.
type FunctionTable interface {
	FunctionByAddr(addr bin.Address) (*ir.Function, bool)
}

// SectionTable resolves an address to the name of the section containing
// it, and an import-thunk address to the external symbol name it calls
// through, mirroring the decompiler's section/PLT lookups used by
// CALL64pcrel32's extern-call fallback.
type SectionTable interface {
	// SectionNameAt returns the name of the section containing addr. A
	// failed lookup is a hard error (the decompiler this is grounded on
	// calls errx, i.e. aborts the whole run), not a recoverable condition.
	SectionNameAt(addr bin.Address) (string, error)

	// ExternFuncNameAt returns the external symbol name an import-thunk
	// address resolves to, ok is false if addr is not a recognized thunk.
	ExternFuncNameAt(addr bin.Address) (name string, ok bool)
}
