package objfile

import (
	"os"

	"github.com/decomp/exp/bin"
	"github.com/llir/llvm/ir"
	"github.com/mewrev/pe"
	"github.com/pkg/errors"
)

// PEFile is a minimal SectionTable/FunctionTable backed by a parsed PE
// image via mewrev/pe. It resolves section names by load-address range
// (image base plus section RVA) and recognizes import-thunk addresses
// registered via RegisterExtern, since
// mewrev/pe does not itself decode the import directory.
type PEFile struct {
	file      *pe.File
	raw       []byte
	imageBase uint64
	sections  []section
	externs   map[bin.Address]string
	funcs     map[bin.Address]*ir.Function
}

type section struct {
	name       string
	start      bin.Address
	end        bin.Address
	fileOffset uint32
}

// Section is the read-only view of one section's layout exposed to
// callers outside this package (the sections CLI subcommand).
type Section struct {
	Name  string
	Start bin.Address
	End   bin.Address
}

// Sections returns the image's section layout in header order.
func (pf *PEFile) Sections() []Section {
	out := make([]Section, len(pf.sections))
	for i, s := range pf.sections {
		out[i] = Section{Name: s.name, Start: s.start, End: s.end}
	}
	return out
}

// OpenPE parses the PE image at path.
func OpenPE(path string) (*PEFile, error) {
	file, err := pe.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	optHdr, err := file.OptHeader()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	sectHdrs, err := file.SectHeaders()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	pf := &PEFile{
		file:      file,
		raw:       raw,
		imageBase: uint64(optHdr.ImageBase),
		externs:   make(map[bin.Address]string),
		funcs:     make(map[bin.Address]*ir.Function),
	}
	for _, hdr := range sectHdrs {
		start := bin.Address(pf.imageBase + uint64(hdr.VirtualAddr))
		end := start + bin.Address(hdr.VirtualSize)
		pf.sections = append(pf.sections, section{name: hdr.Name, start: start, end: end, fileOffset: hdr.Offset})
	}
	return pf, nil
}

// CodeAt returns the raw bytes at addr through the end of its containing
// section, for the disassembler to decode straight-line instructions
// from.
func (pf *PEFile) CodeAt(addr bin.Address) ([]byte, error) {
	for _, s := range pf.sections {
		if s.start <= addr && addr < s.end {
			off := uint64(s.fileOffset) + uint64(addr-s.start)
			if off > uint64(len(pf.raw)) {
				return nil, errors.Errorf("objfile: file offset %d out of range", off)
			}
			return pf.raw[off:], nil
		}
	}
	return nil, errors.Errorf("objfile: no section contains address %v", addr)
}

// Close releases the underlying file.
func (pf *PEFile) Close() error {
	return pf.file.Close()
}

// RegisterFunc records a known local function entry point, for
// FunctionByAddr to resolve direct calls against.
func (pf *PEFile) RegisterFunc(addr bin.Address, fn *ir.Function) {
	pf.funcs[addr] = fn
}

// RegisterExtern records an import-thunk address and the external symbol
// name it calls through.
func (pf *PEFile) RegisterExtern(addr bin.Address, name string) {
	pf.externs[addr] = name
}

// FunctionByAddr implements FunctionTable.
func (pf *PEFile) FunctionByAddr(addr bin.Address) (*ir.Function, bool) {
	fn, ok := pf.funcs[addr]
	return fn, ok
}

// SectionNameAt implements SectionTable.
func (pf *PEFile) SectionNameAt(addr bin.Address) (string, error) {
	for _, s := range pf.sections {
		if s.start <= addr && addr < s.end {
			return s.name, nil
		}
	}
	return "", errors.Errorf("objfile: no section contains address %v", addr)
}

// ExternFuncNameAt implements SectionTable.
func (pf *PEFile) ExternFuncNameAt(addr bin.Address) (string, bool) {
	name, ok := pf.externs[addr]
	return name, ok
}
