// Package emitter builds LLVM IR (via github.com/llir/llvm) for a single
// function under construction: it owns the per-register and per-flag
// storage cells, the basic block cache, and the symbol-name uniquifier
// described by the Block/Function Context component.
package emitter

import (
	"fmt"

	"github.com/decomp/exp/bin"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/mewbak/x86/x86asm"

	"github.com/mewmew/x86lift/internal/arch"
	"github.com/mewmew/x86lift/internal/flags"
)

// Function is a function under construction: the LLVM IR function being
// built plus the bookkeeping needed to lift into it one instruction at a
// time.
type Function struct {
	*ir.Function

	// Entry is the load address this function was lifted from.
	Entry bin.Address

	regs   map[arch.Register]*ir.InstAlloca
	flags  map[flags.Flag]*ir.InstAlloca
	blocks map[string]*BasicBlock

	// symtab records every name UniqueName has handed out; baseNames maps
	// a uniquified name back to the base name it was derived from.
	symtab    map[string]bool
	baseNames map[string]string

	order  []string // block names in creation order, to anchor the entry prologue
	cursor int      // next unconsumed index into order, for NextPending
}

// NewFunction creates a function under construction at the given entry
// address with a void/no-argument signature. Callers adjust Sig/CallConv
// before the first call to Block.
func NewFunction(name string, entry bin.Address) *Function {
	sig := types.NewFunc(types.Void)
	typ := types.NewPointer(sig)
	f := &Function{
		Function: &ir.Function{
			Name: name,
			Typ:  typ,
			Sig:  sig,
		},
		Entry:     entry,
		regs:      make(map[arch.Register]*ir.InstAlloca),
		flags:     make(map[flags.Flag]*ir.InstAlloca),
		blocks:    make(map[string]*BasicBlock),
		symtab:    make(map[string]bool),
		baseNames: make(map[string]string),
	}
	return f
}

// Block returns the basic block named name, creating it if this is the
// first reference. At most one block is ever created per name per
// function — repeated lookups by the same name return the same block,
// which is how forward branch targets and fallthrough edges converge on a
// single block.
func (f *Function) Block(name string) *BasicBlock {
	if bb, ok := f.blocks[name]; ok {
		return bb
	}
	bb := &BasicBlock{BasicBlock: &ir.BasicBlock{}, Name: name}
	bb.SetName(name)
	f.blocks[name] = bb
	f.order = append(f.order, name)
	return bb
}

// BlockAt returns the block named inst.BlockName(addr), the canonical
// "bb_<decimal address>" naming scheme.
func (f *Function) BlockAt(addr bin.Address) *BasicBlock {
	return f.Block(fmt.Sprintf("bb_%d", uint64(addr)))
}

// NextPending returns the next block in creation order that has not yet
// been terminated, advancing past any block already finished. The Jcc and
// direct JMP handlers create new blocks as a side effect of calling
// Block/BlockAt, so repeated calls drain both the blocks present at the
// time translation started and any discovered along the way; it returns
// false once every block reachable from the entry has a terminator.
func (f *Function) NextPending() (*BasicBlock, bool) {
	for f.cursor < len(f.order) {
		name := f.order[f.cursor]
		f.cursor++
		bb := f.blocks[name]
		if !bb.Terminated() {
			return bb, true
		}
	}
	return nil, false
}

// Finalize assembles the function's block list: a synthesized entry block
// that declares every register and flag cell the lifted body touched,
// followed by the lifted blocks in the order they were first referenced,
// then appends all of it to the underlying ir.Function.
func (f *Function) Finalize(firstReal *BasicBlock) {
	if len(f.regs) > 0 || len(f.flags) > 0 {
		prologue := &ir.BasicBlock{}
		for reg := arch.Register(x86asm.AL); reg <= arch.Register(x86asm.TR7); reg++ {
			if cell, ok := f.regs[reg]; ok {
				prologue.AppendInst(cell)
			}
		}
		for fl := flags.CF; fl <= flags.OF; fl++ {
			if cell, ok := f.flags[fl]; ok {
				prologue.AppendInst(cell)
			}
		}
		prologue.NewBr(firstReal.BasicBlock)
		f.AppendBlock(prologue)
	}
	for _, name := range f.order {
		f.AppendBlock(f.blocks[name].BasicBlock)
	}
}

// UniqueName returns a name guaranteed not to collide with any name
// already bound in the function's symbol table, deriving it from base by
// appending an increasing numeric suffix. It is the Go analogue of the
// decompiler's getIndexedValueName: repeat calls with the same base value
// always return distinct names, and the base each returned name was
// derived from can be recovered with BaseName.
func (f *Function) UniqueName(base string) string {
	if !f.symtab[base] {
		f.symtab[base] = true
		return base
	}
	stem := base
	if len(stem) > 0 && stem[len(stem)-1] >= '0' && stem[len(stem)-1] <= '9' {
		stem += "_"
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s%d", stem, i)
		if f.symtab[candidate] {
			continue
		}
		if _, taken := f.baseNames[candidate]; taken {
			continue
		}
		f.symtab[candidate] = true
		f.baseNames[candidate] = base
		return candidate
	}
}

// BaseName reverse-looks-up the name a uniquified name was derived from,
// returning name itself if it was never uniquified.
func (f *Function) BaseName(name string) string {
	if base, ok := f.baseNames[name]; ok {
		return base
	}
	return name
}

// BasicBlock wraps an *ir.BasicBlock with the address metadata the
// dispatcher and terminator handlers need.
type BasicBlock struct {
	*ir.BasicBlock
	Name string
}

// Terminated reports whether the block already ends in a terminator
// instruction, matching the spec's "no block is left without exactly one
// terminator" invariant.
func (bb *BasicBlock) Terminated() bool {
	return bb.Term != nil
}
