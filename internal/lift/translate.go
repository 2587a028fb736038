package lift

import (
	"fmt"

	"github.com/decomp/exp/bin"
	"github.com/mewbak/x86/x86asm"

	"github.com/mewmew/x86lift/internal/emitter"
	"github.com/mewmew/x86lift/internal/inst"
	"github.com/mewmew/x86lift/internal/schema"
)

// CodeSource supplies the raw bytes starting at a load address, for the
// translation loop to feed to the x86 decoder. objfile.PEFile satisfies
// this via its CodeAt method.
type CodeSource interface {
	CodeAt(addr bin.Address) ([]byte, error)
}

// TranslateFunction lifts one function starting at entry: a worklist over
// ctx.Func's block list, decoding and dispatching straight-line
// instructions until each block terminates. The Jcc and direct JMP
// handlers populate new worklist entries themselves by calling
// ctx.Func.BlockAt on their targets, so the loop only needs to walk
// ctx.Func's block-creation order and pick up anything still unlifted —
// no separate frontier queue is needed.
//
// This performs no CFG pre-discovery: a branch target landing in the
// middle of an already-decoded straight-line run is not retroactively
// split into its own block. That matches a single-pass recursive-descent
// sweep and is adequate for code generated by a compiler that places
// branch targets at instruction boundaries only; it is not a general
// disassembler.
func TranslateFunction(ctx *Context, code CodeSource, entry bin.Address) error {
	f := ctx.Func
	first := f.BlockAt(entry)

	for {
		bb, ok := f.NextPending()
		if !ok {
			break
		}
		addr, err := inst.BlockAddr(bb.Name)
		if err != nil {
			return err
		}
		if err := translateStraightLine(ctx, bb, code, addr); err != nil {
			return fmt.Errorf("lift: translating block %s: %w", bb.Name, err)
		}
	}

	f.Finalize(first)
	return nil
}

// translateStraightLine decodes and dispatches instructions starting at
// addr into bb until a handler leaves bb terminated.
func translateStraightLine(ctx *Context, bb *emitter.BasicBlock, code CodeSource, addr bin.Address) error {
	for {
		buf, err := code.CodeAt(addr)
		if err != nil {
			return err
		}
		raw, err := x86asm.Decode(buf, 64)
		if err != nil {
			return fmt.Errorf("decoding instruction at %v: %w", addr, err)
		}
		in, err := schema.Decode(raw, addr)
		if err != nil {
			return err
		}
		Dispatch(ctx, bb, in)
		if bb.Terminated() {
			return nil
		}
		addr = in.NextAddr()
	}
}
