package lift

import (
	"github.com/mewmew/x86lift/internal/emitter"
	"github.com/mewmew/x86lift/internal/objfile"
)

// Context bundles the per-function emitter state with the external
// collaborators the CALL and SYSCALL handlers need: the module (for
// declaring runtime helper functions), the table of locally defined
// functions, and the section table used to resolve PLT-style extern
// calls.
type Context struct {
	Module   *emitter.Module
	Func     *emitter.Function
	Funcs    objfile.FunctionTable
	Sections objfile.SectionTable
}
