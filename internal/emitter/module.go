package emitter

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// Module owns the set of functions under construction plus the handful of
// runtime helper declarations the dispatcher calls out to for behaviour
// this lifter does not itself model (collecting indirect call targets,
// modelling syscalls).
type Module struct {
	*ir.Module

	externs map[string]*ir.Function
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{
		Module:  &ir.Module{SourceFilename: name},
		externs: make(map[string]*ir.Function),
	}
}

// DeclareFunc returns the declaration for name with the given
// parameter/return types, creating and appending it to the module on
// first use. Repeated calls with the same name return the same
// declaration, regardless of the signature passed — callers are expected
// to only ever request one signature per name.
func (m *Module) DeclareFunc(name string, ret types.Type, paramTypes ...types.Type) *ir.Function {
	if fn, ok := m.externs[name]; ok {
		return fn
	}
	var params []*ir.Param
	for i, pt := range paramTypes {
		params = append(params, ir.NewParam(paramName(i), pt))
	}
	sig := types.NewFunc(ret, paramsOf(params)...)
	fn := &ir.Function{
		Name: name,
		Typ:  types.NewPointer(sig),
		Sig:  sig,
		Params: params,
	}
	m.externs[name] = fn
	m.Funcs = append(m.Funcs, fn)
	return fn
}

func paramsOf(params []*ir.Param) []types.Type {
	var out []types.Type
	for _, p := range params {
		out = append(out, p.Typ)
	}
	return out
}

func paramName(i int) string {
	const names = "abcdefghijklmnopqrstuvwxyz"
	if i < len(names) {
		return string(names[i])
	}
	return "arg"
}

// SaibCollectIndirect declares the runtime helper that records an
// indirect call target observed at lift time for later (offline) resolution.
func (m *Module) SaibCollectIndirect() *ir.Function {
	return m.DeclareFunc("saib_collect_indirect", types.Void, types.I64)
}

// SaibSyscall declares the runtime helper modelling a raw syscall: syscall
// number plus up to six arguments, returning the syscall result.
func (m *Module) SaibSyscall() *ir.Function {
	return m.DeclareFunc("saib_syscall", types.I64, types.I64, types.I64, types.I64, types.I64, types.I64, types.I64, types.I64)
}

// AddFunc appends fn to the module's function list and returns it.
func (m *Module) AddFunc(fn *ir.Function) *ir.Function {
	m.Funcs = append(m.Funcs, fn)
	return fn
}
