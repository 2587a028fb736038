// Package config holds the small set of options the lift command populates
// from CLI flags and threads through to the translation loop.
package config

// Config is the resolved set of options for one lift invocation.
type Config struct {
	// Path is the PE image to lift from.
	Path string

	// Entry is the load address of the function to lift, as given on the
	// command line (e.g. "0x401000").
	Entry string

	// Out is the destination path for the emitted LLVM IR, or "" to write
	// to stdout.
	Out string

	// Verbose enables per-instruction debug logging via internal/xlog.
	Verbose bool
}
