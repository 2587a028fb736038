// Package xlog provides the colored debug/warning loggers shared across the
// lifter packages.
package xlog

import (
	"log"
	"os"

	"github.com/mewkiz/pkg/term"
)

// Dbg logs low-volume diagnostic traces (each instruction as it is
// lifted). Silent unless X86LIFT_DEBUG is set when the program starts,
// matching the convention of the disassembler tooling this module descends
// from; the lift command's --verbose flag redirects it to stderr.
var Dbg = log.New(dbgWriter(), term.MagentaBold("x86lift:")+" ", 0)

// Warn logs problems encountered while lifting. Its one use is the fatal
// section-lookup failure in CALL64pcrel32, logged with Fatalf, which exits.
var Warn = log.New(os.Stderr, term.RedBold("warning:")+" ", 0)

func dbgWriter() *os.File {
	if os.Getenv("X86LIFT_DEBUG") != "" {
		return os.Stderr
	}
	f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return os.Stderr
	}
	return f
}
