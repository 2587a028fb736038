// Package flags implements the Flag Computer: derivation of the six x86
// status flags (AF, PF, ZF, SF, CF, OF) from the operands and result of an
// arithmetic, logical, shift, or compare instruction.
//
// Each status flag is modelled as a per-module pseudo-register rather than
// a process-global: callers own the storage cell (see internal/emitter)
// and this package only computes the LLVM IR value each flag should be set
// to for a given operation.
package flags

// Flag identifies one of the six x86 status flags this lifter models.
type Flag uint8

const (
	CF Flag = iota // Carry Flag
	PF              // Parity Flag
	AF              // Auxiliary Carry Flag
	ZF              // Zero Flag
	SF              // Sign Flag
	OF              // Overflow Flag
)

// String implements fmt.Stringer.
func (f Flag) String() string {
	switch f {
	case CF:
		return "cf"
	case PF:
		return "pf"
	case AF:
		return "af"
	case ZF:
		return "zf"
	case SF:
		return "sf"
	case OF:
		return "of"
	default:
		return "flag?"
	}
}

// All enumerates the six flags in a stable order, used when storing a
// Result into a function's flag cells.
var All = [...]Flag{CF, PF, AF, ZF, SF, OF}
