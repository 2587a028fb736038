package inst

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/decomp/exp/bin"
)

// Instruction is one decoded machine instruction, addressed by its load
// address and carrying the fixed-shape operand list its Opcode expects.
type Instruction struct {
	Op       Opcode
	Addr     bin.Address // load address of the instruction
	Size     uint8       // encoded length in bytes
	Operands []Operand
}

// NextAddr returns the address of the instruction immediately following
// this one, i.e. the value the dispatcher pre-loads into RIP before
// dispatching the handler.
func (i *Instruction) NextAddr() bin.Address {
	return i.Addr + bin.Address(i.Size)
}

// BlockName returns the canonical basic-block name for the given address,
// "bb_<decimal address>".
func BlockName(addr bin.Address) string {
	return fmt.Sprintf("bb_%d", uint64(addr))
}

// BlockAddr recovers the load address encoded in a canonical block name,
// the inverse of BlockName. It is used by the translation loop to resume
// decoding at a block discovered as a branch target.
func BlockAddr(name string) (bin.Address, error) {
	s := strings.TrimPrefix(name, "bb_")
	if s == name {
		return 0, fmt.Errorf("inst: %q is not a canonical block name", name)
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("inst: %q is not a canonical block name: %w", name, err)
	}
	return bin.Address(v), nil
}
