package asm

import (
	"github.com/grantwilk/barndles/pkg/isa"
)

// Validate checks the operand count and flags of a parsed instruction
// against its mnemonic's grammar.
func Validate(in isa.Instruction) error {
	m := in.Mnemonic
	if !m.Valid() {
		return newError(KindMnemonic, "unknown opcode 0x%02X", m.Opcode())
	}
	if got, want := in.OperandCount(), m.Operands().Count(in.Shape); got != want {
		return newError(KindOperand, "invalid number of operands for mnemonic %q: got %d, want %d", m, got, want)
	}
	return validateFlags(in)
}

func validateFlags(in isa.Instruction) error {
	active := []struct {
		set  bool
		flag isa.Flag
	}{
		{in.Status, isa.FlagStatus},
		{in.Negate, isa.FlagNegate},
	}
	for _, a := range active {
		if a.set && !in.Mnemonic.Supports(a.flag) {
			return newError(KindFlag, "flag %q is not supported for mnemonic %q", string(a.flag), in.Mnemonic)
		}
	}
	return nil
}
