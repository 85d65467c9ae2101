package asm

import (
	"github.com/grantwilk/barndles/pkg/isa"
)

const mnemonicLen = 3

// parseOperator splits an operator such as "ADDNS" into its mnemonic and
// flags. Each flag must be supported by the mnemonic and appear once.
func parseOperator(operator string) (isa.Instruction, error) {
	name, suffix := operator, ""
	if len(operator) > mnemonicLen {
		name, suffix = operator[:mnemonicLen], operator[mnemonicLen:]
	}
	m, ok := isa.LookupMnemonic(name)
	if !ok {
		return isa.Instruction{}, newError(KindMnemonic, "unknown mnemonic %q", name)
	}

	in := isa.NewInstruction(m, isa.ShapeRegister)
	for i := 0; i < len(suffix); i++ {
		f := isa.Flag(suffix[i])
		if !m.Supports(f) {
			return isa.Instruction{}, newError(KindFlag, "unsupported flag %q for mnemonic %q", string(suffix[i]), name)
		}
		switch f {
		case isa.FlagNegate:
			if in.Negate {
				return isa.Instruction{}, newError(KindFlag, "duplicate flag %q in operator %q", string(suffix[i]), operator)
			}
			in.Negate = true
		case isa.FlagStatus:
			if in.Status {
				return isa.Instruction{}, newError(KindFlag, "duplicate flag %q in operator %q", string(suffix[i]), operator)
			}
			in.Status = true
		}
	}
	return in, nil
}

// ParseInstruction parses a whitespace-tokenized instruction line into an
// unlinked instruction. The encoding shape is picked from the last token.
func ParseInstruction(tokens []string) (isa.Instruction, error) {
	if len(tokens) == 0 {
		return isa.Instruction{}, newError(KindOperand, "empty instruction")
	}
	if IsImmediateInstruction(tokens) {
		return parseImmediateInstruction(tokens)
	}
	return parseRegisterInstruction(tokens)
}

func parseImmediateInstruction(tokens []string) (isa.Instruction, error) {
	in, err := parseOperator(tokens[0])
	if err != nil {
		return in, err
	}
	in.Shape = isa.ShapeImmediate

	// A lone operator reaches here when its own text reads as a label, e.g.
	// "MOVS"; it has no operands.
	operands := tokens[1:]
	switch len(operands) {
	case 0:
	case 1:
		if in.Imm, err = ParseImmediate(operands[0]); err != nil {
			return in, err
		}
	case 2:
		if in.Rd, err = ParseRegister(operands[0]); err != nil {
			return in, err
		}
		if in.Imm, err = ParseImmediate(operands[1]); err != nil {
			return in, err
		}
	default:
		return in, newError(KindOperand, "invalid number of operands for mnemonic %q", in.Mnemonic)
	}
	return in, nil
}

func parseRegisterInstruction(tokens []string) (isa.Instruction, error) {
	in, err := parseOperator(tokens[0])
	if err != nil {
		return in, err
	}

	operands := tokens[1:]
	if len(operands) > 3 {
		return in, newError(KindOperand, "invalid number of operands for mnemonic %q", in.Mnemonic)
	}
	slots := []*isa.Register{&in.Rd, &in.Rm, &in.Rn}
	for i, tok := range operands {
		if *slots[i], err = ParseRegister(tok); err != nil {
			return in, err
		}
	}
	return in, nil
}
