package asm

import (
	"fmt"
	"strings"

	"github.com/grantwilk/barndles/pkg/isa"
)

// FormatInstruction renders in as source text, printing only the operand
// slots its mnemonic declares for the instruction's shape.
func FormatInstruction(in isa.Instruction) string {
	var sb strings.Builder
	sb.WriteString(in.Mnemonic.String())
	sb.WriteString(in.Flags().String())

	n := in.Mnemonic.Operands().Count(in.Shape)
	var ops []string
	if in.Shape == isa.ShapeImmediate {
		if n > 1 && in.Rd.Present() {
			ops = append(ops, in.Rd.String())
		}
		if n > 0 && in.Imm.Present {
			if in.Imm.Unlinked() {
				ops = append(ops, in.Imm.Label)
			} else {
				ops = append(ops, fmt.Sprintf("#0x%X", in.Imm.Value&0xFFF))
			}
		}
	} else {
		for i, r := range []isa.Register{in.Rd, in.Rm, in.Rn} {
			if i < n && r.Present() {
				ops = append(ops, r.String())
			}
		}
	}

	if len(ops) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(strings.Join(ops, ", "))
	}
	return sb.String()
}

// Disassemble decodes w and renders it.
func Disassemble(w isa.Word) (string, error) {
	in, err := isa.Decode(w)
	if err != nil {
		return "", err
	}
	return FormatInstruction(in), nil
}

// DisassembleAll renders every word in order.
func DisassembleAll(words []isa.Word) ([]string, error) {
	out := make([]string, len(words))
	for i, w := range words {
		s, err := Disassemble(w)
		if err != nil {
			return nil, fmt.Errorf("word %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}
