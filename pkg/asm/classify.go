package asm

import (
	"regexp"
	"strings"

	"github.com/grantwilk/barndles/pkg/isa"
)

var (
	labelLine    = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*:$`)
	labelName    = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)
	registerName = regexp.MustCompile(`^(R[0-9]+|SP|LR|PC|CPSR),?$`)

	binaryLiteral  = regexp.MustCompile(`^0[bB][01]+$`)
	octalLiteral   = regexp.MustCompile(`^0[cC][0-8]+$`)
	decimalLiteral = regexp.MustCompile(`^-?[0-9]+$`)
	hexLiteral     = regexp.MustCompile(`^0[xX][0-9a-fA-F]+$`)
)

// IsComment reports whether line starts with "#" or "//".
func IsComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//")
}

// IsBlank reports whether line holds nothing but whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsLabel reports whether line is a label declaration such as "LOOP:".
func IsLabel(line string) bool {
	return labelLine.MatchString(line)
}

// IsRegisterOperand reports whether token looks like a register, with an
// optional trailing comma. The alias itself may still fail to resolve.
func IsRegisterOperand(token string) bool {
	return registerName.MatchString(token)
}

// IsLabelImmediate reports whether token is a bare label used as an address.
func IsLabelImmediate(token string) bool {
	return labelName.MatchString(token) && !IsRegisterOperand(token)
}

// IsNumericalImmediate reports whether token is "#" followed by a literal.
func IsNumericalImmediate(token string) bool {
	if !strings.HasPrefix(token, "#") {
		return false
	}
	_, ok := literalBase(token[1:])
	return ok
}

// IsImmediateOperand reports whether token is a label or numerical immediate.
func IsImmediateOperand(token string) bool {
	return IsLabelImmediate(token) || IsNumericalImmediate(token) && !IsRegisterOperand(token)
}

func IsBinary(s string) bool      { return binaryLiteral.MatchString(s) }
func IsOctal(s string) bool       { return octalLiteral.MatchString(s) }
func IsDecimal(s string) bool     { return decimalLiteral.MatchString(s) }
func IsHexadecimal(s string) bool { return hexLiteral.MatchString(s) }

// literalBase returns the base of a numeric literal, checking binary, octal,
// decimal and hexadecimal in that order.
func literalBase(s string) (int, bool) {
	switch {
	case IsBinary(s):
		return 2, true
	case IsOctal(s):
		return 8, true
	case IsDecimal(s):
		return 10, true
	case IsHexadecimal(s):
		return 16, true
	}
	return 0, false
}

// IsMnemonic reports whether s is exactly one of the instruction names.
func IsMnemonic(s string) bool {
	_, ok := isa.LookupMnemonic(s)
	return ok
}

// IsSectionIdentifier reports whether s names a section.
func IsSectionIdentifier(s string) bool {
	switch SectionID(s) {
	case ReadOnly, ReadWrite, InstructionSection:
		return true
	}
	return false
}

// IsImmediateInstruction reports whether a tokenized instruction line uses
// the immediate encoding: its last token is an immediate and not itself a
// mnemonic.
func IsImmediateInstruction(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	last := tokens[len(tokens)-1]
	return (IsNumericalImmediate(last) || IsLabelImmediate(last)) && !IsMnemonic(last)
}
