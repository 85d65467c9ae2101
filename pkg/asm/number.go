package asm

import (
	"errors"
	"strconv"
	"strings"

	"github.com/grantwilk/barndles/pkg/isa"
)

// ParseNumber parses a binary (0b), octal (0c), decimal or hexadecimal (0x)
// literal.
func ParseNumber(literal string) (int, error) {
	return parseNumber(KindImmediate, "immediate", literal)
}

// parseNumber is ParseNumber with literals that overflow int64 reported as
// out-of-range errors of kind.
func parseNumber(kind Kind, what, literal string) (int, error) {
	base, ok := literalBase(literal)
	if !ok {
		return 0, newError(KindImmediate, "unidentified immediate %q", literal)
	}
	digits := literal
	if base != 10 {
		digits = literal[2:]
	}
	v, err := strconv.ParseInt(digits, base, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, rangeError(kind, what, literal, !strings.HasPrefix(literal, "-"))
	}
	if err != nil {
		return 0, newError(KindImmediate, "unidentified immediate %q", literal)
	}
	return int(v), nil
}

// ParseImmediate parses an immediate operand: "#<literal>" or a bare label.
// Labels are returned unresolved.
func ParseImmediate(token string) (isa.Immediate, error) {
	if IsLabelImmediate(token) {
		return isa.LabelRef(token), nil
	}
	if !IsNumericalImmediate(token) {
		return isa.Immediate{}, newError(KindImmediate, "unidentified immediate %q", token)
	}
	v, err := ParseNumber(token[1:])
	if err != nil {
		return isa.Immediate{}, err
	}
	if err := checkRange(KindImmediate, "immediate", v); err != nil {
		return isa.Immediate{}, err
	}
	return isa.Value(v), nil
}

func checkRange(kind Kind, what string, v int) error {
	if v > isa.UnsignedImmediateMax || v < isa.SignedImmediateMin {
		return rangeError(kind, what, strconv.Itoa(v), v > 0)
	}
	return nil
}

func rangeError(kind Kind, what, value string, tooLarge bool) error {
	if tooLarge {
		return newError(kind, "%s %s is too large, must be less than or equal to %d", what, value, isa.UnsignedImmediateMax)
	}
	return newError(kind, "%s %s is too small, must be greater than or equal to %d", what, value, isa.SignedImmediateMin)
}

// ParseRegister resolves a register operand, ignoring one trailing comma.
func ParseRegister(token string) (isa.Register, error) {
	name := strings.TrimSuffix(token, ",")
	if !IsRegisterOperand(name) {
		return isa.NoRegister, newError(KindRegister, "unknown operand %q", name)
	}
	r, ok := isa.LookupRegister(name)
	if !ok {
		return isa.NoRegister, newError(KindRegister, "unknown register alias %q", name)
	}
	return r, nil
}
