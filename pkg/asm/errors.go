package asm

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an assembly error. Kind implements error so callers can
// test a returned error with errors.Is(err, asm.KindLabel).
type Kind int

const (
	KindSection Kind = iota + 1
	KindLabel
	KindMnemonic
	KindFlag
	KindOperand
	KindImmediate // immediate operand, also matches KindOperand
	KindRegister  // register operand, also matches KindOperand
	KindAllocation
	KindLinking
)

var kindNames = map[Kind]string{
	KindSection:    "section error",
	KindLabel:      "label error",
	KindMnemonic:   "mnemonic error",
	KindFlag:       "flag error",
	KindOperand:    "operand error",
	KindImmediate:  "immediate operand error",
	KindRegister:   "register operand error",
	KindAllocation: "allocation error",
	KindLinking:    "linking error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("error kind %d", int(k))
}

func (k Kind) Error() string { return k.String() }

// Error is a fatal assembly error. Line, Text and Source are filled in at the
// section boundary; Label is set for linking errors.
type Error struct {
	Kind   Kind
	Msg    string
	Line   int
	Text   string
	Source string
	Label  string
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&sb, "line %d of %s: ", e.Line, e.Source)
	}
	sb.WriteString(e.Kind.String())
	if e.Label != "" {
		fmt.Fprintf(&sb, ": label %q", e.Label)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Msg)
	if e.Text != "" {
		fmt.Fprintf(&sb, " (%s)", e.Text)
	}
	return sb.String()
}

// Is matches a Kind target.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	if !ok {
		return false
	}
	if e.Kind == k {
		return true
	}
	return k == KindOperand && (e.Kind == KindImmediate || e.Kind == KindRegister)
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// atLine attaches the position of line to err unless it already carries one.
func atLine(err error, line Line, source string) error {
	var e *Error
	if !errors.As(err, &e) {
		return &Error{Kind: KindOperand, Msg: err.Error(), Line: line.Number, Text: line.Text, Source: source}
	}
	if e.Line == 0 {
		e.Line = line.Number
		e.Text = line.Text
		e.Source = source
	}
	return e
}
