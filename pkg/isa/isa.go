// Package isa describes the BARNDLES instruction set: mnemonics, flags,
// registers, the memory map and the 24-bit instruction word format.
package isa

import "strings"

// Mnemonic identifies one of the 29 BARNDLES operations. Its numeric value
// is the opcode packed into bits 19 and up of an instruction word.
type Mnemonic uint8

const (
	DON Mnemonic = iota // do nothing
	MOV
	ADD
	SUB
	MUL
	DIV
	AND
	ORR
	XOR
	LGA
	LGO
	LGX
	LSL
	LSR
	ASR
	CPA
	CPS
	BCH
	BAL
	BEQ
	BNE
	BGT
	BLT
	BGE
	BLE
	LDR
	STR
	PSH
	POP

	numMnemonics
)

// Flag is an optional single-letter operator suffix.
type Flag byte

const (
	FlagNegate Flag = 'N'
	FlagStatus Flag = 'S'
)

// FlagSet is a bit set of flags.
type FlagSet uint8

const (
	setNegate FlagSet = 1 << iota
	setStatus
)

func (f Flag) bit() FlagSet {
	switch f {
	case FlagNegate:
		return setNegate
	case FlagStatus:
		return setStatus
	}
	return 0
}

// Has reports whether f is in the set.
func (s FlagSet) Has(f Flag) bool {
	b := f.bit()
	return b != 0 && s&b != 0
}

func (s FlagSet) String() string {
	var sb strings.Builder
	if s.Has(FlagNegate) {
		sb.WriteByte(byte(FlagNegate))
	}
	if s.Has(FlagStatus) {
		sb.WriteByte(byte(FlagStatus))
	}
	return sb.String()
}

// Grammar is the number of operands a mnemonic takes in each encoding shape.
type Grammar struct {
	Register  int
	Immediate int
}

// Count returns the operand count declared for shape.
func (g Grammar) Count(shape Shape) int {
	if shape == ShapeImmediate {
		return g.Immediate
	}
	return g.Register
}

type mnemonicInfo struct {
	name     string
	flags    FlagSet
	operands Grammar
}

const arith = setNegate | setStatus

var mnemonicTable = [numMnemonics]mnemonicInfo{
	DON: {"DON", 0, Grammar{0, 0}},
	MOV: {"MOV", arith, Grammar{2, 2}},
	ADD: {"ADD", arith, Grammar{3, 2}},
	SUB: {"SUB", arith, Grammar{3, 2}},
	MUL: {"MUL", arith, Grammar{3, 2}},
	DIV: {"DIV", arith, Grammar{3, 2}},
	AND: {"AND", arith, Grammar{3, 2}},
	ORR: {"ORR", arith, Grammar{3, 2}},
	XOR: {"XOR", arith, Grammar{3, 2}},
	LGA: {"LGA", arith, Grammar{3, 2}},
	LGO: {"LGO", arith, Grammar{3, 2}},
	LGX: {"LGX", arith, Grammar{3, 2}},
	LSL: {"LSL", arith, Grammar{3, 2}},
	LSR: {"LSR", arith, Grammar{3, 2}},
	ASR: {"ASR", arith, Grammar{3, 2}},
	CPA: {"CPA", 0, Grammar{2, 2}},
	CPS: {"CPS", 0, Grammar{2, 2}},
	BCH: {"BCH", 0, Grammar{1, 1}},
	BAL: {"BAL", 0, Grammar{1, 1}},
	BEQ: {"BEQ", 0, Grammar{1, 1}},
	BNE: {"BNE", 0, Grammar{1, 1}},
	BGT: {"BGT", 0, Grammar{1, 1}},
	BLT: {"BLT", 0, Grammar{1, 1}},
	BGE: {"BGE", 0, Grammar{1, 1}},
	BLE: {"BLE", 0, Grammar{1, 1}},
	LDR: {"LDR", 0, Grammar{2, 2}},
	STR: {"STR", 0, Grammar{2, 2}},
	PSH: {"PSH", 0, Grammar{1, 1}},
	POP: {"POP", 0, Grammar{1, 1}},
}

var mnemonicsByName = func() map[string]Mnemonic {
	m := make(map[string]Mnemonic, numMnemonics)
	for i, info := range mnemonicTable {
		m[info.name] = Mnemonic(i)
	}
	return m
}()

// LookupMnemonic resolves an upper-case 3-letter mnemonic name.
func LookupMnemonic(name string) (Mnemonic, bool) {
	m, ok := mnemonicsByName[name]
	return m, ok
}

// MnemonicForOpcode returns the mnemonic encoded by opcode.
func MnemonicForOpcode(opcode uint32) (Mnemonic, bool) {
	if opcode >= uint32(numMnemonics) {
		return 0, false
	}
	return Mnemonic(opcode), true
}

// Mnemonics returns every mnemonic in opcode order.
func Mnemonics() []Mnemonic {
	out := make([]Mnemonic, numMnemonics)
	for i := range out {
		out[i] = Mnemonic(i)
	}
	return out
}

func (m Mnemonic) Valid() bool { return m < numMnemonics }

func (m Mnemonic) String() string {
	if !m.Valid() {
		return "???"
	}
	return mnemonicTable[m].name
}

// Opcode returns the 5-bit opcode of m.
func (m Mnemonic) Opcode() uint32 { return uint32(m) }

// Flags returns the optional suffix flags m accepts.
func (m Mnemonic) Flags() FlagSet {
	if !m.Valid() {
		return 0
	}
	return mnemonicTable[m].flags
}

// Supports reports whether f may be appended to m.
func (m Mnemonic) Supports(f Flag) bool { return m.Flags().Has(f) }

// Operands returns the operand grammar of m.
func (m Mnemonic) Operands() Grammar {
	if !m.Valid() {
		return Grammar{}
	}
	return mnemonicTable[m].operands
}
