package isa

import (
	"errors"
	"fmt"
)

// Word is an assembled instruction. Only the low 24 bits are significant.
type Word uint32

const (
	WordBits = 24
	WordMask = 1<<WordBits - 1

	opcodeShift = 19
	immFlagBit  = 18
	cpsrFlagBit = 17
	negFlagBit  = 16
	immShift    = 4
	immMask     = 0xFFF
	rmShift     = 8
	rnShift     = 4
	regMask     = 0xF

	// bits 12-15 of a register-shape word carry nothing
	reservedMask = 0xF000
)

var (
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrWordRange      = errors.New("word wider than 24 bits")
	ErrImmediateRange = errors.New("immediate out of range")
	ErrUnlinked       = errors.New("immediate references an unlinked label")
	ErrInvalidOperand = errors.New("invalid operand")
	ErrReservedBits   = errors.New("reserved bits set in register-shape word")
)

// Shape selects between the two disjoint instruction encodings.
type Shape uint8

const (
	ShapeRegister Shape = iota
	ShapeImmediate
)

func (s Shape) String() string {
	if s == ShapeImmediate {
		return "immediate"
	}
	return "register"
}

// Immediate is the 12-bit operand of an immediate-shaped instruction. Before
// linking it may name a label instead of holding a value.
type Immediate struct {
	Value   int
	Label   string
	Present bool
}

// Value returns a resolved immediate.
func Value(v int) Immediate { return Immediate{Value: v, Present: true} }

// LabelRef returns an immediate that still has to be linked.
func LabelRef(name string) Immediate { return Immediate{Label: name, Present: true} }

// Unlinked reports whether the immediate still references a label.
func (i Immediate) Unlinked() bool { return i.Present && i.Label != "" }

// Instruction is a parsed (or decoded) instruction.
type Instruction struct {
	Mnemonic Mnemonic
	Shape    Shape
	Status   bool // S flag, update CPSR
	Negate   bool // N flag
	Rd       Register
	Rm       Register // register shape only
	Rn       Register // register shape only
	Imm      Immediate
}

// NewInstruction returns an instruction of the given shape with every operand
// slot absent.
func NewInstruction(m Mnemonic, shape Shape) Instruction {
	return Instruction{Mnemonic: m, Shape: shape, Rd: NoRegister, Rm: NoRegister, Rn: NoRegister}
}

// Flags returns the active suffix flags.
func (in Instruction) Flags() FlagSet {
	var s FlagSet
	if in.Negate {
		s |= setNegate
	}
	if in.Status {
		s |= setStatus
	}
	return s
}

// OperandCount counts the operand slots that are present for the
// instruction's shape.
func (in Instruction) OperandCount() int {
	n := 0
	if in.Rd.Present() {
		n++
	}
	if in.Shape == ShapeImmediate {
		if in.Imm.Present {
			n++
		}
		return n
	}
	if in.Rm.Present() {
		n++
	}
	if in.Rn.Present() {
		n++
	}
	return n
}

// Materialized returns in with every absent slot of its shape replaced by
// zero, which is exactly what Decode(Encode(in)) yields.
func (in Instruction) Materialized() Instruction {
	out := in
	if !out.Rd.Present() {
		out.Rd = 0
	}
	if out.Shape == ShapeImmediate {
		if !out.Imm.Present {
			out.Imm = Value(0)
		}
		if out.Imm.Label == "" {
			out.Imm.Value &= immMask
		}
		out.Rm, out.Rn = NoRegister, NoRegister
		return out
	}
	if !out.Rm.Present() {
		out.Rm = 0
	}
	if !out.Rn.Present() {
		out.Rn = 0
	}
	out.Imm = Immediate{}
	return out
}

func bit(b bool, pos uint) Word {
	if b {
		return 1 << pos
	}
	return 0
}

func checkRegister(r Register) error {
	if r.Present() && r >= NumRegisters {
		return fmt.Errorf("%w: register %d", ErrInvalidOperand, uint8(r))
	}
	return nil
}

// Encode packs in into an instruction word. Absent operands encode as zero
// and negative immediates as 12-bit two's complement.
func Encode(in Instruction) (Word, error) {
	if !in.Mnemonic.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownOpcode, uint8(in.Mnemonic))
	}
	for _, r := range []Register{in.Rd, in.Rm, in.Rn} {
		if err := checkRegister(r); err != nil {
			return 0, err
		}
	}

	m := in.Materialized()
	w := Word(m.Mnemonic.Opcode())<<opcodeShift |
		bit(m.Shape == ShapeImmediate, immFlagBit) |
		bit(m.Status, cpsrFlagBit) |
		bit(m.Negate, negFlagBit)

	if m.Shape == ShapeImmediate {
		if in.Imm.Unlinked() {
			return 0, fmt.Errorf("%w: %q", ErrUnlinked, in.Imm.Label)
		}
		if !InImmediateRange(in.Imm.Value) && in.Imm.Present {
			return 0, fmt.Errorf("%w: %d", ErrImmediateRange, in.Imm.Value)
		}
		imm := Word(m.Imm.Value) & immMask
		return w | imm<<immShift | Word(m.Rd), nil
	}

	return w | Word(m.Rm)<<rmShift | Word(m.Rn)<<rnShift | Word(m.Rd), nil
}

// Decode unpacks an instruction word. Every operand slot of the decoded
// shape is present.
func Decode(w Word) (Instruction, error) {
	if w&^WordMask != 0 {
		return Instruction{}, fmt.Errorf("%w: 0x%X", ErrWordRange, uint32(w))
	}
	m, ok := MnemonicForOpcode(uint32(w >> opcodeShift))
	if !ok {
		return Instruction{}, fmt.Errorf("%w: 0x%02X", ErrUnknownOpcode, uint32(w>>opcodeShift))
	}

	shape := ShapeRegister
	if w>>immFlagBit&1 == 1 {
		shape = ShapeImmediate
	}
	in := NewInstruction(m, shape)
	in.Status = w>>cpsrFlagBit&1 == 1
	in.Negate = w>>negFlagBit&1 == 1
	in.Rd = Register(w & regMask)

	if shape == ShapeImmediate {
		in.Imm = Value(int(w >> immShift & immMask))
		return in, nil
	}
	if w&reservedMask != 0 {
		return Instruction{}, fmt.Errorf("%w: 0x%06X", ErrReservedBits, uint32(w))
	}
	in.Rm = Register(w >> rmShift & regMask)
	in.Rn = Register(w >> rnShift & regMask)
	return in, nil
}
