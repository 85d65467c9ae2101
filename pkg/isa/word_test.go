package isa

import (
	"errors"
	"testing"
)

func immInstr(m Mnemonic, rd Register, imm int, status, negate bool) Instruction {
	in := NewInstruction(m, ShapeImmediate)
	in.Rd = rd
	in.Imm = Value(imm)
	in.Status = status
	in.Negate = negate
	return in
}

func regInstr(m Mnemonic, rd, rm, rn Register) Instruction {
	in := NewInstruction(m, ShapeRegister)
	in.Rd, in.Rm, in.Rn = rd, rm, rn
	return in
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   Instruction
		want Word
	}{
		{
			// (0x01<<19) | (1<<18) | (1<<17) | (0x5<<4) | 1
			"MOVS R1, #0x5",
			immInstr(MOV, 1, 5, true, false),
			0x0E0051,
		},
		{
			"ADD R1, R2, R3",
			regInstr(ADD, 1, 2, 3),
			0x100231,
		},
		{
			"SUBNS R4, #-1",
			immInstr(SUB, 4, -1, true, true),
			0x1FFFF4,
		},
		{
			"BCH #0x605",
			immInstr(BCH, NoRegister, 0x605, false, false),
			0x8C6050,
		},
		{
			"DON",
			regInstr(DON, NoRegister, NoRegister, NoRegister),
			0x000000,
		},
		{
			"POP LR",
			regInstr(POP, LR, NoRegister, NoRegister),
			0xE0000D,
		},
		{
			"MOV CPSR, #-2048",
			immInstr(MOV, CPSR, -2048, false, false),
			0x0C800F,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Encode(tc.in)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if got != tc.want {
				t.Errorf("Encode = 0x%06X; want 0x%06X", uint32(got), uint32(tc.want))
			}
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	unlinked := NewInstruction(BEQ, ShapeImmediate)
	unlinked.Imm = LabelRef("LOOP")

	tests := []struct {
		name string
		in   Instruction
		want error
	}{
		{"unlinked label", unlinked, ErrUnlinked},
		{"too large", immInstr(MOV, 1, 4096, false, false), ErrImmediateRange},
		{"too small", immInstr(MOV, 1, -2049, false, false), ErrImmediateRange},
		{"bad mnemonic", NewInstruction(Mnemonic(40), ShapeRegister), ErrUnknownOpcode},
		{"bad register", regInstr(ADD, 16, 0, 0), ErrInvalidOperand},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Encode(tc.in); !errors.Is(err, tc.want) {
				t.Errorf("Encode error = %v; want %v", err, tc.want)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(0x1000000); !errors.Is(err, ErrWordRange) {
		t.Errorf("Decode(0x1000000) error = %v; want ErrWordRange", err)
	}
	// opcodes 0x1D..0x1F are unassigned
	for _, op := range []Word{0x1D, 0x1E, 0x1F} {
		if _, err := Decode(op << 19); !errors.Is(err, ErrUnknownOpcode) {
			t.Errorf("Decode(opcode 0x%X) error = %v; want ErrUnknownOpcode", uint32(op), err)
		}
	}
	// register shape leaves bits 12-15 unused
	for _, w := range []Word{0x00F000, 0x101231, 0xE08000} {
		if _, err := Decode(w); !errors.Is(err, ErrReservedBits) {
			t.Errorf("Decode(0x%06X) error = %v; want ErrReservedBits", uint32(w), err)
		}
	}
	// the same bits are immediate bits in the immediate shape
	if in, err := Decode(0x0CF001); err != nil || in.Imm.Value != 0xF00 {
		t.Errorf("Decode(0x0CF001) = %+v, %v; want immediate 0xF00", in, err)
	}
}

func TestRoundTrip(t *testing.T) {
	var cases []Instruction
	for _, m := range Mnemonics() {
		g := m.Operands()
		flags := []FlagSet{0}
		if m.Flags() != 0 {
			flags = append(flags, setNegate, setStatus, setNegate|setStatus)
		}
		for _, f := range flags {
			reg := NewInstruction(m, ShapeRegister)
			slots := []*Register{&reg.Rd, &reg.Rm, &reg.Rn}
			for i := 0; i < g.Register; i++ {
				*slots[i] = Register(i*5 + 1)
			}
			reg.Negate, reg.Status = f.Has(FlagNegate), f.Has(FlagStatus)
			cases = append(cases, reg)

			imm := NewInstruction(m, ShapeImmediate)
			if g.Immediate > 1 {
				imm.Rd = PC
			}
			if g.Immediate > 0 {
				imm.Imm = Value(0x7A5)
			}
			imm.Negate, imm.Status = reg.Negate, reg.Status
			cases = append(cases, imm)
		}
	}

	for _, in := range cases {
		w, err := Encode(in)
		if err != nil {
			t.Fatalf("Encode(%+v): %v", in, err)
		}
		got, err := Decode(w)
		if err != nil {
			t.Fatalf("Decode(0x%06X): %v", uint32(w), err)
		}
		if want := in.Materialized(); got != want {
			t.Errorf("Decode(Encode(%+v)) = %+v; want %+v", in, got, want)
		}
	}
}

func TestImmediateTwosComplement(t *testing.T) {
	for v := SignedImmediateMin; v <= UnsignedImmediateMax; v++ {
		w, err := Encode(immInstr(MOV, 0, v, false, false))
		if err != nil {
			t.Fatalf("Encode(#%d): %v", v, err)
		}
		packed := int(w>>4) & 0xFFF
		want := ((v % 4096) + 4096) % 4096
		if packed != want {
			t.Fatalf("#%d packed as 0x%03X; want 0x%03X", v, packed, want)
		}
		got, err := Decode(w)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if got.Imm.Value != want {
			t.Fatalf("#%d decoded as %d; want %d", v, got.Imm.Value, want)
		}
	}
}

func TestAbsentCollapsesToZero(t *testing.T) {
	absent := NewInstruction(BAL, ShapeImmediate)
	absent.Imm = Value(0)
	zero := absent
	zero.Rd = 0

	a, _ := Encode(absent)
	z, _ := Encode(zero)
	if a != z {
		t.Errorf("absent rd encoded as 0x%06X, zero rd as 0x%06X", uint32(a), uint32(z))
	}
}
