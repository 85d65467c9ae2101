package isa

import "fmt"

// Register is an index into the 16-entry register file.
type Register uint8

// NoRegister marks an operand slot that was not written in the source.
const NoRegister Register = 0xFF

const (
	SP   Register = 0x0C
	LR   Register = 0x0D
	PC   Register = 0x0E
	CPSR Register = 0x0F

	NumRegisters = 16
)

var registerNames = [NumRegisters]string{
	"R0", "R1", "R2", "R3", "R4", "R5", "R6", "R7",
	"R8", "R9", "R10", "R11", "SP", "LR", "PC", "CPSR",
}

// registerAliases maps every accepted spelling to its register.
var registerAliases = map[string]Register{
	"R0": 0x00, "R00": 0x00,
	"R1": 0x01, "R01": 0x01,
	"R2": 0x02, "R02": 0x02,
	"R3": 0x03, "R03": 0x03,
	"R4": 0x04, "R04": 0x04,
	"R5": 0x05, "R05": 0x05,
	"R6": 0x06, "R06": 0x06,
	"R7": 0x07, "R07": 0x07,
	"R8": 0x08, "R08": 0x08,
	"R9": 0x09, "R09": 0x09,
	"R10": 0x0A,
	"R11": 0x0B,
	"R12": SP, "SP": SP,
	"R13": LR, "LR": LR,
	"R14": PC, "PC": PC,
	"R15": CPSR, "CPSR": CPSR,
}

// LookupRegister resolves a register alias such as "R3", "R03" or "SP".
func LookupRegister(alias string) (Register, bool) {
	r, ok := registerAliases[alias]
	return r, ok
}

// Present reports whether r holds a register rather than NoRegister.
func (r Register) Present() bool { return r != NoRegister }

func (r Register) String() string {
	if r < NumRegisters {
		return registerNames[r]
	}
	if r == NoRegister {
		return "-"
	}
	return fmt.Sprintf("R?%d", uint8(r))
}
