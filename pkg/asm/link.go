package asm

import (
	"github.com/golang/glog"
	"github.com/grantwilk/barndles/pkg/isa"
)

// Statement is a parsed instruction and where it came from.
type Statement struct {
	Address uint32
	Line    Line
	Instr   isa.Instruction
}

// Link replaces every label immediate with the address the label is bound
// to in symbols.
func Link(stmts []Statement, symbols *SymbolTable, source string) error {
	for i := range stmts {
		imm := stmts[i].Instr.Imm
		if stmts[i].Instr.Shape != isa.ShapeImmediate || !imm.Unlinked() {
			continue
		}
		addr, ok := symbols.Lookup(imm.Label)
		if !ok {
			return &Error{
				Kind:   KindLinking,
				Msg:    "label was never declared",
				Label:  imm.Label,
				Line:   stmts[i].Line.Number,
				Text:   stmts[i].Line.Text,
				Source: source,
			}
		}
		glog.V(2).Infof("link %s -> 0x%03X at 0x%03X", imm.Label, addr, stmts[i].Address)
		stmts[i].Instr.Imm = isa.Value(int(addr))
	}
	return nil
}
