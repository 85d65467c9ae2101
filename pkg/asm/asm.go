// Package asm assembles BARNDLES source into instruction words.
//
// A run sectionizes the source, parses the read-only and instruction
// sections while declaring labels in a shared symbol table, links label
// immediates, then encodes and verifies every instruction.
package asm

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
	"github.com/grantwilk/barndles/pkg/isa"
)

// Program is the result of one assembly run.
type Program struct {
	Source      string
	Sections    map[SectionID]Section
	Symbols     *SymbolTable
	Allocations []Allocation
	Statements  []Statement
	Words       []isa.Word

	// SourceMap maps instruction addresses to source line numbers.
	SourceMap map[uint32]int
}

// Assembler assembles source text whose errors name source. Each call to
// Assemble starts from an empty symbol table, so an Assembler may be reused.
type Assembler struct {
	source string
}

// NewAssembler returns an assembler whose errors name source.
func NewAssembler(source string) *Assembler {
	return &Assembler{source: source}
}

// run holds the state of one assembly.
type run struct {
	source  string
	symbols *SymbolTable
}

// Assemble splits text into lines and assembles it.
func Assemble(text, source string) (*Program, error) {
	return NewAssembler(source).Assemble(SplitLines(text))
}

func (a *Assembler) Assemble(lines []Line) (*Program, error) {
	r := &run{source: a.source, symbols: NewSymbolTable()}
	return r.assemble(lines)
}

func (r *run) assemble(lines []Line) (*Program, error) {
	sections, err := Sectionize(lines, r.source)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("%s: %d section(s)", r.source, len(sections))

	p := &Program{
		Source:    r.source,
		Sections:  sections,
		Symbols:   r.symbols,
		SourceMap: make(map[uint32]int),
	}

	if sec, ok := sections[ReadOnly]; ok {
		if p.Allocations, err = r.parseReadOnly(sec); err != nil {
			return nil, err
		}
	}

	if sec, ok := sections[ReadWrite]; ok {
		// Read-write sections are accepted and kept in Sections; no
		// directives are defined for them, so nothing is assembled.
		glog.V(1).Infof("%s: read-write section at line %d holds %d line(s), not assembled", r.source, sec.HeaderLine, len(sec.Lines))
	}

	if sec, ok := sections[InstructionSection]; ok {
		if p.Statements, err = r.parseInstructions(sec); err != nil {
			return nil, err
		}
		if err := Link(p.Statements, r.symbols, r.source); err != nil {
			return nil, err
		}
		if p.Words, err = r.encode(p.Statements); err != nil {
			return nil, err
		}
		for _, st := range p.Statements {
			p.SourceMap[st.Address] = st.Line.Number
		}
	}

	glog.V(1).Infof("%s: %d label(s), %d allocation(s), %d instruction(s)",
		r.source, r.symbols.Len(), len(p.Allocations), len(p.Words))
	return p, nil
}

func (r *run) declare(line Line, addr uint32) error {
	name := strings.TrimSuffix(line.Text, ":")
	if err := r.symbols.Define(name, addr); err != nil {
		return err
	}
	glog.V(1).Infof("%s:%d: label %s = 0x%03X", r.source, line.Number, name, addr)
	return nil
}

func (r *run) parseReadOnly(sec Section) ([]Allocation, error) {
	var allocs []Allocation
	var words uint32

	for _, line := range sec.Lines {
		switch {
		case IsLabel(line.Text):
			if err := r.declare(line, isa.ReadOnly.Base+words); err != nil {
				return nil, atLine(err, line, r.source)
			}
		case IsBlank(line.Text) || IsComment(line.Text):
		default:
			alloc, err := ParseAllocation(strings.Fields(line.Text), words)
			if err != nil {
				return nil, atLine(err, line, r.source)
			}
			words += alloc.Size
			if words > isa.ReadOnly.Size {
				return nil, atLine(newError(KindAllocation, "insufficient read-only data memory"), line, r.source)
			}
			alloc.Line = line.Number
			allocs = append(allocs, alloc)
		}
	}
	return allocs, nil
}

func (r *run) parseInstructions(sec Section) ([]Statement, error) {
	var stmts []Statement

	for _, line := range sec.Lines {
		addr := isa.Instructions.Base + uint32(len(stmts))
		switch {
		case IsLabel(line.Text):
			if err := r.declare(line, addr); err != nil {
				return nil, atLine(err, line, r.source)
			}
		case IsBlank(line.Text) || IsComment(line.Text):
		default:
			in, err := ParseInstruction(strings.Fields(line.Text))
			if err == nil {
				err = Validate(in)
			}
			if err != nil {
				return nil, atLine(err, line, r.source)
			}
			if uint32(len(stmts)) >= isa.Instructions.Size {
				return nil, atLine(newError(KindAllocation, "insufficient instruction memory"), line, r.source)
			}
			stmts = append(stmts, Statement{Address: addr, Line: line, Instr: in})
		}
	}
	return stmts, nil
}

// encode packs every statement and checks that decoding the word gives the
// instruction back.
func (r *run) encode(stmts []Statement) ([]isa.Word, error) {
	words := make([]isa.Word, len(stmts))
	for i, st := range stmts {
		w, err := isa.Encode(st.Instr)
		if err != nil {
			return nil, atLine(newError(KindOperand, "%v", err), st.Line, r.source)
		}
		back, err := isa.Decode(w)
		if err != nil || back != st.Instr.Materialized() {
			return nil, fmt.Errorf("%s:%d: word 0x%06X does not decode to %q", r.source, st.Line.Number, uint32(w), st.Line.Text)
		}
		glog.V(2).Infof("0x%03X: 0x%06X  %s", st.Address, uint32(w), st.Line.Text)
		words[i] = w
	}
	return words, nil
}
