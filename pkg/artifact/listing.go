package artifact

import (
	"bufio"
	"fmt"
	"io"

	"github.com/grantwilk/barndles/pkg/asm"
	"github.com/grantwilk/barndles/pkg/isa"
)

const dumpHeader = "ADDR:\tINSTR:\t\tDIS-ASM:\n"

// WriteDisassembly writes one disassembled instruction per line.
func WriteDisassembly(w io.Writer, words []isa.Word) error {
	lines, err := asm.DisassembleAll(words)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := fmt.Fprintln(bw, l); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteDump writes an address, raw word and disassembly table of words,
// which are placed from the start of instruction memory.
func WriteDump(w io.Writer, words []isa.Word) error {
	lines, err := asm.DisassembleAll(words)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(dumpHeader)
	for i, l := range lines {
		fmt.Fprintf(bw, "0x%03X:\t0x%06X   ->\t%s\n", instrBase+i, uint32(words[i]), l)
	}
	return bw.Flush()
}
