// Package artifact writes and reads the files produced from an assembled
// program.
package artifact

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/grantwilk/barndles/pkg/isa"
)

var (
	instrBase     = int(isa.Instructions.Base)
	instrCapacity = int(isa.Instructions.Size)

	// ImageWords is the length of a binary image in words: everything below
	// the instruction region plus the full instruction region.
	ImageWords = instrBase + instrCapacity
)

var ErrImageSize = errors.New("artifact: bad image size")

// WriteBinary writes a memory image of big-endian 32-bit words. Words below
// the instruction region are zero, the program follows at 0x600, and the
// rest of instruction memory is zero-filled.
func WriteBinary(w io.Writer, words []isa.Word) error {
	if len(words) > instrCapacity {
		return fmt.Errorf("%w: %d instructions exceed capacity 0x%X", ErrImageSize, len(words), instrCapacity)
	}

	bw := bufio.NewWriter(w)
	var buf [4]byte
	put := func(v uint32) error {
		binary.BigEndian.PutUint32(buf[:], v)
		_, err := bw.Write(buf[:])
		return err
	}

	for i := 0; i < instrBase; i++ {
		if err := put(0); err != nil {
			return err
		}
	}
	for _, word := range words {
		if err := put(uint32(word)); err != nil {
			return err
		}
	}
	for i := len(words); i < instrCapacity; i++ {
		if err := put(0); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadBinary reads an image written by WriteBinary and returns its whole
// instruction region, trailing zero words included.
func ReadBinary(r io.Reader) ([]isa.Word, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) != ImageWords*4 {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrImageSize, len(data), ImageWords*4)
	}

	words := make([]isa.Word, instrCapacity)
	region := data[instrBase*4:]
	for i := range words {
		v := binary.BigEndian.Uint32(region[i*4:])
		if v&^uint32(isa.WordMask) != 0 {
			return nil, fmt.Errorf("word at 0x%03X: %w", instrBase+i, isa.ErrWordRange)
		}
		words[i] = isa.Word(v)
	}
	return words, nil
}

// TrimTrailing drops zero (DON) words from the end of words.
func TrimTrailing(words []isa.Word) []isa.Word {
	n := len(words)
	for n > 0 && words[n-1] == 0 {
		n--
	}
	return words[:n]
}
