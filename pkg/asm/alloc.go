package asm

import (
	"errors"
	"strings"

	"github.com/grantwilk/barndles/pkg/isa"
)

// Allocation reserves Size words of read-only data starting at word Offset
// of the region, every word holding Value.
type Allocation struct {
	Offset uint32
	Size   uint32
	Value  int
	Line   int
}

// Address returns the absolute address of the first word.
func (a Allocation) Address() uint32 { return isa.ReadOnly.Base + a.Offset }

// ParseAllocation parses a read-only section directive. offset is the word
// offset the allocation starts at.
func ParseAllocation(tokens []string, offset uint32) (Allocation, error) {
	if len(tokens) == 0 {
		return Allocation{}, newError(KindAllocation, "empty allocation")
	}
	a := Allocation{Offset: offset}

	switch tokens[0] {
	case ".INT":
		if len(tokens) != 2 {
			return a, newError(KindAllocation, "invalid number of arguments for integer allocation")
		}
		v, err := allocationValue(tokens[1])
		if err != nil {
			return a, err
		}
		a.Size, a.Value = 1, v

	case ".ARR":
		if len(tokens) != 2 && len(tokens) != 3 {
			return a, newError(KindAllocation, "invalid number of arguments for array allocation")
		}
		size, err := ParseNumber(strings.TrimPrefix(tokens[1], "#"))
		if err != nil {
			return a, newError(KindAllocation, "invalid array size %q", tokens[1])
		}
		if size < 1 {
			return a, newError(KindAllocation, "invalid array size %d", size)
		}
		if size > int(isa.ReadOnly.Size) {
			return a, newError(KindAllocation, "insufficient read-only data memory")
		}
		a.Size = uint32(size)
		if len(tokens) == 3 {
			if a.Value, err = allocationValue(tokens[2]); err != nil {
				return a, err
			}
		}

	case ".STR":
		return a, newError(KindAllocation, "string allocation is not supported")

	default:
		return a, newError(KindAllocation, "invalid allocation type %q", tokens[0])
	}
	return a, nil
}

func allocationValue(token string) (int, error) {
	v, err := parseNumber(KindAllocation, "integer value", strings.TrimPrefix(token, "#"))
	if errors.Is(err, KindAllocation) {
		return 0, err
	}
	if err != nil {
		return 0, newError(KindAllocation, "invalid integer value %q", token)
	}
	if err := checkRange(KindAllocation, "integer value", v); err != nil {
		return 0, err
	}
	return v, nil
}
