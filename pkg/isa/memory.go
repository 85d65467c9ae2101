package isa

// Region is a contiguous block of the word-addressed memory space.
type Region struct {
	Name string
	Base uint32
	Size uint32 // capacity in words
}

// End returns the first address past the region.
func (r Region) End() uint32 { return r.Base + r.Size }

// Contains reports whether addr falls inside r.
func (r Region) Contains(addr uint32) bool {
	return addr >= r.Base && addr < r.End()
}

var (
	RegisterFile = Region{Name: "register file", Base: 0x000, Size: 0x010}
	Stack        = Region{Name: "stack", Base: 0x010, Size: 0x1EF}
	ReadWrite    = Region{Name: "read-write data", Base: 0x200, Size: 0x1FF}
	ReadOnly     = Region{Name: "read-only data", Base: 0x400, Size: 0x1FF}
	Instructions = Region{Name: "instruction", Base: 0x600, Size: 0x9FF}
)

// MemoryMap lists the regions in address order.
var MemoryMap = []Region{RegisterFile, Stack, ReadWrite, ReadOnly, Instructions}

// Immediate bounds. The accepted literal range is [SignedImmediateMin,
// UnsignedImmediateMax].
const (
	UnsignedImmediateMin = 0
	UnsignedImmediateMax = 4095
	SignedImmediateMin   = -2048
	SignedImmediateMax   = 2047
)

// InImmediateRange reports whether v may be written as an immediate or
// allocation value.
func InImmediateRange(v int) bool {
	return v >= SignedImmediateMin && v <= UnsignedImmediateMax
}
