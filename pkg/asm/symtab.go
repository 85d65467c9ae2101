package asm

import (
	"fmt"
	"sort"
	"strings"
)

// SymbolTable maps label names to absolute word addresses. One table is
// shared by every section of a single run.
type SymbolTable struct {
	labels map[string]uint32
	order  []string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{labels: make(map[string]uint32)}
}

// Define binds name to addr. A name may be defined only once.
func (s *SymbolTable) Define(name string, addr uint32) error {
	if _, exists := s.labels[name]; exists {
		return newError(KindLabel, "label %q defined in multiple locations", name)
	}
	s.labels[name] = addr
	s.order = append(s.order, name)
	return nil
}

// Lookup returns the address bound to name.
func (s *SymbolTable) Lookup(name string) (uint32, bool) {
	addr, ok := s.labels[name]
	return addr, ok
}

func (s *SymbolTable) Len() int { return len(s.labels) }

// Names returns the defined labels in declaration order.
func (s *SymbolTable) Names() []string {
	return append([]string(nil), s.order...)
}

// Map returns a copy of the table.
func (s *SymbolTable) Map() map[string]uint32 {
	out := make(map[string]uint32, len(s.labels))
	for k, v := range s.labels {
		out[k] = v
	}
	return out
}

// String lists the table sorted by address.
func (s *SymbolTable) String() string {
	names := s.Names()
	sort.SliceStable(names, func(i, j int) bool { return s.labels[names[i]] < s.labels[names[j]] })

	var sb strings.Builder
	if len(names) == 0 {
		sb.WriteString("Labels: (empty)\n")
		return sb.String()
	}
	sb.WriteString("Labels:\n")
	for _, n := range names {
		fmt.Fprintf(&sb, "  %-20s  0x%03X\n", n, s.labels[n])
	}
	return sb.String()
}
