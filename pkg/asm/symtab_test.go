package asm

import (
	"errors"
	"reflect"
	"testing"
)

func TestSymbolTable(t *testing.T) {
	s := NewSymbolTable()
	if s.String() != "Labels: (empty)\n" {
		t.Errorf("empty String() = %q", s.String())
	}

	defs := []struct {
		name string
		addr uint32
	}{
		{"MAIN", 0x600},
		{"TABLE", 0x400},
		{"LOOP", 0x604},
	}
	for _, d := range defs {
		if err := s.Define(d.name, d.addr); err != nil {
			t.Fatalf("Define(%q): %v", d.name, err)
		}
	}

	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if got, want := s.Names(), []string{"MAIN", "TABLE", "LOOP"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if addr, ok := s.Lookup("LOOP"); !ok || addr != 0x604 {
		t.Errorf("Lookup(LOOP) = 0x%X, %v", addr, ok)
	}
	if _, ok := s.Lookup("loop"); ok {
		t.Error("Lookup is case-insensitive")
	}

	err := s.Define("MAIN", 0x700)
	if !errors.Is(err, KindLabel) {
		t.Fatalf("redefining MAIN: %v, want label error", err)
	}
	if addr, _ := s.Lookup("MAIN"); addr != 0x600 {
		t.Errorf("redefinition changed MAIN to 0x%X", addr)
	}

	m := s.Map()
	m["MAIN"] = 0
	if addr, _ := s.Lookup("MAIN"); addr != 0x600 {
		t.Error("Map() shares storage with the table")
	}

	want := "Labels:\n" +
		"  TABLE                 0x400\n" +
		"  MAIN                  0x600\n" +
		"  LOOP                  0x604\n"
	if got := s.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}
