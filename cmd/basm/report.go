package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
	"golang.org/x/term"
)

const (
	ansiRed    = "\033[1;31m"
	ansiYellow = "\033[1;33m"
	ansiGreen  = "\033[1;32m"
	ansiReset  = "\033[0m"
)

// colorEnabled reports whether output to f should carry ANSI colour.
func colorEnabled(f *os.File) bool {
	switch viper.GetString("color") {
	case "always":
		return true
	case "never":
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func paint(on bool, color, s string) string {
	if !on {
		return s
	}
	return color + s + ansiReset
}

func reportFailure(f *os.File, err error) {
	on := colorEnabled(f)
	fmt.Fprintln(f, paint(on, ansiYellow, "ASSEMBLY PROCESS FAILED!"))
	fmt.Fprintln(f, paint(on, ansiRed, err.Error()))
}

func reportSuccess(w io.Writer, on bool, ms float64) {
	fmt.Fprintln(w, paint(on, ansiGreen, "ASSEMBLY PROCESS COMPLETE!"))
	fmt.Fprintf(w, "[Finished in %.2fms]\n", ms)
}
