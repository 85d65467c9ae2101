package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/grantwilk/barndles/pkg/artifact"
	"github.com/grantwilk/barndles/pkg/utils"
)

var disassembleCmd = &cobra.Command{
	Use:     "disassemble IMAGE",
	Aliases: []string{"dis"},
	Short:   "Disassemble the instruction region of a binary image",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		all, _ := f.GetBool("all")
		dump, _ := f.GetBool("dump")
		output, _ := f.GetString("output")
		return runDisassemble(cmd.OutOrStdout(), args[0], output, all, dump)
	},
}

func init() {
	f := disassembleCmd.Flags()
	f.StringP("output", "o", "", "write the listing to a file instead of stdout")
	f.Bool("all", false, "include trailing DON words")
	f.Bool("dump", false, "print addresses and raw words alongside the disassembly")
	rootCmd.AddCommand(disassembleCmd)
}

func runDisassemble(out io.Writer, image, output string, all, dump bool) error {
	f, err := os.Open(image)
	if err != nil {
		return err
	}
	defer f.Close()

	words, err := artifact.ReadBinary(f)
	if err != nil {
		return fmt.Errorf("%s: %w", image, err)
	}
	if !all {
		words = artifact.TrimTrailing(words)
	}

	write := func(w io.Writer) error {
		if dump {
			return artifact.WriteDump(w, words)
		}
		return artifact.WriteDisassembly(w, words)
	}
	if output == "" {
		return write(out)
	}
	return utils.WriteFile(output, write)
}
