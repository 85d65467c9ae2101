package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/grantwilk/barndles/pkg/artifact"
	"github.com/grantwilk/barndles/pkg/asm"
	"github.com/grantwilk/barndles/pkg/utils"
)

var assembleCmd = &cobra.Command{
	Use:     "assemble SOURCE...",
	Aliases: []string{"asm"},
	Short:   "Assemble one or more BARNDLES source files",
	Long: `Assemble runs the two-pass assembler over each source file. Files are
independent and are assembled in parallel, up to --jobs at a time; the first
failure stops the run.

Output paths are derived from each source path by swapping its extension
(.bin for the image, .dsm for the disassembly), optionally under --out-dir.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := assembleOptions{
			outDir:  viper.GetString("out-dir"),
			bin:     viper.GetBool("bin"),
			dsm:     viper.GetBool("dsm"),
			dump:    viper.GetBool("dump"),
			inspect: viper.GetBool("inspect"),
			color:   colorEnabled(os.Stdout),
		}
		return runAssemble(cmd.Context(), cmd.OutOrStdout(), args, viper.GetInt("jobs"), opts)
	},
}

func init() {
	f := assembleCmd.Flags()
	f.String("out-dir", "", "directory for output files (default: next to each source)")
	f.Bool("bin", true, "write the binary memory image")
	f.Bool("dsm", false, "write a disassembly listing")
	f.Bool("dump", false, "print an address/word/disassembly dump after assembly")
	f.Bool("inspect", false, "pretty-print the symbol table and allocations")
	f.IntP("jobs", "j", 4, "number of files to assemble at once")
	rootCmd.AddCommand(assembleCmd)
}

type assembleOptions struct {
	outDir  string
	bin     bool
	dsm     bool
	dump    bool
	inspect bool
	color   bool
}

// runAssemble assembles every source and prints each file's report in
// argument order once all of them have finished.
func runAssemble(ctx context.Context, out io.Writer, sources []string, jobs int, opts assembleOptions) error {
	if jobs < 1 {
		jobs = 1
	}
	reports := make([]bytes.Buffer, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return assembleFile(&reports[i], src, opts)
		})
	}
	err := g.Wait()

	for i := range reports {
		if _, werr := reports[i].WriteTo(out); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

func assembleFile(w io.Writer, src string, opts assembleOptions) error {
	start := time.Now()
	full, dir, err := utils.GetPathInfo(src)
	if err != nil {
		return fmt.Errorf("no such file: %w", err)
	}
	fmt.Fprintf(w, "Source File: %s\n", full)
	outDir := opts.outDir
	if outDir == "" {
		outDir = dir
	}

	text, err := utils.ReadSource(full)
	if err != nil {
		return err
	}
	glog.V(1).Infof("assembling %s (%d bytes)", src, len(text))

	p, err := asm.Assemble(text, src)
	if err != nil {
		return err
	}

	if opts.dump {
		fmt.Fprintln(w, "Dumping Assembled Instructions:")
		if err := artifact.WriteDump(w, p.Words); err != nil {
			return err
		}
	}

	if opts.inspect {
		printer := pp.New()
		printer.SetOutput(w)
		printer.SetColoringEnabled(opts.color)
		printer.Println(struct {
			Symbols     map[string]uint32
			Allocations []asm.Allocation
		}{p.Symbols.Map(), p.Allocations})
	}

	if opts.bin {
		path := utils.DefaultOutputPath(full, outDir, ".bin")
		if err := utils.WriteFile(path, func(w io.Writer) error { return artifact.WriteBinary(w, p.Words) }); err != nil {
			return err
		}
		fmt.Fprintf(w, "Output Binary: %s\n", path)
	}

	if opts.dsm {
		path := utils.DefaultOutputPath(full, outDir, ".dsm")
		if err := utils.WriteFile(path, func(w io.Writer) error { return artifact.WriteDisassembly(w, p.Words) }); err != nil {
			return err
		}
		fmt.Fprintf(w, "Output Disassembly: %s\n", path)
	}

	glog.Infof("%s: %d instruction(s), %d label(s)", src, len(p.Words), p.Symbols.Len())
	reportSuccess(w, opts.color, float64(time.Since(start).Microseconds())/1000)
	return nil
}
