// Command basm assembles BARNDLES source files into memory images.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "basm",
	Short: "An assembler for the BARNDLES ASM language",
	Long: `basm assembles BARNDLES source into a big-endian memory image that can be
loaded at address 0, and can write a disassembly listing or dump of the
assembled instructions.

Flags may also be set from BASM_* environment variables (BASM_OUT_DIR,
BASM_JOBS, ...) or from a basm.yaml config file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return viper.BindPFlags(cmd.Flags())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./basm.yaml)")
	rootCmd.PersistentFlags().String("color", "auto", "colour output: auto, always or never")

	// glog registers -v, -logtostderr and friends on the go flag set.
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	rootCmd.PersistentFlags().AddFlagSet(pflag.CommandLine)
}

func initConfig() error {
	viper.SetEnvPrefix("basm")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("basm")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	glog.V(1).Infof("using config file %s", viper.ConfigFileUsed())
	return nil
}

func main() {
	// glog reads its settings from the go flag set; cobra fills it in.
	_ = flag.CommandLine.Parse(nil)

	err := rootCmd.Execute()
	glog.Flush()
	if err != nil {
		reportFailure(os.Stderr, err)
		os.Exit(1)
	}
}
