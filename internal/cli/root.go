// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rte-toolkit/dpdkgen/pkg/core"
)

var (
	cfgFile string
	debug   bool
	config  *core.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dpdkgen",
	Short: "DPDK binding generation pipeline",
	Long: `dpdkgen - DPDK binding generation pipeline

Locates a DPDK installation (or clones and builds one), scans its compiled
libraries, synthesizes an umbrella header of the safely includable headers,
and drives an external binding generator to produce language bindings and
build-linkage metadata.

The installation path is taken from the RTE_SDK environment variable; when
it is unset, the generate command prompts for a path, and an empty answer
triggers the automatic acquisition fallback.`,
	Version: "0.1.0",
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/dpdkgen/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(libsCmd)
	rootCmd.AddCommand(headersCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	if debug {
		config.Debug = true
	}
}
