// internal/cli/libs.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rte-toolkit/dpdkgen/internal/logging"
	"github.com/rte-toolkit/dpdkgen/pkg/gen"
	"github.com/rte-toolkit/dpdkgen/pkg/install"
	"github.com/rte-toolkit/dpdkgen/pkg/library"
)

var (
	libsPath   string
	libsVerify bool
)

var libsCmd = &cobra.Command{
	Use:   "libs",
	Short: "List the compiled DPDK libraries of an installation",
	RunE:  runLibs,
}

func init() {
	libsCmd.Flags().StringVar(&libsPath, "path", "", "DPDK installation path (default $RTE_SDK)")
	libsCmd.Flags().BoolVar(&libsVerify, "verify", false, "verify static archives are well-formed")
}

// installPath resolves the inspection target without prompting
func installPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if path := os.Getenv(install.EnvSDK); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("no installation path: pass --path or set %s", install.EnvSDK)
}

func runLibs(cmd *cobra.Command, args []string) error {
	path, err := installPath(libsPath)
	if err != nil {
		return err
	}
	inst, err := install.Open(path)
	if err != nil {
		return err
	}

	logger, err := logging.New(config.Debug)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	scanner := library.NewScanner(logger)
	scanner.Verify = libsVerify
	libs, err := scanner.Scan(inst.LibDir())
	if err != nil {
		return err
	}

	for _, lib := range libs {
		kind := "shared"
		if lib.Static {
			kind = "static"
		}
		fmt.Printf("  %-40s %s\n", lib.Name, kind)
	}

	if drivers := gen.Drivers(libs); len(drivers) > 0 {
		fmt.Printf("\nDrivers: %v\n", drivers)
	}

	return nil
}
