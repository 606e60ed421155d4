// internal/cli/headers.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rte-toolkit/dpdkgen/internal/logging"
	"github.com/rte-toolkit/dpdkgen/pkg/header"
	"github.com/rte-toolkit/dpdkgen/pkg/install"
	"github.com/rte-toolkit/dpdkgen/pkg/library"
)

var (
	headersPath string
	headersAll  bool
)

var headersCmd = &cobra.Command{
	Use:   "headers",
	Short: "Show which public headers would enter the umbrella header",
	RunE:  runHeaders,
}

func init() {
	headersCmd.Flags().StringVar(&headersPath, "path", "", "DPDK installation path (default $RTE_SDK)")
	headersCmd.Flags().BoolVar(&headersAll, "all", false, "also show excluded headers with their exclusion reason")
}

func runHeaders(cmd *cobra.Command, args []string) error {
	path, err := installPath(headersPath)
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
	libs, err := scanner.Scan(inst.LibDir())
	if err != nil {
		return err
	}

	resolver := header.NewResolver(logger, inst.ConfigHeader, libs)
	candidates, err := resolver.Resolve(inst.IncludeDir())
	if err != nil {
		return err
	}

	for _, c := range candidates {
		if c.Include() {
			fmt.Printf("  included  %s\n", c.Name())
			continue
		}
		if !headersAll {
			continue
		}
		reason := "no matching library"
		if !c.Eligible {
			reason = "direct-inclusion guard"
		}
		fmt.Printf("  excluded  %-40s (%s)\n", c.Name(), reason)
	}

	return nil
}
