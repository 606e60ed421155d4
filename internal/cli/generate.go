// internal/cli/generate.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rte-toolkit/dpdkgen"
	"github.com/rte-toolkit/dpdkgen/internal/logging"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the full binding-generation pipeline",
	Long: `Run the full pipeline: locate the DPDK installation, scan its
libraries, resolve and render the umbrella header, invoke the binding
generator, and render the linkage descriptor and driver manifest.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(config.Debug)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	pipeline := dpdkgen.New(config, logger)
	result, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	included := 0
	for _, c := range result.Headers {
		if c.Include() {
			included++
		}
	}

	fmt.Printf("DPDK installation: %s\n", result.Installation.Root)
	fmt.Printf("Libraries:         %d\n", len(result.Libraries))
	fmt.Printf("Headers included:  %d of %d candidates\n", included, len(result.Headers))
	fmt.Printf("\nArtifacts:\n")
	fmt.Printf("  %s\n", result.UmbrellaPath)
	fmt.Printf("  %s\n", result.BindingsPath)
	fmt.Printf("  %s\n", result.LinkagePath)
	fmt.Printf("  %s\n", result.ManifestPath)

	return nil
}
