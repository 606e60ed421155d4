// pkg/install/types.go
package install

import "path/filepath"

// Environment variables consulted by the locator.
const (
	// EnvSDK points at a DPDK install directory and takes precedence over
	// the interactive prompt.
	EnvSDK = "RTE_SDK"

	// EnvTarget optionally names a build subdirectory under EnvSDK.
	EnvTarget = "RTE_TARGET"
)

// ConfigHeaderName is the header that must exist under <root>/include for
// a directory to count as a DPDK installation.
const ConfigHeaderName = "rte_config.h"

// Installation is an immutable handle to a located DPDK installation.
// It is created once by the locator and never modified afterwards.
type Installation struct {
	// Root is the absolute installation path
	Root string

	// ConfigHeader is the absolute path of <Root>/include/rte_config.h
	ConfigHeader string
}

// IncludeDir returns the public header directory of the installation
func (i *Installation) IncludeDir() string {
	return filepath.Join(i.Root, "include")
}

// LibDir returns the compiled library directory of the installation
func (i *Installation) LibDir() string {
	return filepath.Join(i.Root, "lib")
}
