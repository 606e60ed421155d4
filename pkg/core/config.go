// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. DPDKGEN_CACHE_PATH, DPDKGEN_GENERATOR_PATH.
const EnvPrefix = "dpdkgen"

// Config holds dpdkgen configuration
type Config struct {
	// CachePath is where cloned sources and downloaded archives live
	CachePath string `yaml:"cache_path" split_words:"true"`

	// Debug enables debug logging
	Debug bool `yaml:"debug"`

	Acquire   AcquireConfig   `yaml:"acquire"`
	Generator GeneratorConfig `yaml:"generator"`
	Output    OutputConfig    `yaml:"output"`
}

// AcquireConfig controls the automatic DPDK acquisition fallback
type AcquireConfig struct {
	// Method is "git" (clone and build) or "tarball" (download release and build)
	Method string `yaml:"method"`

	// RepoURL is the DPDK git repository
	RepoURL string `yaml:"repo_url" split_words:"true"`

	// Release is the DPDK release to acquire, e.g. "20.02" (git tag v<Release>)
	Release string `yaml:"release"`

	// MirrorURL is the base URL for release tarballs
	MirrorURL string `yaml:"mirror_url" split_words:"true"`

	// Jobs is the build parallelism; 0 means NumCPU
	Jobs int `yaml:"jobs"`
}

// GeneratorConfig controls the external binding generator invocation
type GeneratorConfig struct {
	// Path is the generator executable (looked up on PATH if bare)
	Path string `yaml:"path"`

	// Arch is the -march value handed to the generator's compiler args
	Arch string `yaml:"arch"`

	// LocalInclude is an extra include-search directory for local wrapper headers
	LocalInclude string `yaml:"local_include" split_words:"true"`
}

// OutputConfig controls where artifacts are written and how they are rendered
type OutputConfig struct {
	// Dir is the directory generated artifacts are written to
	Dir string `yaml:"dir"`

	// TemplateDir holds the *.template files
	TemplateDir string `yaml:"template_dir" split_words:"true"`

	// UmbrellaTemplate switches the umbrella header from a flat include
	// listing to rendering through dpdk.h.template
	UmbrellaTemplate bool `yaml:"umbrella_template" split_words:"true"`

	// Artifact filenames
	UmbrellaFile string `yaml:"umbrella_file" split_words:"true"`
	BindingsFile string `yaml:"bindings_file" split_words:"true"`
	LinkageFile  string `yaml:"linkage_file" split_words:"true"`
	ManifestFile string `yaml:"manifest_file" split_words:"true"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	cachePath := filepath.Join(homeDir, ".cache", "dpdkgen")
	if homeDir == "" {
		cachePath = filepath.Join(os.TempDir(), "dpdkgen")
	}

	return &Config{
		CachePath: cachePath,
		Debug:     false,
		Acquire: AcquireConfig{
			Method:    "git",
			RepoURL:   "https://github.com/DPDK/dpdk.git",
			Release:   "20.02",
			MirrorURL: "https://fast.dpdk.org/rel",
			Jobs:      0,
		},
		Generator: GeneratorConfig{
			Path: "bindgen",
			Arch: "native",
		},
		Output: OutputConfig{
			Dir:          ".",
			TemplateDir:  "gen",
			UmbrellaFile: "dpdk.h",
			BindingsFile: "dpdk.rs",
			LinkageFile:  "link.rs",
			ManifestFile: "pmds.rs",
		},
	}
}

// LoadConfig loads configuration from a YAML file, then applies
// DPDKGEN_* environment overrides on top
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".config", "dpdkgen", "config.yaml")
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("processing environment overrides: %w", err)
	}

	return cfg, nil
}
