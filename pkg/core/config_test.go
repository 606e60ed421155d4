package core

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "git", cfg.Acquire.Method)
	assert.Equal(t, "20.02", cfg.Acquire.Release)
	assert.Equal(t, "bindgen", cfg.Generator.Path)
	assert.Equal(t, "native", cfg.Generator.Arch)
	assert.Equal(t, "dpdk.h", cfg.Output.UmbrellaFile)
	assert.NotEmpty(t, cfg.CachePath)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
debug: true
acquire:
  method: tarball
  release: "21.11"
generator:
  arch: znver3
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "tarball", cfg.Acquire.Method)
	assert.Equal(t, "21.11", cfg.Acquire.Release)
	assert.Equal(t, "znver3", cfg.Generator.Arch)
	// untouched keys keep their defaults
	assert.Equal(t, "bindgen", cfg.Generator.Path)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Acquire, cfg.Acquire)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("DPDKGEN_GENERATOR_ARCH", "skylake")
	t.Setenv("DPDKGEN_ACQUIRE_JOBS", "4")
	t.Setenv("DPDKGEN_OUTPUT_TEMPLATE_DIR", "/opt/templates")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "skylake", cfg.Generator.Arch)
	assert.Equal(t, 4, cfg.Acquire.Jobs)
	assert.Equal(t, "/opt/templates", cfg.Output.TemplateDir)
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: [unclosed"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestErrorWrapping(t *testing.T) {
	err := &Error{Op: "locate", Path: "/nowhere", Err: ErrPathNotFound}
	assert.Equal(t, "locate /nowhere: path not found", err.Error())
	assert.True(t, errors.Is(err, ErrPathNotFound))

	bare := &Error{Op: "acquire", Err: ErrAcquisitionFailed}
	assert.Equal(t, "acquire: acquisition failed", bare.Error())
}
