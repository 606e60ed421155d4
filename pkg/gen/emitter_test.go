package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rte-toolkit/dpdkgen/pkg/core"
	"github.com/rte-toolkit/dpdkgen/pkg/install"
	"github.com/rte-toolkit/dpdkgen/pkg/library"
)

func testConfig(t *testing.T) *core.Config {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Output.Dir = t.TempDir()
	cfg.Output.TemplateDir = t.TempDir()
	return cfg
}

func testInstallation(t *testing.T) *install.Installation {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "include"), 0755))
	configHeader := filepath.Join(root, "include", "rte_config.h")
	require.NoError(t, os.WriteFile(configHeader, []byte("#define RTE_CONFIG 1\n"), 0644))
	return &install.Installation{Root: root, ConfigHeader: configHeader}
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0755))
	return path
}

func TestGenerateArgs(t *testing.T) {
	cfg := testConfig(t)
	inst := testInstallation(t)

	argsFile := filepath.Join(t.TempDir(), "args")
	cfg.Generator.Path = writeScript(t, t.TempDir(), "bindgen",
		fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$@\" > %s\nexit 0\n", argsFile))

	umbrella := filepath.Join(cfg.Output.Dir, "dpdk.h")
	emitter := NewEmitter(cfg, nil)
	require.NoError(t, emitter.Generate(context.Background(), inst, umbrella, ""))

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	args := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{
		umbrella,
		"--output", emitter.BindingsPath(),
		"--",
		"-I" + inst.IncludeDir(),
		"-imacros", inst.ConfigHeader,
		"-march=native",
	}, args)
}

func TestGenerateLocalInclude(t *testing.T) {
	cfg := testConfig(t)
	inst := testInstallation(t)

	argsFile := filepath.Join(t.TempDir(), "args")
	cfg.Generator.Path = writeScript(t, t.TempDir(), "bindgen",
		fmt.Sprintf("#!/bin/sh\nprintf '%%s\\n' \"$@\" > %s\nexit 0\n", argsFile))

	local := t.TempDir()
	emitter := NewEmitter(cfg, nil)
	require.NoError(t, emitter.Generate(context.Background(), inst, "dpdk.h", local))

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, strings.Split(strings.TrimSpace(string(data)), "\n"), "-I"+local)
}

func TestGenerateMissingExecutable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Generator.Path = filepath.Join(t.TempDir(), "no-such-generator")

	err := NewEmitter(cfg, nil).Generate(context.Background(), testInstallation(t), "dpdk.h", "")
	assert.ErrorIs(t, err, core.ErrGeneratorMissing)
}

func TestGenerateNonZeroExit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Generator.Path = writeScript(t, t.TempDir(), "bindgen",
		"#!/bin/sh\necho 'parse failure' >&2\nexit 3\n")

	err := NewEmitter(cfg, nil).Generate(context.Background(), testInstallation(t), "dpdk.h", "")
	assert.ErrorIs(t, err, core.ErrGeneratorFailed)
	assert.Contains(t, err.Error(), "parse failure")
}

func TestRenderLinkage(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.Output.TemplateDir, "link.rs.template"),
		[]byte("static LIBS: &[&str] = &[\n%library_list%];\n"), 0644))

	libs := library.Set{{Name: "rte_ethdev"}, {Name: "rte_pmd_e1000"}}
	emitter := NewEmitter(cfg, nil)
	require.NoError(t, emitter.RenderLinkage(libs))

	data, err := os.ReadFile(emitter.LinkagePath())
	require.NoError(t, err)
	assert.Equal(t,
		"static LIBS: &[&str] = &[\n\"rte_ethdev\",\n\"rte_pmd_e1000\",\n];\n",
		string(data))
}

func TestRenderLinkageMissingTemplate(t *testing.T) {
	cfg := testConfig(t)
	emitter := NewEmitter(cfg, nil)

	err := emitter.RenderLinkage(library.Set{{Name: "rte_eal"}})
	assert.ErrorIs(t, err, core.ErrTemplateMissing)

	_, statErr := os.Stat(emitter.LinkagePath())
	assert.True(t, os.IsNotExist(statErr), "no partial descriptor on failure")
}

func TestDrivers(t *testing.T) {
	libs := library.Set{
		{Name: "rte_eal"},
		{Name: "rte_ethdev"},
		{Name: "rte_pmd_e1000"},
		{Name: "rte_pmd_virtio"},
	}
	assert.Equal(t, []string{"e1000", "virtio"}, Drivers(libs))
	assert.Empty(t, Drivers(library.Set{{Name: "rte_eal"}}))
}

func TestRenderManifest(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.Output.TemplateDir, "pmds.rs.template"),
		[]byte("static PMDS: &[&str] = &[\n%pmd_list%];\n"), 0644))

	libs := library.Set{{Name: "rte_ethdev"}, {Name: "rte_pmd_e1000"}}
	emitter := NewEmitter(cfg, nil)
	require.NoError(t, emitter.RenderManifest(libs))

	data, err := os.ReadFile(emitter.ManifestPath())
	require.NoError(t, err)
	assert.Equal(t, "static PMDS: &[&str] = &[\n\"e1000\",\n];\n", string(data))
}
