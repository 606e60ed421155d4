// pkg/gen/emitter.go

// Package gen drives the external binding generator and renders the
// build-linkage descriptor and driver manifest.
package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/rte-toolkit/dpdkgen/pkg/core"
	"github.com/rte-toolkit/dpdkgen/pkg/install"
)

// Emitter invokes the binding generator and renders auxiliary artifacts
type Emitter struct {
	cfg *core.Config
	log *zap.Logger
}

// NewEmitter creates an emitter
func NewEmitter(cfg *core.Config, log *zap.Logger) *Emitter {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Emitter{cfg: cfg, log: log}
}

// BindingsPath returns where the generated bindings are written
func (e *Emitter) BindingsPath() string {
	return filepath.Join(e.cfg.Output.Dir, e.cfg.Output.BindingsFile)
}

// LinkagePath returns where the build-linkage descriptor is written
func (e *Emitter) LinkagePath() string {
	return filepath.Join(e.cfg.Output.Dir, e.cfg.Output.LinkageFile)
}

// ManifestPath returns where the driver manifest is written
func (e *Emitter) ManifestPath() string {
	return filepath.Join(e.cfg.Output.Dir, e.cfg.Output.ManifestFile)
}

// Generate runs the external binding generator against umbrellaPath. The
// installation's include directory is passed as a search path, the
// configuration header is forced as an implicit macro source, and the
// configured architecture flag is appended. localInclude, when non-empty,
// is an extra include-search directory.
//
// A missing executable and a non-zero exit are distinct failures
// (core.ErrGeneratorMissing, core.ErrGeneratorFailed); partial generator
// output is never accepted.
func (e *Emitter) Generate(ctx context.Context, inst *install.Installation, umbrellaPath, localInclude string) error {
	args := []string{
		umbrellaPath,
		"--output", e.BindingsPath(),
		"--",
		"-I" + inst.IncludeDir(),
	}
	if localInclude != "" {
		args = append(args, "-I"+localInclude)
	}
	args = append(args,
		"-imacros", inst.ConfigHeader,
		"-march="+e.cfg.Generator.Arch,
	)

	e.log.Info("invoking binding generator",
		zap.String("path", e.cfg.Generator.Path),
		zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, e.cfg.Generator.Path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return &core.Error{Op: "run generator", Path: e.cfg.Generator.Path, Err: core.ErrGeneratorMissing}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = exitErr.String()
			}
			return &core.Error{
				Op:   "run generator",
				Path: e.cfg.Generator.Path,
				Err:  fmt.Errorf("%w: %s", core.ErrGeneratorFailed, msg),
			}
		}
		return &core.Error{Op: "run generator", Path: e.cfg.Generator.Path, Err: err}
	}

	return nil
}
