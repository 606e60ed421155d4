// dpdkgen.go

// Package dpdkgen locates a DPDK installation (or acquires and builds
// one), discovers the compiled DPDK libraries present, synthesizes an
// umbrella C header covering the headers that are safe for direct
// inclusion and correspond to available libraries, and drives an external
// binding generator to produce language bindings plus build-linkage
// metadata.
package dpdkgen

import (
	"context"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rte-toolkit/dpdkgen/pkg/core"
	"github.com/rte-toolkit/dpdkgen/pkg/gen"
	"github.com/rte-toolkit/dpdkgen/pkg/header"
	"github.com/rte-toolkit/dpdkgen/pkg/install"
	"github.com/rte-toolkit/dpdkgen/pkg/library"
)

// Re-export stage types for convenience
type (
	Config       = core.Config
	Installation = install.Installation
	Library      = library.Library
	LibrarySet   = library.Set
	Candidate    = header.Candidate
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// LoadConfig loads configuration from a YAML file plus environment overrides
func LoadConfig(path string) (*Config, error) {
	return core.LoadConfig(path)
}

// Stage identifies how far the pipeline has progressed
type Stage string

const (
	StageStart          Stage = "START"
	StageLocated        Stage = "LOCATED"
	StageLibsScanned    Stage = "LIBS_SCANNED"
	StageHeaderResolved Stage = "HEADER_RESOLVED"
	StageBound          Stage = "BOUND"
	StageDone           Stage = "DONE"
	StageFailed         Stage = "FAILED"
)

// Result collects what a successful run produced
type Result struct {
	Installation *Installation
	Libraries    LibrarySet
	Headers      []Candidate

	UmbrellaPath string
	BindingsPath string
	LinkagePath  string
	ManifestPath string
}

// Pipeline runs the four stages in strict sequence: locate, scan
// libraries, resolve headers, emit bindings. Any stage failure aborts the
// run; there are no retries and no backward transitions.
type Pipeline struct {
	cfg   *core.Config
	log   *zap.Logger
	stage Stage

	// Stdin and Stdout, when set, replace the locator's prompt streams
	Stdin  io.Reader
	Stdout io.Writer
}

// New creates a pipeline
func New(cfg *core.Config, log *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, log: log, stage: StageStart}
}

// Stage returns the pipeline's current stage
func (p *Pipeline) Stage() Stage {
	return p.stage
}

// Run executes the pipeline
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	p.stage = StageStart

	locator := install.NewLocator(p.cfg, p.log)
	if p.Stdin != nil {
		locator.Stdin = p.Stdin
	}
	if p.Stdout != nil {
		locator.Stdout = p.Stdout
	}
	inst, err := locator.Locate(ctx)
	if err != nil {
		return nil, p.fail(err)
	}
	p.advance(StageLocated, zap.String("root", inst.Root))

	scanner := library.NewScanner(p.log)
	libs, err := scanner.Scan(inst.LibDir())
	if err != nil {
		return nil, p.fail(err)
	}
	p.advance(StageLibsScanned, zap.Int("libraries", len(libs)))

	resolver := header.NewResolver(p.log, inst.ConfigHeader, libs)
	candidates, err := resolver.Resolve(inst.IncludeDir())
	if err != nil {
		return nil, p.fail(err)
	}

	umbrellaPath := filepath.Join(p.cfg.Output.Dir, p.cfg.Output.UmbrellaFile)
	templatePath := ""
	localInclude := p.cfg.Generator.LocalInclude
	if p.cfg.Output.UmbrellaTemplate {
		templatePath = filepath.Join(p.cfg.Output.TemplateDir, p.cfg.Output.UmbrellaFile+".template")
		if localInclude == "" {
			localInclude = p.cfg.Output.Dir
		}
	}
	if err := resolver.Render(candidates, umbrellaPath, templatePath); err != nil {
		return nil, p.fail(err)
	}
	p.advance(StageHeaderResolved, zap.String("umbrella", umbrellaPath))

	emitter := gen.NewEmitter(p.cfg, p.log)
	if err := emitter.Generate(ctx, inst, umbrellaPath, localInclude); err != nil {
		return nil, p.fail(err)
	}
	p.advance(StageBound, zap.String("bindings", emitter.BindingsPath()))

	if err := emitter.RenderLinkage(libs); err != nil {
		return nil, p.fail(err)
	}
	if err := emitter.RenderManifest(libs); err != nil {
		return nil, p.fail(err)
	}
	p.advance(StageDone)

	return &Result{
		Installation: inst,
		Libraries:    libs,
		Headers:      candidates,
		UmbrellaPath: umbrellaPath,
		BindingsPath: emitter.BindingsPath(),
		LinkagePath:  emitter.LinkagePath(),
		ManifestPath: emitter.ManifestPath(),
	}, nil
}

func (p *Pipeline) advance(next Stage, fields ...zap.Field) {
	p.stage = next
	p.log.Info("stage complete", append([]zap.Field{zap.String("stage", string(next))}, fields...)...)
}

func (p *Pipeline) fail(err error) error {
	prev := p.stage
	p.stage = StageFailed
	p.log.Error("pipeline failed", zap.String("after", string(prev)), zap.Error(err))
	return err
}
