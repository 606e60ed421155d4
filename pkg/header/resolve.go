// pkg/header/resolve.go

// Package header selects the DPDK public headers that go into the
// generated umbrella header and renders it.
package header

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/rte-toolkit/dpdkgen/pkg/core"
	"github.com/rte-toolkit/dpdkgen/pkg/library"
)

// stemBlocklist names headers that are never included even when they pass
// the other filters.
var stemBlocklist = map[string]struct{}{
	// versioning macros only make sense inside the DPDK build itself
	"rte_function_versioning": {},
}

// Candidate is a public header tagged with the two selection outcomes
type Candidate struct {
	// Path is the header location
	Path string

	// Eligible reports that the header carries no direct-inclusion guard
	Eligible bool

	// HasLibrary reports that the filename stem matches a canonical
	// library name
	HasLibrary bool
}

// Name returns the header's base filename
func (c Candidate) Name() string {
	return filepath.Base(c.Path)
}

// Include reports whether the candidate survives into the umbrella header
func (c Candidate) Include() bool {
	return c.Eligible && c.HasLibrary
}

// Resolver produces the ordered list of headers for the umbrella header
type Resolver struct {
	log *zap.Logger

	// configHeader is excluded by identity: it is injected separately as
	// a forced macro file and must never appear in the umbrella header
	configHeader string

	libs library.Set
}

// NewResolver creates a resolver. configHeader is the installation's
// rte_config.h path; libs is the scanner output used for correlation.
func NewResolver(log *zap.Logger, configHeader string, libs library.Set) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		log:          log,
		configHeader: filepath.Clean(configHeader),
		libs:         libs,
	}
}

// Resolve enumerates the *.h files directly under includeDir and returns
// every candidate with its selection flags, sorted by filename.
func (r *Resolver) Resolve(includeDir string) ([]Candidate, error) {
	entries, err := os.ReadDir(includeDir)
	if err != nil {
		return nil, &core.Error{Op: "scan headers", Path: includeDir, Err: core.ErrDirectoryUnreadable}
	}

	var candidates []Candidate
	for _, entry := range entries {
		name := entry.Name()
		if filepath.Ext(name) != ".h" {
			continue
		}

		path := filepath.Join(includeDir, name)
		// Stat follows symlinks; legacy make builds populate build/include
		// with links into the source tree.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if filepath.Clean(path) == r.configHeader {
			continue
		}

		stem := strings.TrimSuffix(name, ".h")
		if _, blocked := stemBlocklist[stem]; blocked {
			continue
		}

		eligible, err := EligibleForDirectInclusion(path)
		if err != nil {
			return nil, &core.Error{Op: "scan headers", Path: path, Err: err}
		}

		candidates = append(candidates, Candidate{
			Path:       path,
			Eligible:   eligible,
			HasLibrary: r.libs.Contains(stem),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Name() < candidates[j].Name()
	})

	included := 0
	for _, c := range candidates {
		if c.Include() {
			included++
		}
	}
	r.log.Info("resolved headers",
		zap.String("dir", includeDir),
		zap.Int("candidates", len(candidates)),
		zap.Int("included", included))

	return candidates, nil
}

// Selected filters candidates down to the ones that survive into the
// umbrella header, preserving order.
func Selected(candidates []Candidate) []Candidate {
	var out []Candidate
	for _, c := range candidates {
		if c.Include() {
			out = append(out, c)
		}
	}
	return out
}
