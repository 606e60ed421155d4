// pkg/library/scan.go
package library

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/rte-toolkit/dpdkgen/pkg/core"
)

// namePattern matches the filenames the scanner considers: the
// conventional prefix plus a static-archive or shared-object suffix.
const namePattern = Prefix + "*.{a,so}"

// Scanner enumerates compiled DPDK libraries
type Scanner struct {
	log *zap.Logger

	// Verify additionally opens static archives and skips files that are
	// not well-formed ar archives
	Verify bool
}

// NewScanner creates a library scanner
func NewScanner(log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{log: log}
}

// Scan enumerates dir and returns the sorted, de-duplicated set of
// canonical library names found there. Duplicate names (a library present
// both as .a and .so) collapse to one entry, preferring the static
// archive.
func (s *Scanner) Scan(dir string) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &core.Error{Op: "scan libraries", Path: dir, Err: core.ErrDirectoryUnreadable}
	}

	byName := make(map[string]Library)
	for _, entry := range entries {
		filename := entry.Name()

		matched, err := doublestar.Match(namePattern, filename)
		if err != nil || !matched {
			continue
		}

		name, ok := CanonicalName(filename)
		if !ok {
			continue
		}

		path := filepath.Join(dir, filename)
		// Stat follows symlinks; build trees commonly link libraries into
		// place rather than copying them.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		lib := Library{
			Name:   name,
			Path:   path,
			Static: strings.HasSuffix(filename, ".a"),
		}

		if lib.Static && s.Verify && !validArchive(lib.Path) {
			s.log.Warn("skipping malformed static archive", zap.String("path", lib.Path))
			continue
		}

		if prev, ok := byName[name]; ok && prev.Static {
			continue
		}
		byName[name] = lib
	}

	if len(byName) == 0 {
		return nil, &core.Error{Op: "scan libraries", Path: dir, Err: core.ErrNoLibraries}
	}

	set := make(Set, 0, len(byName))
	for _, lib := range byName {
		set = append(set, lib)
	}
	sort.Slice(set, func(i, j int) bool { return set[i].Name < set[j].Name })

	s.log.Info("scanned libraries", zap.String("dir", dir), zap.Int("count", len(set)))
	return set, nil
}
