// pkg/library/types.go
package library

import "strings"

// Prefix is the conventional filename prefix of DPDK libraries
// (librte_ethdev.a, librte_pmd_e1000.so, ...).
const Prefix = "librte_"

// Library is one compiled DPDK library discovered in the installation
type Library struct {
	// Name is the canonical name, the filename minus the "lib" prefix and
	// the extension (librte_ethdev.a -> rte_ethdev)
	Name string

	// Path is the library file location
	Path string

	// Static reports whether Path is a static archive (.a)
	Static bool
}

// Set is the scanner output: libraries sorted lexicographically by
// canonical name, one entry per name.
type Set []Library

// Names returns the canonical names in set order
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, lib := range s {
		names[i] = lib.Name
	}
	return names
}

// Contains reports whether name is a canonical name in the set
func (s Set) Contains(name string) bool {
	for _, lib := range s {
		if lib.Name == name {
			return true
		}
	}
	return false
}

// CanonicalName extracts the canonical library name from a filename of the
// form lib<name>.a or lib<name>.so. The second return value reports
// whether the filename had that form.
func CanonicalName(filename string) (string, bool) {
	rest, ok := strings.CutPrefix(filename, "lib")
	if !ok {
		return "", false
	}
	for _, ext := range []string{".a", ".so"} {
		if name, ok := strings.CutSuffix(rest, ext); ok && name != "" {
			return name, true
		}
	}
	return "", false
}
