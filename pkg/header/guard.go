// pkg/header/guard.go
package header

import (
	"bufio"
	"os"
	"strings"
)

// EligibleForDirectInclusion reports whether the header at path may be
// included directly. DPDK headers that must only be reached through
// another header carry a preprocessor guard along the lines of
//
//	#error "do not include this header directly"
//
// The check is a line-oriented substring heuristic, not a preprocessor:
// each line that starts with #error is lower-cased and tested for the
// joint presence of "do not", "include" and "directly". The first such
// line disqualifies the header; a header without one is eligible.
// Multi-line or reworded guard phrasing is not detected; that is an
// accepted limitation of the heuristic.
func EligibleForDirectInclusion(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if !strings.HasPrefix(line, "#error") {
			continue
		}
		if strings.Contains(line, "do not") &&
			strings.Contains(line, "include") &&
			strings.Contains(line, "directly") {
			return false, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return true, nil
}
