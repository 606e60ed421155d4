// pkg/library/archive.go
package library

import (
	"os"

	"github.com/blakesmith/ar"
)

// validArchive reports whether path is a readable ar archive with at least
// one entry header.
func validArchive(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	reader := ar.NewReader(f)
	_, err = reader.Next()
	return err == nil
}
