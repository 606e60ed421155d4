// pkg/core/errors.go
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrPathNotFound indicates the resolved installation path does not exist
	ErrPathNotFound = errors.New("path not found")

	// ErrConfigHeaderMissing indicates include/rte_config.h is absent
	ErrConfigHeaderMissing = errors.New("configuration header not found")

	// ErrAcquisitionFailed indicates the automatic clone/download/build failed
	ErrAcquisitionFailed = errors.New("acquisition failed")

	// ErrDirectoryUnreadable indicates a library or header directory could not be read
	ErrDirectoryUnreadable = errors.New("directory unreadable")

	// ErrNoLibraries indicates the library directory held no matching libraries
	ErrNoLibraries = errors.New("no libraries found")

	// ErrGeneratorMissing indicates the binding generator executable was not found
	ErrGeneratorMissing = errors.New("generator executable missing")

	// ErrGeneratorFailed indicates the binding generator exited non-zero
	ErrGeneratorFailed = errors.New("generator exited non-zero")

	// ErrTemplateMissing indicates a required template file is absent
	ErrTemplateMissing = errors.New("template missing")

	// ErrWriteFailed indicates a generated artifact could not be written
	ErrWriteFailed = errors.New("write failed")
)

// Error wraps an error with the operation and path it concerns
type Error struct {
	Op   string // Operation that failed
	Path string // Filesystem path if applicable
	Err  error  // Underlying error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
