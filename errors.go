// errors.go
package dpdkgen

import "github.com/rte-toolkit/dpdkgen/pkg/core"

// Re-export the failure taxonomy so callers can match pipeline errors with
// errors.Is without importing pkg/core.
var (
	ErrPathNotFound        = core.ErrPathNotFound
	ErrConfigHeaderMissing = core.ErrConfigHeaderMissing
	ErrAcquisitionFailed   = core.ErrAcquisitionFailed
	ErrDirectoryUnreadable = core.ErrDirectoryUnreadable
	ErrNoLibraries         = core.ErrNoLibraries
	ErrGeneratorMissing    = core.ErrGeneratorMissing
	ErrGeneratorFailed     = core.ErrGeneratorFailed
	ErrTemplateMissing     = core.ErrTemplateMissing
	ErrWriteFailed         = core.ErrWriteFailed
)

// Error is the Op/Path/Err wrapper used throughout the pipeline
type Error = core.Error
