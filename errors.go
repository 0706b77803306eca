package warp

import "errors"

// Errors returned by the bounds computations. Returned errors wrap these
// sentinels with detail; test with errors.Is.
var (
	// ErrInvalidArgument is returned for an empty source size, a non-finite
	// matrix or angle, a singular matrix under DegenerateFail, or output
	// extents that do not fit in an int32.
	ErrInvalidArgument = errors.New("warp: invalid argument")
)
