package alloc

import (
	"errors"
	"fmt"
)

// ErrAllocationFailure is returned when an allocate function yields no
// buffer for a non-zero request.
var ErrAllocationFailure = errors.New("alloc: allocation failed")

// AllocationError reports a failed request together with its size.
// It unwraps to ErrAllocationFailure.
type AllocationError struct {
	Size int
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("alloc: custom allocator failed to allocate memory for buffer size %d", e.Size)
}

func (e *AllocationError) Unwrap() error {
	return ErrAllocationFailure
}
