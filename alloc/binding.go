package alloc

import (
	"fmt"

	"github.com/gogpu/warp"
)

// AllocFunc allocates a buffer of n bytes using ctx. It returns false for
// the null buffer.
type AllocFunc[T any] func(ctx any, n int) (T, bool)

// FreeFunc releases a buffer previously returned by the paired AllocFunc.
type FreeFunc[T any] func(ctx any, buf T)

// Binding is a caller-supplied allocator: an allocate function, a
// deallocate function and the opaque context passed to both.
type Binding[T any] struct {
	Alloc   AllocFunc[T]
	Free    FreeFunc[T]
	Context any
}

// Acquire allocates n bytes and returns a handle that owns the result.
//
// Alloc and Free must be non-nil and n must be non-negative; violating
// either is a programming error and panics. A null buffer for n > 0 fails
// with an *AllocationError and Free is never called. A null buffer for
// n == 0 is not an error: the returned handle is empty and releasing it
// does nothing.
func (b Binding[T]) Acquire(n int) (*Owned[T], error) {
	if b.Alloc == nil || b.Free == nil {
		panic("alloc: Binding requires non-nil Alloc and Free functions")
	}
	if n < 0 {
		panic(fmt.Sprintf("alloc: negative buffer size %d", n))
	}

	buf, ok := b.Alloc(b.Context, n)
	if !ok {
		if n != 0 {
			warp.Logger().Warn("alloc: allocation failed", "size", n)
			return nil, &AllocationError{Size: n}
		}
		return &Owned[T]{}, nil
	}

	ctx, free := b.Context, b.Free
	warp.Logger().Debug("alloc: acquired", "size", n)
	return &Owned[T]{
		buf:   buf,
		size:  n,
		valid: true,
		free: func(v T) {
			free(ctx, v)
			warp.Logger().Debug("alloc: released", "size", n)
		},
	}, nil
}

// Acquire is shorthand for b.Acquire(n).
func Acquire[T any](b Binding[T], n int) (*Owned[T], error) {
	return b.Acquire(n)
}
