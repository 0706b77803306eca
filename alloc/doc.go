// Package alloc turns caller-supplied allocate/deallocate functions into
// buffer handles that release exactly once.
//
// A [Binding] pairs an allocate function, a deallocate function and an
// opaque context, the way C imaging libraries accept custom allocators.
// [Binding.Acquire] calls the allocate function and wraps the result in an
// [Owned] handle whose Release runs the deallocate function once:
//
//	buf, err := binding.Acquire(size)
//	if err != nil {
//	    return err // errors.Is(err, alloc.ErrAllocationFailure)
//	}
//	defer buf.Release()
//
// Types that already know how to allocate implement [Allocator] and are
// adapted with [Bind]. [Heap] and [Pool] are ready allocators for Go
// memory; package alloc/device allocates GPU buffers.
//
// # Concurrency
//
// Acquire adds no synchronization of its own: concurrent calls on one
// Binding are exactly as safe as its allocate and deallocate functions.
// Heap and Pool are safe for concurrent use. An Owned handle has a single
// owner; hand it to another owner with [Owned.Move].
package alloc
