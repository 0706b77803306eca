package alloc

import "sync/atomic"

// Owned exclusively owns a buffer obtained from a Binding.
//
// Release invokes the Binding's deallocate function exactly once; later
// calls do nothing. Call it from a deferred statement so it runs on every
// exit path. The zero Owned is an empty, already-inert handle.
type Owned[T any] struct {
	buf   T
	size  int
	valid bool
	free  func(T)
	done  atomic.Bool
}

// Value returns the owned buffer, or the zero T once released or moved.
func (o *Owned[T]) Value() T {
	return o.buf
}

// Valid reports whether o holds a non-null buffer that has not been
// released or moved.
func (o *Owned[T]) Valid() bool {
	return o != nil && o.valid && !o.done.Load()
}

// Size returns the requested size in bytes.
func (o *Owned[T]) Size() int {
	return o.size
}

// Released reports whether Release or Move has been called.
func (o *Owned[T]) Released() bool {
	return o.done.Load()
}

// Release returns the buffer to its allocator. It is safe to call more
// than once and on a nil handle; only the first call has an effect.
func (o *Owned[T]) Release() {
	if o == nil || o.done.Swap(true) {
		return
	}
	buf, free, valid := o.buf, o.free, o.valid
	o.reset()
	if valid && free != nil {
		free(buf)
	}
}

// Move transfers ownership to a new handle and leaves o inert: releasing
// o afterwards does nothing. Moving a released handle panics.
func (o *Owned[T]) Move() *Owned[T] {
	if o.done.Swap(true) {
		panic("alloc: Move of a released buffer")
	}
	moved := &Owned[T]{
		buf:   o.buf,
		size:  o.size,
		valid: o.valid,
		free:  o.free,
	}
	o.reset()
	return moved
}

func (o *Owned[T]) reset() {
	var zero T
	o.buf = zero
	o.valid = false
	o.free = nil
}
