package alloc

// Allocator is an allocator object that owns its own state.
//
// Allocate returns false for the null buffer. Deallocate receives only
// buffers returned by Allocate.
type Allocator[T any] interface {
	Allocate(n int) (T, bool)
	Deallocate(buf T)
}

// Bind adapts a to a Binding. The allocator travels as the Binding
// context, so the functions themselves carry no state.
func Bind[T any](a Allocator[T]) Binding[T] {
	if a == nil {
		panic("alloc: Bind of nil Allocator")
	}
	return Binding[T]{
		Alloc: func(ctx any, n int) (T, bool) {
			return ctx.(Allocator[T]).Allocate(n)
		},
		Free: func(ctx any, buf T) {
			ctx.(Allocator[T]).Deallocate(buf)
		},
		Context: a,
	}
}
