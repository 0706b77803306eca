package alloc

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCtx records calls made through a Binding.
type countingCtx struct {
	allocs atomic.Int32
	frees  atomic.Int32
	freed  [][]byte
	fail   bool
}

func countingBinding(ctx *countingCtx) Binding[[]byte] {
	return Binding[[]byte]{
		Alloc: func(c any, n int) ([]byte, bool) {
			cc := c.(*countingCtx)
			cc.allocs.Add(1)
			if cc.fail || n == 0 {
				return nil, false
			}
			return make([]byte, n), true
		},
		Free: func(c any, buf []byte) {
			cc := c.(*countingCtx)
			cc.frees.Add(1)
			cc.freed = append(cc.freed, buf)
		},
		Context: ctx,
	}
}

func TestAcquire_ReleasesExactlyOnce(t *testing.T) {
	ctx := &countingCtx{}
	b := countingBinding(ctx)

	buf, err := b.Acquire(64)
	require.NoError(t, err)
	require.True(t, buf.Valid())
	assert.Len(t, buf.Value(), 64)
	assert.Equal(t, 64, buf.Size())
	assert.Equal(t, int32(0), ctx.frees.Load(), "nothing released before Release")

	data := buf.Value()
	buf.Release()
	buf.Release()
	buf.Release()

	assert.Equal(t, int32(1), ctx.allocs.Load())
	assert.Equal(t, int32(1), ctx.frees.Load(), "deallocate must run exactly once")
	require.Len(t, ctx.freed, 1)
	assert.Same(t, &data[0], &ctx.freed[0][0], "deallocate receives the allocated buffer")
	assert.True(t, buf.Released())
	assert.False(t, buf.Valid())
	assert.Nil(t, buf.Value())
}

func TestAcquire_FailureNeverReleases(t *testing.T) {
	ctx := &countingCtx{fail: true}
	b := countingBinding(ctx)

	buf, err := b.Acquire(128)
	require.Error(t, err)
	assert.Nil(t, buf)
	assert.True(t, errors.Is(err, ErrAllocationFailure))

	var allocErr *AllocationError
	require.True(t, errors.As(err, &allocErr))
	assert.Equal(t, 128, allocErr.Size)
	assert.Contains(t, err.Error(), "128")

	assert.Equal(t, int32(1), ctx.allocs.Load())
	assert.Equal(t, int32(0), ctx.frees.Load())
}

func TestAcquire_ZeroSizeNullIsNotAnError(t *testing.T) {
	ctx := &countingCtx{fail: true}
	b := countingBinding(ctx)

	buf, err := b.Acquire(0)
	require.NoError(t, err)
	require.NotNil(t, buf)
	assert.False(t, buf.Valid())
	assert.Equal(t, 0, buf.Size())

	buf.Release()
	assert.Equal(t, int32(0), ctx.frees.Load(), "null buffer is never deallocated")
}

func TestAcquire_ZeroSizeNonNullIsReleased(t *testing.T) {
	var frees int
	b := Binding[*int]{
		Alloc: func(_ any, _ int) (*int, bool) { return new(int), true },
		Free:  func(_ any, _ *int) { frees++ },
	}

	buf, err := Acquire(b, 0)
	require.NoError(t, err)
	assert.True(t, buf.Valid())

	buf.Release()
	assert.Equal(t, 1, frees)
}

func TestAcquire_PassesContext(t *testing.T) {
	type ctxKey struct{ name string }
	want := &ctxKey{name: "device-0"}
	var allocCtx, freeCtx any

	b := Binding[int]{
		Alloc: func(ctx any, n int) (int, bool) {
			allocCtx = ctx
			return n, true
		},
		Free:    func(ctx any, _ int) { freeCtx = ctx },
		Context: want,
	}

	buf, err := b.Acquire(7)
	require.NoError(t, err)
	assert.Equal(t, 7, buf.Value())
	buf.Release()

	assert.Same(t, want, allocCtx)
	assert.Same(t, want, freeCtx)
}

func TestAcquire_ReleasedOnPanic(t *testing.T) {
	ctx := &countingCtx{}
	b := countingBinding(ctx)

	func() {
		defer func() { _ = recover() }()

		buf, err := b.Acquire(16)
		require.NoError(t, err)
		defer buf.Release()

		panic("kernel failed")
	}()

	assert.Equal(t, int32(1), ctx.frees.Load())
}

func TestAcquire_ReleasedOnEarlyReturn(t *testing.T) {
	ctx := &countingCtx{}
	b := countingBinding(ctx)

	run := func(early bool) error {
		buf, err := b.Acquire(16)
		if err != nil {
			return err
		}
		defer buf.Release()

		if early {
			return errors.New("early")
		}
		buf.Value()[0] = 1
		return nil
	}

	require.Error(t, run(true))
	require.NoError(t, run(false))
	assert.Equal(t, int32(2), ctx.frees.Load())
}

func TestAcquire_Preconditions(t *testing.T) {
	ctx := &countingCtx{}
	valid := countingBinding(ctx)

	assert.Panics(t, func() {
		_, _ = Binding[[]byte]{Free: valid.Free}.Acquire(1)
	}, "nil Alloc")
	assert.Panics(t, func() {
		_, _ = Binding[[]byte]{Alloc: valid.Alloc}.Acquire(1)
	}, "nil Free")
	assert.Panics(t, func() {
		_, _ = valid.Acquire(-1)
	}, "negative size")
	assert.Equal(t, int32(0), ctx.allocs.Load(), "preconditions checked before allocating")
}

func TestOwned_Move(t *testing.T) {
	ctx := &countingCtx{}
	b := countingBinding(ctx)

	buf, err := b.Acquire(32)
	require.NoError(t, err)

	moved := buf.Move()
	assert.False(t, buf.Valid())
	assert.True(t, buf.Released())
	assert.True(t, moved.Valid())
	assert.Len(t, moved.Value(), 32)

	buf.Release()
	assert.Equal(t, int32(0), ctx.frees.Load(), "old handle no longer owns the buffer")

	moved.Release()
	assert.Equal(t, int32(1), ctx.frees.Load())

	assert.Panics(t, func() { buf.Move() })
}

func TestOwned_NilAndZero(t *testing.T) {
	var nilHandle *Owned[[]byte]
	assert.NotPanics(t, func() { nilHandle.Release() })
	assert.False(t, nilHandle.Valid())

	var zero Owned[[]byte]
	assert.False(t, zero.Valid())
	assert.NotPanics(t, func() { zero.Release() })
}

func TestOwned_ConcurrentReleaseFreesOnce(t *testing.T) {
	ctx := &countingCtx{}
	b := countingBinding(ctx)

	for range 100 {
		buf, err := b.Acquire(8)
		require.NoError(t, err)

		done := make(chan struct{})
		for range 4 {
			go func() {
				buf.Release()
				done <- struct{}{}
			}()
		}
		for range 4 {
			<-done
		}
	}
	assert.Equal(t, int32(100), ctx.frees.Load())
}

// fakeAllocator is an Allocator over integer handles.
type fakeAllocator struct {
	next  int
	live  map[int]int
	fails bool
}

func (f *fakeAllocator) Allocate(n int) (int, bool) {
	if f.fails {
		return 0, false
	}
	f.next++
	f.live[f.next] = n
	return f.next, true
}

func (f *fakeAllocator) Deallocate(h int) {
	delete(f.live, h)
}

func TestBind(t *testing.T) {
	f := &fakeAllocator{live: map[int]int{}}
	b := Bind[int](f)
	assert.Same(t, f, b.Context)

	first, err := b.Acquire(10)
	require.NoError(t, err)
	second, err := b.Acquire(20)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 10, 2: 20}, f.live)

	first.Release()
	assert.Equal(t, map[int]int{2: 20}, f.live)
	second.Release()
	assert.Empty(t, f.live)

	f.fails = true
	_, err = b.Acquire(5)
	assert.ErrorIs(t, err, ErrAllocationFailure)

	assert.Panics(t, func() { Bind[int](nil) })
}
