package alloc

import (
	"math/bits"
	"sync"
)

// minClassBits is log2 of the smallest pooled size class.
const minClassBits = 6

// Pool is a thread-safe pool for reusing byte buffers.
//
// Pool groups buffers into power-of-two size classes, so a released buffer
// serves any later request of the same class. This reduces GC pressure for
// pipelines that repeatedly transform images of similar sizes.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]byte
	maxSize int // max buffers per bucket

	hits   int
	misses int
}

// NewPool creates a new buffer pool with the given maximum buffers per bucket.
// maxPerBucket limits how many buffers of each size class are retained.
// A maxPerBucket of 0 means unlimited (use with caution).
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// sizeClass returns the capacity of the bucket serving n bytes.
func sizeClass(n int) int {
	if n <= 1<<minClassBits {
		return 1 << minClassBits
	}
	return 1 << bits.Len(uint(n-1))
}

// Allocate retrieves a buffer of length n from the pool or creates a new one.
// If a buffer is reused from the pool, it is cleared (all bytes zeroed).
// Zero-byte requests and requests above MaxSize return the null buffer.
func (p *Pool) Allocate(n int) ([]byte, bool) {
	if n <= 0 || n > MaxSize {
		return nil, false
	}
	class := sizeClass(n)

	p.mu.Lock()
	bucket := p.buckets[class]
	if len(bucket) > 0 {
		// Pop from pool
		buf := bucket[len(bucket)-1]
		p.buckets[class] = bucket[:len(bucket)-1]
		p.hits++
		p.mu.Unlock()

		buf = buf[:n]
		clear(buf)
		return buf, true
	}
	p.misses++
	p.mu.Unlock()

	return alignedBytes(class)[:n], true
}

// Deallocate returns a buffer to the pool for reuse.
// If buf was not produced by a Pool or the bucket is at max capacity,
// the buffer is discarded.
func (p *Pool) Deallocate(buf []byte) {
	if buf == nil {
		return
	}
	class := cap(buf)
	if class != sizeClass(class) {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[class]

	// Check if bucket is at capacity
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		// Bucket full, discard buffer (GC will clean up)
		return
	}

	p.buckets[class] = append(bucket, buf[:class])
}

// Stats returns how many requests were served from the pool and how many
// needed a fresh buffer.
func (p *Pool) Stats() (hits, misses int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits, p.misses
}

// Binding returns p as a Binding.
func (p *Pool) Binding() Binding[[]byte] {
	return Bind[[]byte](p)
}

// defaultPool is the package-level pool for convenient usage.
var defaultPool = NewPool(8)

// Default returns a Binding over the package-level pool.
func Default() Binding[[]byte] {
	return defaultPool.Binding()
}
