package alloc

import (
	"math"
	"sync"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Alignment is the byte alignment of buffers handed out by Heap and
// Pool: one CPU cache line.
var Alignment = int(unsafe.Sizeof(cpu.CacheLinePad{}))

// MaxSize is the largest request Heap and Pool will attempt. Larger
// requests return the null buffer instead of exceeding the runtime's
// allocation limit.
const MaxSize = min(math.MaxInt>>1, 1<<47)

// alignedBytes returns a zeroed slice of length and capacity n whose first
// element starts on an Alignment boundary.
func alignedBytes(n int) []byte {
	raw := make([]byte, n+Alignment-1)
	off := 0
	if rem := int(uintptr(unsafe.Pointer(unsafe.SliceData(raw))) % uintptr(Alignment)); rem != 0 {
		off = Alignment - rem
	}
	return raw[off : off+n : off+n]
}

// HeapStats is a snapshot of Heap accounting.
type HeapStats struct {
	// LiveBytes is the total size of buffers not yet deallocated.
	LiveBytes int

	// Allocs and Frees count successful Allocate and Deallocate calls.
	Allocs int
	Frees  int

	// Failures counts requests refused by the byte limit.
	Failures int
}

// Heap allocates cache-line aligned byte slices from the Go heap.
// An optional limit caps the live bytes; requests beyond it fail.
//
// Heap is safe for concurrent use.
type Heap struct {
	mu    sync.Mutex
	limit int
	stats HeapStats
}

// NewHeap creates a heap allocator. A limit of 0 means unlimited.
func NewHeap(limit int) *Heap {
	return &Heap{limit: max(limit, 0)}
}

// Allocate returns an aligned, zeroed buffer of n bytes. Zero-byte
// requests and requests above MaxSize or the limit return the null buffer.
func (h *Heap) Allocate(n int) ([]byte, bool) {
	if n <= 0 {
		return nil, false
	}

	h.mu.Lock()
	if n > MaxSize || (h.limit > 0 && h.stats.LiveBytes+n > h.limit) {
		h.stats.Failures++
		h.mu.Unlock()
		return nil, false
	}
	h.stats.LiveBytes += n
	h.stats.Allocs++
	h.mu.Unlock()

	return alignedBytes(n), true
}

// Deallocate releases buf's accounting. The memory itself is reclaimed by
// the garbage collector once unreferenced.
func (h *Heap) Deallocate(buf []byte) {
	if buf == nil {
		return
	}
	h.mu.Lock()
	h.stats.LiveBytes -= len(buf)
	h.stats.Frees++
	h.mu.Unlock()
}

// Stats returns a snapshot of the heap accounting.
func (h *Heap) Stats() HeapStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

// Binding returns h as a Binding.
func (h *Heap) Binding() Binding[[]byte] {
	return Bind[[]byte](h)
}
