// Package device allocates GPU buffers through a wgpu HAL device and
// exposes them as an alloc.Binding.
//
// Destination buffers for GPU transform kernels are sized by the warp
// bounds functions and acquired here:
//
//	a := device.New(halDevice, gputypes.BufferUsageStorage|gputypes.BufferUsageCopySrc)
//	buf, err := a.Binding().Acquire(size.W * size.H * 4)
//	if err != nil {
//	    return err
//	}
//	defer buf.Release()
package device

import (
	"errors"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/warp"
	"github.com/gogpu/warp/alloc"
)

// CopyAlignment is the size granularity of GPU buffers. Requests are
// rounded up to a multiple of it so the whole buffer stays copyable.
const CopyAlignment = 4

var (
	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("device: nil DeviceProvider")

	// ErrNoHALDevice is returned when a provider does not expose a HAL
	// device capable of creating buffers.
	ErrNoHALDevice = errors.New("device: provider does not expose a HAL buffer device")
)

// BufferDevice is the part of hal.Device used for buffer allocation.
// Any hal.Device satisfies it.
type BufferDevice interface {
	CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error)
	DestroyBuffer(buffer hal.Buffer)
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithLabel sets the debug label given to every created buffer.
func WithLabel(label string) Option {
	return func(a *Allocator) {
		a.label = label
	}
}

// Allocator creates and destroys GPU buffers of a fixed usage.
// It implements alloc.Allocator[hal.Buffer].
//
// Allocator is safe for concurrent use as long as the underlying device is.
type Allocator struct {
	dev   BufferDevice
	usage gputypes.BufferUsage
	label string

	mu        sync.Mutex
	live      map[hal.Buffer]uint64
	liveBytes uint64
}

// New creates an allocator over dev. dev must not be nil.
func New(dev BufferDevice, usage gputypes.BufferUsage, opts ...Option) *Allocator {
	if dev == nil {
		panic("device: New with nil BufferDevice")
	}
	a := &Allocator{
		dev:   dev,
		usage: usage,
		label: "warp_buffer",
		live:  make(map[hal.Buffer]uint64),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FromProvider creates an allocator over the HAL device of a shared GPU
// context. Either the provider or the device it returns must implement
// HalDevice() any returning a hal.Device (or any BufferDevice).
func FromProvider(provider gpucontext.DeviceProvider, usage gputypes.BufferUsage, opts ...Option) (*Allocator, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	dev, ok := halDevice(provider)
	if !ok {
		dev, ok = halDevice(provider.Device())
	}
	if !ok {
		return nil, ErrNoHALDevice
	}
	warp.Logger().Info("device: using provider HAL device", "adapter", provider.AdapterInfo().Name)
	return New(dev, usage, opts...), nil
}

// halDevice extracts a BufferDevice from v through HalDevice() any.
func halDevice(v any) (BufferDevice, bool) {
	type halProvider interface {
		HalDevice() any
	}
	hp, ok := v.(halProvider)
	if !ok {
		return nil, false
	}
	dev, ok := hp.HalDevice().(BufferDevice)
	if !ok || dev == nil {
		return nil, false
	}
	return dev, true
}

// alignedSize rounds n up to CopyAlignment.
func alignedSize(n int) uint64 {
	return (uint64(n) + CopyAlignment - 1) &^ (CopyAlignment - 1)
}

// Allocate creates a buffer of at least n bytes. Zero-byte requests and
// device errors return the null buffer; device errors are logged.
func (a *Allocator) Allocate(n int) (hal.Buffer, bool) {
	if n <= 0 {
		return nil, false
	}
	size := alignedSize(n)

	buf, err := a.dev.CreateBuffer(&hal.BufferDescriptor{
		Label: a.label,
		Size:  size,
		Usage: a.usage,
	})
	if err != nil || buf == nil {
		warp.Logger().Warn("device: create buffer failed", "size", size, "err", err)
		return nil, false
	}

	a.mu.Lock()
	a.live[buf] = size
	a.liveBytes += size
	a.mu.Unlock()

	return buf, true
}

// Deallocate destroys a buffer created by Allocate. Buffers this
// allocator did not create are ignored.
func (a *Allocator) Deallocate(buf hal.Buffer) {
	if buf == nil {
		return
	}

	a.mu.Lock()
	size, ok := a.live[buf]
	if ok {
		delete(a.live, buf)
		a.liveBytes -= size
	}
	a.mu.Unlock()

	if !ok {
		warp.Logger().Warn("device: deallocate of unknown buffer")
		return
	}
	a.dev.DestroyBuffer(buf)
}

// LiveBytes returns the total size of buffers not yet destroyed.
func (a *Allocator) LiveBytes() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.liveBytes
}

// Live returns the number of buffers not yet destroyed.
func (a *Allocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

// Binding returns a as an alloc.Binding.
func (a *Allocator) Binding() alloc.Binding[hal.Buffer] {
	return alloc.Bind[hal.Buffer](a)
}
