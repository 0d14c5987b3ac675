// Package cpu implements the always-available software backend: it
// never fails to activate, reports exactly one synthetic device, and executes every
// dispatch as a synthetic no-op. It exists so the harness, its CLI, and
// its integration tests have a backend to exercise on a machine with no
// GPU driver installed at all, mirroring the teacher's noop HAL backend.
package cpu

import (
	"sync"
	"time"

	"github.com/kerntopia/kerntopia/backend"
	"github.com/kerntopia/kerntopia/kerr"
	"github.com/kerntopia/kerntopia/runner"
	"github.com/kerntopia/kerntopia/system"
)

func init() {
	backend.Register(system.RuntimeCPU, func() backend.Backend { return &Backend{} })
}

// Backend is the software fallback factory. It is always available and
// always reports exactly one synthetic device.
type Backend struct{}

func (b *Backend) Kind() system.Runtime { return system.RuntimeCPU }

func (b *Backend) Info() system.Info {
	return system.Info{
		Name:      system.RuntimeCPU,
		Available: true,
		Version:   "software-1.0",
		Capabilities: system.Capabilities{
			MemoryManagement:  true,
			DeviceEnumeration: true,
		},
		Devices: b.Devices(),
	}
}

func (b *Backend) Devices() []system.DeviceInfo {
	return []system.DeviceInfo{{
		Index:               0,
		Name:                "CPU Fallback Device",
		Backend:             system.RuntimeCPU,
		MemoryBytesKnown:    false,
		SupportsCompute:     true,
		MaxThreadsPerGroup:  1,
		MaxSharedMemoryBytes: 0,
	}}
}

func (b *Backend) CreateRunner(deviceIndex int) (runner.Runner, error) {
	devices := b.Devices()
	if deviceIndex < 0 || deviceIndex >= len(devices) {
		return nil, kerr.Newf(kerr.CategoryGeneral, kerr.CodeInvalidArgument,
			"cpu backend has no device at index %d", deviceIndex)
	}
	return &Runner{device: devices[deviceIndex]}, nil
}

// Runner executes every dispatch synchronously as a synthetic no-op,
// recording plausible-looking timing so callers exercising the timing
// contract (Stale flag, Wait-then-LastTiming ordering) have something
// to observe without real hardware.
type Runner struct {
	mu      sync.Mutex
	device  system.DeviceInfo
	loaded  bool
	timing  runner.TimingSample
	waited  bool
}

func (r *Runner) BackendName() string               { return "cpu" }
func (r *Runner) DeviceInfo() system.DeviceInfo      { return r.device }

func (r *Runner) LoadKernel(bytecode []byte, entryPoint string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(bytecode) == 0 {
		return kerr.New(kerr.CategoryBackend, kerr.CodeKernelLoadFailed, "empty bytecode")
	}
	r.loaded = true
	return nil
}

func (r *Runner) SetParameters(data []byte) error   { return nil }
func (r *Runner) SetGlobalParams(data []byte) error { return nil }

func (r *Runner) SetBuffer(binding int, buf runner.Buffer) error {
	if buf != nil && buf.Backend() != system.RuntimeCPU {
		return kerr.Newf(kerr.CategoryGeneral, kerr.CodeInvalidArgument,
			"buffer bound to cpu runner was created by backend %q", buf.Backend())
	}
	return nil
}

func (r *Runner) SetTexture(binding int, tex runner.Texture) error {
	if tex != nil && tex.Backend() != system.RuntimeCPU {
		return kerr.Newf(kerr.CategoryGeneral, kerr.CodeInvalidArgument,
			"texture bound to cpu runner was created by backend %q", tex.Backend())
	}
	return nil
}

func (r *Runner) Dispatch(gx, gy, gz uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		return kerr.New(kerr.CategoryBackend, kerr.CodeKernelExecutionFailed, "dispatch before LoadKernel")
	}
	start := time.Now()
	r.timing = runner.TimingSample{
		MemorySetupMs:    0,
		ComputeMs:        0,
		MemoryTeardownMs: 0,
		TotalMs:          0,
		WallStart:        start,
		WallEnd:          start,
		Stale:            false,
	}
	r.waited = false
	return nil
}

func (r *Runner) Wait() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waited = true
	return nil
}

func (r *Runner) LastTiming() runner.TimingSample {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.timing
	t.Stale = !r.waited
	return t
}

func (r *Runner) CreateBuffer(size uint64, role runner.BufferRole, usage runner.BufferUsage) (runner.Buffer, error) {
	return &Buffer{size: size, role: role, data: make([]byte, size)}, nil
}

func (r *Runner) CreateTexture(desc runner.TextureDescriptor) (runner.Texture, error) {
	return &Texture{desc: desc}, nil
}

func (r *Runner) Supports(feature runner.Feature) bool { return false }

func (r *Runner) Destroy() {}

// Buffer is an in-process byte slice standing in for device memory.
type Buffer struct {
	mu   sync.Mutex
	size uint64
	role runner.BufferRole
	data []byte
}

func (b *Buffer) Size() uint64                  { return b.size }
func (b *Buffer) Role() runner.BufferRole       { return b.role }
func (b *Buffer) Backend() system.Runtime       { return system.RuntimeCPU }
func (b *Buffer) Native() any                   { return b.data }

func (b *Buffer) Upload(offset uint64, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if offset+uint64(len(data)) > b.size {
		return kerr.New(kerr.CategoryGeneral, kerr.CodeInvalidArgument, "upload exceeds buffer bounds")
	}
	copy(b.data[offset:], data)
	return nil
}

func (b *Buffer) Download(offset uint64, out []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if offset+uint64(len(out)) > b.size {
		return kerr.New(kerr.CategoryGeneral, kerr.CodeInvalidArgument, "download exceeds buffer bounds")
	}
	copy(out, b.data[offset:])
	return nil
}

func (b *Buffer) Destroy() {}

// Texture is a linear-buffer-backed synthetic texture.
type Texture struct {
	desc runner.TextureDescriptor
}

func (t *Texture) Descriptor() runner.TextureDescriptor { return t.desc }
func (t *Texture) Backend() system.Runtime              { return system.RuntimeCPU }
func (t *Texture) Native() any                          { return nil }
func (t *Texture) Destroy()                              {}
