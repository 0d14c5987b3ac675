// Package runner defines the uniform contract every backend implements:
// module load, resource creation, parameter binding, dispatch, and
// timing over one live device session. It is a capability abstraction
// (an interface satisfied by each backend), not a base class - per-
// backend resources expose their native handle through an explicit,
// optional typed accessor rather than an unchecked downcast.
package runner

import (
	"time"

	"github.com/kerntopia/kerntopia/system"
)

// BufferRole tags a Buffer's intended use.
type BufferRole int

const (
	RoleUniform BufferRole = iota
	RoleStorage
	RoleStaging
)

// BufferUsage further qualifies how the caller intends to access a
// Buffer (host-visible mapping support).
type BufferUsage int

const (
	UsageDeviceOnly BufferUsage = iota
	UsageHostVisible
)

// Buffer is a device-resident linear memory region of fixed size, owned
// by the Runner that created it.
type Buffer interface {
	Size() uint64
	Role() BufferRole
	// Backend identifies which backend created this buffer, so a Runner
	// can reject a buffer native to a different backend without a type
	// assertion panicking.
	Backend() system.Runtime
	// Native returns the backend-specific native handle (for example a
	// CUDA device pointer or a VkBuffer) as an untyped value.
	Native() any
	Upload(offset uint64, data []byte) error
	Download(offset uint64, out []byte) error
	Destroy()
}

// TextureFormat enumerates the pixel formats the compute-only core
// supports for its linear-buffer texture model.
type TextureFormat int

const (
	FormatR8Unorm TextureFormat = iota
	FormatRGBA8Unorm
	FormatR32Float
	FormatRGBA32Float
)

// BytesPerPixel returns the byte width of one pixel in f.
func (f TextureFormat) BytesPerPixel() uint32 {
	switch f {
	case FormatR8Unorm:
		return 1
	case FormatRGBA8Unorm:
		return 4
	case FormatR32Float:
		return 4
	case FormatRGBA32Float:
		return 16
	default:
		return 0
	}
}

// TextureDescriptor describes a Texture to create. For the compute-only
// core, textures are implemented as linear buffers sized
// Width*Height*Depth*BytesPerPixel(Format); MipLevels/ArrayLayers are
// retained for parity with a future graphics-capable port but are not
// exercised by the compute path (MipLevels/ArrayLayers must both be 1).
type TextureDescriptor struct {
	Width, Height, Depth  uint32
	MipLevels, ArrayLayers uint32
	Format                TextureFormat
	Renderable            bool
	StorageWritable       bool
	GenerateMips          bool
}

// Texture is a device-resident image, backed by a linear buffer in this
// compute-only core.
type Texture interface {
	Descriptor() TextureDescriptor
	Backend() system.Runtime
	Native() any
	Destroy()
}

// TimingSample captures one dispatch's timing breakdown. Stale is set
// when LastTiming is read without an intervening Wait - the fields are
// still the previous dispatch's values, not zeroed, matching the
// "defined stale-sample read" resolution in DESIGN.md.
type TimingSample struct {
	MemorySetupMs    float64
	ComputeMs        float64
	MemoryTeardownMs float64
	TotalMs          float64
	WallStart        time.Time
	WallEnd          time.Time
	Stale            bool
}

// Feature is a capability tag queryable via Runner.Supports.
type Feature string

const (
	FeatureTimestampQueries Feature = "timestamp_queries"
	FeatureGlobalParams     Feature = "global_params"
)

// Runner represents a live session against one device. Every backend
// exposes the same operations; resource-type mismatches (binding a
// buffer created by a different backend) are reported as errors, never
// by dispatching into an alien native handle.
//
// Portability note: SetGlobalParams and SetBuffer(binding=2, ...) are
// NOT interchangeable across backends - NVIDIA delivers global shader
// parameters via SetGlobalParams (a constant-memory copy), Vulkan is a
// no-op for SetGlobalParams and instead expects the caller to route the
// same bytes through SetBuffer into a uniform-buffer binding. Routing
// this automatically based on backend is a policy decision left to
// higher-level callers, not to Runner itself.
type Runner interface {
	BackendName() string
	DeviceInfo() system.DeviceInfo

	LoadKernel(bytecode []byte, entryPoint string) error
	SetParameters(data []byte) error
	SetBuffer(binding int, buf Buffer) error
	SetTexture(binding int, tex Texture) error
	Dispatch(gx, gy, gz uint32) error
	Wait() error
	LastTiming() TimingSample

	CreateBuffer(size uint64, role BufferRole, usage BufferUsage) (Buffer, error)
	CreateTexture(desc TextureDescriptor) (Texture, error)

	// SetGlobalParams is the portable hook for cross-backend global
	// shader-language parameters; see the portability note above.
	SetGlobalParams(data []byte) error

	Supports(feature Feature) bool

	Destroy()
}

// CalcDispatch computes the workgroup grid for a 16x16 compute block:
// ceil(w/16), ceil(h/16), max(1, d). Runners have no CalcDispatch method
// of their own; callers use this helper, so the tiling rule has exactly
// one implementation.
func CalcDispatch(w, h uint32, d int) (gx, gy, gz uint32) {
	const block = 16
	gx = ceilDiv(w, block)
	gy = ceilDiv(h, block)
	gz = 1
	if d > 1 {
		gz = uint32(d)
	}
	return gx, gy, gz
}

func ceilDiv(n, d uint32) uint32 {
	if n == 0 {
		return 0
	}
	return (n + d - 1) / d
}
