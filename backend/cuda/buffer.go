package cuda

import (
	"unsafe"

	"github.com/kerntopia/kerntopia/kerr"
	"github.com/kerntopia/kerntopia/runner"
	"github.com/kerntopia/kerntopia/system"
)

// Buffer is a CUDA device memory allocation, mirroring the original
// CudaBuffer: it owns exactly one cuMemAlloc'd region and frees it on
// Destroy.
type Buffer struct {
	syms      *symbols
	devicePtr uint64
	size      uint64
	role      runner.BufferRole
}

func (b *Buffer) Size() uint64            { return b.size }
func (b *Buffer) Role() runner.BufferRole { return b.role }
func (b *Buffer) Backend() system.Runtime { return system.RuntimeCUDA }
func (b *Buffer) Native() any             { return b.devicePtr }

func (b *Buffer) Upload(offset uint64, data []byte) error {
	if offset+uint64(len(data)) > b.size {
		return kerr.New(kerr.CategoryGeneral, kerr.CodeInvalidArgument, "upload exceeds buffer bounds")
	}
	if len(data) == 0 {
		return nil
	}
	var result int32
	dst := b.devicePtr + offset
	if err := call(b.syms.memcpyHtoD, &result, ptrTo(dst), ptrToPtr(unsafe.Pointer(&data[0])), ptrTo(uint64(len(data)))); err != nil || result != cudaSuccess {
		return cudaError(b.syms, result, kerr.CodeKernelExecutionFailed, "CUDA memory upload failed")
	}
	return nil
}

func (b *Buffer) Download(offset uint64, out []byte) error {
	if offset+uint64(len(out)) > b.size {
		return kerr.New(kerr.CategoryGeneral, kerr.CodeInvalidArgument, "download exceeds buffer bounds")
	}
	if len(out) == 0 {
		return nil
	}
	var result int32
	src := b.devicePtr + offset
	if err := call(b.syms.memcpyDtoH, &result, ptrToPtr(unsafe.Pointer(&out[0])), ptrTo(src), ptrTo(uint64(len(out)))); err != nil || result != cudaSuccess {
		return cudaError(b.syms, result, kerr.CodeKernelExecutionFailed, "CUDA memory download failed")
	}
	return nil
}

func (b *Buffer) Destroy() {
	if b.devicePtr == 0 {
		return
	}
	var result int32
	_ = call(b.syms.memFree, &result, ptrTo(b.devicePtr))
	b.devicePtr = 0
}

// Texture is a CUDA compute texture, represented as a linear buffer per
// the original CudaTexture (no hardware texture units are exercised by
// compute kernels in this harness).
type Texture struct {
	syms      *symbols
	devicePtr uint64
	size      uint64
	desc      runner.TextureDescriptor
}

func (t *Texture) Descriptor() runner.TextureDescriptor { return t.desc }
func (t *Texture) Backend() system.Runtime              { return system.RuntimeCUDA }
func (t *Texture) Native() any                          { return t.devicePtr }

func (t *Texture) Destroy() {
	if t.devicePtr == 0 {
		return
	}
	var result int32
	_ = call(t.syms.memFree, &result, ptrTo(t.devicePtr))
	t.devicePtr = 0
}
