// Package cuda implements the NVIDIA backend by dynamically loading the
// CUDA library the system interrogator detected (nvcuda, or else a
// library matching cudart) through goffi, the same pure-Go FFI
// mechanism the Vulkan backend uses - no cgo, no link-time dependency on
// a CUDA SDK being present at build time.
package cuda

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"

	"github.com/kerntopia/kerntopia/kerr"
	"github.com/kerntopia/kerntopia/loader"
	"github.com/kerntopia/kerntopia/system"
)

// Driver API result codes this package checks for explicitly; every
// other non-zero code is reported generically via errorString.
const (
	cudaSuccess = 0
)

// Device attribute ids, matching the CUDA Driver API's CUdevice_attribute
// enum values used by this backend.
const (
	attrMaxThreadsPerBlock       = 1
	attrMaxSharedMemoryPerBlock  = 8
	attrClockRate                = 13
	attrMultiprocessorCount      = 16
	attrComputeCapabilityMajor   = 75
	attrComputeCapabilityMinor   = 76
	attrMemoryClockRate          = 36
	attrGlobalMemoryBusWidthBits = 37
)

// fn is one resolved driver entry point plus its prepared call
// interface, built once per symbol on first use.
type fn struct {
	ptr unsafe.Pointer
	cif types.CallInterface
}

// symbols holds every CUDA Driver API entry point this backend calls,
// resolved once per process the first time a CUDA backend is built.
type symbols struct {
	handle *loader.Handle

	init              fn
	deviceGetCount    fn
	deviceGet         fn
	deviceGetName     fn
	deviceGetAttr     fn
	memGetInfo        fn
	ctxCreate         fn
	ctxDestroy        fn
	ctxSetCurrent     fn
	ctxSynchronize    fn
	moduleLoadData    fn
	moduleUnload      fn
	moduleGetFunction fn
	moduleGetGlobal   fn
	memAlloc          fn
	memFree           fn
	memcpyHtoD        fn
	memcpyDtoH        fn
	launchKernel      fn
	eventCreate       fn
	eventDestroy      fn
	eventRecord       fn
	eventElapsedTime  fn
	getErrorString    fn
}

var (
	sharedSymbols     *symbols
	sharedSymbolsOnce sync.Once
	sharedSymbolsErr  error
)

// loadSymbols resolves and caches the driver symbol table for the
// process, taking the CUDA library handle the process-wide interrogator
// loaded and resolving symbols in it through l.
func loadSymbols(l *loader.Loader) (*symbols, error) {
	sharedSymbolsOnce.Do(func() {
		sharedSymbols, sharedSymbolsErr = buildSymbols(l)
	})
	return sharedSymbols, sharedSymbolsErr
}

func buildSymbols(l *loader.Loader) (*symbols, error) {
	// Reuse the handle the interrogator loaded during detection rather
	// than scanning for and loading the library a second time.
	h := system.Shared().GetRuntime(system.RuntimeCUDA).LibraryHandle()
	if h == nil {
		return nil, kerr.New(kerr.CategoryBackend, kerr.CodeLibraryLoadFailed,
			"CUDA driver library was not loaded during detection").WithSuggestionFromTable()
	}

	s := &symbols{handle: h}
	ptr := types.PointerTypeDescriptor
	u32 := types.UInt32TypeDescriptor
	u64 := types.UInt64TypeDescriptor
	i32 := types.SInt32TypeDescriptor
	result := types.SInt32TypeDescriptor

	resolve := func(dst *fn, name string, ret *types.TypeDescriptor, args []*types.TypeDescriptor) error {
		p := l.Symbol(h, name)
		if p == nil {
			return kerr.Newf(kerr.CategoryBackend, kerr.CodeLibraryLoadFailed, "symbol %s not found in CUDA driver", name)
		}
		var cif types.CallInterface
		if err := ffi.PrepareCallInterface(&cif, types.DefaultCall, ret, args); err != nil {
			return fmt.Errorf("preparing call interface for %s: %w", name, err)
		}
		*dst = fn{ptr: p, cif: cif}
		return nil
	}

	type entry struct {
		dst  *fn
		name string
		ret  *types.TypeDescriptor
		args []*types.TypeDescriptor
	}
	entries := []entry{
		{&s.init, "cuInit", result, []*types.TypeDescriptor{u32}},
		{&s.deviceGetCount, "cuDeviceGetCount", result, []*types.TypeDescriptor{ptr}},
		{&s.deviceGet, "cuDeviceGet", result, []*types.TypeDescriptor{ptr, i32}},
		{&s.deviceGetName, "cuDeviceGetName", result, []*types.TypeDescriptor{ptr, i32, i32}},
		{&s.deviceGetAttr, "cuDeviceGetAttribute", result, []*types.TypeDescriptor{ptr, i32, i32}},
		{&s.memGetInfo, "cuMemGetInfo_v2", result, []*types.TypeDescriptor{ptr, ptr}},
		{&s.ctxCreate, "cuCtxCreate_v2", result, []*types.TypeDescriptor{ptr, u32, i32}},
		{&s.ctxDestroy, "cuCtxDestroy_v2", result, []*types.TypeDescriptor{u64}},
		{&s.ctxSetCurrent, "cuCtxSetCurrent", result, []*types.TypeDescriptor{u64}},
		{&s.ctxSynchronize, "cuCtxSynchronize", result, []*types.TypeDescriptor{}},
		{&s.moduleLoadData, "cuModuleLoadData", result, []*types.TypeDescriptor{ptr, ptr}},
		{&s.moduleUnload, "cuModuleUnload", result, []*types.TypeDescriptor{u64}},
		{&s.moduleGetFunction, "cuModuleGetFunction", result, []*types.TypeDescriptor{ptr, u64, ptr}},
		{&s.moduleGetGlobal, "cuModuleGetGlobal_v2", result, []*types.TypeDescriptor{ptr, ptr, u64, ptr}},
		{&s.memAlloc, "cuMemAlloc_v2", result, []*types.TypeDescriptor{ptr, u64}},
		{&s.memFree, "cuMemFree_v2", result, []*types.TypeDescriptor{u64}},
		{&s.memcpyHtoD, "cuMemcpyHtoD_v2", result, []*types.TypeDescriptor{u64, ptr, u64}},
		{&s.memcpyDtoH, "cuMemcpyDtoH_v2", result, []*types.TypeDescriptor{ptr, u64, u64}},
		{&s.launchKernel, "cuLaunchKernel", result, []*types.TypeDescriptor{
			u64, u32, u32, u32, u32, u32, u32, u32, u64, ptr, ptr,
		}},
		{&s.eventCreate, "cuEventCreate", result, []*types.TypeDescriptor{ptr, u32}},
		{&s.eventDestroy, "cuEventDestroy_v2", result, []*types.TypeDescriptor{u64}},
		{&s.eventRecord, "cuEventRecord", result, []*types.TypeDescriptor{u64, u64}},
		{&s.eventElapsedTime, "cuEventElapsedTime", result, []*types.TypeDescriptor{ptr, u64, u64}},
		{&s.getErrorString, "cuGetErrorString", result, []*types.TypeDescriptor{i32, ptr}},
	}
	for _, e := range entries {
		if err := resolve(e.dst, e.name, e.ret, e.args); err != nil {
			return nil, err
		}
	}

	var initResult int32
	if err := call(s.init, &initResult, ptrTo(uint32(0))); err != nil {
		return nil, err
	}
	if initResult != cudaSuccess {
		return nil, kerr.Newf(kerr.CategoryBackend, kerr.CodeBackendInitFailed,
			"cuInit failed: %s", errorString(s, initResult))
	}
	return s, nil
}

// call invokes f with args already wrapped as goffi expects (pointers
// to where each argument's value is stored) and decodes a single int32
// return value into out.
func call(f fn, out *int32, args ...unsafe.Pointer) error {
	if f.ptr == nil {
		return kerr.New(kerr.CategoryBackend, kerr.CodeBackendNotAvailable, "CUDA driver symbol not resolved")
	}
	return ffi.CallFunction(&f.cif, f.ptr, unsafe.Pointer(out), args)
}

// ptrTo stores v in a heap location goffi can take the address of and
// returns a pointer to that location - the "pointer to value storage"
// shape every goffi argument slot requires.
func ptrTo[T any](v T) unsafe.Pointer {
	p := new(T)
	*p = v
	return unsafe.Pointer(p)
}

// ptrToPtr wraps an already-a-pointer value (a C string, a buffer
// address) one more level, since goffi reads the argument slot as the
// location OF the pointer, not the pointer itself.
func ptrToPtr(p unsafe.Pointer) unsafe.Pointer {
	holder := new(unsafe.Pointer)
	*holder = p
	return unsafe.Pointer(holder)
}

func errorString(s *symbols, code int32) string {
	if s == nil || s.getErrorString.ptr == nil {
		return fmt.Sprintf("CUDA error %d", code)
	}
	var strPtr unsafe.Pointer
	var ret int32
	if err := call(s.getErrorString, &ret, ptrTo(code), ptrToPtr(unsafe.Pointer(&strPtr))); err != nil || strPtr == nil {
		return fmt.Sprintf("CUDA error %d", code)
	}
	return cStringAt(strPtr)
}

// cStringAt reads a NUL-terminated C string starting at p. Bounded to
// guard against a driver returning a non-terminated buffer.
func cStringAt(p unsafe.Pointer) string {
	const maxLen = 4096
	buf := unsafe.Slice((*byte)(p), maxLen)
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}
