// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// goffi calling convention: args[] must contain pointers to WHERE each
// argument's value is stored, never the value itself. Scalar/handle
// values need one level of indirection (ptrTo); arguments that are
// themselves C pointers (const char*, void*, output ptr parameters) need
// a second level (ptrToPtr), since goffi reads the argument slot as the
// location OF the pointer, not the pointer's own bit pattern.

package vk

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

var (
	getInstanceProcAddrPtr unsafe.Pointer
	getDeviceProcAddrPtr   unsafe.Pointer
	cifGetInstanceProcAddr types.CallInterface
	cifGetDeviceProcAddr   types.CallInterface

	initOnce sync.Once
	initErr  error
)

// LibraryName returns the platform-specific Vulkan loader filename, for
// callers resolving it through loader.Loader's search paths.
func LibraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "vulkan-1.dll"
	case "darwin":
		return "libvulkan.dylib"
	default:
		return "libvulkan.so.1"
	}
}

// Init prepares every call signature this package uses against an
// already-resolved vkGetInstanceProcAddr symbol. The caller is
// responsible for locating and loading libvulkan - this package has no
// opinion on search paths, matching how the rest of this module centralizes
// library discovery in one place. Safe to call more than once; later
// calls with a different pointer are ignored.
func Init(getInstanceProcAddr unsafe.Pointer) error {
	initOnce.Do(func() {
		initErr = doInit(getInstanceProcAddr)
	})
	return initErr
}

func doInit(getInstanceProcAddr unsafe.Pointer) error {
	if getInstanceProcAddr == nil {
		return fmt.Errorf("vkGetInstanceProcAddr symbol is nil")
	}
	getInstanceProcAddrPtr = getInstanceProcAddr

	ptr := types.PointerTypeDescriptor
	u64 := types.UInt64TypeDescriptor
	if err := ffi.PrepareCallInterface(&cifGetInstanceProcAddr, types.DefaultCall, ptr,
		[]*types.TypeDescriptor{u64, ptr}); err != nil {
		return fmt.Errorf("preparing vkGetInstanceProcAddr signature: %w", err)
	}
	if err := ffi.PrepareCallInterface(&cifGetDeviceProcAddr, types.DefaultCall, ptr,
		[]*types.TypeDescriptor{u64, ptr}); err != nil {
		return fmt.Errorf("preparing vkGetDeviceProcAddr signature: %w", err)
	}

	return initSignatures()
}

func cString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

// ptrTo stores v in heap storage goffi can take the address of.
func ptrTo[T any](v T) unsafe.Pointer {
	p := new(T)
	*p = v
	return unsafe.Pointer(p)
}

// ptrToPtr wraps an already-a-pointer value one more level, the shape
// goffi requires for any C-pointer-typed argument.
func ptrToPtr(p unsafe.Pointer) unsafe.Pointer {
	holder := new(unsafe.Pointer)
	*holder = p
	return unsafe.Pointer(holder)
}

// GetInstanceProcAddr resolves a global or instance-level function.
// Pass instance=0 for the handful of global functions (vkCreateInstance,
// vkEnumerateInstanceVersion).
func GetInstanceProcAddr(instance Instance, name string) unsafe.Pointer {
	if getInstanceProcAddrPtr == nil {
		return nil
	}
	cname := cString(name)
	var result unsafe.Pointer
	namePtr := unsafe.Pointer(&cname[0])
	args := []unsafe.Pointer{ptrTo(instance), ptrToPtr(namePtr)}
	_ = ffi.CallFunction(&cifGetInstanceProcAddr, getInstanceProcAddrPtr, unsafe.Pointer(&result), args)
	return result
}

// SetDeviceProcAddrFrom resolves vkGetDeviceProcAddr via instance. Some
// drivers refuse to resolve it with a null instance.
func SetDeviceProcAddrFrom(instance Instance) {
	if getDeviceProcAddrPtr == nil {
		getDeviceProcAddrPtr = GetInstanceProcAddr(instance, "vkGetDeviceProcAddr")
	}
}

// GetDeviceProcAddr resolves a device-level function.
func GetDeviceProcAddr(device Device, name string) unsafe.Pointer {
	if getDeviceProcAddrPtr == nil {
		return nil
	}
	cname := cString(name)
	var result unsafe.Pointer
	namePtr := unsafe.Pointer(&cname[0])
	args := []unsafe.Pointer{ptrTo(device), ptrToPtr(namePtr)}
	_ = ffi.CallFunction(&cifGetDeviceProcAddr, getDeviceProcAddrPtr, unsafe.Pointer(&result), args)
	return result
}
