// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vulkan implements the cross-platform Vulkan compute backend.
// It mirrors the layout of a Vulkan graphics HAL trimmed to the
// compute-only surface this harness needs: no render pass, swapchain,
// or image-view path - kernels read and write linear buffers exclusively.
package vulkan

import (
	"sync"

	"github.com/kerntopia/kerntopia/backend"
	"github.com/kerntopia/kerntopia/backend/vulkan/vk"
	"github.com/kerntopia/kerntopia/kerr"
	"github.com/kerntopia/kerntopia/klog"
	"github.com/kerntopia/kerntopia/loader"
	"github.com/kerntopia/kerntopia/runner"
	"github.com/kerntopia/kerntopia/system"
)

func init() {
	backend.Register(system.RuntimeVulkan, func() backend.Backend {
		return &Backend{interrogator: system.Shared(), loader: loader.Shared()}
	})
}

// Backend is the Vulkan compute backend factory. A single VkInstance is
// shared across every Runner this factory creates - physical devices
// are enumerated against it once the instance exists.
type Backend struct {
	interrogator *system.Interrogator
	loader       *loader.Loader

	once     sync.Once
	initErr  error
	cmds     *vk.Commands
	instance vk.Instance
}

func (b *Backend) Kind() system.Runtime { return system.RuntimeVulkan }

func (b *Backend) Info() system.Info { return b.interrogator.GetRuntime(system.RuntimeVulkan) }

// ensureInstance takes the libvulkan handle the interrogator loaded,
// resolves vkGetInstanceProcAddr through the shared loader, and creates
// the one VkInstance this factory reuses for every device query and
// runner. Safe to call repeatedly.
func (b *Backend) ensureInstance() error {
	b.once.Do(func() {
		b.initErr = b.doEnsureInstance()
	})
	return b.initErr
}

func (b *Backend) doEnsureInstance() error {
	// Reuse the exact handle the interrogator loaded during detection
	// rather than scanning for and loading the library a second time.
	h := b.interrogator.GetRuntime(system.RuntimeVulkan).LibraryHandle()
	if h == nil {
		return kerr.New(kerr.CategoryBackend, kerr.CodeLibraryLoadFailed,
			"Vulkan loader library was not loaded during detection").WithSuggestionFromTable()
	}
	getInstanceProcAddr := b.loader.Symbol(h, "vkGetInstanceProcAddr")
	if getInstanceProcAddr == nil {
		return kerr.New(kerr.CategoryBackend, kerr.CodeLibraryLoadFailed, "vkGetInstanceProcAddr not found in Vulkan loader")
	}
	if err := vk.Init(getInstanceProcAddr); err != nil {
		return kerr.Wrap(kerr.CategoryBackend, kerr.CodeLibraryLoadFailed, "failed to prepare Vulkan call signatures", err)
	}

	cmds := vk.NewCommands()
	if err := cmds.LoadGlobal(); err != nil {
		return kerr.Wrap(kerr.CategoryBackend, kerr.CodeLibraryLoadFailed, "failed to load global Vulkan functions", err)
	}

	appInfo := vk.ApplicationInfo{
		SType:      vk.StructureTypeApplicationInfo,
		APIVersion: vk.MakeAPIVersion(0, 1, 1, 0),
	}
	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &appInfo,
	}
	instance, result := cmds.CreateInstance(&createInfo)
	if result != vk.Success {
		return kerr.Newf(kerr.CategoryBackend, kerr.CodeBackendInitFailed, "vkCreateInstance failed: %s", result)
	}
	if err := cmds.LoadInstance(instance); err != nil {
		cmds.DestroyInstance(instance)
		return kerr.Wrap(kerr.CategoryBackend, kerr.CodeLibraryLoadFailed, "failed to load Vulkan instance functions", err)
	}

	b.cmds = cmds
	b.instance = instance
	klog.Logger().Info("vulkan: instance created")
	return nil
}

func (b *Backend) Devices() []system.DeviceInfo {
	if !b.interrogator.IsAvailable(system.RuntimeVulkan) {
		return nil
	}
	if err := b.ensureInstance(); err != nil {
		klog.Logger().Warn("vulkan: instance creation failed during enumeration", "error", err)
		return nil
	}

	physicalDevices, result := b.cmds.EnumeratePhysicalDevices(b.instance)
	if result != vk.Success || len(physicalDevices) == 0 {
		return nil
	}

	devices := make([]system.DeviceInfo, 0, len(physicalDevices))
	for i, pd := range physicalDevices {
		devices = append(devices, queryDeviceInfo(b.cmds, pd, i))
	}
	return devices
}

func (b *Backend) CreateRunner(deviceIndex int) (runner.Runner, error) {
	if !b.interrogator.IsAvailable(system.RuntimeVulkan) {
		return nil, kerr.New(kerr.CategoryBackend, kerr.CodeBackendNotAvailable, "Vulkan runtime not available")
	}
	if err := b.ensureInstance(); err != nil {
		return nil, err
	}
	physicalDevices, result := b.cmds.EnumeratePhysicalDevices(b.instance)
	if result != vk.Success || deviceIndex < 0 || deviceIndex >= len(physicalDevices) {
		return nil, kerr.Newf(kerr.CategoryGeneral, kerr.CodeInvalidArgument,
			"invalid Vulkan device index %d (available: 0-%d)", deviceIndex, len(physicalDevices)-1)
	}
	info := queryDeviceInfo(b.cmds, physicalDevices[deviceIndex], deviceIndex)
	return newRunner(b.cmds, b.instance, physicalDevices[deviceIndex], info)
}

func queryDeviceInfo(cmds *vk.Commands, pd vk.PhysicalDevice, index int) system.DeviceInfo {
	props := cmds.GetPhysicalDeviceProperties(pd)
	mem := cmds.GetPhysicalDeviceMemoryProperties(pd)
	families := cmds.GetPhysicalDeviceQueueFamilyProperties(pd)

	var totalMemory uint64
	for i := uint32(0); i < mem.MemoryHeapCount; i++ {
		if mem.MemoryHeaps[i].Flags&vk.MemoryHeapDeviceLocal != 0 {
			totalMemory += mem.MemoryHeaps[i].Size
		}
	}

	var maxInvocations uint32
	for _, f := range families {
		if f.QueueFlags&vk.QueueComputeBit != 0 {
			maxInvocations = props.Limits.MaxComputeWorkGroupInvocations
			break
		}
	}

	return system.DeviceInfo{
		Index:                index,
		Name:                 cStringToGo(props.DeviceName[:]),
		Backend:              system.RuntimeVulkan,
		TotalMemoryBytes:     totalMemory,
		MemoryBytesKnown:     totalMemory > 0,
		MaxThreadsPerGroup:   maxInvocations,
		MaxSharedMemoryBytes: props.Limits.MaxComputeSharedMemorySize,
		APIVersion:           versionString(props.APIVersion),
		SupportsCompute:      true,
		SupportsGraphics:     props.DeviceType != 4, // VK_PHYSICAL_DEVICE_TYPE_CPU
	}
}

func cStringToGo(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func versionString(v uint32) string {
	major := v >> 22
	minor := (v >> 12) & 0x3ff
	patch := v & 0xfff
	return itoa(int(major)) + "." + itoa(int(minor)) + "." + itoa(int(patch))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
