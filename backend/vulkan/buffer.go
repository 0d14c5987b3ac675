// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"unsafe"

	"github.com/kerntopia/kerntopia/backend/vulkan/vk"
	"github.com/kerntopia/kerntopia/kerr"
	"github.com/kerntopia/kerntopia/runner"
	"github.com/kerntopia/kerntopia/system"
)

// Buffer is a Vulkan device memory allocation bound to a single VkBuffer,
// mirroring the original VulkanBuffer: host-visible and host-coherent,
// so uploads and downloads map directly without a staging copy.
type Buffer struct {
	cmds   *vk.Commands
	device vk.Device
	buffer vk.Buffer
	memory vk.DeviceMemory
	size   uint64
	role   runner.BufferRole
}

func (b *Buffer) Size() uint64            { return b.size }
func (b *Buffer) Role() runner.BufferRole { return b.role }
func (b *Buffer) Backend() system.Runtime { return system.RuntimeVulkan }
func (b *Buffer) Native() any             { return b.buffer }

func (b *Buffer) Upload(offset uint64, data []byte) error {
	if offset+uint64(len(data)) > b.size {
		return kerr.New(kerr.CategoryGeneral, kerr.CodeInvalidArgument, "upload exceeds buffer bounds")
	}
	if len(data) == 0 {
		return nil
	}
	ptr, result := b.cmds.MapMemory(b.device, b.memory, offset, uint64(len(data)))
	if result != vk.Success {
		return vkError(result, kerr.CodeKernelExecutionFailed, "Vulkan memory map failed")
	}
	dst := unsafe.Slice((*byte)(ptr), len(data))
	copy(dst, data)
	b.cmds.UnmapMemory(b.device, b.memory)
	return nil
}

func (b *Buffer) Download(offset uint64, out []byte) error {
	if offset+uint64(len(out)) > b.size {
		return kerr.New(kerr.CategoryGeneral, kerr.CodeInvalidArgument, "download exceeds buffer bounds")
	}
	if len(out) == 0 {
		return nil
	}
	ptr, result := b.cmds.MapMemory(b.device, b.memory, offset, uint64(len(out)))
	if result != vk.Success {
		return vkError(result, kerr.CodeKernelExecutionFailed, "Vulkan memory map failed")
	}
	src := unsafe.Slice((*byte)(ptr), len(out))
	copy(out, src)
	b.cmds.UnmapMemory(b.device, b.memory)
	return nil
}

func (b *Buffer) Destroy() {
	if b.buffer == 0 {
		return
	}
	b.cmds.DestroyBuffer(b.device, b.buffer)
	b.cmds.FreeMemory(b.device, b.memory)
	b.buffer = 0
	b.memory = 0
}

// Texture is a Vulkan compute texture represented as a linear buffer, per
// the original VulkanTexture - no image view or sampler is created since
// compute kernels in this harness address textures as raw storage.
type Texture struct {
	cmds   *vk.Commands
	device vk.Device
	buffer vk.Buffer
	memory vk.DeviceMemory
	size   uint64
	desc   runner.TextureDescriptor
}

func (t *Texture) Descriptor() runner.TextureDescriptor { return t.desc }
func (t *Texture) Backend() system.Runtime              { return system.RuntimeVulkan }
func (t *Texture) Native() any                          { return t.buffer }

func (t *Texture) Destroy() {
	if t.buffer == 0 {
		return
	}
	t.cmds.DestroyBuffer(t.device, t.buffer)
	t.cmds.FreeMemory(t.device, t.memory)
	t.buffer = 0
	t.memory = 0
}
