// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"testing"

	"github.com/kerntopia/kerntopia/backend/vulkan/vk"
	"github.com/kerntopia/kerntopia/runner"
)

func TestBufferUsageFor(t *testing.T) {
	if got := bufferUsageFor(runner.RoleUniform); got != vk.BufferUsageUniformBuffer {
		t.Errorf("bufferUsageFor(RoleUniform) = %v, want BufferUsageUniformBuffer", got)
	}
	if got := bufferUsageFor(runner.RoleStorage); got != vk.BufferUsageStorageBuffer {
		t.Errorf("bufferUsageFor(RoleStorage) = %v, want BufferUsageStorageBuffer", got)
	}
	if got := bufferUsageFor(runner.RoleStaging); got != vk.BufferUsageStorageBuffer {
		t.Errorf("bufferUsageFor(RoleStaging) = %v, want BufferUsageStorageBuffer", got)
	}
}

func TestFindMemoryType(t *testing.T) {
	props := vk.PhysicalDeviceMemoryProperties{
		MemoryTypeCount: 3,
		MemoryTypes: [32]vk.MemoryType{
			0: {PropertyFlags: vk.MemoryPropertyDeviceLocal},
			1: {PropertyFlags: vk.MemoryPropertyHostVisible | vk.MemoryPropertyHostCoherent},
			2: {PropertyFlags: vk.MemoryPropertyHostVisible},
		},
	}
	required := vk.MemoryPropertyHostVisible | vk.MemoryPropertyHostCoherent

	idx, ok := findMemoryType(props, 0b111, required)
	if !ok || idx != 1 {
		t.Fatalf("findMemoryType = (%d, %v), want (1, true)", idx, ok)
	}

	// type bit 1 excluded from typeBits -> falls through to no match since
	// only type 1 satisfies the required flags.
	if _, ok := findMemoryType(props, 0b101, required); ok {
		t.Fatalf("findMemoryType with type 1 excluded should not match")
	}

	if _, ok := findMemoryType(props, 0b111, vk.MemoryPropertyDeviceLocal|vk.MemoryPropertyHostVisible); ok {
		t.Fatalf("findMemoryType should not match a flag combination no single type satisfies")
	}
}

func TestLoadKernelRejectsInvalidSPIRV(t *testing.T) {
	r := &Runner{bindings: make(map[int]*Buffer)}
	cases := [][]byte{
		nil,
		{},
		{0x01, 0x02, 0x03},
	}
	for _, bytecode := range cases {
		if err := r.LoadKernel(bytecode, "main"); err == nil {
			t.Errorf("LoadKernel(%v) = nil error, want a validation error", bytecode)
		}
	}
}

func TestBindingBarriersCoversEveryBoundBuffer(t *testing.T) {
	r := &Runner{bindings: map[int]*Buffer{
		0: {buffer: 1, size: 64},
		1: {buffer: 2, size: 128},
	}}
	barriers := r.bindingBarriers()
	if len(barriers) != 2 {
		t.Fatalf("bindingBarriers returned %d barriers, want 2", len(barriers))
	}
	seen := make(map[vk.Buffer]bool)
	for _, b := range barriers {
		if b.SrcAccessMask != vk.AccessShaderWrite || b.DstAccessMask != vk.AccessHostRead {
			t.Errorf("barrier for buffer %v has wrong access masks: src=%v dst=%v", b.Buffer, b.SrcAccessMask, b.DstAccessMask)
		}
		seen[b.Buffer] = true
	}
	if !seen[vk.Buffer(1)] || !seen[vk.Buffer(2)] {
		t.Fatalf("bindingBarriers missing an entry for a bound buffer: %v", barriers)
	}
}

func TestBindingBarriersEmptyWhenNoBindings(t *testing.T) {
	r := &Runner{bindings: map[int]*Buffer{}}
	if barriers := r.bindingBarriers(); barriers != nil {
		t.Fatalf("bindingBarriers() = %v, want nil for no bound buffers", barriers)
	}
}

func TestVkError(t *testing.T) {
	err := vkError(vk.ErrorDeviceLost, 100, "dispatch failed")
	if err == nil {
		t.Fatal("vkError returned nil")
	}
	msg := err.Error()
	if !contains(msg, "VK_ERROR_DEVICE_LOST") || !contains(msg, "dispatch failed") {
		t.Errorf("vkError message = %q, want it to mention the result string and the fallback message", msg)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
