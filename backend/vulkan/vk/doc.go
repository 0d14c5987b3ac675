// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package vk provides a trimmed, pure-Go set of Vulkan bindings built on
// goffi, covering only what a compute-only kernel runner needs: instance
// and device setup, buffer/memory management, shader modules, descriptor
// sets, compute pipelines, command buffers and fences.
//
// There is no render pass, swapchain, sampler or image-view surface here -
// compute kernels in this harness read and write linear buffers exclusively,
// with runner.Texture backed by the same VkBuffer+VkDeviceMemory pair as
// runner.Buffer (see backend/vulkan/buffer.go).
package vk
