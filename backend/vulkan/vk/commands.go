// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
)

// Commands holds every Vulkan entry point this package's compute-only
// surface calls, resolved across the three standard loading stages:
// global (no instance), instance-level, and device-level.
type Commands struct {
	createInstance           unsafe.Pointer
	destroyInstance          unsafe.Pointer
	enumeratePhysicalDevices unsafe.Pointer
	getPhysicalDeviceProperties       unsafe.Pointer
	getPhysicalDeviceMemoryProperties unsafe.Pointer
	getPhysicalDeviceQueueFamilyProperties unsafe.Pointer
	createDevice             unsafe.Pointer

	destroyDevice    unsafe.Pointer
	getDeviceQueue   unsafe.Pointer
	queueSubmit      unsafe.Pointer
	queueWaitIdle    unsafe.Pointer

	createBuffer                unsafe.Pointer
	destroyBuffer               unsafe.Pointer
	getBufferMemoryRequirements unsafe.Pointer
	allocateMemory              unsafe.Pointer
	freeMemory                  unsafe.Pointer
	bindBufferMemory            unsafe.Pointer
	mapMemory                   unsafe.Pointer
	unmapMemory                 unsafe.Pointer

	createShaderModule  unsafe.Pointer
	destroyShaderModule unsafe.Pointer

	createDescriptorSetLayout  unsafe.Pointer
	destroyDescriptorSetLayout unsafe.Pointer
	createDescriptorPool       unsafe.Pointer
	destroyDescriptorPool      unsafe.Pointer
	allocateDescriptorSets     unsafe.Pointer
	updateDescriptorSets       unsafe.Pointer

	createPipelineLayout   unsafe.Pointer
	destroyPipelineLayout  unsafe.Pointer
	createComputePipelines unsafe.Pointer
	destroyPipeline        unsafe.Pointer

	createCommandPool      unsafe.Pointer
	destroyCommandPool     unsafe.Pointer
	allocateCommandBuffers unsafe.Pointer
	freeCommandBuffers     unsafe.Pointer
	beginCommandBuffer     unsafe.Pointer
	endCommandBuffer       unsafe.Pointer
	cmdBindPipeline        unsafe.Pointer
	cmdBindDescriptorSets  unsafe.Pointer
	cmdDispatch            unsafe.Pointer
	cmdPipelineBarrier     unsafe.Pointer

	createFence    unsafe.Pointer
	destroyFence   unsafe.Pointer
	waitForFences  unsafe.Pointer
	resetFences    unsafe.Pointer
	getFenceStatus unsafe.Pointer
}

func NewCommands() *Commands { return &Commands{} }

func (c *Commands) LoadGlobal() error {
	c.createInstance = GetInstanceProcAddr(0, "vkCreateInstance")
	if c.createInstance == nil {
		return fmt.Errorf("failed to load vkCreateInstance")
	}
	return nil
}

func (c *Commands) LoadInstance(instance Instance) error {
	c.destroyInstance = GetInstanceProcAddr(instance, "vkDestroyInstance")
	c.enumeratePhysicalDevices = GetInstanceProcAddr(instance, "vkEnumeratePhysicalDevices")
	c.getPhysicalDeviceProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceProperties")
	c.getPhysicalDeviceMemoryProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceMemoryProperties")
	c.getPhysicalDeviceQueueFamilyProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceQueueFamilyProperties")
	c.createDevice = GetInstanceProcAddr(instance, "vkCreateDevice")

	SetDeviceProcAddrFrom(instance)

	if c.destroyInstance == nil || c.enumeratePhysicalDevices == nil || c.createDevice == nil {
		return fmt.Errorf("failed to load required Vulkan instance functions")
	}
	return nil
}

func (c *Commands) LoadDevice(device Device) error {
	c.destroyDevice = GetDeviceProcAddr(device, "vkDestroyDevice")
	c.getDeviceQueue = GetDeviceProcAddr(device, "vkGetDeviceQueue")
	c.queueSubmit = GetDeviceProcAddr(device, "vkQueueSubmit")
	c.queueWaitIdle = GetDeviceProcAddr(device, "vkQueueWaitIdle")

	c.createBuffer = GetDeviceProcAddr(device, "vkCreateBuffer")
	c.destroyBuffer = GetDeviceProcAddr(device, "vkDestroyBuffer")
	c.getBufferMemoryRequirements = GetDeviceProcAddr(device, "vkGetBufferMemoryRequirements")
	c.allocateMemory = GetDeviceProcAddr(device, "vkAllocateMemory")
	c.freeMemory = GetDeviceProcAddr(device, "vkFreeMemory")
	c.bindBufferMemory = GetDeviceProcAddr(device, "vkBindBufferMemory")
	c.mapMemory = GetDeviceProcAddr(device, "vkMapMemory")
	c.unmapMemory = GetDeviceProcAddr(device, "vkUnmapMemory")

	c.createShaderModule = GetDeviceProcAddr(device, "vkCreateShaderModule")
	c.destroyShaderModule = GetDeviceProcAddr(device, "vkDestroyShaderModule")

	c.createDescriptorSetLayout = GetDeviceProcAddr(device, "vkCreateDescriptorSetLayout")
	c.destroyDescriptorSetLayout = GetDeviceProcAddr(device, "vkDestroyDescriptorSetLayout")
	c.createDescriptorPool = GetDeviceProcAddr(device, "vkCreateDescriptorPool")
	c.destroyDescriptorPool = GetDeviceProcAddr(device, "vkDestroyDescriptorPool")
	c.allocateDescriptorSets = GetDeviceProcAddr(device, "vkAllocateDescriptorSets")
	c.updateDescriptorSets = GetDeviceProcAddr(device, "vkUpdateDescriptorSets")

	c.createPipelineLayout = GetDeviceProcAddr(device, "vkCreatePipelineLayout")
	c.destroyPipelineLayout = GetDeviceProcAddr(device, "vkDestroyPipelineLayout")
	c.createComputePipelines = GetDeviceProcAddr(device, "vkCreateComputePipelines")
	c.destroyPipeline = GetDeviceProcAddr(device, "vkDestroyPipeline")

	c.createCommandPool = GetDeviceProcAddr(device, "vkCreateCommandPool")
	c.destroyCommandPool = GetDeviceProcAddr(device, "vkDestroyCommandPool")
	c.allocateCommandBuffers = GetDeviceProcAddr(device, "vkAllocateCommandBuffers")
	c.freeCommandBuffers = GetDeviceProcAddr(device, "vkFreeCommandBuffers")
	c.beginCommandBuffer = GetDeviceProcAddr(device, "vkBeginCommandBuffer")
	c.endCommandBuffer = GetDeviceProcAddr(device, "vkEndCommandBuffer")
	c.cmdBindPipeline = GetDeviceProcAddr(device, "vkCmdBindPipeline")
	c.cmdBindDescriptorSets = GetDeviceProcAddr(device, "vkCmdBindDescriptorSets")
	c.cmdDispatch = GetDeviceProcAddr(device, "vkCmdDispatch")
	c.cmdPipelineBarrier = GetDeviceProcAddr(device, "vkCmdPipelineBarrier")

	c.createFence = GetDeviceProcAddr(device, "vkCreateFence")
	c.destroyFence = GetDeviceProcAddr(device, "vkDestroyFence")
	c.waitForFences = GetDeviceProcAddr(device, "vkWaitForFences")
	c.resetFences = GetDeviceProcAddr(device, "vkResetFences")
	c.getFenceStatus = GetDeviceProcAddr(device, "vkGetFenceStatus")

	if c.destroyDevice == nil || c.getDeviceQueue == nil || c.createBuffer == nil ||
		c.createComputePipelines == nil || c.createCommandPool == nil || c.createFence == nil {
		return fmt.Errorf("failed to load required Vulkan device functions")
	}
	return nil
}

func (c *Commands) CreateInstance(info *InstanceCreateInfo) (Instance, Result) {
	var instance Instance
	var result int32
	args := []unsafe.Pointer{ptrToPtr(unsafe.Pointer(info)), ptrToPtr(nil), ptrToPtr(unsafe.Pointer(&instance))}
	_ = ffi.CallFunction(&sigResultPtrPtrPtr, c.createInstance, unsafe.Pointer(&result), args)
	return instance, Result(result)
}

func (c *Commands) DestroyInstance(instance Instance) {
	if c.destroyInstance == nil {
		return
	}
	args := []unsafe.Pointer{ptrTo(instance), ptrToPtr(nil)}
	_ = ffi.CallFunction(&sigVoidHandlePtr, c.destroyInstance, nil, args)
}

func (c *Commands) EnumeratePhysicalDevices(instance Instance) ([]PhysicalDevice, Result) {
	var count uint32
	var result int32
	args := []unsafe.Pointer{ptrTo(instance), ptrToPtr(unsafe.Pointer(&count)), ptrToPtr(nil)}
	if err := ffi.CallFunction(&sigResultHandleU32PtrPtr, c.enumeratePhysicalDevices, unsafe.Pointer(&result), args); err != nil || Result(result) != Success || count == 0 {
		return nil, Result(result)
	}
	devices := make([]PhysicalDevice, count)
	args = []unsafe.Pointer{ptrTo(instance), ptrToPtr(unsafe.Pointer(&count)), ptrToPtr(unsafe.Pointer(&devices[0]))}
	_ = ffi.CallFunction(&sigResultHandleU32PtrPtr, c.enumeratePhysicalDevices, unsafe.Pointer(&result), args)
	return devices, Result(result)
}

func (c *Commands) GetPhysicalDeviceProperties(pd PhysicalDevice) PhysicalDeviceProperties {
	var props PhysicalDeviceProperties
	args := []unsafe.Pointer{ptrTo(pd), ptrToPtr(unsafe.Pointer(&props))}
	_ = ffi.CallFunction(&sigVoidHandlePtr, c.getPhysicalDeviceProperties, nil, args)
	return props
}

func (c *Commands) GetPhysicalDeviceMemoryProperties(pd PhysicalDevice) PhysicalDeviceMemoryProperties {
	var props PhysicalDeviceMemoryProperties
	args := []unsafe.Pointer{ptrTo(pd), ptrToPtr(unsafe.Pointer(&props))}
	_ = ffi.CallFunction(&sigVoidHandlePtr, c.getPhysicalDeviceMemoryProperties, nil, args)
	return props
}

func (c *Commands) GetPhysicalDeviceQueueFamilyProperties(pd PhysicalDevice) []QueueFamilyProperties {
	var count uint32
	args := []unsafe.Pointer{ptrTo(pd), ptrToPtr(unsafe.Pointer(&count)), ptrToPtr(nil)}
	_ = ffi.CallFunction(&sigVoidHandleU32Ptr, c.getPhysicalDeviceQueueFamilyProperties, nil, args)
	if count == 0 {
		return nil
	}
	families := make([]QueueFamilyProperties, count)
	args = []unsafe.Pointer{ptrTo(pd), ptrToPtr(unsafe.Pointer(&count)), ptrToPtr(unsafe.Pointer(&families[0]))}
	_ = ffi.CallFunction(&sigVoidHandleU32Ptr, c.getPhysicalDeviceQueueFamilyProperties, nil, args)
	return families
}

func (c *Commands) CreateDevice(pd PhysicalDevice, info *DeviceCreateInfo) (Device, Result) {
	var device Device
	var result int32
	args := []unsafe.Pointer{ptrTo(pd), ptrToPtr(unsafe.Pointer(info)), ptrToPtr(nil), ptrToPtr(unsafe.Pointer(&device))}
	_ = ffi.CallFunction(&sigResultHandlePtrPtrPtr, c.createDevice, unsafe.Pointer(&result), args)
	return device, Result(result)
}

func (c *Commands) DestroyDevice(device Device) {
	if c.destroyDevice == nil {
		return
	}
	args := []unsafe.Pointer{ptrTo(device), ptrToPtr(nil)}
	_ = ffi.CallFunction(&sigVoidHandlePtr, c.destroyDevice, nil, args)
}

func (c *Commands) GetDeviceQueue(device Device, familyIndex, queueIndex uint32) Queue {
	var queue Queue
	args := []unsafe.Pointer{ptrTo(device), ptrTo(familyIndex), ptrTo(queueIndex), ptrToPtr(unsafe.Pointer(&queue))}
	_ = ffi.CallFunction(&sigVoidDeviceU32Ptr, c.getDeviceQueue, nil, args)
	return queue
}

func (c *Commands) CreateBuffer(device Device, info *BufferCreateInfo) (Buffer, Result) {
	var buf Buffer
	var result int32
	args := []unsafe.Pointer{ptrTo(device), ptrToPtr(unsafe.Pointer(info)), ptrToPtr(nil), ptrToPtr(unsafe.Pointer(&buf))}
	_ = ffi.CallFunction(&sigResultHandlePtrPtrPtr, c.createBuffer, unsafe.Pointer(&result), args)
	return buf, Result(result)
}

func (c *Commands) DestroyBuffer(device Device, buffer Buffer) {
	if c.destroyBuffer == nil {
		return
	}
	args := []unsafe.Pointer{ptrTo(device), ptrTo(buffer), ptrToPtr(nil)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroyBuffer, nil, args)
}

func (c *Commands) GetBufferMemoryRequirements(device Device, buffer Buffer) MemoryRequirements {
	var req MemoryRequirements
	args := []unsafe.Pointer{ptrTo(device), ptrTo(buffer), ptrToPtr(unsafe.Pointer(&req))}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.getBufferMemoryRequirements, nil, args)
	return req
}

func (c *Commands) AllocateMemory(device Device, info *MemoryAllocateInfo) (DeviceMemory, Result) {
	var mem DeviceMemory
	var result int32
	args := []unsafe.Pointer{ptrTo(device), ptrToPtr(unsafe.Pointer(info)), ptrToPtr(nil), ptrToPtr(unsafe.Pointer(&mem))}
	_ = ffi.CallFunction(&sigResultHandlePtrPtrPtr, c.allocateMemory, unsafe.Pointer(&result), args)
	return mem, Result(result)
}

func (c *Commands) FreeMemory(device Device, mem DeviceMemory) {
	if c.freeMemory == nil {
		return
	}
	args := []unsafe.Pointer{ptrTo(device), ptrTo(mem), ptrToPtr(nil)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.freeMemory, nil, args)
}

func (c *Commands) BindBufferMemory(device Device, buffer Buffer, mem DeviceMemory, offset uint64) Result {
	var result int32
	args := []unsafe.Pointer{ptrTo(device), ptrTo(buffer), ptrTo(mem), ptrTo(offset)}
	_ = ffi.CallFunction(&sigResultHandle4, c.bindBufferMemory, unsafe.Pointer(&result), args)
	return Result(result)
}

func (c *Commands) MapMemory(device Device, mem DeviceMemory, offset, size uint64) (unsafe.Pointer, Result) {
	var data unsafe.Pointer
	var result int32
	args := []unsafe.Pointer{ptrTo(device), ptrTo(mem), ptrTo(offset), ptrTo(size), ptrTo(uint32(0)), ptrToPtr(unsafe.Pointer(&data))}
	_ = ffi.CallFunction(&sigResultMapMemory, c.mapMemory, unsafe.Pointer(&result), args)
	return data, Result(result)
}

func (c *Commands) UnmapMemory(device Device, mem DeviceMemory) {
	if c.unmapMemory == nil {
		return
	}
	args := []unsafe.Pointer{ptrTo(device), ptrTo(mem)}
	_ = ffi.CallFunction(&sigVoidHandleHandle, c.unmapMemory, nil, args)
}

func (c *Commands) CreateShaderModule(device Device, info *ShaderModuleCreateInfo) (ShaderModule, Result) {
	var module ShaderModule
	var result int32
	args := []unsafe.Pointer{ptrTo(device), ptrToPtr(unsafe.Pointer(info)), ptrToPtr(nil), ptrToPtr(unsafe.Pointer(&module))}
	_ = ffi.CallFunction(&sigResultHandlePtrPtrPtr, c.createShaderModule, unsafe.Pointer(&result), args)
	return module, Result(result)
}

func (c *Commands) DestroyShaderModule(device Device, module ShaderModule) {
	if c.destroyShaderModule == nil {
		return
	}
	args := []unsafe.Pointer{ptrTo(device), ptrTo(module), ptrToPtr(nil)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroyShaderModule, nil, args)
}

func (c *Commands) CreateDescriptorSetLayout(device Device, info *DescriptorSetLayoutCreateInfo) (DescriptorSetLayout, Result) {
	var layout DescriptorSetLayout
	var result int32
	args := []unsafe.Pointer{ptrTo(device), ptrToPtr(unsafe.Pointer(info)), ptrToPtr(nil), ptrToPtr(unsafe.Pointer(&layout))}
	_ = ffi.CallFunction(&sigResultHandlePtrPtrPtr, c.createDescriptorSetLayout, unsafe.Pointer(&result), args)
	return layout, Result(result)
}

func (c *Commands) DestroyDescriptorSetLayout(device Device, layout DescriptorSetLayout) {
	if c.destroyDescriptorSetLayout == nil {
		return
	}
	args := []unsafe.Pointer{ptrTo(device), ptrTo(layout), ptrToPtr(nil)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroyDescriptorSetLayout, nil, args)
}

func (c *Commands) CreateDescriptorPool(device Device, info *DescriptorPoolCreateInfo) (DescriptorPool, Result) {
	var pool DescriptorPool
	var result int32
	args := []unsafe.Pointer{ptrTo(device), ptrToPtr(unsafe.Pointer(info)), ptrToPtr(nil), ptrToPtr(unsafe.Pointer(&pool))}
	_ = ffi.CallFunction(&sigResultHandlePtrPtrPtr, c.createDescriptorPool, unsafe.Pointer(&result), args)
	return pool, Result(result)
}

func (c *Commands) DestroyDescriptorPool(device Device, pool DescriptorPool) {
	if c.destroyDescriptorPool == nil {
		return
	}
	args := []unsafe.Pointer{ptrTo(device), ptrTo(pool), ptrToPtr(nil)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroyDescriptorPool, nil, args)
}

func (c *Commands) AllocateDescriptorSets(device Device, info *DescriptorSetAllocateInfo) ([]DescriptorSet, Result) {
	count := info.DescriptorSetCount
	sets := make([]DescriptorSet, count)
	var result int32
	args := []unsafe.Pointer{ptrTo(device), ptrToPtr(unsafe.Pointer(info)), ptrToPtr(unsafe.Pointer(&sets[0]))}
	_ = ffi.CallFunction(&sigResultHandlePtrPtr, c.allocateDescriptorSets, unsafe.Pointer(&result), args)
	return sets, Result(result)
}

func (c *Commands) UpdateDescriptorSets(device Device, writes []WriteDescriptorSet) {
	if c.updateDescriptorSets == nil || len(writes) == 0 {
		return
	}
	args := []unsafe.Pointer{ptrTo(device), ptrTo(uint32(len(writes))), ptrToPtr(unsafe.Pointer(&writes[0])), ptrTo(uint32(0)), ptrToPtr(nil)}
	_ = ffi.CallFunction(&sigVoidDeviceUpdateDescriptorSets, c.updateDescriptorSets, nil, args)
}

func (c *Commands) CreatePipelineLayout(device Device, info *PipelineLayoutCreateInfo) (PipelineLayout, Result) {
	var layout PipelineLayout
	var result int32
	args := []unsafe.Pointer{ptrTo(device), ptrToPtr(unsafe.Pointer(info)), ptrToPtr(nil), ptrToPtr(unsafe.Pointer(&layout))}
	_ = ffi.CallFunction(&sigResultHandlePtrPtrPtr, c.createPipelineLayout, unsafe.Pointer(&result), args)
	return layout, Result(result)
}

func (c *Commands) DestroyPipelineLayout(device Device, layout PipelineLayout) {
	if c.destroyPipelineLayout == nil {
		return
	}
	args := []unsafe.Pointer{ptrTo(device), ptrTo(layout), ptrToPtr(nil)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroyPipelineLayout, nil, args)
}

func (c *Commands) CreateComputePipelines(device Device, info *ComputePipelineCreateInfo) (Pipeline, Result) {
	var pipeline Pipeline
	var result int32
	args := []unsafe.Pointer{
		ptrTo(device), ptrTo(PipelineCache(0)), ptrTo(uint32(1)),
		ptrToPtr(unsafe.Pointer(info)), ptrToPtr(nil), ptrToPtr(unsafe.Pointer(&pipeline)),
	}
	_ = ffi.CallFunction(&sigResultCreatePipelines, c.createComputePipelines, unsafe.Pointer(&result), args)
	return pipeline, Result(result)
}

func (c *Commands) DestroyPipeline(device Device, pipeline Pipeline) {
	if c.destroyPipeline == nil {
		return
	}
	args := []unsafe.Pointer{ptrTo(device), ptrTo(pipeline), ptrToPtr(nil)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroyPipeline, nil, args)
}

func (c *Commands) CreateCommandPool(device Device, info *CommandPoolCreateInfo) (CommandPool, Result) {
	var pool CommandPool
	var result int32
	args := []unsafe.Pointer{ptrTo(device), ptrToPtr(unsafe.Pointer(info)), ptrToPtr(nil), ptrToPtr(unsafe.Pointer(&pool))}
	_ = ffi.CallFunction(&sigResultHandlePtrPtrPtr, c.createCommandPool, unsafe.Pointer(&result), args)
	return pool, Result(result)
}

func (c *Commands) DestroyCommandPool(device Device, pool CommandPool) {
	if c.destroyCommandPool == nil {
		return
	}
	args := []unsafe.Pointer{ptrTo(device), ptrTo(pool), ptrToPtr(nil)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroyCommandPool, nil, args)
}

func (c *Commands) AllocateCommandBuffers(device Device, info *CommandBufferAllocateInfo) ([]CommandBuffer, Result) {
	count := info.CommandBufferCount
	buffers := make([]CommandBuffer, count)
	var result int32
	args := []unsafe.Pointer{ptrTo(device), ptrToPtr(unsafe.Pointer(info)), ptrToPtr(unsafe.Pointer(&buffers[0]))}
	_ = ffi.CallFunction(&sigResultHandlePtrPtr, c.allocateCommandBuffers, unsafe.Pointer(&result), args)
	return buffers, Result(result)
}

func (c *Commands) FreeCommandBuffers(device Device, pool CommandPool, buffers []CommandBuffer) {
	if c.freeCommandBuffers == nil || len(buffers) == 0 {
		return
	}
	args := []unsafe.Pointer{ptrTo(device), ptrTo(pool), ptrTo(uint32(len(buffers))), ptrToPtr(unsafe.Pointer(&buffers[0]))}
	_ = ffi.CallFunction(&sigVoidHandleHandleU32Ptr, c.freeCommandBuffers, nil, args)
}

func (c *Commands) BeginCommandBuffer(cb CommandBuffer, info *CommandBufferBeginInfo) Result {
	var result int32
	args := []unsafe.Pointer{ptrTo(cb), ptrToPtr(unsafe.Pointer(info))}
	_ = ffi.CallFunction(&sigResultHandlePtr, c.beginCommandBuffer, unsafe.Pointer(&result), args)
	return Result(result)
}

func (c *Commands) EndCommandBuffer(cb CommandBuffer) Result {
	var result int32
	args := []unsafe.Pointer{ptrTo(cb)}
	_ = ffi.CallFunction(&sigResultHandle, c.endCommandBuffer, unsafe.Pointer(&result), args)
	return Result(result)
}

func (c *Commands) CmdBindPipeline(cb CommandBuffer, bindPoint PipelineBindPoint, pipeline Pipeline) {
	args := []unsafe.Pointer{ptrTo(cb), ptrTo(bindPoint), ptrTo(pipeline)}
	_ = ffi.CallFunction(&sigVoidHandleU32Handle, c.cmdBindPipeline, nil, args)
}

func (c *Commands) CmdBindDescriptorSets(cb CommandBuffer, bindPoint PipelineBindPoint, layout PipelineLayout, sets []DescriptorSet) {
	if len(sets) == 0 {
		return
	}
	args := []unsafe.Pointer{
		ptrTo(cb), ptrTo(bindPoint), ptrTo(layout), ptrTo(uint32(0)),
		ptrTo(uint32(len(sets))), ptrToPtr(unsafe.Pointer(&sets[0])), ptrTo(uint32(0)), ptrToPtr(nil),
	}
	_ = ffi.CallFunction(&sigVoidCmdBindDescriptorSets, c.cmdBindDescriptorSets, nil, args)
}

func (c *Commands) CmdDispatch(cb CommandBuffer, x, y, z uint32) {
	args := []unsafe.Pointer{ptrTo(cb), ptrTo(x), ptrTo(y), ptrTo(z)}
	_ = ffi.CallFunction(&sigVoidHandleU32U32U32, c.cmdDispatch, nil, args)
}

func (c *Commands) CmdPipelineBarrier(cb CommandBuffer, srcStage, dstStage PipelineStageFlags, bufferBarriers []BufferMemoryBarrier) {
	if len(bufferBarriers) == 0 {
		return
	}
	args := []unsafe.Pointer{
		ptrTo(cb), ptrTo(srcStage), ptrTo(dstStage), ptrTo(uint32(0)),
		ptrTo(uint32(0)), ptrToPtr(nil),
		ptrTo(uint32(len(bufferBarriers))), ptrToPtr(unsafe.Pointer(&bufferBarriers[0])),
		ptrTo(uint32(0)), ptrToPtr(nil),
	}
	_ = ffi.CallFunction(&sigVoidCmdPipelineBarrier, c.cmdPipelineBarrier, nil, args)
}

func (c *Commands) CreateFence(device Device, info *FenceCreateInfo) (Fence, Result) {
	var fence Fence
	var result int32
	args := []unsafe.Pointer{ptrTo(device), ptrToPtr(unsafe.Pointer(info)), ptrToPtr(nil), ptrToPtr(unsafe.Pointer(&fence))}
	_ = ffi.CallFunction(&sigResultHandlePtrPtrPtr, c.createFence, unsafe.Pointer(&result), args)
	return fence, Result(result)
}

func (c *Commands) DestroyFence(device Device, fence Fence) {
	if c.destroyFence == nil {
		return
	}
	args := []unsafe.Pointer{ptrTo(device), ptrTo(fence), ptrToPtr(nil)}
	_ = ffi.CallFunction(&sigVoidHandleHandlePtr, c.destroyFence, nil, args)
}

func (c *Commands) WaitForFences(device Device, fences []Fence, waitAll bool, timeoutNs uint64) Result {
	var w uint32
	if waitAll {
		w = 1
	}
	var result int32
	args := []unsafe.Pointer{ptrTo(device), ptrTo(uint32(len(fences))), ptrToPtr(unsafe.Pointer(&fences[0])), ptrTo(w), ptrTo(timeoutNs)}
	_ = ffi.CallFunction(&sigResultWaitForFences, c.waitForFences, unsafe.Pointer(&result), args)
	return Result(result)
}

func (c *Commands) ResetFences(device Device, fences []Fence) Result {
	var result int32
	args := []unsafe.Pointer{ptrTo(device), ptrTo(uint32(len(fences))), ptrToPtr(unsafe.Pointer(&fences[0]))}
	_ = ffi.CallFunction(&sigResultHandleU32Ptr, c.resetFences, unsafe.Pointer(&result), args)
	return Result(result)
}

func (c *Commands) QueueSubmit(queue Queue, submit *SubmitInfo, fence Fence) Result {
	var result int32
	args := []unsafe.Pointer{ptrTo(queue), ptrTo(uint32(1)), ptrToPtr(unsafe.Pointer(submit)), ptrTo(fence)}
	_ = ffi.CallFunction(&sigResultHandleU32PtrHandle, c.queueSubmit, unsafe.Pointer(&result), args)
	return Result(result)
}

func (c *Commands) QueueWaitIdle(queue Queue) Result {
	var result int32
	args := []unsafe.Pointer{ptrTo(queue)}
	_ = ffi.CallFunction(&sigResultHandle, c.queueWaitIdle, unsafe.Pointer(&result), args)
	return Result(result)
}

func (c *Commands) GetFenceStatus(device Device, fence Fence) Result {
	var result int32
	args := []unsafe.Pointer{ptrTo(device), ptrTo(fence)}
	_ = ffi.CallFunction(&sigResultHandleHandle, c.getFenceStatus, unsafe.Pointer(&result), args)
	return Result(result)
}
