// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Signature templates reused across the compute-only entry points this
// package binds - Vulkan has far more unique parameter shapes than this,
// but the compute path only ever needs these.

package vk

import (
	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

var (
	sigResultPtrPtrPtr       types.CallInterface // VkResult(ptr,ptr,ptr): vkCreateInstance
	sigResultHandlePtrPtrPtr types.CallInterface // VkResult(handle,ptr,ptr,ptr): vkCreate{Buffer,ShaderModule,...}
	sigResultHandlePtrPtr    types.CallInterface // VkResult(handle,ptr,ptr): vkAllocateDescriptorSets, vkAllocateCommandBuffers
	sigVoidHandlePtr         types.CallInterface // void(handle,ptr): vkDestroyInstance/vkDestroyDevice
	sigVoidHandleHandlePtr   types.CallInterface // void(handle,handle,ptr): vkDestroyBuffer/vkFreeMemory
	sigVoidHandleU32Ptr      types.CallInterface // void(handle,u32,ptr): vkGetPhysicalDeviceQueueFamilyProperties
	sigResultHandleU32PtrPtr types.CallInterface // VkResult(handle,u32,ptr,ptr): vkEnumeratePhysicalDevices
	sigResultHandle4         types.CallInterface // VkResult(handle,handle,handle,u64): vkBindBufferMemory
	sigResultMapMemory       types.CallInterface // VkResult(handle,handle,u64,u64,u32,ptr): vkMapMemory
	sigVoidHandleHandle      types.CallInterface // void(handle,handle): vkUnmapMemory
	sigVoidDeviceUpdateDescriptorSets types.CallInterface // void(handle,u32,ptr,u32,ptr): vkUpdateDescriptorSets
	sigResultCreatePipelines types.CallInterface // VkResult(handle,handle,u32,ptr,ptr,ptr): vkCreateComputePipelines
	sigResultHandleU32PtrHandle types.CallInterface // VkResult(handle,u32,ptr,handle): vkQueueSubmit
	sigResultWaitForFences   types.CallInterface // VkResult(handle,u32,ptr,u32,u64): vkWaitForFences
	sigResultHandleHandle    types.CallInterface // VkResult(handle,handle): vkGetFenceStatus
	sigResultHandleU32Ptr    types.CallInterface // VkResult(handle,u32,ptr): vkResetFences
	sigVoidDeviceU32Ptr      types.CallInterface // void(handle,u32,u32,ptr): vkGetDeviceQueue
	sigVoidHandleU32Handle   types.CallInterface // void(handle,u32,handle): vkCmdBindPipeline
	sigVoidCmdBindDescriptorSets types.CallInterface // void(handle,u32,handle,u32,u32,ptr,u32,ptr): vkCmdBindDescriptorSets
	sigVoidHandleU32U32U32   types.CallInterface // void(handle,u32,u32,u32): vkCmdDispatch
	sigVoidCmdPipelineBarrier types.CallInterface // void(handle,u32,u32,u32,u32,ptr,u32,ptr,u32,ptr): vkCmdPipelineBarrier
	sigResultHandle          types.CallInterface // VkResult(handle): vkEndCommandBuffer/vkQueueWaitIdle
	sigVoidHandleHandleU32Ptr types.CallInterface // void(handle,handle,u32,ptr): vkFreeCommandBuffers
	sigResultHandlePtr       types.CallInterface // VkResult(handle,ptr): vkBeginCommandBuffer
)

func initSignatures() error {
	ptr := types.PointerTypeDescriptor
	u32 := types.UInt32TypeDescriptor
	u64 := types.UInt64TypeDescriptor
	i32 := types.SInt32TypeDescriptor
	voidRet := types.VoidTypeDescriptor
	result := types.SInt32TypeDescriptor
	_ = i32

	type prep struct {
		dst  *types.CallInterface
		ret  *types.TypeDescriptor
		args []*types.TypeDescriptor
	}
	preps := []prep{
		{&sigResultPtrPtrPtr, result, []*types.TypeDescriptor{ptr, ptr, ptr}},
		{&sigResultHandlePtrPtrPtr, result, []*types.TypeDescriptor{u64, ptr, ptr, ptr}},
		{&sigResultHandlePtrPtr, result, []*types.TypeDescriptor{u64, ptr, ptr}},
		{&sigVoidHandlePtr, voidRet, []*types.TypeDescriptor{u64, ptr}},
		{&sigVoidHandleHandlePtr, voidRet, []*types.TypeDescriptor{u64, u64, ptr}},
		{&sigVoidHandleU32Ptr, voidRet, []*types.TypeDescriptor{u64, u32, ptr}},
		{&sigResultHandleU32PtrPtr, result, []*types.TypeDescriptor{u64, u32, ptr, ptr}},
		{&sigResultHandle4, result, []*types.TypeDescriptor{u64, u64, u64, u64}},
		{&sigResultMapMemory, result, []*types.TypeDescriptor{u64, u64, u64, u64, u32, ptr}},
		{&sigVoidHandleHandle, voidRet, []*types.TypeDescriptor{u64, u64}},
		{&sigVoidDeviceUpdateDescriptorSets, voidRet, []*types.TypeDescriptor{u64, u32, ptr, u32, ptr}},
		{&sigResultCreatePipelines, result, []*types.TypeDescriptor{u64, u64, u32, ptr, ptr, ptr}},
		{&sigResultHandleU32PtrHandle, result, []*types.TypeDescriptor{u64, u32, ptr, u64}},
		{&sigResultWaitForFences, result, []*types.TypeDescriptor{u64, u32, ptr, u32, u64}},
		{&sigResultHandleHandle, result, []*types.TypeDescriptor{u64, u64}},
		{&sigResultHandleU32Ptr, result, []*types.TypeDescriptor{u64, u32, ptr}},
		{&sigVoidDeviceU32Ptr, voidRet, []*types.TypeDescriptor{u64, u32, u32, ptr}},
		{&sigVoidHandleU32Handle, voidRet, []*types.TypeDescriptor{u64, u32, u64}},
		{&sigVoidCmdBindDescriptorSets, voidRet, []*types.TypeDescriptor{u64, u32, u64, u32, u32, ptr, u32, ptr}},
		{&sigVoidHandleU32U32U32, voidRet, []*types.TypeDescriptor{u64, u32, u32, u32}},
		{&sigVoidCmdPipelineBarrier, voidRet, []*types.TypeDescriptor{u64, u32, u32, u32, u32, ptr, u32, ptr, u32, ptr}},
		{&sigResultHandle, result, []*types.TypeDescriptor{u64}},
		{&sigVoidHandleHandleU32Ptr, voidRet, []*types.TypeDescriptor{u64, u64, u32, ptr}},
		{&sigResultHandlePtr, result, []*types.TypeDescriptor{u64, ptr}},
	}
	for _, p := range preps {
		if err := ffi.PrepareCallInterface(p.dst, types.DefaultCall, p.ret, p.args); err != nil {
			return err
		}
	}
	return nil
}
