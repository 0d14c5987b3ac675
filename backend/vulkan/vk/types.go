// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vk

import "unsafe"

// Dispatchable and non-dispatchable handles are both represented as
// uint64, matching the VK_DEFINE_HANDLE / VK_DEFINE_NON_DISPATCHABLE_HANDLE
// wire representation goffi reads them as.
type (
	Instance             uint64
	PhysicalDevice       uint64
	Device               uint64
	Queue                uint64
	DeviceMemory         uint64
	Buffer               uint64
	ShaderModule         uint64
	PipelineLayout       uint64
	PipelineCache        uint64
	Pipeline             uint64
	DescriptorSetLayout  uint64
	DescriptorPool       uint64
	DescriptorSet        uint64
	CommandPool          uint64
	CommandBuffer        uint64
	Fence                uint64
)

type Result int32

const (
	Success                   Result = 0
	NotReady                  Result = 1
	Timeout                   Result = 2
	ErrorOutOfHostMemory      Result = -1
	ErrorOutOfDeviceMemory    Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost           Result = -4
	ErrorMemoryMapFailed      Result = -5
	ErrorLayerNotPresent      Result = -6
	ErrorExtensionNotPresent  Result = -7
	ErrorFeatureNotPresent    Result = -8
	ErrorIncompatibleDriver   Result = -9
	ErrorTooManyObjects       Result = -10
)

func (r Result) String() string {
	switch r {
	case Success:
		return "VK_SUCCESS"
	case NotReady:
		return "VK_NOT_READY"
	case Timeout:
		return "VK_TIMEOUT"
	case ErrorOutOfHostMemory:
		return "VK_ERROR_OUT_OF_HOST_MEMORY"
	case ErrorOutOfDeviceMemory:
		return "VK_ERROR_OUT_OF_DEVICE_MEMORY"
	case ErrorInitializationFailed:
		return "VK_ERROR_INITIALIZATION_FAILED"
	case ErrorDeviceLost:
		return "VK_ERROR_DEVICE_LOST"
	case ErrorMemoryMapFailed:
		return "VK_ERROR_MEMORY_MAP_FAILED"
	case ErrorIncompatibleDriver:
		return "VK_ERROR_INCOMPATIBLE_DRIVER"
	default:
		return "VK_ERROR_UNKNOWN"
	}
}

type StructureType uint32

const (
	StructureTypeApplicationInfo           StructureType = 0
	StructureTypeInstanceCreateInfo        StructureType = 1
	StructureTypeDeviceQueueCreateInfo     StructureType = 2
	StructureTypeDeviceCreateInfo          StructureType = 3
	StructureTypeSubmitInfo                StructureType = 4
	StructureTypeMemoryAllocateInfo        StructureType = 5
	StructureTypeFenceCreateInfo           StructureType = 8
	StructureTypeBufferCreateInfo          StructureType = 12
	StructureTypeShaderModuleCreateInfo    StructureType = 16
	StructureTypePipelineShaderStageInfo   StructureType = 18
	StructureTypeComputePipelineCreateInfo StructureType = 29
	StructureTypePipelineLayoutCreateInfo  StructureType = 30
	StructureTypeDescriptorSetLayoutInfo   StructureType = 32
	StructureTypeDescriptorPoolCreateInfo  StructureType = 33
	StructureTypeDescriptorSetAllocInfo    StructureType = 34
	StructureTypeWriteDescriptorSet        StructureType = 35
	StructureTypeCommandPoolCreateInfo     StructureType = 39
	StructureTypeCommandBufferAllocInfo    StructureType = 40
	StructureTypeCommandBufferBeginInfo    StructureType = 42
	StructureTypeMemoryBarrier             StructureType = 46
	StructureTypeBufferMemoryBarrier       StructureType = 44
)

type (
	BufferUsageFlags        uint32
	MemoryPropertyFlags     uint32
	MemoryHeapFlags         uint32
	QueueFlags              uint32
	ShaderStageFlags        uint32
	PipelineStageFlags      uint32
	AccessFlags             uint32
	DescriptorType          uint32
	CommandPoolCreateFlags  uint32
	CommandBufferUsageFlags uint32
	FenceCreateFlags        uint32
	PipelineBindPoint       uint32
	CommandBufferLevel      uint32
)

const (
	BufferUsageTransferSrc         BufferUsageFlags = 0x00000001
	BufferUsageTransferDst         BufferUsageFlags = 0x00000002
	BufferUsageUniformBuffer       BufferUsageFlags = 0x00000010
	BufferUsageStorageBuffer       BufferUsageFlags = 0x00000020

	MemoryPropertyDeviceLocal  MemoryPropertyFlags = 0x00000001
	MemoryPropertyHostVisible  MemoryPropertyFlags = 0x00000002
	MemoryPropertyHostCoherent MemoryPropertyFlags = 0x00000004

	QueueComputeBit QueueFlags = 0x00000002

	ShaderStageCompute ShaderStageFlags = 0x00000020

	PipelineStageTopOfPipe       PipelineStageFlags = 0x00000001
	PipelineStageComputeShader   PipelineStageFlags = 0x00000800
	PipelineStageTransfer        PipelineStageFlags = 0x00001000
	PipelineStageHost            PipelineStageFlags = 0x00004000
	PipelineStageAllCommands     PipelineStageFlags = 0x00010000

	AccessShaderWrite        AccessFlags = 0x00000040
	AccessShaderRead         AccessFlags = 0x00000020
	AccessHostRead           AccessFlags = 0x00002000
	AccessHostWrite          AccessFlags = 0x00004000
	AccessTransferRead       AccessFlags = 0x00000800
	AccessTransferWrite      AccessFlags = 0x00001000

	DescriptorTypeStorageBuffer DescriptorType = 7
	DescriptorTypeUniformBuffer DescriptorType = 6

	CommandPoolCreateResetCommandBuffer CommandPoolCreateFlags = 0x00000002

	CommandBufferUsageOneTimeSubmit CommandBufferUsageFlags = 0x00000001

	PipelineBindPointCompute PipelineBindPoint = 1

	CommandBufferLevelPrimary CommandBufferLevel = 0

	MemoryHeapDeviceLocal MemoryHeapFlags = 0x00000001
)

const QueueFamilyIgnored uint32 = 0xFFFFFFFF
const WholeSize uint64 = ^uint64(0)

// MakeAPIVersion packs the variant/major/minor/patch components into the
// uint32 VkApplicationInfo.apiVersion expects.
func MakeAPIVersion(variant, major, minor, patch uint32) uint32 {
	return (variant << 29) | (major << 22) | (minor << 12) | patch
}

// ApplicationInfo mirrors VkApplicationInfo.
type ApplicationInfo struct {
	SType              StructureType
	PNext              unsafe.Pointer
	PApplicationName   unsafe.Pointer
	ApplicationVersion uint32
	PEngineName        unsafe.Pointer
	EngineVersion      uint32
	APIVersion         uint32
}

// InstanceCreateInfo mirrors VkInstanceCreateInfo.
type InstanceCreateInfo struct {
	SType                   StructureType
	PNext                   unsafe.Pointer
	Flags                   uint32
	PApplicationInfo        *ApplicationInfo
	EnabledLayerCount       uint32
	PpEnabledLayerNames     unsafe.Pointer
	EnabledExtensionCount   uint32
	PpEnabledExtensionNames unsafe.Pointer
}

// QueueFamilyProperties mirrors VkQueueFamilyProperties.
type QueueFamilyProperties struct {
	QueueFlags                  QueueFlags
	QueueCount                  uint32
	TimestampValidBits           uint32
	MinImageTransferGranWidth    uint32
	MinImageTransferGranHeight   uint32
	MinImageTransferGranDepth    uint32
}

// PhysicalDeviceLimits mirrors the 504-byte VkPhysicalDeviceLimits. Only
// the compute limits this backend reads are named; the fields before and
// after them are opaque padding, so each named field sits at its real
// offset.
type PhysicalDeviceLimits struct {
	_                               [27]uint64 // maxImageDimension1D .. maxFragmentCombinedOutputResources (216 bytes)
	MaxComputeSharedMemorySize      uint32
	MaxComputeWorkGroupCount        [3]uint32
	MaxComputeWorkGroupInvocations  uint32
	MaxComputeWorkGroupSize         [3]uint32
	_ [256]byte // remainder of VkPhysicalDeviceLimits, unread by this package
}

// PhysicalDeviceProperties mirrors VkPhysicalDeviceProperties.
type PhysicalDeviceProperties struct {
	APIVersion       uint32
	DriverVersion    uint32
	VendorID         uint32
	DeviceID         uint32
	DeviceType       uint32
	DeviceName       [256]byte
	PipelineCacheUUID [16]byte
	Limits           PhysicalDeviceLimits
	SparseProperties [20]byte // VkPhysicalDeviceSparseProperties: five VkBool32
}

// MemoryType mirrors VkMemoryType.
type MemoryType struct {
	PropertyFlags MemoryPropertyFlags
	HeapIndex     uint32
}

// MemoryHeap mirrors VkMemoryHeap.
type MemoryHeap struct {
	Size  uint64
	Flags MemoryHeapFlags
}

// PhysicalDeviceMemoryProperties mirrors VkPhysicalDeviceMemoryProperties.
type PhysicalDeviceMemoryProperties struct {
	MemoryTypeCount uint32
	MemoryTypes     [32]MemoryType
	MemoryHeapCount uint32
	MemoryHeaps     [16]MemoryHeap
}

// DeviceQueueCreateInfo mirrors VkDeviceQueueCreateInfo.
type DeviceQueueCreateInfo struct {
	SType            StructureType
	PNext            unsafe.Pointer
	Flags            uint32
	QueueFamilyIndex uint32
	QueueCount       uint32
	PQueuePriorities *float32
}

// DeviceCreateInfo mirrors VkDeviceCreateInfo.
type DeviceCreateInfo struct {
	SType                   StructureType
	PNext                   unsafe.Pointer
	Flags                   uint32
	QueueCreateInfoCount    uint32
	PQueueCreateInfos       *DeviceQueueCreateInfo
	EnabledLayerCount       uint32
	PpEnabledLayerNames     unsafe.Pointer
	EnabledExtensionCount   uint32
	PpEnabledExtensionNames unsafe.Pointer
	PEnabledFeatures        unsafe.Pointer
}

// MemoryAllocateInfo mirrors VkMemoryAllocateInfo.
type MemoryAllocateInfo struct {
	SType           StructureType
	PNext           unsafe.Pointer
	AllocationSize  uint64
	MemoryTypeIndex uint32
}

// MemoryRequirements mirrors VkMemoryRequirements.
type MemoryRequirements struct {
	Size           uint64
	Alignment      uint64
	MemoryTypeBits uint32
}

// BufferCreateInfo mirrors VkBufferCreateInfo.
type BufferCreateInfo struct {
	SType                 StructureType
	PNext                 unsafe.Pointer
	Flags                 uint32
	Size                  uint64
	Usage                 BufferUsageFlags
	SharingMode           uint32
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   unsafe.Pointer
}

// ShaderModuleCreateInfo mirrors VkShaderModuleCreateInfo.
type ShaderModuleCreateInfo struct {
	SType    StructureType
	PNext    unsafe.Pointer
	Flags    uint32
	CodeSize uintptr
	PCode    unsafe.Pointer
}

// DescriptorSetLayoutBinding mirrors VkDescriptorSetLayoutBinding.
type DescriptorSetLayoutBinding struct {
	Binding            uint32
	DescriptorType     DescriptorType
	DescriptorCount    uint32
	StageFlags         ShaderStageFlags
	PImmutableSamplers unsafe.Pointer
}

// DescriptorSetLayoutCreateInfo mirrors VkDescriptorSetLayoutCreateInfo.
type DescriptorSetLayoutCreateInfo struct {
	SType        StructureType
	PNext        unsafe.Pointer
	Flags        uint32
	BindingCount uint32
	PBindings    *DescriptorSetLayoutBinding
}

// DescriptorPoolSize mirrors VkDescriptorPoolSize.
type DescriptorPoolSize struct {
	Type            DescriptorType
	DescriptorCount uint32
}

// DescriptorPoolCreateInfo mirrors VkDescriptorPoolCreateInfo.
type DescriptorPoolCreateInfo struct {
	SType         StructureType
	PNext         unsafe.Pointer
	Flags         uint32
	MaxSets       uint32
	PoolSizeCount uint32
	PPoolSizes    *DescriptorPoolSize
}

// DescriptorSetAllocateInfo mirrors VkDescriptorSetAllocateInfo.
type DescriptorSetAllocateInfo struct {
	SType              StructureType
	PNext              unsafe.Pointer
	DescriptorPool     DescriptorPool
	DescriptorSetCount uint32
	PSetLayouts        *DescriptorSetLayout
}

// DescriptorBufferInfo mirrors VkDescriptorBufferInfo.
type DescriptorBufferInfo struct {
	Buffer Buffer
	Offset uint64
	Range  uint64
}

// WriteDescriptorSet mirrors VkWriteDescriptorSet.
type WriteDescriptorSet struct {
	SType            StructureType
	PNext            unsafe.Pointer
	DstSet           DescriptorSet
	DstBinding       uint32
	DstArrayElement  uint32
	DescriptorCount  uint32
	DescriptorType   DescriptorType
	PImageInfo       unsafe.Pointer
	PBufferInfo      *DescriptorBufferInfo
	PTexelBufferView unsafe.Pointer
}

// PipelineLayoutCreateInfo mirrors VkPipelineLayoutCreateInfo.
type PipelineLayoutCreateInfo struct {
	SType                  StructureType
	PNext                  unsafe.Pointer
	Flags                  uint32
	SetLayoutCount         uint32
	PSetLayouts            *DescriptorSetLayout
	PushConstantRangeCount uint32
	PPushConstantRanges    unsafe.Pointer
}

// PipelineShaderStageCreateInfo mirrors VkPipelineShaderStageCreateInfo.
type PipelineShaderStageCreateInfo struct {
	SType               StructureType
	PNext               unsafe.Pointer
	Flags               uint32
	Stage               ShaderStageFlags
	Module              ShaderModule
	PName               unsafe.Pointer
	PSpecializationInfo unsafe.Pointer
}

// ComputePipelineCreateInfo mirrors VkComputePipelineCreateInfo.
type ComputePipelineCreateInfo struct {
	SType              StructureType
	PNext              unsafe.Pointer
	Flags              uint32
	Stage              PipelineShaderStageCreateInfo
	Layout             PipelineLayout
	BasePipelineHandle Pipeline
	BasePipelineIndex  int32
}

// CommandPoolCreateInfo mirrors VkCommandPoolCreateInfo.
type CommandPoolCreateInfo struct {
	SType            StructureType
	PNext            unsafe.Pointer
	Flags            CommandPoolCreateFlags
	QueueFamilyIndex uint32
}

// CommandBufferAllocateInfo mirrors VkCommandBufferAllocateInfo.
type CommandBufferAllocateInfo struct {
	SType              StructureType
	PNext              unsafe.Pointer
	CommandPool        CommandPool
	Level              CommandBufferLevel
	CommandBufferCount uint32
}

// CommandBufferBeginInfo mirrors VkCommandBufferBeginInfo.
type CommandBufferBeginInfo struct {
	SType            StructureType
	PNext            unsafe.Pointer
	Flags            CommandBufferUsageFlags
	PInheritanceInfo unsafe.Pointer
}

// SubmitInfo mirrors VkSubmitInfo.
type SubmitInfo struct {
	SType                StructureType
	PNext                unsafe.Pointer
	WaitSemaphoreCount   uint32
	PWaitSemaphores      unsafe.Pointer
	PWaitDstStageMask    unsafe.Pointer
	CommandBufferCount   uint32
	PCommandBuffers      *CommandBuffer
	SignalSemaphoreCount uint32
	PSignalSemaphores    unsafe.Pointer
}

// FenceCreateInfo mirrors VkFenceCreateInfo.
type FenceCreateInfo struct {
	SType StructureType
	PNext unsafe.Pointer
	Flags FenceCreateFlags
}

// BufferMemoryBarrier mirrors VkBufferMemoryBarrier.
type BufferMemoryBarrier struct {
	SType               StructureType
	PNext               unsafe.Pointer
	SrcAccessMask       AccessFlags
	DstAccessMask       AccessFlags
	SrcQueueFamilyIndex uint32
	DstQueueFamilyIndex uint32
	Buffer              Buffer
	Offset              uint64
	Size                uint64
}
