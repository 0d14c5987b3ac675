// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"sync"
	"time"
	"unsafe"

	"github.com/kerntopia/kerntopia/backend/vulkan/vk"
	"github.com/kerntopia/kerntopia/kerr"
	"github.com/kerntopia/kerntopia/klog"
	"github.com/kerntopia/kerntopia/runner"
	"github.com/kerntopia/kerntopia/system"
)

// Runner ties one Vulkan logical device, a fixed 3-binding descriptor set
// (0/1 storage buffers, 2 uniform buffer), and one reusable command
// buffer to a single device session. Dispatch is synchronous - it submits
// and waits on the fence itself - so Wait only re-checks the fence status
// rather than blocking, and LastTiming never reports a stale sample.
type Runner struct {
	mu sync.Mutex

	cmds             *vk.Commands
	instance         vk.Instance
	physicalDevice   vk.PhysicalDevice
	device           vk.Device
	queue            vk.Queue
	queueFamilyIndex uint32
	memProps         vk.PhysicalDeviceMemoryProperties
	deviceInfo       system.DeviceInfo

	descriptorSetLayout vk.DescriptorSetLayout
	descriptorPool      vk.DescriptorPool
	descriptorSet       vk.DescriptorSet
	pipelineLayout      vk.PipelineLayout
	pipeline            vk.Pipeline
	shaderModule        vk.ShaderModule
	commandPool         vk.CommandPool
	commandBuffer       vk.CommandBuffer
	fence               vk.Fence

	bindings     map[int]*Buffer
	paramsBuffer *Buffer
	timing       runner.TimingSample
}

func newRunner(cmds *vk.Commands, instance vk.Instance, pd vk.PhysicalDevice, info system.DeviceInfo) (*Runner, error) {
	families := cmds.GetPhysicalDeviceQueueFamilyProperties(pd)
	queueFamilyIndex := uint32(0)
	found := false
	for i, f := range families {
		if f.QueueFlags&vk.QueueComputeBit != 0 {
			queueFamilyIndex = uint32(i)
			found = true
			break
		}
	}
	if !found {
		return nil, kerr.New(kerr.CategoryBackend, kerr.CodeDeviceNotFound, "no Vulkan queue family supports compute")
	}

	priority := float32(1.0)
	queueInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: queueFamilyIndex,
		QueueCount:       1,
		PQueuePriorities: &priority,
	}
	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: 1,
		PQueueCreateInfos:    &queueInfo,
	}
	device, result := cmds.CreateDevice(pd, &deviceCreateInfo)
	if result != vk.Success {
		return nil, vkError(result, kerr.CodeBackendInitFailed, "failed to create Vulkan logical device")
	}
	if err := cmds.LoadDevice(device); err != nil {
		cmds.DestroyDevice(device)
		return nil, kerr.Wrap(kerr.CategoryBackend, kerr.CodeBackendInitFailed, "failed to load Vulkan device functions", err)
	}

	queue := cmds.GetDeviceQueue(device, queueFamilyIndex, 0)
	memProps := cmds.GetPhysicalDeviceMemoryProperties(pd)

	bindings := []vk.DescriptorSetLayoutBinding{
		{Binding: 0, DescriptorType: vk.DescriptorTypeStorageBuffer, DescriptorCount: 1, StageFlags: vk.ShaderStageCompute},
		{Binding: 1, DescriptorType: vk.DescriptorTypeStorageBuffer, DescriptorCount: 1, StageFlags: vk.ShaderStageCompute},
		{Binding: 2, DescriptorType: vk.DescriptorTypeUniformBuffer, DescriptorCount: 1, StageFlags: vk.ShaderStageCompute},
	}
	layoutInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutInfo,
		BindingCount: uint32(len(bindings)),
		PBindings:    &bindings[0],
	}
	setLayout, result := cmds.CreateDescriptorSetLayout(device, &layoutInfo)
	if result != vk.Success {
		cmds.DestroyDevice(device)
		return nil, vkError(result, kerr.CodeBackendInitFailed, "failed to create Vulkan descriptor set layout")
	}

	poolSizes := []vk.DescriptorPoolSize{
		{Type: vk.DescriptorTypeStorageBuffer, DescriptorCount: 2},
		{Type: vk.DescriptorTypeUniformBuffer, DescriptorCount: 1},
	}
	poolInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       1,
		PoolSizeCount: uint32(len(poolSizes)),
		PPoolSizes:    &poolSizes[0],
	}
	pool, result := cmds.CreateDescriptorPool(device, &poolInfo)
	if result != vk.Success {
		cmds.DestroyDescriptorSetLayout(device, setLayout)
		cmds.DestroyDevice(device)
		return nil, vkError(result, kerr.CodeBackendInitFailed, "failed to create Vulkan descriptor pool")
	}

	allocInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocInfo,
		DescriptorPool:     pool,
		DescriptorSetCount: 1,
		PSetLayouts:        &setLayout,
	}
	sets, result := cmds.AllocateDescriptorSets(device, &allocInfo)
	if result != vk.Success || len(sets) == 0 {
		cmds.DestroyDescriptorPool(device, pool)
		cmds.DestroyDescriptorSetLayout(device, setLayout)
		cmds.DestroyDevice(device)
		return nil, vkError(result, kerr.CodeBackendInitFailed, "failed to allocate Vulkan descriptor set")
	}

	pipelineLayoutInfo := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: 1,
		PSetLayouts:    &setLayout,
	}
	pipelineLayout, result := cmds.CreatePipelineLayout(device, &pipelineLayoutInfo)
	if result != vk.Success {
		cmds.DestroyDescriptorPool(device, pool)
		cmds.DestroyDescriptorSetLayout(device, setLayout)
		cmds.DestroyDevice(device)
		return nil, vkError(result, kerr.CodeBackendInitFailed, "failed to create Vulkan pipeline layout")
	}

	poolCreateInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateResetCommandBuffer,
		QueueFamilyIndex: queueFamilyIndex,
	}
	cmdPool, result := cmds.CreateCommandPool(device, &poolCreateInfo)
	if result != vk.Success {
		cmds.DestroyPipelineLayout(device, pipelineLayout)
		cmds.DestroyDescriptorPool(device, pool)
		cmds.DestroyDescriptorSetLayout(device, setLayout)
		cmds.DestroyDevice(device)
		return nil, vkError(result, kerr.CodeBackendInitFailed, "failed to create Vulkan command pool")
	}

	cmdBufInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocInfo,
		CommandPool:        cmdPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	cmdBufs, result := cmds.AllocateCommandBuffers(device, &cmdBufInfo)
	if result != vk.Success || len(cmdBufs) == 0 {
		cmds.DestroyCommandPool(device, cmdPool)
		cmds.DestroyPipelineLayout(device, pipelineLayout)
		cmds.DestroyDescriptorPool(device, pool)
		cmds.DestroyDescriptorSetLayout(device, setLayout)
		cmds.DestroyDevice(device)
		return nil, vkError(result, kerr.CodeBackendInitFailed, "failed to allocate Vulkan command buffer")
	}

	fenceInfo := vk.FenceCreateInfo{SType: vk.StructureTypeFenceCreateInfo}
	fence, result := cmds.CreateFence(device, &fenceInfo)
	if result != vk.Success {
		cmds.FreeCommandBuffers(device, cmdPool, cmdBufs)
		cmds.DestroyCommandPool(device, cmdPool)
		cmds.DestroyPipelineLayout(device, pipelineLayout)
		cmds.DestroyDescriptorPool(device, pool)
		cmds.DestroyDescriptorSetLayout(device, setLayout)
		cmds.DestroyDevice(device)
		return nil, vkError(result, kerr.CodeBackendInitFailed, "failed to create Vulkan fence")
	}

	r := &Runner{
		cmds: cmds, instance: instance, physicalDevice: pd, device: device, queue: queue,
		queueFamilyIndex: queueFamilyIndex, memProps: memProps, deviceInfo: info,

		descriptorSetLayout: setLayout,
		descriptorPool:      pool,
		descriptorSet:       sets[0],
		pipelineLayout:      pipelineLayout,
		commandPool:         cmdPool,
		commandBuffer:       cmdBufs[0],
		fence:               fence,

		bindings: make(map[int]*Buffer),
	}
	klog.Logger().Info("vulkan: runner initialized", "device", info.Name)
	return r, nil
}

func (r *Runner) BackendName() string           { return "vulkan" }
func (r *Runner) DeviceInfo() system.DeviceInfo { return r.deviceInfo }

func (r *Runner) LoadKernel(bytecode []byte, entryPoint string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(bytecode) == 0 || len(bytecode)%4 != 0 {
		return kerr.New(kerr.CategoryBackend, kerr.CodeKernelLoadFailed, "SPIR-V bytecode must be a nonempty multiple of 4 bytes")
	}

	moduleInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uintptr(len(bytecode)),
		PCode:    unsafe.Pointer(&bytecode[0]),
	}
	module, result := r.cmds.CreateShaderModule(r.device, &moduleInfo)
	if result != vk.Success {
		return vkError(result, kerr.CodeKernelLoadFailed, "failed to create Vulkan shader module")
	}

	name := append([]byte(entryPoint), 0)
	stage := vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageInfo,
		Stage:  vk.ShaderStageCompute,
		Module: module,
		PName:  unsafe.Pointer(&name[0]),
	}
	pipelineInfo := vk.ComputePipelineCreateInfo{
		SType:             vk.StructureTypeComputePipelineCreateInfo,
		Stage:             stage,
		Layout:            r.pipelineLayout,
		BasePipelineIndex: -1,
	}
	pipeline, result := r.cmds.CreateComputePipelines(r.device, &pipelineInfo)
	if result != vk.Success {
		r.cmds.DestroyShaderModule(r.device, module)
		return vkError(result, kerr.CodeKernelLoadFailed, "failed to create Vulkan compute pipeline: entry point '"+entryPoint+"'")
	}

	if r.pipeline != 0 {
		r.cmds.DestroyPipeline(r.device, r.pipeline)
	}
	if r.shaderModule != 0 {
		r.cmds.DestroyShaderModule(r.device, r.shaderModule)
	}
	r.shaderModule = module
	r.pipeline = pipeline

	klog.Logger().Info("vulkan: loaded kernel", "entry_point", entryPoint)
	return nil
}

// SetParameters uploads the fixed-layout parameter blob into an
// internally-managed uniform buffer bound at binding 2, since Vulkan has
// no constant-memory analogue to deliver it through directly.
func (r *Runner) SetParameters(data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.paramsBuffer == nil || r.paramsBuffer.size < uint64(len(data)) {
		size := uint64(len(data))
		if size == 0 {
			size = 1
		}
		buf, err := r.CreateBuffer(size, runner.RoleUniform, runner.UsageHostVisible)
		if err != nil {
			return err
		}
		if r.paramsBuffer != nil {
			r.paramsBuffer.Destroy()
		}
		r.paramsBuffer = buf.(*Buffer)
		r.bindBuffer(2, r.paramsBuffer.buffer, r.paramsBuffer.size, vk.DescriptorTypeUniformBuffer)
	}
	if len(data) == 0 {
		return nil
	}
	return r.paramsBuffer.Upload(0, data)
}

// SetGlobalParams is a documented no-op on Vulkan - there is no
// constant-memory analogue to NVIDIA's SLANG_globalParams symbol. Callers
// route the same bytes through SetBuffer into the uniform-buffer binding
// instead.
func (r *Runner) SetGlobalParams(data []byte) error {
	return nil
}

func (r *Runner) bindBuffer(binding uint32, buf vk.Buffer, size uint64, descType vk.DescriptorType) {
	info := vk.DescriptorBufferInfo{Buffer: buf, Offset: 0, Range: size}
	write := vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          r.descriptorSet,
		DstBinding:      binding,
		DescriptorCount: 1,
		DescriptorType:  descType,
		PBufferInfo:     &info,
	}
	r.cmds.UpdateDescriptorSets(r.device, []vk.WriteDescriptorSet{write})
}

// bindingBarriers builds a shader-write-to-host-read barrier for every
// buffer currently bound, so a caller reading a binding straight after
// Dispatch sees the compute shader's writes rather than a stale value
// left in host-visible memory.
func (r *Runner) bindingBarriers() []vk.BufferMemoryBarrier {
	if len(r.bindings) == 0 {
		return nil
	}
	barriers := make([]vk.BufferMemoryBarrier, 0, len(r.bindings))
	for _, buf := range r.bindings {
		barriers = append(barriers, vk.BufferMemoryBarrier{
			SType:               vk.StructureTypeBufferMemoryBarrier,
			SrcAccessMask:       vk.AccessShaderWrite,
			DstAccessMask:       vk.AccessHostRead,
			SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
			DstQueueFamilyIndex: vk.QueueFamilyIgnored,
			Buffer:              buf.buffer,
			Offset:              0,
			Size:                buf.size,
		})
	}
	return barriers
}

func (r *Runner) SetBuffer(binding int, buf runner.Buffer) error {
	if buf == nil {
		return kerr.New(kerr.CategoryGeneral, kerr.CodeInvalidArgument, "nil buffer")
	}
	vb, ok := buf.(*Buffer)
	if !ok || buf.Backend() != system.RuntimeVulkan {
		return kerr.Newf(kerr.CategoryGeneral, kerr.CodeInvalidArgument,
			"buffer bound to Vulkan runner was created by backend %q", buf.Backend())
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	descType := vk.DescriptorTypeStorageBuffer
	if binding == 2 {
		descType = vk.DescriptorTypeUniformBuffer
	}
	r.bindings[binding] = vb
	r.bindBuffer(uint32(binding), vb.buffer, vb.size, descType)
	return nil
}

func (r *Runner) SetTexture(binding int, tex runner.Texture) error {
	if tex == nil {
		return kerr.New(kerr.CategoryGeneral, kerr.CodeInvalidArgument, "nil texture")
	}
	vt, ok := tex.(*Texture)
	if !ok || tex.Backend() != system.RuntimeVulkan {
		return kerr.Newf(kerr.CategoryGeneral, kerr.CodeInvalidArgument,
			"texture bound to Vulkan runner was created by backend %q", tex.Backend())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindBuffer(uint32(binding), vt.buffer, vt.size, vk.DescriptorTypeStorageBuffer)
	return nil
}

// Dispatch records a one-time-submit command buffer, submits it, and
// blocks on the fence itself - there is no separate asynchronous queue
// depth to drain, so the resulting timing sample is never stale.
func (r *Runner) Dispatch(gx, gy, gz uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pipeline == 0 {
		return kerr.New(kerr.CategoryBackend, kerr.CodeBackendNotAvailable, "no kernel loaded")
	}

	start := time.Now()
	if result := r.cmds.ResetFences(r.device, []vk.Fence{r.fence}); result != vk.Success {
		return vkError(result, kerr.CodeKernelExecutionFailed, "failed to reset Vulkan fence")
	}

	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageOneTimeSubmit,
	}
	if result := r.cmds.BeginCommandBuffer(r.commandBuffer, &beginInfo); result != vk.Success {
		return vkError(result, kerr.CodeKernelExecutionFailed, "failed to begin Vulkan command buffer")
	}
	r.cmds.CmdBindPipeline(r.commandBuffer, vk.PipelineBindPointCompute, r.pipeline)
	r.cmds.CmdBindDescriptorSets(r.commandBuffer, vk.PipelineBindPointCompute, r.pipelineLayout, []vk.DescriptorSet{r.descriptorSet})
	r.cmds.CmdDispatch(r.commandBuffer, gx, gy, gz)
	r.cmds.CmdPipelineBarrier(r.commandBuffer, vk.PipelineStageComputeShader, vk.PipelineStageHost, r.bindingBarriers())
	if result := r.cmds.EndCommandBuffer(r.commandBuffer); result != vk.Success {
		return vkError(result, kerr.CodeKernelExecutionFailed, "failed to end Vulkan command buffer")
	}

	cb := r.commandBuffer
	submit := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    &cb,
	}
	if result := r.cmds.QueueSubmit(r.queue, &submit, r.fence); result != vk.Success {
		return vkError(result, kerr.CodeKernelExecutionFailed, "failed to submit Vulkan command buffer")
	}
	if result := r.cmds.WaitForFences(r.device, []vk.Fence{r.fence}, true, vk.WholeSize); result != vk.Success {
		return vkError(result, kerr.CodeKernelExecutionFailed, "Vulkan fence wait failed")
	}

	end := time.Now()
	r.timing.WallStart = start
	r.timing.WallEnd = end
	r.timing.ComputeMs = float64(end.Sub(start).Milliseconds())
	r.timing.TotalMs = r.timing.ComputeMs
	r.timing.Stale = false

	klog.Logger().Debug("vulkan: dispatched", "gx", gx, "gy", gy, "gz", gz)
	return nil
}

// Wait confirms the fence Dispatch already blocked on is signaled,
// rather than trusting that blindly - a real driver failure during the
// fence wait inside Dispatch would otherwise go unnoticed by a caller
// that only checks Wait's return value.
func (r *Runner) Wait() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fence == 0 {
		return nil
	}
	if result := r.cmds.GetFenceStatus(r.device, r.fence); result != vk.Success {
		return vkError(result, kerr.CodeKernelExecutionFailed, "Vulkan fence not signaled after dispatch")
	}
	return nil
}

func (r *Runner) LastTiming() runner.TimingSample {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timing
}

func bufferUsageFor(role runner.BufferRole) vk.BufferUsageFlags {
	if role == runner.RoleUniform {
		return vk.BufferUsageUniformBuffer
	}
	return vk.BufferUsageStorageBuffer
}

func findMemoryType(props vk.PhysicalDeviceMemoryProperties, typeBits uint32, required vk.MemoryPropertyFlags) (uint32, bool) {
	for i := uint32(0); i < props.MemoryTypeCount; i++ {
		if typeBits&(1<<i) == 0 {
			continue
		}
		if props.MemoryTypes[i].PropertyFlags&required == required {
			return i, true
		}
	}
	return 0, false
}

func (r *Runner) CreateBuffer(size uint64, role runner.BufferRole, usage runner.BufferUsage) (runner.Buffer, error) {
	if size == 0 {
		return nil, kerr.New(kerr.CategoryGeneral, kerr.CodeInvalidArgument, "buffer size must be nonzero")
	}
	info := vk.BufferCreateInfo{
		SType: vk.StructureTypeBufferCreateInfo,
		Size:  size,
		Usage: bufferUsageFor(role) | vk.BufferUsageTransferSrc | vk.BufferUsageTransferDst,
	}
	buf, result := r.cmds.CreateBuffer(r.device, &info)
	if result != vk.Success {
		return nil, vkError(result, kerr.CodeBufferCreationFailed, "failed to create Vulkan buffer")
	}

	req := r.cmds.GetBufferMemoryRequirements(r.device, buf)
	typeIndex, ok := findMemoryType(r.memProps, req.MemoryTypeBits, vk.MemoryPropertyHostVisible|vk.MemoryPropertyHostCoherent)
	if !ok {
		r.cmds.DestroyBuffer(r.device, buf)
		return nil, kerr.New(kerr.CategoryBackend, kerr.CodeBufferCreationFailed, "no host-visible Vulkan memory type available")
	}

	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  req.Size,
		MemoryTypeIndex: typeIndex,
	}
	mem, result := r.cmds.AllocateMemory(r.device, &allocInfo)
	if result != vk.Success {
		r.cmds.DestroyBuffer(r.device, buf)
		return nil, vkError(result, kerr.CodeGPUOutOfMemory, "failed to allocate Vulkan buffer memory")
	}
	if result := r.cmds.BindBufferMemory(r.device, buf, mem, 0); result != vk.Success {
		r.cmds.FreeMemory(r.device, mem)
		r.cmds.DestroyBuffer(r.device, buf)
		return nil, vkError(result, kerr.CodeBufferCreationFailed, "failed to bind Vulkan buffer memory")
	}

	return &Buffer{cmds: r.cmds, device: r.device, buffer: buf, memory: mem, size: size, role: role}, nil
}

func (r *Runner) CreateTexture(desc runner.TextureDescriptor) (runner.Texture, error) {
	if desc.MipLevels > 1 || desc.ArrayLayers > 1 {
		return nil, kerr.New(kerr.CategoryValidation, kerr.CodeInvalidArgument,
			"Vulkan compute textures support only MipLevels=1, ArrayLayers=1")
	}
	total := uint64(desc.Width) * uint64(desc.Height) * uint64(desc.Depth) * uint64(desc.Format.BytesPerPixel())
	b, err := r.CreateBuffer(total, runner.RoleStorage, runner.UsageHostVisible)
	if err != nil {
		return nil, err
	}
	vb := b.(*Buffer)
	return &Texture{cmds: r.cmds, device: r.device, buffer: vb.buffer, memory: vb.memory, size: total, desc: desc}, nil
}

// Supports reports no optional features - the original Vulkan runner has
// neither timestamp queries nor a global-constant path wired up.
func (r *Runner) Supports(feature runner.Feature) bool {
	return false
}

// Destroy waits for the queue to go idle before tearing anything down,
// then force-destroys every buffer the caller bound (the caller may
// still be holding its own *Buffer handles) while the logical device is
// still live, and only then releases the device itself - freeing any
// device-memory object after DestroyDevice would be a use-after-free of
// the Vulkan device handle.
func (r *Runner) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.queue != 0 {
		r.cmds.QueueWaitIdle(r.queue)
	}

	for _, buf := range r.bindings {
		buf.Destroy()
	}
	r.bindings = nil
	if r.paramsBuffer != nil {
		r.paramsBuffer.Destroy()
	}
	if r.fence != 0 {
		r.cmds.DestroyFence(r.device, r.fence)
	}
	if r.commandBuffer != 0 {
		r.cmds.FreeCommandBuffers(r.device, r.commandPool, []vk.CommandBuffer{r.commandBuffer})
	}
	if r.commandPool != 0 {
		r.cmds.DestroyCommandPool(r.device, r.commandPool)
	}
	if r.pipeline != 0 {
		r.cmds.DestroyPipeline(r.device, r.pipeline)
	}
	if r.pipelineLayout != 0 {
		r.cmds.DestroyPipelineLayout(r.device, r.pipelineLayout)
	}
	if r.shaderModule != 0 {
		r.cmds.DestroyShaderModule(r.device, r.shaderModule)
	}
	if r.descriptorPool != 0 {
		r.cmds.DestroyDescriptorPool(r.device, r.descriptorPool)
	}
	if r.descriptorSetLayout != 0 {
		r.cmds.DestroyDescriptorSetLayout(r.device, r.descriptorSetLayout)
	}
	if r.device != 0 {
		r.cmds.DestroyDevice(r.device)
	}
}

func vkError(result vk.Result, fallback kerr.Code, message string) error {
	return kerr.New(kerr.CategoryBackend, fallback, message+": "+result.String())
}
