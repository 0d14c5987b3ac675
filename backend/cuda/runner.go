package cuda

import (
	"sync"
	"time"
	"unsafe"

	"github.com/kerntopia/kerntopia/klog"
	"github.com/kerntopia/kerntopia/kerr"
	"github.com/kerntopia/kerntopia/runner"
	"github.com/kerntopia/kerntopia/system"
)

// Runner ties one CUDA context, one loaded module, and four timing
// events to a single device session, mirroring the original runner's
// lifecycle: context created on construction, module loaded on
// LoadKernel, events used to bracket each Dispatch/Wait pair.
type Runner struct {
	mu sync.Mutex

	syms   *symbols
	device system.DeviceInfo

	ctx      uint64
	module   uint64
	function uint64

	startEvent, stopEvent       uint64
	memStartEvent, memStopEvent uint64

	bindings        map[int]uint64 // binding -> device pointer
	parameterBuffer []byte
	timing          runner.TimingSample
	waited          bool
}

func newRunner(s *symbols, deviceOrdinal int32, info system.DeviceInfo) (*Runner, error) {
	r := &Runner{syms: s, device: info, bindings: make(map[int]uint64)}

	var devID int32
	var result int32
	if err := call(s.deviceGet, &result, ptrToPtr(unsafe.Pointer(&devID)), ptrTo(deviceOrdinal)); err != nil || result != cudaSuccess {
		return nil, cudaError(s, result, kerr.CodeBackendNotAvailable, "failed to resolve CUDA device")
	}

	if err := call(s.ctxCreate, &result, ptrToPtr(unsafe.Pointer(&r.ctx)), ptrTo(uint32(0)), ptrTo(devID)); err != nil || result != cudaSuccess {
		return nil, cudaError(s, result, kerr.CodeBackendNotAvailable, "failed to create CUDA context")
	}

	for _, ev := range []*uint64{&r.startEvent, &r.stopEvent, &r.memStartEvent, &r.memStopEvent} {
		if err := call(s.eventCreate, &result, ptrToPtr(unsafe.Pointer(ev)), ptrTo(uint32(0))); err != nil || result != cudaSuccess {
			return nil, cudaError(s, result, kerr.CodeKernelExecutionFailed, "failed to create CUDA timing event")
		}
	}

	klog.Logger().Info("cuda: runner initialized", "device", info.Name)
	return r, nil
}

func (r *Runner) BackendName() string          { return "cuda" }
func (r *Runner) DeviceInfo() system.DeviceInfo { return r.device }

func (r *Runner) setCurrent() error {
	var result int32
	if err := call(r.syms.ctxSetCurrent, &result, ptrTo(r.ctx)); err != nil || result != cudaSuccess {
		return cudaError(r.syms, result, kerr.CodeKernelExecutionFailed, "failed to make CUDA context current")
	}
	return nil
}

func (r *Runner) LoadKernel(bytecode []byte, entryPoint string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(bytecode) == 0 {
		return kerr.New(kerr.CategoryBackend, kerr.CodeKernelLoadFailed, "empty PTX bytecode")
	}
	if err := r.setCurrent(); err != nil {
		return err
	}

	var result int32
	var newModule uint64
	if err := call(r.syms.moduleLoadData, &result, ptrToPtr(unsafe.Pointer(&newModule)), ptrToPtr(unsafe.Pointer(&bytecode[0]))); err != nil || result != cudaSuccess {
		return cudaError(r.syms, result, kerr.CodeKernelLoadFailed, "failed to load PTX module")
	}

	var function uint64
	name := append([]byte(entryPoint), 0)
	if err := call(r.syms.moduleGetFunction, &result, ptrToPtr(unsafe.Pointer(&function)), ptrTo(newModule), ptrToPtr(unsafe.Pointer(&name[0]))); err != nil || result != cudaSuccess {
		_ = call(r.syms.moduleUnload, &result, ptrTo(newModule))
		return cudaError(r.syms, result, kerr.CodeKernelLoadFailed, "kernel entry point '"+entryPoint+"' not found")
	}

	if r.module != 0 {
		_ = call(r.syms.moduleUnload, &result, ptrTo(r.module))
	}
	r.module = newModule
	r.function = function

	klog.Logger().Info("cuda: loaded kernel", "entry_point", entryPoint)
	return nil
}

func (r *Runner) SetParameters(data []byte) error {
	// The fixed-layout parameter blob is stored on the runner for the
	// next Dispatch call. Dispatch does not pass it to the kernel: its
	// kernel arguments are the bound buffer pointers only.
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parameterBuffer = append(r.parameterBuffer[:0], data...)
	return nil
}

func (r *Runner) SetGlobalParams(data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.module == 0 {
		return kerr.New(kerr.CategoryBackend, kerr.CodeBackendNotAvailable, "no module loaded")
	}

	var globalPtr unsafe.Pointer
	var globalSize uint64
	var result int32
	symbolName := append([]byte("SLANG_globalParams"), 0)
	if err := call(r.syms.moduleGetGlobal, &result,
		ptrToPtr(unsafe.Pointer(&globalPtr)), ptrToPtr(unsafe.Pointer(&globalSize)),
		ptrTo(r.module), ptrToPtr(unsafe.Pointer(&symbolName[0]))); err != nil || result != cudaSuccess {
		return cudaError(r.syms, result, kerr.CodeKernelExecutionFailed, "SLANG_globalParams symbol not found")
	}
	if uint64(len(data)) > globalSize {
		return kerr.Newf(kerr.CategoryGeneral, kerr.CodeInvalidArgument,
			"global parameter block (%d bytes) exceeds SLANG_globalParams (%d bytes)", len(data), globalSize)
	}
	if len(data) == 0 {
		return nil
	}
	if err := call(r.syms.memcpyHtoD, &result, ptrTo(uint64(uintptr(globalPtr))), ptrToPtr(unsafe.Pointer(&data[0])), ptrTo(uint64(len(data)))); err != nil || result != cudaSuccess {
		return cudaError(r.syms, result, kerr.CodeKernelExecutionFailed, "failed to upload global parameters")
	}
	return nil
}

func (r *Runner) SetBuffer(binding int, buf runner.Buffer) error {
	if buf == nil {
		return kerr.New(kerr.CategoryGeneral, kerr.CodeInvalidArgument, "nil buffer")
	}
	cb, ok := buf.(*Buffer)
	if !ok || buf.Backend() != system.RuntimeCUDA {
		return kerr.Newf(kerr.CategoryGeneral, kerr.CodeInvalidArgument,
			"buffer bound to CUDA runner was created by backend %q", buf.Backend())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[binding] = cb.devicePtr
	return nil
}

func (r *Runner) SetTexture(binding int, tex runner.Texture) error {
	if tex == nil {
		return kerr.New(kerr.CategoryGeneral, kerr.CodeInvalidArgument, "nil texture")
	}
	ct, ok := tex.(*Texture)
	if !ok || tex.Backend() != system.RuntimeCUDA {
		return kerr.Newf(kerr.CategoryGeneral, kerr.CodeInvalidArgument,
			"texture bound to CUDA runner was created by backend %q", tex.Backend())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[binding] = ct.devicePtr
	return nil
}

func (r *Runner) Dispatch(gx, gy, gz uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.function == 0 {
		return kerr.New(kerr.CategoryBackend, kerr.CodeBackendNotAvailable, "no kernel loaded")
	}
	if err := r.setCurrent(); err != nil {
		return err
	}

	start := time.Now()
	var result int32
	_ = call(r.syms.eventRecord, &result, ptrTo(r.startEvent), ptrTo(uint64(0)))

	args := make([]unsafe.Pointer, 0, len(r.bindings))
	ptrs := make([]uint64, 0, len(r.bindings))
	for i := 0; i < len(r.bindings); i++ {
		ptrs = append(ptrs, r.bindings[i])
	}
	for i := range ptrs {
		args = append(args, unsafe.Pointer(&ptrs[i]))
	}
	var kernelParams unsafe.Pointer
	if len(args) > 0 {
		kernelParams = unsafe.Pointer(&args[0])
	}

	if err := call(r.syms.launchKernel, &result,
		ptrTo(r.function),
		ptrTo(gx), ptrTo(gy), ptrTo(gz),
		ptrTo(uint32(16)), ptrTo(uint32(16)), ptrTo(uint32(1)),
		ptrTo(uint32(0)), ptrTo(uint64(0)),
		ptrToPtr(kernelParams), ptrToPtr(nil)); err != nil || result != cudaSuccess {
		return cudaError(r.syms, result, kerr.CodeKernelExecutionFailed, "kernel launch failed")
	}

	_ = call(r.syms.eventRecord, &result, ptrTo(r.stopEvent), ptrTo(uint64(0)))
	r.timing.WallStart = start
	r.waited = false

	klog.Logger().Debug("cuda: dispatched", "gx", gx, "gy", gy, "gz", gz)
	return nil
}

func (r *Runner) Wait() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result int32
	if err := call(r.syms.ctxSynchronize, &result); err != nil || result != cudaSuccess {
		return cudaError(r.syms, result, kerr.CodeKernelExecutionFailed, "CUDA synchronization failed")
	}

	var elapsedMs float32
	_ = call(r.syms.eventElapsedTime, &result, ptrToPtr(unsafe.Pointer(&elapsedMs)), ptrTo(r.startEvent), ptrTo(r.stopEvent))

	r.timing.WallEnd = time.Now()
	r.timing.ComputeMs = float64(elapsedMs)
	r.timing.TotalMs = float64(r.timing.WallEnd.Sub(r.timing.WallStart).Milliseconds())
	r.timing.Stale = false
	r.waited = true
	return nil
}

func (r *Runner) LastTiming() runner.TimingSample {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.timing
	t.Stale = !r.waited
	return t
}

func (r *Runner) CreateBuffer(size uint64, role runner.BufferRole, usage runner.BufferUsage) (runner.Buffer, error) {
	var devicePtr uint64
	var result int32
	if err := call(r.syms.memAlloc, &result, ptrToPtr(unsafe.Pointer(&devicePtr)), ptrTo(size)); err != nil || result != cudaSuccess {
		return nil, cudaError(r.syms, result, kerr.CodeBufferCreationFailed, "failed to allocate CUDA buffer")
	}
	return &Buffer{syms: r.syms, devicePtr: devicePtr, size: size, role: role}, nil
}

func (r *Runner) CreateTexture(desc runner.TextureDescriptor) (runner.Texture, error) {
	if desc.MipLevels > 1 || desc.ArrayLayers > 1 {
		return nil, kerr.New(kerr.CategoryValidation, kerr.CodeInvalidArgument,
			"CUDA compute textures support only MipLevels=1, ArrayLayers=1")
	}
	total := uint64(desc.Width) * uint64(desc.Height) * uint64(desc.Depth) * uint64(desc.Format.BytesPerPixel())
	var devicePtr uint64
	var result int32
	if err := call(r.syms.memAlloc, &result, ptrToPtr(unsafe.Pointer(&devicePtr)), ptrTo(total)); err != nil || result != cudaSuccess {
		return nil, cudaError(r.syms, result, kerr.CodeTextureCreationFailed, "failed to allocate CUDA texture")
	}
	return &Texture{syms: r.syms, devicePtr: devicePtr, size: total, desc: desc}, nil
}

func (r *Runner) Supports(feature runner.Feature) bool {
	switch feature {
	case runner.FeatureTimestampQueries, runner.FeatureGlobalParams:
		return true
	default:
		return false
	}
}

func (r *Runner) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result int32
	for _, ev := range []uint64{r.startEvent, r.stopEvent, r.memStartEvent, r.memStopEvent} {
		if ev != 0 {
			_ = call(r.syms.eventDestroy, &result, ptrTo(ev))
		}
	}
	if r.module != 0 {
		_ = call(r.syms.moduleUnload, &result, ptrTo(r.module))
	}
	if r.ctx != 0 {
		_ = call(r.syms.ctxDestroy, &result, ptrTo(r.ctx))
	}
}

func cudaError(s *symbols, code int32, fallback kerr.Code, message string) error {
	return kerr.New(kerr.CategoryBackend, fallback, message+": "+errorString(s, code))
}
