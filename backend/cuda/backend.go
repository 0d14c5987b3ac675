package cuda

import (
	"unsafe"

	"github.com/kerntopia/kerntopia/backend"
	"github.com/kerntopia/kerntopia/kerr"
	"github.com/kerntopia/kerntopia/klog"
	"github.com/kerntopia/kerntopia/loader"
	"github.com/kerntopia/kerntopia/runner"
	"github.com/kerntopia/kerntopia/system"
)

func init() {
	backend.Register(system.RuntimeCUDA, func() backend.Backend {
		return &Backend{interrogator: system.Shared(), loader: loader.Shared()}
	})
}

// Backend is the NVIDIA compute backend factory. Device enumeration
// queries the driver directly (compute capability, thread/memory
// limits) rather than duplicating that into system.Interrogator, which
// only does presence detection.
type Backend struct {
	interrogator *system.Interrogator
	loader       *loader.Loader
}

func (b *Backend) Kind() system.Runtime { return system.RuntimeCUDA }

func (b *Backend) Info() system.Info {
	return b.interrogator.GetRuntime(system.RuntimeCUDA)
}

func (b *Backend) Devices() []system.DeviceInfo {
	if !b.interrogator.IsAvailable(system.RuntimeCUDA) {
		return nil
	}
	s, err := loadSymbols(b.loader)
	if err != nil {
		klog.Logger().Warn("cuda: symbol load failed during enumeration", "error", err)
		return nil
	}

	var count int32
	var result int32
	if err := call(s.deviceGetCount, &result, ptrToPtr(unsafe.Pointer(&count))); err != nil || result != cudaSuccess || count <= 0 {
		return nil
	}

	devices := make([]system.DeviceInfo, 0, count)
	for i := int32(0); i < count; i++ {
		devices = append(devices, queryDeviceInfo(s, i))
	}
	return devices
}

func (b *Backend) CreateRunner(deviceIndex int) (runner.Runner, error) {
	if !b.interrogator.IsAvailable(system.RuntimeCUDA) {
		return nil, kerr.New(kerr.CategoryBackend, kerr.CodeBackendNotAvailable, "CUDA runtime not available")
	}
	devices := b.Devices()
	if deviceIndex < 0 || deviceIndex >= len(devices) {
		return nil, kerr.Newf(kerr.CategoryGeneral, kerr.CodeInvalidArgument,
			"invalid CUDA device index %d (available: 0-%d)", deviceIndex, len(devices)-1)
	}
	s, err := loadSymbols(b.loader)
	if err != nil {
		return nil, err
	}
	return newRunner(s, int32(deviceIndex), devices[deviceIndex])
}

func queryDeviceInfo(s *symbols, device int32) system.DeviceInfo {
	var devID int32
	var result int32
	_ = call(s.deviceGet, &result, ptrToPtr(unsafe.Pointer(&devID)), ptrTo(device))

	nameBuf := make([]byte, 256)
	_ = call(s.deviceGetName, &result, ptrToPtr(unsafe.Pointer(&nameBuf[0])), ptrTo(int32(len(nameBuf))), ptrTo(devID))

	attr := func(id int32) int32 {
		var v int32
		_ = call(s.deviceGetAttr, &result, ptrToPtr(unsafe.Pointer(&v)), ptrTo(id), ptrTo(devID))
		return v
	}

	major := attr(attrComputeCapabilityMajor)
	minor := attr(attrComputeCapabilityMinor)
	memClockKHz := attr(attrMemoryClockRate)
	busWidthBits := attr(attrGlobalMemoryBusWidthBits)
	bandwidthGBs := float64(memClockKHz) * 2 * float64(busWidthBits) / 8 / 1e6

	var freeBytes, totalBytes uint64
	var memResult int32
	memErr := call(s.memGetInfo, &memResult, ptrToPtr(unsafe.Pointer(&freeBytes)), ptrToPtr(unsafe.Pointer(&totalBytes)))
	memKnown := memErr == nil && memResult == cudaSuccess && totalBytes > 0

	return system.DeviceInfo{
		Index:                int(device),
		Name:                 cStringAt(unsafe.Pointer(&nameBuf[0])),
		Backend:              system.RuntimeCUDA,
		TotalMemoryBytes:     totalBytes,
		MemoryBytesKnown:     memKnown,
		FreeMemoryBytes:      freeBytes,
		ComputeCapability:    computeCapabilityString(major, minor),
		MaxThreadsPerGroup:   uint32(attr(attrMaxThreadsPerBlock)),
		MaxSharedMemoryBytes: uint32(attr(attrMaxSharedMemoryPerBlock)),
		MultiprocessorCount:  uint32(attr(attrMultiprocessorCount)),
		ClockRateMHz:         uint32(attr(attrClockRate) / 1000),
		MemoryBandwidthGBs:   bandwidthGBs,
		APIVersion:           apiVersionForCapability(major),
		Integrated:           false,
		SupportsCompute:      true,
		SupportsGraphics:     false,
	}
}

func computeCapabilityString(major, minor int32) string {
	if major == 0 && minor == 0 {
		return ""
	}
	return itoa(major) + "." + itoa(minor)
}

func apiVersionForCapability(major int32) string {
	switch {
	case major >= 8:
		return "CUDA 11.0+"
	case major >= 7:
		return "CUDA 10.0+"
	default:
		return "CUDA 9.0+"
	}
}

func itoa(v int32) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [12]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
