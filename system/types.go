// Package system produces a single authoritative snapshot of the host's
// GPU compute environment: which runtimes, versions, devices, and
// compiler toolchains are available. Detection runs exactly once per
// process, cached behind Interrogator.GetSnapshot; every backend reads
// the snapshot instead of re-scanning, so discovery side effects (disk
// scans, probe-executable invocations) happen exactly once.
package system

import (
	"time"

	"github.com/kerntopia/kerntopia/loader"
)

// Runtime names the kind of compute runtime the interrogator tracks.
type Runtime string

const (
	RuntimeCUDA   Runtime = "cuda"
	RuntimeVulkan Runtime = "vulkan"
	RuntimeSlang  Runtime = "slang"
	RuntimeCPU    Runtime = "cpu"
)

// Capabilities describes what a runtime can do.
type Capabilities struct {
	JITCompilation      bool
	PrecompiledKernels  bool
	MemoryManagement    bool
	DeviceEnumeration   bool
	PerformanceCounters bool
	Targets             []string // e.g. "ptx", "spirv"
	Profiles            []string // e.g. "cuda_sm_7_0", "glsl_450"
	Stages              []string // e.g. "compute", "vertex", "fragment"
}

// DeviceInfo is a per-device record populated by a backend and copied
// into the snapshot. TotalMemoryBytes is paired with MemoryBytesKnown
// rather than silently defaulting: when a live context can't be queried
// (see Open Questions in DESIGN.md), reporting zero-and-unknown is
// preferred over a plausible-looking but wrong constant.
type DeviceInfo struct {
	Index                int
	Name                 string
	Backend              Runtime
	TotalMemoryBytes     uint64
	MemoryBytesKnown     bool
	FreeMemoryBytes      uint64
	ComputeCapability    string
	MaxThreadsPerGroup   uint32
	MaxSharedMemoryBytes uint32
	APIVersion           string
	MultiprocessorCount  uint32
	ClockRateMHz         uint32
	MemoryBandwidthGBs   float64
	Integrated           bool
	SupportsCompute      bool
	SupportsGraphics     bool
}

// Info is the per-runtime detection record. Available=false implies
// Devices is empty and ErrorMessage is non-empty.
type Info struct {
	Name             Runtime
	Available        bool
	Version          string
	ErrorMessage     string
	LibraryPath      string
	ExtraLibraries   []string
	ExecutablePaths  []string
	FileSize         int64
	LastModified     time.Time
	Fingerprint      string
	Capabilities     Capabilities
	Devices          []DeviceInfo
	rawLibraryHandle *loader.Handle // shared handle; see Info.LibraryHandle
}

// HostInfo carries the process/host metadata included in every snapshot.
type HostInfo struct {
	Timestamp     time.Time
	Hostname      string
	OS            string
	Architecture  string
	KernelVersion string
}

// BuildInfo carries product build metadata.
type BuildInfo struct {
	ProductVersion string
	BuildTimestamp string
}

// Snapshot is the interrogator's cached, immutable description of the
// host's compute environment. It is the authoritative view for all later
// backend operations in the process, unless Refresh is called.
type Snapshot struct {
	Runtimes map[Runtime]Info
	Host     HostInfo
	Build    BuildInfo
}

// Runtime returns the per-runtime projection, or a zero-value
// unavailable Info if kind was never detected.
func (s Snapshot) Runtime(kind Runtime) Info {
	if info, ok := s.Runtimes[kind]; ok {
		return info
	}
	return Info{Name: kind, Available: false, ErrorMessage: "runtime not interrogated"}
}

// LibraryHandle exposes the raw handle the interrogator used to detect
// kind, if any. The Vulkan backend needs this specifically: it must call
// GetInstanceProcAddr on the exact library the interrogator already
// loaded, rather than re-loading (which would double-initialize the
// loader's internal bookkeeping for that path).
func (i Info) LibraryHandle() *loader.Handle { return i.rawLibraryHandle }
