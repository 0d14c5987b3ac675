package system

import "github.com/kerntopia/kerntopia/loader"

// cudaComputeProfiles is the fixed list of compute-capability profiles
// the interrogator reports as supported targets for the NVIDIA runtime.
var cudaComputeProfiles = []string{
	"cuda_sm_6_0", "cuda_sm_7_0", "cuda_sm_7_5", "cuda_sm_8_0", "cuda_sm_8_6", "cuda_sm_9_0",
}

// detectCUDA scans for the NVIDIA driver and CUDA runtime libraries.
// Pattern set mirrors the two names that matter for presence detection:
// the driver API library (nvcuda) and the runtime library (cudart) -
// either is sufficient evidence the NVIDIA stack is installed.
func detectCUDA(l *loader.Loader) Info {
	results, err := l.Scan([]string{"cudart", "nvcuda"})
	if err != nil || len(results) == 0 {
		return Info{
			Name:         RuntimeCUDA,
			Available:    false,
			ErrorMessage: "CUDA runtime libraries not found",
		}
	}

	primary := pickPrimary(results)
	info := Info{
		Name:            RuntimeCUDA,
		Available:       true,
		Version:         primary.Version,
		LibraryPath:     primary.Path,
		ExtraLibraries:  primary.DuplicatePaths,
		FileSize:        primary.FileSize,
		LastModified:    primary.LastModified,
		Fingerprint:     primary.Fingerprint,
		ExecutablePaths: nil,
		Capabilities: Capabilities{
			JITCompilation:      true,
			PrecompiledKernels:  true,
			MemoryManagement:    true,
			DeviceEnumeration:   true,
			PerformanceCounters: true,
			Targets:             []string{"ptx", "cubin"},
			Profiles:            cudaComputeProfiles,
		},
	}
	if h, err := l.Load(primary.Path); err == nil {
		info.rawLibraryHandle = h
	}
	return info
}

// pickPrimary returns the first primary=true entry found in a scan
// result map, deterministically preferring "nvcuda" over "cudart" since
// the driver API library is what the backend actually links against.
func pickPrimary(results map[string]loader.Info) loader.Info {
	if v, ok := results["nvcuda"]; ok {
		return v
	}
	for _, v := range results {
		if v.IsPrimary {
			return v
		}
	}
	return loader.Info{}
}
