package system

import "github.com/kerntopia/kerntopia/loader"

func detectVulkan(l *loader.Loader) Info {
	results, err := l.Scan([]string{"vulkan"})
	if err != nil || len(results) == 0 {
		return Info{
			Name:         RuntimeVulkan,
			Available:    false,
			ErrorMessage: "Vulkan loader not found",
		}
	}

	var primary loader.Info
	for _, v := range results {
		if v.IsPrimary {
			primary = v
			break
		}
	}

	info := Info{
		Name:           RuntimeVulkan,
		Available:      true,
		Version:        primary.Version,
		LibraryPath:    primary.Path,
		ExtraLibraries: primary.DuplicatePaths,
		FileSize:       primary.FileSize,
		LastModified:   primary.LastModified,
		Fingerprint:    primary.Fingerprint,
		Capabilities: Capabilities{
			PrecompiledKernels:  true,
			MemoryManagement:    true,
			DeviceEnumeration:   true,
			PerformanceCounters: true,
			Targets:             []string{"spirv"},
			Profiles:            []string{"glsl_450", "glsl_460"},
			Stages:              []string{"compute", "vertex", "fragment"},
		},
	}
	// The Vulkan backend must call GetInstanceProcAddr on this exact
	// library handle rather than re-loading it, or the loader's path->
	// handle bookkeeping double-initializes for the same absolute path.
	if h, err := l.Load(primary.Path); err == nil {
		info.rawLibraryHandle = h
	}
	return info
}
