package loader

import (
	"runtime"
)

// GetLibraryExtension returns the platform-specific shared library file
// extension: ".dll" on Windows, ".dylib" on macOS, ".so" on the rest.
func GetLibraryExtension() string {
	switch runtime.GOOS {
	case "windows":
		return ".dll"
	case "darwin":
		return ".dylib"
	default:
		return ".so"
	}
}

// GetLibraryPrefix returns the platform-specific shared library filename
// prefix: "" on Windows, "lib" everywhere else.
func GetLibraryPrefix() string {
	if runtime.GOOS == "windows" {
		return ""
	}
	return "lib"
}

// BuildLibraryFilename builds base's platform-conventional filename, e.g.
// BuildLibraryFilename("cudart") -> "libcudart.so" on Linux,
// "cudart.dll" on Windows.
func BuildLibraryFilename(base string) string {
	return GetLibraryPrefix() + base + GetLibraryExtension()
}

func systemLibraryDirectories() []string {
	switch runtime.GOOS {
	case "windows":
		dirs := []string{
			`C:\Windows\System32`,
			`C:\Windows\SysWOW64`,
		}
		if sysDir, err := windowsSystemDirectory(); err == nil && sysDir != "" {
			dirs = append([]string{sysDir}, dirs...)
		}
		return dirs
	case "darwin":
		return []string{
			"/usr/local/lib",
			"/opt/homebrew/lib",
			"/System/Library/Frameworks",
			"/Library/Frameworks",
		}
	default:
		return []string{
			"/usr/lib",
			"/usr/lib64",
			"/usr/lib/x86_64-linux-gnu",
			"/usr/local/lib",
			"/usr/local/cuda/lib64",
			"/usr/local/cuda/targets/x86_64-linux/lib",
		}
	}
}
