package system

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/kerntopia/kerntopia/loader"
)

// slangExecutableNames are the candidate filenames for the shader
// compiler executable across platforms.
var slangExecutableNames = []string{"slangc", "slangc.exe"}

// slangKnownTargets/slangKnownProfiles are the tokens detectSlang looks
// for in the compiler's help output. The probe is a hint, not a
// contract: unrecognized tokens are ignored rather than treated as a
// parse failure, since help text format is not a stable ABI.
var (
	slangKnownTargets  = []string{"ptx", "spirv", "dxil", "metal"}
	slangKnownProfiles = []string{"glsl_450", "glsl_460", "cuda_sm_7_0", "cuda_sm_8_0"}
)

// detectSlang is a composite detection: (a) search the executable-path
// variable and local build subdirectories for the precompile-only
// compiler binary, and (b) scan for the JIT runtime library. Available
// is the OR of the two, and capabilities reflect which mode(s) exist.
func detectSlang(l *loader.Loader) Info {
	execPaths := findExecutables(slangExecutableNames)
	libResults, _ := l.Scan([]string{"slang"})

	hasPrecompile := len(execPaths) > 0
	hasJIT := len(libResults) > 0

	if !hasPrecompile && !hasJIT {
		return Info{
			Name:         RuntimeSlang,
			Available:    false,
			ErrorMessage: "shader compiler not found (no slangc executable or libslang runtime)",
		}
	}

	caps := Capabilities{}
	var targets, profiles []string
	if hasPrecompile {
		caps.PrecompiledKernels = true
		t, p := probeCompiler(execPaths[0])
		targets = append(targets, t...)
		profiles = append(profiles, p...)
	}
	if hasJIT {
		caps.JITCompilation = true
	}
	caps.Targets = dedupe(targets)
	caps.Profiles = dedupe(profiles)

	info := Info{
		Name:            RuntimeSlang,
		Available:       true,
		ExecutablePaths: execPaths,
		Capabilities:    caps,
	}
	for _, v := range libResults {
		if v.IsPrimary {
			info.LibraryPath = v.Path
			info.FileSize = v.FileSize
			info.LastModified = v.LastModified
			info.Fingerprint = v.Fingerprint
			info.ExtraLibraries = v.DuplicatePaths
			break
		}
	}
	return info
}

// findExecutables searches PATH for any of names, plus a fixed set of
// local build subdirectories used by in-tree developer builds.
func findExecutables(names []string) []string {
	var found []string
	dirs := filepath.SplitList(os.Getenv("PATH"))
	dirs = append(dirs, filepath.Join("build", "_deps", "slang", "bin"), filepath.Join("third_party", "slang", "bin"))

	for _, dir := range dirs {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
				found = append(found, candidate)
			}
		}
	}
	return found
}

// probeCompiler invokes the compiler with a help subcommand and parses
// the output for recognized target/profile tokens. A probe failure
// (missing binary, non-zero exit, timeout) yields empty sets rather
// than an error - this is a best-effort hint.
func probeCompiler(path string) (targets, profiles []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, "-help")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	_ = cmd.Run() // non-zero exit from -help is common; parse whatever we got

	text := strings.ToLower(out.String())
	for _, t := range slangKnownTargets {
		if strings.Contains(text, t) {
			targets = append(targets, t)
		}
	}
	for _, p := range slangKnownProfiles {
		if strings.Contains(text, strings.ToLower(p)) {
			profiles = append(profiles, p)
		}
	}
	return targets, profiles
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
