// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command kerntopia is a thin command-line driver over the core: it
// discovers the host's compute environment, loads a kernel bytecode
// file by naming convention, and dispatches it on a chosen backend and
// device. Verbosity and logging are controlled by the ambient logger
// configuration, not by flags here.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/kerntopia/kerntopia/backend/cpu"
	_ "github.com/kerntopia/kerntopia/backend/cuda"
	_ "github.com/kerntopia/kerntopia/backend/vulkan"

	"github.com/kerntopia/kerntopia/backend"
	"github.com/kerntopia/kerntopia/runner"
	"github.com/kerntopia/kerntopia/system"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 1
	}
	switch args[0] {
	case "info":
		return runInfo()
	case "run":
		return runKernel(args[1:])
	case "-h", "--help", "help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "kerntopia: unknown command %q\n", args[0])
		usage()
		return 1
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  kerntopia info
  kerntopia run <kernel> [--backend cuda|vulkan|cpu] [--device N] [--profile P] [--target ptx|spirv]`)
}

func runInfo() int {
	snap := system.Shared().GetSnapshot()
	fmt.Printf("host: %s (%s/%s, kernel %s)\n", snap.Host.Hostname, snap.Host.OS, snap.Host.Architecture, snap.Host.KernelVersion)
	fmt.Printf("detected at: %s\n", snap.Host.Timestamp.Format(time.RFC3339))

	for _, kind := range []system.Runtime{system.RuntimeCUDA, system.RuntimeVulkan, system.RuntimeSlang, system.RuntimeCPU} {
		info := snap.Runtime(kind)
		if !info.Available {
			fmt.Printf("%s: unavailable (%s)\n", kind, info.ErrorMessage)
			continue
		}
		fmt.Printf("%s: available, version=%s, library=%s\n", kind, info.Version, info.LibraryPath)
		for _, d := range info.Devices {
			fmt.Printf("  [%d] %s (%.0f MB, compute %s)\n", d.Index, d.Name, float64(d.TotalMemoryBytes)/(1<<20), d.ComputeCapability)
		}
	}
	return 0
}

func runKernel(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	backendFlag := fs.String("backend", "cuda", "backend to run on: cuda, vulkan, or cpu")
	device := fs.Int("device", 0, "device index")
	profile := fs.String("profile", "default", "kernel profile name, selects <kernel>-<profile>.<ext>")
	target := fs.String("target", "", "bytecode target: ptx or spirv (defaults to the backend's native target)")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "kerntopia: run requires a kernel name")
		usage()
		return 1
	}
	kernelName := fs.Arg(0)

	kind, ext, err := resolveBackend(*backendFlag, *target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kerntopia: %v\n", err)
		return 1
	}

	path := filepath.Join(".", fmt.Sprintf("%s-%s.%s", kernelName, *profile, ext))
	bytecode, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kerntopia: reading %s: %v\n", path, err)
		return 1
	}

	r, err := backend.Shared().CreateRunner(kind, *device)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kerntopia: creating runner: %v\n", err)
		return 1
	}
	defer r.Destroy()

	if err := r.LoadKernel(bytecode, "main"); err != nil {
		fmt.Fprintf(os.Stderr, "kerntopia: loading kernel: %v\n", err)
		return 1
	}

	di := r.DeviceInfo()
	fmt.Printf("loaded %s on %s [%d] %s\n", path, r.BackendName(), di.Index, di.Name)

	gx, gy, gz := runner.CalcDispatch(1, 1, 1)
	if err := r.Dispatch(gx, gy, gz); err != nil {
		fmt.Fprintf(os.Stderr, "kerntopia: dispatch: %v\n", err)
		return 1
	}
	if err := r.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "kerntopia: wait: %v\n", err)
		return 1
	}

	t := r.LastTiming()
	fmt.Printf("OK  compute=%.3fms total=%.3fms stale=%v\n", t.ComputeMs, t.TotalMs, t.Stale)
	return 0
}

// resolveBackend maps the --backend/--target flag strings to a
// system.Runtime and the bytecode file extension the naming convention
// expects. An explicit --target overrides the backend's native default
// (e.g. running CUDA bytecode compiled to a portable target).
func resolveBackend(name, target string) (system.Runtime, string, error) {
	var kind system.Runtime
	var ext string
	switch name {
	case "cuda":
		kind, ext = system.RuntimeCUDA, "ptx"
	case "vulkan":
		kind, ext = system.RuntimeVulkan, "spirv"
	case "cpu":
		kind, ext = system.RuntimeCPU, "spirv"
	default:
		return "", "", fmt.Errorf("unknown backend %q (want cuda, vulkan, or cpu)", name)
	}
	if target != "" {
		ext = target
	}
	return kind, ext, nil
}
