package system

import (
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/kerntopia/kerntopia/loader"
)

// Interrogator produces a single authoritative Snapshot for the process,
// computed lazily and cached until Refresh is called.
type Interrogator struct {
	mu       sync.Mutex
	loader   *loader.Loader
	snapshot *Snapshot
}

// New constructs an Interrogator bound to l. Most callers should use
// Shared, the process-wide singleton accessor.
func New(l *loader.Loader) *Interrogator {
	return &Interrogator{loader: l}
}

var (
	sharedOnce sync.Once
	shared     *Interrogator
)

// Shared returns the process-wide Interrogator singleton, bound to the
// process-wide Loader. Exactly one interrogator's worth of detection work
// happens per process regardless of how many callers ask for it.
func Shared() *Interrogator {
	sharedOnce.Do(func() {
		shared = New(loader.Shared())
	})
	return shared
}

// GetSnapshot lazily computes and caches the snapshot on first call.
// Subsequent calls without an intervening Refresh return the exact same
// cached value.
func (in *Interrogator) GetSnapshot() Snapshot {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.snapshot == nil {
		snap := in.detect()
		in.snapshot = &snap
	}
	return *in.snapshot
}

// GetRuntime is a convenience projection of GetSnapshot.
func (in *Interrogator) GetRuntime(kind Runtime) Info {
	return in.GetSnapshot().Runtime(kind)
}

// IsAvailable is shorthand for GetRuntime(kind).Available.
func (in *Interrogator) IsAvailable(kind Runtime) bool {
	return in.GetRuntime(kind).Available
}

// Refresh invalidates the cache; the next GetSnapshot call re-detects.
func (in *Interrogator) Refresh() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.snapshot = nil
}

func (in *Interrogator) detect() Snapshot {
	snap := Snapshot{
		Runtimes: map[Runtime]Info{
			RuntimeCUDA:   detectCUDA(in.loader),
			RuntimeVulkan: detectVulkan(in.loader),
			RuntimeSlang:  detectSlang(in.loader),
		},
		Host: HostInfo{
			Timestamp:     time.Now(),
			Hostname:      hostname(),
			OS:            runtime.GOOS,
			Architecture:  runtime.GOARCH,
			KernelVersion: kernelVersion(),
		},
		Build: BuildInfo{
			ProductVersion: "kerntopia-go/0.1.0",
			BuildTimestamp: "unknown",
		},
	}
	return snap
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
