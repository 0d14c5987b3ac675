// Package backend discovers which compute backends are usable on this
// host and constructs runner.Runner sessions against a chosen device.
// Backend packages (cuda, vulkan, cpu) register themselves from their
// own init() - this package never imports them directly, avoiding a
// hard link-time dependency on hardware-specific FFI bindings.
package backend

import (
	"sync"

	"github.com/kerntopia/kerntopia/kerr"
	"github.com/kerntopia/kerntopia/runner"
	"github.com/kerntopia/kerntopia/system"
)

// Constructor builds a Backend implementation. Registered once per
// backend kind from that backend package's init().
type Constructor func() Backend

// Backend is one compute backend's factory surface: what it reports
// about itself and the devices it can see, and how it builds a runner
// session against one of those devices.
type Backend interface {
	Kind() system.Runtime
	Info() system.Info
	Devices() []system.DeviceInfo
	CreateRunner(deviceIndex int) (runner.Runner, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[system.Runtime]Constructor)
)

// Register installs a backend constructor under kind. Called from a
// backend package's init(). Registering the same kind twice replaces
// the previous registration.
func Register(kind system.Runtime, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = ctor
}

// registered returns the kinds with a constructor registered, in no
// particular order.
func registered() []system.Runtime {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]system.Runtime, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	return out
}

func build(kind system.Runtime) (Backend, bool) {
	registryMu.RLock()
	ctor, ok := registry[kind]
	registryMu.RUnlock()
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// Factory is the process-wide entry point for backend discovery. It
// caches the Backend instances it has built, re-using them across
// calls rather than reconstructing on every lookup.
type Factory struct {
	mu       sync.Mutex
	built    map[system.Runtime]Backend
}

// New returns a Factory with its own cache.
func New() *Factory {
	return &Factory{built: make(map[system.Runtime]Backend)}
}

var (
	sharedFactory *Factory
	sharedOnce    sync.Once
)

// Shared returns the process-wide Factory singleton.
func Shared() *Factory {
	sharedOnce.Do(func() {
		sharedFactory = New()
	})
	return sharedFactory
}

func (f *Factory) backend(kind system.Runtime) (Backend, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.built[kind]; ok {
		return b, true
	}
	b, ok := build(kind)
	if !ok {
		return nil, false
	}
	f.built[kind] = b
	return b, true
}

// AvailableBackends reports every registered backend whose Info()
// reports Available=true.
func (f *Factory) AvailableBackends() []system.Runtime {
	var out []system.Runtime
	for _, kind := range registered() {
		b, ok := f.backend(kind)
		if !ok {
			continue
		}
		if b.Info().Available {
			out = append(out, kind)
		}
	}
	return out
}

// Info returns the registered backend's detection info, or a
// BackendNotAvailable error if kind was never registered.
func (f *Factory) Info(kind system.Runtime) (system.Info, error) {
	b, ok := f.backend(kind)
	if !ok {
		return system.Info{}, kerr.Newf(kerr.CategoryBackend, kerr.CodeBackendNotAvailable,
			"backend %q is not registered", kind)
	}
	return b.Info(), nil
}

// Devices returns the devices the named backend reports.
func (f *Factory) Devices(kind system.Runtime) ([]system.DeviceInfo, error) {
	b, ok := f.backend(kind)
	if !ok {
		return nil, kerr.Newf(kerr.CategoryBackend, kerr.CodeBackendNotAvailable,
			"backend %q is not registered", kind)
	}
	return b.Devices(), nil
}

// CreateRunner builds a runner.Runner against device deviceIndex of the
// named backend. deviceIndex out of range is reported as an
// InvalidArgument error rather than left to the backend to discover.
func (f *Factory) CreateRunner(kind system.Runtime, deviceIndex int) (runner.Runner, error) {
	b, ok := f.backend(kind)
	if !ok {
		return nil, kerr.Newf(kerr.CategoryBackend, kerr.CodeBackendNotAvailable,
			"backend %q is not registered", kind)
	}
	devices := b.Devices()
	if deviceIndex < 0 || deviceIndex >= len(devices) {
		return nil, kerr.Newf(kerr.CategoryGeneral, kerr.CodeInvalidArgument,
			"device index %d out of range (backend %q has %d device(s))", deviceIndex, kind, len(devices)).
			WithContext("backend=" + string(kind))
	}
	return b.CreateRunner(deviceIndex)
}
