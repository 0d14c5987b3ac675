package backend

import (
	"errors"
	"testing"

	"github.com/kerntopia/kerntopia/kerr"
	"github.com/kerntopia/kerntopia/runner"
	"github.com/kerntopia/kerntopia/system"
)

const testKind system.Runtime = "test-fake"

type fakeBackend struct {
	info    system.Info
	devices []system.DeviceInfo
}

func (b *fakeBackend) Kind() system.Runtime       { return testKind }
func (b *fakeBackend) Info() system.Info          { return b.info }
func (b *fakeBackend) Devices() []system.DeviceInfo { return b.devices }
func (b *fakeBackend) CreateRunner(deviceIndex int) (runner.Runner, error) {
	return nil, nil
}

func newFakeBackend() Backend {
	return &fakeBackend{
		info:    system.Info{Name: testKind, Available: true},
		devices: []system.DeviceInfo{{Index: 0, Name: "fake-device-0"}},
	}
}

func TestRegisterAndCreateRunner(t *testing.T) {
	Register(testKind, newFakeBackend)
	f := New()

	avail := f.AvailableBackends()
	found := false
	for _, k := range avail {
		if k == testKind {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %q in AvailableBackends, got %v", testKind, avail)
	}

	if _, err := f.CreateRunner(testKind, 0); err != nil {
		t.Fatalf("CreateRunner(0): unexpected error %v", err)
	}
}

func TestCreateRunnerRejectsOutOfRangeIndex(t *testing.T) {
	Register(testKind, newFakeBackend)
	f := New()

	_, err := f.CreateRunner(testKind, 5)
	if err == nil {
		t.Fatal("expected an error for out-of-range device index")
	}
	var kErr *kerr.Error
	if !errors.As(err, &kErr) {
		t.Fatalf("expected *kerr.Error, got %T", err)
	}
	if kErr.Code != kerr.CodeInvalidArgument {
		t.Fatalf("expected CodeInvalidArgument, got %v", kErr.Code)
	}
}

func TestInfoUnregisteredBackend(t *testing.T) {
	f := New()
	_, err := f.Info(system.Runtime("never-registered"))
	if err == nil {
		t.Fatal("expected an error for an unregistered backend")
	}
}

func TestFactoryCachesBackendInstances(t *testing.T) {
	Register(testKind, newFakeBackend)
	f := New()

	b1, ok := f.backend(testKind)
	if !ok {
		t.Fatal("expected backend to resolve")
	}
	b2, _ := f.backend(testKind)
	if b1 != b2 {
		t.Fatal("expected Factory to cache and reuse the same Backend instance")
	}
}
