package cpu

import (
	"testing"

	"github.com/kerntopia/kerntopia/runner"
)

func TestCPUBackendAlwaysAvailable(t *testing.T) {
	b := &Backend{}
	if !b.Info().Available {
		t.Fatal("expected cpu backend to always report Available=true")
	}
	if len(b.Devices()) != 1 {
		t.Fatalf("expected exactly one synthetic device, got %d", len(b.Devices()))
	}
}

func TestCPURunnerDispatchRequiresLoadKernel(t *testing.T) {
	r, err := (&Backend{}).CreateRunner(0)
	if err != nil {
		t.Fatalf("CreateRunner: %v", err)
	}
	if err := r.Dispatch(1, 1, 1); err == nil {
		t.Fatal("expected Dispatch before LoadKernel to fail")
	}
}

func TestCPURunnerLastTimingStaleUntilWait(t *testing.T) {
	r, _ := (&Backend{}).CreateRunner(0)
	if err := r.LoadKernel([]byte{0x01}, "main"); err != nil {
		t.Fatalf("LoadKernel: %v", err)
	}
	if err := r.Dispatch(1, 1, 1); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if sample := r.LastTiming(); !sample.Stale {
		t.Fatal("expected LastTiming to be marked stale before Wait")
	}
	if err := r.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if sample := r.LastTiming(); sample.Stale {
		t.Fatal("expected LastTiming to be fresh after Wait")
	}
}

func TestCPUBufferUploadDownloadRoundtrip(t *testing.T) {
	r, _ := (&Backend{}).CreateRunner(0)
	buf, err := r.CreateBuffer(8, runner.RoleStorage, runner.UsageHostVisible)
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	want := []byte{1, 2, 3, 4}
	if err := buf.Upload(0, want); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	got := make([]byte, len(want))
	if err := buf.Download(0, got); err != nil {
		t.Fatalf("Download: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("roundtrip mismatch at %d: got %d want %d", i, got[i], want[i])
		}
	}
}

func TestCPUBufferUploadOutOfBoundsRejected(t *testing.T) {
	r, _ := (&Backend{}).CreateRunner(0)
	buf, _ := r.CreateBuffer(4, runner.RoleStorage, runner.UsageHostVisible)
	if err := buf.Upload(0, make([]byte, 8)); err == nil {
		t.Fatal("expected an out-of-bounds upload to fail")
	}
}
