package loader

import (
	"os"
	"path/filepath"
	"testing"
)

// TestScanDuplicateDetection exercises the duplicate-detection invariant:
// scanning a layout with k directories containing the same library name
// yields exactly one entry, primary, with k-1 duplicate paths.
func TestScanDuplicateDetection(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	dirC := t.TempDir()

	name := BuildLibraryFilename("cudart")
	for _, dir := range []string{dirA, dirB, dirC} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("stub"), 0o644); err != nil {
			t.Fatalf("write stub library: %v", err)
		}
	}

	l := New()
	l.searchPaths = []string{dirA, dirB, dirC}

	results, err := l.Scan([]string{"cudart"})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	info, ok := results["cudart"]
	if !ok {
		t.Fatalf("expected entry for cudart, got %v", results)
	}
	if !info.IsPrimary {
		t.Fatalf("expected primary entry")
	}
	if len(info.DuplicatePaths) != 2 {
		t.Fatalf("expected 2 duplicate paths, got %d: %v", len(info.DuplicatePaths), info.DuplicatePaths)
	}
}

// TestScanMissingDirectoriesAreNotErrors exercises the "best effort" scan
// rule: an unreadable/missing directory yields no hits, not a failure.
func TestScanMissingDirectoriesAreNotErrors(t *testing.T) {
	l := New()
	l.searchPaths = []string{filepath.Join(t.TempDir(), "does-not-exist")}

	results, err := l.Scan([]string{"vulkan"})
	if err != nil {
		t.Fatalf("expected no error for missing directory, got %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no hits, got %v", results)
	}
}

// TestFindNotFound exercises the FILE_NOT_FOUND path with a suggestion.
func TestFindNotFound(t *testing.T) {
	l := New()
	l.searchPaths = []string{t.TempDir()}

	_, err := l.Find("nvcuda")
	if err == nil {
		t.Fatalf("expected error for missing library")
	}
}

// TestUnloadUnknownHandleFails exercises the invariant-violation path:
// presenting a handle the loader never issued is INVALID_ARGUMENT, not a
// panic - the handle check itself is a recoverable validation.
func TestUnloadUnknownHandleFails(t *testing.T) {
	l := New()
	bogus := &Handle{path: "/nonexistent"}
	if err := l.Unload(bogus); err == nil {
		t.Fatalf("expected error unloading unknown handle")
	}
}

func TestBuildLibraryFilename(t *testing.T) {
	name := BuildLibraryFilename("cudart")
	if name == "" {
		t.Fatalf("expected non-empty filename")
	}
}
