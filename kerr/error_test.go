package kerr

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorFormatsCategoryAndCode(t *testing.T) {
	e := New(CategoryBackend, CodeDeviceNotFound, "device 3 not found")
	if !strings.Contains(e.Error(), "backend/102") {
		t.Fatalf("expected category/code in message, got %q", e.Error())
	}
}

func TestWithContextAndSuggestion(t *testing.T) {
	e := New(CategorySystem, CodeLibraryLoadFailed, "nvcuda.dll not found").
		WithContext("search path: C:\\Windows\\System32").
		WithSuggestion("install the NVIDIA driver")
	msg := e.Error()
	if !strings.Contains(msg, "search path") || !strings.Contains(msg, "install the NVIDIA driver") {
		t.Fatalf("expected context and suggestion in message, got %q", msg)
	}
}

func TestWrapNestsCause(t *testing.T) {
	inner := New(CategorySystem, CodeLibraryLoadFailed, "symbol not found: cuInit")
	outer := Wrap(CategoryBackend, CodeBackendInitFailed, "CUDA backend init failed", inner)
	if len(outer.Nested) != 1 {
		t.Fatalf("expected 1 nested error, got %d", len(outer.Nested))
	}
	if !strings.Contains(outer.Error(), "caused by") {
		t.Fatalf("expected nested cause rendered, got %q", outer.Error())
	}
}

func TestIsMatchesCategoryAndCode(t *testing.T) {
	sentinel := New(CategoryBackend, CodeDeviceNotFound, "")
	wrapped := New(CategoryBackend, CodeDeviceNotFound, "device 7 missing")
	if !errors.Is(wrapped, sentinel) {
		t.Fatalf("expected errors.Is to match on category+code")
	}
	other := New(CategoryBackend, CodeDeviceBusy, "device 7 busy")
	if errors.Is(other, sentinel) {
		t.Fatalf("expected errors.Is to not match different code")
	}
}

func TestSuggestionTableLookup(t *testing.T) {
	e := NewWithSuggestion(CategoryGeneral, CodeFileNotFound, "kernel.ptx missing")
	if e.Suggestion == "" {
		t.Fatalf("expected suggestion from table to be populated")
	}
}
