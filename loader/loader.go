// Package loader locates, loads, and resolves symbols in GPU driver shared
// libraries at runtime, without any link-time dependency on the drivers
// themselves. It underpins both the system interrogator and the backends:
// detection scans the same search paths the backends later load from, and
// a loaded handle is shared rather than re-opened, so a driver's library
// state is never invalidated out from under a backend still using it.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"

	"github.com/kerntopia/kerntopia/kerr"
)

// Handle is an opaque token for a loaded shared library. It wraps the
// platform pointer goffi hands back from LoadLibrary.
type Handle struct {
	ptr  unsafe.Pointer
	path string
}

// Info describes a library discovered on disk: its canonical name, where
// it lives, detected version, file metadata, and any duplicate locations
// of the same logical library found elsewhere on the search path.
type Info struct {
	Name           string
	Path           string
	Version        string
	FileSize       int64
	LastModified   time.Time
	Fingerprint    string // size+mtime tag, NOT a cryptographic digest
	IsPrimary      bool
	DuplicatePaths []string
}

// Loader is the platform-abstracted discovery/load/symbol-resolution
// layer. All mutating operations take a single mutex; lookups return
// copies or short-lived references held only for the call, per the
// concurrency model.
type Loader struct {
	mu sync.Mutex

	pathToHandle map[string]*Handle
	handleToPath map[unsafe.Pointer]*Handle
	searchPaths  []string
}

// New constructs an independent Loader. Most callers should use Shared,
// the process-wide singleton accessor; New exists for tests and for any
// caller that genuinely needs an isolated loader instance.
func New() *Loader {
	return &Loader{
		pathToHandle: make(map[string]*Handle),
		handleToPath: make(map[unsafe.Pointer]*Handle),
	}
}

var (
	sharedOnce sync.Once
	shared     *Loader
)

// Shared returns the process-wide Loader singleton. Exactly one loader
// must exist per process: an earlier design that allowed per-subsystem
// loaders caused handle invalidation when one subsystem unloaded a
// library another subsystem was still dispatching through.
func Shared() *Loader {
	sharedOnce.Do(func() {
		shared = New()
	})
	return shared
}

// SearchPaths returns the ordered list of directories scanned for
// libraries: OS-standard system directories, the platform's library-path
// environment variable split on its separator, and a fixed list of
// in-tree build directories used by developer builds.
func (l *Loader) SearchPaths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.searchPaths == nil {
		l.searchPaths = buildSearchPaths()
	}
	out := make([]string, len(l.searchPaths))
	copy(out, l.searchPaths)
	return out
}

func buildSearchPaths() []string {
	var paths []string
	paths = append(paths, systemLibraryDirectories()...)

	envVar := libraryPathEnvVar()
	if v := os.Getenv(envVar); v != "" {
		for _, p := range strings.Split(v, string(os.PathListSeparator)) {
			if p != "" {
				paths = append(paths, p)
			}
		}
	}

	// Fixed local build-tree locations for developer/in-tree builds.
	paths = append(paths,
		filepath.Join("build", "_deps"),
		filepath.Join("build", "_deps", "lib"),
		filepath.Join(".", "third_party", "lib"),
	)
	return paths
}

// Scan enumerates every search-path directory for regular files whose
// names contain any of the given patterns, collecting metadata for each
// hit. When the same logical name (stem, without extension/prefix) is
// found in more than one directory, the first-discovered path becomes
// the primary record and the rest are recorded on its DuplicatePaths.
// Unreadable or missing directories are not errors - scans are
// best-effort.
func (l *Loader) Scan(patterns []string) (map[string]Info, error) {
	result := make(map[string]Info)
	for _, dir := range l.SearchPaths() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue // missing/unreadable directories yield no hits
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			if !matchesAny(name, patterns) {
				continue
			}
			full := filepath.Join(dir, name)
			info, err := l.fileMetadata(full)
			if err != nil {
				continue
			}
			key := canonicalName(name)
			if existing, ok := result[key]; ok {
				existing.DuplicatePaths = append(existing.DuplicatePaths, full)
				result[key] = existing
				continue
			}
			info.Name = key
			info.IsPrimary = true
			result[key] = info
		}
	}
	return result, nil
}

// Find is a convenience single-pattern Scan: it looks for name anywhere
// among the returned keys and returns its Info, or a FILE_NOT_FOUND error.
func (l *Loader) Find(name string) (Info, error) {
	results, err := l.Scan([]string{name})
	if err != nil {
		return Info{}, err
	}
	for _, info := range results {
		return info, nil
	}
	return Info{}, kerr.NewWithSuggestion(kerr.CategoryGeneral, kerr.CodeFileNotFound,
		fmt.Sprintf("no library matching %q found on search path", name))
}

func matchesAny(filename string, patterns []string) bool {
	lower := strings.ToLower(filename)
	for _, p := range patterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// canonicalName strips the platform prefix/extension to get the logical
// library name (e.g. "libcudart.so.12" -> "cudart").
func canonicalName(filename string) string {
	base := filename
	for _, prefix := range []string{"lib"} {
		base = strings.TrimPrefix(base, prefix)
	}
	if idx := strings.Index(base, "."); idx >= 0 {
		base = base[:idx]
	}
	return base
}

func (l *Loader) fileMetadata(path string) (Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Path:         path,
		FileSize:     st.Size(),
		LastModified: st.ModTime(),
		Fingerprint:  fmt.Sprintf("%d-%d", st.Size(), st.ModTime().Unix()),
		Version:      "unknown",
	}, nil
}

// Load loads the library at absolute path, returning the cached handle
// if it is already loaded. Load is idempotent per absolute path.
func (l *Loader) Load(path string) (*Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if h, ok := l.pathToHandle[path]; ok {
		return h, nil
	}

	ptr, err := ffi.LoadLibrary(path)
	if err != nil {
		return nil, kerr.NewWithSuggestion(kerr.CategorySystem, kerr.CodeLibraryLoadFailed,
			fmt.Sprintf("failed to load library %s", path)).
			WithContext(err.Error())
	}

	h := &Handle{ptr: ptr, path: path}
	l.pathToHandle[path] = h
	l.handleToPath[h.ptr] = h
	return h, nil
}

// Unload invalidates handle and removes it from both cache maps. Unknown
// handles are a programming error: the caller presented a token this
// loader never issued.
func (l *Loader) Unload(h *Handle) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if h == nil {
		return kerr.New(kerr.CategoryGeneral, kerr.CodeInvalidArgument, "nil library handle")
	}
	if _, ok := l.handleToPath[h.ptr]; !ok {
		return kerr.New(kerr.CategoryGeneral, kerr.CodeInvalidArgument, "unknown library handle")
	}

	if err := ffi.FreeLibrary(h.ptr); err != nil {
		return kerr.Wrap(kerr.CategorySystem, kerr.CodeLibraryLoadFailed, "failed to unload library", err)
	}

	delete(l.pathToHandle, h.path)
	delete(l.handleToPath, h.ptr)
	return nil
}

// IsLoaded reports whether path is currently loaded.
func (l *Loader) IsLoaded(path string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.pathToHandle[path]
	return ok
}

// Symbol resolves name in the library referenced by h. A missing symbol
// returns a nil pointer rather than an error - callers that need a typed,
// validated lookup should use TypedSymbol.
func (l *Loader) Symbol(h *Handle, name string) unsafe.Pointer {
	if h == nil {
		return nil
	}
	ptr, err := ffi.GetSymbol(h.ptr, name)
	if err != nil {
		return nil
	}
	return ptr
}

// TypedSymbol resolves name and fails with LIBRARY_LOAD_FAILED if the
// symbol isn't present, attaching ctor to turn the raw address into F.
func TypedSymbol[F any](l *Loader, h *Handle, name string, ctor func(unsafe.Pointer) F) (F, error) {
	var zero F
	addr := l.Symbol(h, name)
	if addr == nil {
		return zero, kerr.New(kerr.CategorySystem, kerr.CodeLibraryLoadFailed,
			"Symbol not found: "+name)
	}
	return ctor(addr), nil
}

// Diagnostics returns a human-readable summary of loader state for audit
// trails and debugging.
func (l *Loader) Diagnostics() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var b strings.Builder
	fmt.Fprintf(&b, "loader: %d libraries loaded\n", len(l.pathToHandle))
	for path := range l.pathToHandle {
		fmt.Fprintf(&b, "  %s\n", path)
	}
	return b.String()
}

// LoadedLibraries lists the paths of all currently loaded libraries.
func (l *Loader) LoadedLibraries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.pathToHandle))
	for path := range l.pathToHandle {
		out = append(out, path)
	}
	return out
}

func libraryPathEnvVar() string {
	switch runtime.GOOS {
	case "windows":
		return "PATH"
	case "darwin":
		return "DYLD_LIBRARY_PATH"
	default:
		return "LD_LIBRARY_PATH"
	}
}
