package loader

import "unsafe"

// Scoped is a move-only, stack-owned borrow of a loaded library that
// unloads automatically when the caller is done with it. It is the
// canonical way to borrow a handle across a bounded scope:
//
//	s, err := loader.Shared().LoadScoped(path)
//	if err != nil { return err }
//	defer s.Close()
//
// Scoped must not be copied; Go has no compiler-enforced non-copyable
// types, so this is enforced by convention (pass by pointer) rather than
// by the type system, matching idiomatic Go.
type Scoped struct {
	loader *Loader
	handle *Handle
	closed bool
}

// LoadScoped loads path and wraps the resulting handle in a Scoped
// borrow.
func (l *Loader) LoadScoped(path string) (*Scoped, error) {
	h, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	return &Scoped{loader: l, handle: h}, nil
}

// Handle returns the underlying library handle.
func (s *Scoped) Handle() *Handle { return s.handle }

// Path returns the absolute path of the wrapped library.
func (s *Scoped) Path() string { return s.handle.path }

// Symbol resolves name against the wrapped handle.
func (s *Scoped) Symbol(name string) unsafe.Pointer {
	return s.loader.Symbol(s.handle, name)
}

// Close unloads the wrapped handle. Calling Close more than once is a
// no-op, matching a moved-from ScopedLibrary whose destructor finds a
// null handle.
func (s *Scoped) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.loader.Unload(s.handle)
}
