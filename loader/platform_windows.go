//go:build windows

package loader

import "golang.org/x/sys/windows"

// windowsSystemDirectory resolves the actual System32 path at runtime
// (it can differ from the hardcoded default under WOW64 or a
// non-default install drive) rather than assuming C:\Windows.
func windowsSystemDirectory() (string, error) {
	return windows.GetSystemDirectory()
}
