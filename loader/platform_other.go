//go:build !windows

package loader

func windowsSystemDirectory() (string, error) { return "", nil }
