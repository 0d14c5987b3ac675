//go:build !linux

package system

func kernelVersion() string { return "unknown" }
