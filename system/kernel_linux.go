//go:build linux

package system

import "golang.org/x/sys/unix"

// kernelVersion reads the running kernel release via uname(2), enriching
// HostInfo beyond what runtime.GOOS/GOARCH alone report.
func kernelVersion() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "unknown"
	}
	return unix.ByteSliceToString(uts.Release[:])
}
