//go:build unix

package sysinfo

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Stat reports the kernel identification of the running host.
func Stat() (*SysInfo, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return nil, fmt.Errorf("uname failed: %w", err)
	}

	return &SysInfo{
		Name:    unix.ByteSliceToString(uts.Sysname[:]),
		Release: unix.ByteSliceToString(uts.Release[:]),
		Version: unix.ByteSliceToString(uts.Version[:]),
		Machine: unix.ByteSliceToString(uts.Machine[:]),
	}, nil
}
