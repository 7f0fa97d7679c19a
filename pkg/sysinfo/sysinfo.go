package sysinfo

import "runtime"

// SysUnknown is returned when the host cannot be identified.
var SysUnknown = SysInfo{
	Name:    runtime.GOOS,
	Release: "unknown",
	Version: "unknown",
	Machine: runtime.GOARCH,
}

// SysInfo holds the basic operating system details.
type SysInfo struct {
	Name    string // operating system name, e.g. "Linux"
	Release string // kernel release
	Version string // kernel build version
	Machine string // hardware identifier, e.g. "x86_64"
}
