package models

import "fmt"

// OS is an operating system family known to the target table
type OS string

const (
	OSWindows OS = "windows"
	OSMacOS   OS = "macos"
	OSLinux   OS = "linux"
	OSAndroid OS = "android"
	OSFreeBSD OS = "freebsd"
)

// Arch is a CPU architecture
type Arch string

const (
	ArchX64   Arch = "x64"
	ArchArm64 Arch = "arm64"
	ArchArm   Arch = "arm"
	ArchIA32  Arch = "ia32"
)

// Libc is the C runtime flavor; only meaningful on Linux
type Libc string

const (
	LibcNone Libc = ""
	LibcGnu  Libc = "gnu"
	LibcMusl Libc = "musl"
)

// HostFacts are the inputs to target resolution. They are gathered once
// and passed explicitly so resolution never reads process state itself.
type HostFacts struct {
	OS   OS
	Arch Arch
	Libc Libc
}

// String renders the (os, arch[, libc]) tuple used in user-facing messages
func (h HostFacts) String() string {
	if h.Libc != LibcNone {
		return fmt.Sprintf("(%s, %s, %s)", h.OS, h.Arch, h.Libc)
	}
	return fmt.Sprintf("(%s, %s)", h.OS, h.Arch)
}
