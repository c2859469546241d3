package platform

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/letrix/nativefetch/internal/libc"
	"github.com/letrix/nativefetch/internal/models"
)

// DetectHost gathers the running host's facts. The libc detector is only
// consulted when the OS is libc-sensitive.
func DetectHost(ctx context.Context, detector libc.Detector) (models.HostFacts, error) {
	return HostFromGo(ctx, runtime.GOOS, runtime.GOARCH, detector)
}

// HostFromGo builds host facts from Go's GOOS/GOARCH spelling
func HostFromGo(ctx context.Context, goos, goarch string, detector libc.Detector) (models.HostFacts, error) {
	os, err := ParseOS(goos)
	if err != nil {
		return models.HostFacts{}, err
	}
	arch, err := ParseArch(goarch)
	if err != nil {
		return models.HostFacts{}, err
	}

	host := models.HostFacts{OS: os, Arch: arch}
	if NeedsLibc(os) && detector != nil {
		host.Libc = detector.Detect(ctx)
	}
	return host, nil
}

// ParseOS accepts Go, Node and canonical OS spellings
func ParseOS(s string) (models.OS, error) {
	switch strings.ToLower(s) {
	case "windows", "win32":
		return models.OSWindows, nil
	case "darwin", "macos":
		return models.OSMacOS, nil
	case "linux":
		return models.OSLinux, nil
	case "android":
		return models.OSAndroid, nil
	case "freebsd":
		return models.OSFreeBSD, nil
	default:
		// Unknown OSes still resolve to an UnsupportedPlatformError with the
		// original spelling instead of failing to parse.
		if s == "" {
			return "", fmt.Errorf("operating system is empty")
		}
		return models.OS(strings.ToLower(s)), nil
	}
}

// ParseArch accepts Go, Node and canonical architecture spellings
func ParseArch(s string) (models.Arch, error) {
	switch strings.ToLower(s) {
	case "amd64", "x64", "x86_64":
		return models.ArchX64, nil
	case "arm64", "aarch64":
		return models.ArchArm64, nil
	case "arm", "armv7":
		return models.ArchArm, nil
	case "386", "ia32", "x86":
		return models.ArchIA32, nil
	default:
		if s == "" {
			return "", fmt.Errorf("architecture is empty")
		}
		return models.Arch(strings.ToLower(s)), nil
	}
}

// ParseLibc accepts gnu/glibc and musl
func ParseLibc(s string) (models.Libc, error) {
	switch strings.ToLower(s) {
	case "":
		return models.LibcNone, nil
	case "gnu", "glibc":
		return models.LibcGnu, nil
	case "musl":
		return models.LibcMusl, nil
	default:
		return "", fmt.Errorf("unknown libc variant %q (want gnu or musl)", s)
	}
}
