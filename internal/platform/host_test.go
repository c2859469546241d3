package platform

import (
	"context"
	"testing"

	"github.com/letrix/nativefetch/internal/models"
)

type countingDetector struct {
	calls int
	libc  models.Libc
}

func (d *countingDetector) Detect(ctx context.Context) models.Libc {
	d.calls++
	return d.libc
}

func TestHostFromGo(t *testing.T) {
	d := &countingDetector{libc: models.LibcMusl}

	host, err := HostFromGo(context.Background(), "linux", "amd64", d)
	if err != nil {
		t.Fatalf("HostFromGo failed: %v", err)
	}
	if host != (models.HostFacts{OS: models.OSLinux, Arch: models.ArchX64, Libc: models.LibcMusl}) {
		t.Errorf("Unexpected host %s", host)
	}
	if d.calls != 1 {
		t.Errorf("Expected one libc probe on linux, got %d", d.calls)
	}

	host, err = HostFromGo(context.Background(), "darwin", "arm64", d)
	if err != nil {
		t.Fatalf("HostFromGo failed: %v", err)
	}
	if host.OS != models.OSMacOS || host.Arch != models.ArchArm64 || host.Libc != models.LibcNone {
		t.Errorf("Unexpected host %s", host)
	}
	if d.calls != 1 {
		t.Errorf("libc probe must not run off linux, got %d calls", d.calls)
	}
}

func TestParseSpellings(t *testing.T) {
	osTests := map[string]models.OS{
		"win32": models.OSWindows, "windows": models.OSWindows,
		"darwin": models.OSMacOS, "macos": models.OSMacOS,
		"Linux": models.OSLinux, "plan9": models.OS("plan9"),
	}
	for in, want := range osTests {
		got, err := ParseOS(in)
		if err != nil || got != want {
			t.Errorf("ParseOS(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	archTests := map[string]models.Arch{
		"amd64": models.ArchX64, "x64": models.ArchX64,
		"aarch64": models.ArchArm64, "arm": models.ArchArm, "386": models.ArchIA32,
	}
	for in, want := range archTests {
		got, err := ParseArch(in)
		if err != nil || got != want {
			t.Errorf("ParseArch(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := ParseOS(""); err == nil {
		t.Errorf("Expected error for empty OS")
	}
	if _, err := ParseLibc("uclibc"); err == nil {
		t.Errorf("Expected error for unknown libc")
	}
	if got, _ := ParseLibc("glibc"); got != models.LibcGnu {
		t.Errorf("ParseLibc(glibc) = %q", got)
	}
}
