package platform

import (
	"testing"

	"github.com/letrix/nativefetch/internal/models"
)

func mustResolve(t *testing.T, host models.HostFacts) *models.TargetSpec {
	t.Helper()
	spec, err := Resolve(host)
	if err != nil {
		t.Fatalf("Resolve(%s) failed: %v", host, err)
	}
	return spec
}

func TestNamingFilename(t *testing.T) {
	musl := mustResolve(t, models.HostFacts{OS: models.OSLinux, Arch: models.ArchX64, Libc: models.LibcMusl})
	mac := mustResolve(t, models.HostFacts{OS: models.OSMacOS, Arch: models.ArchArm64})

	tests := []struct {
		name   string
		naming Naming
		spec   *models.TargetSpec
		want   string
	}{
		{"qualified node", Naming{Scheme: SchemeQualified, Prefix: "index.", Extension: "node"}, musl, "index.linux-x64-musl.node"},
		{"flat node", Naming{Scheme: SchemeFlat, Extension: "node"}, musl, "linux-x64.node"},
		{"native ext", Naming{Scheme: SchemeQualified}, musl, "linux-x64-musl.so"},
		{"dotted ext", Naming{Scheme: SchemeFlat, Extension: ".node"}, mac, "darwin-arm64.node"},
		{"no qualifier", Naming{Scheme: SchemeQualified}, mac, "darwin-arm64.dylib"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.naming.Filename(tt.spec); got != tt.want {
				t.Errorf("Filename = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLibraryFilename(t *testing.T) {
	win := mustResolve(t, models.HostFacts{OS: models.OSWindows, Arch: models.ArchX64})
	linux := mustResolve(t, models.HostFacts{OS: models.OSLinux, Arch: models.ArchArm64, Libc: models.LibcGnu})

	if got := LibraryFilename(win, "image_encoder"); got != "image_encoder.dll" {
		t.Errorf("windows library = %q", got)
	}
	if got := LibraryFilename(linux, "image_encoder"); got != "libimage_encoder.so" {
		t.Errorf("linux library = %q", got)
	}
}
