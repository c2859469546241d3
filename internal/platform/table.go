// Package platform maps host facts to build targets and artifact names.
package platform

import "github.com/letrix/nativefetch/internal/models"

// osEntry is one row of the target table
type osEntry struct {
	extension     string
	vendor        string
	platformToken string
	libcSensitive bool
	archs         map[models.Arch]archEntry
}

// archEntry carries the per-architecture parts of a triple
type archEntry struct {
	cpu string
	// abi is appended to the triple; ignored for libc-sensitive OSes
	abi string
	// qualifier goes into qualified filenames; libc-sensitive OSes use the libc
	qualifier string
}

// targets is the single source of truth for supported hosts
var targets = map[models.OS]osEntry{
	models.OSWindows: {
		extension:     "dll",
		vendor:        "pc",
		platformToken: "win32",
		archs: map[models.Arch]archEntry{
			models.ArchX64:   {cpu: "x86_64", abi: "msvc", qualifier: "msvc"},
			models.ArchArm64: {cpu: "aarch64", abi: "msvc", qualifier: "msvc"},
		},
	},
	models.OSMacOS: {
		extension:     "dylib",
		vendor:        "apple",
		platformToken: "darwin",
		archs: map[models.Arch]archEntry{
			models.ArchX64:   {cpu: "x86_64"},
			models.ArchArm64: {cpu: "aarch64"},
		},
	},
	models.OSLinux: {
		extension:     "so",
		vendor:        "unknown",
		platformToken: "linux",
		libcSensitive: true,
		archs: map[models.Arch]archEntry{
			models.ArchX64:   {cpu: "x86_64"},
			models.ArchArm64: {cpu: "aarch64"},
		},
	},
	models.OSFreeBSD: {
		extension:     "so",
		vendor:        "unknown",
		platformToken: "freebsd",
		archs: map[models.Arch]archEntry{
			models.ArchX64: {cpu: "x86_64"},
		},
	},
	models.OSAndroid: {
		extension:     "so",
		vendor:        "linux",
		platformToken: "android",
		archs: map[models.Arch]archEntry{
			models.ArchArm64: {cpu: "aarch64", abi: "android"},
			models.ArchArm:   {cpu: "armv7", abi: "androideabi", qualifier: "eabi"},
			models.ArchX64:   {cpu: "x86_64", abi: "android"},
		},
	},
}

// tripleOS is the OS component of each triple. Android triples carry the
// OS in the ABI slot (aarch64-linux-android).
var tripleOS = map[models.OS]string{
	models.OSWindows: "windows",
	models.OSMacOS:   "darwin",
	models.OSLinux:   "linux",
	models.OSFreeBSD: "freebsd",
	models.OSAndroid: "",
}

// Supported lists every host combination the table accepts
func Supported() []models.HostFacts {
	var hosts []models.HostFacts
	for _, os := range []models.OS{models.OSWindows, models.OSMacOS, models.OSLinux, models.OSFreeBSD, models.OSAndroid} {
		entry := targets[os]
		for _, arch := range []models.Arch{models.ArchX64, models.ArchArm64, models.ArchArm} {
			if _, ok := entry.archs[arch]; !ok {
				continue
			}
			if entry.libcSensitive {
				hosts = append(hosts,
					models.HostFacts{OS: os, Arch: arch, Libc: models.LibcGnu},
					models.HostFacts{OS: os, Arch: arch, Libc: models.LibcMusl},
				)
				continue
			}
			hosts = append(hosts, models.HostFacts{OS: os, Arch: arch})
		}
	}
	return hosts
}
