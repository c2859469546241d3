package platform

import (
	"strings"

	"github.com/letrix/nativefetch/internal/models"
)

// Resolve maps host facts to a TargetSpec. Hosts missing from the table
// fail with *models.UnsupportedPlatformError; there is no fallback target.
func Resolve(host models.HostFacts) (*models.TargetSpec, error) {
	entry, ok := targets[host.OS]
	if !ok {
		return nil, &models.UnsupportedPlatformError{OS: host.OS, Arch: host.Arch, Libc: host.Libc}
	}

	arch, ok := entry.archs[host.Arch]
	if !ok {
		return nil, &models.UnsupportedPlatformError{OS: host.OS, Arch: host.Arch, Libc: host.Libc}
	}

	libc := models.LibcNone
	abi := arch.abi
	qualifier := arch.qualifier
	if entry.libcSensitive {
		if host.Libc != models.LibcGnu && host.Libc != models.LibcMusl {
			return nil, &models.UnsupportedPlatformError{OS: host.OS, Arch: host.Arch, Libc: host.Libc}
		}
		libc = host.Libc
		abi = string(host.Libc)
		qualifier = string(host.Libc)
	}

	parts := []string{arch.cpu, entry.vendor}
	for _, part := range []string{tripleOS[host.OS], abi} {
		if part != "" {
			parts = append(parts, part)
		}
	}

	spec := &models.TargetSpec{
		OS:            host.OS,
		Arch:          host.Arch,
		Libc:          libc,
		Triple:        strings.Join(parts, "-"),
		Extension:     entry.extension,
		PlatformToken: entry.platformToken,
		ArchToken:     string(host.Arch),
		Qualifier:     qualifier,
	}
	spec.ExpectedFilename = Canonical.Filename(spec)

	return spec, nil
}

// NeedsLibc reports whether resolving for os requires a libc probe
func NeedsLibc(os models.OS) bool {
	return targets[os].libcSensitive
}
