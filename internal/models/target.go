package models

import (
	"fmt"
	"net/url"
)

// TargetSpec describes the artifact that matches a host
type TargetSpec struct {
	OS   OS
	Arch Arch
	Libc Libc

	// Triple is the toolchain target identifier, e.g. x86_64-unknown-linux-musl
	Triple string
	// Extension is the OS-native shared library extension without the dot
	Extension string
	// ExpectedFilename is the canonical artifact name, e.g. linux-x64-musl.node
	ExpectedFilename string

	// Naming tokens as the hosting runtime spells them
	PlatformToken string
	ArchToken     string
	Qualifier     string
}

// Host returns the facts this spec was resolved from
func (t *TargetSpec) Host() HostFacts {
	return HostFacts{OS: t.OS, Arch: t.Arch, Libc: t.Libc}
}

// Resolved reports whether t was produced by the resolver
func (t *TargetSpec) Resolved() bool {
	return t != nil && t.Triple != "" && t.Extension != ""
}

// ReleaseCoordinate locates one artifact in the release store
type ReleaseCoordinate struct {
	BaseURL        string
	Version        string
	TargetFilename string
}

// URL returns <baseUrl>/<version>/<targetFilename>
func (c ReleaseCoordinate) URL() (string, error) {
	if c.BaseURL == "" {
		return "", fmt.Errorf("base URL is empty")
	}
	u, err := url.JoinPath(c.BaseURL, c.Version, c.TargetFilename)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	return u, nil
}
