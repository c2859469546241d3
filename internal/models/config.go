package models

import "time"

// InstallConfig contains configuration for a single install run
type InstallConfig struct {
	// Strategy selects how the artifact is obtained: "download" or "build"
	Strategy string

	// Version resolution
	ManifestPath string // Package metadata file carrying the version
	Version      string // Explicit version, overrides the manifest

	// Destination
	InstallDir   string
	NamingScheme string // flat or qualified
	FilePrefix   string // e.g. "index."
	FileExt      string // "node", or empty for the OS-native extension

	// Host overrides, for resolving a foreign target
	OS   string
	Arch string
	Libc string

	// Download strategy
	BaseURL       string
	RemoteScheme  string // flat or qualified, for the release store filename
	Compression   string // none, gzip, zstd, xz
	ChecksumsFile string // e.g. SHA256SUMS, fetched next to the artifact
	PGPKeyPath    string // Public keyring used to verify <asset>.asc
	CheckFormat   bool   // Verify the artifact is ELF / Mach-O / PE as expected

	// Build strategy
	Toolchain  string   // e.g. cargo
	ProjectDir string   // Working directory for the toolchain
	TargetDir  string   // Toolchain output root, defaults to <ProjectDir>/target
	LibName    string   // Library identifier, e.g. image_encoder
	BuildArgs  []string // Extra arguments appended to the build command

	Timeout time.Duration
}
