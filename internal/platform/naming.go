package platform

import (
	"fmt"
	"strings"

	"github.com/letrix/nativefetch/internal/models"
)

// Naming schemes
const (
	SchemeFlat      = "flat"
	SchemeQualified = "qualified"
)

// Naming renders artifact filenames: <prefix><platform>-<arch>[-<qualifier>].<ext>
type Naming struct {
	Scheme string
	Prefix string
	// Extension without the dot; empty means the OS-native extension
	Extension string
}

// Canonical is the naming used for TargetSpec.ExpectedFilename
var Canonical = Naming{Scheme: SchemeQualified, Extension: "node"}

// ValidScheme reports whether scheme is a known naming scheme
func ValidScheme(scheme string) bool {
	return scheme == SchemeFlat || scheme == SchemeQualified
}

// Filename renders the artifact filename for spec
func (n Naming) Filename(spec *models.TargetSpec) string {
	var b strings.Builder

	b.WriteString(n.Prefix)
	fmt.Fprintf(&b, "%s-%s", spec.PlatformToken, spec.ArchToken)
	if n.Scheme == SchemeQualified && spec.Qualifier != "" {
		b.WriteString("-")
		b.WriteString(spec.Qualifier)
	}

	ext := n.Extension
	if ext == "" {
		ext = spec.Extension
	}
	b.WriteString(".")
	b.WriteString(strings.TrimPrefix(ext, "."))

	return b.String()
}

// LibraryFilename returns the toolchain's output name for a library,
// e.g. libimage_encoder.so or image_encoder.dll
func LibraryFilename(spec *models.TargetSpec, libName string) string {
	if spec.OS == models.OSWindows {
		return libName + "." + spec.Extension
	}
	return "lib" + libName + "." + spec.Extension
}
