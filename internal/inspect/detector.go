// Package inspect recognizes native binary formats by their magic bytes.
package inspect

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/letrix/nativefetch/internal/models"
)

// Format represents a native binary container format
type Format int

const (
	FormatUnknown Format = iota
	FormatELF
	FormatMachO
	FormatPE
)

// String returns the string representation of Format
func (f Format) String() string {
	switch f {
	case FormatELF:
		return "ELF"
	case FormatMachO:
		return "Mach-O"
	case FormatPE:
		return "PE"
	default:
		return "unknown"
	}
}

// Magic bytes for format detection
var (
	elfMagic = []byte{0x7F, 'E', 'L', 'F'}

	// PE images start with the DOS "MZ" stub
	peMagic = []byte{'M', 'Z'}

	// Mach-O thin (32/64-bit, either byte order) and universal headers
	machoMagics = []uint32{
		0xFEEDFACE, 0xCEFAEDFE,
		0xFEEDFACF, 0xCFFAEDFE,
		0xCAFEBABE, 0xBEBAFECA,
	}
)

// DetectFormat determines the binary format from the file header
func DetectFormat(r io.Reader) (Format, error) {
	header := make([]byte, 4)
	n, err := io.ReadFull(r, header)
	if err != nil && n < 2 {
		return FormatUnknown, err
	}
	header = header[:n]

	if bytes.HasPrefix(header, elfMagic) {
		return FormatELF, nil
	}

	if bytes.HasPrefix(header, peMagic) {
		return FormatPE, nil
	}

	if len(header) == 4 {
		magic := binary.BigEndian.Uint32(header)
		for _, m := range machoMagics {
			if magic == m {
				return FormatMachO, nil
			}
		}
	}

	return FormatUnknown, nil
}

// DetectFileFormat determines the binary format of a file
func DetectFileFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, err
	}
	defer f.Close()

	return DetectFormat(f)
}

// ExpectedFormat returns the format a target's shared library must have
func ExpectedFormat(targetOS models.OS) Format {
	switch targetOS {
	case models.OSWindows:
		return FormatPE
	case models.OSMacOS:
		return FormatMachO
	default: // linux, android, freebsd
		return FormatELF
	}
}

// CheckFile fails unless path holds a binary of the format spec expects
func CheckFile(path string, spec *models.TargetSpec) error {
	got, err := DetectFileFormat(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact header: %w", err)
	}

	want := ExpectedFormat(spec.OS)
	if got != want {
		return fmt.Errorf("artifact for %s is %s, expected %s", spec.Triple, got, want)
	}
	return nil
}
