// Package libc classifies the C runtime of a Linux host as glibc or musl.
package libc

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/letrix/nativefetch/internal/models"
	"github.com/sirupsen/logrus"
)

// Detector reports the C runtime flavor of the host
type Detector interface {
	// Detect returns LibcGnu or LibcMusl, never anything else
	Detect(ctx context.Context) models.Libc
}

// Fixed is a Detector that always answers the same variant
type Fixed models.Libc

// Detect returns the fixed variant
func (f Fixed) Detect(ctx context.Context) models.Libc {
	return models.Libc(f)
}

// Probe detects the C runtime in two tiers: a structured report from the
// environment when one exists, then the contents of the ldd script.
// Anything ambiguous resolves to musl.
type Probe struct {
	// Report returns the C library version report. ok is false when the
	// environment offers no report at all.
	Report func(ctx context.Context) (report string, ok bool)

	LookPath func(file string) (string, error)
	ReadFile func(name string) ([]byte, error)
}

// NewProbe creates a probe wired to the real host
func NewProbe() *Probe {
	return &Probe{
		Report:   getconfReport,
		LookPath: exec.LookPath,
		ReadFile: os.ReadFile,
	}
}

// Detect classifies the host C runtime
func (p *Probe) Detect(ctx context.Context) models.Libc {
	if p.Report != nil {
		if report, ok := p.Report(ctx); ok {
			if strings.HasPrefix(strings.ToLower(report), "glibc") {
				logrus.Debugf("libc report %q: gnu", report)
				return models.LibcGnu
			}
			logrus.Debugf("libc report carries no glibc version (%q): musl", report)
			return models.LibcMusl
		}
	}

	logrus.Debug("No libc report available, inspecting ldd")
	return p.detectFromLoader()
}

func (p *Probe) detectFromLoader() models.Libc {
	if p.LookPath == nil || p.ReadFile == nil {
		return models.LibcMusl
	}

	lddPath, err := p.LookPath("ldd")
	if err != nil {
		logrus.Debugf("ldd not found (%v): musl", err)
		return models.LibcMusl
	}

	data, err := p.ReadFile(lddPath)
	if err != nil {
		logrus.Debugf("Failed to read %s (%v): musl", lddPath, err)
		return models.LibcMusl
	}

	switch {
	case bytes.Contains(data, []byte("musl")):
		return models.LibcMusl
	case bytes.Contains(data, []byte("GNU C Library")),
		bytes.Contains(data, []byte("glibc")),
		bytes.Contains(data, []byte("GLIBC")):
		return models.LibcGnu
	default:
		logrus.Debugf("%s names neither musl nor glibc: musl", lddPath)
		return models.LibcMusl
	}
}

// getconfReport asks getconf for the glibc version. A missing getconf means
// no report; a getconf that cannot answer means there is no glibc.
func getconfReport(ctx context.Context) (string, bool) {
	getconf, err := exec.LookPath("getconf")
	if err != nil {
		return "", false
	}

	out, err := exec.CommandContext(ctx, getconf, "GNU_LIBC_VERSION").Output()
	if err != nil {
		return "", true
	}

	return strings.TrimSpace(string(out)), true
}
