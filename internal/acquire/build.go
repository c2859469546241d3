package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/letrix/nativefetch/internal/inspect"
	"github.com/letrix/nativefetch/internal/models"
	"github.com/letrix/nativefetch/internal/platform"
	"github.com/letrix/nativefetch/internal/utils"
	"github.com/sirupsen/logrus"
)

// Builder produces artifacts by running the native toolchain
type Builder struct {
	// Program is the toolchain executable, e.g. cargo
	Program string
	// PrefixArgs go before the build subcommand, e.g. a +nightly selector
	PrefixArgs []string
	// ExtraArgs are appended after the target triple
	ExtraArgs []string
	// Env is added to the inherited environment
	Env []string

	// Dir is the project directory the toolchain runs in
	Dir string
	// TargetDir is the toolchain output root. Empty means $CARGO_TARGET_DIR,
	// then <Dir>/target.
	TargetDir string
	// LibName is the library identifier, e.g. image_encoder
	LibName string

	Stdout io.Writer
	Stderr io.Writer

	CheckFormat bool
}

// NewBuilder creates a cargo-driven builder for the project in dir
func NewBuilder(dir, libName string) *Builder {
	return &Builder{
		Program: "cargo",
		Dir:     dir,
		LibName: libName,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Name returns the strategy name
func (b *Builder) Name() string {
	return StrategyBuild
}

// Args returns the toolchain arguments for a release build of spec
func (b *Builder) Args(spec *models.TargetSpec) []string {
	args := append([]string{}, b.PrefixArgs...)
	args = append(args, "build", "--release", "--target", spec.Triple)
	return append(args, b.ExtraArgs...)
}

// OutputPath returns where the toolchain leaves the library for spec
func (b *Builder) OutputPath(spec *models.TargetSpec) string {
	targetDir := b.TargetDir
	if targetDir == "" {
		targetDir = os.Getenv("CARGO_TARGET_DIR")
	}
	if targetDir == "" {
		targetDir = filepath.Join(b.Dir, "target")
	} else if !filepath.IsAbs(targetDir) {
		targetDir = filepath.Join(b.Dir, targetDir)
	}

	return filepath.Join(targetDir, spec.Triple, "release", platform.LibraryFilename(spec, b.LibName))
}

// Acquire builds spec and relocates the library to dest. A failed build
// never touches dest.
func (b *Builder) Acquire(ctx context.Context, spec *models.TargetSpec, dest string) models.Outcome {
	mustBeResolved(spec)
	target := describe(spec)

	program := b.Program
	if program == "" {
		program = "cargo"
	}
	args := b.Args(spec)

	logrus.Infof("Building %s: %s %s", spec.Triple, program, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Dir = b.Dir
	cmd.Stdout = b.Stdout
	cmd.Stderr = b.Stderr
	if len(b.Env) > 0 {
		cmd.Env = append(os.Environ(), b.Env...)
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return models.BuildFailure(target, exitErr.ExitCode(), nil)
		}
		return models.BuildFailure(target, -1, fmt.Errorf("failed to run %s: %w", program, err))
	}

	output := b.OutputPath(spec)
	if !utils.FileExists(output) {
		return models.BuildFailure(target, 0, fmt.Errorf("toolchain succeeded but %s is missing", output))
	}

	if b.CheckFormat {
		if err := inspect.CheckFile(output, spec); err != nil {
			return models.IntegrityError(target, err)
		}
	}

	logrus.Debugf("Relocating %s to %s", output, dest)
	if err := utils.Relocate(output, dest); err != nil {
		return models.BuildFailure(target, 0, fmt.Errorf("failed to relocate build output: %w", err))
	}

	return models.Success(target, dest)
}
