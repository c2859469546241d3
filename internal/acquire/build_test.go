package acquire

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/letrix/nativefetch/internal/models"
	"github.com/letrix/nativefetch/internal/platform"
	"github.com/letrix/nativefetch/internal/utils"
)

// TestHelperToolchain is not a real test. It stands in for cargo when the
// test binary is re-executed by a Builder.
func TestHelperToolchain(t *testing.T) {
	if os.Getenv("NATIVEFETCH_HELPER_TOOLCHAIN") != "1" {
		return
	}

	args := os.Args
	for len(args) > 0 {
		if args[0] == "--" {
			args = args[1:]
			break
		}
		args = args[1:]
	}

	if len(args) < 4 || args[0] != "build" || args[1] != "--release" || args[2] != "--target" {
		os.Exit(64)
	}
	triple := args[3]

	if lib := os.Getenv("HELPER_LIB"); lib != "" {
		out := filepath.Join("target", triple, "release", lib)
		os.MkdirAll(filepath.Dir(out), 0755)
		os.WriteFile(out, []byte("\x7fELF built for "+triple), 0644)
	}

	code, _ := strconv.Atoi(os.Getenv("HELPER_EXIT"))
	os.Exit(code)
}

func helperBuilder(t *testing.T, projectDir string, exitCode int, writeOutput bool) *Builder {
	t.Helper()
	b := NewBuilder(projectDir, "image_encoder")
	b.Program = os.Args[0]
	b.PrefixArgs = []string{"-test.run=^TestHelperToolchain$", "--"}
	b.TargetDir = "target"
	b.Stdout = io.Discard
	b.Stderr = io.Discard
	b.Env = []string{
		"NATIVEFETCH_HELPER_TOOLCHAIN=1",
		"HELPER_EXIT=" + strconv.Itoa(exitCode),
	}
	if writeOutput {
		b.Env = append(b.Env, "HELPER_LIB=libimage_encoder.so")
	}
	return b
}

func TestBuildSuccessRelocatesOutput(t *testing.T) {
	project := t.TempDir()
	dest := filepath.Join(t.TempDir(), "bin", "linux-x64.node")
	spec := linuxMusl(t)

	b := helperBuilder(t, project, 0, true)
	b.CheckFormat = true
	outcome := b.Acquire(context.Background(), spec, dest)

	if outcome.Kind != models.OutcomeSuccess {
		t.Fatalf("Expected Success, got %s", outcome)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Relocated artifact missing: %v", err)
	}
	if string(data) != "\x7fELF built for x86_64-unknown-linux-musl" {
		t.Errorf("Unexpected artifact contents %q", data)
	}

	if utils.FileExists(b.OutputPath(spec)) {
		t.Errorf("Toolchain output should have been moved, not copied")
	}
}

func TestBuildFailureLeavesNoArtifact(t *testing.T) {
	project := t.TempDir()
	dest := filepath.Join(t.TempDir(), "bin", "linux-x64.node")
	spec := linuxMusl(t)

	// The helper writes its output even though it exits 1; it must not be relocated
	outcome := helperBuilder(t, project, 1, true).Acquire(context.Background(), spec, dest)

	if outcome.Kind != models.OutcomeBuildFailure {
		t.Fatalf("Expected BuildFailure, got %s", outcome)
	}
	if outcome.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", outcome.ExitCode)
	}
	if utils.FileExists(dest) {
		t.Errorf("Destination must not exist after a failed build")
	}
}

func TestBuildFailureKeepsPreviousArtifact(t *testing.T) {
	project := t.TempDir()
	dest := filepath.Join(t.TempDir(), "linux-x64.node")
	os.WriteFile(dest, []byte("previous"), 0644)

	outcome := helperBuilder(t, project, 2, false).Acquire(context.Background(), linuxMusl(t), dest)
	if outcome.Kind != models.OutcomeBuildFailure || outcome.ExitCode != 2 {
		t.Fatalf("Expected BuildFailure{2}, got %s", outcome)
	}

	data, _ := os.ReadFile(dest)
	if string(data) != "previous" {
		t.Errorf("Destination was modified by a failed build: %q", data)
	}
}

func TestBuildSuccessWithoutOutput(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "linux-x64.node")

	outcome := helperBuilder(t, t.TempDir(), 0, false).Acquire(context.Background(), linuxMusl(t), dest)
	if outcome.Kind != models.OutcomeBuildFailure {
		t.Fatalf("Expected BuildFailure, got %s", outcome)
	}
	if outcome.Err == nil {
		t.Errorf("Missing output should be explained")
	}
}

func TestBuildMissingToolchain(t *testing.T) {
	b := NewBuilder(t.TempDir(), "image_encoder")
	b.Program = filepath.Join(t.TempDir(), "no-such-cargo")

	outcome := b.Acquire(context.Background(), linuxMusl(t), filepath.Join(t.TempDir(), "x.node"))
	if outcome.Kind != models.OutcomeBuildFailure || outcome.ExitCode != -1 {
		t.Fatalf("Expected BuildFailure{-1}, got %s", outcome)
	}
}

func TestBuilderOutputPath(t *testing.T) {
	win, err := platform.Resolve(models.HostFacts{OS: models.OSWindows, Arch: models.ArchArm64})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	b := NewBuilder("/src/encoder", "image_encoder")
	b.TargetDir = "/build"

	want := filepath.Join("/build", "aarch64-pc-windows-msvc", "release", "image_encoder.dll")
	if got := b.OutputPath(win); got != want {
		t.Errorf("OutputPath = %s, want %s", got, want)
	}

	args := b.Args(win)
	wantArgs := []string{"build", "--release", "--target", "aarch64-pc-windows-msvc"}
	if len(args) != len(wantArgs) {
		t.Fatalf("Args = %v", args)
	}
	for i := range wantArgs {
		if args[i] != wantArgs[i] {
			t.Errorf("Args = %v, want %v", args, wantArgs)
			break
		}
	}
}
