package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicFileAbortLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "nested", "artifact.node")

	f, err := CreateAtomic(dst)
	if err != nil {
		t.Fatalf("CreateAtomic failed: %v", err)
	}
	f.Write([]byte("partial"))
	f.Abort()

	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Errorf("Destination should not exist after abort")
	}

	entries, _ := os.ReadDir(filepath.Dir(dst))
	if len(entries) != 0 {
		t.Errorf("Expected empty directory after abort, found %d entries", len(entries))
	}
}

func TestAtomicFileCommitOverwrites(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "artifact.node")
	os.WriteFile(dst, []byte("old contents that are longer"), 0644)

	f, err := CreateAtomic(dst)
	if err != nil {
		t.Fatalf("CreateAtomic failed: %v", err)
	}
	defer f.Abort()

	f.Write([]byte("new"))
	if err := f.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("Failed to read destination: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("Destination contains %q", data)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Expected only the artifact in %s, found %d entries", dir, len(entries))
	}
}

func TestRelocate(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "target", "release", "libimage_encoder.so")
	dst := filepath.Join(dir, "bin", "linux-x64.node")

	os.MkdirAll(filepath.Dir(src), 0755)
	os.WriteFile(src, []byte("built"), 0644)

	if err := Relocate(src, dst); err != nil {
		t.Fatalf("Relocate failed: %v", err)
	}

	if FileExists(src) {
		t.Errorf("Source should be gone after relocation")
	}
	data, _ := os.ReadFile(dst)
	if string(data) != "built" {
		t.Errorf("Destination contains %q", data)
	}
}
