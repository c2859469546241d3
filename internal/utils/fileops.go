package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureDir ensures a directory exists, creating it if necessary
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// AtomicFile is a temporary file next to its final destination. Nothing is
// visible at the destination until Commit renames it into place.
type AtomicFile struct {
	*os.File
	dst  string
	done bool
}

// CreateAtomic opens a temporary file in the directory of dst, creating the
// directory if it doesn't exist
func CreateAtomic(dst string) (*AtomicFile, error) {
	dir := filepath.Dir(dst)
	if err := EnsureDir(dir); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return nil, err
	}

	return &AtomicFile{File: f, dst: dst}, nil
}

// Commit syncs the temporary file and renames it over the destination
func (a *AtomicFile) Commit() error {
	if a.done {
		return fmt.Errorf("%s already finalized", a.dst)
	}
	a.done = true

	if err := a.File.Sync(); err != nil {
		a.File.Close()
		os.Remove(a.File.Name())
		return err
	}
	if err := a.File.Close(); err != nil {
		os.Remove(a.File.Name())
		return err
	}
	if err := os.Chmod(a.File.Name(), 0755); err != nil {
		os.Remove(a.File.Name())
		return err
	}
	if err := os.Rename(a.File.Name(), a.dst); err != nil {
		os.Remove(a.File.Name())
		return err
	}
	return nil
}

// Abort discards the temporary file. It is safe to call after Commit.
func (a *AtomicFile) Abort() {
	if a.done {
		return
	}
	a.done = true
	a.File.Close()
	os.Remove(a.File.Name())
}

// CopyFile copies src to dst atomically: dst is either the full copy or untouched
func CopyFile(src, dst string) error {
	// Open source file
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	out, err := CreateAtomic(dst)
	if err != nil {
		return err
	}
	defer out.Abort()

	// Copy contents
	if _, err := io.Copy(out, srcFile); err != nil {
		return err
	}

	return out.Commit()
}

// Relocate moves src to dst, falling back to an atomic copy when a rename
// is not possible (e.g. across filesystems)
func Relocate(src, dst string) error {
	if err := EnsureDir(filepath.Dir(dst)); err != nil {
		return err
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := CopyFile(src, dst); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return os.Remove(src)
}

// FileExists reports whether path names an existing regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
