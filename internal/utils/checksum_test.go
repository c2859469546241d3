package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCalculateChecksums(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.node")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	sum, err := CalculateChecksums(path)
	if err != nil {
		t.Fatalf("CalculateChecksums failed: %v", err)
	}
	if sum.SHA256 != "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824" {
		t.Errorf("SHA256 = %s", sum.SHA256)
	}
	if sum.Size != 5 {
		t.Errorf("Size = %d", sum.Size)
	}

	fromReader, err := ChecksumReader(strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("ChecksumReader failed: %v", err)
	}
	if *fromReader != *sum {
		t.Errorf("ChecksumReader = %+v, want %+v", fromReader, sum)
	}
}
