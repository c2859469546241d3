package utils

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

func compress(t *testing.T, kind string, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	var w io.WriteCloser
	var err error

	switch kind {
	case CompressionGzip:
		w = gzip.NewWriter(&buf)
	case CompressionZstd:
		w, err = zstd.NewWriter(&buf)
	case CompressionXz:
		w, err = xz.NewWriter(&buf)
	}
	if err != nil {
		t.Fatalf("Failed to create %s writer: %v", kind, err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Failed to write %s: %v", kind, err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close %s writer: %v", kind, err)
	}
	return buf.Bytes()
}

func TestDecompressor(t *testing.T) {
	payload := bytes.Repeat([]byte("\x7fELF native artifact "), 64)

	for _, kind := range []string{CompressionGzip, CompressionZstd, CompressionXz} {
		t.Run(kind, func(t *testing.T) {
			r, closer, err := Decompressor(bytes.NewReader(compress(t, kind, payload)), kind)
			if err != nil {
				t.Fatalf("Decompressor failed: %v", err)
			}
			defer closer()

			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("Decompressed payload differs")
			}
		})
	}
}

func TestCompressionSuffix(t *testing.T) {
	want := map[string]string{"": "", "none": "", "gzip": ".gz", "zstd": ".zst", "xz": ".xz"}
	for kind, suffix := range want {
		got, err := CompressionSuffix(kind)
		if err != nil || got != suffix {
			t.Errorf("CompressionSuffix(%q) = %q, %v", kind, got, err)
		}
	}
	if _, err := CompressionSuffix("brotli"); err == nil {
		t.Errorf("Expected error for unknown compression")
	}
}
