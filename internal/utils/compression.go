package utils

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression formats a release store may serve artifacts in
const (
	CompressionNone = "none"
	CompressionGzip = "gzip"
	CompressionZstd = "zstd"
	CompressionXz   = "xz"
)

// CompressionSuffix returns the filename suffix for a compression format
func CompressionSuffix(kind string) (string, error) {
	switch kind {
	case "", CompressionNone:
		return "", nil
	case CompressionGzip:
		return ".gz", nil
	case CompressionZstd:
		return ".zst", nil
	case CompressionXz:
		return ".xz", nil
	default:
		return "", fmt.Errorf("unknown compression %q", kind)
	}
}

// Decompressor wraps r so reads yield decompressed bytes. The returned
// closer releases decoder resources; it does not close r.
func Decompressor(r io.Reader, kind string) (io.Reader, func(), error) {
	switch kind {
	case "", CompressionNone:
		return r, func() {}, nil
	case CompressionGzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return gr, func() { gr.Close() }, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	case CompressionXz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return xr, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown compression %q", kind)
	}
}
