package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/letrix/nativefetch/internal/inspect"
	"github.com/letrix/nativefetch/internal/models"
	"github.com/letrix/nativefetch/internal/platform"
	"github.com/letrix/nativefetch/internal/utils"
	"github.com/letrix/nativefetch/internal/verifier"
	"github.com/sirupsen/logrus"
)

// maxSidecarSize bounds checksum and signature downloads
const maxSidecarSize = 1 << 20

// Downloader fetches prebuilt artifacts from a versioned release store
type Downloader struct {
	Client  *http.Client
	BaseURL string
	Version string

	// Naming renders the release store filename
	Naming platform.Naming
	// Compression of the published asset; the stored artifact is decompressed
	Compression string

	// ChecksumsFile, when set, is fetched from the release directory and must
	// list the SHA-256 of the published asset
	ChecksumsFile string
	// Verifier, when set, checks <asset URL>.asc against the published asset
	Verifier verifier.Verifier
	// CheckFormat rejects artifacts whose binary format doesn't fit the target
	CheckFormat bool
}

// NewDownloader creates a downloader with the default release naming
func NewDownloader(baseURL, version string) *Downloader {
	return &Downloader{
		Client:      http.DefaultClient,
		BaseURL:     baseURL,
		Version:     version,
		Naming:      platform.Naming{Scheme: platform.SchemeQualified, Extension: "node"},
		Compression: utils.CompressionNone,
	}
}

// Name returns the strategy name
func (d *Downloader) Name() string {
	return StrategyDownload
}

// Coordinate returns the release store location of spec's artifact
func (d *Downloader) Coordinate(spec *models.TargetSpec) (models.ReleaseCoordinate, error) {
	suffix, err := utils.CompressionSuffix(d.Compression)
	if err != nil {
		return models.ReleaseCoordinate{}, err
	}

	return models.ReleaseCoordinate{
		BaseURL:        d.BaseURL,
		Version:        d.Version,
		TargetFilename: d.Naming.Filename(spec) + suffix,
	}, nil
}

// Acquire downloads the artifact for spec to dest
func (d *Downloader) Acquire(ctx context.Context, spec *models.TargetSpec, dest string) models.Outcome {
	mustBeResolved(spec)

	coord, err := d.Coordinate(spec)
	if err != nil {
		return models.TransportError(describe(spec), 0, err)
	}

	return d.Fetch(ctx, spec, coord, dest)
}

// Fetch issues a single GET for coord and stores the artifact at dest.
// 200 yields Success, 404 NotFound, anything else TransportError. Nothing
// is left at dest unless the whole body arrived and passed verification.
func (d *Downloader) Fetch(ctx context.Context, spec *models.TargetSpec, coord models.ReleaseCoordinate, dest string) models.Outcome {
	mustBeResolved(spec)
	target := describe(spec)

	assetURL, err := coord.URL()
	if err != nil {
		return models.TransportError(target, 0, err)
	}

	logrus.Infof("Downloading binary from %s", assetURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return models.TransportError(target, 0, fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := d.client().Do(req)
	if err != nil {
		return models.TransportError(target, 0, fmt.Errorf("failed to fetch %s: %w", assetURL, err))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		logrus.Debugf("%s answered 404", assetURL)
		return models.NotFound(target)
	default:
		return models.TransportError(target, resp.StatusCode,
			fmt.Errorf("unexpected status %q from %s", resp.Status, assetURL))
	}

	out, err := utils.CreateAtomic(dest)
	if err != nil {
		return models.TransportError(target, 0, fmt.Errorf("failed to stage %s: %w", dest, err))
	}
	defer out.Abort()

	// The published asset is kept apart from the artifact when it has to be
	// decompressed, since checksums and signatures cover the published bytes.
	raw := out.File
	if d.Compression != "" && d.Compression != utils.CompressionNone {
		raw, err = os.CreateTemp(filepath.Dir(dest), ".download-*.tmp")
		if err != nil {
			return models.TransportError(target, 0, fmt.Errorf("failed to stage download: %w", err))
		}
		defer func() {
			raw.Close()
			os.Remove(raw.Name())
		}()
	}

	n, err := io.Copy(raw, resp.Body)
	if err != nil {
		return models.TransportError(target, resp.StatusCode, fmt.Errorf("failed to read body from %s: %w", assetURL, err))
	}
	logrus.Debugf("Received %d bytes from %s", n, assetURL)

	if err := d.verify(ctx, raw, coord, assetURL); err != nil {
		return models.IntegrityError(target, err)
	}

	if raw != out.File {
		if err := decompressInto(out.File, raw, d.Compression); err != nil {
			return models.IntegrityError(target, fmt.Errorf("failed to decompress %s: %w", coord.TargetFilename, err))
		}
	}

	if d.CheckFormat {
		if err := out.Sync(); err != nil {
			return models.TransportError(target, 0, err)
		}
		if err := inspect.CheckFile(out.Name(), spec); err != nil {
			return models.IntegrityError(target, err)
		}
	}

	if err := out.Commit(); err != nil {
		return models.TransportError(target, 0, fmt.Errorf("failed to write %s: %w", dest, err))
	}

	return models.Success(target, dest)
}

// verify runs the configured checksum and signature checks over the
// published bytes in raw
func (d *Downloader) verify(ctx context.Context, raw *os.File, coord models.ReleaseCoordinate, assetURL string) error {
	if d.ChecksumsFile != "" {
		sumsURL, err := models.ReleaseCoordinate{
			BaseURL:        coord.BaseURL,
			Version:        coord.Version,
			TargetFilename: d.ChecksumsFile,
		}.URL()
		if err != nil {
			return err
		}

		sums, err := d.fetchSidecar(ctx, sumsURL)
		if err != nil {
			return fmt.Errorf("failed to fetch checksums: %w", err)
		}
		expected, err := verifier.ExpectedSHA256(sums, coord.TargetFilename)
		if err != nil {
			return err
		}

		if _, err := raw.Seek(0, io.SeekStart); err != nil {
			return err
		}
		actual, err := utils.ChecksumReader(raw)
		if err != nil {
			return err
		}
		if err := verifier.CompareSHA256(expected, actual.SHA256); err != nil {
			return fmt.Errorf("%s: %w", coord.TargetFilename, err)
		}
		logrus.Debugf("Checksum verified for %s", coord.TargetFilename)
	}

	if d.Verifier != nil {
		sig, err := d.fetchSidecar(ctx, assetURL+".asc")
		if err != nil {
			return fmt.Errorf("failed to fetch signature: %w", err)
		}

		if _, err := raw.Seek(0, io.SeekStart); err != nil {
			return err
		}
		if err := d.Verifier.VerifyDetached(raw, sig); err != nil {
			return fmt.Errorf("%s: %w", coord.TargetFilename, err)
		}
		logrus.Debugf("Signature verified for %s", coord.TargetFilename)
	}

	return nil
}

// fetchSidecar downloads a small file such as a checksum list or signature
func (d *Downloader) fetchSidecar(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %q from %s", resp.Status, rawURL)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxSidecarSize))
}

func (d *Downloader) client() *http.Client {
	if d.Client != nil {
		return d.Client
	}
	return http.DefaultClient
}

func decompressInto(dst io.Writer, raw *os.File, kind string) error {
	if _, err := raw.Seek(0, io.SeekStart); err != nil {
		return err
	}

	r, closer, err := utils.Decompressor(raw, kind)
	if err != nil {
		return err
	}
	defer closer()

	_, err = io.Copy(dst, r)
	return err
}
