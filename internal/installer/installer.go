// Package installer ties version lookup, target resolution and artifact
// acquisition into a single install run.
package installer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/letrix/nativefetch/internal/acquire"
	"github.com/letrix/nativefetch/internal/libc"
	"github.com/letrix/nativefetch/internal/manifest"
	"github.com/letrix/nativefetch/internal/models"
	"github.com/letrix/nativefetch/internal/platform"
	"github.com/letrix/nativefetch/internal/utils"
	"github.com/letrix/nativefetch/internal/verifier"
	"github.com/sirupsen/logrus"
)

// Installer runs one install according to its configuration
type Installer struct {
	Config   *models.InstallConfig
	Detector libc.Detector

	// HTTPClient is used by the download strategy
	HTTPClient *http.Client
	// GOOS and GOARCH describe the running host unless the config overrides them
	GOOS   string
	GOARCH string
}

// Result describes a finished run
type Result struct {
	Version string
	Target  *models.TargetSpec
	Outcome models.Outcome
}

// New creates an installer for the running host
func New(config *models.InstallConfig) *Installer {
	return &Installer{
		Config:     config,
		Detector:   libc.NewProbe(),
		HTTPClient: http.DefaultClient,
	}
}

// Run resolves the version and target, acquires the artifact and reports the
// outcome. A NotFound outcome is returned with a nil error; every other
// failure comes back as *models.InstallError.
func (i *Installer) Run(ctx context.Context) (*Result, error) {
	cfg := i.Config

	version, err := i.ResolveVersion()
	if err != nil {
		return nil, &models.InstallError{Type: models.ErrInvalidConfig, Err: err}
	}

	spec, err := i.ResolveTarget(ctx)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Resolved target %s for %s", spec.Triple, spec.Host())

	strategy, err := i.NewStrategy(version)
	if err != nil {
		return nil, &models.InstallError{Type: models.ErrInvalidConfig, Host: spec.Host().String(), Err: err}
	}

	dest := i.Destination(spec)
	if info, err := os.Stat(filepath.Dir(dest)); err == nil && !info.IsDir() {
		return nil, &models.InstallError{
			Type: models.ErrFileOp,
			Host: spec.Host().String(),
			Err:  fmt.Errorf("install directory %s is not a directory", filepath.Dir(dest)),
		}
	}
	logrus.Debugf("Acquiring with %s strategy into %s", strategy.Name(), dest)

	outcome := strategy.Acquire(ctx, spec, dest)
	result := &Result{Version: version, Target: spec, Outcome: outcome}

	switch {
	case outcome.Kind == models.OutcomeSuccess:
		logrus.Infof("Installed %s", outcome.LocalPath)
		if logrus.IsLevelEnabled(logrus.DebugLevel) {
			if sum, err := utils.CalculateChecksums(outcome.LocalPath); err == nil {
				logrus.Debugf("%s: %d bytes, sha256 %s", outcome.LocalPath, sum.Size, sum.SHA256)
			}
		}
	case outcome.Kind == models.OutcomeNotFound:
		if cfg.Strategy == acquire.StrategyDownload {
			logrus.Warnf("No prebuilt artifact published for %s at version %s", spec.Host(), version)
		} else {
			logrus.Warnf("%s for %s", outcome, spec.Host())
		}
	case outcome.Fatal():
		return result, &models.InstallError{
			Type: outcome.ErrorType(),
			Host: spec.Host().String(),
			Err:  &models.OutcomeError{Outcome: outcome},
		}
	}

	return result, nil
}

// ResolveVersion returns the configured version, falling back to the package
// metadata file. Only the download strategy needs one.
func (i *Installer) ResolveVersion() (string, error) {
	cfg := i.Config
	if cfg.Version != "" {
		return cfg.Version, nil
	}
	if cfg.Strategy != acquire.StrategyDownload {
		return "", nil
	}

	path := cfg.ManifestPath
	if path == "" {
		path = manifest.DefaultPath
	}
	return manifest.ReadVersion(path)
}

// ResolveHost gathers host facts, honoring configured overrides
func (i *Installer) ResolveHost(ctx context.Context) (models.HostFacts, error) {
	cfg := i.Config

	goos, goarch := i.GOOS, i.GOARCH
	if cfg.OS != "" {
		goos = cfg.OS
	}
	if cfg.Arch != "" {
		goarch = cfg.Arch
	}

	var detector libc.Detector = i.Detector
	if cfg.Libc != "" {
		variant, err := platform.ParseLibc(cfg.Libc)
		if err != nil {
			return models.HostFacts{}, err
		}
		detector = libc.Fixed(variant)
	}

	if goos == "" && goarch == "" {
		return platform.DetectHost(ctx, detector)
	}
	if goos == "" || goarch == "" {
		host, err := platform.DetectHost(ctx, nil)
		if err != nil {
			return models.HostFacts{}, err
		}
		if goos == "" {
			goos = string(host.OS)
		}
		if goarch == "" {
			goarch = string(host.Arch)
		}
	}
	return platform.HostFromGo(ctx, goos, goarch, detector)
}

// ResolveTarget resolves the TargetSpec for the host
func (i *Installer) ResolveTarget(ctx context.Context) (*models.TargetSpec, error) {
	host, err := i.ResolveHost(ctx)
	if err != nil {
		return nil, &models.InstallError{Type: models.ErrInvalidConfig, Err: err}
	}

	spec, err := platform.Resolve(host)
	if err != nil {
		var unsupported *models.UnsupportedPlatformError
		if errors.As(err, &unsupported) {
			return nil, &models.InstallError{Type: models.ErrUnsupportedPlatform, Host: host.String(), Err: err}
		}
		return nil, err
	}
	return spec, nil
}

// LocalNaming returns the naming used for the installed file
func (i *Installer) LocalNaming() platform.Naming {
	return platform.Naming{
		Scheme:    i.Config.NamingScheme,
		Prefix:    i.Config.FilePrefix,
		Extension: i.Config.FileExt,
	}
}

// Destination returns the deterministic local path for spec
func (i *Installer) Destination(spec *models.TargetSpec) string {
	return filepath.Join(i.Config.InstallDir, i.LocalNaming().Filename(spec))
}

// NewStrategy builds the configured acquisition strategy
func (i *Installer) NewStrategy(version string) (acquire.Strategy, error) {
	cfg := i.Config

	switch cfg.Strategy {
	case acquire.StrategyDownload:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("base-url is required for the download strategy")
		}

		d := acquire.NewDownloader(cfg.BaseURL, version)
		if i.HTTPClient != nil {
			d.Client = i.HTTPClient
		}
		if cfg.RemoteScheme != "" {
			d.Naming.Scheme = cfg.RemoteScheme
		}
		if cfg.Compression != "" {
			d.Compression = cfg.Compression
		}
		d.ChecksumsFile = cfg.ChecksumsFile
		d.CheckFormat = cfg.CheckFormat

		if cfg.PGPKeyPath != "" {
			v, err := verifier.NewPGPVerifier(cfg.PGPKeyPath)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize signature verifier: %w", err)
			}
			d.Verifier = v
			logrus.Info("Signature verification enabled")
		}
		return d, nil

	case acquire.StrategyBuild:
		b := acquire.NewBuilder(cfg.ProjectDir, cfg.LibName)
		if cfg.Toolchain != "" {
			b.Program = cfg.Toolchain
		}
		b.TargetDir = cfg.TargetDir
		b.ExtraArgs = cfg.BuildArgs
		b.CheckFormat = cfg.CheckFormat
		return b, nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (want %s or %s)", cfg.Strategy, acquire.StrategyDownload, acquire.StrategyBuild)
	}
}
