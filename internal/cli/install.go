package cli

import (
	"context"
	"fmt"

	"github.com/letrix/nativefetch/internal/acquire"
	"github.com/letrix/nativefetch/internal/installer"
	"github.com/letrix/nativefetch/internal/manifest"
	"github.com/letrix/nativefetch/internal/models"
	"github.com/letrix/nativefetch/internal/platform"
	"github.com/letrix/nativefetch/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install command
func NewInstallCmd() *cobra.Command {
	var config models.InstallConfig

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Download or build the native artifact for this host",
		Long: `Resolves the build target for this host and obtains the matching native
artifact, either by downloading it from the release store (--strategy download)
or by running the native toolchain (--strategy build). The artifact is written
to a fixed path under --install-dir.

A missing release artifact is reported as a warning and does not fail the
command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate configuration
			if err := validateConfig(&config); err != nil {
				return err
			}

			logrus.Info("Starting native artifact installation...")
			logrus.Debugf("Configuration: %+v", config)

			return runInstall(cmd.Context(), &config)
		},
	}

	addTargetFlags(cmd, &config)

	// Strategy
	cmd.Flags().StringVarP(&config.Strategy, "strategy", "s", acquire.StrategyDownload, "Acquisition strategy (download, build)")
	cmd.Flags().DurationVar(&config.Timeout, "timeout", 0, "Abort the run after this long (0 disables)")
	cmd.Flags().BoolVar(&config.CheckFormat, "check-format", false, "Reject artifacts that are not ELF, Mach-O or PE as the target expects")

	// Download strategy flags
	cmd.Flags().StringVar(&config.Version, "release-version", "", "Release version to download (defaults to the manifest version)")
	cmd.Flags().StringVarP(&config.ManifestPath, "manifest", "m", manifest.DefaultPath, "Package metadata file declaring the version")
	cmd.Flags().StringVar(&config.Compression, "compression", utils.CompressionNone, "Compression of release assets (none, gzip, zstd, xz)")
	cmd.Flags().StringVar(&config.ChecksumsFile, "checksums", "", "Checksum file in the release directory to verify against, e.g. SHA256SUMS")
	cmd.Flags().StringVar(&config.PGPKeyPath, "pgp-key", "", "Public key used to verify <asset>.asc signatures")

	// Build strategy flags
	cmd.Flags().StringVar(&config.Toolchain, "toolchain", "cargo", "Native build toolchain executable")
	cmd.Flags().StringVar(&config.ProjectDir, "project-dir", ".", "Directory the toolchain runs in")
	cmd.Flags().StringVar(&config.TargetDir, "target-dir", "", "Toolchain output directory (defaults to $CARGO_TARGET_DIR or <project-dir>/target)")
	cmd.Flags().StringSliceVar(&config.BuildArgs, "build-arg", nil, "Extra argument passed to the toolchain (repeatable)")

	return cmd
}

// addTargetFlags registers the flags shared by install and resolve
func addTargetFlags(cmd *cobra.Command, config *models.InstallConfig) {
	// Host overrides
	cmd.Flags().StringVar(&config.OS, "os", "", "Resolve for this OS instead of the host (windows, macos, linux, android, freebsd)")
	cmd.Flags().StringVar(&config.Arch, "arch", "", "Resolve for this architecture instead of the host (x64, arm64, arm)")
	cmd.Flags().StringVar(&config.Libc, "libc", "", "Skip libc detection and use this variant (gnu, musl)")

	// Destination flags
	cmd.Flags().StringVarP(&config.InstallDir, "install-dir", "o", ".", "Directory the artifact is written to")
	cmd.Flags().StringVar(&config.NamingScheme, "naming", platform.SchemeQualified, "Local filename scheme (flat, qualified)")
	cmd.Flags().StringVar(&config.FilePrefix, "prefix", "index.", "Local filename prefix")
	cmd.Flags().StringVar(&config.FileExt, "ext", "node", "Local filename extension; empty for the OS-native one")

	// Release store flags
	cmd.Flags().StringVar(&config.BaseURL, "base-url", "", "Release store base URL; artifacts live at <base-url>/<version>/<file>")
	cmd.Flags().StringVar(&config.RemoteScheme, "remote-naming", platform.SchemeQualified, "Release store filename scheme (flat, qualified)")
	cmd.Flags().StringVar(&config.LibName, "lib-name", "image_encoder", "Library identifier of the toolchain output")
}

func validateConfig(config *models.InstallConfig) error {
	if config.InstallDir == "" {
		return invalidConfig(fmt.Errorf("install-dir is required"))
	}

	if config.Strategy != acquire.StrategyDownload && config.Strategy != acquire.StrategyBuild {
		return invalidConfig(fmt.Errorf("unknown strategy %q (want %s or %s)", config.Strategy, acquire.StrategyDownload, acquire.StrategyBuild))
	}

	if !platform.ValidScheme(config.NamingScheme) {
		return invalidConfig(fmt.Errorf("unknown naming scheme %q (want flat or qualified)", config.NamingScheme))
	}
	if !platform.ValidScheme(config.RemoteScheme) {
		return invalidConfig(fmt.Errorf("unknown remote naming scheme %q (want flat or qualified)", config.RemoteScheme))
	}

	if _, err := utils.CompressionSuffix(config.Compression); err != nil {
		return invalidConfig(err)
	}

	if _, err := platform.ParseLibc(config.Libc); err != nil {
		return invalidConfig(err)
	}

	if config.Strategy == acquire.StrategyDownload && config.BaseURL == "" {
		return invalidConfig(fmt.Errorf("base-url is required for the download strategy"))
	}

	if config.Strategy == acquire.StrategyBuild {
		if config.ProjectDir == "" {
			config.ProjectDir = "."
		}
		if config.LibName == "" {
			return invalidConfig(fmt.Errorf("lib-name is required for the build strategy"))
		}
	}

	if config.Timeout < 0 {
		return invalidConfig(fmt.Errorf("timeout must not be negative"))
	}

	return nil
}

func invalidConfig(err error) error {
	return &models.InstallError{
		Type: models.ErrInvalidConfig,
		Err:  err,
	}
}

func runInstall(ctx context.Context, config *models.InstallConfig) error {
	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	result, err := installer.New(config).Run(ctx)
	if err != nil {
		return err
	}

	if result.Outcome.Kind == models.OutcomeSuccess {
		logrus.Info("Native artifact installation completed successfully!")
		logrus.Infof("Artifact: %s", result.Outcome.LocalPath)
	}

	return nil
}
