package cli

import (
	"errors"

	"github.com/letrix/nativefetch/internal/config"
	"github.com/letrix/nativefetch/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nativefetch",
		Short: "Install the native encoder artifact matching this host",
		Long: `Nativefetch resolves which native encoder artifact matches the running
host (operating system, CPU architecture and, on Linux, C library) and then
either downloads it from a versioned release store or builds it with the
native toolchain, placing it at a fixed path for the runtime to load.

Supported targets:
  - Windows x64, arm64 (.dll)
  - macOS x64, arm64 (.dylib)
  - Linux x64, arm64, glibc or musl (.so)
  - FreeBSD x64 (.so)
  - Android arm64, arm, x64 (.so)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Environment and config file fill in flags left unset
			configFlag, _ := cmd.Flags().GetString(config.ConfigFlag)
			if err := config.Overlay(cmd.Flags(), config.ConfigFile(configFlag)); err != nil {
				return invalidConfig(err)
			}

			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String(config.ConfigFlag, "", "Config file (YAML, JSON or TOML); NATIVEFETCH_* environment variables also apply")

	// Add subcommands
	rootCmd.AddCommand(NewInstallCmd())
	rootCmd.AddCommand(NewResolveCmd())

	return rootCmd
}

// ExitCode maps a command error to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var installErr *models.InstallError
	if errors.As(err, &installErr) {
		return installErr.Type.ExitCode()
	}
	return 1
}
