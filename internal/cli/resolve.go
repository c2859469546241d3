package cli

import (
	"fmt"

	"github.com/letrix/nativefetch/internal/acquire"
	"github.com/letrix/nativefetch/internal/installer"
	"github.com/letrix/nativefetch/internal/manifest"
	"github.com/letrix/nativefetch/internal/models"
	"github.com/letrix/nativefetch/internal/platform"
	"github.com/spf13/cobra"
)

// NewResolveCmd creates the resolve command
func NewResolveCmd() *cobra.Command {
	var config models.InstallConfig

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the build target and artifact names for this host",
		Long: `Resolves the host to a build target without acquiring anything and prints
the target triple, the artifact names and, when --base-url and a version are
known, the release URL that install would fetch.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !platform.ValidScheme(config.NamingScheme) || !platform.ValidScheme(config.RemoteScheme) {
				return invalidConfig(fmt.Errorf("naming schemes must be flat or qualified"))
			}
			if _, err := platform.ParseLibc(config.Libc); err != nil {
				return invalidConfig(err)
			}

			config.Strategy = acquire.StrategyDownload
			inst := installer.New(&config)

			spec, err := inst.ResolveTarget(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "host:      %s\n", spec.Host())
			fmt.Fprintf(out, "triple:    %s\n", spec.Triple)
			fmt.Fprintf(out, "extension: %s\n", spec.Extension)
			fmt.Fprintf(out, "artifact:  %s\n", spec.ExpectedFilename)
			fmt.Fprintf(out, "library:   %s\n", platform.LibraryFilename(spec, config.LibName))
			fmt.Fprintf(out, "local:     %s\n", inst.Destination(spec))

			if config.BaseURL == "" {
				return nil
			}
			version, err := inst.ResolveVersion()
			if err != nil {
				// The URL is informational; a missing version only hides it
				return nil
			}

			d := acquire.NewDownloader(config.BaseURL, version)
			d.Naming.Scheme = config.RemoteScheme
			coord, err := d.Coordinate(spec)
			if err != nil {
				return invalidConfig(err)
			}
			url, err := coord.URL()
			if err != nil {
				return invalidConfig(err)
			}
			fmt.Fprintf(out, "release:   %s\n", url)

			return nil
		},
	}

	addTargetFlags(cmd, &config)
	cmd.Flags().StringVar(&config.Version, "release-version", "", "Release version (defaults to the manifest version)")
	cmd.Flags().StringVarP(&config.ManifestPath, "manifest", "m", manifest.DefaultPath, "Package metadata file declaring the version")

	return cmd
}
