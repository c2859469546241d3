// Package config layers environment variables and an optional config file
// underneath command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables, e.g. NATIVEFETCH_BASE_URL
const EnvPrefix = "NATIVEFETCH"

// ConfigFlag names the flag that points at the config file
const ConfigFlag = "config"

// ConfigFile returns the config file named by the flag value, falling back
// to NATIVEFETCH_CONFIG
func ConfigFile(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvPrefix + "_CONFIG")
}

// Overlay sets every flag the user did not pass explicitly from, in order of
// precedence, NATIVEFETCH_* environment variables and the config file.
func Overlay(flags *pflag.FlagSet, configFile string) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var firstErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == ConfigFlag || !v.IsSet(f.Name) {
			return
		}

		var value string
		switch f.Value.Type() {
		case "stringSlice", "stringArray":
			value = strings.Join(v.GetStringSlice(f.Name), ",")
		default:
			value = v.GetString(f.Name)
		}

		if err := flags.Set(f.Name, value); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("invalid value %q for %s: %w", value, f.Name, err)
		}
	})

	return firstErr
}
