// Package manifest reads the declared package version from package metadata.
package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultPath is the package metadata file read when none is configured
const DefaultPath = "package.json"

// versionKeys are tried in order: package.json, then Cargo.toml's [package]
var versionKeys = []string{"version", "package.version"}

// ReadVersion returns the version declared in the metadata file at path.
// The format follows the extension; files without one are read as JSON.
func ReadVersion(path string) (string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}

	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("failed to read package metadata %s: %w", path, err)
	}

	for _, key := range versionKeys {
		if version := strings.TrimSpace(v.GetString(key)); version != "" {
			return version, nil
		}
	}

	return "", fmt.Errorf("package metadata %s declares no version", path)
}
