package verifier

import (
	"fmt"
	"path/filepath"
	"strings"
)

const sha256HexLen = 64

// ExpectedSHA256 finds the digest for assetName in a checksum file. Both
// "<digest>  <name>" listings and a file holding a bare digest are accepted.
func ExpectedSHA256(data []byte, assetName string) (string, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("checksum file is empty")
	}
	if isHexDigest(text) {
		return strings.ToLower(text), nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || !isHexDigest(fields[0]) {
			continue
		}
		// sha256sum marks binary mode with a leading '*'
		name := strings.TrimPrefix(fields[len(fields)-1], "*")
		if filepath.Base(name) == assetName {
			return strings.ToLower(fields[0]), nil
		}
	}

	return "", fmt.Errorf("checksum for %s not found", assetName)
}

// CompareSHA256 returns an error when actual does not match expected
func CompareSHA256(expected, actual string) error {
	if !strings.EqualFold(expected, actual) {
		return fmt.Errorf("sha256 mismatch: expected %s, got %s", expected, actual)
	}
	return nil
}

func isHexDigest(value string) bool {
	if len(value) != sha256HexLen {
		return false
	}
	for _, ch := range value {
		if (ch < '0' || ch > '9') && (ch < 'a' || ch > 'f') && (ch < 'A' || ch > 'F') {
			return false
		}
	}
	return true
}
