// Package acquire obtains native artifacts for a resolved target, either by
// downloading a prebuilt release or by building it locally.
package acquire

import (
	"context"

	"github.com/letrix/nativefetch/internal/models"
)

// Strategy names accepted in configuration
const (
	StrategyDownload = "download"
	StrategyBuild    = "build"
)

// Strategy interface for artifact acquisition
type Strategy interface {
	// Acquire obtains the artifact for spec and places it at dest. The
	// destination either holds the complete artifact afterwards or is left
	// as it was.
	Acquire(ctx context.Context, spec *models.TargetSpec, dest string) models.Outcome

	// Name returns the strategy name used in configuration
	Name() string
}

// mustBeResolved panics when acquisition is attempted without a resolved
// target. That is a caller bug, not a runtime outcome.
func mustBeResolved(spec *models.TargetSpec) {
	if !spec.Resolved() {
		panic("acquire: target spec has not been resolved")
	}
}

// describe names a target for outcomes. The host tuple is left to the
// caller's error, which already carries it.
func describe(spec *models.TargetSpec) string {
	return spec.Triple
}
