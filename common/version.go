package common

import (
	"errors"
	"fmt"
)

const (
	major = 0
	minor = 1
	patch = 0

	// Version is the current version of the persisted state layout.
	Version = major*1_000_000 + minor*1_000 + patch
)

var (
	// ErrVersionMismatch is returned by CheckVersion when stored state was
	// written with an incompatible layout.
	ErrVersionMismatch = errors.New("state version mismatch")

	// ErrAlreadyUpdated is returned by CheckVersion if stored state was
	// written by a newer release.
	ErrAlreadyUpdated = errors.New("state is of a newer version")
)

// CheckVersion checks that the stored state version can be read by the
// current code. Only the major component must match; stored minor versions
// must not exceed the current one.
func CheckVersion(from uint32) error {
	if from/1_000_000 != major {
		return fmt.Errorf("%w: stored %d, expected major %d", ErrVersionMismatch, from, major)
	}
	if from > Version {
		return fmt.Errorf("%w: stored %d, current %d", ErrAlreadyUpdated, from, Version)
	}
	return nil
}
