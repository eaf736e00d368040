// Package recommendation contains the runtime pairing of one recipe with one
// project: setting tree resolution, replacement tokens, dependency-gated
// visibility, validation and previous-settings reapplication. This is part
// of the Functional Core - no I/O, and the only mutable state is the
// Recommendation instance the caller holds.
package recommendation

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrSettingNotFound is returned when a dotted setting path fails to
	// resolve against the configurable-setting union.
	ErrSettingNotFound = errors.New("option setting not found")

	// ErrValidationFailed is returned when a value is rejected by one of a
	// setting's validators.
	ErrValidationFailed = errors.New("option setting validation failed")
)

// SettingNotFoundError reports which path (and which segment of it) failed
// to resolve.
type SettingNotFoundError struct {
	Path    string
	Segment string
}

func (e *SettingNotFoundError) Error() string {
	if e.Segment != "" && e.Segment != e.Path {
		return fmt.Sprintf("option setting %q not found (segment %q)", e.Path, e.Segment)
	}
	return fmt.Sprintf("option setting %q not found", e.Path)
}

func (e *SettingNotFoundError) Unwrap() error {
	return ErrSettingNotFound
}

// ValidationFailedError carries every failure message produced while
// validating one value.
type ValidationFailedError struct {
	SettingId string
	Messages  []string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("setting %q: %s", e.SettingId, strings.Join(e.Messages, "; "))
}

func (e *ValidationFailedError) Unwrap() error {
	return ErrValidationFailed
}
