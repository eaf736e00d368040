// Package validation contains pure validator construction and evaluation
// logic for recipe settings. This is part of the Functional Core - all
// functions are pure with no I/O.
package validation

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// ErrUnmappedValidatorKind is returned when a validator config names a
	// kind with no registered implementation. This indicates a defect in the
	// recipe catalog or in the kind registry, not a runtime condition.
	ErrUnmappedValidatorKind = errors.New("validator kind has no implementation")

	// ErrInvalidConfiguration is returned when a validator configuration
	// payload cannot be decoded.
	ErrInvalidConfiguration = errors.New("invalid validator configuration")
)

// UnmappedKindError reports which validator kind could not be mapped to an
// implementation.
type UnmappedKindError struct {
	Kind Kind
}

func (e *UnmappedKindError) Error() string {
	return fmt.Sprintf("validator kind %q has no implementation", e.Kind)
}

func (e *UnmappedKindError) Unwrap() error {
	return ErrUnmappedValidatorKind
}

// ConfigurationError wraps a payload decode failure with the kind being built.
type ConfigurationError struct {
	Kind Kind
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("decode configuration for validator kind %q: %v", e.Kind, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}
