// Package recipe contains the recipe definition model and pure parsing
// logic for recipe documents. This is part of the Functional Core - all
// functions are pure with no I/O.
package recipe

import (
	"errors"
	"fmt"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	// Input validation errors
	ErrEmptyDocument = errors.New("recipe document is empty")
	ErrInvalidJSON   = errors.New("recipe document is not valid JSON")

	// Identity errors
	ErrMissingID      = errors.New("recipe id is required")
	ErrMissingVersion = errors.New("recipe version is required")
	ErrMissingName    = errors.New("recipe name is required")

	// Structure errors
	ErrUnknownDeploymentType = errors.New("unknown deployment type")
	ErrUnknownBundleType     = errors.New("unknown deployment bundle type")
	ErrUnknownSettingType    = errors.New("unknown option setting type")
	ErrUnknownValidatorKind  = errors.New("unknown validator kind")
	ErrMissingSettingID      = errors.New("option setting id is required")
	ErrDuplicateSettingID    = errors.New("duplicate option setting id among siblings")
)

// DefinitionError wraps errors with context about where in the recipe
// document validation failed.
type DefinitionError struct {
	Field   string // e.g., "optionSettings.ApplicationIAMRole.RoleArn"
	Message string
	Err     error
}

func (e *DefinitionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// NewDefinitionError creates a new DefinitionError.
func NewDefinitionError(field, message string, err error) *DefinitionError {
	return &DefinitionError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
