package recipe

import (
	"encoding/json"
	"fmt"
	"strings"
)

// =============================================================================
// Parser Functions
// =============================================================================

// ParseDefinition parses a recipe definition document into a Definition.
// This is a pure function - no I/O, no side effects.
// Input: raw JSON bytes
// Output: Definition or a *DefinitionError describing the first violation
func ParseDefinition(data []byte) (*Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyDocument
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, NewDefinitionError("", err.Error(), ErrInvalidJSON)
	}

	if err := validateDefinition(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// =============================================================================
// Structural Validation
// =============================================================================

func validateDefinition(def *Definition) error {
	if strings.TrimSpace(def.ID) == "" {
		return NewDefinitionError("id", "recipe id is required", ErrMissingID)
	}
	if strings.TrimSpace(def.Version) == "" {
		return NewDefinitionError("version", "recipe version is required", ErrMissingVersion)
	}
	if strings.TrimSpace(def.Name) == "" {
		return NewDefinitionError("name", "recipe name is required", ErrMissingName)
	}
	if !def.DeploymentType.IsValid() {
		return NewDefinitionError("deploymentType",
			fmt.Sprintf("unknown deployment type %q", def.DeploymentType),
			ErrUnknownDeploymentType)
	}
	if !def.DeploymentBundleType.IsValid() {
		return NewDefinitionError("deploymentBundleType",
			fmt.Sprintf("unknown deployment bundle type %q", def.DeploymentBundleType),
			ErrUnknownBundleType)
	}

	for _, cfg := range def.Validators {
		if !cfg.ValidatorType.IsRecipeKind() {
			return NewDefinitionError("validators",
				fmt.Sprintf("unknown recipe validator kind %q", cfg.ValidatorType),
				ErrUnknownValidatorKind)
		}
	}

	return validateSettings("optionSettings", def.OptionSettings)
}

// validateSettings checks one sibling group and recurses into children.
// Sibling ids must be unique within the group; uniqueness is not global.
func validateSettings(field string, items []*OptionSettingItem) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Id) == "" {
			return NewDefinitionError(field, "option setting id is required", ErrMissingSettingID)
		}
		itemField := field + "." + item.Id

		if seen[item.Id] {
			return NewDefinitionError(itemField,
				fmt.Sprintf("duplicate option setting id %q among siblings", item.Id),
				ErrDuplicateSettingID)
		}
		seen[item.Id] = true

		if !item.Type.IsValid() {
			return NewDefinitionError(itemField,
				fmt.Sprintf("unknown option setting type %q", item.Type),
				ErrUnknownSettingType)
		}
		for _, cfg := range item.Validators {
			if !cfg.ValidatorType.IsSettingKind() {
				return NewDefinitionError(itemField,
					fmt.Sprintf("unknown setting validator kind %q", cfg.ValidatorType),
					ErrUnknownValidatorKind)
			}
		}

		if err := validateSettings(itemField, item.ChildOptionSettings); err != nil {
			return err
		}
	}
	return nil
}
