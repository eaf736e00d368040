package validation

import "encoding/json"

// =============================================================================
// Validator Factory
// =============================================================================

// BuildSettingValidators maps every config in a setting's validator list to
// exactly one concrete validator instance selected by its kind. An unmapped
// kind fails loudly; validators are never silently skipped.
func BuildSettingValidators(configs []Config) ([]SettingValidator, error) {
	validators := make([]SettingValidator, 0, len(configs))
	for _, cfg := range configs {
		validator, err := buildSettingValidator(cfg)
		if err != nil {
			return nil, err
		}
		validators = append(validators, validator)
	}
	return validators, nil
}

// BuildRecipeValidators maps every config in a recipe's validator list to
// exactly one concrete validator instance selected by its kind.
func BuildRecipeValidators(configs []Config) ([]RecipeValidator, error) {
	validators := make([]RecipeValidator, 0, len(configs))
	for _, cfg := range configs {
		validator, err := buildRecipeValidator(cfg)
		if err != nil {
			return nil, err
		}
		validators = append(validators, validator)
	}
	return validators, nil
}

func buildSettingValidator(cfg Config) (SettingValidator, error) {
	switch cfg.ValidatorType {
	case KindRequired:
		v := NewRequiredValidator()
		return v, decodeConfiguration(cfg, v)
	case KindRange:
		v := NewRangeValidator()
		return v, decodeConfiguration(cfg, v)
	case KindRegex:
		v := NewRegexValidator()
		return v, decodeConfiguration(cfg, v)
	case KindStringLength:
		v := NewStringLengthValidator()
		return v, decodeConfiguration(cfg, v)
	case KindURI:
		v := NewURIValidator()
		return v, decodeConfiguration(cfg, v)
	case KindComparison:
		v := NewComparisonValidator()
		return v, decodeConfiguration(cfg, v)
	default:
		return nil, &UnmappedKindError{Kind: cfg.ValidatorType}
	}
}

func buildRecipeValidator(cfg Config) (RecipeValidator, error) {
	switch cfg.ValidatorType {
	case KindFargateTaskSizeCpuMemoryLimits:
		v := NewFargateTaskSizeCpuMemoryLimitsValidator()
		return v, decodeConfiguration(cfg, v)
	case KindRequiredSetting:
		v := NewRequiredSettingValidator()
		return v, decodeConfiguration(cfg, v)
	default:
		return nil, &UnmappedKindError{Kind: cfg.ValidatorType}
	}
}

// decodeConfiguration overlays the serialized payload onto the validator the
// kind tag selected. The kind always decides which validator is built: when a
// payload was written for a different kind, only the fields whose names line
// up (typically validationFailedMessage) carry over, and the rest of the
// validator keeps its defaults.
func decodeConfiguration(cfg Config, validator any) error {
	if len(cfg.Configuration) == 0 || string(cfg.Configuration) == "null" {
		return nil
	}
	if err := json.Unmarshal(cfg.Configuration, validator); err != nil {
		return &ConfigurationError{Kind: cfg.ValidatorType, Err: err}
	}
	return nil
}
