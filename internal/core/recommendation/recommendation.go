package recommendation

import (
	"strings"

	"github.com/google/uuid"

	"github.com/artpar/deploykit/internal/core/project"
	"github.com/artpar/deploykit/internal/core/recipe"
	"github.com/artpar/deploykit/internal/core/validation"
)

// =============================================================================
// Recommendation
// =============================================================================

// Recommendation pairs one recipe definition with one project and carries
// the caller-configurable state: a deep, independent copy of the recipe's
// setting tree, the deployment bundle settings for the recipe's bundle type,
// and the replacement token map. No two Recommendation instances share a
// mutable tree or token map, even when built from the same definition.
type Recommendation struct {
	// ReferenceID identifies this recommendation instance.
	ReferenceID string

	// Recipe is the immutable definition this recommendation was built from.
	// Its setting tree is never touched; see settings below.
	Recipe *recipe.Definition

	// Project is the read-only project the recipe was matched against.
	Project *project.Definition

	// ComputedPriority is assigned by the scorer that produced this
	// recommendation; higher ranks earlier.
	ComputedPriority int

	// IsExistingCloudApplication is false until a previous deployment's
	// settings are applied through ApplyPreviousSettings.
	IsExistingCloudApplication bool

	// ReplacementTokens maps a literal "{token}" key to its substitution.
	// Seeded at construction with empty values; assigned through
	// SetReplacementToken.
	ReplacementTokens map[string]string

	settings       []*recipe.OptionSettingItem
	bundleSettings []*recipe.OptionSettingItem
}

// New builds a recommendation from a recipe and a project. The recipe's
// setting tree is deep-copied and replacement tokens are seeded from the
// copied defaults.
func New(def *recipe.Definition, proj *project.Definition, priority int) *Recommendation {
	rec := &Recommendation{
		ReferenceID:       "rec_" + uuid.New().String()[:8],
		Recipe:            def,
		Project:           proj,
		ComputedPriority:  priority,
		ReplacementTokens: make(map[string]string),
		settings:          recipe.CloneOptionSettings(def.OptionSettings),
		bundleSettings:    recipe.DefaultBundleSettings(def.DeploymentBundleType),
	}
	rec.seedReplacementTokens(rec.configurableSettings())
	return rec
}

// TopLevelSettings returns the recommendation's own copy of the recipe's
// top-level settings.
func (r *Recommendation) TopLevelSettings() []*recipe.OptionSettingItem {
	return r.settings
}

// DeploymentBundleSettings returns the bundle-specific settings unioned with
// the recipe settings during resolution.
func (r *Recommendation) DeploymentBundleSettings() []*recipe.OptionSettingItem {
	return r.bundleSettings
}

// configurableSettings is the resolution union: recipe settings first, then
// deployment bundle settings.
func (r *Recommendation) configurableSettings() []*recipe.OptionSettingItem {
	union := make([]*recipe.OptionSettingItem, 0, len(r.settings)+len(r.bundleSettings))
	union = append(union, r.settings...)
	union = append(union, r.bundleSettings...)
	return union
}

// =============================================================================
// Path Resolution
// =============================================================================

// GetOptionSetting resolves a dot-separated identifier path against the
// union of the recipe's top-level settings and the deployment bundle
// settings. A resolved node of type KeyValue is returned immediately even if
// path segments remain unconsumed: the remaining segment names a key inside
// that setting's dictionary and is interpreted by the caller, not the tree.
func (r *Recommendation) GetOptionSetting(path string) (*recipe.OptionSettingItem, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &SettingNotFoundError{Path: path}
	}

	candidates := r.configurableSettings()
	var current *recipe.OptionSettingItem
	for _, segment := range strings.Split(path, ".") {
		current = nil
		for _, candidate := range candidates {
			if candidate.Id == segment {
				current = candidate
				break
			}
		}
		if current == nil {
			return nil, &SettingNotFoundError{Path: path, Segment: segment}
		}
		if current.Type == recipe.TypeKeyValue {
			return current, nil
		}
		candidates = current.ChildOptionSettings
	}
	return current, nil
}

// =============================================================================
// Value Resolution
// =============================================================================

// ObjectValue carries an Object setting's child values together with the
// per-child displayability computed during retrieval, so callers can render
// only relevant children without re-querying.
type ObjectValue struct {
	Values      map[string]any
	Displayable map[string]bool
}

// GetValue returns the setting's effective value: the override when one was
// set, otherwise the recipe default. String results have every assigned
// replacement token substituted; unassigned tokens stay literal. Object
// settings without an override compose their value from their children.
func (r *Recommendation) GetValue(item *recipe.OptionSettingItem) any {
	if value, ok := item.Override(); ok {
		return r.substituted(value)
	}
	if item.Type == recipe.TypeObject {
		return r.objectValue(item)
	}
	return r.substituted(item.DefaultValue)
}

// GetDefaultValue returns the recipe default with replacement tokens
// applied, ignoring any override.
func (r *Recommendation) GetDefaultValue(item *recipe.OptionSettingItem) any {
	if item.Type == recipe.TypeObject {
		return r.objectValue(item)
	}
	return r.substituted(item.DefaultValue)
}

func (r *Recommendation) objectValue(item *recipe.OptionSettingItem) ObjectValue {
	value := ObjectValue{
		Values:      make(map[string]any, len(item.ChildOptionSettings)),
		Displayable: make(map[string]bool, len(item.ChildOptionSettings)),
	}
	for _, child := range item.ChildOptionSettings {
		displayable := r.IsDisplayable(child)
		value.Displayable[child.Id] = displayable
		if displayable {
			value.Values[child.Id] = r.GetValue(child)
		}
	}
	return value
}

func (r *Recommendation) substituted(value any) any {
	if s, ok := value.(string); ok {
		return r.applyReplacementTokens(s)
	}
	return value
}

// SetValue validates the value against the setting's validator list and,
// when every validator passes, installs it as an override.
func (r *Recommendation) SetValue(item *recipe.OptionSettingItem, value any) error {
	validators, err := validation.BuildSettingValidators(item.Validators)
	if err != nil {
		return err
	}

	var failures []string
	for _, v := range validators {
		if result := v.Validate(value); !result.Valid {
			failures = append(failures, result.FailureMessage)
		}
	}
	if len(failures) > 0 {
		return &ValidationFailedError{SettingId: item.Id, Messages: failures}
	}

	item.SetOverride(value)
	return nil
}

// ResolveValue resolves a dotted path to its effective value. It implements
// validation.SettingsSource for recipe-level validators.
func (r *Recommendation) ResolveValue(path string) (any, error) {
	item, err := r.GetOptionSetting(path)
	if err != nil {
		return nil, err
	}
	return r.GetValue(item), nil
}

// ValidateRecipe runs the recipe-level validator list against the current
// setting values and returns every failing result.
func (r *Recommendation) ValidateRecipe() ([]validation.Result, error) {
	validators, err := validation.BuildRecipeValidators(r.Recipe.Validators)
	if err != nil {
		return nil, err
	}

	var failures []validation.Result
	for _, v := range validators {
		if result := v.Validate(r); !result.Valid {
			failures = append(failures, result)
		}
	}
	return failures, nil
}
