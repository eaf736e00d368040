package recommendation

import (
	"github.com/google/uuid"

	"github.com/artpar/deploykit/internal/core/recipe"
)

// =============================================================================
// Previous-Settings Reapplication (Redeploy Path)
// =============================================================================

// ApplyPreviousSettings produces a new recommendation reflecting a prior
// deployment's recorded top-level choices. The receiver is never mutated:
// the returned recommendation is a complete deep copy (setting tree, bundle
// settings, token map) with IsExistingCloudApplication set and an override
// installed on every top-level recipe setting whose Id appears in
// previousValues. Settings absent from the map keep the recipe default.
//
// Only top-level setting Ids are matched. Nested child settings are not
// independently reconciled; a child's value changes only when its parent
// Object setting's own Id was matched, in which case the recorded map is
// pushed down into the matching children so path resolution and dependency
// rules see the reapplied values.
func (r *Recommendation) ApplyPreviousSettings(previousValues map[string]any) *Recommendation {
	applied := r.clone()
	applied.IsExistingCloudApplication = true

	for _, item := range applied.settings {
		if value, ok := previousValues[item.Id]; ok {
			installPrevious(item, value)
		}
	}
	return applied
}

// installPrevious installs one recorded value on a setting node. An Object
// setting's recorded map is distributed onto its children by Id instead of
// being parked on the parent node: children are what path resolution,
// dependency rules and value composition read, so an override that only the
// parent holds would be invisible to all three. Map keys naming no child are
// dropped.
func installPrevious(item *recipe.OptionSettingItem, value any) {
	if item.Type == recipe.TypeObject {
		if values, ok := value.(map[string]any); ok {
			for _, child := range item.ChildOptionSettings {
				if childValue, ok := values[child.Id]; ok {
					installPrevious(child, childValue)
				}
			}
			return
		}
	}
	item.SetOverride(recipe.CloneValue(value))
}

// clone deep-copies the recommendation. Recipe and project stay shared; both
// are read-only. Everything mutable - setting tree, bundle settings, token
// map - is independently owned by the copy.
func (r *Recommendation) clone() *Recommendation {
	tokens := make(map[string]string, len(r.ReplacementTokens))
	for token, value := range r.ReplacementTokens {
		tokens[token] = value
	}

	return &Recommendation{
		ReferenceID:                "rec_" + uuid.New().String()[:8],
		Recipe:                     r.Recipe,
		Project:                    r.Project,
		ComputedPriority:           r.ComputedPriority,
		IsExistingCloudApplication: r.IsExistingCloudApplication,
		ReplacementTokens:          tokens,
		settings:                   recipe.CloneOptionSettings(r.settings),
		bundleSettings:             recipe.CloneOptionSettings(r.bundleSettings),
	}
}
