package recommendation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/artpar/deploykit/internal/core/recipe"
)

// =============================================================================
// Dependency-Gated Visibility
// =============================================================================

// IsDisplayable reports whether a setting should be surfaced. A setting with
// no dependency rules is always displayable; otherwise every rule's target
// must currently resolve to the rule's expected value.
//
// A rule whose target cannot be resolved, or whose resolved value is nil,
// does not block visibility. Recipes reference bundle settings that may be
// absent for the chosen bundle type, so an unresolvable target is treated as
// satisfied rather than as a gate.
func (r *Recommendation) IsDisplayable(item *recipe.OptionSettingItem) bool {
	for _, rule := range item.DependsOn {
		target, err := r.GetOptionSetting(rule.Id)
		if err != nil || target == nil {
			continue
		}
		value := r.GetValue(target)
		if value == nil {
			continue
		}
		if !reflect.DeepEqual(value, rule.Value) {
			return false
		}
	}
	return true
}

// IsSummaryDisplayable reports whether a setting should appear in a
// configuration summary: it must be displayable and its resolved value must
// be non-empty when stringified.
func (r *Recommendation) IsSummaryDisplayable(item *recipe.OptionSettingItem) bool {
	if !r.IsDisplayable(item) {
		return false
	}
	return stringifyValue(r.GetValue(item)) != ""
}

// stringifyValue renders a resolved value for summary emptiness checks. An
// Object value is non-empty when any displayable child carries a value.
func stringifyValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case ObjectValue:
		if len(v.Values) == 0 {
			return ""
		}
		return fmt.Sprintf("%v", v.Values)
	case map[string]any:
		if len(v) == 0 {
			return ""
		}
		return fmt.Sprintf("%v", v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
