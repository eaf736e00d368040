package recipe

import (
	"encoding/json"

	"github.com/artpar/deploykit/internal/core/validation"
)

// =============================================================================
// Deep Copy Functions
// =============================================================================

// Clone returns a structurally independent copy of the setting and its whole
// subtree: children, dependency rules, validator configs, decoded values and
// the override slot. Mutating the copy never affects the receiver.
func (i *OptionSettingItem) Clone() *OptionSettingItem {
	if i == nil {
		return nil
	}
	clone := &OptionSettingItem{
		Id:              i.Id,
		Name:            i.Name,
		Description:     i.Description,
		Type:            i.Type,
		DefaultValue:    CloneValue(i.DefaultValue),
		AdvancedSetting: i.AdvancedSetting,
		Updatable:       i.Updatable,
		overrideValue:   CloneValue(i.overrideValue),
		overrideSet:     i.overrideSet,
	}

	if len(i.ChildOptionSettings) > 0 {
		clone.ChildOptionSettings = make([]*OptionSettingItem, 0, len(i.ChildOptionSettings))
		for _, child := range i.ChildOptionSettings {
			clone.ChildOptionSettings = append(clone.ChildOptionSettings, child.Clone())
		}
	}
	if len(i.DependsOn) > 0 {
		clone.DependsOn = make([]DependencyRule, 0, len(i.DependsOn))
		for _, rule := range i.DependsOn {
			clone.DependsOn = append(clone.DependsOn, DependencyRule{
				Id:    rule.Id,
				Value: CloneValue(rule.Value),
			})
		}
	}
	if len(i.Validators) > 0 {
		clone.Validators = make([]validation.Config, 0, len(i.Validators))
		for _, cfg := range i.Validators {
			clone.Validators = append(clone.Validators, validation.Config{
				ValidatorType: cfg.ValidatorType,
				Configuration: append(json.RawMessage(nil), cfg.Configuration...),
			})
		}
	}
	return clone
}

// CloneOptionSettings deep-copies an ordered sibling group.
func CloneOptionSettings(items []*OptionSettingItem) []*OptionSettingItem {
	if items == nil {
		return nil
	}
	clones := make([]*OptionSettingItem, 0, len(items))
	for _, item := range items {
		clones = append(clones, item.Clone())
	}
	return clones
}

// CloneValue deep-copies a decoded document value: JSON scalars pass through,
// maps and slices are copied recursively.
func CloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(v))
		for key, val := range v {
			clone[key] = CloneValue(val)
		}
		return clone
	case map[string]string:
		clone := make(map[string]string, len(v))
		for key, val := range v {
			clone[key] = val
		}
		return clone
	case []any:
		clone := make([]any, 0, len(v))
		for _, val := range v {
			clone = append(clone, CloneValue(val))
		}
		return clone
	case []string:
		return append([]string(nil), v...)
	default:
		return v
	}
}
