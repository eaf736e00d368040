package recipe

import (
	"github.com/artpar/deploykit/internal/core/validation"
)

// =============================================================================
// Deployment Tags
// =============================================================================

// DeploymentType tags how a recipe provisions infrastructure.
type DeploymentType string

const (
	// DeploymentTypeCdkProject deploys through a generated IaC project.
	DeploymentTypeCdkProject DeploymentType = "CdkProject"
	// DeploymentTypeContainer deploys a container image directly.
	DeploymentTypeContainer DeploymentType = "Container"
)

// IsValid checks if the deployment type is valid.
func (dt DeploymentType) IsValid() bool {
	switch dt {
	case DeploymentTypeCdkProject, DeploymentTypeContainer:
		return true
	default:
		return false
	}
}

// DeploymentBundleType tags how build output is packaged for a recipe.
type DeploymentBundleType string

const (
	// BundleTypeContainer packages the application as a container image.
	BundleTypeContainer DeploymentBundleType = "Container"
	// BundleTypeDotnetPublishZipFile packages the application as a publish
	// zip artifact.
	BundleTypeDotnetPublishZipFile DeploymentBundleType = "DotnetPublishZipFile"
)

// IsValid checks if the bundle type is valid.
func (bt DeploymentBundleType) IsValid() bool {
	switch bt {
	case BundleTypeContainer, BundleTypeDotnetPublishZipFile:
		return true
	default:
		return false
	}
}

// =============================================================================
// Option Setting Types
// =============================================================================

// OptionSettingType is the declared value type of one option setting.
type OptionSettingType string

const (
	TypeString   OptionSettingType = "String"
	TypeInt      OptionSettingType = "Int"
	TypeDouble   OptionSettingType = "Double"
	TypeBool     OptionSettingType = "Bool"
	TypeObject   OptionSettingType = "Object"
	TypeKeyValue OptionSettingType = "KeyValue"
	TypeList     OptionSettingType = "List"
)

// IsValid checks if the option setting type is valid.
func (t OptionSettingType) IsValid() bool {
	switch t {
	case TypeString, TypeInt, TypeDouble, TypeBool, TypeObject, TypeKeyValue, TypeList:
		return true
	default:
		return false
	}
}

// =============================================================================
// Dependency Rules
// =============================================================================

// DependencyRule ties one setting's visibility to another setting's current
// value. Id is a dotted path resolved against the configurable-setting union
// at evaluation time; settings never hold direct references to one another.
type DependencyRule struct {
	Id    string `json:"id"`
	Value any    `json:"value"`
}

// =============================================================================
// Option Setting Item
// =============================================================================

// OptionSettingItem is one node in a recipe's configuration schema tree.
// Ids are unique among direct siblings, not globally. The tree declared by a
// recipe is owned exclusively by that recipe; a recommendation works on a
// deep, independent copy.
type OptionSettingItem struct {
	Id                  string               `json:"id"`
	Name                string               `json:"name"`
	Description         string               `json:"description,omitempty"`
	Type                OptionSettingType    `json:"type"`
	DefaultValue        any                  `json:"defaultValue,omitempty"`
	AdvancedSetting     bool                 `json:"advancedSetting,omitempty"`
	Updatable           bool                 `json:"updatable,omitempty"`
	ChildOptionSettings []*OptionSettingItem `json:"childOptionSettings,omitempty"`
	DependsOn           []DependencyRule     `json:"dependsOn,omitempty"`
	Validators          []validation.Config  `json:"validators,omitempty"`

	// Override slot. Set through SetOverride; never serialized.
	overrideValue any
	overrideSet   bool
}

// SetOverride installs an override value on the setting, bypassing the
// recipe default.
func (i *OptionSettingItem) SetOverride(value any) {
	i.overrideValue = value
	i.overrideSet = true
}

// ClearOverride removes a previously installed override.
func (i *OptionSettingItem) ClearOverride() {
	i.overrideValue = nil
	i.overrideSet = false
}

// Override returns the override value and whether one was set.
func (i *OptionSettingItem) Override() (any, bool) {
	return i.overrideValue, i.overrideSet
}

// =============================================================================
// Recipe Definition
// =============================================================================

// Definition is one catalog template describing a deployable application
// shape and its configurable settings. Definitions are immutable after load.
type Definition struct {
	ID                   string               `json:"id"`
	Version              string               `json:"version"`
	Name                 string               `json:"name"`
	Description          string               `json:"description,omitempty"`
	ShortDescription     string               `json:"shortDescription,omitempty"`
	TargetService        string               `json:"targetService,omitempty"`
	DeploymentType       DeploymentType       `json:"deploymentType"`
	DeploymentBundleType DeploymentBundleType `json:"deploymentBundleType"`
	RecipePriority       int                  `json:"recipePriority,omitempty"`
	OptionSettings       []*OptionSettingItem `json:"optionSettings,omitempty"`
	Validators           []validation.Config  `json:"validators,omitempty"`
}
