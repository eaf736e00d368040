package recipe

import (
	"encoding/json"

	"github.com/artpar/deploykit/internal/core/validation"
)

// =============================================================================
// Deployment Bundle Settings
// =============================================================================

// DefaultBundleSettings returns a fresh, independently owned setting tree for
// the given bundle type. These settings are unioned with a recipe's own
// settings during resolution; callers may mutate the returned tree freely.
func DefaultBundleSettings(bundleType DeploymentBundleType) []*OptionSettingItem {
	switch bundleType {
	case BundleTypeContainer:
		return containerBundleSettings()
	case BundleTypeDotnetPublishZipFile:
		return dotnetPublishBundleSettings()
	default:
		return nil
	}
}

func containerBundleSettings() []*OptionSettingItem {
	return []*OptionSettingItem{
		{
			Id:           "DockerExecutionDirectory",
			Name:         "Docker Execution Directory",
			Description:  "Directory docker build is executed from, relative to the project.",
			Type:         TypeString,
			DefaultValue: "",
		},
		{
			Id:           "DockerfilePath",
			Name:         "Dockerfile Path",
			Description:  "Path to the Dockerfile used to build the container image.",
			Type:         TypeString,
			DefaultValue: "Dockerfile",
		},
		{
			Id:           "ECRRepositoryName",
			Name:         "ECR Repository Name",
			Description:  "Name of the ECR repository the built image is pushed to.",
			Type:         TypeString,
			DefaultValue: "{StackName}",
			Validators: []validation.Config{
				{
					ValidatorType: validation.KindRegex,
					Configuration: json.RawMessage(`{
						"regex": "^(?:[a-z0-9]+(?:[._-][a-z0-9]+)*)*$",
						"validationFailedMessage": "Repository names must be lowercase alphanumeric with ._- separators."
					}`),
				},
			},
		},
		{
			Id:           "DockerBuildArgs",
			Name:         "Docker Build Args",
			Description:  "Additional arguments passed to docker build.",
			Type:         TypeKeyValue,
			DefaultValue: map[string]any{},
		},
	}
}

func dotnetPublishBundleSettings() []*OptionSettingItem {
	return []*OptionSettingItem{
		{
			Id:           "DotnetBuildConfiguration",
			Name:         "Build Configuration",
			Description:  "Configuration used when publishing the application.",
			Type:         TypeString,
			DefaultValue: "Release",
			Validators: []validation.Config{
				{
					ValidatorType: validation.KindRegex,
					Configuration: json.RawMessage(`{
						"regex": "^(Debug|Release)$",
						"validationFailedMessage": "Build configuration must be Debug or Release."
					}`),
				},
			},
		},
		{
			Id:           "DotnetPublishArgs",
			Name:         "Publish Args",
			Description:  "Additional arguments passed to the publish command.",
			Type:         TypeString,
			DefaultValue: "",
		},
		{
			Id:           "SelfContainedBuild",
			Name:         "Self Contained Build",
			Description:  "Publish the runtime together with the application.",
			Type:         TypeBool,
			DefaultValue: false,
		},
	}
}
