package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/deploykit/internal/core/recipe"
)

// =============================================================================
// IsDisplayable Tests
// =============================================================================

func TestIsDisplayable_NoRulesAlwaysTrue(t *testing.T) {
	rec := newTestRecommendation(t)
	cpu := mustGetSetting(t, rec, "TaskCpu")
	assert.True(t, rec.IsDisplayable(cpu))
}

func TestIsDisplayable_RuleUnsatisfied(t *testing.T) {
	rec := newTestRecommendation(t)
	roleArn := mustGetSetting(t, rec, "ApplicationIAMRole.RoleArn")

	// CreateNew defaults to true; the rule expects false.
	assert.False(t, rec.IsDisplayable(roleArn))
}

func TestIsDisplayable_RuleSatisfied(t *testing.T) {
	rec := newTestRecommendation(t)
	roleArn := mustGetSetting(t, rec, "ApplicationIAMRole.RoleArn")
	createNew := mustGetSetting(t, rec, "ApplicationIAMRole.CreateNew")

	require.NoError(t, rec.SetValue(createNew, false))
	assert.True(t, rec.IsDisplayable(roleArn))
}

func TestIsDisplayable_AllRulesMustHold(t *testing.T) {
	rec := newTestRecommendation(t)
	item := &recipe.OptionSettingItem{
		Id:   "LoadBalancerArn",
		Type: recipe.TypeString,
		DependsOn: []recipe.DependencyRule{
			{Id: "TaskCpu", Value: float64(256)},  // satisfied by default
			{Id: "TaskMemory", Value: float64(1)}, // not satisfied
		},
	}
	assert.False(t, rec.IsDisplayable(item))

	item.DependsOn[1].Value = float64(512)
	assert.True(t, rec.IsDisplayable(item))
}

func TestIsDisplayable_UnresolvableTargetDoesNotGate(t *testing.T) {
	rec := newTestRecommendation(t)
	item := &recipe.OptionSettingItem{
		Id:   "Orphan",
		Type: recipe.TypeString,
		DependsOn: []recipe.DependencyRule{
			{Id: "NoSuchSetting", Value: "whatever"},
		},
	}
	assert.True(t, rec.IsDisplayable(item))
}

func TestIsDisplayable_NilTargetValueDoesNotGate(t *testing.T) {
	rec := newTestRecommendation(t)

	// DockerExecutionDirectory resolves but its value is the empty default;
	// force a nil by overriding with nil through the item directly.
	execDir := mustGetSetting(t, rec, "DockerExecutionDirectory")
	execDir.SetOverride(nil)

	item := &recipe.OptionSettingItem{
		Id:   "Gated",
		Type: recipe.TypeString,
		DependsOn: []recipe.DependencyRule{
			{Id: "DockerExecutionDirectory", Value: "/src"},
		},
	}
	assert.True(t, rec.IsDisplayable(item))
}

// =============================================================================
// IsSummaryDisplayable Tests
// =============================================================================

func TestIsSummaryDisplayable_RequiresNonEmptyValue(t *testing.T) {
	rec := newTestRecommendation(t)

	// DockerExecutionDirectory's default is the empty string.
	execDir := mustGetSetting(t, rec, "DockerExecutionDirectory")
	assert.True(t, rec.IsDisplayable(execDir))
	assert.False(t, rec.IsSummaryDisplayable(execDir))

	require.NoError(t, rec.SetValue(execDir, "./src"))
	assert.True(t, rec.IsSummaryDisplayable(execDir))
}

func TestIsSummaryDisplayable_HiddenSettingExcluded(t *testing.T) {
	rec := newTestRecommendation(t)
	roleArn := mustGetSetting(t, rec, "ApplicationIAMRole.RoleArn")

	// Non-empty value, but the dependency rule hides it.
	assert.False(t, rec.IsSummaryDisplayable(roleArn))
}

func TestIsSummaryDisplayable_NumericValues(t *testing.T) {
	rec := newTestRecommendation(t)
	cpu := mustGetSetting(t, rec, "TaskCpu")
	assert.True(t, rec.IsSummaryDisplayable(cpu))
}
