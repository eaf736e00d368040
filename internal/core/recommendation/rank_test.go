package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/deploykit/internal/core/project"
	"github.com/artpar/deploykit/internal/core/recipe"
)

// =============================================================================
// Test Helpers
// =============================================================================

// stubScorer scores recipes from a fixed table; absent recipes are not
// applicable.
type stubScorer map[string]int

func (s stubScorer) Score(def *recipe.Definition, _ *project.Definition) (int, bool) {
	priority, ok := s[def.ID]
	return priority, ok
}

func namedDefinition(t *testing.T, id string) *recipe.Definition {
	t.Helper()
	def, err := recipe.ParseDefinition([]byte(`{
		"id": "` + id + `",
		"version": "1.0.0",
		"name": "` + id + `",
		"deploymentType": "CdkProject",
		"deploymentBundleType": "DotnetPublishZipFile"
	}`))
	require.NoError(t, err)
	return def
}

// =============================================================================
// Generate and Rank Tests
// =============================================================================

func TestGenerate_SkipsInapplicableRecipes(t *testing.T) {
	definitions := []*recipe.Definition{
		namedDefinition(t, "AppRunner"),
		namedDefinition(t, "EcsFargate"),
		namedDefinition(t, "ElasticBeanstalk"),
	}
	scorer := stubScorer{"EcsFargate": 90, "ElasticBeanstalk": 70}

	recommendations := Generate(definitions, testProject(), scorer)
	require.Len(t, recommendations, 2)
	assert.Equal(t, "EcsFargate", recommendations[0].Recipe.ID)
	assert.Equal(t, "ElasticBeanstalk", recommendations[1].Recipe.ID)
}

func TestRank_TiesBreakOnRecipeID(t *testing.T) {
	recommendations := []*Recommendation{
		New(namedDefinition(t, "Zeta"), testProject(), 50),
		New(namedDefinition(t, "Alpha"), testProject(), 50),
		New(namedDefinition(t, "Mid"), testProject(), 80),
	}
	Rank(recommendations)

	assert.Equal(t, "Mid", recommendations[0].Recipe.ID)
	assert.Equal(t, "Alpha", recommendations[1].Recipe.ID)
	assert.Equal(t, "Zeta", recommendations[2].Recipe.ID)
}
