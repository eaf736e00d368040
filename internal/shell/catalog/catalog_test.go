package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/deploykit/internal/core/recipe"
)

// =============================================================================
// Test Helpers
// =============================================================================

func writeRecipe(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const customJSONRecipe = `{
	"id": "CustomWorker",
	"version": "0.1.0",
	"name": "Custom Worker Service",
	"deploymentType": "CdkProject",
	"deploymentBundleType": "DotnetPublishZipFile",
	"optionSettings": [
		{"id": "QueueUrl", "name": "Queue URL", "type": "String", "defaultValue": ""}
	]
}`

const customYAMLRecipe = `
id: CustomCron
version: 0.2.0
name: Custom Cron Task
deploymentType: CdkProject
deploymentBundleType: Container
optionSettings:
  - id: Schedule
    name: Schedule Expression
    type: String
    defaultValue: "rate(5 minutes)"
    validators:
      - validatorType: regex
        configuration:
          regex: "^(rate|cron)\\(.+\\)$"
          validationFailedMessage: Schedule must be a rate() or cron() expression.
`

// =============================================================================
// Load Tests
// =============================================================================

func TestLoad_EmbeddedRecipes(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	def, err := c.Get("AspNetAppEcsFargate")
	require.NoError(t, err)
	assert.Equal(t, recipe.BundleTypeContainer, def.DeploymentBundleType)
	assert.NotEmpty(t, def.OptionSettings)

	_, err = c.Get("AspNetAppElasticBeanstalkLinux")
	assert.NoError(t, err)
	_, err = c.Get("AspNetAppAppRunner")
	assert.NoError(t, err)
}

func TestLoad_CustomDirectoryJSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "worker.json", customJSONRecipe)
	writeRecipe(t, dir, "cron.yaml", customYAMLRecipe)
	writeRecipe(t, dir, "notes.txt", "not a recipe")

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Len())

	cron, err := c.Get("CustomCron")
	require.NoError(t, err)
	require.Len(t, cron.OptionSettings, 1)
	schedule := cron.OptionSettings[0]
	assert.Equal(t, recipe.TypeString, schedule.Type)
	assert.Equal(t, "rate(5 minutes)", schedule.DefaultValue)
	require.Len(t, schedule.Validators, 1)
}

func TestLoad_MissingCustomDirectoryIgnored(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
}

func TestLoad_DuplicateRecipeIDFails(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "dupe.json", `{
		"id": "AspNetAppEcsFargate",
		"version": "9.9.9",
		"name": "Impostor",
		"deploymentType": "CdkProject",
		"deploymentBundleType": "Container"
	}`)

	_, err := Load(dir)
	assert.True(t, errors.Is(err, ErrDuplicateRecipeID))
}

func TestLoad_InvalidDocumentReportsSource(t *testing.T) {
	dir := t.TempDir()
	writeRecipe(t, dir, "broken.json", `{"id": "Broken"}`)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")
}

func TestGet_UnknownRecipe(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	_, err = c.Get("Nope")
	assert.True(t, errors.Is(err, ErrRecipeNotFound))
}

func TestList_ReturnsCopy(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	list := c.List()
	require.NotEmpty(t, list)
	list[0] = nil
	assert.NotNil(t, c.List()[0])
}

// =============================================================================
// YAML Normalization Tests
// =============================================================================

func TestYamlToJSON_TypedValuesSurvive(t *testing.T) {
	data, err := yamlToJSON([]byte("a: 1\nb: true\nc: [x, y]\nd:\n  e: 2.5\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 1, "b": true, "c": ["x", "y"], "d": {"e": 2.5}}`, string(data))
}

func TestYamlToJSON_InvalidYAML(t *testing.T) {
	_, err := yamlToJSON([]byte("a: [unclosed"))
	assert.Error(t, err)
}
