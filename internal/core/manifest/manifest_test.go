package manifest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// UpdateLastDeployedStack Tests
// =============================================================================

func TestUpdateLastDeployedStack_NewAccountRegion(t *testing.T) {
	var m DeploymentManifest
	m.UpdateLastDeployedStack("123456789012", "us-east-1", "orders-prod")

	require.Len(t, m.LastDeployedStacks, 1)
	assert.Equal(t, []string{"orders-prod"}, m.LastDeployedStacks[0].Stacks)
}

func TestUpdateLastDeployedStack_MostRecentFirst(t *testing.T) {
	var m DeploymentManifest
	m.UpdateLastDeployedStack("123456789012", "us-east-1", "a")
	m.UpdateLastDeployedStack("123456789012", "us-east-1", "b")
	m.UpdateLastDeployedStack("123456789012", "us-east-1", "c")

	assert.Equal(t, []string{"c", "b", "a"}, m.LastDeployedTo("123456789012", "us-east-1"))
}

func TestUpdateLastDeployedStack_RedeployMovesToFront(t *testing.T) {
	var m DeploymentManifest
	m.UpdateLastDeployedStack("123456789012", "us-east-1", "a")
	m.UpdateLastDeployedStack("123456789012", "us-east-1", "b")
	m.UpdateLastDeployedStack("123456789012", "us-east-1", "a")

	// "a" is removed from its old position and reinserted at index 0.
	assert.Equal(t, []string{"a", "b"}, m.LastDeployedTo("123456789012", "us-east-1"))
}

func TestUpdateLastDeployedStack_RegionsAreIndependent(t *testing.T) {
	var m DeploymentManifest
	m.UpdateLastDeployedStack("123456789012", "us-east-1", "a")
	m.UpdateLastDeployedStack("123456789012", "eu-west-1", "b")

	require.Len(t, m.LastDeployedStacks, 2)
	assert.Equal(t, []string{"a"}, m.LastDeployedTo("123456789012", "us-east-1"))
	assert.Equal(t, []string{"b"}, m.LastDeployedTo("123456789012", "eu-west-1"))
}

// =============================================================================
// DeleteLastDeployedStack Tests
// =============================================================================

func TestDeleteLastDeployedStack(t *testing.T) {
	var m DeploymentManifest
	m.UpdateLastDeployedStack("123456789012", "us-east-1", "a")
	m.UpdateLastDeployedStack("123456789012", "us-east-1", "b")

	m.DeleteLastDeployedStack("123456789012", "us-east-1", "a")
	assert.Equal(t, []string{"b"}, m.LastDeployedTo("123456789012", "us-east-1"))

	// Removing the last stack drops the whole entry.
	m.DeleteLastDeployedStack("123456789012", "us-east-1", "b")
	assert.Empty(t, m.LastDeployedStacks)
}

func TestDeleteLastDeployedStack_UnknownEntryNoop(t *testing.T) {
	var m DeploymentManifest
	m.UpdateLastDeployedStack("123456789012", "us-east-1", "a")
	m.DeleteLastDeployedStack("999999999999", "us-east-1", "a")
	assert.Len(t, m.LastDeployedStacks, 1)
}

// =============================================================================
// Entry and Serialization Tests
// =============================================================================

func TestAddEntry_Deduplicates(t *testing.T) {
	var m DeploymentManifest
	m.AddEntry("../recipes/custom")
	m.AddEntry("../recipes/custom")
	m.AddEntry("../recipes/other")

	require.Len(t, m.DeploymentManifestEntries, 2)
}

func TestDeploymentManifest_JSONShape(t *testing.T) {
	var m DeploymentManifest
	m.UpdateLastDeployedStack("123456789012", "us-east-1", "orders-prod")
	m.AddEntry("../recipes/custom")

	data, err := json.Marshal(&m)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"lastDeployedStacks": [
			{"awsAccountId": "123456789012", "awsRegion": "us-east-1", "stacks": ["orders-prod"]}
		],
		"deploymentManifestEntries": [
			{"saveCdkDirectoryRelativePath": "../recipes/custom"}
		]
	}`, string(data))
}
