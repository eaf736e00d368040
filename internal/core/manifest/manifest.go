// Package manifest contains the deployment manifest document and its pure
// update logic. Reading and writing the file itself is the job of an
// external collaborator.
package manifest

// =============================================================================
// Document Types
// =============================================================================

// LastDeployedStack records the stacks deployed to one account/region pair,
// most recent first.
type LastDeployedStack struct {
	AWSAccountID string   `json:"awsAccountId"`
	AWSRegion    string   `json:"awsRegion"`
	Stacks       []string `json:"stacks"`
}

// Entry names the location of a custom recipe project, relative to the
// target project's parent directory.
type Entry struct {
	SaveCdkDirectoryRelativePath string `json:"saveCdkDirectoryRelativePath"`
}

// DeploymentManifest is the document persisted beside a project to remember
// where it was deployed and which custom recipes it carries.
type DeploymentManifest struct {
	LastDeployedStacks        []LastDeployedStack `json:"lastDeployedStacks"`
	DeploymentManifestEntries []Entry             `json:"deploymentManifestEntries"`
}

// =============================================================================
// Update Functions (Pure Mutators)
// =============================================================================

// UpdateLastDeployedStack records a deployment of stackName to the given
// account and region. The stack list stays deduplicated and most-recent-
// first: an already-known stack name is removed from its old position and
// reinserted at index 0.
func (m *DeploymentManifest) UpdateLastDeployedStack(accountID, region, stackName string) {
	for i := range m.LastDeployedStacks {
		entry := &m.LastDeployedStacks[i]
		if entry.AWSAccountID != accountID || entry.AWSRegion != region {
			continue
		}
		entry.Stacks = prependDeduplicated(entry.Stacks, stackName)
		return
	}
	m.LastDeployedStacks = append(m.LastDeployedStacks, LastDeployedStack{
		AWSAccountID: accountID,
		AWSRegion:    region,
		Stacks:       []string{stackName},
	})
}

// DeleteLastDeployedStack removes a stack name from the matching
// account/region entry. An entry left with no stacks is dropped.
func (m *DeploymentManifest) DeleteLastDeployedStack(accountID, region, stackName string) {
	for i := range m.LastDeployedStacks {
		entry := &m.LastDeployedStacks[i]
		if entry.AWSAccountID != accountID || entry.AWSRegion != region {
			continue
		}
		entry.Stacks = remove(entry.Stacks, stackName)
		if len(entry.Stacks) == 0 {
			m.LastDeployedStacks = append(m.LastDeployedStacks[:i], m.LastDeployedStacks[i+1:]...)
		}
		return
	}
}

// LastDeployedTo returns the most recently deployed stack names for an
// account/region pair.
func (m *DeploymentManifest) LastDeployedTo(accountID, region string) []string {
	for _, entry := range m.LastDeployedStacks {
		if entry.AWSAccountID == accountID && entry.AWSRegion == region {
			return entry.Stacks
		}
	}
	return nil
}

// AddEntry records a custom recipe location. Duplicate paths are ignored.
func (m *DeploymentManifest) AddEntry(relativePath string) {
	for _, entry := range m.DeploymentManifestEntries {
		if entry.SaveCdkDirectoryRelativePath == relativePath {
			return
		}
	}
	m.DeploymentManifestEntries = append(m.DeploymentManifestEntries, Entry{
		SaveCdkDirectoryRelativePath: relativePath,
	})
}

func prependDeduplicated(stacks []string, stackName string) []string {
	deduplicated := make([]string, 0, len(stacks)+1)
	deduplicated = append(deduplicated, stackName)
	for _, s := range stacks {
		if s != stackName {
			deduplicated = append(deduplicated, s)
		}
	}
	return deduplicated
}

func remove(stacks []string, stackName string) []string {
	kept := stacks[:0]
	for _, s := range stacks {
		if s != stackName {
			kept = append(kept, s)
		}
	}
	return kept
}
