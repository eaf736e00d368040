// Package manifest reads and writes the deployment manifest file that lives
// alongside a project and tracks where the project was last deployed.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/artpar/deploykit/internal/core/manifest"
)

// ManifestFileName is the name of the manifest file written next to the
// project file.
const ManifestFileName = "deployment-manifest.json"

// =============================================================================
// File Handler
// =============================================================================

// FileHandler loads and saves deployment manifests for a project directory.
type FileHandler struct{}

// NewFileHandler creates a FileHandler.
func NewFileHandler() *FileHandler {
	return &FileHandler{}
}

// Path returns the manifest file path for a project directory.
func (h *FileHandler) Path(projectDir string) string {
	return filepath.Join(projectDir, ManifestFileName)
}

// Load reads the manifest for a project directory. A missing file yields an
// empty manifest.
func (h *FileHandler) Load(projectDir string) (*manifest.DeploymentManifest, error) {
	data, err := os.ReadFile(h.Path(projectDir))
	if errors.Is(err, fs.ErrNotExist) {
		return &manifest.DeploymentManifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest.DeploymentManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

// Save writes the manifest for a project directory.
func (h *FileHandler) Save(projectDir string, m *manifest.DeploymentManifest) error {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(h.Path(projectDir), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// UpdateLastDeployedStack records a deployment in the project's manifest,
// creating the manifest file if it does not exist yet.
func (h *FileHandler) UpdateLastDeployedStack(projectDir, accountID, region, stackName string) error {
	m, err := h.Load(projectDir)
	if err != nil {
		return err
	}
	m.UpdateLastDeployedStack(accountID, region, stackName)
	return h.Save(projectDir, m)
}

// DeleteLastDeployedStack removes a stack from the project's manifest. A
// missing manifest file is a no-op.
func (h *FileHandler) DeleteLastDeployedStack(projectDir, accountID, region, stackName string) error {
	if _, err := os.Stat(h.Path(projectDir)); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	m, err := h.Load(projectDir)
	if err != nil {
		return err
	}
	m.DeleteLastDeployedStack(accountID, region, stackName)
	return h.Save(projectDir, m)
}
