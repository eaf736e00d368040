// Package store persists deployment history. The latest record for a stack
// carries the option setting values that get reapplied on redeployment.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Record Types
// =============================================================================

// DeploymentRecord captures one deployment of a stack: which recipe ran,
// where it ran, and the resolved option setting values it ran with.
type DeploymentRecord struct {
	ID            int64          `db:"id"`
	ReferenceID   string         `db:"reference_id"`
	StackName     string         `db:"stack_name"`
	AWSAccountID  string         `db:"aws_account_id"`
	AWSRegion     string         `db:"aws_region"`
	RecipeID      string         `db:"recipe_id"`
	RecipeVersion string         `db:"recipe_version"`
	Settings      map[string]any `db:"-"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// NewReferenceID generates a short prefixed identifier for a deployment
// record.
func NewReferenceID() string {
	return "dep_" + uuid.New().String()[:8]
}

// ListOptions controls pagination for deployment listings.
type ListOptions struct {
	Limit  int
	Offset int
}

// =============================================================================
// Store Interface
// =============================================================================

// Store persists and retrieves deployment records.
type Store interface {
	// RecordDeployment saves a deployment. A stack deployed again to the
	// same account and region replaces its previous record.
	RecordDeployment(ctx context.Context, record *DeploymentRecord) error

	// GetLatestDeployment returns the most recent deployment of a stack in
	// an account and region, or ErrNotFound.
	GetLatestDeployment(ctx context.Context, stackName, accountID, region string) (*DeploymentRecord, error)

	// ListDeployments returns deployment records ordered most recent first.
	ListDeployments(ctx context.Context, opts ListOptions) ([]*DeploymentRecord, error)

	// DeleteDeployment removes the record for a stack in an account and
	// region. Deleting a missing record returns ErrNotFound.
	DeleteDeployment(ctx context.Context, stackName, accountID, region string) error

	// Close releases the underlying database resources.
	Close() error
}
