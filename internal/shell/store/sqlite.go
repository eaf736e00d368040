package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// =============================================================================
// SQLite Store
// =============================================================================

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) the SQLite database at dsn and runs any
// pending migrations. Use ":memory:" for an ephemeral database.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, NewStoreError("open", "", "failed to open database", errors.Join(ErrConnectionFailed, err))
	}
	// A single connection keeps ":memory:" databases on one backing store
	// and serializes writers, which sqlite wants anyway.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStoreError("open", "", "failed to ping database", errors.Join(ErrConnectionFailed, err))
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) runMigrations() error {
	driver, err := sqlite3.WithInstance(s.db.DB, &sqlite3.Config{})
	if err != nil {
		return NewStoreError("migrate", "", "failed to create migration driver", errors.Join(ErrMigrationFailed, err))
	}
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return NewStoreError("migrate", "", "failed to load migrations", errors.Join(ErrMigrationFailed, err))
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return NewStoreError("migrate", "", "failed to create migrator", errors.Join(ErrMigrationFailed, err))
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return NewStoreError("migrate", "", "failed to apply migrations", errors.Join(ErrMigrationFailed, err))
	}
	return nil
}

// Close releases the underlying database resources.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// Row Mapping
// =============================================================================

type deploymentRow struct {
	ID            int64  `db:"id"`
	ReferenceID   string `db:"reference_id"`
	StackName     string `db:"stack_name"`
	AWSAccountID  string `db:"aws_account_id"`
	AWSRegion     string `db:"aws_region"`
	RecipeID      string `db:"recipe_id"`
	RecipeVersion string `db:"recipe_version"`
	Settings      string `db:"settings"`
	CreatedAt     string `db:"created_at"`
	UpdatedAt     string `db:"updated_at"`
}

func (r *deploymentRow) toRecord() (*DeploymentRecord, error) {
	var settings map[string]any
	if r.Settings != "" {
		if err := json.Unmarshal([]byte(r.Settings), &settings); err != nil {
			return nil, NewStoreError("decode", r.StackName, "failed to decode settings", errors.Join(ErrInvalidData, err))
		}
	}
	createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return nil, NewStoreError("decode", r.StackName, "failed to parse created_at", errors.Join(ErrInvalidData, err))
	}
	updatedAt, err := time.Parse(time.RFC3339, r.UpdatedAt)
	if err != nil {
		return nil, NewStoreError("decode", r.StackName, "failed to parse updated_at", errors.Join(ErrInvalidData, err))
	}
	return &DeploymentRecord{
		ID:            r.ID,
		ReferenceID:   r.ReferenceID,
		StackName:     r.StackName,
		AWSAccountID:  r.AWSAccountID,
		AWSRegion:     r.AWSRegion,
		RecipeID:      r.RecipeID,
		RecipeVersion: r.RecipeVersion,
		Settings:      settings,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

// =============================================================================
// Store Operations
// =============================================================================

// RecordDeployment saves a deployment. A stack deployed again to the same
// account and region replaces its previous record, keeping the original
// creation time.
func (s *SQLiteStore) RecordDeployment(ctx context.Context, record *DeploymentRecord) error {
	if record.ReferenceID == "" {
		record.ReferenceID = NewReferenceID()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	settings := "{}"
	if record.Settings != nil {
		data, err := json.Marshal(record.Settings)
		if err != nil {
			return NewStoreError("RecordDeployment", record.StackName, "failed to encode settings", errors.Join(ErrInvalidData, err))
		}
		settings = string(data)
	}

	query := `
		INSERT INTO deployments (
			reference_id, stack_name, aws_account_id, aws_region,
			recipe_id, recipe_version, settings, created_at, updated_at
		) VALUES (
			:reference_id, :stack_name, :aws_account_id, :aws_region,
			:recipe_id, :recipe_version, :settings, :created_at, :updated_at
		)
		ON CONFLICT (stack_name, aws_account_id, aws_region) DO UPDATE SET
			recipe_id = excluded.recipe_id,
			recipe_version = excluded.recipe_version,
			settings = excluded.settings,
			updated_at = excluded.updated_at`

	_, err := s.db.NamedExecContext(ctx, query, map[string]any{
		"reference_id":   record.ReferenceID,
		"stack_name":     record.StackName,
		"aws_account_id": record.AWSAccountID,
		"aws_region":     record.AWSRegion,
		"recipe_id":      record.RecipeID,
		"recipe_version": record.RecipeVersion,
		"settings":       settings,
		"created_at":     record.CreatedAt.Format(time.RFC3339),
		"updated_at":     record.UpdatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return NewStoreError("RecordDeployment", record.StackName, "failed to save deployment", err)
	}
	return nil
}

// GetLatestDeployment returns the most recent deployment of a stack in an
// account and region.
func (s *SQLiteStore) GetLatestDeployment(ctx context.Context, stackName, accountID, region string) (*DeploymentRecord, error) {
	var row deploymentRow
	query := `
		SELECT id, reference_id, stack_name, aws_account_id, aws_region,
		       recipe_id, recipe_version, settings, created_at, updated_at
		FROM deployments
		WHERE stack_name = ? AND aws_account_id = ? AND aws_region = ?`

	err := s.db.GetContext(ctx, &row, query, stackName, accountID, region)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewStoreError("GetLatestDeployment", stackName, "no deployment recorded", ErrNotFound)
	}
	if err != nil {
		return nil, NewStoreError("GetLatestDeployment", stackName, "failed to load deployment", err)
	}
	return row.toRecord()
}

// ListDeployments returns deployment records ordered most recent first.
func (s *SQLiteStore) ListDeployments(ctx context.Context, opts ListOptions) ([]*DeploymentRecord, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}

	var rows []deploymentRow
	query := `
		SELECT id, reference_id, stack_name, aws_account_id, aws_region,
		       recipe_id, recipe_version, settings, created_at, updated_at
		FROM deployments
		ORDER BY updated_at DESC, id DESC
		LIMIT ? OFFSET ?`

	if err := s.db.SelectContext(ctx, &rows, query, limit, opts.Offset); err != nil {
		return nil, NewStoreError("ListDeployments", "", "failed to list deployments", err)
	}

	records := make([]*DeploymentRecord, 0, len(rows))
	for i := range rows {
		record, err := rows[i].toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// DeleteDeployment removes the record for a stack in an account and region.
func (s *SQLiteStore) DeleteDeployment(ctx context.Context, stackName, accountID, region string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM deployments WHERE stack_name = ? AND aws_account_id = ? AND aws_region = ?`,
		stackName, accountID, region)
	if err != nil {
		return NewStoreError("DeleteDeployment", stackName, "failed to delete deployment", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return NewStoreError("DeleteDeployment", stackName, "failed to confirm delete", err)
	}
	if affected == 0 {
		return NewStoreError("DeleteDeployment", stackName, "no deployment recorded", ErrNotFound)
	}
	return nil
}

var _ Store = (*SQLiteStore)(nil)
