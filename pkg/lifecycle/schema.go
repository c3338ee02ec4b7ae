// Package lifecycle defines contracts for warehouse lifecycle management.
package lifecycle

import (
	"context"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/config"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and
// migrations. Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the initial star schema using GORM AutoMigrate and
	// applies the raw-SQL unique indexes that back upserts.
	Create(ctx context.Context, cfg *config.Config) error

	// Migrate updates the database schema to the latest version using
	// GORM AutoMigrate. GORM handles schema version tracking automatically.
	Migrate(ctx context.Context, cfg *config.Config) error
}
