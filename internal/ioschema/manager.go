// Package ioschema implements SchemaManager for warehouse schema
// management. This is an impure I/O package that wraps GORM AutoMigrate
// functionality.
package ioschema

import (
	"context"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/config"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/db"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/lifecycle"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the initial star schema using GORM AutoMigrate, then
// applies the unique indexes the loader's upserts depend on.
func (m *manager) Create(
	ctx context.Context,
	cfg *config.Config,
) error {
	gormDB, err := m.gormDB()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}

	// Upsert keys cannot be expressed in GORM tags
	// (NULLS NOT DISTINCT, partial index).
	if err := m.applyIndexes(ctx); err != nil {
		return err
	}

	return nil
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate.
func (m *manager) Migrate(
	ctx context.Context,
	cfg *config.Config,
) error {
	gormDB, err := m.gormDB()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB); err != nil {
		return MigrateSchemaError(err)
	}

	if err := m.applyIndexes(ctx); err != nil {
		return err
	}

	return nil
}

func (m *manager) gormDB() (*gorm.DB, error) {
	pool := m.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB, nil
}

func (m *manager) applyIndexes(ctx context.Context) error {
	pool := m.operator.Pool()

	stmts := []string{
		schema.FactUpsertIndexSQL,
		schema.TimeAnnualIndexSQL,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return IndexError(stmt, err)
		}
	}
	return nil
}
