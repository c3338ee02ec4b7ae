package schema

import (
	"gorm.io/gorm"
)

// FactUpsertIndexName is the unique index backing the loader's
// ON CONFLICT clause.
const FactUpsertIndexName = "ux_fact_demographics_natural_key"

// FactUpsertIndexSQL creates the unique index over the full composite
// natural key. NULLS NOT DISTINCT makes rows with NULL breakdown columns
// conflict with each other, which is what the upsert requires; GORM's tag
// syntax cannot express this, so it runs as raw SQL after AutoMigrate.
const FactUpsertIndexSQL = `
CREATE UNIQUE INDEX IF NOT EXISTS ux_fact_demographics_natural_key
ON fact_demographics
(geo_id, time_id, indicator_id, gender, nationality,
 age_group, migration_background)
NULLS NOT DISTINCT`

// TimeAnnualIndexSQL enforces at most one annual row per year
// (month IS NULL marks the annual grain).
const TimeAnnualIndexSQL = `
CREATE UNIQUE INDEX IF NOT EXISTS ux_dim_time_annual
ON dim_time (year)
WHERE month IS NULL AND quarter IS NULL`

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&DimGeography{},
		&DimTime{},
		&DimIndicator{},
		&FactDemographics{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
