// Package schema provides the star-schema models for the regional
// statistics warehouse: three dimension tables and one fact table.
package schema

import (
	"database/sql"
	"time"
)

// DimGeography is one row of the geography dimension. Region codes follow
// the official municipality key (AGS): a prefix hierarchy where a
// district's code starts with the code of its Regierungsbezirk, which in
// turn starts with the state code.
type DimGeography struct {
	GeoID int `gorm:"column:geo_id;primaryKey;autoIncrement"`

	// RegionCode is the natural key, e.g. "05112" for Duisburg.
	RegionCode string `gorm:"column:region_code;type:varchar(12);uniqueIndex;not null"`

	RegionName string `gorm:"column:region_name;type:varchar(120);not null"`

	// RegionType is one of: country, state, admin_district,
	// urban_district, rural_district, municipality.
	RegionType string `gorm:"column:region_type;type:varchar(20);not null"`

	// ParentRegionCode is the code of the containing region. Empty for
	// the country row.
	ParentRegionCode sql.NullString `gorm:"column:parent_region_code;type:varchar(12);index"`

	// RuhrArea marks membership in the Ruhr regional grouping.
	RuhrArea bool `gorm:"column:ruhr_area;not null;default:false"`

	// IsActive supports soft deactivation; geography rows are never
	// deleted.
	IsActive bool `gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the PostgreSQL table name.
func (DimGeography) TableName() string { return "dim_geography" }

// DimTime is one row of the time dimension. For the annual pipeline the
// natural key is (year, month IS NULL); finer-grained rows carry quarter
// or month.
type DimTime struct {
	TimeID int `gorm:"column:time_id;primaryKey;autoIncrement"`

	Year int `gorm:"column:year;not null;index"`

	// ReferenceDate is the exact stock date when the source reports one,
	// e.g. 31.12. population stock.
	ReferenceDate sql.NullTime `gorm:"column:reference_date"`

	Quarter sql.NullInt16 `gorm:"column:quarter"`
	Month   sql.NullInt16 `gorm:"column:month"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the PostgreSQL table name.
func (DimTime) TableName() string { return "dim_time" }

// DimIndicator is one row of the indicator dimension. The numeric
// IndicatorID is the join key used by all fact rows; IndicatorCode is the
// stable registration key. Once fact rows reference an id it must never be
// reassigned to a different semantic meaning.
type DimIndicator struct {
	IndicatorID int `gorm:"column:indicator_id;primaryKey"`

	// IndicatorCode is unique; registration is get-or-create by code.
	IndicatorCode string `gorm:"column:indicator_code;type:varchar(60);uniqueIndex;not null"`

	IndicatorName string `gorm:"column:indicator_name;type:varchar(200);not null"`

	// IndicatorNameEn is an optional English name.
	IndicatorNameEn sql.NullString `gorm:"column:indicator_name_en;type:varchar(200)"`

	// IndicatorCategory groups indicators, e.g. demographics, employment,
	// health_care, infrastructure, tax.
	IndicatorCategory string `gorm:"column:indicator_category;type:varchar(40);not null"`

	IndicatorSubcategory sql.NullString `gorm:"column:indicator_subcategory;type:varchar(60)"`

	// SourceTableID is the upstream table the indicator is extracted
	// from, e.g. "12411-03-03-4".
	SourceTableID string `gorm:"column:source_table_id;type:varchar(20);not null;index"`

	UnitOfMeasure string `gorm:"column:unit_of_measure;type:varchar(40)"`

	// UpdateFrequency is annual or biennial.
	UpdateFrequency string `gorm:"column:update_frequency;type:varchar(20)"`

	Description sql.NullString `gorm:"column:description;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the PostgreSQL table name.
func (DimIndicator) TableName() string { return "dim_indicator" }

// FactDemographics is the central fact table. The composite natural key is
// (geo_id, time_id, indicator_id, gender, nationality, age_group,
// migration_background); the four demographic columns are nullable and the
// unique index treats NULLs as equal so the upsert key is total. The index
// is created by raw SQL after AutoMigrate, see FactUpsertIndexSQL.
type FactDemographics struct {
	FactID int64 `gorm:"column:fact_id;primaryKey;autoIncrement"`

	GeoID       int `gorm:"column:geo_id;not null;index"`
	TimeID      int `gorm:"column:time_id;not null;index"`
	IndicatorID int `gorm:"column:indicator_id;not null;index"`

	Value float64 `gorm:"column:value;type:numeric(18,3);not null"`

	Gender              sql.NullString `gorm:"column:gender;type:varchar(10)"`
	Nationality         sql.NullString `gorm:"column:nationality;type:varchar(10)"`
	AgeGroup            sql.NullString `gorm:"column:age_group;type:varchar(20)"`
	MigrationBackground sql.NullString `gorm:"column:migration_background;type:varchar(10)"`

	// Notes carries the secondary breakdown as "<code>|<label>", e.g.
	// "care_level:level_3|Pflegegrad 3".
	Notes sql.NullString `gorm:"column:notes;type:text"`

	// DataQualityFlag: V validated, E estimated, P provisional.
	DataQualityFlag string `gorm:"column:data_quality_flag;type:char(1);not null;default:V"`

	ExtractedAt time.Time `gorm:"column:extracted_at;not null"`
	LoadedAt    time.Time `gorm:"column:loaded_at;not null"`

	Geography DimGeography `gorm:"foreignKey:GeoID;references:GeoID"`
	Time      DimTime      `gorm:"foreignKey:TimeID;references:TimeID"`
	Indicator DimIndicator `gorm:"foreignKey:IndicatorID;references:IndicatorID"`
}

// TableName returns the PostgreSQL table name.
func (FactDemographics) TableName() string { return "fact_demographics" }
