// Package ioseed populates the geography dimension from the embedded
// NRW region hierarchy.
package ioseed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/db"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"gopkg.in/yaml.v3"
)

//go:embed regions.yaml
var regionsYAML []byte

// Region is one row of the embedded hierarchy.
type Region struct {
	Code   string `yaml:"code"`
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Parent string `yaml:"parent"`
	Ruhr   bool   `yaml:"ruhr"`
}

type regionsFile struct {
	Regions []Region `yaml:"regions"`
}

var regionTypes = map[string]struct{}{
	"country":        {},
	"state":          {},
	"admin_district": {},
	"urban_district": {},
	"rural_district": {},
}

// Regions parses and validates the embedded hierarchy. It is exported
// so other packages can resolve codes without a database round trip.
func Regions() ([]Region, error) {
	var rf regionsFile
	err := yaml.Unmarshal(regionsYAML, &rf)
	if err != nil {
		return nil, ParseError(err)
	}

	seen := make(map[string]Region)
	for _, r := range rf.Regions {
		if r.Code == "" || r.Name == "" {
			return nil, HierarchyError(r.Code, "code and name are required")
		}
		if _, ok := regionTypes[r.Type]; !ok {
			return nil, HierarchyError(r.Code,
				fmt.Sprintf("unknown region type %q", r.Type))
		}
		if _, ok := seen[r.Code]; ok {
			return nil, HierarchyError(r.Code, "duplicate region code")
		}
		if r.Parent != "" {
			parent, ok := seen[r.Parent]
			if !ok {
				return nil, HierarchyError(r.Code,
					fmt.Sprintf("parent %q not declared before child", r.Parent))
			}
			// AGS codes nest by prefix below the country level.
			if parent.Type != "country" && !strings.HasPrefix(r.Code, parent.Code) {
				return nil, HierarchyError(r.Code,
					fmt.Sprintf("code does not extend parent code %q", parent.Code))
			}
		}
		seen[r.Code] = r
	}
	return rf.Regions, nil
}

const upsertRegionSQL = `
INSERT INTO dim_geography
  (region_code, region_name, region_type, parent_region_code, ruhr_area)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (region_code) DO UPDATE SET
  region_name        = EXCLUDED.region_name,
  region_type        = EXCLUDED.region_type,
  parent_region_code = EXCLUDED.parent_region_code,
  ruhr_area          = EXCLUDED.ruhr_area`

// Seed upserts every embedded region into dim_geography. The operation
// is idempotent: rerunning it refreshes names and flags but never
// duplicates rows or resets is_active.
func Seed(ctx context.Context, op db.Operator) error {
	regions, err := Regions()
	if err != nil {
		return err
	}

	pool := op.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	var count int
	for _, r := range regions {
		var parent *string
		if r.Parent != "" {
			parent = &r.Parent
		}
		_, err = pool.Exec(ctx, upsertRegionSQL, r.Code, r.Name, r.Type, parent, r.Ruhr)
		if err != nil {
			return UpsertError(r.Code, err)
		}
		count++
	}

	slog.Info("Seeded geography dimension", "regions", count)
	gn.Info("Upserted <em>%s</em> regions into dim_geography.",
		humanize.Comma(int64(count)))
	return nil
}
