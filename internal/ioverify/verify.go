// Package ioverify runs read-only consistency checks against the
// warehouse. None of the checks mutate data; they exist to catch loader
// or registry defects early, before downstream analysis trips on them.
package ioverify

import (
	"context"
	"log/slog"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/db"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"golang.org/x/sync/errgroup"
)

// Check is one consistency check result.
type Check struct {
	// Name identifies the check, e.g. "negative_values".
	Name string

	// Facts is the number of offending rows; zero means the check
	// passed.
	Facts int

	// Detail explains what a nonzero count means.
	Detail string
}

// Report holds all check results.
type Report struct {
	Checks []Check
}

// Passed reports whether every check came back clean.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if c.Facts > 0 {
			return false
		}
	}
	return true
}

type checkDef struct {
	name   string
	query  string
	detail string
}

// Most indicators count people or kilometers and can never go
// negative; tax balances can, so the tax category is excluded.
var checks = []checkDef{
	{
		name: "negative_values",
		query: `SELECT count(*) FROM fact_demographics f
		        JOIN dim_indicator i USING (indicator_id)
		        WHERE f.value < 0 AND i.indicator_category <> 'tax'`,
		detail: "negative values on count-like indicators",
	},
	{
		name: "orphan_region_facts",
		query: `SELECT count(*) FROM fact_demographics f
		        JOIN dim_geography g USING (geo_id)
		        WHERE NOT g.is_active`,
		detail: "facts joined to deactivated regions",
	},
	{
		name: "age_facts_without_age_group",
		query: `SELECT count(*) FROM fact_demographics f
		        JOIN dim_indicator i USING (indicator_id)
		        WHERE i.indicator_code LIKE 'population_age%'
		          AND f.age_group IS NULL
		          AND f.notes NOT LIKE 'metric:%'`,
		detail: "age-bracket facts missing their age_group breakdown",
	},
	{
		name: "duplicate_annual_time_rows",
		query: `SELECT count(*) FROM (
		          SELECT year FROM dim_time
		          WHERE month IS NULL AND quarter IS NULL
		          GROUP BY year HAVING count(*) > 1
		        ) d`,
		detail: "years with more than one annual time row",
	},
	{
		name: "facts_without_notes",
		query: `SELECT count(*) FROM fact_demographics
		        WHERE notes IS NULL OR notes = ''`,
		detail: "facts with no indicator annotation",
	},
}

// Run executes every check concurrently and prints a summary.
func Run(ctx context.Context, op db.Operator) (*Report, error) {
	pool := op.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	results := make([]Check, len(checks))

	g, ctx := errgroup.WithContext(ctx)
	for i, def := range checks {
		g.Go(func() error {
			var n int
			err := pool.QueryRow(ctx, def.query).Scan(&n)
			if err != nil {
				return QueryError(def.name, err)
			}
			results[i] = Check{Name: def.name, Facts: n, Detail: def.detail}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Checks: results}
	for _, c := range report.Checks {
		if c.Facts == 0 {
			slog.Info("Verification check passed", "check", c.Name)
			continue
		}
		slog.Warn("Verification check failed",
			"check", c.Name, "facts", c.Facts)
		gn.Warn("<em>%s</em>: %s rows, %s.",
			c.Name, humanize.Comma(int64(c.Facts)), c.Detail)
	}
	if report.Passed() {
		gn.Info("All verification checks passed.")
	}
	return report, nil
}
