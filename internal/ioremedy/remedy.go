// Package ioremedy repairs indicator id collisions in the warehouse.
//
// Historically the employment-by-qualification series was registered
// under indicator ids 6-8, the same ids the population-by-age-group
// series already owned. Facts from both series ended up joined to one
// indicator row. The two populations are distinguishable by their
// notes annotation: qualification facts carry a "qualification:" code,
// age-group facts an "age:" code.
//
// Remediation registers dedicated indicators for the qualification
// series and moves its facts over, all in one transaction. The unique
// constraint on indicator_code and the registry-wide duplicate-id
// validation in pkg/tables prevent the collision from recurring.
package ioremedy

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/db"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/jackc/pgx/v5"
)

// Fix describes one collided indicator id and the indicator its
// misattributed facts move to.
type Fix struct {
	// CollidedID is the indicator id both series were loaded under.
	CollidedID int

	// NotesPrefix identifies the misattributed facts among the rows on
	// CollidedID, e.g. "qualification:".
	NotesPrefix string

	// NewID seeds first registration of the replacement indicator.
	// Registration is get-or-create by NewCode, same as regular loads.
	NewID int

	NewCode       string
	NewName       string
	Category      string
	SourceTableID string
	Unit          string
}

// DefaultFixes is the known collision set: employment-by-qualification
// facts loaded under the population-age-group ids 6-8.
var DefaultFixes = []Fix{
	{
		CollidedID:    6,
		NotesPrefix:   "qualification:",
		NewID:         81,
		NewCode:       "employees_qualification_total",
		NewName:       "Beschäftigte nach Berufsabschluss insgesamt",
		Category:      "employment",
		SourceTableID: "13111-09-01-4",
		Unit:          "Anzahl",
	},
	{
		CollidedID:    7,
		NotesPrefix:   "qualification:",
		NewID:         82,
		NewCode:       "employees_qualification_vocational",
		NewName:       "Beschäftigte mit anerkanntem Berufsabschluss",
		Category:      "employment",
		SourceTableID: "13111-09-01-4",
		Unit:          "Anzahl",
	},
	{
		CollidedID:    8,
		NotesPrefix:   "qualification:",
		NewID:         83,
		NewCode:       "employees_qualification_academic",
		NewName:       "Beschäftigte mit akademischem Berufsabschluss",
		Category:      "employment",
		SourceTableID: "13111-09-01-4",
		Unit:          "Anzahl",
	},
}

// PlanEntry reports how many facts one fix would move.
type PlanEntry struct {
	Fix   Fix
	Facts int
}

// Plan counts the misattributed facts per fix without changing
// anything.
func Plan(ctx context.Context, op db.Operator, fixes []Fix) ([]PlanEntry, error) {
	pool := op.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	res := make([]PlanEntry, 0, len(fixes))
	for _, f := range fixes {
		var n int
		err := pool.QueryRow(ctx,
			`SELECT count(*) FROM fact_demographics
			 WHERE indicator_id = $1 AND notes LIKE $2`,
			f.CollidedID, f.NotesPrefix+"%").Scan(&n)
		if err != nil {
			return nil, LookupError(f.CollidedID, err)
		}
		res = append(res, PlanEntry{Fix: f, Facts: n})
	}
	return res, nil
}

// Apply moves the misattributed facts of every fix to their new
// indicators. All fixes run in one transaction: a partially remediated
// warehouse is worse than an unremediated one.
func Apply(ctx context.Context, op db.Operator, fixes []Fix) error {
	pool := op.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return TransactionError(err)
	}
	defer tx.Rollback(ctx)

	var moved int64
	for _, f := range fixes {
		newID, err := ensureIndicator(ctx, tx, f)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			`UPDATE fact_demographics
			 SET indicator_id = $1
			 WHERE indicator_id = $2 AND notes LIKE $3`,
			newID, f.CollidedID, f.NotesPrefix+"%")
		if err != nil {
			return RemapError(f.CollidedID, newID, err)
		}

		slog.Info("Remapped collided facts",
			"from_indicator", f.CollidedID,
			"to_indicator", newID,
			"indicator_code", f.NewCode,
			"facts", tag.RowsAffected(),
		)
		moved += tag.RowsAffected()
	}

	if err = tx.Commit(ctx); err != nil {
		return TransactionError(err)
	}

	gn.Info("Moved <em>%s</em> facts to dedicated indicators.",
		humanize.Comma(moved))

	return verify(ctx, op, fixes)
}

// ensureIndicator registers the replacement indicator get-or-create by
// code and returns its warehouse id.
func ensureIndicator(ctx context.Context, tx pgx.Tx, f Fix) (int, error) {
	var dbID int
	err := tx.QueryRow(ctx,
		`SELECT indicator_id FROM dim_indicator
		 WHERE indicator_code = $1`,
		f.NewCode).Scan(&dbID)

	if errors.Is(err, pgx.ErrNoRows) {
		_, err = tx.Exec(ctx,
			`INSERT INTO dim_indicator
				(indicator_id, indicator_code, indicator_name,
				 indicator_category, source_table_id,
				 unit_of_measure, update_frequency)
			 VALUES ($1, $2, $3, $4, $5, $6, 'annual')
			 ON CONFLICT (indicator_code) DO NOTHING`,
			f.NewID, f.NewCode, f.NewName,
			f.Category, f.SourceTableID, f.Unit,
		)
		if err != nil {
			return 0, LookupError(f.NewID, err)
		}
		err = tx.QueryRow(ctx,
			`SELECT indicator_id FROM dim_indicator
			 WHERE indicator_code = $1`,
			f.NewCode).Scan(&dbID)
	}
	if err != nil {
		return 0, LookupError(f.NewID, err)
	}

	if dbID != f.NewID {
		slog.Warn("Replacement indicator id diverges from fix plan",
			"indicator_code", f.NewCode,
			"plan_id", f.NewID,
			"warehouse_id", dbID,
		)
	}
	return dbID, nil
}

// verify re-checks the collided ids after commit. Leftover facts mean
// the notes prefix missed some rows and the fix list needs widening.
func verify(ctx context.Context, op db.Operator, fixes []Fix) error {
	pool := op.Pool()

	for _, f := range fixes {
		var leftover int
		err := pool.QueryRow(ctx,
			`SELECT count(*) FROM fact_demographics
			 WHERE indicator_id = $1 AND notes LIKE $2`,
			f.CollidedID, f.NotesPrefix+"%").Scan(&leftover)
		if err != nil {
			return LookupError(f.CollidedID, err)
		}
		if leftover > 0 {
			slog.Warn("Collided indicator still has misattributed facts",
				"indicator_id", f.CollidedID,
				"notes_prefix", f.NotesPrefix,
				"facts", leftover,
			)
			gn.Warn("Indicator <em>%d</em> still has %d facts matching %q.",
				f.CollidedID, leftover, f.NotesPrefix)
		}
	}
	return nil
}
