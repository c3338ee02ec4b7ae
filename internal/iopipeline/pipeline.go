// Package iopipeline orchestrates one table's extract, transform,
// validate and load stages. The stages are composed as a pipz sequence so
// failures carry the failing stage in their error path and the run stops
// at the first structural problem.
package iopipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/etl"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/tables"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/zoobz-io/pipz"
)

// runState is the value threaded through the pipeline stages.
type runState struct {
	table      *tables.TableConfig
	years      []int
	skipTotals bool

	result *etl.ExtractionResult
	rows   []etl.FactRow
	stats  etl.LoadStats
}

// pipeline implements etl.Pipeline.
type pipeline struct {
	registry    *tables.Registry
	extractor   etl.Extractor
	transformer etl.Transformer
	loader      etl.Loader
	skipTotals  bool
}

// New creates a Pipeline over the given stage implementations.
func New(
	registry *tables.Registry,
	extractor etl.Extractor,
	transformer etl.Transformer,
	loader etl.Loader,
	skipTotals bool,
) etl.Pipeline {
	return &pipeline{
		registry:    registry,
		extractor:   extractor,
		transformer: transformer,
		loader:      loader,
		skipTotals:  skipTotals,
	}
}

// Run executes the full pipeline for one table. Partial year failures do
// not fail the run as long as at least one year produced data; callers
// that require completeness can inspect YearsFailed on the summary.
func (p *pipeline) Run(
	ctx context.Context,
	tableID string,
	years []int,
) (*etl.RunSummary, error) {
	table, ok := p.registry.Find(tableID)
	if !ok {
		return nil, UnknownTableError(tableID)
	}

	runID := uuid.New().String()
	start := time.Now()

	slog.Info("Pipeline run starting",
		"run_id", runID,
		"table", table.ID,
		"name", table.Name,
	)

	// One retry on extraction: transient service blips are common and
	// already-fetched years come back from the cache on the second pass.
	extract := pipz.NewRetry[*runState](
		pipz.NewIdentity("extract-retry", ""),
		pipz.Apply(pipz.NewIdentity("extract", ""), p.extract),
		2,
	)

	seq := pipz.NewSequence[*runState](
		pipz.NewIdentity("table-etl", ""),
		extract,
		pipz.Apply(pipz.NewIdentity("transform", ""), p.transform),
		pipz.Apply(pipz.NewIdentity("validate", ""), p.validate),
		pipz.Apply(pipz.NewIdentity("load", ""), p.load),
	)

	state := &runState{
		table:      table,
		years:      years,
		skipTotals: p.skipTotals,
	}

	state, err := seq.Process(ctx, state)
	if err != nil {
		slog.Error("Pipeline run failed",
			"run_id", runID,
			"table", tableID,
			"error", err,
		)
		return nil, err
	}

	duration := time.Since(start)
	summary := &etl.RunSummary{
		RunID:            runID,
		TableID:          table.ID,
		YearsRequested:   state.years,
		RecordsExtracted: len(state.result.Records),
		RowsTransformed:  len(state.rows),
		YearsSucceeded:   state.result.YearsSucceeded,
		YearsFailed:      state.result.YearsFailed,
		Stats:            state.stats,
		Duration:         duration,
	}

	slog.Info("Pipeline run finished",
		"run_id", runID,
		"table", table.ID,
		"records_extracted", summary.RecordsExtracted,
		"rows_transformed", summary.RowsTransformed,
		"rows_loaded", summary.Stats.Loaded,
		"rows_skipped", summary.Stats.Skipped,
		"rows_failed", summary.Stats.Failed,
		"years_failed", summary.YearsFailed,
		"duration", gnfmt.TimeString(duration.Seconds()),
	)

	return summary, nil
}

func (p *pipeline) extract(
	ctx context.Context, st *runState,
) (*runState, error) {
	res, err := p.extractor.Extract(ctx, st.table, st.years)
	if err != nil {
		return st, err
	}
	st.result = res
	return st, nil
}

func (p *pipeline) transform(
	_ context.Context, st *runState,
) (*runState, error) {
	rows, err := p.transformer.Transform(
		st.table, st.result, st.skipTotals)
	if err != nil {
		return st, err
	}
	st.rows = rows
	return st, nil
}

func (p *pipeline) validate(
	_ context.Context, st *runState,
) (*runState, error) {
	if !p.transformer.Validate(st.table, st.rows) {
		return st, ValidationError(st.table.ID)
	}
	return st, nil
}

func (p *pipeline) load(
	ctx context.Context, st *runState,
) (*runState, error) {
	stats, err := p.loader.Load(ctx, st.table, st.rows)
	if err != nil {
		return st, err
	}
	st.stats = stats
	return st, nil
}
