/*
Copyright © 2025 Kanyuchi

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/ioapi"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/iocache"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/iodb"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/ioextract"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/ioload"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/iopipeline"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/iotables"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/iotransform"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/config"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/statapi"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/tables"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getPipelineCmd returns the pipeline command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getPipelineCmd() *cobra.Command {
	var (
		tableID    string
		years      []int
		fromYear   int
		toYear     int
		refresh    bool
		skipTotals bool
	)

	pipelineCmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run extract/transform/load for one source table",
		Long: `Pipeline runs the full ETL chain for one registered table:

  1. Fetches the table year by year from its GENESIS service
     (local response cache first, unless --refresh)
  2. Normalizes the wide semicolon export into long fact rows
  3. Validates the batch
  4. Upserts facts into fact_demographics, registering indicators
     and annual time rows on the way

Years default to the table's full availability window. A year that
fails upstream is reported and skipped; the run only fails when no
year produced data.

Examples:
  # full availability window
  regiodb pipeline --table 12411-03-03-4

  # explicit years
  regiodb pipeline -t 13211-02-05-4 --years 2020,2021,2022

  # inclusive range, bypassing the response cache
  regiodb pipeline -t 22411-01i --from 2017 --to 2023 --refresh

  # keep disaggregated detail only
  regiodb pipeline -t 12411-04-02-4 --skip-totals`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runPipeline(
				cmd, tableID, years, fromYear, toYear,
				refresh, skipTotals,
			)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	pipelineCmd.Flags().StringVarP(&tableID, "table", "t", "",
		"source table id (required)")
	pipelineCmd.Flags().IntSliceVarP(&years, "years", "y", []int{},
		"explicit years to load (empty = full window)")
	pipelineCmd.Flags().IntVar(&fromYear, "from", 0,
		"first year of an inclusive range")
	pipelineCmd.Flags().IntVar(&toYear, "to", 0,
		"last year of an inclusive range")
	pipelineCmd.Flags().BoolVarP(&refresh, "refresh", "r", false,
		"bypass the response cache and re-fetch from the service")
	pipelineCmd.Flags().BoolVar(&skipTotals, "skip-totals", false,
		"exclude aggregate (Insgesamt) breakdown rows")

	pipelineCmd.MarkFlagRequired("table")

	return pipelineCmd
}

func runPipeline(
	cmd *cobra.Command,
	tableID string,
	years []int,
	fromYear, toYear int,
	refresh, skipTotals bool,
) error {
	ctx := context.Background()

	if len(years) > 0 && (fromYear != 0 || toYear != 0) {
		gn.Warn("Use either --years or --from/--to, not both.")
		err := fmt.Errorf("invalid flag combination")
		slog.Error("invalid flag combination", "error", err)
		return err
	}
	if fromYear != 0 || toYear != 0 {
		if fromYear == 0 || toYear == 0 || fromYear > toYear {
			gn.Warn("--from and --to must form a valid range.")
			err := fmt.Errorf("invalid year range %d-%d", fromYear, toYear)
			slog.Error("invalid year range", "error", err)
			return err
		}
		for y := fromYear; y <= toYear; y++ {
			years = append(years, y)
		}
	}

	registry, err := iotables.New(cfg).Load()
	if err != nil {
		return err
	}

	op := iodb.NewPgxOperator()
	if err = op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	cache, err := iocache.Open(config.ResponseCachePath(cfg.HomeDir))
	if err != nil {
		return err
	}
	defer cache.Close()

	clients := map[tables.Source]statapi.Client{
		tables.SourceRegional: ioapi.NewRegional(&cfg.API),
		tables.SourceLandes:   ioapi.NewLandes(&cfg.API),
	}

	pipe := iopipeline.New(
		registry,
		ioextract.New(clients, cache, refresh),
		iotransform.New(),
		ioload.New(op, cfg.Database.BatchSize),
		skipTotals,
	)

	summary, err := pipe.Run(ctx, tableID, years)
	if err != nil {
		return err
	}

	gn.Info("\nPipeline run <em>%s</em> finished in %s",
		summary.RunID, gnfmt.TimeString(summary.Duration.Seconds()))
	gn.Info("Extracted %d records, transformed %d rows",
		summary.RecordsExtracted, summary.RowsTransformed)
	gn.Info("Loaded %d, skipped %d, failed %d",
		summary.Stats.Loaded, summary.Stats.Skipped, summary.Stats.Failed)
	if len(summary.YearsFailed) > 0 {
		gn.Warn("Years without data: %v", summary.YearsFailed)
	}

	return nil
}
