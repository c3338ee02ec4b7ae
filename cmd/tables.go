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
	"fmt"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/iotables"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/tables"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getTablesCmd returns the tables command.
func getTablesCmd() *cobra.Command {
	var tableID string

	tablesCmd := &cobra.Command{
		Use:   "tables",
		Short: "List registered source tables",
		Long: `Tables lists every source table registered in tables.yaml with its
service, availability window and indicator registrations.

Use --table to show the full registration of one table.

Examples:
  regiodb tables
  regiodb tables --table 12411-03-03-4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(cmd, args, tableID)
		},
	}

	tablesCmd.Flags().StringVarP(&tableID, "table", "t", "",
		"show details for one table")

	return tablesCmd
}

func runTables(_ *cobra.Command, _ []string, tableID string) error {
	registry, err := iotables.New(cfg).Load()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if tableID != "" {
		table, ok := registry.Find(tableID)
		if !ok {
			err := fmt.Errorf("unknown table %q", tableID)
			gn.Warn("No table <em>" + tableID + "</em> in the registry.")
			return err
		}
		printTable(table)
		return nil
	}

	fmt.Printf("%-14s %-16s %-10s %s\n",
		"TABLE", "SOURCE", "YEARS", "NAME")
	for i := range registry.Tables {
		t := &registry.Tables[i]
		years := t.AvailableYears()
		window := fmt.Sprintf("%d-%d", years[0], years[len(years)-1])
		fmt.Printf("%-14s %-16s %-10s %s\n",
			t.ID, t.Source, window, t.Name)
	}
	return nil
}

func printTable(t *tables.TableConfig) {
	fmt.Printf("Table:     %s\n", t.ID)
	fmt.Printf("Name:      %s\n", t.Name)
	fmt.Printf("Source:    %s\n", t.Source)
	fmt.Printf("Category:  %s\n", t.Category)
	fmt.Printf("Frequency: %s\n", t.UpdateFrequency)
	fmt.Printf("Years:     %v\n", t.AvailableYears())

	if len(t.Categories) > 0 {
		fmt.Println("Breakdown vocabulary:")
		for raw, def := range t.Categories {
			fmt.Printf("  %-45q %s\n", raw, def.Code)
		}
	}

	fmt.Println("Indicators:")
	for _, m := range t.Metrics {
		fmt.Printf("  %3d  %-35s %s (%s)\n",
			m.IndicatorID, m.Code, m.Name, m.Unit)
	}
}
