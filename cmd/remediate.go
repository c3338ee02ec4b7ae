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

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/iodb"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/ioremedy"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getRemediateCmd returns the remediate command.
func getRemediateCmd() *cobra.Command {
	var confirm bool

	remediateCmd := &cobra.Command{
		Use:   "remediate",
		Short: "Repair the known indicator id collision",
		Long: `Remediate moves employment-by-qualification facts off the
population-age-group indicator ids (6-8) to their own dedicated
indicators (81-83). The two series were historically registered under
the same ids and their facts ended up merged.

Without --confirm the command only reports how many facts each fix
would move. With --confirm all fixes run in one transaction and the
affected ids are re-checked afterwards.

Examples:
  # dry run, report only
  regiodb remediate

  # apply the fixes
  regiodb remediate --confirm`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemediate(cmd, args, confirm)
		},
	}

	remediateCmd.Flags().BoolVar(&confirm, "confirm", false,
		"apply the fixes instead of reporting them")

	return remediateCmd
}

func runRemediate(_ *cobra.Command, _ []string, confirm bool) error {
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	plan, err := ioremedy.Plan(ctx, op, ioremedy.DefaultFixes)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var total int
	for _, p := range plan {
		fmt.Printf("indicator %d -> %d (%s): %d facts\n",
			p.Fix.CollidedID, p.Fix.NewID, p.Fix.NewCode, p.Facts)
		total += p.Facts
	}

	if total == 0 {
		gn.Info("Nothing to remediate.")
		return nil
	}

	if !confirm {
		gn.Info("\nDry run. Rerun with <em>--confirm</em> to move %d facts.",
			total)
		return nil
	}

	if err = ioremedy.Apply(ctx, op, ioremedy.DefaultFixes); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	return nil
}
