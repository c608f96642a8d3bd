/*
Copyright © 2026 The legisdb Authors

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
	"os"
	"os/signal"
	"syscall"

	"github.com/civicdata/legisdb/internal/iofs"
	"github.com/civicdata/legisdb/internal/iopopulate"
	legisdb "github.com/civicdata/legisdb/pkg"
	"github.com/civicdata/legisdb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getPopulateCmd returns the populate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getPopulateCmd() *cobra.Command {
	populateCmd := &cobra.Command{
		Use:   "populate",
		Short: "Load legislators and terms from federal and state sources",
		Long: `Load current legislators into the database.

This command:
  1. Connects to the database using configuration settings
  2. Downloads the federal roster (or reads it from a local file)
  3. Discovers state files under <state-dir>/<state>/legislature/*.yml
  4. Loads every record in one transaction:
     - resolves it to a stored or a new legislator
     - finds or creates party, jurisdiction, chamber and district
     - stores the current term
  5. Reports progress and a summary

A failed or interrupted run leaves the database unchanged. Running
populate twice with the same data changes nothing.

Examples:
  # Load both sources with configured locations
  legisdb populate

  # Use a downloaded roster and a local checkout of state data
  legisdb populate --federal legislators-current.json --state-dir people/data

  # State legislators only, export metrics for node-exporter
  legisdb populate --skip-federal --metrics-file /var/lib/node_exporter/legisdb.prom`,
		Aliases: []string{"load"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(flagOptions(cmd,
				federalFlag, stateDirFlag,
				skipFederalFlag, skipStateFlag,
				metricsFileFlag,
			))

			ctx, stop := signal.NotifyContext(
				context.Background(), os.Interrupt, syscall.SIGTERM,
			)
			defer stop()

			_, err := runPopulate(ctx, cfg)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	populateCmd.Flags().String(
		"federal", "",
		"URL or path of the federal roster (legislators-current.json)",
	)
	populateCmd.Flags().String(
		"state-dir", "",
		"root directory of state files (<state>/legislature/*.yml)",
	)
	populateCmd.Flags().Bool(
		"skip-federal", false, "do not load the federal roster",
	)
	populateCmd.Flags().Bool(
		"skip-state", false, "do not load state files",
	)
	populateCmd.Flags().StringP(
		"metrics-file", "m", "",
		"write run counters in Prometheus text format to this file",
	)

	return populateCmd
}

func runPopulate(ctx context.Context, c *config.Config) (*legisdb.Summary, error) {
	if c.Populate.MetricsFile != "" {
		if err := iofs.EnsureParentDir(c.Populate.MetricsFile); err != nil {
			return nil, err
		}
	}

	op, err := connect(ctx, &c.Database)
	if err != nil {
		return nil, err
	}
	defer op.Close()

	srcs, err := iopopulate.Sources(ctx, c)
	if err != nil {
		return nil, err
	}

	return iopopulate.New(c, op).Populate(ctx, srcs...)
}
