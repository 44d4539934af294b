package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/cfrsync/internal/ports/primary"
	"github.com/example/cfrsync/internal/wire"
)

// IngestCmd returns the ingest command
func IngestCmd() *cobra.Command {
	var skipAgencies bool
	var skipCorrections bool

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Synchronize agencies, titles, and corrections from the eCFR",
		Long: `Fetch the agency tree, title list, and corrections collection from the
eCFR registry and insert anything not yet stored. Each stage commits
independently, and re-running completes a partial sync without
duplicating rows.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			report := wire.IngestService().Run(ctx, primary.IngestOptions{
				SkipAgencies:    skipAgencies,
				SkipCorrections: skipCorrections,
			})

			for _, stage := range report.Stages {
				if stage.Err != nil {
					fmt.Printf("%s %-13s %v\n", color.RedString("✗"), stage.Name, stage.Err)
					continue
				}
				fmt.Printf("%s %-13s %d created, %d skipped\n",
					color.GreenString("✓"), stage.Name, stage.Result.Created, stage.Result.Skipped)
			}

			if report.Failed() {
				return fmt.Errorf("ingestion finished with failed stages")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipAgencies, "skip-agencies", false, "Skip the agency stage")
	cmd.Flags().BoolVar(&skipCorrections, "skip-corrections", false, "Skip the corrections stage")
	return cmd
}
