package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/cfrsync/internal/wire"
)

// VerifyCmd returns the verify command
func VerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Recompute agency checksums and report drift",
		Long: `Recompute the checksum of every stored agency from its current column
values and list the agencies whose stored digest no longer matches.
Drift is reported, not repaired; re-run ingest after fixing the data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			drifted, err := wire.VerifyService().VerifyChecksums(ctx)
			if err != nil {
				return fmt.Errorf("failed to verify checksums: %w", err)
			}

			if len(drifted) == 0 {
				fmt.Printf("%s All agency checksums match\n", color.GreenString("✓"))
				return nil
			}

			fmt.Printf("%s %d agency(ies) drifted:\n\n", color.RedString("✗"), len(drifted))
			for _, d := range drifted {
				fmt.Printf("  %-10s %s (id %d)\n", d.ShortName, d.Name, d.ID)
			}
			return fmt.Errorf("checksum verification found drift")
		},
	}
}
