package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/cfrsync/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show stored row counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := wire.StatusService().Counts(context.Background())
			if err != nil {
				return fmt.Errorf("failed to read store counts: %w", err)
			}

			fmt.Println("cfrsync store")
			fmt.Printf("  Agencies:     %d\n", counts.Agencies)
			fmt.Printf("  Titles:       %d\n", counts.Titles)
			fmt.Printf("  Associations: %d\n", counts.Associations)
			fmt.Printf("  Corrections:  %d\n", counts.Corrections)
			return nil
		},
	}
}
