package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/cfrsync/internal/ports/primary"
	"github.com/example/cfrsync/internal/wire"
)

// SummaryCmd returns the summary command
func SummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [titleNumber]",
		Short: "Show grouped correction summaries per title",
		Long: `Display corrections grouped by their most specific hierarchy level
(subtitle, chapter, part, subpart, section, or year). With no argument
every stored title is shown; with a title number only that title.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if len(args) == 1 {
				titleNumber, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("title number must be an integer: %q", args[0])
				}
				summary, err := wire.CorrectionsService().TitleSummary(ctx, titleNumber)
				if err != nil {
					return fmt.Errorf("failed to summarize title %d: %w", titleNumber, err)
				}
				printSummary(summary)
				return nil
			}

			summaries, err := wire.CorrectionsService().TitleSummaries(ctx)
			if err != nil {
				return fmt.Errorf("failed to summarize titles: %w", err)
			}
			if len(summaries) == 0 {
				fmt.Println("No titles stored. Run `cfrsync ingest` first.")
				return nil
			}
			for _, summary := range summaries {
				printSummary(summary)
				fmt.Println()
			}
			return nil
		},
	}
}

func printSummary(summary *primary.TitleSummary) {
	header := fmt.Sprintf("Title %d - %s", summary.ID, summary.Name)
	fmt.Printf("%s (%d correction(s))\n", color.New(color.Bold).Sprint(header), summary.Total)

	for _, group := range summary.Grouped {
		fmt.Printf("  %s (%d)\n", color.CyanString(group.Key), len(group.Entries))
		for _, entry := range group.Entries {
			fmt.Printf("    [%s] %s", entry.Year, entry.FRCitation)
			if entry.Action != "" {
				fmt.Printf(" - %s", entry.Action)
			}
			fmt.Println()
		}
	}
}
