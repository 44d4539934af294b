package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/cfrsync/internal/cli"
	"github.com/example/cfrsync/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "cfrsync",
		Short:   "cfrsync - eCFR metadata synchronization and reporting",
		Version: version.String(),
		Long: `cfrsync mirrors agency, title, and correction metadata from the eCFR
registry into a local SQLite store, verifies stored rows against their
checksums, and serves grouped correction summaries.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.IngestCmd())
	rootCmd.AddCommand(cli.VerifyCmd())
	rootCmd.AddCommand(cli.SummaryCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
