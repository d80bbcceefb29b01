// Package export handles exporting ledger entries to CSV.
package export

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"cashmate/cmd/root"
)

// Cmd represents the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export ledger entries to a CSV file",
	Run:   exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.OutputFile, "output", "o", "transactions.csv", "Output CSV file")
	Cmd.Flags().IntVarP(&root.Limit, "limit", "l", 0, "Maximum number of entries to export (0 = all)")
}

func exportFunc(cmd *cobra.Command, args []string) {
	store, err := root.OpenLedger()
	if err != nil {
		root.Log.WithError(err).Error("Failed to open ledger")
		os.Exit(1)
	}
	defer store.Close()

	limit := root.Limit
	if limit <= 0 {
		limit = 1 << 30
	}
	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		root.Log.WithError(err).Error("Failed to read ledger entries")
		os.Exit(1)
	}

	file, err := os.Create(root.OutputFile)
	if err != nil {
		root.Log.WithError(err).Error("Failed to create output file")
		os.Exit(1)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&entries, file); err != nil {
		root.Log.WithError(err).Error("Failed to write CSV")
		os.Exit(1)
	}

	fmt.Printf("Exported %d entries to %s\n", len(entries), root.OutputFile)
}
