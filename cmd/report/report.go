// Package report handles the monthly summary command.
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"cashmate/cmd/root"
	"cashmate/internal/currencyutils"
)

// Cmd represents the report command.
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Print a monthly income/expense summary",
	Run:   reportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Month, "month", "m", "", "Month to report in YYYY-MM format (default: current month)")
}

func reportFunc(cmd *cobra.Command, args []string) {
	year, month, err := resolveMonth(root.Month)
	if err != nil {
		root.Log.WithError(err).Error("Invalid month")
		os.Exit(1)
	}

	store, err := root.OpenLedger()
	if err != nil {
		root.Log.WithError(err).Error("Failed to open ledger")
		os.Exit(1)
	}
	defer store.Close()

	summary, err := store.MonthlySummary(cmd.Context(), year, month)
	if err != nil {
		root.Log.WithError(err).Error("Failed to build summary")
		os.Exit(1)
	}

	fmt.Printf("Report %04d-%02d\n", summary.Year, summary.Month)
	fmt.Printf("  Income:   %s\n", currencyutils.FormatRupiah(summary.TotalIncome))
	fmt.Printf("  Expenses: %s\n", currencyutils.FormatRupiah(summary.TotalExpense))
	fmt.Printf("  Net:      %s\n", currencyutils.FormatRupiah(summary.Net))
	fmt.Printf("  Entries:  %d\n", summary.Count)

	if len(summary.Categories) > 0 {
		fmt.Println("By category:")
		for _, category := range summary.Categories {
			fmt.Printf("  %s/%s: %s (%d)\n", category.Kind, category.Category,
				currencyutils.FormatRupiah(category.Total), category.Count)
		}
	}

	fmt.Println("Balances:")
	for _, account := range summary.Balances {
		fmt.Printf("  %s (%s): %s\n", account.Name, account.Kind,
			currencyutils.FormatRupiah(account.Balance))
	}
}

func resolveMonth(value string) (int, int, error) {
	if value == "" {
		now := time.Now()
		return now.Year(), int(now.Month()), nil
	}
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return 0, 0, fmt.Errorf("month must be in YYYY-MM format: %w", err)
	}
	return t.Year(), int(t.Month()), nil
}
