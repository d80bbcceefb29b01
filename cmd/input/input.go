// Package input handles recording a transaction from the command line.
package input

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cashmate/cmd/root"
	"cashmate/internal/currencyutils"
	"cashmate/internal/ledger"
	"cashmate/internal/models"
)

// Cmd represents the input command.
var Cmd = &cobra.Command{
	Use:   "input <text>...",
	Short: "Parse a transaction sentence and record it in the ledger",
	Args:  cobra.MinimumNArgs(1),
	Run:   inputFunc,
}

func inputFunc(cmd *cobra.Command, args []string) {
	input := strings.Join(args, " ")

	p, closeOracle, err := root.BuildParser(cmd.Context())
	if err != nil {
		root.Log.WithError(err).Error("Failed to build parser")
		os.Exit(1)
	}
	defer closeOracle()

	tx, err := p.Parse(cmd.Context(), input)
	if err != nil {
		root.Log.WithError(err).Error("Failed to parse input")
		os.Exit(1)
	}

	store, err := root.OpenLedger()
	if err != nil {
		root.Log.WithError(err).Error("Failed to open ledger")
		os.Exit(1)
	}
	defer store.Close()

	if _, err := store.Commit(cmd.Context(), tx); err != nil {
		var insufficient *ledger.InsufficientBalanceError
		if errors.As(err, &insufficient) {
			root.Log.Error(fmt.Sprintf("Insufficient balance on %s: have %s, need %s",
				insufficient.Account,
				currencyutils.FormatRupiah(insufficient.Available),
				currencyutils.FormatRupiah(insufficient.Needed)))
			os.Exit(1)
		}
		root.Log.WithError(err).Error("Failed to record transaction")
		os.Exit(1)
	}

	amount := currencyutils.FormatRupiah(tx.Amount)
	if tx.IsTransfer() {
		fmt.Printf("Recorded transfer %s from %s to %s (%s)\n",
			amount, tx.SourceAccount, tx.DestinationAccount, tx.Note)
		return
	}

	label := "expense"
	if tx.Kind == models.KindIncome {
		label = "income"
	}
	fmt.Printf("Recorded %s %s on %s [%s] (%s)\n", label, amount, tx.Account, tx.Category, tx.Note)
}
