// Package accounts handles the account balance listing command.
package accounts

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cashmate/cmd/root"
	"cashmate/internal/currencyutils"
)

// Cmd represents the accounts command.
var Cmd = &cobra.Command{
	Use:   "accounts",
	Short: "List all accounts and their balances",
	Run:   accountsFunc,
}

func accountsFunc(cmd *cobra.Command, args []string) {
	store, err := root.OpenLedger()
	if err != nil {
		root.Log.WithError(err).Error("Failed to open ledger")
		os.Exit(1)
	}
	defer store.Close()

	accounts, err := store.Accounts(cmd.Context())
	if err != nil {
		root.Log.WithError(err).Error("Failed to list accounts")
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT\tKIND\tBALANCE")
	for _, account := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", account.Name, account.Kind,
			currencyutils.FormatRupiah(account.Balance))
	}
	w.Flush()
}
