// Package parse handles the dry-run parsing command.
package parse

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cashmate/cmd/root"
)

// Cmd represents the parse command.
var Cmd = &cobra.Command{
	Use:   "parse <text>...",
	Short: "Parse a transaction sentence without recording it",
	Long: `Parse an Indonesian transaction sentence and print the structured result
as JSON. Nothing is written to the ledger.`,
	Args: cobra.MinimumNArgs(1),
	Run:  parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) {
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

	out, err := json.MarshalIndent(tx, "", "  ")
	if err != nil {
		root.Log.WithError(err).Error("Failed to encode result")
		os.Exit(1)
	}
	fmt.Println(string(out))
}
