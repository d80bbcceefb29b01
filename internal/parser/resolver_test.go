package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTransferAccounts(t *testing.T) {
	tables := DefaultTables()

	tests := []struct {
		name                string
		input               string
		expectedSource      string
		expectedDestination string
	}{
		{
			name:                "explicit from and to",
			input:               "transfer 200rb dari bca ke gopay",
			expectedSource:      "bca",
			expectedDestination: "gopay",
		},
		{
			name:                "to only with source before connector",
			input:               "transfer bni ke bca 1jt",
			expectedSource:      "bni",
			expectedDestination: "bca",
		},
		{
			name:                "to only with action keyword before connector",
			input:               "kirim ke dana 100rb",
			expectedSource:      "cash",
			expectedDestination: "dana",
		},
		{
			name:                "withdrawal scans for bank as source",
			input:               "tarik tunai bri 1jt",
			expectedSource:      "bri",
			expectedDestination: "cash",
		},
		{
			name:                "topup scans for wallet as destination",
			input:               "topup gopay 30k",
			expectedSource:      "cash",
			expectedDestination: "gopay",
		},
		{
			name:                "topup skips amount tokens",
			input:               "topup 30k gopay",
			expectedSource:      "cash",
			expectedDestination: "gopay",
		},
		{
			name:                "custom account name survives",
			input:               "transfer 50k dari jago ke bca",
			expectedSource:      "jago",
			expectedDestination: "bca",
		},
		{
			name:                "nothing resolvable defaults to cash",
			input:               "pindah 10k",
			expectedSource:      "cash",
			expectedDestination: "cash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, destination := tables.ResolveTransferAccounts(tt.input)
			assert.Equal(t, tt.expectedSource, source)
			assert.Equal(t, tt.expectedDestination, destination)
		})
	}
}
