package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashmate/internal/logging"
	"cashmate/internal/models"
	"cashmate/internal/parsererror"
)

func TestFallbackParser(t *testing.T) {
	fallback := NewFallbackParser(DefaultTables(), &logging.MockLogger{})

	tests := []struct {
		name     string
		input    string
		amount   string
		expected models.ParsedTransaction
	}{
		{
			name:   "simple expense",
			input:  "bakso 15k pake cash",
			amount: "15000",
			expected: models.ParsedTransaction{
				Kind:     models.KindExpense,
				Account:  "cash",
				Category: models.CategoryFood,
			},
		},
		{
			name:   "income overrides transfer phrasing",
			input:  "gaji bulan ini 5jt ke bank",
			amount: "5000000",
			expected: models.ParsedTransaction{
				Kind:     models.KindIncome,
				Account:  "bank",
				Category: models.CategorySalary,
			},
		},
		{
			name:   "explicit transfer",
			input:  "transfer 200rb dari bca ke gopay",
			amount: "200000",
			expected: models.ParsedTransaction{
				Kind:               models.KindTransfer,
				Category:           models.CategoryTransfer,
				SourceAccount:      "bca",
				DestinationAccount: "gopay",
			},
		},
		{
			name:   "withdrawal",
			input:  "tarik tunai bri 1jt",
			amount: "1000000",
			expected: models.ParsedTransaction{
				Kind:               models.KindTransfer,
				Category:           models.CategoryTransfer,
				SourceAccount:      "bri",
				DestinationAccount: "cash",
			},
		},
		{
			name:   "topup",
			input:  "topup gopay 30k",
			amount: "30000",
			expected: models.ParsedTransaction{
				Kind:               models.KindTransfer,
				Category:           models.CategoryTransfer,
				SourceAccount:      "cash",
				DestinationAccount: "gopay",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := fallback.Parse(tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.expected.Kind, tx.Kind)
			assert.Equal(t, tt.expected.Category, tx.Category)
			assert.Equal(t, tt.expected.Account, tx.Account)
			assert.Equal(t, tt.expected.SourceAccount, tx.SourceAccount)
			assert.Equal(t, tt.expected.DestinationAccount, tx.DestinationAccount)
			assert.Equal(t, tt.amount, tx.Amount.String())
			assert.NotEmpty(t, tx.Note)
		})
	}
}

func TestFallbackParserNoAmount(t *testing.T) {
	fallback := NewFallbackParser(nil, &logging.MockLogger{})

	_, err := fallback.Parse("makan siang enak")
	assert.ErrorIs(t, err, parsererror.ErrNoAmount)
}
