package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashmate/internal/parsererror"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "thousands with k suffix", input: "bakso 15k pake cash", expected: "15000"},
		{name: "thousands with rb suffix", input: "kopi 20rb", expected: "20000"},
		{name: "millions with jt suffix", input: "gaji 5jt ke bca", expected: "5000000"},
		{name: "fractional millions", input: "bonus 1.5jt", expected: "1500000"},
		{name: "bare number", input: "parkir 2000", expected: "2000"},
		{name: "space before unit", input: "makan 25 k", expected: "25000"},
		{
			// "5jt" must win over the bare "2" even though 2 comes first.
			name:     "suffix unit beats earlier bare number",
			input:    "2 porsi 5jt",
			expected: "5000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := ExtractAmount(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, amount.String())
		})
	}
}

func TestExtractAmountFailures(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no number at all", input: "makan siang enak"},
		{name: "zero amount", input: "bayar 0 cash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractAmount(tt.input)
			assert.ErrorIs(t, err, parsererror.ErrNoAmount)
		})
	}
}
