package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashmate/internal/logging"
	"cashmate/internal/models"
	"cashmate/internal/parsererror"
)

// stubOracle returns a canned response or error.
type stubOracle struct {
	response string
	err      error
	calls    int
}

func (s *stubOracle) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.response, s.err
}

func newTestParser(oracle Oracle) *Parser {
	return New(oracle, DefaultTables(), NewPromptTemplate("parse: {input}"), &logging.MockLogger{})
}

func amount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestParseEmptyInput(t *testing.T) {
	p := newTestParser(nil)

	for _, input := range []string{"", "   ", "/input  "} {
		_, err := p.Parse(context.Background(), input)
		assert.ErrorIs(t, err, parsererror.ErrEmptyInput)
	}
}

func TestParseCommandPrefixStripped(t *testing.T) {
	p := newTestParser(nil)

	tx, err := p.Parse(context.Background(), "/input bakso 15k pake cash")
	require.NoError(t, err)
	assert.Equal(t, models.KindExpense, tx.Kind)
	assert.Equal(t, "15000", tx.Amount.String())
	assert.Equal(t, "cash", tx.Account)
	assert.Equal(t, models.CategoryFood, tx.Category)
}

func TestParseOracleResult(t *testing.T) {
	oracle := &stubOracle{response: `{"tipe": "pengeluaran", "nominal": 20000, "akun": "gopay", "kategori": "makanan", "catatan": "nasi goreng"}`}
	p := newTestParser(oracle)

	tx, err := p.Parse(context.Background(), "nasi goreng 20rb pakai gopay")
	require.NoError(t, err)
	assert.Equal(t, 1, oracle.calls)
	assert.Equal(t, models.KindExpense, tx.Kind)
	assert.Equal(t, "20000", tx.Amount.String())
	assert.Equal(t, "gopay", tx.Account)
	assert.Equal(t, models.CategoryFood, tx.Category)
	assert.Equal(t, "nasi goreng", tx.Note)
}

func TestParseOracleFencedResponse(t *testing.T) {
	oracle := &stubOracle{response: "```json\n{\"tipe\": \"pemasukan\", \"nominal\": 5000000, \"akun\": \"bank\", \"kategori\": \"gaji\", \"catatan\": \"gaji\"}\n```"}
	p := newTestParser(oracle)

	tx, err := p.Parse(context.Background(), "terima 5jt masuk bank buat gajian")
	require.NoError(t, err)
	assert.Equal(t, models.KindIncome, tx.Kind)
	assert.Equal(t, "5000000", tx.Amount.String())
	assert.Equal(t, "bank", tx.Account)
}

func TestParseFallsBackOnOracleError(t *testing.T) {
	oracle := &stubOracle{err: errors.New("service unavailable")}
	p := newTestParser(oracle)

	tx, err := p.Parse(context.Background(), "bakso 15k pake cash")
	require.NoError(t, err)
	assert.Equal(t, models.KindExpense, tx.Kind)
	assert.Equal(t, "15000", tx.Amount.String())
}

func TestParseFallsBackOnMalformedJSON(t *testing.T) {
	oracle := &stubOracle{response: "maaf, aku tidak mengerti"}
	p := newTestParser(oracle)

	tx, err := p.Parse(context.Background(), "kopi 20rb")
	require.NoError(t, err)
	assert.Equal(t, models.KindExpense, tx.Kind)
	assert.Equal(t, "20000", tx.Amount.String())
	assert.Equal(t, models.CategoryFood, tx.Category)
}

func TestParseFallsBackOnMissingFields(t *testing.T) {
	// Transfer without akun_tujuan must be rejected by the strict decoder.
	oracle := &stubOracle{response: `{"tipe": "transfer", "nominal": 200000, "akun_asal": "bca", "catatan": "transfer"}`}
	p := newTestParser(oracle)

	tx, err := p.Parse(context.Background(), "transfer 200rb dari bca ke gopay")
	require.NoError(t, err)
	assert.Equal(t, models.KindTransfer, tx.Kind)
	assert.Equal(t, "bca", tx.SourceAccount)
	assert.Equal(t, "gopay", tx.DestinationAccount)
}

func TestParseFallsBackOnMissingCategory(t *testing.T) {
	// A regular transaction without kategori is a hard failure on the
	// model path; the keyword parser then classifies the category itself.
	oracle := &stubOracle{response: `{"tipe": "pengeluaran", "nominal": 15000, "akun": "cash", "catatan": "bakso"}`}
	p := newTestParser(oracle)

	tx, err := p.Parse(context.Background(), "bakso 15k")
	require.NoError(t, err)
	assert.Equal(t, models.KindExpense, tx.Kind)
	assert.Equal(t, models.CategoryFood, tx.Category)
	assert.Equal(t, "15000", tx.Amount.String())
}

func TestParseFallsBackOnMissingNote(t *testing.T) {
	oracle := &stubOracle{response: `{"tipe": "pengeluaran", "nominal": 20000, "akun": "cash", "kategori": "makanan"}`}
	p := newTestParser(oracle)

	tx, err := p.Parse(context.Background(), "kopi 20rb")
	require.NoError(t, err)
	assert.Equal(t, models.KindExpense, tx.Kind)
	assert.Equal(t, "kopi 20rb", tx.Note)
}

func TestParseTransferCrossCheck(t *testing.T) {
	// The oracle misfiles an obvious withdrawal as an expense; the keyword
	// result must win.
	oracle := &stubOracle{response: `{"tipe": "pengeluaran", "nominal": 1000000, "akun": "bri", "kategori": "lainnya", "catatan": "tarik tunai"}`}
	p := newTestParser(oracle)

	tx, err := p.Parse(context.Background(), "Tarik tunai BRI 1jt")
	require.NoError(t, err)
	assert.Equal(t, models.KindTransfer, tx.Kind)
	assert.Equal(t, "bri", tx.SourceAccount)
	assert.Equal(t, "cash", tx.DestinationAccount)
	assert.Equal(t, models.CategoryTransfer, tx.Category)
}

func TestParseCrossCheckSubstitutesFallbackTransfer(t *testing.T) {
	// "isi bensin" carries top-up wording and the keyword parser reads it
	// as a transfer, so the cross-check substitutes its result.
	oracle := &stubOracle{response: `{"tipe": "pengeluaran", "nominal": 50000, "akun": "cash", "kategori": "transportasi", "catatan": "isi bensin"}`}
	p := newTestParser(oracle)

	tx, err := p.Parse(context.Background(), "isi bensin 50rb")
	require.NoError(t, err)
	assert.Equal(t, models.KindTransfer, tx.Kind)
}

func TestParseCrossCheckKeepsOracleWhenFallbackDisagrees(t *testing.T) {
	// Transfer wording is present, but income wording makes the keyword
	// parser classify income, so the oracle's non-transfer result stands.
	oracle := &stubOracle{response: `{"tipe": "pemasukan", "nominal": 5000000, "akun": "bank", "kategori": "gaji", "catatan": "gaji"}`}
	p := newTestParser(oracle)

	tx, err := p.Parse(context.Background(), "dapat transfer gaji 5jt ke bank")
	require.NoError(t, err)
	assert.Equal(t, models.KindIncome, tx.Kind)
	assert.Equal(t, "bank", tx.Account)
}

func TestParseBothPathsFail(t *testing.T) {
	oracle := &stubOracle{err: errors.New("service unavailable")}
	p := newTestParser(oracle)

	_, err := p.Parse(context.Background(), "makan siang enak")
	var parseErr *parsererror.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "makan siang enak", parseErr.Input)
	assert.Contains(t, err.Error(), "makan siang enak")
}

func TestParseIdempotent(t *testing.T) {
	oracle := &stubOracle{response: `{"tipe": "pengeluaran", "nominal": 15000, "akun": "cash", "kategori": "makanan", "catatan": "bakso"}`}
	p := newTestParser(oracle)

	first, err := p.Parse(context.Background(), "bakso 15k")
	require.NoError(t, err)
	second, err := p.Parse(context.Background(), "bakso 15k")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalize(t *testing.T) {
	p := newTestParser(nil)

	tests := []struct {
		name     string
		input    models.ParsedTransaction
		expected models.ParsedTransaction
		wantErr  bool
	}{
		{
			name: "unknown kind defaults to expense",
			input: models.ParsedTransaction{
				Kind:   "Pembelian",
				Amount: amount(t, "1000"),
			},
			expected: models.ParsedTransaction{
				Kind:     models.KindExpense,
				Amount:   amount(t, "1000"),
				Account:  "cash",
				Category: models.CategoryOther,
				Note:     models.DefaultNote,
			},
		},
		{
			name: "unrecognized category becomes catch-all",
			input: models.ParsedTransaction{
				Kind:     models.KindExpense,
				Amount:   amount(t, "5000"),
				Account:  " Gopay ",
				Category: "jajanan",
				Note:     "cilok",
			},
			expected: models.ParsedTransaction{
				Kind:     models.KindExpense,
				Amount:   amount(t, "5000"),
				Account:  "gopay",
				Category: models.CategoryOther,
				Note:     "cilok",
			},
		},
		{
			name: "transfer blanks default to cash",
			input: models.ParsedTransaction{
				Kind:   models.KindTransfer,
				Amount: amount(t, "20000"),
			},
			expected: models.ParsedTransaction{
				Kind:               models.KindTransfer,
				Amount:             amount(t, "20000"),
				Category:           models.CategoryTransfer,
				SourceAccount:      "cash",
				DestinationAccount: "cash",
				Note:               models.DefaultNote,
			},
		},
		{
			name: "non-positive amount is a hard failure",
			input: models.ParsedTransaction{
				Kind: models.KindExpense,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := p.Normalize(tt.input)
			if tt.wantErr {
				var validationErr *parsererror.ValidationError
				require.ErrorAs(t, err, &validationErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tx)
		})
	}
}
