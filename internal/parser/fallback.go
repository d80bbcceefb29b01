package parser

import (
	"strings"

	"cashmate/internal/logging"
	"cashmate/internal/models"
)

// FallbackParser is the deterministic keyword-based parser. It never calls
// out to a network service, so it also serves as the only parser when no
// model backend is configured.
type FallbackParser struct {
	tables *Tables
	logger logging.Logger
}

// NewFallbackParser creates a keyword-based parser over the given tables.
func NewFallbackParser(tables *Tables, logger logging.Logger) *FallbackParser {
	if tables == nil {
		tables = DefaultTables()
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &FallbackParser{tables: tables, logger: logger}
}

// Parse classifies the cleaned input with keyword tables alone. The result
// still needs normalization by the caller. Parsing fails only when no
// amount can be extracted.
func (f *FallbackParser) Parse(input string) (models.ParsedTransaction, error) {
	lower := strings.ToLower(input)

	tx := models.ParsedTransaction{
		Kind:     models.KindExpense,
		Account:  models.DefaultAccount,
		Category: models.CategoryOther,
		Note:     input,
	}

	if f.tables.IsTransfer(lower) {
		tx.Kind = models.KindTransfer
		tx.Category = models.CategoryTransfer
		tx.Account = ""
		tx.SourceAccount, tx.DestinationAccount = f.tables.ResolveTransferAccounts(lower)
	}

	// Income wording wins even when transfer phrasing is present, so
	// "gaji bulan ini 5jt ke bank" records income rather than a transfer.
	if f.tables.IsIncome(lower) {
		tx.Kind = models.KindIncome
		tx.Category = models.CategorySalary
		tx.SourceAccount, tx.DestinationAccount = "", ""
	}

	if tx.Kind == models.KindExpense {
		tx.Category = f.tables.DetectCategory(lower)
	}

	if tx.Kind != models.KindTransfer {
		tx.Account = f.tables.DetectAccount(lower, tx.Category)
	}

	amount, err := ExtractAmount(lower)
	if err != nil {
		f.logger.WithField("input", input).Debug("Keyword parser found no amount")
		return models.ParsedTransaction{}, err
	}
	tx.Amount = amount

	f.logger.WithFields(
		logging.Field{Key: "kind", Value: tx.Kind},
		logging.Field{Key: "amount", Value: tx.Amount.String()},
	).Debug("Keyword parser classified input")

	return tx, nil
}
