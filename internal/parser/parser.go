// Package parser turns free-form Indonesian chat messages into structured
// transactions. The engine is dual-path: a model-backed oracle is tried
// first when configured, and a deterministic keyword parser covers every
// failure of that path. A single validator normalizes the output of both.
package parser

import (
	"context"
	"strings"

	"cashmate/internal/logging"
	"cashmate/internal/models"
	"cashmate/internal/parsererror"
)

// Parser is the parsing engine. Construct it with New; a nil oracle yields
// a keyword-only parser.
type Parser struct {
	oracle   Oracle
	tables   *Tables
	prompt   *PromptTemplate
	fallback *FallbackParser
	logger   logging.Logger
}

// New creates a Parser. Tables, prompt and logger fall back to defaults
// when nil; oracle may stay nil to disable the model-backed path.
func New(oracle Oracle, tables *Tables, prompt *PromptTemplate, logger logging.Logger) *Parser {
	if tables == nil {
		tables = DefaultTables()
	}
	if prompt == nil {
		prompt = NewPromptTemplate(fallbackPromptTemplate)
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Parser{
		oracle:   oracle,
		tables:   tables,
		prompt:   prompt,
		fallback: NewFallbackParser(tables, logger),
		logger:   logger,
	}
}

// CleanInput trims the raw message and strips the chat command prefix.
func CleanInput(raw string) string {
	input := strings.TrimSpace(raw)
	if input == "/input" {
		return ""
	}
	input = strings.TrimPrefix(input, "/input ")
	return strings.TrimSpace(input)
}

// Parse converts one chat message into a normalized transaction. The
// model-backed path runs first when an oracle is configured; on any failure
// there the keyword parser takes over. Only when both paths fail does Parse
// return a ParseError naming the input.
func (p *Parser) Parse(ctx context.Context, raw string) (models.ParsedTransaction, error) {
	input := CleanInput(raw)
	if input == "" {
		return models.ParsedTransaction{}, parsererror.ErrEmptyInput
	}

	var oracleErr error
	if p.oracle != nil {
		tx, err := p.parseWithOracle(ctx, input)
		if err == nil {
			return p.Normalize(tx)
		}
		oracleErr = err
		p.logger.WithError(err).WithField("input", input).Warn("Model-backed parsing failed, using keyword parser")
	}

	tx, fbErr := p.fallback.Parse(input)
	if fbErr == nil {
		return p.Normalize(tx)
	}

	return models.ParsedTransaction{}, &parsererror.ParseError{
		Input:       input,
		OracleErr:   oracleErr,
		FallbackErr: fbErr,
	}
}

// Normalize enforces the output schema on a parsed transaction from either
// path: a known lowercase kind, a positive amount, trimmed account names
// with defaults, a category from the fixed set and a non-empty note.
// A non-positive amount is the one hard failure.
func (p *Parser) Normalize(tx models.ParsedTransaction) (models.ParsedTransaction, error) {
	kind := models.Kind(strings.ToLower(strings.TrimSpace(string(tx.Kind))))
	if !kind.IsValid() {
		kind = models.KindExpense
	}
	tx.Kind = kind

	if !tx.Amount.IsPositive() {
		return models.ParsedTransaction{}, &parsererror.ValidationError{
			Field:  "nominal",
			Reason: "amount must be a positive number",
		}
	}

	if tx.IsTransfer() {
		tx.Account = ""
		tx.Category = models.CategoryTransfer
		tx.SourceAccount = normalizeAccount(tx.SourceAccount)
		tx.DestinationAccount = normalizeAccount(tx.DestinationAccount)
	} else {
		tx.SourceAccount = ""
		tx.DestinationAccount = ""
		tx.Account = normalizeAccount(tx.Account)

		category := models.Category(strings.ToLower(strings.TrimSpace(string(tx.Category))))
		if !category.IsValid() || category == models.CategoryTransfer {
			category = models.CategoryOther
		}
		tx.Category = category
	}

	tx.Note = strings.TrimSpace(tx.Note)
	if tx.Note == "" {
		tx.Note = models.DefaultNote
	}

	return tx, nil
}

func normalizeAccount(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return models.DefaultAccount
	}
	return name
}
