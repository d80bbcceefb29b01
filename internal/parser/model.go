package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"cashmate/internal/logging"
	"cashmate/internal/models"
	"cashmate/internal/parsererror"
)

// wireTransaction mirrors the JSON object the oracle is instructed to
// return. Pointer fields distinguish absent keys from zero values.
type wireTransaction struct {
	Tipe       *string          `json:"tipe"`
	Nominal    *decimal.Decimal `json:"nominal"`
	Akun       *string          `json:"akun"`
	Kategori   *string          `json:"kategori"`
	AkunAsal   *string          `json:"akun_asal"`
	AkunTujuan *string          `json:"akun_tujuan"`
	Catatan    *string          `json:"catatan"`
}

// stripCodeFences removes a leading ```json or ``` marker and a trailing
// ``` marker, which models habitually wrap JSON responses in.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseWithOracle runs the model-backed path: render the prompt, call the
// oracle, strictly decode the response and verify the fields the declared
// type requires. Any failure is wrapped in an OracleError so the caller can
// fall back.
func (p *Parser) parseWithOracle(ctx context.Context, input string) (models.ParsedTransaction, error) {
	raw, err := p.oracle.Generate(ctx, p.prompt.Render(input))
	if err != nil {
		return models.ParsedTransaction{}, &parsererror.OracleError{Stage: "generate", Err: err}
	}

	body := stripCodeFences(raw)
	if body == "" {
		return models.ParsedTransaction{}, &parsererror.OracleError{Stage: "generate", Err: fmt.Errorf("empty response")}
	}

	var wire wireTransaction
	dec := json.NewDecoder(strings.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		p.logger.WithError(err).WithField("response", body).Debug("Model response is not valid JSON")
		return models.ParsedTransaction{}, &parsererror.OracleError{Stage: "decode", Err: err}
	}

	tipe := ""
	if wire.Tipe != nil {
		tipe = strings.ToLower(strings.TrimSpace(*wire.Tipe))
	}

	// The model occasionally files an obvious transfer as an expense. When
	// the input carries transfer phrasing but the model disagrees, trust
	// the keyword parser if it sees a transfer.
	if tipe != string(models.KindTransfer) && p.hasTransferPhrasing(input) {
		if corrected, fbErr := p.fallback.Parse(input); fbErr == nil && corrected.IsTransfer() {
			p.logger.WithFields(
				logging.Field{Key: "model_type", Value: tipe},
				logging.Field{Key: "input", Value: input},
			).Warn("Model missed transfer phrasing, using keyword result")
			return corrected, nil
		}
	}

	if err := requireFields(tipe, &wire); err != nil {
		return models.ParsedTransaction{}, &parsererror.OracleError{Stage: "fields", Err: err}
	}

	tx := models.ParsedTransaction{
		Kind:   models.Kind(tipe),
		Amount: *wire.Nominal,
	}
	if wire.Akun != nil {
		tx.Account = *wire.Akun
	}
	if wire.Kategori != nil {
		tx.Category = models.Category(*wire.Kategori)
	}
	if wire.AkunAsal != nil {
		tx.SourceAccount = *wire.AkunAsal
	}
	if wire.AkunTujuan != nil {
		tx.DestinationAccount = *wire.AkunTujuan
	}
	if wire.Catatan != nil {
		tx.Note = *wire.Catatan
	}

	return tx, nil
}

// hasTransferPhrasing reports whether the input contains transfer,
// withdrawal or top-up wording.
func (p *Parser) hasTransferPhrasing(input string) bool {
	lower := strings.ToLower(input)
	return p.tables.IsTransfer(lower) || p.tables.IsWithdrawal(lower) || p.tables.IsTopUp(lower)
}

// requireFields checks that the oracle produced every field the declared
// transaction type needs.
func requireFields(tipe string, wire *wireTransaction) error {
	if tipe == "" {
		return &parsererror.MissingFieldError{Field: "tipe"}
	}
	if wire.Nominal == nil {
		return &parsererror.MissingFieldError{Field: "nominal"}
	}

	if wire.Catatan == nil || strings.TrimSpace(*wire.Catatan) == "" {
		return &parsererror.MissingFieldError{Field: "catatan"}
	}

	if tipe == string(models.KindTransfer) {
		if wire.AkunAsal == nil || strings.TrimSpace(*wire.AkunAsal) == "" {
			return &parsererror.MissingFieldError{Field: "akun_asal"}
		}
		if wire.AkunTujuan == nil || strings.TrimSpace(*wire.AkunTujuan) == "" {
			return &parsererror.MissingFieldError{Field: "akun_tujuan"}
		}
		return nil
	}

	if wire.Akun == nil || strings.TrimSpace(*wire.Akun) == "" {
		return &parsererror.MissingFieldError{Field: "akun"}
	}
	if wire.Kategori == nil || strings.TrimSpace(*wire.Kategori) == "" {
		return &parsererror.MissingFieldError{Field: "kategori"}
	}
	return nil
}
