package models

import (
	"github.com/shopspring/decimal"
)

// ParsedTransaction is the output of the parsing engine: a tagged variant
// over a regular (income/expense) shape and a transfer shape.
//
// For Kind == KindTransfer, SourceAccount and DestinationAccount are set and
// Category is always CategoryTransfer. For the regular kinds, Account and
// Category are set and the transfer fields are empty.
//
// A ParsedTransaction is built fresh per input message and is not mutated
// after validation.
type ParsedTransaction struct {
	Kind               Kind            `json:"tipe"`
	Amount             decimal.Decimal `json:"nominal"`
	Account            string          `json:"akun,omitempty"`
	Category           Category        `json:"kategori,omitempty"`
	SourceAccount      string          `json:"akun_asal,omitempty"`
	DestinationAccount string          `json:"akun_tujuan,omitempty"`
	Note               string          `json:"catatan"`
}

// IsTransfer reports whether the transaction moves funds between two accounts.
func (t ParsedTransaction) IsTransfer() bool {
	return t.Kind == KindTransfer
}
