package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a user account record with its running balance.
// Names are unique case-insensitively; the kind is inferred from the name
// when the account is created implicitly by a transaction.
type Account struct {
	ID        int64           `json:"id"`
	Name      string          `json:"nama"`
	Kind      AccountKind     `json:"tipe"`
	Balance   decimal.Decimal `json:"saldo"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LedgerEntry is a persisted transaction row, one per account movement.
// A transfer produces two entries (debit on the source, credit on the
// destination) sharing the same note.
type LedgerEntry struct {
	ID        int64           `json:"id" csv:"id"`
	Kind      Kind            `json:"tipe" csv:"tipe"`
	Amount    decimal.Decimal `json:"nominal" csv:"nominal"`
	Account   string          `json:"akun" csv:"akun"`
	Category  Category        `json:"kategori" csv:"kategori"`
	Note      string          `json:"catatan" csv:"catatan"`
	CreatedAt time.Time       `json:"waktu" csv:"waktu"`
}

// CategoryTotal aggregates one category inside a monthly summary.
type CategoryTotal struct {
	Kind     Kind            `json:"tipe"`
	Category Category        `json:"kategori"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"jumlah_transaksi"`
}

// MonthlySummary is the per-month report shape returned by the ledger.
type MonthlySummary struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	TotalIncome  decimal.Decimal `json:"total_pemasukan"`
	TotalExpense decimal.Decimal `json:"total_pengeluaran"`
	Net          decimal.Decimal `json:"saldo_bersih"`
	Count        int             `json:"total_transaksi"`
	Categories   []CategoryTotal `json:"kategori_summary"`
	Balances     []Account       `json:"saldo_akun"`
}
