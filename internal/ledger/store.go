// Package ledger persists parsed transactions and account balances in a
// local SQLite database.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"cashmate/internal/logging"
	"cashmate/internal/models"
	"cashmate/internal/parser"
)

// InsufficientBalanceError is returned when committing a transaction would
// drive an account balance below zero.
type InsufficientBalanceError struct {
	Account   string
	Available decimal.Decimal
	Needed    decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance on %s: have %s, need %s",
		e.Account, e.Available.String(), e.Needed.String())
}

// defaultAccounts are seeded into an empty database so first-time input
// works without any setup.
var defaultAccounts = []struct {
	name string
	kind models.AccountKind
}{
	{"cash", models.AccountKindCash},
	{"bca", models.AccountKindBank},
	{"bni", models.AccountKindBank},
	{"dana", models.AccountKindEWallet},
	{"gopay", models.AccountKindEWallet},
}

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL UNIQUE,
	kind       TEXT NOT NULL,
	balance    TEXT NOT NULL DEFAULT '0',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS entries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	kind       TEXT NOT NULL,
	amount     TEXT NOT NULL,
	account    TEXT NOT NULL,
	category   TEXT NOT NULL,
	note       TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(created_at);
`

// Store is the SQLite-backed ledger. It is safe for concurrent use; SQLite
// serializes writers internally.
type Store struct {
	db     *sql.DB
	logger logging.Logger
}

// Open opens (creating if necessary) the ledger database at path, applies
// the schema and seeds the default accounts.
func Open(path string, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply ledger schema: %w", err)
	}

	store := &Store{db: db, logger: logger}
	if err := store.seedDefaults(); err != nil {
		db.Close()
		return nil, err
	}

	logger.WithField("path", path).Debug("Opened ledger database")
	return store, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) seedDefaults() error {
	now := time.Now().UTC().Format(time.RFC3339)
	for _, account := range defaultAccounts {
		_, err := s.db.Exec(
			`INSERT OR IGNORE INTO accounts (name, kind, balance, created_at, updated_at)
			 VALUES (?, ?, '0', ?, ?)`,
			account.name, string(account.kind), now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to seed account %s: %w", account.name, err)
		}
	}
	return nil
}

// Commit records a parsed transaction: one row for income and expense, two
// rows (signed debit and credit) for a transfer, all inside a single
// database transaction together with the balance updates. An expense or a
// transfer debit that exceeds the source balance aborts with
// InsufficientBalanceError.
func (s *Store) Commit(ctx context.Context, parsed models.ParsedTransaction) ([]models.LedgerEntry, error) {
	dbtx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin ledger transaction: %w", err)
	}
	defer dbtx.Rollback()

	now := time.Now().UTC()
	var entries []models.LedgerEntry

	if parsed.IsTransfer() {
		if err := s.adjustBalance(ctx, dbtx, parsed.SourceAccount, parsed.Amount.Neg(), now); err != nil {
			return nil, err
		}
		if err := s.adjustBalance(ctx, dbtx, parsed.DestinationAccount, parsed.Amount, now); err != nil {
			return nil, err
		}

		debit, err := s.insertEntry(ctx, dbtx, models.LedgerEntry{
			Kind:      parsed.Kind,
			Amount:    parsed.Amount.Neg(),
			Account:   parsed.SourceAccount,
			Category:  models.CategoryTransfer,
			Note:      parsed.Note,
			CreatedAt: now,
		})
		if err != nil {
			return nil, err
		}
		credit, err := s.insertEntry(ctx, dbtx, models.LedgerEntry{
			Kind:      parsed.Kind,
			Amount:    parsed.Amount,
			Account:   parsed.DestinationAccount,
			Category:  models.CategoryTransfer,
			Note:      parsed.Note,
			CreatedAt: now,
		})
		if err != nil {
			return nil, err
		}
		entries = []models.LedgerEntry{debit, credit}
	} else {
		delta := parsed.Amount
		if parsed.Kind == models.KindExpense {
			delta = delta.Neg()
		}
		if err := s.adjustBalance(ctx, dbtx, parsed.Account, delta, now); err != nil {
			return nil, err
		}

		entry, err := s.insertEntry(ctx, dbtx, models.LedgerEntry{
			Kind:      parsed.Kind,
			Amount:    parsed.Amount,
			Account:   parsed.Account,
			Category:  parsed.Category,
			Note:      parsed.Note,
			CreatedAt: now,
		})
		if err != nil {
			return nil, err
		}
		entries = []models.LedgerEntry{entry}
	}

	if err := dbtx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ledger transaction: %w", err)
	}

	s.logger.WithFields(
		logging.Field{Key: "kind", Value: parsed.Kind},
		logging.Field{Key: "amount", Value: parsed.Amount.String()},
	).Info("Recorded transaction")

	return entries, nil
}

// adjustBalance applies a signed delta to an account, creating the account
// on first use with a kind inferred from its name.
func (s *Store) adjustBalance(ctx context.Context, dbtx *sql.Tx, name string, delta decimal.Decimal, now time.Time) error {
	name = strings.ToLower(strings.TrimSpace(name))

	balance, err := s.accountBalance(ctx, dbtx, name, now)
	if err != nil {
		return err
	}

	updated := balance.Add(delta)
	if updated.IsNegative() {
		return &InsufficientBalanceError{
			Account:   name,
			Available: balance,
			Needed:    delta.Neg(),
		}
	}

	_, err = dbtx.ExecContext(ctx,
		`UPDATE accounts SET balance = ?, updated_at = ? WHERE name = ?`,
		updated.String(), now.Format(time.RFC3339), name,
	)
	if err != nil {
		return fmt.Errorf("failed to update balance of %s: %w", name, err)
	}
	return nil
}

func (s *Store) accountBalance(ctx context.Context, dbtx *sql.Tx, name string, now time.Time) (decimal.Decimal, error) {
	var raw string
	err := dbtx.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE name = ?`, name).Scan(&raw)
	if err == sql.ErrNoRows {
		kind := parser.DetectAccountKind(name)
		_, err := dbtx.ExecContext(ctx,
			`INSERT INTO accounts (name, kind, balance, created_at, updated_at) VALUES (?, ?, '0', ?, ?)`,
			name, string(kind), now.Format(time.RFC3339), now.Format(time.RFC3339),
		)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to create account %s: %w", name, err)
		}
		s.logger.WithFields(
			logging.Field{Key: "account", Value: name},
			logging.Field{Key: "kind", Value: kind},
		).Info("Created account on first use")
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read account %s: %w", name, err)
	}

	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("corrupt balance for account %s: %w", name, err)
	}
	return balance, nil
}

func (s *Store) insertEntry(ctx context.Context, dbtx *sql.Tx, entry models.LedgerEntry) (models.LedgerEntry, error) {
	res, err := dbtx.ExecContext(ctx,
		`INSERT INTO entries (kind, amount, account, category, note, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		string(entry.Kind), entry.Amount.String(), entry.Account,
		string(entry.Category), entry.Note, entry.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	entry.ID, err = res.LastInsertId()
	if err != nil {
		return models.LedgerEntry{}, fmt.Errorf("failed to read entry id: %w", err)
	}
	return entry, nil
}

// Accounts returns all accounts ordered by name.
func (s *Store) Accounts(ctx context.Context) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, kind, balance, created_at, updated_at FROM accounts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var (
			account              models.Account
			balance, created, up string
			kind                 string
		)
		if err := rows.Scan(&account.ID, &account.Name, &kind, &balance, &created, &up); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		account.Kind = models.AccountKind(kind)
		if account.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("corrupt balance for account %s: %w", account.Name, err)
		}
		account.CreatedAt, _ = time.Parse(time.RFC3339, created)
		account.UpdatedAt, _ = time.Parse(time.RFC3339, up)
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Recent returns the latest ledger entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]models.LedgerEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, amount, account, category, note, created_at
		 FROM entries ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// EntriesInMonth returns all entries recorded in the given month, oldest first.
func (s *Store) EntriesInMonth(ctx context.Context, year, month int) ([]models.LedgerEntry, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, amount, account, category, note, created_at
		 FROM entries WHERE created_at >= ? AND created_at < ? ORDER BY id`,
		start.Format(time.RFC3339), end.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to query month entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	for rows.Next() {
		var (
			entry                           models.LedgerEntry
			kind, amount, category, created string
		)
		if err := rows.Scan(&entry.ID, &kind, &amount, &entry.Account, &category, &entry.Note, &created); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entry.Kind = models.Kind(kind)
		entry.Category = models.Category(category)
		var err error
		if entry.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("corrupt amount on entry %d: %w", entry.ID, err)
		}
		entry.CreatedAt, _ = time.Parse(time.RFC3339, created)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// MonthlySummary aggregates one month of entries into income and expense
// totals, a per-category breakdown and the current account balances.
// Transfer rows move money between accounts and are excluded from the
// income and expense totals.
func (s *Store) MonthlySummary(ctx context.Context, year, month int) (*models.MonthlySummary, error) {
	entries, err := s.EntriesInMonth(ctx, year, month)
	if err != nil {
		return nil, err
	}

	summary := &models.MonthlySummary{
		Year:         year,
		Month:        month,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Count:        len(entries),
	}

	type key struct {
		kind     models.Kind
		category models.Category
	}
	totals := make(map[key]*models.CategoryTotal)
	var order []key

	for _, entry := range entries {
		switch entry.Kind {
		case models.KindIncome:
			summary.TotalIncome = summary.TotalIncome.Add(entry.Amount)
		case models.KindExpense:
			summary.TotalExpense = summary.TotalExpense.Add(entry.Amount)
		}

		k := key{entry.Kind, entry.Category}
		total, ok := totals[k]
		if !ok {
			total = &models.CategoryTotal{
				Kind:     entry.Kind,
				Category: entry.Category,
				Total:    decimal.Zero,
			}
			totals[k] = total
			order = append(order, k)
		}
		total.Total = total.Total.Add(entry.Amount.Abs())
		total.Count++
	}

	summary.Net = summary.TotalIncome.Sub(summary.TotalExpense)
	for _, k := range order {
		summary.Categories = append(summary.Categories, *totals[k])
	}

	if summary.Balances, err = s.Accounts(ctx); err != nil {
		return nil, err
	}

	return summary, nil
}
