package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashmate/internal/logging"
	"cashmate/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "ledger.db"), &logging.MockLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func income(amount int64, account string) models.ParsedTransaction {
	return models.ParsedTransaction{
		Kind:     models.KindIncome,
		Amount:   decimal.NewFromInt(amount),
		Account:  account,
		Category: models.CategorySalary,
		Note:     "gaji",
	}
}

func expense(amount int64, account string, category models.Category) models.ParsedTransaction {
	return models.ParsedTransaction{
		Kind:     models.KindExpense,
		Amount:   decimal.NewFromInt(amount),
		Account:  account,
		Category: category,
		Note:     "jajan",
	}
}

func transfer(amount int64, source, destination string) models.ParsedTransaction {
	return models.ParsedTransaction{
		Kind:               models.KindTransfer,
		Amount:             decimal.NewFromInt(amount),
		SourceAccount:      source,
		DestinationAccount: destination,
		Category:           models.CategoryTransfer,
		Note:               "transfer",
	}
}

func balanceOf(t *testing.T, store *Store, name string) string {
	t.Helper()
	accounts, err := store.Accounts(context.Background())
	require.NoError(t, err)
	for _, account := range accounts {
		if account.Name == name {
			return account.Balance.String()
		}
	}
	t.Fatalf("account %s not found", name)
	return ""
}

func TestOpenSeedsDefaultAccounts(t *testing.T) {
	store := openTestStore(t)

	accounts, err := store.Accounts(context.Background())
	require.NoError(t, err)

	names := make(map[string]models.AccountKind)
	for _, account := range accounts {
		names[account.Name] = account.Kind
	}
	assert.Equal(t, models.AccountKindCash, names["cash"])
	assert.Equal(t, models.AccountKindBank, names["bca"])
	assert.Equal(t, models.AccountKindEWallet, names["gopay"])
}

func TestCommitIncomeAndExpense(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Commit(ctx, income(50000, "cash"))
	require.NoError(t, err)

	entries, err := store.Commit(ctx, expense(15000, "cash", models.CategoryFood))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "15000", entries[0].Amount.String())
	assert.NotZero(t, entries[0].ID)

	assert.Equal(t, "35000", balanceOf(t, store, "cash"))

	recent, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, models.KindExpense, recent[0].Kind)
	assert.Equal(t, models.KindIncome, recent[1].Kind)
}

func TestCommitInsufficientBalance(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Commit(context.Background(), expense(10000, "cash", models.CategoryOther))
	var insufficient *InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "cash", insufficient.Account)
	assert.Equal(t, "0", insufficient.Available.String())
	assert.Equal(t, "10000", insufficient.Needed.String())

	// The failed commit must not leave a ledger entry behind.
	entries, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCommitTransfer(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Commit(ctx, income(100000, "bca"))
	require.NoError(t, err)

	entries, err := store.Commit(ctx, transfer(40000, "bca", "gopay"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "-40000", entries[0].Amount.String())
	assert.Equal(t, "bca", entries[0].Account)
	assert.Equal(t, "40000", entries[1].Amount.String())
	assert.Equal(t, "gopay", entries[1].Account)

	assert.Equal(t, "60000", balanceOf(t, store, "bca"))
	assert.Equal(t, "40000", balanceOf(t, store, "gopay"))
}

func TestCommitTransferInsufficientSource(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Commit(context.Background(), transfer(5000, "bca", "gopay"))
	var insufficient *InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "bca", insufficient.Account)

	// Rolled back: the destination must not have been credited.
	assert.Equal(t, "0", balanceOf(t, store, "gopay"))
}

func TestCommitCreatesAccountOnFirstUse(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Commit(context.Background(), income(5000, "jenius"))
	require.NoError(t, err)

	accounts, err := store.Accounts(context.Background())
	require.NoError(t, err)
	for _, account := range accounts {
		if account.Name == "jenius" {
			assert.Equal(t, models.AccountKindBank, account.Kind)
			assert.Equal(t, "5000", account.Balance.String())
			return
		}
	}
	t.Fatal("jenius account was not created")
}

func TestMonthlySummary(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Commit(ctx, income(100000, "cash"))
	require.NoError(t, err)
	_, err = store.Commit(ctx, expense(30000, "cash", models.CategoryFood))
	require.NoError(t, err)
	_, err = store.Commit(ctx, transfer(20000, "cash", "gopay"))
	require.NoError(t, err)

	now := entriesMonth(t, store)
	summary, err := store.MonthlySummary(ctx, now[0], now[1])
	require.NoError(t, err)

	assert.Equal(t, "100000", summary.TotalIncome.String())
	assert.Equal(t, "30000", summary.TotalExpense.String())
	assert.Equal(t, "70000", summary.Net.String())
	// A transfer is stored as two rows.
	assert.Equal(t, 4, summary.Count)
	assert.NotEmpty(t, summary.Categories)
	assert.NotEmpty(t, summary.Balances)
}

func entriesMonth(t *testing.T, store *Store) [2]int {
	t.Helper()
	entries, err := store.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	return [2]int{entries[0].CreatedAt.Year(), int(entries[0].CreatedAt.Month())}
}
