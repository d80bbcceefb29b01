// Package telegram runs the chat front-end: free-form messages are parsed
// into transactions and committed to the ledger, with summary commands for
// balances and monthly reports.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"cashmate/internal/currencyutils"
	"cashmate/internal/ledger"
	"cashmate/internal/logging"
	"cashmate/internal/models"
	"cashmate/internal/parser"
	"cashmate/internal/parsererror"
)

const helpText = `Catat transaksi dengan bahasa sehari-hari, contoh:

  bakso 15k pake cash
  gaji bulan ini 5jt ke bank
  transfer 200rb dari bca ke gopay
  tarik tunai bri 1jt
  topup gopay 30k

Perintah:
  /saldo    lihat saldo semua akun
  /laporan  laporan bulan berjalan`

// Bot wires the parser and the ledger behind a Telegram long-poll loop.
type Bot struct {
	bot    *tele.Bot
	parser *parser.Parser
	store  *ledger.Store
	logger logging.Logger
}

// New creates the bot. The token comes from configuration; pollTimeout is
// the long-poll interval.
func New(token string, pollTimeout time.Duration, p *parser.Parser, store *ledger.Store, logger logging.Logger) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is not set")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: pollTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{bot: b, parser: p, store: store, logger: logger}
	bot.registerHandlers()
	return bot, nil
}

func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", func(c tele.Context) error {
		return c.Send("Halo! Aku CashMate, pencatat keuangan pribadimu.\n\n" + helpText)
	})
	b.bot.Handle("/help", func(c tele.Context) error {
		return c.Send(helpText)
	})
	b.bot.Handle("/input", b.handleInput)
	b.bot.Handle(tele.OnText, b.handleInput)
	b.bot.Handle("/saldo", b.handleBalances)
	b.bot.Handle("/laporan", b.handleReport)
}

// Start begins polling. It blocks until Stop is called.
func (b *Bot) Start() {
	b.logger.Info("Telegram bot started")
	b.bot.Start()
}

// Stop terminates the polling loop.
func (b *Bot) Stop() {
	b.bot.Stop()
}

func (b *Bot) handleInput(c tele.Context) error {
	ctx := context.Background()
	text := c.Text()

	parsed, err := b.parser.Parse(ctx, text)
	if err != nil {
		if errors.Is(err, parsererror.ErrEmptyInput) {
			return c.Send(helpText)
		}
		b.logger.WithError(err).WithField("input", text).Warn("Failed to parse message")
		return c.Send("Maaf, aku tidak paham transaksinya. Coba format sederhana seperti: bakso 15k cash")
	}

	entries, err := b.store.Commit(ctx, parsed)
	if err != nil {
		var insufficient *ledger.InsufficientBalanceError
		if errors.As(err, &insufficient) {
			return c.Send(fmt.Sprintf("Saldo %s tidak cukup: tersedia %s, dibutuhkan %s",
				insufficient.Account,
				currencyutils.FormatRupiah(insufficient.Available),
				currencyutils.FormatRupiah(insufficient.Needed)))
		}
		b.logger.WithError(err).Error("Failed to record transaction")
		return c.Send("Terjadi kesalahan saat menyimpan transaksi, coba lagi ya.")
	}

	return c.Send(confirmationMessage(parsed, entries))
}

func confirmationMessage(parsed models.ParsedTransaction, entries []models.LedgerEntry) string {
	amount := currencyutils.FormatRupiah(parsed.Amount)

	if parsed.IsTransfer() {
		return fmt.Sprintf("✅ Transfer %s dari %s ke %s tercatat.\nCatatan: %s",
			amount, parsed.SourceAccount, parsed.DestinationAccount, parsed.Note)
	}

	label := "Pengeluaran"
	if parsed.Kind == models.KindIncome {
		label = "Pemasukan"
	}
	return fmt.Sprintf("✅ %s %s dari akun %s tercatat.\nKategori: %s\nCatatan: %s",
		label, amount, parsed.Account, parsed.Category, parsed.Note)
}

func (b *Bot) handleBalances(c tele.Context) error {
	accounts, err := b.store.Accounts(context.Background())
	if err != nil {
		b.logger.WithError(err).Error("Failed to list accounts")
		return c.Send("Gagal mengambil saldo, coba lagi ya.")
	}

	var sb strings.Builder
	sb.WriteString("💰 Saldo akun:\n")
	for _, account := range accounts {
		fmt.Fprintf(&sb, "  %s (%s): %s\n", account.Name, account.Kind,
			currencyutils.FormatRupiah(account.Balance))
	}
	return c.Send(sb.String())
}

func (b *Bot) handleReport(c tele.Context) error {
	now := time.Now()
	summary, err := b.store.MonthlySummary(context.Background(), now.Year(), int(now.Month()))
	if err != nil {
		b.logger.WithError(err).Error("Failed to build monthly summary")
		return c.Send("Gagal membuat laporan, coba lagi ya.")
	}
	return c.Send(formatSummary(summary))
}

func formatSummary(summary *models.MonthlySummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Laporan %04d-%02d\n", summary.Year, summary.Month)
	fmt.Fprintf(&sb, "Pemasukan: %s\n", currencyutils.FormatRupiah(summary.TotalIncome))
	fmt.Fprintf(&sb, "Pengeluaran: %s\n", currencyutils.FormatRupiah(summary.TotalExpense))
	fmt.Fprintf(&sb, "Bersih: %s\n", currencyutils.FormatRupiah(summary.Net))
	fmt.Fprintf(&sb, "Transaksi: %d\n", summary.Count)

	if len(summary.Categories) > 0 {
		sb.WriteString("\nPer kategori:\n")
		for _, category := range summary.Categories {
			fmt.Fprintf(&sb, "  %s/%s: %s (%d)\n", category.Kind, category.Category,
				currencyutils.FormatRupiah(category.Total), category.Count)
		}
	}
	return sb.String()
}
