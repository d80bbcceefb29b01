// Package bot runs the Telegram front-end.
package bot

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cashmate/cmd/root"
	"cashmate/internal/telegram"
)

// Cmd represents the bot command.
var Cmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	Long: `Run the Telegram bot that records transactions from chat messages.
Requires TELEGRAM_BOT_TOKEN to be set.`,
	Run: botFunc,
}

func botFunc(cmd *cobra.Command, args []string) {
	p, closeOracle, err := root.BuildParser(cmd.Context())
	if err != nil {
		root.Log.WithError(err).Error("Failed to build parser")
		os.Exit(1)
	}
	defer closeOracle()

	store, err := root.OpenLedger()
	if err != nil {
		root.Log.WithError(err).Error("Failed to open ledger")
		os.Exit(1)
	}
	defer store.Close()

	b, err := telegram.New(
		root.Cfg.Telegram.Token,
		time.Duration(root.Cfg.Telegram.PollTimeoutSec)*time.Second,
		p, store, root.Log,
	)
	if err != nil {
		root.Log.WithError(err).Error("Failed to start Telegram bot")
		os.Exit(1)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		root.Log.Info("Shutting down Telegram bot")
		b.Stop()
	}()

	b.Start()
}
