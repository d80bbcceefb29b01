// Package root contains the root command and the shared wiring helpers the
// subcommands use to build the parser and open the ledger.
package root

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"cashmate/internal/config"
	"cashmate/internal/ledger"
	"cashmate/internal/logging"
	"cashmate/internal/parser"
	"cashmate/internal/store"
)

var (
	// Log is the shared logger instance for commands.
	Log = logging.GetLogger()

	// Cfg holds the resolved application configuration.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "cashmate",
		Short: "A chat-style personal finance tracker for Indonesian text input.",
		Long: `cashmate records income, expenses and transfers from natural Indonesian
sentences like "bakso 15k pake cash" or "transfer 200rb dari bca ke gopay".`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to cashmate!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Error("Invalid configuration")
				os.Exit(1)
			}
			Cfg = cfg

			Log = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
			logging.SetLogger(Log)

			if DBPath != "" {
				Cfg.Ledger.Path = DBPath
			}
			if KeywordsFile != "" {
				Cfg.Keywords.File = KeywordsFile
			}
			if NoAI {
				Cfg.AI.Enabled = false
			}
		},
	}

	// Persistent flags shared by all commands.
	DBPath       string
	KeywordsFile string
	NoAI         bool

	// Subcommand flags.
	OutputFile string
	Month      string
	Limit      int
)

// Init initializes the root command and all persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVar(&DBPath, "db", "", "Ledger database file (overrides configuration)")
	Cmd.PersistentFlags().StringVar(&KeywordsFile, "keywords", "", "Keyword override file (overrides configuration)")
	Cmd.PersistentFlags().BoolVar(&NoAI, "no-ai", false, "Disable the model-backed parser and use keywords only")
}

// BuildParser assembles the parsing engine from configuration: keyword
// tables with user overrides, the prompt template and, when enabled and a
// key is present, the Gemini oracle. The returned closer releases the
// oracle client and is safe to call always.
func BuildParser(ctx context.Context) (*parser.Parser, func(), error) {
	tables, err := store.NewKeywordStore(Cfg.Keywords.File, Log).Tables()
	if err != nil {
		return nil, func() {}, err
	}

	prompt := parser.LoadPromptTemplate(Cfg.AI.PromptFile, Log)

	var (
		oracle parser.Oracle
		closer = func() {}
	)
	if Cfg.AI.Enabled && Cfg.AI.APIKey != "" {
		gemini, err := parser.NewGeminiOracle(ctx, Cfg.AI.APIKey,
			Cfg.AI.Model, time.Duration(Cfg.AI.TimeoutSeconds)*time.Second, Log)
		if err != nil {
			Log.WithError(err).Warn("Model backend unavailable, using keyword parser only")
		} else {
			oracle = gemini
			closer = func() { _ = gemini.Close() }
		}
	} else if Cfg.AI.Enabled {
		Log.Debug("GEMINI_API_KEY not set, using keyword parser only")
	}

	return parser.New(oracle, tables, prompt, Log), closer, nil
}

// OpenLedger opens the configured ledger database.
func OpenLedger() (*ledger.Store, error) {
	return ledger.Open(Cfg.Ledger.Path, Log)
}
