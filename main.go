package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"cashmate/cmd/accounts"
	"cashmate/cmd/bot"
	"cashmate/cmd/export"
	"cashmate/cmd/input"
	"cashmate/cmd/parse"
	"cashmate/cmd/report"
	"cashmate/cmd/root"
	"cashmate/internal/logging"
)

func init() {
	// Load environment variables before any logging happens, then set the
	// global level so every logger created later inherits it.
	loadEnvSilently()
	logging.SetAllLogLevels(configureLogLevelDirectly())

	root.Init()

	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(input.Cmd)
	root.Cmd.AddCommand(accounts.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(bot.Cmd)
}

// loadEnvSilently loads environment variables without logging anything.
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global log level for all logrus
// instances and returns the configured level.
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logrus.SetLevel(logLevel)
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
