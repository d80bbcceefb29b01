// Package store loads user-provided keyword overrides from a YAML file and
// merges them into the parser's built-in tables.
package store

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"cashmate/internal/logging"
	"cashmate/internal/models"
	"cashmate/internal/parser"
)

// CategoryOverride adds trigger keywords to one expense category.
type CategoryOverride struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// AccountOverride adds token triggers for one account name.
type AccountOverride struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Overrides is the schema of the keywords.yaml file. Every section is
// optional; entries extend the built-in tables rather than replace them.
type Overrides struct {
	Categories []CategoryOverride `yaml:"categories"`
	Income     []string           `yaml:"income"`
	Banks      []string           `yaml:"banks"`
	Accounts   []AccountOverride  `yaml:"accounts"`
}

// KeywordStore lazily loads keyword overrides from a file.
type KeywordStore struct {
	path   string
	logger logging.Logger

	once      sync.Once
	overrides Overrides
	loadErr   error
}

// NewKeywordStore creates a store for the given override file path. A blank
// path yields a store that loads nothing.
func NewKeywordStore(path string, logger logging.Logger) *KeywordStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &KeywordStore{path: path, logger: logger}
}

// Load reads and caches the override file. A missing file is not an error;
// malformed YAML is.
func (s *KeywordStore) Load() (Overrides, error) {
	s.once.Do(func() {
		if s.path == "" {
			return
		}

		data, err := os.ReadFile(s.path)
		if err != nil {
			if os.IsNotExist(err) {
				s.logger.WithField("path", s.path).Debug("No keyword override file, using built-in tables")
				return
			}
			s.loadErr = fmt.Errorf("failed to read keyword overrides: %w", err)
			return
		}

		if err := yaml.Unmarshal(data, &s.overrides); err != nil {
			s.loadErr = fmt.Errorf("failed to parse keyword overrides %s: %w", s.path, err)
			return
		}

		s.logger.WithField("path", s.path).Info("Loaded keyword overrides")
	})
	return s.overrides, s.loadErr
}

// Tables returns the built-in parser tables extended with the overrides.
func (s *KeywordStore) Tables() (*parser.Tables, error) {
	overrides, err := s.Load()
	if err != nil {
		return nil, err
	}

	tables := parser.DefaultTables()

	for _, override := range overrides.Categories {
		category := models.Category(override.Name)
		merged := false
		for i := range tables.Categories {
			if tables.Categories[i].Category == category {
				tables.Categories[i].Triggers = append(tables.Categories[i].Triggers, override.Keywords...)
				merged = true
				break
			}
		}
		if !merged {
			s.logger.WithField("category", override.Name).Warn("Ignoring override for unknown category")
		}
	}

	tables.IncomeTriggers = append(tables.IncomeTriggers, overrides.Income...)
	tables.BankNames = append(tables.BankNames, overrides.Banks...)

	for _, account := range overrides.Accounts {
		tables.AccountWords = append(tables.AccountWords, parser.AccountTriggers{
			Account:  account.Name,
			Triggers: account.Keywords,
		})
		tables.AccountText = append(tables.AccountText, parser.AccountTriggers{
			Account:  account.Name,
			Triggers: account.Keywords,
		})
	}

	return tables, nil
}
