// Package testsupport provides helpers shared by package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"whisparr/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Processing.OutputDirectory = ""
	cfg.Journal.Path = filepath.Join(base, "journal.db")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithOverwrite enables overwriting existing subtitle files.
func WithOverwrite() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Processing.OverwriteExisting = true
	}
}

// WithFormat sets the subtitle output format.
func WithFormat(format string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Subtitle.Format = format
	}
}

// WithTranslation enables translation with the given provider.
func WithTranslation(provider string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Translation.Enabled = true
		cfg.Translation.Provider = provider
		cfg.Translation.APIKey = "test-key"
	}
}

// WithBatchSize sets the translation batch size.
func WithBatchSize(size int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Translation.BatchSize = size
	}
}
