package transcriber

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"whisparr/internal/services"
	"whisparr/internal/subtitles"
)

// Result is the envelope returned by a transcription backend for one file.
type Result struct {
	Segments []subtitles.Segment
	// Language is the detected (or hinted) source language code.
	Language string
	// Text is the full transcript as returned by the backend.
	Text string
}

// Options carries the per-call knobs forwarded to the backend. Zero-valued
// fields are omitted rather than passed as explicit empty values.
type Options struct {
	Language string
	Task     string
}

// Backend is the opaque speech-recognition model.
type Backend interface {
	Transcribe(ctx context.Context, path string, opts Options) (*Result, error)
}

// Config captures the settings the transcriber needs from configuration.
type Config struct {
	ModelSize   string
	Language    string
	Task        string
	Device      string
	ComputeType string
	Binary      string
}

// Transcriber wraps a lazily-created Backend. The backend is created once on
// first use and reused for every subsequent call; it is owned exclusively by
// this Transcriber for its lifetime.
type Transcriber struct {
	cfg     Config
	logger  *slog.Logger
	factory func(Config) (Backend, error)

	loadOnce sync.Once
	backend  Backend
	loadErr  error
}

// Option customizes the transcriber.
type Option func(*Transcriber)

// WithBackendFactory overrides how the backend is created (used for tests).
func WithBackendFactory(factory func(Config) (Backend, error)) Option {
	return func(t *Transcriber) {
		if factory != nil {
			t.factory = factory
		}
	}
}

// New constructs a transcriber. The model itself is not loaded until the
// first Transcribe call.
func New(cfg Config, logger *slog.Logger, opts ...Option) *Transcriber {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Transcriber{
		cfg:     cfg,
		logger:  logger,
		factory: newWhisperBackend,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Transcriber) load() error {
	t.loadOnce.Do(func() {
		t.logger.Info("loading transcription model", "model", t.cfg.ModelSize)
		t.backend, t.loadErr = t.factory(t.cfg)
	})
	return t.loadErr
}

// Transcribe runs the backend against one media file. The path is checked
// before the backend is touched; a missing file never costs a model load.
func (t *Transcriber) Transcribe(ctx context.Context, path string) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, services.Wrap(services.ErrNotFound, "transcriber", "transcribe",
			fmt.Sprintf("input file not found: %s", path), err)
	}
	if err := t.load(); err != nil {
		return nil, services.Wrap(services.ErrBackend, "transcriber", "load model", "", err)
	}

	opts := Options{
		Language: t.cfg.Language,
		Task:     t.cfg.Task,
	}
	if opts.Task == "" {
		opts.Task = "transcribe"
	}

	t.logger.Info("transcribing", "path", path)
	result, err := t.backend.Transcribe(ctx, path, opts)
	if err != nil {
		return nil, services.Wrap(services.ErrBackend, "transcriber", "transcribe", path, err)
	}
	t.logger.Info("transcription complete",
		"language", result.Language,
		"segments", len(result.Segments))
	return result, nil
}

// Segments extracts the ordered segment sequence from a result.
func Segments(result *Result) []subtitles.Segment {
	if result == nil {
		return nil
	}
	return result.Segments
}

// Text extracts the full transcript text, falling back to joining the
// segment texts when the backend did not supply one.
func Text(result *Result) string {
	if result == nil {
		return ""
	}
	if text := strings.TrimSpace(result.Text); text != "" {
		return text
	}
	parts := make([]string, 0, len(result.Segments))
	for _, segment := range result.Segments {
		if trimmed := strings.TrimSpace(segment.Text); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}
