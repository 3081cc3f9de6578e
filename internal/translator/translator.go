package translator

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"whisparr/internal/services"
	"whisparr/internal/subtitles"
)

// contextWindowChars caps the rolling translation context. It is a character
// cap, not a token cap: once exceeded, older content is silently dropped from
// the front.
const contextWindowChars = 500

const systemPromptFormat = "You are a professional translator. Translate the following text to %s. " +
	"Preserve the meaning, tone, and style. Only return the translated text, nothing else."

// Config captures the settings the translator needs from configuration.
type Config struct {
	Provider       string
	Model          string
	APIKey         string
	TargetLanguage string
	ContextAware   bool
	BatchSize      int
}

// backend is one provider binding.
type backend interface {
	complete(ctx context.Context, system, prompt string) (string, error)
}

// Translator maps segment text to translated text through an LLM provider.
type Translator struct {
	cfg      Config
	provider Provider
	model    string
	logger   *slog.Logger
	client   *http.Client
	backend  backend
}

// Option customizes the translator.
type Option func(*Translator)

// WithHTTPClient overrides the HTTP client used by the provider binding.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Translator) {
		if client != nil {
			t.client = client
		}
	}
}

// New constructs a translator. The provider name is validated here; an
// unknown provider never survives construction.
func New(cfg Config, logger *slog.Logger, opts ...Option) (*Translator, error) {
	provider, err := ParseProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = provider.DefaultModel()
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		cfg.APIKey = strings.TrimSpace(os.Getenv(provider.EnvKey()))
	}

	t := &Translator{
		cfg:      cfg,
		provider: provider,
		model:    model,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.backend == nil {
		switch provider {
		case ProviderAnthropic:
			t.backend = newAnthropicBackend(cfg.APIKey, model, t.client)
		default:
			t.backend = newOpenAIBackend(cfg.APIKey, model, t.client)
		}
	}
	return t, nil
}

// Provider returns the validated provider.
func (t *Translator) Provider() Provider {
	return t.provider
}

// Model returns the effective model name.
func (t *Translator) Model() string {
	return t.model
}

// TranslateText translates a single string. When the translator is
// context-aware and the supplied context is non-empty, the prompt carries it
// as leading context.
func (t *Translator) TranslateText(ctx context.Context, text, contextText string) (string, error) {
	system := fmt.Sprintf(systemPromptFormat, t.cfg.TargetLanguage)
	prompt := text
	if t.cfg.ContextAware && contextText != "" {
		prompt = fmt.Sprintf("Previous context:\n%s\n\nTranslate this text:\n%s", contextText, text)
	}
	translated, err := t.backend.complete(ctx, system, prompt)
	if err != nil {
		return "", services.Wrap(services.ErrBackend, "translator", t.provider.String(), "", err)
	}
	return translated, nil
}

// TranslateSegments translates segments strictly in input order, threading a
// rolling context window through the sequence. Segment N's translation must
// land before segment N+1's prompt is built; the loop is inherently serial.
// A backend failure aborts the whole sequence.
func (t *Translator) TranslateSegments(ctx context.Context, segments []subtitles.Segment) ([]subtitles.Segment, error) {
	t.logger.Info("translating segments",
		"count", len(segments),
		"target", t.cfg.TargetLanguage,
		"provider", t.provider.String())

	translated := make([]subtitles.Segment, 0, len(segments))
	window := ""
	for _, segment := range segments {
		text := strings.TrimSpace(segment.Text)
		translatedText, err := t.TranslateText(ctx, text, window)
		if err != nil {
			return nil, err
		}
		if t.cfg.ContextAware {
			window = tailChars(window+"\n"+translatedText, contextWindowChars)
		}
		translated = append(translated, segment.Translated(translatedText))
	}
	t.logger.Info("translation complete", "segments", len(translated))
	return translated, nil
}

// TranslateBatch translates segments in consecutive chunks of at most
// batchSize, one request per chunk. Chunks are independent: no context
// window crosses a chunk boundary. If a response comes back with fewer
// blank-line-separated pieces than the chunk has segments, the remainder is
// passed through untranslated rather than failing the batch.
func (t *Translator) TranslateBatch(ctx context.Context, segments []subtitles.Segment, batchSize int) ([]subtitles.Segment, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("translate batch: batch size must be >= 1, got %d", batchSize)
	}
	t.logger.Info("batch translating segments",
		"count", len(segments),
		"batch_size", batchSize)

	translated := make([]subtitles.Segment, 0, len(segments))
	for start := 0; start < len(segments); start += batchSize {
		end := start + batchSize
		if end > len(segments) {
			end = len(segments)
		}
		chunk := segments[start:end]

		blocks := make([]string, 0, len(chunk))
		for j, segment := range chunk {
			blocks = append(blocks, fmt.Sprintf("[%d] %s", j+1, strings.TrimSpace(segment.Text)))
		}
		response, err := t.TranslateText(ctx, strings.Join(blocks, "\n\n"), "")
		if err != nil {
			return nil, err
		}

		pieces := strings.Split(response, "\n\n")
		for j, segment := range chunk {
			if j >= len(pieces) {
				// Shortfall: the model merged or dropped blocks. The
				// remaining segments keep their original text.
				translated = append(translated, segment)
				continue
			}
			piece := pieces[j]
			if tag := fmt.Sprintf("[%d]", j+1); strings.HasPrefix(piece, tag) {
				piece = strings.TrimSpace(piece[len(tag):])
			}
			translated = append(translated, segment.Translated(piece))
		}
		t.logger.Debug("batch complete", "batch", start/batchSize+1, "segments", len(chunk))
	}
	return translated, nil
}

// tailChars returns the trailing max characters of s.
func tailChars(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[len(runes)-max:])
}
