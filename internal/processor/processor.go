// Package processor composes the pipeline for one file and fans it out over
// directories: transcribe, optionally translate, then serialize subtitles.
package processor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"whisparr/internal/config"
	"whisparr/internal/journal"
	"whisparr/internal/language"
	"whisparr/internal/media"
	"whisparr/internal/services"
	"whisparr/internal/subtitles"
	"whisparr/internal/transcriber"
	"whisparr/internal/translator"
)

// Progress phases reported through the ProgressFunc hook.
const (
	PhaseTranscribing = "transcribing"
	PhaseGenerating   = "generating"
)

// ProgressFunc receives phase boundary notifications (0 and 100 percent per
// phase). It is an observability hook, never a correctness dependency.
type ProgressFunc func(phase string, percent int)

// Transcriber is the slice of the transcription adapter the processor needs.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (*transcriber.Result, error)
}

// Translator is the slice of the translation engine the processor needs.
type Translator interface {
	TranslateSegments(ctx context.Context, segments []subtitles.Segment) ([]subtitles.Segment, error)
	TranslateBatch(ctx context.Context, segments []subtitles.Segment, batchSize int) ([]subtitles.Segment, error)
}

// Processor runs the subtitle pipeline.
type Processor struct {
	cfg      *config.Config
	logger   *slog.Logger
	scribe   Transcriber
	xlate    Translator // nil when translation is disabled
	store    *journal.Store
	progress ProgressFunc
}

// Option customizes the processor.
type Option func(*Processor)

// WithTranscriber overrides the transcription adapter (used for tests).
func WithTranscriber(t Transcriber) Option {
	return func(p *Processor) {
		if t != nil {
			p.scribe = t
		}
	}
}

// WithTranslator overrides the translation engine (used for tests).
func WithTranslator(t Translator) Option {
	return func(p *Processor) {
		if t != nil {
			p.xlate = t
		}
	}
}

// WithJournal records per-file outcomes in the given store.
func WithJournal(store *journal.Store) Option {
	return func(p *Processor) {
		p.store = store
	}
}

// WithProgress installs the progress notification hook.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Processor) {
		p.progress = fn
	}
}

// New constructs a processor from configuration. When translation is enabled
// the provider is validated here, so a bad provider fails before any media
// is touched.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Processor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("processor: config required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &Processor{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(p)
	}

	if p.scribe == nil {
		p.scribe = transcriber.New(transcriber.Config{
			ModelSize:   cfg.Whisper.ModelSize,
			Language:    cfg.Whisper.Language,
			Task:        cfg.Whisper.Task,
			Device:      cfg.Whisper.Device,
			ComputeType: cfg.Whisper.ComputeType,
			Binary:      cfg.Whisper.Binary,
		}, logger)
	}
	if p.xlate == nil && cfg.Translation.Enabled {
		xlate, err := translator.New(translator.Config{
			Provider:       cfg.Translation.Provider,
			Model:          cfg.Translation.Model,
			APIKey:         cfg.Translation.APIKey,
			TargetLanguage: cfg.Translation.TargetLanguage,
			ContextAware:   cfg.Translation.ContextAware,
			BatchSize:      cfg.Translation.BatchSize,
		}, logger)
		if err != nil {
			return nil, err
		}
		p.xlate = xlate
	}
	return p, nil
}

func (p *Processor) notify(phase string, percent int) {
	if p.progress != nil {
		p.progress(phase, percent)
	}
}

func (p *Processor) record(ctx context.Context, entry journal.Entry) {
	if p.store == nil {
		return
	}
	if _, err := p.store.Record(ctx, entry); err != nil {
		p.logger.Warn("journal record failed", "error", err)
	}
}

// ProcessFile transcribes one media file and writes its subtitle file,
// returning the path written. An explicit output path wins; otherwise the
// output sits next to the input with the subtitle format's extension. When
// the output already exists and overwriting is disabled, the existing path
// is returned without touching the transcription backend.
func (p *Processor) ProcessFile(ctx context.Context, input, output, format string) (string, error) {
	if _, err := os.Stat(input); err != nil {
		wrapped := services.Wrap(services.ErrNotFound, "processor", "process file",
			fmt.Sprintf("input file not found: %s", input), err)
		p.record(ctx, journal.Entry{Input: input, Status: services.FailureStatus(wrapped), Detail: wrapped.Error()})
		return "", wrapped
	}

	if output == "" {
		if format == "" {
			format = p.cfg.Subtitle.Format
		}
		output = media.ReplaceExtension(input, format)
	} else if format == "" {
		format = strings.TrimPrefix(filepath.Ext(output), ".")
	}

	if _, err := os.Stat(output); err == nil && !p.cfg.Processing.OverwriteExisting {
		p.logger.Warn("subtitle file already exists, skipping",
			"path", output,
			"hint", "set processing.overwrite_existing to overwrite")
		p.record(ctx, journal.Entry{Input: input, Output: output, Status: journal.StatusSkipped})
		return output, nil
	}

	p.logger.Info("processing file", "input", input, "output", output, "format", format)

	p.notify(PhaseTranscribing, 0)
	result, err := p.scribe.Transcribe(ctx, input)
	if err != nil {
		p.record(ctx, journal.Entry{Input: input, Output: output, Status: services.FailureStatus(err), Detail: err.Error()})
		return "", err
	}
	p.notify(PhaseTranscribing, 100)

	detected := result.Language
	p.logger.Info("detected language", "code", detected, "name", language.DisplayName(detected))

	segments := transcriber.Segments(result)
	if p.xlate != nil {
		segments, err = p.translate(ctx, segments)
		if err != nil {
			p.record(ctx, journal.Entry{Input: input, Output: output, Status: services.FailureStatus(err), Language: detected, Detail: err.Error()})
			return "", err
		}
	}

	p.notify(PhaseGenerating, 0)
	written, err := subtitles.Generate(segments, output, format)
	if err != nil {
		p.record(ctx, journal.Entry{Input: input, Output: output, Status: services.FailureStatus(err), Language: detected, Detail: err.Error()})
		return "", err
	}
	p.notify(PhaseGenerating, 100)

	if cues, cueErr := subtitles.CountCues(written); cueErr == nil {
		p.logger.Info("subtitle file created", "path", written, "cues", cues)
	} else {
		p.logger.Info("subtitle file created", "path", written)
	}
	p.record(ctx, journal.Entry{Input: input, Output: written, Status: journal.StatusDone, Language: detected})
	return written, nil
}

func (p *Processor) translate(ctx context.Context, segments []subtitles.Segment) ([]subtitles.Segment, error) {
	if p.cfg.Translation.BatchSize > 1 {
		return p.xlate.TranslateBatch(ctx, segments, p.cfg.Translation.BatchSize)
	}
	return p.xlate.TranslateSegments(ctx, segments)
}

// ProcessDirectory processes every matching media file under inputDir,
// mirroring the relative directory structure under outputDir (inputDir when
// empty). Per-file failures are logged and recorded, then the batch moves
// on; the returned list holds only the paths that succeeded, in enumeration
// order.
func (p *Processor) ProcessDirectory(ctx context.Context, inputDir, outputDir string, recursive bool) ([]string, error) {
	info, err := os.Stat(inputDir)
	if err != nil || !info.IsDir() {
		return nil, services.Wrap(services.ErrNotFound, "processor", "process directory",
			fmt.Sprintf("input directory not found: %s", inputDir), err)
	}
	if outputDir == "" {
		outputDir = p.cfg.Processing.OutputDirectory
	}
	if outputDir == "" {
		outputDir = inputDir
	}

	files, err := media.Scan(inputDir, p.cfg.MediaExtensions(), recursive)
	if err != nil {
		return nil, fmt.Errorf("scan media files: %w", err)
	}
	p.logger.Info("found media files", "count", len(files), "dir", inputDir)

	var generated []string
	for idx, file := range files {
		p.logger.Info("processing", "index", idx+1, "total", len(files), "file", filepath.Base(file))

		relative, relErr := filepath.Rel(inputDir, file)
		if relErr != nil {
			relative = filepath.Base(file)
		}
		output := filepath.Join(outputDir, media.ReplaceExtension(relative, p.cfg.Subtitle.Format))
		if mkErr := os.MkdirAll(filepath.Dir(output), 0o755); mkErr != nil {
			p.logger.Error("create output directory failed", "file", file, "error", mkErr)
			continue
		}

		written, procErr := p.ProcessFile(ctx, file, output, "")
		if procErr != nil {
			p.logger.Error("processing failed", "file", file, "error", procErr)
			continue
		}
		generated = append(generated, written)
	}

	p.logger.Info("directory processing complete",
		"succeeded", len(generated),
		"attempted", len(files))
	return generated, nil
}
