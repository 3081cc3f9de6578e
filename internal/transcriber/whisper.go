package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"whisparr/internal/subtitles"
)

// DefaultBinary is the whisper executable invoked when none is configured.
const DefaultBinary = "whisper"

// whisperBackend drives the openai-whisper CLI. Each call writes the model's
// JSON output into a scratch directory and parses it back.
type whisperBackend struct {
	cfg    Config
	binary string
	runner func(ctx context.Context, name string, args ...string) error
}

func newWhisperBackend(cfg Config) (Backend, error) {
	binary := strings.TrimSpace(cfg.Binary)
	if binary == "" {
		binary = DefaultBinary
	}
	if _, err := exec.LookPath(binary); err != nil {
		return nil, fmt.Errorf("whisper binary %q not found: %w", binary, err)
	}
	return &whisperBackend{cfg: cfg, binary: binary}, nil
}

func (b *whisperBackend) Transcribe(ctx context.Context, path string, opts Options) (*Result, error) {
	outputDir, err := os.MkdirTemp("", "whisparr-whisper-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(outputDir)

	args := b.buildArgs(path, outputDir, opts)
	if err := b.run(ctx, b.binary, args...); err != nil {
		return nil, err
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	jsonPath := filepath.Join(outputDir, stem+".json")
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}
	return parseWhisperJSON(data)
}

// buildArgs assembles the CLI invocation. Unset options are left off the
// command line entirely so the model applies its own defaults.
func (b *whisperBackend) buildArgs(path, outputDir string, opts Options) []string {
	args := []string{
		path,
		"--model", b.cfg.ModelSize,
		"--output_format", "json",
		"--output_dir", outputDir,
		"--verbose", "False",
	}
	if opts.Task != "" {
		args = append(args, "--task", opts.Task)
	}
	if opts.Language != "" {
		args = append(args, "--language", opts.Language)
	}
	if b.cfg.Device != "" {
		args = append(args, "--device", b.cfg.Device)
	}
	if b.cfg.ComputeType == "float32" || b.cfg.Device == "cpu" {
		args = append(args, "--fp16", "False")
	}
	return args
}

func (b *whisperBackend) run(ctx context.Context, name string, args ...string) error {
	if b.runner != nil {
		return b.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

type whisperJSON struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func parseWhisperJSON(data []byte) (*Result, error) {
	var payload whisperJSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}
	result := &Result{
		Text:     payload.Text,
		Language: payload.Language,
		Segments: make([]subtitles.Segment, 0, len(payload.Segments)),
	}
	for _, segment := range payload.Segments {
		result.Segments = append(result.Segments, subtitles.Segment{
			Start: segment.Start,
			End:   segment.End,
			Text:  segment.Text,
		})
	}
	return result, nil
}
