package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Whisper contains configuration for the transcription model.
type Whisper struct {
	// ModelSize selects the whisper model (tiny, base, small, medium, large).
	ModelSize string `toml:"model_size"`
	// Language is the source language hint; empty means auto-detect.
	Language string `toml:"language"`
	// Task is "transcribe" or "translate". The latter is whisper's own
	// source-to-English path, independent of the LLM translation below.
	Task string `toml:"task"`
	// Device is "cpu", "cuda", or empty for auto.
	Device string `toml:"device"`
	// ComputeType is the computation precision (float16, int8, float32).
	ComputeType string `toml:"compute_type"`
	// Binary overrides the whisper executable name.
	Binary string `toml:"binary"`
}

// Translation contains configuration for LLM segment translation.
type Translation struct {
	Enabled bool `toml:"enabled"`
	// Provider is "openai" or "anthropic".
	Provider string `toml:"provider"`
	// Model overrides the provider's default model.
	Model string `toml:"model"`
	// APIKey falls back to the provider's environment variable when empty.
	APIKey         string `toml:"api_key"`
	TargetLanguage string `toml:"target_language"`
	// ContextAware feeds a rolling window of previous translations into
	// each prompt.
	ContextAware bool `toml:"context_aware"`
	// BatchSize > 1 switches to batched translation, sending that many
	// segments per request. 1 translates segment by segment.
	BatchSize int `toml:"batch_size"`
}

// Subtitle contains configuration for the emitted subtitle files.
type Subtitle struct {
	// Format is "srt" or "vtt".
	Format string `toml:"format"`
	// MaxLineLength and MaxLines are part of the settings contract but are
	// not applied to emitted text; line wrapping is out of scope.
	MaxLineLength int `toml:"max_line_length"`
	MaxLines      int `toml:"max_lines"`
}

// Processing contains configuration for directory scanning and output.
type Processing struct {
	OutputDirectory   string   `toml:"output_directory"`
	VideoExtensions   []string `toml:"video_extensions"`
	AudioExtensions   []string `toml:"audio_extensions"`
	OverwriteExisting bool     `toml:"overwrite_existing"`
}

// Journal contains configuration for the processing history database.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for whisparr.
type Config struct {
	Whisper     Whisper     `toml:"whisper"`
	Translation Translation `toml:"translation"`
	Subtitle    Subtitle    `toml:"subtitle"`
	Processing  Processing  `toml:"processing"`
	Journal     Journal     `toml:"journal"`
	Logging     Logging     `toml:"logging"`
}

// MediaExtensions returns the combined video and audio extension lists.
func (c *Config) MediaExtensions() []string {
	out := make([]string, 0, len(c.Processing.VideoExtensions)+len(c.Processing.AudioExtensions))
	out = append(out, c.Processing.VideoExtensions...)
	out = append(out, c.Processing.AudioExtensions...)
	return out
}

// SampleConfig returns the annotated sample configuration file contents.
func SampleConfig() string {
	return sampleConfig
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/whisparr/config.toml")
}

// Load locates, parses, and validates a configuration file. The boolean
// reports whether a file was actually found; when it is false the returned
// config is pure defaults. Path fields come back expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	projectPath, err := filepath.Abs("whisparr.toml")
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return filepath.Abs(path)
}
