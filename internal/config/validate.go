package config

import (
	"fmt"
	"strings"
)

var validTasks = map[string]struct{}{
	"transcribe": {},
	"translate":  {},
}

var validDevices = map[string]struct{}{
	"":     {},
	"cpu":  {},
	"cuda": {},
}

var validProviders = map[string]struct{}{
	"openai":    {},
	"anthropic": {},
}

// Validate checks the configuration for values the pipeline cannot work
// with. It returns the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Whisper.ModelSize) == "" {
		return fmt.Errorf("config: whisper.model_size is required")
	}
	if _, ok := validTasks[c.Whisper.Task]; !ok {
		return fmt.Errorf("config: whisper.task must be \"transcribe\" or \"translate\", got %q", c.Whisper.Task)
	}
	if _, ok := validDevices[c.Whisper.Device]; !ok {
		return fmt.Errorf("config: whisper.device must be \"cpu\" or \"cuda\", got %q", c.Whisper.Device)
	}

	if c.Translation.Enabled {
		if _, ok := validProviders[c.Translation.Provider]; !ok {
			return fmt.Errorf("config: translation.provider must be \"openai\" or \"anthropic\", got %q", c.Translation.Provider)
		}
		if strings.TrimSpace(c.Translation.TargetLanguage) == "" {
			return fmt.Errorf("config: translation.target_language is required when translation is enabled")
		}
		if c.Translation.BatchSize < 1 {
			return fmt.Errorf("config: translation.batch_size must be >= 1, got %d", c.Translation.BatchSize)
		}
	}

	switch c.Subtitle.Format {
	case "srt", "vtt":
	default:
		return fmt.Errorf("config: subtitle.format must be \"srt\" or \"vtt\", got %q", c.Subtitle.Format)
	}
	if c.Subtitle.MaxLineLength < 1 {
		return fmt.Errorf("config: subtitle.max_line_length must be >= 1, got %d", c.Subtitle.MaxLineLength)
	}
	if c.Subtitle.MaxLines < 1 {
		return fmt.Errorf("config: subtitle.max_lines must be >= 1, got %d", c.Subtitle.MaxLines)
	}

	if len(c.MediaExtensions()) == 0 {
		return fmt.Errorf("config: processing must declare at least one video or audio extension")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}
