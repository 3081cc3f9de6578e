package config

import (
	"os"
	"strings"
)

// Environment variables consulted when translation.api_key is unset.
const (
	envOpenAIKey    = "OPENAI_API_KEY"
	envAnthropicKey = "ANTHROPIC_API_KEY"
)

func (c *Config) normalize() error {
	c.Whisper.ModelSize = strings.TrimSpace(c.Whisper.ModelSize)
	c.Whisper.Language = strings.ToLower(strings.TrimSpace(c.Whisper.Language))
	c.Whisper.Task = strings.ToLower(strings.TrimSpace(c.Whisper.Task))
	c.Whisper.Device = strings.ToLower(strings.TrimSpace(c.Whisper.Device))
	c.Whisper.Binary = strings.TrimSpace(c.Whisper.Binary)
	if c.Whisper.Binary == "" {
		c.Whisper.Binary = defaultWhisperBinary
	}

	c.Translation.Provider = strings.ToLower(strings.TrimSpace(c.Translation.Provider))
	c.Translation.Model = strings.TrimSpace(c.Translation.Model)
	c.Translation.APIKey = strings.TrimSpace(c.Translation.APIKey)
	if c.Translation.APIKey == "" {
		switch c.Translation.Provider {
		case "openai":
			c.Translation.APIKey = strings.TrimSpace(os.Getenv(envOpenAIKey))
		case "anthropic":
			c.Translation.APIKey = strings.TrimSpace(os.Getenv(envAnthropicKey))
		}
	}
	c.Translation.TargetLanguage = strings.TrimSpace(c.Translation.TargetLanguage)

	c.Subtitle.Format = strings.ToLower(strings.TrimSpace(c.Subtitle.Format))

	c.Processing.VideoExtensions = normalizeExtensions(c.Processing.VideoExtensions)
	c.Processing.AudioExtensions = normalizeExtensions(c.Processing.AudioExtensions)

	if c.Processing.OutputDirectory != "" {
		expanded, err := expandPath(c.Processing.OutputDirectory)
		if err != nil {
			return err
		}
		c.Processing.OutputDirectory = expanded
	}
	if c.Journal.Path != "" {
		expanded, err := expandPath(c.Journal.Path)
		if err != nil {
			return err
		}
		c.Journal.Path = expanded
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	return nil
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
