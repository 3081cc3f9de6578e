package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("exists should be false for a missing file")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Whisper.ModelSize != "base" || cfg.Whisper.Task != "transcribe" {
		t.Fatalf("whisper defaults wrong: %+v", cfg.Whisper)
	}
	if cfg.Translation.Enabled || cfg.Translation.Provider != "openai" || cfg.Translation.BatchSize != 1 {
		t.Fatalf("translation defaults wrong: %+v", cfg.Translation)
	}
	if !cfg.Translation.ContextAware {
		t.Fatal("context_aware should default to true")
	}
	if cfg.Subtitle.Format != "srt" || cfg.Subtitle.MaxLineLength != 42 || cfg.Subtitle.MaxLines != 2 {
		t.Fatalf("subtitle defaults wrong: %+v", cfg.Subtitle)
	}
}

// A partial file overrides only the keys it mentions; everything else keeps
// its default.
func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[whisper]
model_size = "large"

[subtitle]
format = "VTT"
`)
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("exists should be true")
	}
	if cfg.Whisper.ModelSize != "large" {
		t.Fatalf("model_size = %q, want large", cfg.Whisper.ModelSize)
	}
	if cfg.Whisper.Task != "transcribe" {
		t.Fatalf("task should keep its default, got %q", cfg.Whisper.Task)
	}
	if cfg.Subtitle.Format != "vtt" {
		t.Fatalf("format should be lowercased, got %q", cfg.Subtitle.Format)
	}
	if cfg.Subtitle.MaxLineLength != 42 {
		t.Fatalf("max_line_length should keep its default, got %d", cfg.Subtitle.MaxLineLength)
	}
	if len(cfg.Processing.VideoExtensions) == 0 {
		t.Fatal("default extensions should survive a partial file")
	}
}

func TestLoadNormalizesExtensions(t *testing.T) {
	path := writeConfig(t, `
[processing]
video_extensions = ["MP4", ".Mkv", " webm ", ""]
audio_extensions = ["mp3"]
`)
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{".mp4", ".mkv", ".webm"}
	if len(cfg.Processing.VideoExtensions) != len(want) {
		t.Fatalf("video extensions = %v, want %v", cfg.Processing.VideoExtensions, want)
	}
	for i, ext := range want {
		if cfg.Processing.VideoExtensions[i] != ext {
			t.Fatalf("video extensions = %v, want %v", cfg.Processing.VideoExtensions, want)
		}
	}
	if cfg.Processing.AudioExtensions[0] != ".mp3" {
		t.Fatalf("audio extensions = %v", cfg.Processing.AudioExtensions)
	}
}

func TestLoadAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	path := writeConfig(t, `
[translation]
enabled = true
provider = "openai"
`)
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Translation.APIKey != "sk-env" {
		t.Fatalf("api_key = %q, want sk-env", cfg.Translation.APIKey)
	}
}

func TestLoadExplicitKeyBeatsEnvironment(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-env")
	path := writeConfig(t, `
[translation]
enabled = true
provider = "anthropic"
api_key = "sk-file"
`)
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Translation.APIKey != "sk-file" {
		t.Fatalf("api_key = %q, want sk-file", cfg.Translation.APIKey)
	}
}

func TestLoadExpandsJournalPath(t *testing.T) {
	path := writeConfig(t, `
[journal]
path = "~/journal.db"
`)
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	home, _ := os.UserHomeDir()
	if cfg.Journal.Path != filepath.Join(home, "journal.db") {
		t.Fatalf("journal path not expanded: %q", cfg.Journal.Path)
	}
}

func TestLoadValidationFailures(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		want     string
	}{
		{
			name:     "bad task",
			contents: "[whisper]\ntask = \"dictate\"\n",
			want:     "whisper.task",
		},
		{
			name:     "bad device",
			contents: "[whisper]\ndevice = \"tpu\"\n",
			want:     "whisper.device",
		},
		{
			name:     "bad format",
			contents: "[subtitle]\nformat = \"ass\"\n",
			want:     "subtitle.format",
		},
		{
			name:     "bad provider",
			contents: "[translation]\nenabled = true\nprovider = \"cohere\"\n",
			want:     "translation.provider",
		},
		{
			name:     "bad batch size",
			contents: "[translation]\nenabled = true\nbatch_size = 0\n",
			want:     "translation.batch_size",
		},
		{
			name:     "no extensions",
			contents: "[processing]\nvideo_extensions = []\naudio_extensions = []\n",
			want:     "at least one",
		},
		{
			name:     "bad log format",
			contents: "[logging]\nformat = \"xml\"\n",
			want:     "logging.format",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.contents)
			_, _, _, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestDisabledTranslationSkipsProviderValidation(t *testing.T) {
	path := writeConfig(t, `
[translation]
enabled = false
provider = "cohere"
`)
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("disabled translation should not validate the provider: %v", err)
	}
}

func TestMediaExtensionsCombinesLists(t *testing.T) {
	cfg := Default()
	exts := cfg.MediaExtensions()
	if len(exts) != len(cfg.Processing.VideoExtensions)+len(cfg.Processing.AudioExtensions) {
		t.Fatalf("combined length = %d", len(exts))
	}
	if exts[0] != ".mp4" || exts[len(exts)-1] != ".ogg" {
		t.Fatalf("unexpected ordering: %v", exts)
	}
}

func TestSampleConfigParses(t *testing.T) {
	path := writeConfig(t, SampleConfig())
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("sample config must load cleanly: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config must validate: %v", err)
	}
}
