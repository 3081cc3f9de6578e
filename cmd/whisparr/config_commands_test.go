package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"whisparr/internal/config"
)

func TestConfigValueByPath(t *testing.T) {
	cfg := config.Default()
	cfg.Whisper.ModelSize = "large"
	cfg.Translation.BatchSize = 10

	cases := []struct {
		key  string
		want string
	}{
		{"whisper.model_size", "large"},
		{"whisper.task", "transcribe"},
		{"translation.batch_size", "10"},
		{"translation.context_aware", "true"},
		{"subtitle.format", "srt"},
	}
	for _, tc := range cases {
		got, err := configValueByPath(&cfg, tc.key)
		if err != nil {
			t.Fatalf("configValueByPath(%q): %v", tc.key, err)
		}
		if got != tc.want {
			t.Errorf("configValueByPath(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestConfigValueByPathErrors(t *testing.T) {
	cfg := config.Default()

	if _, err := configValueByPath(&cfg, "whisper.no_such_key"); err == nil {
		t.Fatal("unknown leaf should error")
	}
	if _, err := configValueByPath(&cfg, "nonsense.model_size"); err == nil {
		t.Fatal("unknown section should error")
	}
	if _, err := configValueByPath(&cfg, "whisper"); err == nil {
		t.Fatal("bare section name should error")
	}
	if _, err := configValueByPath(&cfg, "whisper.model_size.deeper"); err == nil {
		t.Fatal("descending past a leaf should error")
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cmd := newConfigInitCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--output", path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read generated config: %v", err)
	}
	if string(data) != config.SampleConfig() {
		t.Fatal("generated file should match the sample config")
	}
	if !strings.Contains(out.String(), path) {
		t.Fatalf("output should name the path: %q", out.String())
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("# mine\n"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	cmd := newConfigInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--output", path})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected overwrite refusal mentioning --force, got %v", err)
	}

	cmd = newConfigInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"--output", path, "--force"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != config.SampleConfig() {
		t.Fatal("--force should replace the existing file")
	}
}
