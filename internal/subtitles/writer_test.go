package subtitles_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"whisparr/internal/services"
	"whisparr/internal/subtitles"
)

func sampleSegments() []subtitles.Segment {
	return []subtitles.Segment{
		{Start: 0.0, End: 2.5, Text: "Hello, this is a test."},
		{Start: 2.5, End: 5.0, Text: "This is the second segment."},
	}
}

func TestGenerateSRT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.srt")
	written, err := subtitles.Generate(sampleSegments(), path, "srt")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if written != path {
		t.Fatalf("Generate returned %q, want %q", written, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	content := string(data)
	want := "1\n00:00:00,000 --> 00:00:02,500\nHello, this is a test.\n\n" +
		"2\n00:00:02,500 --> 00:00:05,000\nThis is the second segment.\n\n"
	if content != want {
		t.Fatalf("unexpected SRT content:\n%q\nwant:\n%q", content, want)
	}
}

func TestGenerateVTT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.vtt")
	if _, err := subtitles.Generate(sampleSegments(), path, "vtt"); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "WEBVTT\n\n") {
		t.Fatalf("VTT output missing header, got %q", content[:min(len(content), 20)])
	}
	if !strings.Contains(content, "00:00:02.500 --> 00:00:05.000") {
		t.Fatalf("VTT output missing period timestamps:\n%s", content)
	}
}

func TestGenerateFormatCaseInsensitive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.srt")
	if _, err := subtitles.Generate(sampleSegments(), path, "SRT"); err != nil {
		t.Fatalf("Generate with uppercase format returned error: %v", err)
	}
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xyz")
	_, err := subtitles.Generate(sampleSegments(), path, "xyz")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !errors.Is(err, services.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "xyz") {
		t.Fatalf("error should name the offending format, got %v", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("no file should exist for an unsupported format, stat: %v", statErr)
	}
}

func TestGenerateStripsWhitespaceAndRestartsNumbering(t *testing.T) {
	dir := t.TempDir()
	segments := []subtitles.Segment{{Start: 0, End: 1, Text: "  padded text \n"}}

	first := filepath.Join(dir, "a.srt")
	if _, err := subtitles.Generate(segments, first, "srt"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second := filepath.Join(dir, "b.srt")
	if _, err := subtitles.Generate(segments, second, "srt"); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	data, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "1\n") {
		t.Fatalf("numbering must restart at 1 per call, got %q", content)
	}
	if !strings.Contains(content, "\npadded text\n") {
		t.Fatalf("segment text should be stripped, got %q", content)
	}
}

func TestGenerateOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.srt")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if _, err := subtitles.Generate(sampleSegments(), path, "srt"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "stale") {
		t.Fatal("existing file content should be replaced")
	}
}

func TestTranslatedCopy(t *testing.T) {
	segment := subtitles.Segment{Start: 1.5, End: 3.0, Text: " Bonjour "}
	translated := segment.Translated("Hello")

	if translated.Text != "Hello" {
		t.Fatalf("translated text = %q", translated.Text)
	}
	if translated.OriginalText != "Bonjour" {
		t.Fatalf("original text = %q, want stripped original", translated.OriginalText)
	}
	if translated.Start != 1.5 || translated.End != 3.0 {
		t.Fatalf("timing must be preserved, got %v-%v", translated.Start, translated.End)
	}
	if !translated.IsTranslated() {
		t.Fatal("translated copy should report IsTranslated")
	}
	if segment.Text != " Bonjour " || segment.IsTranslated() {
		t.Fatal("source segment must be untouched")
	}
}

func TestCountCuesAndBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.srt")
	if _, err := subtitles.Generate(sampleSegments(), path, "srt"); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	cues, err := subtitles.CountCues(path)
	if err != nil {
		t.Fatalf("CountCues: %v", err)
	}
	if cues != 2 {
		t.Fatalf("CountCues = %d, want 2", cues)
	}

	first, last, err := subtitles.Bounds(path)
	if err != nil {
		t.Fatalf("Bounds: %v", err)
	}
	if first != 0 || last != 5 {
		t.Fatalf("Bounds = (%v, %v), want (0, 5)", first, last)
	}
}

func TestCountCuesSkipsVTTHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.vtt")
	if _, err := subtitles.Generate(sampleSegments(), path, "vtt"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	cues, err := subtitles.CountCues(path)
	if err != nil {
		t.Fatalf("CountCues: %v", err)
	}
	if cues != 2 {
		t.Fatalf("CountCues = %d, want 2", cues)
	}
}
