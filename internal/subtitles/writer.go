package subtitles

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"whisparr/internal/services"
)

// Subtitle formats supported by Generate.
const (
	FormatNameSRT = "srt"
	FormatNameVTT = "vtt"
)

// NormalizeFormat lowercases and trims a format name and reports whether it
// names a supported subtitle format.
func NormalizeFormat(format string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(format))
	switch normalized {
	case FormatNameSRT, FormatNameVTT:
		return normalized, true
	default:
		return normalized, false
	}
}

// Generate writes the segments to outputPath in the requested format and
// returns the path it wrote so callers can chain without re-deriving it.
// The format is validated before the file is opened; an unsupported format
// never leaves a partial file behind. Parent directories are the caller's
// responsibility. An existing file at outputPath is overwritten.
func Generate(segments []Segment, outputPath, format string) (string, error) {
	normalized, ok := NormalizeFormat(format)
	if !ok {
		return "", services.Wrap(services.ErrUnsupportedFormat, "subtitles", "generate",
			fmt.Sprintf("unsupported subtitle format %q", format), nil)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("create subtitle file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if normalized == FormatNameVTT {
		fmt.Fprint(w, "WEBVTT\n\n")
	}
	for idx, segment := range segments {
		start, end := cueTimestamps(segment, normalized)
		fmt.Fprintf(w, "%d\n", idx+1)
		fmt.Fprintf(w, "%s --> %s\n", start, end)
		fmt.Fprintf(w, "%s\n\n", strings.TrimSpace(segment.Text))
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("write subtitle file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close subtitle file: %w", err)
	}
	return outputPath, nil
}

func cueTimestamps(segment Segment, format string) (string, string) {
	if format == FormatNameVTT {
		return FormatVTT(segment.Start), FormatVTT(segment.End)
	}
	return FormatSRT(segment.Start), FormatSRT(segment.End)
}
