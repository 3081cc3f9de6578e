package subtitles

import (
	"fmt"
	"math"
	"os"
	"strings"
)

// CountCues returns the number of subtitle cues in a written SRT or VTT file.
// The WEBVTT header, if present, is not counted.
func CountCues(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read subtitle file: %w", err)
	}
	content := strings.TrimSpace(string(data))
	content = strings.TrimPrefix(content, "WEBVTT")
	content = strings.TrimSpace(content)
	if content == "" {
		return 0, nil
	}
	count := 0
	for _, block := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count, nil
}

// Bounds returns the earliest start and latest end timestamp found in a
// written subtitle file, in seconds. A file with no parseable timestamps
// returns (0, 0).
func Bounds(path string) (float64, float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("read subtitle file: %w", err)
	}
	first := math.Inf(1)
	var last float64
	found := false
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.Contains(line, "-->") {
			continue
		}
		parts := strings.Split(line, "-->")
		if len(parts) != 2 {
			continue
		}
		if start, err := ParseTimestamp(parts[0]); err == nil {
			if start < first {
				first = start
			}
			found = true
		}
		if end, err := ParseTimestamp(parts[1]); err == nil {
			if end > last {
				last = end
			}
		}
	}
	if !found {
		return 0, last, nil
	}
	return first, last, nil
}
