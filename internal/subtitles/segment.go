package subtitles

import "strings"

// Segment is one timed span of transcript text. Start and End are offsets in
// seconds from the beginning of the media file. Segments flow through the
// pipeline ordered by Start; nothing downstream of the transcriber reorders
// them or touches the timing.
type Segment struct {
	Start float64
	End   float64
	Text  string

	// OriginalText preserves the pre-translation text. It is set only by
	// Translated; untranslated segments leave it empty.
	OriginalText string
}

// Translated returns a copy of the segment carrying the translated text.
// The previous text is stripped and stamped into OriginalText; timing is
// preserved.
func (s Segment) Translated(text string) Segment {
	out := s
	out.OriginalText = strings.TrimSpace(s.Text)
	out.Text = text
	return out
}

// IsTranslated reports whether the segment has been through translation.
func (s Segment) IsTranslated() bool {
	return s.OriginalText != ""
}
