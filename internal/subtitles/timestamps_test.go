package subtitles_test

import (
	"regexp"
	"testing"

	"whisparr/internal/subtitles"
)

func TestFormatSRT(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{2.5, "00:00:02,500"},
		{61.234, "00:01:01,234"},
		{3661.0, "01:01:01,000"},
		{3599.5, "00:59:59,500"},
		{360000.5, "100:00:00,500"},
	}
	for _, tc := range cases {
		if got := subtitles.FormatSRT(tc.seconds); got != tc.want {
			t.Errorf("FormatSRT(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatVTT(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00.000"},
		{2.5, "00:00:02.500"},
		{3661.0, "01:01:01.000"},
	}
	for _, tc := range cases {
		if got := subtitles.FormatVTT(tc.seconds); got != tc.want {
			t.Errorf("FormatVTT(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatShape(t *testing.T) {
	srtPattern := regexp.MustCompile(`^\d{2,}:\d{2}:\d{2},\d{3}$`)
	vttPattern := regexp.MustCompile(`^\d{2,}:\d{2}:\d{2}\.\d{3}$`)
	for _, seconds := range []float64{0, 0.001, 1, 59.999, 60, 3600, 86399.5, 123456.789} {
		if got := subtitles.FormatSRT(seconds); !srtPattern.MatchString(got) {
			t.Errorf("FormatSRT(%v) = %q, does not match shape", seconds, got)
		}
		if got := subtitles.FormatVTT(seconds); !vttPattern.MatchString(got) {
			t.Errorf("FormatVTT(%v) = %q, does not match shape", seconds, got)
		}
	}
}

// Milliseconds derive from the original fraction; they never round up into
// the seconds field.
func TestFormatNoMillisecondCarry(t *testing.T) {
	if got := subtitles.FormatSRT(1.9999); got != "00:00:01,999" {
		t.Fatalf("FormatSRT(1.9999) = %q, want 00:00:01,999", got)
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"00:00:02,500", 2.5, false},
		{"01:01:01.000", 3661, false},
		{" 00:01:01,234 ", 61.234, false},
		{"", 0, true},
		{"1:2", 0, true},
		{"aa:bb:cc,ddd", 0, true},
	}
	for _, tc := range cases {
		got, err := subtitles.ParseTimestamp(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimestamp(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimestamp(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
