package services

import (
	"errors"
	"strings"
	"testing"

	"whisparr/internal/journal"
)

func TestWrapTagsWithMarker(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrBackend, "translator", "translate batch", "chunk 3", cause)

	if !errors.Is(err, ErrBackend) {
		t.Fatalf("wrapped error should carry the marker: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("wrapped error should carry the cause: %v", err)
	}
	for _, want := range []string{"translator", "translate batch", "chunk 3", "connection refused"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(ErrUnsupportedFormat, "subtitles", "generate", "format \"ass\"", nil)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("marker lost: %v", err)
	}
	if errors.Is(err, ErrBackend) {
		t.Fatalf("unrelated marker must not match: %v", err)
	}
}

func TestWrapNilMarkerDefaultsToBackend(t *testing.T) {
	err := Wrap(nil, "transcriber", "transcribe", "", errors.New("boom"))
	if !errors.Is(err, ErrBackend) {
		t.Fatalf("nil marker should fall back to ErrBackend: %v", err)
	}
}

func TestWrapBlankContext(t *testing.T) {
	err := Wrap(ErrBackend, "", "  ", "", nil)
	if !strings.Contains(err.Error(), "pipeline failure") {
		t.Fatalf("blank context should read as a generic pipeline failure: %v", err)
	}
}

func TestFailureStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want journal.Status
	}{
		{"not found", Wrap(ErrNotFound, "processor", "process file", "missing", nil), journal.StatusReview},
		{"unsupported format", Wrap(ErrUnsupportedFormat, "subtitles", "generate", "ass", nil), journal.StatusReview},
		{"unsupported provider", Wrap(ErrUnsupportedProvider, "translator", "new", "cohere", nil), journal.StatusReview},
		{"backend", Wrap(ErrBackend, "translator", "complete", "", errors.New("500")), journal.StatusFailed},
		{"untagged", errors.New("disk full"), journal.StatusFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FailureStatus(tc.err); got != tc.want {
				t.Fatalf("FailureStatus = %q, want %q", got, tc.want)
			}
		})
	}
}
