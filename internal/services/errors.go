// Package services defines the error taxonomy shared across the pipeline and
// the helpers for tagging errors so the batch boundary can classify them.
package services

import (
	"errors"
	"fmt"
	"strings"

	"whisparr/internal/journal"
)

// Sentinel markers for error classification. Callers wrap errors with one of
// these via Wrap and inspect them with errors.Is.
var (
	// ErrNotFound tags missing input media paths or directories. Raised
	// before any backend call, never retried.
	ErrNotFound = errors.New("not found")
	// ErrUnsupportedFormat tags a subtitle format that is neither srt nor
	// vtt. Raised by the serializer before anything is written.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrUnsupportedProvider tags a translation provider with no binding.
	// Raised when the translator is constructed.
	ErrUnsupportedProvider = errors.New("unsupported provider")
	// ErrBackend tags transcription or translation backend failures
	// (network, auth, quota, malformed response). Never retried by the
	// pipeline; caught and logged only at the directory batch boundary.
	ErrBackend = errors.New("backend failure")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrBackend
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureStatus maps a per-file error to the journal status recorded for it.
// Caller-fixable conditions land in review; environmental failures are
// plain failures.
func FailureStatus(err error) journal.Status {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUnsupportedFormat),
		errors.Is(err, ErrUnsupportedProvider):
		return journal.StatusReview
	default:
		return journal.StatusFailed
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
