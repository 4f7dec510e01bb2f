package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/matching"
)

func TestHTTPStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"too large", ingestion.ErrDocumentTooLarge, http.StatusRequestEntityTooLarge},
		{"unsupported format", ingestion.ErrUnsupportedFormat, http.StatusBadRequest},
		{"empty document", ingestion.ErrEmptyDocument, http.StatusBadRequest},
		{"fetch failure", ingestion.ErrHTTPRequestFailed, http.StatusBadGateway},
		{"extraction failure", ingestion.ErrContentExtractionFailed, http.StatusBadGateway},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"canceled", context.Canceled, 499},
		{"match error", &matching.MatchError{Stage: "soft scoring", Cause: errors.New("boom")}, http.StatusInternalServerError},
		{"unknown", errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := httpStatusFor(tt.err); got != tt.want {
				t.Errorf("httpStatusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHTTPStatusFor_Wrapped(t *testing.T) {
	err := fmt.Errorf("ingest upload: %w", ingestion.ErrUnsupportedFormat)
	if got := httpStatusFor(err); got != http.StatusBadRequest {
		t.Errorf("wrapped error mapped to %d, want 400", got)
	}

	err = fmt.Errorf("%w: connection refused", ingestion.ErrHTTPRequestFailed)
	if got := httpStatusFor(err); got != http.StatusBadGateway {
		t.Errorf("wrapped fetch error mapped to %d, want 502", got)
	}
}
