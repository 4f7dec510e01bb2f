package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jonathan/resume-matcher/internal/ingestion"
)

// httpStatusFor maps domain errors onto HTTP status codes. Bad input is the
// caller's fault, upstream fetch trouble is the remote site's, and anything
// inside the matcher is ours.
func httpStatusFor(err error) int {
	switch {
	case errors.Is(err, ingestion.ErrDocumentTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ingestion.ErrUnsupportedFormat),
		errors.Is(err, ingestion.ErrEmptyDocument):
		return http.StatusBadRequest
	case errors.Is(err, ingestion.ErrHTTPRequestFailed),
		errors.Is(err, ingestion.ErrContentExtractionFailed):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return 499 // client closed request
	default:
		return http.StatusInternalServerError
	}
}
