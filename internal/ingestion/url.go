package ingestion

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the posting cannot be fetched
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when text extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// IngestFromURL fetches a job posting, extracts its main text using
// platform-specific selectors, cleans it and returns it with metadata.
// When useBrowser is true, pages that yield too little static content are
// re-rendered in a headless browser before extraction.
func IngestFromURL(ctx context.Context, urlStr string, useBrowser bool, logger *zap.Logger) (string, *Metadata, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	platform := fetch.DetectPlatform(urlStr)
	logger.Debug("ingesting job posting",
		zap.String("url", urlStr),
		zap.String("platform", string(platform)))

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	logger.Debug("fetched HTML", zap.Int("bytes", len(result.HTML)))

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	textContent, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if useBrowser && fetch.ShouldUseBrowser(textContent) {
		logger.Debug("static content too short, rendering in browser",
			zap.Int("chars", len(textContent)),
			zap.Int("min_chars", fetch.MinContentLength))

		browserHTML, browserErr := fetch.BrowserSimple(ctx, urlStr, logger)
		if browserErr != nil {
			logger.Warn("browser rendering failed, keeping static content", zap.Error(browserErr))
		} else if browserText, extractErr := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...); extractErr == nil {
			textContent = browserText
		}
	}

	cleanedText := CleanText(textContent)
	if cleanedText == "" {
		return "", nil, ErrEmptyDocument
	}

	metadata := NewMetadata(cleanedText, urlStr)
	metadata.Platform = string(platform)
	metadata.ContentType = ContentTypeText
	return cleanedText, metadata, nil
}
