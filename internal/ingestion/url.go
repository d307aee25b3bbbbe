package ingestion

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-optimax/internal/fetch"
)

var (
	// ErrInvalidURL is returned when URL is malformed
	ErrInvalidURL = errors.New("invalid URL")
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = errors.New("content extraction failed")
	// ErrEmptyContent is returned when a page yields no text
	ErrEmptyContent = errors.New("no text found on page")
)

// Ingester fetches job postings and reduces them to clean text.
type Ingester struct {
	fetcher  *fetch.Fetcher
	renderer fetch.Renderer
	logger   *zap.Logger
}

// NewIngester creates an Ingester. Nil arguments select the defaults: a plain
// HTTP fetcher, headless Chrome and a no-op logger.
func NewIngester(fetcher *fetch.Fetcher, renderer fetch.Renderer, logger *zap.Logger) *Ingester {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fetcher == nil {
		fetcher = fetch.New(fetch.WithLogger(logger))
	}
	if renderer == nil {
		renderer = fetch.NewChromeRenderer(logger)
	}
	return &Ingester{fetcher: fetcher, renderer: renderer, logger: logger}
}

// IngestFromURL fetches a job posting with the default Ingester.
func IngestFromURL(ctx context.Context, urlStr string, useBrowser bool) (string, *Metadata, error) {
	return NewIngester(nil, nil, nil).FromURL(ctx, urlStr, useBrowser)
}

// FromURL fetches urlStr, extracts the posting text with platform-specific
// selectors and cleans it. When useBrowser is set and the extracted text is
// shorter than fetch.MinContentLength, the page is rendered in a headless
// browser and extracted again; a browser failure keeps the HTTP result.
func (in *Ingester) FromURL(ctx context.Context, urlStr string, useBrowser bool) (string, *Metadata, error) {
	if err := fetch.ValidateURL(urlStr); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	platform := fetch.DetectPlatform(urlStr)
	logger := in.logger.With(zap.String("url", urlStr), zap.String("platform", string(platform)))

	page, err := in.fetcher.Get(ctx, urlStr)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	contentSelectors := fetch.ContentSelectors(platform)
	noiseSelectors := fetch.NoiseSelectors(platform)

	text, err := fetch.ExtractMainText(page.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	logger.Debug("extracted posting text", zap.Int("chars", len(text)))

	usedBrowser := false
	if useBrowser && fetch.ShouldUseBrowser(text) {
		logger.Info("content too short, rendering in browser",
			zap.Int("chars", len(text)),
			zap.Int("min_chars", fetch.MinContentLength),
		)
		if rendered, err := in.renderer.Render(ctx, urlStr); err != nil {
			logger.Warn("browser rendering failed, using HTTP content", zap.Error(err))
		} else if browserText, err := fetch.ExtractMainText(rendered, contentSelectors, noiseSelectors...); err != nil {
			logger.Warn("browser content extraction failed, using HTTP content", zap.Error(err))
		} else {
			text = browserText
			usedBrowser = true
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: %s", ErrEmptyContent, urlStr)
	}

	metadata := NewMetadata(cleaned, urlStr)
	metadata.Platform = string(platform)
	metadata.UsedBrowser = usedBrowser

	return cleaned, metadata, nil
}
