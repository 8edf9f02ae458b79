package source

import (
	"context"
	"fmt"

	"github.com/gocolly/colly/v2"

	"github.com/jmylchreest/scrub/internal/logger"
)

// StaticFetcher uses Colly for plain HTTP fetching.
// It implements the Fetcher interface.
type StaticFetcher struct {
	opts Options
}

// NewStatic creates a new static fetcher.
func NewStatic(opts Options) *StaticFetcher {
	return &StaticFetcher{opts: opts}
}

// Fetch retrieves the raw response body using Colly. Non-2xx responses are
// errors.
func (f *StaticFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	logger.Debug("static fetch starting", "url", targetURL, "user_agent", f.opts.UserAgent)

	// A fresh collector per request; colly refuses to revisit URLs.
	c := colly.NewCollector(
		colly.UserAgent(f.opts.UserAgent),
		colly.StdlibContext(ctx),
	)
	if f.opts.Timeout > 0 {
		c.SetRequestTimeout(f.opts.Timeout)
	}
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml")
	})

	var body string
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
		logger.Debug("static fetch response received",
			"status", r.StatusCode,
			"content_type", r.Headers.Get("Content-Type"),
			"body_size", len(r.Body))
	})

	c.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		if status != 0 {
			fetchErr = fmt.Errorf("HTTP %d: %w", status, err)
		} else {
			fetchErr = err
		}
		logger.Debug("static fetch error", "status", status, "error", err)
	})

	if err := c.Visit(targetURL); err != nil && fetchErr == nil {
		return "", fmt.Errorf("failed to visit URL: %w", err)
	}
	if fetchErr != nil {
		return "", fetchErr
	}

	logger.Debug("static fetch complete", "url", targetURL)
	return body, nil
}

// Close releases resources.
func (f *StaticFetcher) Close() error {
	return nil
}

// Type returns the fetcher type.
func (f *StaticFetcher) Type() string {
	return ModeStatic
}
