package source

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"

	"github.com/jmylchreest/scrub/internal/logger"
)

// DynamicFetcher renders pages in headless Chrome via chromedp, for
// documents whose markup is produced by JavaScript.
type DynamicFetcher struct {
	opts        Options
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
}

// NewDynamic creates a dynamic fetcher. The browser starts lazily on the
// first Fetch.
func NewDynamic(opts Options) (*DynamicFetcher, error) {
	execOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(opts.UserAgent),
	)

	// chromedp's default lookup misses some installs
	if chromePath := FindChromePath(); chromePath != "" {
		execOpts = append(execOpts, chromedp.ExecPath(chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), execOpts...)

	logger.Debug("dynamic fetcher created", "timeout", opts.Timeout)

	return &DynamicFetcher{
		opts:        opts,
		allocCtx:    allocCtx,
		cancelAlloc: cancel,
	}, nil
}

// Fetch navigates to targetURL and returns the rendered document markup.
func (f *DynamicFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	browserCtx, cancelBrowser := chromedp.NewContext(f.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			logger.Debug("chromedp", "msg", fmt.Sprintf(format, args...))
		}),
	)
	defer cancelBrowser()

	timeout := f.opts.Timeout
	if timeout <= 0 {
		timeout = DefaultOptions().Timeout
	}
	runCtx, cancelRun := context.WithTimeout(browserCtx, timeout)
	defer cancelRun()

	// Cancel the browser run when the caller gives up.
	stop := context.AfterFunc(ctx, cancelRun)
	defer stop()

	waitFor := f.opts.WaitForSelector
	if waitFor == "" {
		waitFor = "body"
	}

	var html string
	actions := []chromedp.Action{
		chromedp.Navigate(targetURL),
		chromedp.WaitReady(waitFor),
		chromedp.OuterHTML("html", &html),
	}

	logger.Debug("chromedp executing actions", "url", targetURL, "wait_for", waitFor, "timeout", timeout)

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("browser automation failed: %w", err)
	}

	// OuterHTML drops the doctype; restore it so the document is parsed whole.
	html = "<!DOCTYPE html>\n" + html

	logger.Debug("dynamic fetch complete", "url", targetURL, "html_size", len(html))
	return html, nil
}

// Close shuts down the browser allocator.
func (f *DynamicFetcher) Close() error {
	f.cancelAlloc()
	return nil
}

// Type returns the fetcher type.
func (f *DynamicFetcher) Type() string {
	return ModeDynamic
}
