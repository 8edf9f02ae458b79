// Package source loads HTML for the scrub CLI from files, stdin or URLs.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jmylchreest/scrub/internal/logger"
)

// Fetch modes.
const (
	ModeStatic  = "static"
	ModeDynamic = "dynamic"
)

// Stdin is the source name used for standard input.
const Stdin = "stdin"

// ErrEmpty is returned when a source holds no content.
var ErrEmpty = errors.New("empty input")

// Input is HTML loaded from one source.
type Input struct {
	// Name identifies the source: a path, a URL, or "stdin".
	Name string
	HTML string
}

// Fetcher retrieves the HTML of a URL.
type Fetcher interface {
	// Fetch returns the page HTML.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns "static" or "dynamic".
	Type() string
}

// Options controls URL fetching.
type Options struct {
	Mode            string
	UserAgent       string
	Timeout         time.Duration
	WaitForSelector string // dynamic mode only
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Mode:      ModeStatic,
		UserAgent: defaultUserAgent,
		Timeout:   30 * time.Second,
	}
}

// Chrome user agent for better compatibility
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Loader resolves source arguments. The fetcher is created on first use so
// file and stdin inputs never start a browser.
type Loader struct {
	opts    Options
	stdin   io.Reader
	fetcher Fetcher

	// newFetcher is swapped in tests.
	newFetcher func(Options) (Fetcher, error)
}

// NewLoader creates a loader reading "-" from stdin.
func NewLoader(opts Options, stdin io.Reader) *Loader {
	defaults := DefaultOptions()
	if opts.Mode == "" {
		opts.Mode = defaults.Mode
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaults.UserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaults.Timeout
	}
	return &Loader{opts: opts, stdin: stdin, newFetcher: NewFetcher}
}

// NewFetcher creates the fetcher for opts.Mode.
func NewFetcher(opts Options) (Fetcher, error) {
	switch opts.Mode {
	case ModeStatic, "":
		return NewStatic(opts), nil
	case ModeDynamic:
		return NewDynamic(opts)
	default:
		return nil, fmt.Errorf("unknown fetch mode %q (want static or dynamic)", opts.Mode)
	}
}

// IsURL reports whether arg names an http or https URL.
func IsURL(arg string) bool {
	lower := strings.ToLower(arg)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load reads arg: "-" or "" is stdin, an http(s) URL is fetched, anything
// else is a file path.
func (l *Loader) Load(ctx context.Context, arg string) (Input, error) {
	var in Input
	var err error

	switch {
	case arg == "" || arg == "-":
		in, err = l.readStdin()
	case IsURL(arg):
		in, err = l.fetch(ctx, arg)
	default:
		in, err = readFile(arg)
	}
	if err != nil {
		return in, err
	}
	if in.HTML == "" {
		return in, fmt.Errorf("%s: %w", in.Name, ErrEmpty)
	}

	logger.Debug("source loaded", "source", in.Name, "bytes", len(in.HTML))
	return in, nil
}

// Close releases the fetcher, if one was created.
func (l *Loader) Close() error {
	if l.fetcher == nil {
		return nil
	}
	return l.fetcher.Close()
}

func (l *Loader) readStdin() (Input, error) {
	in := Input{Name: Stdin}
	if l.stdin == nil {
		return in, fmt.Errorf("reading stdin: no reader")
	}
	data, err := io.ReadAll(l.stdin)
	if err != nil {
		return in, fmt.Errorf("reading stdin: %w", err)
	}
	in.HTML = string(data)
	return in, nil
}

func (l *Loader) fetch(ctx context.Context, url string) (Input, error) {
	in := Input{Name: url}
	if l.fetcher == nil {
		f, err := l.newFetcher(l.opts)
		if err != nil {
			return in, err
		}
		l.fetcher = f
	}

	html, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return in, fmt.Errorf("fetching %s (%s): %w", url, l.fetcher.Type(), err)
	}
	in.HTML = html
	return in, nil
}

func readFile(path string) (Input, error) {
	in := Input{Name: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("reading file %s: %w", path, err)
	}
	in.HTML = string(data)
	return in, nil
}
