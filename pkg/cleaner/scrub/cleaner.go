package scrub

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jmylchreest/scrub/internal/dom"
	"github.com/jmylchreest/scrub/internal/format"
	"github.com/jmylchreest/scrub/internal/logger"
	"github.com/jmylchreest/scrub/pkg/cleaner"
)

var _ cleaner.Cleaner = (*Cleaner)(nil)

// Cleaner runs the scrub pipeline with a fixed configuration.
// It implements the cleaner.Cleaner interface and is safe for concurrent
// use; every call parses its own tree.
type Cleaner struct {
	config *Config
	err    error
}

// New creates a new Cleaner with the given configuration.
// If config is nil, DefaultConfig() is used. An invalid configuration is
// reported by every call as an ErrInvalidInput result.
func New(config *Config) *Cleaner {
	if config == nil {
		config = DefaultConfig()
	}
	c := &Cleaner{config: config.normalized()}
	if err := config.Validate(); err != nil {
		c.err = fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return c
}

// Name returns the cleaner name for logging.
func (c *Cleaner) Name() string {
	return "scrub"
}

// Config returns a copy of the effective configuration.
func (c *Cleaner) Config() *Config {
	return c.config.Clone()
}

// Clean transforms html according to the configuration.
// This method implements the cleaner.Cleaner interface.
func (c *Cleaner) Clean(html string) (string, error) {
	result := c.CleanWithStats(html)
	return result.HTML, result.Err
}

// CleanWithStats performs cleaning and returns the full result. It never
// panics; failures are reported through Result.Err.
func (c *Cleaner) CleanWithStats(html string) (result *Result) {
	start := time.Now()
	result = &Result{InputBytes: len(html)}
	defer func() {
		result.Duration = time.Since(start)
	}()

	if c.err != nil {
		result.Err = c.err
		return result
	}
	if html == "" {
		result.Err = fmt.Errorf("%w: empty html", ErrInvalidInput)
		return result
	}

	stats := NewStats()

	defer func() {
		if r := recover(); r != nil {
			result.HTML = ""
			result.OutputBytes = 0
			result.Err = fmt.Errorf("%w: %v", ErrInternal, r)
			logger.Debug("clean aborted", "error", result.Err)
		}
	}()

	doc, err := dom.Parse(html)
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrParse, err)
		return result
	}
	if c.config.TrackStatistics {
		result.stats = stats
	}

	c.transform(doc, stats, result)

	out, err := doc.Render()
	if err != nil {
		result.Err = fmt.Errorf("%w: rendering: %w", ErrInternal, err)
		return result
	}

	if c.config.Beautify {
		out = format.Beautify(out, c.config.Format.options())
	}

	result.HTML = out
	result.OutputBytes = len(out)

	logger.Debug("cleaned html",
		"input_bytes", result.InputBytes,
		"output_bytes", result.OutputBytes,
		"full_document", doc.IsFull(),
		"removed", stats.TotalRemoved())

	return result
}

// transform mutates doc in place: comments, then tags, then attributes,
// then structure.
func (c *Cleaner) transform(doc *dom.Document, stats *Stats, result *Result) {
	if c.config.StripComments {
		removeComments(doc.Root(), stats)
	}

	if len(c.config.RemoveTags) > 0 {
		removeTags(doc, c.config.RemoveTags, stats)
	}

	stripAllAttributes(doc.Selection, c.config, stats)

	if c.config.OptimizeHTML {
		if limit := optimize(doc, c.config, stats); limit != "" {
			result.AddWarning("optimize", fmt.Sprintf("stopped by %s before converging", limit))
		}
	}
}

// Clean cleans html with DefaultConfig adjusted by opts.
func Clean(html string, opts ...Option) *Result {
	return New(NewConfig(opts...)).CleanWithStats(html)
}

// CleanReader reads all of r and cleans it. A nil reader is invalid input.
func CleanReader(r io.Reader, opts ...Option) *Result {
	if r == nil {
		return &Result{Err: fmt.Errorf("%w: nil reader", ErrInvalidInput)}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return &Result{Err: fmt.Errorf("%w: reading input: %w", ErrInvalidInput, err)}
	}
	return Clean(string(data), opts...)
}

// IsValidHTML reports whether text looks like HTML and is well-formed.
// Plain prose with no angle brackets is never valid.
func IsValidHTML(text string) bool {
	if !strings.ContainsAny(text, "<>") {
		return false
	}
	return dom.WellFormed(text)
}

// StripClasses removes every class attribute. Returns "" on error.
func StripClasses(html string) string {
	return New(PresetClassesOnly()).CleanWithStats(html).HTML
}

// StripStyles removes every style attribute. Returns "" on error.
func StripStyles(html string) string {
	return New(PresetStylesOnly()).CleanWithStats(html).HTML
}

// StripAll removes every class and style attribute. Returns "" on error.
func StripAll(html string) string {
	return New(PresetClassesAndStyles()).CleanWithStats(html).HTML
}

// StripLegacy removes classes and/or styles as selected by the flags, with
// no optimization or beautification.
func StripLegacy(html string, classes, styles bool) string {
	cfg := &Config{StripClasses: classes, StripStyles: styles}
	return New(cfg).CleanWithStats(html).HTML
}
