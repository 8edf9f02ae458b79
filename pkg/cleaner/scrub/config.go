// Package scrub strips noise attributes from HTML fragments and collapses
// redundant wrapper structure. It is the cleaner behind the scrub CLI and
// can be embedded by editors and pipelines that need a deterministic,
// side-effect free HTML tidy step.
package scrub

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/jmylchreest/scrub/internal/format"
)

// Config defines all options for a cleaning run.
type Config struct {
	// === Attribute Cleaning ===

	// StripClasses removes class tokens that no PreserveClasses entry matches.
	StripClasses bool `json:"strip_classes" yaml:"strip_classes"`

	// PreserveClasses lists class names or patterns exempt from StripClasses.
	PreserveClasses []ClassPattern `json:"preserve_classes" yaml:"preserve_classes"`

	// StripIDs removes id="" attributes.
	StripIDs bool `json:"strip_ids" yaml:"strip_ids"`

	// StripStyles removes style="" attributes.
	StripStyles bool `json:"strip_styles" yaml:"strip_styles"`

	// StripDataAttributes removes data-* attributes.
	StripDataAttributes bool `json:"strip_data_attributes" yaml:"strip_data_attributes"`

	// StripEventHandlers removes onclick, onload, and the other inline handlers.
	StripEventHandlers bool `json:"strip_event_handlers" yaml:"strip_event_handlers"`

	// StripARIA removes aria-* attributes.
	StripARIA bool `json:"strip_aria" yaml:"strip_aria"`

	// StripComments removes HTML comments.
	StripComments bool `json:"strip_comments" yaml:"strip_comments"`

	// === Element Removal ===

	// RemoveTags deletes every element with one of these tag names, subtree
	// included. Matching is case-insensitive.
	RemoveTags []string `json:"remove_tags" yaml:"remove_tags"`

	// === Structure ===

	// OptimizeHTML enables the structural optimizer.
	OptimizeHTML bool `json:"optimize_html" yaml:"optimize_html"`

	// RemoveEmptyDivs deletes divs with no element children and no text.
	RemoveEmptyDivs bool `json:"remove_empty_divs" yaml:"remove_empty_divs"`

	// BubbleUpWrapperDivs replaces divs that only hold divs with their children.
	BubbleUpWrapperDivs bool `json:"bubble_up_wrapper_divs" yaml:"bubble_up_wrapper_divs"`

	// Limits bounds the optimizer loops.
	Limits Limits `json:"limits" yaml:"limits"`

	// === Output ===

	// Beautify pretty-prints the serialized result.
	Beautify bool `json:"beautify" yaml:"beautify"`

	// Format holds the beautifier options.
	Format FormatOptions `json:"format" yaml:"format"`

	// TrackStatistics attaches a Stats record to the result.
	TrackStatistics bool `json:"track_statistics" yaml:"track_statistics"`
}

// Limits are termination guards for the optimizer. Zero values fall back
// to the defaults.
type Limits struct {
	// MaxPasses bounds the outer bubble-then-prune loop.
	MaxPasses int `json:"max_passes" yaml:"max_passes" validate:"min=1,max=1000"`

	// MaxBubbleSweeps bounds wrapper sweeps within one pass.
	MaxBubbleSweeps int `json:"max_bubble_sweeps" yaml:"max_bubble_sweeps" validate:"min=1,max=1000"`

	// MaxEmptyRemovals bounds empty-div deletions within one pass.
	MaxEmptyRemovals int `json:"max_empty_removals" yaml:"max_empty_removals" validate:"min=1,max=100000"`
}

// FormatOptions configures beautification.
type FormatOptions struct {
	IndentSize       int  `json:"indent_size" yaml:"indent_size" validate:"min=1,max=16"`
	PreserveNewlines bool `json:"preserve_newlines" yaml:"preserve_newlines"`
	IndentEmptyLines bool `json:"indent_empty_lines" yaml:"indent_empty_lines"`
}

const (
	defaultMaxPasses        = 10
	defaultMaxBubbleSweeps  = 10
	defaultMaxEmptyRemovals = 20
)

var validate = validator.New()

// DefaultConfig strips classes, optimizes structure, beautifies the output,
// and tracks statistics. All other stripping is off.
func DefaultConfig() *Config {
	return &Config{
		StripClasses: true,

		OptimizeHTML:        true,
		RemoveEmptyDivs:     true,
		BubbleUpWrapperDivs: true,
		Limits:              DefaultLimits(),

		Beautify: true,
		Format: FormatOptions{
			IndentSize: format.DefaultIndentSize,
		},
		TrackStatistics: true,
	}
}

// DefaultLimits returns the optimizer guards. Real documents converge in a
// handful of passes.
func DefaultLimits() Limits {
	return Limits{
		MaxPasses:        defaultMaxPasses,
		MaxBubbleSweeps:  defaultMaxBubbleSweeps,
		MaxEmptyRemovals: defaultMaxEmptyRemovals,
	}
}

// PresetClassesOnly removes class attributes and nothing else. Output is
// neither optimized nor beautified.
func PresetClassesOnly() *Config {
	return &Config{StripClasses: true, Limits: DefaultLimits()}
}

// PresetStylesOnly removes inline styles and nothing else.
func PresetStylesOnly() *Config {
	return &Config{StripStyles: true, Limits: DefaultLimits()}
}

// PresetClassesAndStyles removes classes and inline styles.
func PresetClassesAndStyles() *Config {
	return &Config{StripClasses: true, StripStyles: true, Limits: DefaultLimits()}
}

// PresetEverything enables every attribute category, comment stripping, and
// the optimizer on top of DefaultConfig.
func PresetEverything() *Config {
	cfg := DefaultConfig()
	cfg.StripIDs = true
	cfg.StripStyles = true
	cfg.StripDataAttributes = true
	cfg.StripEventHandlers = true
	cfg.StripARIA = true
	cfg.StripComments = true
	return cfg
}

var presets = map[string]func() *Config{
	"default":        DefaultConfig,
	"classes":        PresetClassesOnly,
	"styles":         PresetStylesOnly,
	"classes-styles": PresetClassesAndStyles,
	"everything":     PresetEverything,
}

// PresetNames lists the names accepted by PresetByName.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetByName returns a fresh copy of the named preset. An empty name
// selects the default configuration.
func PresetByName(name string) (*Config, error) {
	if name == "" {
		return DefaultConfig(), nil
	}
	preset, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", name, PresetNames())
	}
	return preset(), nil
}

// Option adjusts a Config. Options applied over DefaultConfig express a
// partial configuration: fields no option touches keep their defaults.
type Option func(*Config)

// NewConfig returns DefaultConfig with opts applied in order.
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithConfig replaces the whole configuration with a copy of cfg.
func WithConfig(cfg *Config) Option {
	return func(c *Config) {
		if cfg != nil {
			*c = *cfg.Clone()
		}
	}
}

// WithStripClasses toggles class stripping.
func WithStripClasses(enabled bool) Option {
	return func(c *Config) { c.StripClasses = enabled }
}

// WithPreserveClasses appends whitelist entries.
func WithPreserveClasses(patterns ...ClassPattern) Option {
	return func(c *Config) { c.PreserveClasses = append(c.PreserveClasses, patterns...) }
}

// WithStripIDs toggles id stripping.
func WithStripIDs(enabled bool) Option {
	return func(c *Config) { c.StripIDs = enabled }
}

// WithStripStyles toggles inline style stripping.
func WithStripStyles(enabled bool) Option {
	return func(c *Config) { c.StripStyles = enabled }
}

// WithStripDataAttributes toggles data-* stripping.
func WithStripDataAttributes(enabled bool) Option {
	return func(c *Config) { c.StripDataAttributes = enabled }
}

// WithStripEventHandlers toggles event handler stripping.
func WithStripEventHandlers(enabled bool) Option {
	return func(c *Config) { c.StripEventHandlers = enabled }
}

// WithStripARIA toggles aria-* stripping.
func WithStripARIA(enabled bool) Option {
	return func(c *Config) { c.StripARIA = enabled }
}

// WithStripComments toggles comment removal.
func WithStripComments(enabled bool) Option {
	return func(c *Config) { c.StripComments = enabled }
}

// WithRemoveTags appends tag names to delete outright.
func WithRemoveTags(tags ...string) Option {
	return func(c *Config) { c.RemoveTags = append(c.RemoveTags, tags...) }
}

// WithOptimizeHTML toggles the structural optimizer.
func WithOptimizeHTML(enabled bool) Option {
	return func(c *Config) { c.OptimizeHTML = enabled }
}

// WithRemoveEmptyDivs toggles empty-div pruning.
func WithRemoveEmptyDivs(enabled bool) Option {
	return func(c *Config) { c.RemoveEmptyDivs = enabled }
}

// WithBubbleUpWrapperDivs toggles wrapper bubbling.
func WithBubbleUpWrapperDivs(enabled bool) Option {
	return func(c *Config) { c.BubbleUpWrapperDivs = enabled }
}

// WithLimits sets the optimizer guards.
func WithLimits(limits Limits) Option {
	return func(c *Config) { c.Limits = limits }
}

// WithBeautify toggles pretty-printing.
func WithBeautify(enabled bool) Option {
	return func(c *Config) { c.Beautify = enabled }
}

// WithIndentSize sets the beautifier indent width.
func WithIndentSize(size int) Option {
	return func(c *Config) { c.Format.IndentSize = size }
}

// WithPreserveNewlines toggles blank line preservation when beautifying.
func WithPreserveNewlines(enabled bool) Option {
	return func(c *Config) { c.Format.PreserveNewlines = enabled }
}

// WithIndentEmptyLines toggles indentation of preserved blank lines.
func WithIndentEmptyLines(enabled bool) Option {
	return func(c *Config) { c.Format.IndentEmptyLines = enabled }
}

// WithTrackStatistics toggles the statistics record on results.
func WithTrackStatistics(enabled bool) Option {
	return func(c *Config) { c.TrackStatistics = enabled }
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.PreserveClasses = append([]ClassPattern(nil), c.PreserveClasses...)
	clone.RemoveTags = append([]string(nil), c.RemoveTags...)
	return &clone
}

// normalized returns a copy with zero limits and indent replaced by defaults.
func (c *Config) normalized() *Config {
	n := c.Clone()
	defaults := DefaultLimits()
	if n.Limits.MaxPasses == 0 {
		n.Limits.MaxPasses = defaults.MaxPasses
	}
	if n.Limits.MaxBubbleSweeps == 0 {
		n.Limits.MaxBubbleSweeps = defaults.MaxBubbleSweeps
	}
	if n.Limits.MaxEmptyRemovals == 0 {
		n.Limits.MaxEmptyRemovals = defaults.MaxEmptyRemovals
	}
	if n.Format.IndentSize == 0 {
		n.Format.IndentSize = format.DefaultIndentSize
	}
	return n
}

// Validate checks limits and format options. Zero values are accepted and
// mean "use the default".
func (c *Config) Validate() error {
	if err := validate.Struct(c.normalized()); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (f FormatOptions) options() format.Options {
	return format.Options{
		IndentSize:       f.IndentSize,
		PreserveNewlines: f.PreserveNewlines,
		IndentEmptyLines: f.IndentEmptyLines,
	}
}
