package commands

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/scrub/internal/source"
	"github.com/jmylchreest/scrub/pkg/cleaner/scrub"
)

// Settings holds the cleaning options a user actually set, from flags,
// SCRUB_* environment variables or the config file. Nil fields keep the
// preset's value.
type Settings struct {
	Preset string

	StripClasses        *bool
	PreserveClasses     []string
	StripIDs            *bool
	StripStyles         *bool
	StripDataAttributes *bool
	StripEventHandlers  *bool
	StripARIA           *bool
	StripComments       *bool

	RemoveTags []string

	OptimizeHTML        *bool
	RemoveEmptyDivs     *bool
	BubbleUpWrapperDivs *bool
	MaxPasses           *int
	MaxBubbleSweeps     *int
	MaxEmptyRemovals    *int

	Beautify         *bool
	IndentSize       *int
	PreserveNewlines *bool
	IndentEmptyLines *bool

	TrackStatistics *bool
}

// addConfigFlags registers one flag per cleaning option. Flag defaults are
// display only; an unset flag never overrides the preset.
func addConfigFlags(flags *pflag.FlagSet) {
	flags.String("preset", "default", "base preset: default, classes, styles, classes-styles, everything")

	// Attributes
	flags.Bool("strip-classes", true, "remove class tokens")
	flags.StringSlice("preserve-classes", nil, "class names to keep; /regexp/ for patterns (repeatable)")
	flags.Bool("strip-ids", false, "remove id attributes")
	flags.Bool("strip-styles", false, "remove style attributes")
	flags.Bool("strip-data-attributes", false, "remove data-* attributes")
	flags.Bool("strip-event-handlers", false, "remove onclick, onload and other handlers")
	flags.Bool("strip-aria", false, "remove aria-* attributes")
	flags.Bool("strip-comments", false, "remove HTML comments")

	// Elements
	flags.StringSlice("remove-tags", nil, "tag names to delete with their contents (repeatable)")

	// Structure
	flags.Bool("optimize-html", true, "collapse redundant divs")
	flags.Bool("remove-empty-divs", true, "delete divs with no content")
	flags.Bool("bubble-up-wrapper-divs", true, "replace divs that only hold divs with their children")
	flags.Int("max-passes", 10, "optimizer pass limit")
	flags.Int("max-bubble-sweeps", 10, "wrapper sweeps per pass")
	flags.Int("max-empty-removals", 20, "empty div removals per pass")

	// Output
	flags.Bool("beautify", true, "pretty-print the result")
	flags.Int("indent-size", 2, "beautify indent width (1-16)")
	flags.Bool("preserve-newlines", false, "keep blank lines when beautifying")
	flags.Bool("indent-empty-lines", false, "indent preserved blank lines")
	flags.Bool("track-statistics", true, "collect removal statistics")
}

// addSourceFlags registers URL fetching flags.
func addSourceFlags(flags *pflag.FlagSet) {
	flags.String("fetch-mode", source.ModeStatic, "URL fetch mode: static, dynamic")
	flags.Duration("timeout", 30*time.Second, "URL fetch timeout")
	flags.String("wait-for", "", "CSS selector to wait for in dynamic mode")
	flags.String("user-agent", "", "user agent for URL fetches")
}

// loadSettings collects the options set in v.
func loadSettings(v *viper.Viper) Settings {
	s := Settings{Preset: v.GetString("preset")}

	optBool := func(key string) *bool {
		if !v.IsSet(key) {
			return nil
		}
		b := v.GetBool(key)
		return &b
	}
	optInt := func(key string) *int {
		if !v.IsSet(key) {
			return nil
		}
		i := v.GetInt(key)
		return &i
	}
	optStrings := func(key string) []string {
		if !v.IsSet(key) {
			return nil
		}
		return v.GetStringSlice(key)
	}

	s.StripClasses = optBool("strip_classes")
	s.PreserveClasses = optStrings("preserve_classes")
	s.StripIDs = optBool("strip_ids")
	s.StripStyles = optBool("strip_styles")
	s.StripDataAttributes = optBool("strip_data_attributes")
	s.StripEventHandlers = optBool("strip_event_handlers")
	s.StripARIA = optBool("strip_aria")
	s.StripComments = optBool("strip_comments")
	s.RemoveTags = optStrings("remove_tags")
	s.OptimizeHTML = optBool("optimize_html")
	s.RemoveEmptyDivs = optBool("remove_empty_divs")
	s.BubbleUpWrapperDivs = optBool("bubble_up_wrapper_divs")
	s.MaxPasses = optInt("max_passes")
	s.MaxBubbleSweeps = optInt("max_bubble_sweeps")
	s.MaxEmptyRemovals = optInt("max_empty_removals")
	s.Beautify = optBool("beautify")
	s.IndentSize = optInt("indent_size")
	s.PreserveNewlines = optBool("preserve_newlines")
	s.IndentEmptyLines = optBool("indent_empty_lines")
	s.TrackStatistics = optBool("track_statistics")
	return s
}

// PresetName returns the preset the settings start from.
func (s Settings) PresetName() string {
	if s.Preset == "" {
		return "default"
	}
	return s.Preset
}

// Config applies the settings over the preset and validates the result.
func (s Settings) Config() (*scrub.Config, error) {
	base, err := scrub.PresetByName(s.Preset)
	if err != nil {
		return nil, err
	}
	opts := []scrub.Option{scrub.WithConfig(base)}

	flag := func(p *bool, opt func(bool) scrub.Option) {
		if p != nil {
			opts = append(opts, opt(*p))
		}
	}
	flag(s.StripClasses, scrub.WithStripClasses)
	flag(s.StripIDs, scrub.WithStripIDs)
	flag(s.StripStyles, scrub.WithStripStyles)
	flag(s.StripDataAttributes, scrub.WithStripDataAttributes)
	flag(s.StripEventHandlers, scrub.WithStripEventHandlers)
	flag(s.StripARIA, scrub.WithStripARIA)
	flag(s.StripComments, scrub.WithStripComments)
	flag(s.OptimizeHTML, scrub.WithOptimizeHTML)
	flag(s.RemoveEmptyDivs, scrub.WithRemoveEmptyDivs)
	flag(s.BubbleUpWrapperDivs, scrub.WithBubbleUpWrapperDivs)
	flag(s.Beautify, scrub.WithBeautify)
	flag(s.PreserveNewlines, scrub.WithPreserveNewlines)
	flag(s.IndentEmptyLines, scrub.WithIndentEmptyLines)
	flag(s.TrackStatistics, scrub.WithTrackStatistics)

	if len(s.PreserveClasses) > 0 {
		patterns, err := scrub.ParseClassPatterns(s.PreserveClasses)
		if err != nil {
			return nil, err
		}
		opts = append(opts, scrub.WithPreserveClasses(patterns...))
	}
	if len(s.RemoveTags) > 0 {
		opts = append(opts, scrub.WithRemoveTags(s.RemoveTags...))
	}
	if s.IndentSize != nil {
		opts = append(opts, scrub.WithIndentSize(*s.IndentSize))
	}

	limits := base.Limits
	if s.MaxPasses != nil {
		limits.MaxPasses = *s.MaxPasses
	}
	if s.MaxBubbleSweeps != nil {
		limits.MaxBubbleSweeps = *s.MaxBubbleSweeps
	}
	if s.MaxEmptyRemovals != nil {
		limits.MaxEmptyRemovals = *s.MaxEmptyRemovals
	}
	opts = append(opts, scrub.WithLimits(limits))

	cfg := scrub.NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// sourceOptions reads the fetch flags from v.
func sourceOptions(v *viper.Viper) source.Options {
	return source.Options{
		Mode:            v.GetString("fetch_mode"),
		UserAgent:       v.GetString("user_agent"),
		Timeout:         v.GetDuration("timeout"),
		WaitForSelector: v.GetString("wait_for"),
	}
}
