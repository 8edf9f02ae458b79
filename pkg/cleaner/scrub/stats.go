package scrub

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats captures what a cleaning run removed. Counters only ever grow
// during a run.
type Stats struct {
	// Attribute stripping
	ClassesRemoved        int `json:"classes_removed" yaml:"classes_removed"`
	IDsRemoved            int `json:"ids_removed" yaml:"ids_removed"`
	StylesRemoved         int `json:"styles_removed" yaml:"styles_removed"`
	DataAttributesRemoved int `json:"data_attributes_removed" yaml:"data_attributes_removed"`
	EventHandlersRemoved  int `json:"event_handlers_removed" yaml:"event_handlers_removed"`
	ARIAAttributesRemoved int `json:"aria_attributes_removed" yaml:"aria_attributes_removed"`

	// Node removal
	TagsRemoved     int `json:"tags_removed" yaml:"tags_removed"`
	CommentsRemoved int `json:"comments_removed" yaml:"comments_removed"`

	// Structure
	EmptyDivsRemoved int `json:"empty_divs_removed" yaml:"empty_divs_removed"`
	DivsBubbledUp    int `json:"divs_bubbled_up" yaml:"divs_bubbled_up"`

	ElementsProcessed int `json:"elements_processed" yaml:"elements_processed"`
}

// NewStats creates a zeroed Stats.
func NewStats() *Stats {
	return &Stats{}
}

// AttributesRemoved returns the sum of all attribute counters. Class tokens
// count individually.
func (s *Stats) AttributesRemoved() int {
	return s.ClassesRemoved + s.IDsRemoved + s.StylesRemoved +
		s.DataAttributesRemoved + s.EventHandlersRemoved + s.ARIAAttributesRemoved
}

// TotalRemoved returns the sum of every removal counter.
func (s *Stats) TotalRemoved() int {
	return s.AttributesRemoved() + s.TagsRemoved + s.CommentsRemoved + s.EmptyDivsRemoved
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Elements processed: %d\n", s.ElementsProcessed))

	attrs := []struct {
		name  string
		count int
	}{
		{"classes", s.ClassesRemoved},
		{"ids", s.IDsRemoved},
		{"styles", s.StylesRemoved},
		{"data", s.DataAttributesRemoved},
		{"events", s.EventHandlersRemoved},
		{"aria", s.ARIAAttributesRemoved},
	}
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		if a.count > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", a.name, a.count))
		}
	}
	if len(parts) > 0 {
		sb.WriteString(fmt.Sprintf("Attributes removed: %d (%s)\n", s.AttributesRemoved(), strings.Join(parts, ", ")))
	}

	if s.TagsRemoved > 0 {
		sb.WriteString(fmt.Sprintf("Tags removed: %d\n", s.TagsRemoved))
	}
	if s.CommentsRemoved > 0 {
		sb.WriteString(fmt.Sprintf("Comments removed: %d\n", s.CommentsRemoved))
	}
	if s.EmptyDivsRemoved > 0 || s.DivsBubbledUp > 0 {
		sb.WriteString(fmt.Sprintf("Structure: %d empty divs removed, %d wrappers bubbled up\n",
			s.EmptyDivsRemoved, s.DivsBubbledUp))
	}

	return sb.String()
}

// Warning represents a non-fatal issue encountered during cleaning.
type Warning struct {
	Phase   string `json:"phase" yaml:"phase"`     // "parse", "optimize", "beautify"
	Message string `json:"message" yaml:"message"` // Human-readable description
}

// String returns a formatted warning message.
func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result contains the output of a cleaning operation.
type Result struct {
	// HTML is the cleaned markup. It is empty whenever Err is set.
	HTML string `json:"html"`

	// Err is set when the run failed. It wraps one of ErrInvalidInput,
	// ErrParse or ErrInternal.
	Err error `json:"-"`

	// Warnings contains non-fatal issues, such as an optimizer limit being
	// reached before the tree converged.
	Warnings []Warning `json:"warnings,omitempty"`

	InputBytes  int           `json:"input_bytes"`
	OutputBytes int           `json:"output_bytes"`
	Duration    time.Duration `json:"duration"`

	stats *Stats
}

// Stats returns the statistics record and whether one was tracked. It
// reports false when statistics were disabled or the run failed before
// parsing completed.
func (r *Result) Stats() (*Stats, bool) {
	return r.stats, r.stats != nil
}

// OK reports whether the run succeeded.
func (r *Result) OK() bool {
	return r.Err == nil
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(phase, message string) {
	r.Warnings = append(r.Warnings, Warning{Phase: phase, Message: message})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// ReductionPercent returns the percentage reduction in size.
func (r *Result) ReductionPercent() float64 {
	if r.InputBytes == 0 {
		return 0
	}
	return float64(r.InputBytes-r.OutputBytes) / float64(r.InputBytes) * 100
}

// Summary returns a one-line size summary, e.g. "4.2 kB -> 1.9 kB (54.8% reduction)".
func (r *Result) Summary() string {
	return fmt.Sprintf("%s -> %s (%.1f%% reduction)",
		humanize.Bytes(uint64(r.InputBytes)),
		humanize.Bytes(uint64(r.OutputBytes)),
		r.ReductionPercent())
}
