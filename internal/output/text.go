package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
)

// TextWriter renders reports for a terminal. A single report prints as a
// stats block; several print as a comparison table.
type TextWriter struct {
	w       *bufio.Writer
	reports []Report
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// Write buffers a single report.
func (w *TextWriter) Write(r Report) error {
	w.reports = append(w.reports, r)
	return nil
}

// WriteAll buffers multiple reports.
func (w *TextWriter) WriteAll(rs []Report) error {
	w.reports = append(w.reports, rs...)
	return nil
}

// Flush renders the buffered reports.
func (w *TextWriter) Flush() error {
	var err error
	switch len(w.reports) {
	case 0:
	case 1:
		err = w.writeBlock(w.reports[0])
	default:
		err = w.writeTable(w.reports)
	}
	if err != nil {
		return err
	}
	w.reports = nil
	return w.w.Flush()
}

func (w *TextWriter) writeBlock(r Report) error {
	var sb strings.Builder
	sb.WriteString("=== scrub ===\n")
	sb.WriteString(fmt.Sprintf("Source: %s\n", r.Source))
	if r.Preset != "" {
		sb.WriteString(fmt.Sprintf("Preset: %s\n", r.Preset))
	}
	if !r.OK {
		sb.WriteString(fmt.Sprintf("Error: %s (%s)\n", r.Error, r.ErrorKind))
	}
	sb.WriteString(fmt.Sprintf("Size: %s -> %s (%.1f%% reduction)\n",
		humanize.Bytes(uint64(r.InputBytes)), humanize.Bytes(uint64(r.OutputBytes)), r.ReductionPercent))
	if r.Stats != nil {
		sb.WriteString(r.Stats.String())
	}
	for _, warn := range r.Warnings {
		sb.WriteString(fmt.Sprintf("Warning: %s\n", warn))
	}
	sb.WriteString(fmt.Sprintf("Time: %.2fms\n", r.DurationMS))

	_, err := w.w.WriteString(sb.String())
	return err
}

func (w *TextWriter) writeTable(rs []Report) error {
	if _, err := fmt.Fprintf(w.w, "=== Preset comparison for %s ===\n", rs[0].Source); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w.w, "Input size: %s\n\n", humanize.Bytes(uint64(rs[0].InputBytes))); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Preset\tOutput\tAttrs\tTags\tDivs\tReduce%\tTime\t")
	for _, r := range rs {
		name := r.Preset
		if name == "" {
			name = r.Source
		}
		if !r.OK {
			fmt.Fprintf(tw, "%s\t%s\t\t\t\t\t\t\n", name, r.ErrorKind)
			continue
		}

		attrs, tags, divs := "-", "-", "-"
		if r.Stats != nil {
			attrs = humanize.Comma(int64(r.Stats.AttributesRemoved()))
			tags = humanize.Comma(int64(r.Stats.TagsRemoved + r.Stats.CommentsRemoved))
			divs = humanize.Comma(int64(r.Stats.EmptyDivsRemoved + r.Stats.DivsBubbledUp))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.1f%%\t%.2fms\t\n",
			name, humanize.Bytes(uint64(r.OutputBytes)), attrs, tags, divs, r.ReductionPercent, r.DurationMS)
	}
	return tw.Flush()
}
