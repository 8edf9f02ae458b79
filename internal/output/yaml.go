package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter buffers reports and writes them as one YAML document.
type YAMLWriter struct {
	w       *bufio.Writer
	reports []Report
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{w: bufio.NewWriter(w)}
}

// Write buffers a single report.
func (w *YAMLWriter) Write(r Report) error {
	w.reports = append(w.reports, r)
	return nil
}

// WriteAll buffers multiple reports.
func (w *YAMLWriter) WriteAll(rs []Report) error {
	w.reports = append(w.reports, rs...)
	return nil
}

// Flush writes a single report as a mapping and several as a sequence.
func (w *YAMLWriter) Flush() error {
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	var err error
	if len(w.reports) == 1 {
		err = encoder.Encode(w.reports[0])
	} else {
		err = encoder.Encode(w.reports)
	}
	if err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}

	w.reports = nil
	return w.w.Flush()
}
