package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONWriter buffers reports and writes them as one JSON document.
type JSONWriter struct {
	w       *bufio.Writer
	pretty  bool
	indent  string
	reports []Report
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
	}
}

// Write buffers a single report.
func (w *JSONWriter) Write(r Report) error {
	w.reports = append(w.reports, r)
	return nil
}

// WriteAll buffers multiple reports.
func (w *JSONWriter) WriteAll(rs []Report) error {
	w.reports = append(w.reports, rs...)
	return nil
}

// Flush writes a single report as an object and several as an array.
func (w *JSONWriter) Flush() error {
	var v any = w.reports
	if len(w.reports) == 1 {
		v = w.reports[0]
	}

	var output []byte
	var err error
	if w.pretty {
		output, err = json.MarshalIndent(v, "", w.indent)
	} else {
		output, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}

	w.reports = nil
	return w.w.Flush()
}

// JSONLWriter writes one JSON object per line as reports arrive.
type JSONLWriter struct {
	enc *json.Encoder
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{enc: json.NewEncoder(w)}
}

// Write writes a single report as a JSON line.
func (w *JSONLWriter) Write(r Report) error {
	return w.enc.Encode(r)
}

// WriteAll writes multiple reports as JSON lines.
func (w *JSONLWriter) WriteAll(rs []Report) error {
	for _, r := range rs {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush is a no-op; lines are written immediately.
func (w *JSONLWriter) Flush() error {
	return nil
}
