package output

import (
	"github.com/jmylchreest/scrub/pkg/cleaner/scrub"
)

// Report is the serializable summary of one cleaning run.
type Report struct {
	Source string `json:"source" yaml:"source"`
	Preset string `json:"preset,omitempty" yaml:"preset,omitempty"`

	OK        bool   `json:"ok" yaml:"ok"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`

	InputBytes       int     `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes      int     `json:"output_bytes" yaml:"output_bytes"`
	ReductionPercent float64 `json:"reduction_percent" yaml:"reduction_percent"`
	DurationMS       float64 `json:"duration_ms" yaml:"duration_ms"`

	Stats    *scrub.Stats `json:"stats,omitempty" yaml:"stats,omitempty"`
	Warnings []string     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NewReport summarizes result. Statistics are included only when the run
// tracked them.
func NewReport(source, preset string, result *scrub.Result) Report {
	r := Report{
		Source:           source,
		Preset:           preset,
		OK:               result.OK(),
		InputBytes:       result.InputBytes,
		OutputBytes:      result.OutputBytes,
		ReductionPercent: result.ReductionPercent(),
		DurationMS:       float64(result.Duration.Microseconds()) / 1000,
	}
	if result.Err != nil {
		r.Error = result.Err.Error()
		r.ErrorKind = scrub.KindOf(result.Err)
	}
	if stats, ok := result.Stats(); ok {
		r.Stats = stats
	}
	for _, w := range result.Warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	return r
}
