package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/scrub/internal/logger"
	"github.com/jmylchreest/scrub/internal/output"
	"github.com/jmylchreest/scrub/pkg/cleaner/scrub"
)

func newCompareCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [file|url|-]",
		Short: "Run every preset on the same input",
		Long: `Compare cleans the input with each preset and prints output size,
removal counts, reduction and time side by side.

Examples:
  scrub compare https://example.com
  scrub compare --report json page.html`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, v, argOrStdin(args))
		},
	}

	flags := cmd.Flags()
	addSourceFlags(flags)
	flags.StringSlice("presets", scrub.PresetNames(), "presets to compare")
	flags.String("report", string(output.FormatText), "report format: text, json, jsonl, yaml")
	return cmd
}

func runCompare(cmd *cobra.Command, v *viper.Viper, arg string) error {
	format, err := output.ParseFormat(v.GetString("report"))
	if err != nil {
		return err
	}

	// Resolve every preset before doing any I/O.
	names := v.GetStringSlice("presets")
	configs := make([]*scrub.Config, 0, len(names))
	for _, name := range names {
		cfg, err := scrub.PresetByName(name)
		if err != nil {
			return err
		}
		cfg.TrackStatistics = true
		configs = append(configs, cfg)
	}

	in, err := loadInput(cmd.Context(), v, cmd.InOrStdin(), arg)
	if err != nil {
		return err
	}

	reports := make([]output.Report, 0, len(configs))
	for i, cfg := range configs {
		result := scrub.New(cfg).CleanWithStats(in.HTML)
		logger.Debug("preset done", "preset", names[i], "ok", result.OK(), "duration", result.Duration)
		reports = append(reports, output.NewReport(in.Name, names[i], result))
	}

	w, err := output.NewWriter(cmd.OutOrStdout(), format)
	if err != nil {
		return err
	}
	if err := w.WriteAll(reports); err != nil {
		return err
	}
	return w.Flush()
}
