package commands

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/scrub/internal/logger"
	"github.com/jmylchreest/scrub/internal/output"
	"github.com/jmylchreest/scrub/pkg/cleaner/scrub"
)

func newCleanCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [file|url|-]",
		Short: "Clean HTML and write the result",
		Long: `Clean strips attributes and optimizes structure, writing the result to
stdout or a file. Input that is not well-formed HTML is refused.

Options start from --preset and are overridden by the config file,
SCRUB_* environment variables, and flags, in increasing priority.

Examples:
  scrub clean page.html
  scrub clean --preset everything --remove-tags script,style https://example.com
  cat snippet.html | scrub clean --beautify=false --report json`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, v, argOrStdin(args))
		},
	}

	flags := cmd.Flags()
	addConfigFlags(flags)
	addSourceFlags(flags)
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("report", "", "write a report to stderr: text, json, jsonl, yaml")
	return cmd
}

func runClean(cmd *cobra.Command, v *viper.Viper, arg string) error {
	settings := loadSettings(v)
	cfg, err := settings.Config()
	if err != nil {
		return err
	}

	var reportFormat output.Format
	if name := v.GetString("report"); name != "" {
		if reportFormat, err = output.ParseFormat(name); err != nil {
			return err
		}
	}

	in, err := loadInput(cmd.Context(), v, cmd.InOrStdin(), arg)
	if err != nil {
		return err
	}
	if !scrub.IsValidHTML(in.HTML) {
		return fmt.Errorf("%s: %w", in.Name, errInvalidHTML)
	}

	logger.Debug("cleaning", "source", in.Name, "preset", settings.PresetName())
	result := scrub.New(cfg).CleanWithStats(in.HTML)

	if reportFormat != "" {
		w, err := output.NewWriter(cmd.ErrOrStderr(), reportFormat)
		if err != nil {
			return err
		}
		if err := w.Write(output.NewReport(in.Name, settings.PresetName(), result)); err != nil {
			return err
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if result.Err != nil {
		return fmt.Errorf("cleaning %s: %w", in.Name, result.Err)
	}
	for _, warn := range result.Warnings {
		logger.Warn("cleaning incomplete", "source", in.Name, "warning", warn.String())
	}

	if path := v.GetString("output"); path != "" {
		if err := os.WriteFile(path, []byte(result.HTML), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		logger.Info("written", "path", path, "size", humanize.Bytes(uint64(result.OutputBytes)))
		return nil
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), result.HTML)
	return err
}
