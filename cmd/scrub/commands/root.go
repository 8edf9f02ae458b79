// Package commands implements the CLI commands for scrub.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/scrub/internal/logger"
	"github.com/jmylchreest/scrub/internal/version"
)

// errInvalidHTML is returned when input fails the well-formedness check.
var errInvalidHTML = errors.New("invalid HTML")

func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:   "scrub",
		Short: "Strip classes and noise attributes from HTML",
		Long: `Scrub removes class names, inline styles, ids, data-*, aria-* and event
handler attributes from HTML, deletes unwanted tags, and collapses wrapper
and empty divs.

Examples:
  # Strip classes from a file
  scrub clean page.html

  # Strip everything from stdin, keep grid classes
  cat page.html | scrub clean --preset everything --preserve-classes '/^col-/'

  # Compare presets on a live page
  scrub compare https://example.com

  # Check whether a fragment is well formed
  scrub check snippet.html`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(v); err != nil {
				return err
			}
			logger.Init(logger.Options{
				Debug:  v.GetBool("debug"),
				Quiet:  v.GetBool("quiet"),
				JSON:   v.GetBool("log_json"),
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	// Global flags
	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.scrub.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "only log errors")
	flags.Bool("log-json", false, "log as JSON")
	_ = bindFlags(v, flags)

	root.AddCommand(
		newCleanCmd(v),
		newCheckCmd(v),
		newCompareCmd(v),
		newVersionCmd(),
	)
	return root
}

func initConfig(v *viper.Viper) error {
	cfgFile := v.GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".scrub")
		v.SetConfigType("yaml")
	}

	// Environment variables
	v.SetEnvPrefix("SCRUB")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
		return nil
	}
	logger.Debug("config loaded", "file", v.ConfigFileUsed())
	return nil
}

// bindFlags binds every flag in fs to the viper key with dashes replaced by
// underscores, so --strip-ids, strip_ids: and SCRUB_STRIP_IDS are one setting.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if bindErr := v.BindPFlag(flagKey(f.Name), f); bindErr != nil && err == nil {
			err = bindErr
		}
	})
	return err
}

func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// argOrStdin returns the single positional source, defaulting to stdin.
func argOrStdin(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// Execute runs the root command.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(viper.New()).ExecuteContext(ctx); err != nil {
		logger.Error("command failed", "error", err)
		return err
	}
	return nil
}
