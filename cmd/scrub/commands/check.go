package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/scrub/pkg/cleaner/scrub"
)

func newCheckCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file|url|-]",
		Short: "Report whether input is well-formed HTML",
		Long: `Check prints "valid" or "invalid" and exits with status 1 for invalid input.
Input is valid when it contains markup and every tag is closed.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return bindFlags(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(cmd.Context(), v, cmd.InOrStdin(), argOrStdin(args))
			if err != nil {
				return err
			}
			if !scrub.IsValidHTML(in.HTML) {
				fmt.Fprintln(cmd.OutOrStdout(), "invalid")
				return fmt.Errorf("%s: %w", in.Name, errInvalidHTML)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return err
		},
	}
	addSourceFlags(cmd.Flags())
	return cmd
}
