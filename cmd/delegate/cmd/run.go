package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolyRocketMatt/Delegate-sub000/internal/engine"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/shell"
)

var errNotHandled = errors.New("command not handled")

var runCmd = &cobra.Command{
	Use:   "run <command> [arguments...]",
	Short: "Dispatch a single command",
	Long: `Dispatch a single command. Arguments are positional or identifier=value;
once a named argument is used the rest must be named as well.

Examples:
  delegate run test run add a
  delegate run calc 7 b=3 op=mul`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			printError("setup failed", err)
			return err
		}
		defer a.Close()

		report, err := a.engine.Dispatch(cmd.Context(), engine.DispatchInfo{
			Commander: a.commander,
			Command:   args[0],
			Arguments: args[1:],
		})
		fmt.Fprintln(cmd.OutOrStdout(), shell.RenderReport(report, err))
		if err != nil {
			return err
		}
		if !report.Handled {
			return errNotHandled
		}
		return nil
	},
}

func init() {
	runCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(runCmd)
}
