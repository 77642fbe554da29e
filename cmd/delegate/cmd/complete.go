package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete [tokens...]",
	Short: "List completion candidates for the last token",
	Long: `List completion candidates for the last token. Pass an empty last
token to list everything at that level:

  delegate complete test ""
  delegate complete test r`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			printError("setup failed", err)
			return err
		}
		defer a.Close()

		for _, candidate := range a.engine.Complete(args) {
			fmt.Fprintln(cmd.OutOrStdout(), candidate)
		}
		return nil
	},
}

func init() {
	completeCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(completeCmd)
}
