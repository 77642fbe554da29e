package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolyRocketMatt/Delegate-sub000/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Current())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
