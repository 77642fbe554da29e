package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolyRocketMatt/Delegate-sub000/internal/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive dispatch shell",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			printError("setup failed", err)
			return err
		}
		defer a.Close()

		if a.permissions != nil && a.cfg.Permissions.Watch {
			if err := a.permissions.Watch(cmd.Context(), nil); err != nil {
				a.logger.Warn("Permission hot-reload unavailable", "error", err)
			}
		}

		return shell.Run(shell.Config{
			Engine:    a.engine,
			Commander: a.commander,
			Title:     "Delegate " + a.cfg.General.Name,
		})
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
