package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolyRocketMatt/Delegate-sub000/internal/tree"
)

var treeCmd = &cobra.Command{
	Use:   "tree [command...]",
	Short: "Show the command tree, or the usage of one command",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			printError("setup failed", err)
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		if len(args) > 0 {
			usage, ok := a.engine.Usage(args[0], args[1:]...)
			if !ok {
				return fmt.Errorf("unknown command %s", args[0])
			}
			fmt.Fprintln(out, usage)
			return nil
		}

		a.engine.Tree().Walk(func(node *tree.Node, depth int) {
			line := strings.Repeat("  ", depth) + node.Name()
			if aliases := node.Command().Aliases(); len(aliases) > 0 {
				line += " (" + strings.Join(aliases, ", ") + ")"
			}
			if !node.IsVerified() {
				line += " [unverified]"
			}
			if desc := node.Command().Description(); desc != "" {
				line += "  - " + desc
			}
			fmt.Fprintln(out, line)
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
