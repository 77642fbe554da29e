package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolyRocketMatt/Delegate-sub000/internal/audit"
)

var (
	auditLimit     int
	auditCommander string
	auditFeedback  string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recorded dispatches",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			printError("setup failed", err)
			return err
		}
		defer a.Close()

		if a.audit == nil {
			return errors.New("audit store disabled, set [audit] enabled = true")
		}

		entries, err := a.audit.Query(cmd.Context(), auditFilter())
		if err != nil {
			printError("query failed", err)
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "no dispatches recorded")
			return nil
		}
		for _, e := range entries {
			status := "handled"
			if !e.Handled {
				status = "rejected"
			}
			fmt.Fprintf(out, "%s  %-10s %-8s %-18s %s %s\n",
				e.Timestamp.Format("2006-01-02 15:04:05"),
				e.Commander, status, e.Feedback, e.Command, strings.Join(e.Arguments, " "))
			for _, r := range e.Results {
				if r.Succeeded {
					fmt.Fprintf(out, "    %s = %s (%dms)\n", r.Action, r.Value, r.DurationMS)
				} else {
					fmt.Fprintf(out, "    %s failed: %s (%dms)\n", r.Action, r.Error, r.DurationMS)
				}
			}
		}
		return nil
	},
}

func auditFilter() audit.Filter {
	return audit.Filter{
		Commander: auditCommander,
		Feedback:  auditFeedback,
		Limit:     auditLimit,
	}
}

func init() {
	auditCmd.Flags().IntVarP(&auditLimit, "limit", "n", 20, "number of entries")
	auditCmd.Flags().StringVar(&auditCommander, "commander", "", "only entries of this commander")
	auditCmd.Flags().StringVar(&auditFeedback, "feedback", "", "only entries with this feedback type")
	rootCmd.AddCommand(auditCmd)
}
