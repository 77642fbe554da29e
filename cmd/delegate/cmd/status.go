package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/PolyRocketMatt/Delegate-sub000/internal/tree"
	"github.com/PolyRocketMatt/Delegate-sub000/pkg/core/health"
	"github.com/PolyRocketMatt/Delegate-sub000/pkg/core/version"
)

var errUnhealthy = errors.New("one or more checks failed")

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the command tree, audit store and permission file",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			printError("setup failed", err)
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		report := a.checks().Check(ctx)
		fmt.Fprint(cmd.OutOrStdout(), report.String())
		if !report.Healthy() {
			return errUnhealthy
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// checks builds the diagnostic registry for the wired components
func (a *app) checks() *health.Registry {
	r := health.NewRegistry(a.cfg.General.Name, version.Engine)

	r.Register("tree", func(ctx context.Context) health.Result {
		var commands, unverified int
		a.engine.Tree().Walk(func(node *tree.Node, depth int) {
			commands++
			if !node.IsVerified() {
				unverified++
			}
		})
		hits, misses := a.engine.CompletionStats()
		result := health.Result{
			Message: fmt.Sprintf("%d roots, %d commands", a.engine.Tree().Len(), commands),
			Details: map[string]interface{}{
				"unverified":        unverified,
				"workers":           a.engine.Workers(),
				"completion_hits":   hits,
				"completion_misses": misses,
			},
		}
		switch {
		case commands == 0:
			result.Status = health.StatusUnhealthy
			result.Message = "no commands registered"
		case unverified > 0:
			result.Status = health.StatusDegraded
			result.Message += fmt.Sprintf(", %d unverified", unverified)
		}
		return result
	})

	if a.audit == nil {
		r.Register("audit", health.Disabled())
	} else {
		r.Register("audit", func(ctx context.Context) health.Result {
			stats, err := a.audit.Stats(ctx)
			if err != nil {
				return health.Result{Status: health.StatusUnhealthy, Message: err.Error()}
			}
			return health.Result{
				Message: fmt.Sprintf("%d entries in %s", stats["total"], a.cfg.Audit.Path),
				Details: map[string]interface{}{"stats": stats},
			}
		})
	}

	if a.permissions == nil {
		r.Register("permissions", health.FileCheck(a.cfg.Permissions.File, true))
	} else {
		file := health.FileCheck(a.permissions.Path(), false)
		r.Register("permissions", func(ctx context.Context) health.Result {
			result := file(ctx)
			if result.Status == health.StatusHealthy {
				result.Message = fmt.Sprintf("%s (%d users)", result.Message, len(a.permissions.Users()))
			}
			return result
		})
	}
	return r
}
