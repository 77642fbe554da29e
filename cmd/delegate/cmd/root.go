package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/audit"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/command"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/demo"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/engine"
	"github.com/PolyRocketMatt/Delegate-sub000/internal/permission"
	"github.com/PolyRocketMatt/Delegate-sub000/pkg/core/config"
	"github.com/PolyRocketMatt/Delegate-sub000/pkg/core/logging"
)

var (
	cfgFile   string
	verbose   bool
	strict    bool
	commander string
)

var rootCmd = &cobra.Command{
	Use:   "delegate",
	Short: "Delegate - command registration and dispatch engine",
	Long: `Delegate declares commands as attribute chains, compiles them into a
command tree and dispatches text invocations against it.

The bundled demo command set:
  test   - nested sub-commands (test run add a)
  calc   - typed arguments, rules and ordered actions
  batch  - asynchronous jobs on the worker pool`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $DELEGATE_CONFIG or ./configs/delegate.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "report rejected dispatches as errors")
	rootCmd.PersistentFlags().StringVar(&commander, "as", "", "commander to dispatch as (default: permissions.default_commander)")
}

// app is the wired engine with its collaborators
type app struct {
	cfg         *config.Config
	logger      *logging.Logger
	engine      *engine.Engine
	audit       audit.Store
	permissions *permission.Store
	commander   command.Commander
	closers     []io.Closer
}

// loadConfig reads --config, or the environment, or falls back to defaults
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		if dlgerror.HasCode(err, dlgerror.CodeConfigError) && os.Getenv(config.EnvConfigPath) == "" {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// newApp builds the engine from configuration and flags and registers the
// demo commands
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Engine.Verbose = true
		cfg.General.LogLevel = "debug"
	}
	if strict {
		cfg.Engine.Strict = true
	}

	a := &app{cfg: cfg}

	logCfg := logging.DefaultLoggerConfig(cfg.General.Name)
	logCfg.Level = cfg.General.LogLevel
	logCfg.Format = cfg.General.LogFormat
	if cfg.General.LogFile != "" {
		f, err := logging.OpenLogFile(cfg.General.LogFile)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, f)
		logCfg.Output = f
	}
	a.logger = logging.Wrap(logging.NewLogger(logCfg), "cli")

	var feedback engine.Feedback
	if cfg.Audit.Enabled {
		store, err := audit.NewSQLiteStore(audit.SQLiteConfig{Path: cfg.Audit.Path})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.audit = store
		a.closers = append(a.closers, store)
		feedback = audit.Sink(store)

		if removed, err := store.Prune(ctx, cfg.Audit.Retention.Duration); err != nil {
			a.logger.Warn("Audit prune failed", "error", err)
		} else if removed > 0 {
			a.logger.Debug("Pruned audit entries", "removed", removed)
		}
	}

	a.engine = engine.New(engineOptions(cfg, a.logger, feedback))
	if err := demo.Register(a.engine, a.logger); err != nil {
		a.Close()
		return nil, err
	}

	name := commander
	if name == "" {
		name = cfg.Permissions.Default
	}
	if cfg.Permissions.File != "" {
		store, err := permission.Load(cfg.Permissions.File, a.logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.permissions = store
		a.commander = store.Commander(name)
	} else {
		a.commander = command.NewStatic(name, command.Wildcard)
	}
	return a, nil
}

// engineOptions maps the [engine] and [completion] sections onto the engine
func engineOptions(cfg *config.Config, logger *logging.Logger, feedback engine.Feedback) engine.Options {
	opts := engine.DefaultOptions()
	opts.Logger = logger
	opts.Verbose = cfg.Engine.Verbose
	opts.Strict = cfg.Engine.Strict
	opts.MaxStealCount = cfg.Engine.MaxStealCount
	opts.CollectRuleViolations = cfg.Engine.CollectRuleViolations
	opts.EnableAudit = cfg.Engine.EnableAudit
	opts.CompletionTTL = cfg.Completion.TTL.Duration
	opts.CompletionEntries = cfg.Completion.MaxEntries
	opts.Feedback = feedback
	opts.Notifier = func(name string) {
		logger.Debug("Command exposed", "command", name)
	}
	return opts
}

// Close releases the audit store and log file
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
	a.closers = nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
