package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
	dlglog "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/log"
)

// EnvConfigPath names the variable consulted by LoadFromEnv
const EnvConfigPath = "DELEGATE_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General     GeneralConfig     `toml:"general"`
	Engine      EngineConfig      `toml:"engine"`
	Completion  CompletionConfig  `toml:"completion"`
	Audit       AuditConfig       `toml:"audit"`
	Permissions PermissionsConfig `toml:"permissions"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name"`
	DataDir   string `toml:"data_dir"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	LogFile   string `toml:"log_file"`
}

// EngineConfig holds dispatch settings
type EngineConfig struct {
	Verbose               bool `toml:"verbose"`
	Strict                bool `toml:"strict"`
	MaxStealCount         int  `toml:"max_steal_count"`
	CollectRuleViolations bool `toml:"collect_rule_violations"`
	EnableAudit           bool `toml:"enable_audit"`
}

// CompletionConfig holds completion cache settings
type CompletionConfig struct {
	TTL        Duration `toml:"ttl"`
	MaxEntries int      `toml:"max_entries"`
}

// AuditConfig holds the dispatch audit store settings
type AuditConfig struct {
	Enabled   bool     `toml:"enabled"`
	Path      string   `toml:"path"`
	Retention Duration `toml:"retention"`
}

// PermissionsConfig holds the permission file settings
type PermissionsConfig struct {
	File    string `toml:"file"`
	Watch   bool   `toml:"watch"`
	Default string `toml:"default_commander"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, dlgerror.Newf("config file not found: %s", path).
			WithCode(dlgerror.CodeConfigError).
			WithDetail("path", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, dlgerror.Wrap(err, "failed to parse config").
			WithCode(dlgerror.CodeInvalidConfig).
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from DELEGATE_CONFIG or the default
// locations
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		defaultPaths := []string{
			"./configs/delegate.toml",
			"./delegate.toml",
			filepath.Join(os.Getenv("HOME"), ".config/delegate/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, dlgerror.Newf("no config file found, set %s or create configs/delegate.toml", EnvConfigPath).
			WithCode(dlgerror.CodeConfigError)
	}

	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "delegate"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Engine
	if c.Engine.MaxStealCount == 0 {
		c.Engine.MaxStealCount = 8
	}

	// Completion
	if c.Completion.TTL.Duration == 0 {
		c.Completion.TTL.Duration = 30 * time.Second
	}
	if c.Completion.MaxEntries == 0 {
		c.Completion.MaxEntries = 1024
	}

	// Audit
	if c.Audit.Path == "" {
		c.Audit.Path = filepath.Join(c.General.DataDir, "audit.db")
	}
	if c.Audit.Retention.Duration == 0 {
		c.Audit.Retention.Duration = 30 * 24 * time.Hour
	}

	// Permissions
	if c.Permissions.Default == "" {
		c.Permissions.Default = "console"
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
	c.Audit.Path = os.ExpandEnv(c.Audit.Path)
	c.Permissions.File = os.ExpandEnv(c.Permissions.File)
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var problems []string

	if _, err := dlglog.ParseLevel(c.General.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("general.log_level: %v", err))
	}
	switch strings.ToLower(c.General.LogFormat) {
	case "text", "console", "json", "logfmt":
	default:
		problems = append(problems, fmt.Sprintf("general.log_format: unknown format %q", c.General.LogFormat))
	}
	if c.Engine.MaxStealCount < 1 {
		problems = append(problems, "engine.max_steal_count: must be at least 1")
	}
	if c.Completion.TTL.Duration < 0 {
		problems = append(problems, "completion.ttl: must not be negative")
	}
	if c.Completion.MaxEntries < 0 {
		problems = append(problems, "completion.max_entries: must not be negative")
	}
	if c.Audit.Retention.Duration < 0 {
		problems = append(problems, "audit.retention: must not be negative")
	}
	if c.Permissions.Watch && c.Permissions.File == "" {
		problems = append(problems, "permissions.watch: requires permissions.file")
	}

	if len(problems) > 0 {
		return dlgerror.New("invalid configuration: "+strings.Join(problems, "; ")).
			WithCode(dlgerror.CodeInvalidConfig).
			WithDetail("problems", len(problems))
	}
	return nil
}
