package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dlgerror "github.com/PolyRocketMatt/Delegate-sub000/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"hours", "2h", 2 * time.Hour, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.Duration)
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"seconds", 30 * time.Second, "30s"},
		{"minutes", 5 * time.Minute, "5m0s"},
		{"hours", 2 * time.Hour, "2h0m0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Duration{tt.duration}.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestConfig_applyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	// General defaults
	assert.Equal(t, "delegate", cfg.General.Name)
	assert.Equal(t, "./data", cfg.General.DataDir)
	assert.Equal(t, "info", cfg.General.LogLevel)
	assert.Equal(t, "text", cfg.General.LogFormat)

	// Engine defaults
	assert.Equal(t, 8, cfg.Engine.MaxStealCount)
	assert.False(t, cfg.Engine.Strict)
	assert.False(t, cfg.Engine.Verbose)

	// Completion defaults
	assert.Equal(t, 30*time.Second, cfg.Completion.TTL.Duration)
	assert.Equal(t, 1024, cfg.Completion.MaxEntries)

	// Audit defaults
	assert.Equal(t, filepath.Join("./data", "audit.db"), cfg.Audit.Path)
	assert.Equal(t, 30*24*time.Hour, cfg.Audit.Retention.Duration)

	// Permission defaults
	assert.Equal(t, "console", cfg.Permissions.Default)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad log level", func(c *Config) { c.General.LogLevel = "loud" }, true},
		{"bad log format", func(c *Config) { c.General.LogFormat = "xml" }, true},
		{"json format", func(c *Config) { c.General.LogFormat = "json" }, false},
		{"no workers", func(c *Config) { c.Engine.MaxStealCount = -1 }, true},
		{"negative ttl", func(c *Config) { c.Completion.TTL.Duration = -time.Second }, true},
		{"watch without file", func(c *Config) { c.Permissions.Watch = true }, true},
		{"watch with file", func(c *Config) {
			c.Permissions.Watch = true
			c.Permissions.File = "permissions.yaml"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, dlgerror.HasCode(err, dlgerror.CodeInvalidConfig), "code = %v", dlgerror.GetCode(err))
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.toml")
	require.Error(t, err)
	assert.True(t, dlgerror.HasCode(err, dlgerror.CodeConfigError), "code = %v", dlgerror.GetCode(err))
}

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "delegate.toml")

	configContent := `
[general]
name = "test-delegate"
data_dir = "/var/lib/delegate"

[engine]
strict = true
max_steal_count = 2
collect_rule_violations = true

[completion]
ttl = "5s"

[permissions]
file = "$DELEGATE_TEST_DIR/permissions.yaml"
`

	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	t.Setenv("DELEGATE_TEST_DIR", tmpDir)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "test-delegate", cfg.General.Name)
	assert.True(t, cfg.Engine.Strict)
	assert.True(t, cfg.Engine.CollectRuleViolations)
	assert.Equal(t, 2, cfg.Engine.MaxStealCount)
	assert.Equal(t, 5*time.Second, cfg.Completion.TTL.Duration)
	assert.Equal(t, filepath.Join(tmpDir, "permissions.yaml"), cfg.Permissions.File)

	// Defaults follow the configured data directory
	assert.Equal(t, "/var/lib/delegate/audit.db", cfg.Audit.Path)
}

func TestLoad_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[engine\nstrict = true"},
		{"bad duration", "[completion]\nttl = \"soon\""},
		{"bad value", "[general]\nlog_level = \"shout\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "delegate.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			assert.True(t, dlgerror.HasCode(err, dlgerror.CodeInvalidConfig), "Load() error = %v", err)
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[general]\nname = \"from-env\"\n"), 0644))
	t.Setenv(EnvConfigPath, path)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.General.Name)
}

func TestLoadFromEnv_NoConfigFound(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("HOME", t.TempDir())

	originalWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(originalWd)

	_, err := LoadFromEnv()
	assert.Error(t, err)
}
