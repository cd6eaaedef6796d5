package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[store]
path = "/tmp/proyo.db"

[llm]
provider = "gemini"
timeout = "45s"

[coach]
enabled = false
timeout = "5s"

[notifications]
enabled = false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/proyo.db", cfg.Store.Path)
	assert.Equal(t, 50, cfg.Store.KeepSnapshots, "unset keys keep their default")
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.False(t, cfg.Coach.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Coach.Timeout)
	assert.False(t, cfg.Notifications.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[llm]
provider = "gemini"
model = "gemini-2.5-flash"
`)
	t.Setenv("PROYO_LLM_PROVIDER", "openai")
	t.Setenv("PROYO_COACH_TIMEOUT", "3s")
	t.Setenv("PROYO_DB", "/var/lib/proyo.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, 3*time.Second, cfg.Coach.Timeout)
	assert.Equal(t, "/var/lib/proyo.db", cfg.Store.Path)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", "[store\npath = 1"},
		{"keep snapshots", "[store]\nkeep_snapshots = 0"},
		{"negative retries", "[llm]\nmax_retries = -1"},
		{"zero coach timeout", "[coach]\ntimeout = \"0s\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "proyo", "config.toml"), DefaultPath())
}
