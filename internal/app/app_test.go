package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stockdash.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewApp(t *testing.T) {
	path := writeTestConfig(t, `
environment = "test"

[server]
host = "127.0.0.1"
port = 9090

[clients.eodhd]
api_key = "test-key"
rate_limit = 5

[analysis]
news_limit = 3

[logging]
level = "disabled"
`)

	a, err := NewApp(path)
	require.NoError(t, err)

	assert.Equal(t, "test", a.Config.Environment)
	assert.Equal(t, 9090, a.Config.Server.Port)
	assert.Equal(t, 3, a.Config.Analysis.NewsLimit)
	assert.NotNil(t, a.MarketClient)
	assert.NotNil(t, a.Analysis)
	assert.NotNil(t, a.Charts)
	assert.False(t, a.StartupTime.IsZero())
}

func TestNewAppMissingAPIKey(t *testing.T) {
	path := writeTestConfig(t, `
[logging]
level = "disabled"
`)
	t.Setenv("EODHD_API_KEY", "")
	t.Setenv("STOCKDASH_EODHD_API_KEY", "")

	_, err := NewApp(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestNewAppEnvOverrides(t *testing.T) {
	path := writeTestConfig(t, `
[clients.eodhd]
api_key = "test-key"

[logging]
level = "disabled"
`)
	t.Setenv("STOCKDASH_PORT", "7070")
	t.Setenv("STOCKDASH_ENV", "production")

	a, err := NewApp(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, a.Config.Server.Port)
	assert.True(t, a.Config.IsProduction())
}
