package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv points ENV_FILE at an empty temp dir so a developer's .env
// does not leak into the test
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, key := range []string{
		TokenKey, "PORT", "HOST", "GITHUB_OWNER", "GITHUB_REPO", "GITHUB_PATH",
		"RATE_LIMIT_RPS", "LOG_LEVEL", "ALLOWED_ORIGINS", "CRAWL_TIMEOUT_SECONDS", "OTEL_ENABLED",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	cfg := LoadWithDefaults()

	assert.NotNil(t, cfg)
	assert.Equal(t, 8091, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "test-token", cfg.GitHubToken)
	assert.Equal(t, "AndreJorgeSenaiBA/dados", cfg.Repository())
}

func TestLoadDefaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.GitHubToken)
	assert.Equal(t, "AndreJorgeSenaiBA", cfg.GitHubOwner)
	assert.Equal(t, "dados", cfg.GitHubRepo)
	assert.Equal(t, "", cfg.GitHubPath)
	assert.Equal(t, "Repox-App", cfg.GitHubUserAgent)
	assert.Equal(t, time.Duration(0), cfg.CrawlTimeout)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.False(t, cfg.OTelEnabled)
}

func TestLoadMissingTokenIsNotALoadError(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.RequireGitHubToken()
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, TokenKey, cfgErr.Key)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
}

func TestLoadWithEnvVars(t *testing.T) {
	isolateEnv(t)
	t.Setenv(TokenKey, "ghp_test")
	t.Setenv("PORT", "9000")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GITHUB_PATH", "/gallery/")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CRAWL_TIMEOUT_SECONDS", "45")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ghp_test", cfg.GitHubToken)
	assert.NoError(t, cfg.RequireGitHubToken())
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "gallery", cfg.GitHubPath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 45*time.Second, cfg.CrawlTimeout)
	assert.True(t, cfg.OTelEnabled)
}

func TestLoadFromEnvFile(t *testing.T) {
	isolateEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GITHUB_TOKEN=from-file\nGITHUB_REPO=media\n"), 0600))
	t.Setenv("ENV_FILE", envFile)
	// godotenv does not override variables that are already set, even when empty
	os.Unsetenv(TokenKey)
	os.Unsetenv("GITHUB_REPO")
	t.Cleanup(func() {
		os.Unsetenv(TokenKey)
		os.Unsetenv("GITHUB_REPO")
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.GitHubToken)
	assert.Equal(t, "media", cfg.GitHubRepo)
	assert.Equal(t, envFile, cfg.EnvFile)
}

func TestLoadRejectsBadRateLimit(t *testing.T) {
	isolateEnv(t)
	t.Setenv("RATE_LIMIT_RPS", "-1")

	_, err := Load()
	assert.Error(t, err)
}

func TestRequireGitHubToken_Whitespace(t *testing.T) {
	cfg := LoadWithDefaults()
	cfg.GitHubToken = "   "
	assert.Error(t, cfg.RequireGitHubToken())
}

func TestConfigAddr(t *testing.T) {
	cfg := LoadWithDefaults()
	assert.Equal(t, "0.0.0.0:8091", cfg.Addr())
}
