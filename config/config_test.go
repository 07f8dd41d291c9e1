package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RumenDamyanov/go-seo/config/environment_variables"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "ai", cfg.Engine)
	assert.Equal(t, "openai", cfg.DefaultProvider)
	assert.True(t, cfg.FallbackEnabled)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.False(t, cfg.RateLimiting.Enabled)
	assert.Equal(t, 60, cfg.RateLimiting.RequestsPerMinute)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 3600, cfg.Cache.TTLSeconds)
	assert.Equal(t, "memory", cfg.Cache.Store)
	assert.Equal(t, "seo", cfg.Cache.Namespace)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.yml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "engine: [unclosed")

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
engine: Static
default_provider: Anthropic
fallback_chain: [" OpenAI ", "ollama"]
cache:
  store: redis
  namespace: myapp
providers:
  openai:
    api_key: sk-test
    model: gpt-4o
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "static", cfg.Engine)
	assert.Equal(t, "anthropic", cfg.DefaultProvider)
	assert.Equal(t, []string{"openai", "ollama"}, cfg.FallbackChain)
	assert.Equal(t, "redis", cfg.Cache.Store)
	assert.Equal(t, "myapp", cfg.Cache.Namespace)
	assert.Equal(t, "sk-test", cfg.Providers["openai"].APIKey)
	assert.Equal(t, "gpt-4o", cfg.Providers["openai"].Model)

	// Untouched keys keep their defaults
	assert.True(t, cfg.FallbackEnabled)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestLoadClampsInvalidValues(t *testing.T) {
	path := writeConfigFile(t, `
max_retries: -2
timeout_seconds: 0
cache:
  ttl_seconds: -1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.MaxRetries)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, 3600, cfg.Cache.TTLSeconds)
}

func TestEnvOverrides(t *testing.T) {
	env := &environment_variables.EnvironmentVariables
	saved := *env
	defer func() { *env = saved }()

	env.OPENAI_API_KEY = "sk-env"
	env.OLLAMA_BASE_URL = "http://ollama:11434"
	env.CACHE_URL = "redis://cache:6379"
	env.ADMIN_JWT_SECRET = []byte("secret")
	env.SERVER_PORT = "3000"

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sk-env", cfg.Providers["openai"].APIKey)
	assert.Equal(t, "http://ollama:11434", cfg.Providers["ollama"].BaseURL)
	assert.Equal(t, "redis://cache:6379", cfg.Cache.URL)
	assert.Equal(t, "secret", cfg.Server.AdminSecret)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestEnvOverrideIgnoresBadPort(t *testing.T) {
	env := &environment_variables.EnvironmentVariables
	saved := *env
	defer func() { *env = saved }()

	env.SERVER_PORT = "not-a-port"

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestProviderSettingsFillsDefaults(t *testing.T) {
	cfg := Default()
	cfg.Providers["openai"] = ProviderSettings{APIKey: "sk-test", MaxRetries: 5}

	p := cfg.ProviderSettings(" OpenAI ")

	assert.Equal(t, "sk-test", p.APIKey)
	assert.Equal(t, 5, p.MaxRetries)
	assert.Equal(t, 30, p.TimeoutSeconds)
	assert.Equal(t, 60, p.RequestsPerMinute)
}

func TestProviderSettingsUnknownProvider(t *testing.T) {
	cfg := Default()

	p := cfg.ProviderSettings("gemini")

	assert.Empty(t, p.APIKey)
	assert.Equal(t, 3, p.MaxRetries)
}

func TestChain(t *testing.T) {
	cfg := Default()
	cfg.FallbackChain = []string{"anthropic", "ollama"}
	assert.Equal(t, []string{"anthropic", "ollama"}, cfg.Chain())

	cfg.FallbackChain = nil
	assert.Equal(t, []string{"openai"}, cfg.Chain())

	cfg.DefaultProvider = ""
	assert.Nil(t, cfg.Chain())
}
