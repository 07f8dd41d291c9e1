package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/RumenDamyanov/go-seo/config/environment_variables"
	"gopkg.in/yaml.v3"
)

const Version = "0.1.0"

// Config is the full configuration surface of the service. Values come from
// built-in defaults, then the optional YAML file, then environment overrides,
// in that order.
type Config struct {
	Server struct {
		Port        int    `yaml:"port"`
		AdminSecret string `yaml:"admin_secret"`
	} `yaml:"server"`

	// Engine selects how metadata is produced: "ai" goes through the
	// provider chain, "static" uses template composition only.
	Engine string `yaml:"engine"`

	DefaultProvider string   `yaml:"default_provider"`
	FallbackChain   []string `yaml:"fallback_chain"`
	FallbackEnabled bool     `yaml:"fallback_enabled"`

	MaxRetries     int `yaml:"max_retries"`
	TimeoutSeconds int `yaml:"timeout_seconds"`

	RateLimiting struct {
		Enabled           bool `yaml:"enabled"`
		RequestsPerMinute int  `yaml:"requests_per_minute"`
		BlockOnLimit      bool `yaml:"block_on_limit"`
	} `yaml:"rate_limiting"`

	Cache struct {
		Enabled    bool   `yaml:"enabled"`
		TTLSeconds int    `yaml:"ttl_seconds"`
		Store      string `yaml:"store"`
		Namespace  string `yaml:"namespace"`
		URL        string `yaml:"url"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"cache"`

	Providers map[string]ProviderSettings `yaml:"providers"`

	DBURL string `yaml:"db_url"`
}

// ProviderSettings carries per-backend tuning. Zero fields fall back to the
// top-level defaults, see Config.ProviderSettings.
type ProviderSettings struct {
	APIKey            string `yaml:"api_key"`
	BaseURL           string `yaml:"base_url"`
	Model             string `yaml:"model"`
	MaxRetries        int    `yaml:"max_retries"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Engine = "ai"
	cfg.DefaultProvider = "openai"
	cfg.FallbackEnabled = true
	cfg.MaxRetries = 3
	cfg.TimeoutSeconds = 30
	cfg.RateLimiting.Enabled = false
	cfg.RateLimiting.RequestsPerMinute = 60
	cfg.RateLimiting.BlockOnLimit = false
	cfg.Cache.Enabled = true
	cfg.Cache.TTLSeconds = 3600
	cfg.Cache.Store = "memory"
	cfg.Cache.Namespace = "seo"
	cfg.Providers = map[string]ProviderSettings{}
	return cfg
}

// Load reads the YAML file at path on top of the defaults. An empty path
// yields defaults plus environment overrides only.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	cfg.normalize()
	return cfg, nil
}

// Provide builds the configuration for dependency injection, using
// SEO_CONFIG_PATH when set.
func Provide() (*Config, error) {
	return Load(environment_variables.EnvironmentVariables.SEO_CONFIG_PATH)
}

func (c *Config) applyEnvOverrides() {
	env := &environment_variables.EnvironmentVariables
	setKey := func(name, key string) {
		if key == "" {
			return
		}
		p := c.Providers[name]
		p.APIKey = key
		c.Providers[name] = p
	}
	setKey("openai", env.OPENAI_API_KEY)
	setKey("anthropic", env.ANTHROPIC_API_KEY)
	setKey("gemini", env.GEMINI_API_KEY)
	if env.OLLAMA_BASE_URL != "" {
		p := c.Providers["ollama"]
		p.BaseURL = env.OLLAMA_BASE_URL
		c.Providers["ollama"] = p
	}
	if env.CACHE_URL != "" {
		c.Cache.URL = env.CACHE_URL
	}
	if env.CACHE_SQLITE_PATH != "" {
		c.Cache.SQLitePath = env.CACHE_SQLITE_PATH
	}
	if env.DB_POSTGRESQL_DSN != "" {
		c.DBURL = env.DB_POSTGRESQL_DSN
	}
	if len(env.ADMIN_JWT_SECRET) > 0 {
		c.Server.AdminSecret = string(env.ADMIN_JWT_SECRET)
	}
	if env.SERVER_PORT != "" {
		if port, err := strconv.Atoi(env.SERVER_PORT); err == nil {
			c.Server.Port = port
		}
	}
}

func (c *Config) normalize() {
	c.Engine = strings.ToLower(strings.TrimSpace(c.Engine))
	if c.Engine == "" {
		c.Engine = "ai"
	}
	c.DefaultProvider = strings.ToLower(strings.TrimSpace(c.DefaultProvider))
	for i, name := range c.FallbackChain {
		c.FallbackChain[i] = strings.ToLower(strings.TrimSpace(name))
	}
	if c.MaxRetries < 1 {
		c.MaxRetries = 1
	}
	if c.TimeoutSeconds < 1 {
		c.TimeoutSeconds = 30
	}
	if c.Cache.TTLSeconds < 1 {
		c.Cache.TTLSeconds = 3600
	}
	if c.Providers == nil {
		c.Providers = map[string]ProviderSettings{}
	}
}

// ProviderSettings returns the settings for one backend with the top-level
// defaults filled into unset fields.
func (c *Config) ProviderSettings(name string) ProviderSettings {
	p := c.Providers[strings.ToLower(strings.TrimSpace(name))]
	if p.MaxRetries == 0 {
		p.MaxRetries = c.MaxRetries
	}
	if p.TimeoutSeconds == 0 {
		p.TimeoutSeconds = c.TimeoutSeconds
	}
	if p.RequestsPerMinute == 0 {
		p.RequestsPerMinute = c.RateLimiting.RequestsPerMinute
	}
	return p
}

// Chain returns the configured fallback order, defaulting to the single
// default provider when no chain is set.
func (c *Config) Chain() []string {
	if len(c.FallbackChain) > 0 {
		return c.FallbackChain
	}
	if c.DefaultProvider != "" {
		return []string{c.DefaultProvider}
	}
	return nil
}
