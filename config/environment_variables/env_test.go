package environment_variables

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SEO_CONFIG_PATH", "/etc/seo/config.yml")
	t.Setenv("ADMIN_JWT_SECRET", "topsecret")
	t.Setenv("ALLOWED_CORS_HOSTS", "a.example.com, b.example.com")

	ev := EnvironmentVariable{}
	ev.LoadFromEnv()

	assert.Equal(t, "/etc/seo/config.yml", ev.SEO_CONFIG_PATH)
	assert.Equal(t, []byte("topsecret"), ev.ADMIN_JWT_SECRET)
	assert.Equal(t, []string{"a.example.com", "b.example.com"}, ev.ALLOWED_CORS_HOSTS)
}

func TestLoadFromEnvLeavesUnsetFieldsAlone(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	ev := EnvironmentVariable{OPENAI_API_KEY: "keep-me"}
	ev.LoadFromEnv()

	assert.Equal(t, "keep-me", ev.OPENAI_API_KEY)
}
