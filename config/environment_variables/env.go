package environment_variables

import (
	"fmt"
	"os"
	"reflect"
	"strings"
)

type EnvironmentVariable struct {
	SEO_CONFIG_PATH    string
	OPENAI_API_KEY     string
	ANTHROPIC_API_KEY  string
	GEMINI_API_KEY     string
	OLLAMA_BASE_URL    string
	CACHE_URL          string
	REDIS_URL          string
	CACHE_PASSWORD     string
	CACHE_DB           string
	CACHE_SQLITE_PATH  string
	DB_POSTGRESQL_DSN  string
	ADMIN_JWT_SECRET   []byte
	ALLOWED_CORS_HOSTS []string
	SERVER_PORT        string
	LOG_LEVEL          string
	LOG_FORMAT         string
}

func (ev *EnvironmentVariable) LoadFromEnv() {
	v := reflect.ValueOf(ev).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		envKey := field.Name
		envValue := os.Getenv(envKey)
		if envValue == "" {
			fmt.Printf("Missing SYSENV: %s\n", envKey)
			continue
		}
		switch v.Field(i).Interface().(type) {
		case string:
			v.Field(i).SetString(envValue)
		case []byte:
			v.Field(i).SetBytes([]byte(envValue))
		case []string:
			parts := strings.Split(envValue, ",")
			for j := range parts {
				parts[j] = strings.TrimSpace(parts[j])
			}
			v.Field(i).Set(reflect.ValueOf(parts))
		}
	}
}

// Singleton
var EnvironmentVariables = EnvironmentVariable{}
