package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets keys for the duration of the test; godotenv never overrides a
// variable that is present, even when empty.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadServerConfig_Defaults(t *testing.T) {
	clearEnv(t, "APP_PORT", "APP_ENV", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "REFERENCE_TABLES")

	config, err := LoadServerConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, 8080, config.Port)
	assert.Equal(t, ":8080", config.Addr())
	assert.Equal(t, "development", config.Env)
	assert.Equal(t, "info", config.LogLevel)
	assert.Empty(t, config.CORSAllowedOrigins)
	assert.False(t, config.IsProduction())
}

func TestLoadServerConfig_FromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.jp, https://b.example.jp")
	t.Setenv("REFERENCE_TABLES", "/etc/premium/reference.yaml")

	config, err := LoadServerConfig(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, 9090, config.Port)
	assert.True(t, config.IsProduction())
	assert.Equal(t, []string{"https://a.example.jp", "https://b.example.jp"}, config.CORSAllowedOrigins)
	assert.Equal(t, "/etc/premium/reference.yaml", config.ReferencePath)
}

func TestLoadServerConfig_EnvFile(t *testing.T) {
	clearEnv(t, "APP_PORT", "LOG_LEVEL")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=7070\nLOG_LEVEL=warn\n"), 0o600))

	config, err := LoadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, config.Port)
	assert.Equal(t, "warn", config.LogLevel)
}

func TestLoadServerConfig_Invalid(t *testing.T) {
	t.Setenv("APP_PORT", "eighty")
	_, err := LoadServerConfig(filepath.Join(t.TempDir(), "absent.env"))
	assert.ErrorContains(t, err, "invalid APP_PORT")

	t.Setenv("APP_PORT", "8080")
	t.Setenv("LOG_LEVEL", "verbose")
	_, err = LoadServerConfig(filepath.Join(t.TempDir(), "absent.env"))
	assert.ErrorContains(t, err, "LOG_LEVEL")
}
