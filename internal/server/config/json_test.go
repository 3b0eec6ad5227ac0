package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":      "www.example:9000",
		"database_dsn":            "postgres://db",
		"secret_key":              "my_secret_key",
		"frontend_url":            "https://shop.example",
		"cookie_max_age":          "24h",
		"cookie_secure":           true,
		"reset_token_ttl":         "15m",
		"smtp_host":               "smtp.example",
		"smtp_port":               2525,
		"smtp_username":           "user",
		"smtp_password":           "password",
		"smtp_from":               "shop@example",
		"redis_addr":              "redis:6379",
		"reset_requests_per_hour": 10,
		"log_level":               "warn",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, &Config{
			EndpointAddrHTTP:     "www.example:9000",
			DatabaseDSN:          "postgres://db",
			SecretKey:            "my_secret_key",
			FrontendURL:          "https://shop.example",
			CookieMaxAge:         24 * time.Hour,
			CookieSecure:         true,
			ResetTokenTTL:        15 * time.Minute,
			SMTPHost:             "smtp.example",
			SMTPPort:             2525,
			SMTPUsername:         "user",
			SMTPPassword:         "password",
			SMTPFrom:             "shop@example",
			RedisAddr:            "redis:6379",
			ResetRequestsPerHour: 10,
			LogLevel:             "warn",
		}, cfg)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"secret_key":   "only-this",
			"database_dsn": "",
		})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		cfg.DatabaseDSN = "postgres://was-set"
		parseJson(cfg)

		assert.Equal(t, "only-this", cfg.SecretKey)
		assert.Equal(t, "", cfg.DatabaseDSN, "explicit empty DSN selects memory store")
		assert.Equal(t, ":4444", cfg.EndpointAddrHTTP)
		assert.Equal(t, time.Hour, cfg.ResetTokenTTL)
	})

	t.Run("no config flag means no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddrHTTP: "defaults:1234", SecretKey: "key"}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, "key", cfg.SecretKey)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
