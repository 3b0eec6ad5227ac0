// Package config handles configuration for the storefront server: defaults,
// an optional JSON file, STOREFRONT_* environment variables and finally
// command-line flags, each layer overriding the previous one.
package config

import "time"

// Config holds runtime settings for the storefront server.
//
// An empty DatabaseDSN selects the in-memory store; an empty SMTPHost makes
// outgoing mail go to the log; an empty RedisAddr disables the reset-request
// rate limit.
type Config struct {
	EndpointAddrHTTP     string        `env:"ADDRESS"`
	DatabaseDSN          string        `env:"DATABASE_DSN"`
	SecretKey            string        `env:"SECRET_KEY"`
	FrontendURL          string        `env:"FRONTEND_URL"`
	CookieMaxAge         time.Duration `env:"COOKIE_MAX_AGE"`
	CookieSecure         bool          `env:"COOKIE_SECURE"`
	ResetTokenTTL        time.Duration `env:"RESET_TOKEN_TTL"`
	SMTPHost             string        `env:"SMTP_HOST"`
	SMTPPort             int           `env:"SMTP_PORT"`
	SMTPUsername         string        `env:"SMTP_USERNAME"`
	SMTPPassword         string        `env:"SMTP_PASSWORD"`
	SMTPFrom             string        `env:"SMTP_FROM"`
	RedisAddr            string        `env:"REDIS_ADDR"`
	ResetRequestsPerHour int           `env:"RESET_REQUESTS_PER_HOUR"`
	LogLevel             string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":4444"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.FrontendURL = "http://localhost:7777"
	c.CookieMaxAge = 365 * 24 * time.Hour
	c.CookieSecure = false
	c.ResetTokenTTL = time.Hour
	c.SMTPPort = 587
	c.SMTPFrom = "no-reply@storefront.local"
	c.ResetRequestsPerHour = 5
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
