package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/storefront/internal/flagx"
	"github.com/dmitrijs2005/storefront/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "1h" and integer nanoseconds are accepted. Absent
// keys leave the current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP     string          `json:"endpoint_addr_http"`
	DatabaseDSN          *string         `json:"database_dsn"`
	SecretKey            string          `json:"secret_key"`
	FrontendURL          string          `json:"frontend_url"`
	CookieMaxAge         *timex.Duration `json:"cookie_max_age"`
	CookieSecure         *bool           `json:"cookie_secure"`
	ResetTokenTTL        *timex.Duration `json:"reset_token_ttl"`
	SMTPHost             string          `json:"smtp_host"`
	SMTPPort             int             `json:"smtp_port"`
	SMTPUsername         string          `json:"smtp_username"`
	SMTPPassword         string          `json:"smtp_password"`
	SMTPFrom             string          `json:"smtp_from"`
	RedisAddr            string          `json:"redis_addr"`
	ResetRequestsPerHour int             `json:"reset_requests_per_hour"`
	LogLevel             string          `json:"log_level"`
}

// parseJson loads the file named by -c/-config, if any, into config.
// An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.applyTo(config)
}

func (c *JsonConfig) applyTo(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.FrontendURL, c.FrontendURL)
	if c.CookieMaxAge != nil {
		config.CookieMaxAge = c.CookieMaxAge.Duration
	}
	if c.CookieSecure != nil {
		config.CookieSecure = *c.CookieSecure
	}
	if c.ResetTokenTTL != nil {
		config.ResetTokenTTL = c.ResetTokenTTL.Duration
	}
	setString(&config.SMTPHost, c.SMTPHost)
	if c.SMTPPort != 0 {
		config.SMTPPort = c.SMTPPort
	}
	setString(&config.SMTPUsername, c.SMTPUsername)
	setString(&config.SMTPPassword, c.SMTPPassword)
	setString(&config.SMTPFrom, c.SMTPFrom)
	setString(&config.RedisAddr, c.RedisAddr)
	if c.ResetRequestsPerHour != 0 {
		config.ResetRequestsPerHour = c.ResetRequestsPerHour
	}
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
