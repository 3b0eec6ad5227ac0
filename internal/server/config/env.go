package config

import "github.com/caarlos0/env/v11"

// EnvPrefix namespaces the environment variables read by parseEnv.
const EnvPrefix = "STOREFRONT_"

// parseEnv overlays STOREFRONT_* environment variables onto config. Unset
// variables leave the current value alone. Malformed values panic, like the
// other layers.
func parseEnv(config *Config) {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
