// Package config loads runtime settings for the authgate client.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - ServerBaseURL: root of the authentication service, e.g.
//     "http://127.0.0.1:8080". Endpoint paths are appended to it.
//   - DatabasePath: SQLite file holding the persisted token pair.
//   - SignOutDelay: pause between a failed session check and the
//     automatic sign-out.
type Config struct {
	ServerBaseURL string
	DatabasePath  string
	SignOutDelay  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "authgate.db"
	c.SignOutDelay = time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given) and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
