package config

import "time"

// Config holds runtime settings for the Aztec Temple CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the game API, endpoints are appended to it.
//   - OnlineCheckInterval: how often the background liveness probe runs.
//   - RequestTimeout: per-request HTTP timeout.
//   - StorePath: SQLite file holding the session token.
//   - LogLevel / LogFormat: see logging.Options.
type Config struct {
	ServerBaseURL       string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	StorePath           string
	LogLevel            string
	LogFormat           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:3001/api"
	c.OnlineCheckInterval = 30 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.StorePath = "aztec.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig applies defaults, then a config file (if given), then flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
