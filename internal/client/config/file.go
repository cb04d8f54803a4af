package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/aztectemple/internal/flagx"
	"github.com/dmitrijs2005/aztectemple/internal/timex"
)

// FileConfig is the on-disk form of Config. Pointer fields tell an absent key
// apart from an empty one.
type FileConfig struct {
	ServerBaseURL       *string         `json:"server_base_url" yaml:"server_base_url"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	StorePath           *string         `json:"store_path" yaml:"store_path"`
	LogLevel            *string         `json:"log_level" yaml:"log_level"`
	LogFormat           *string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the file named by -c/-config. It panics on read
// or decode errors, like parseFlags does for bad flags.
func parseFile(cfg *Config) {
	path := flagx.ConfigFile(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *fc.ServerBaseURL
	}
	if fc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.StorePath != nil {
		cfg.StorePath = *fc.StorePath
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		cfg.LogFormat = *fc.LogFormat
	}
}
