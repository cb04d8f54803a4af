package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://10.0.0.5:3001/api", "-i", "10", "-t", "3", "-d", "/tmp/a.db", "-l", "debug"},
			expected: &Config{
				ServerBaseURL:       "http://10.0.0.5:3001/api",
				OnlineCheckInterval: 10 * time.Second,
				RequestTimeout:      3 * time.Second,
				StorePath:           "/tmp/a.db",
				LogLevel:            "debug",
			},
		},
		{
			name:        "incorrect check interval",
			args:        []string{"cmd", "-i", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_IgnoresForeignArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd", "-c", "aztec.yaml", "-x", "-a", "http://h/api"}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseFlags(cfg) })
	assert.Equal(t, "http://h/api", cfg.ServerBaseURL)
	assert.Equal(t, 30*time.Second, cfg.OnlineCheckInterval)
}
