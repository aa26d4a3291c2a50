package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		assert func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "no flags",
			args: nil,
			assert: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, &StructuredConfig{}, cfg)
			},
		},
		{
			name: "storage flags",
			args: []string{"-backend", "directory", "-dir", "/vault", "-d", "cache.db"},
			assert: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "directory", cfg.Storage.Backend)
				assert.Equal(t, "/vault", cfg.Storage.Dir.Root)
				assert.Equal(t, "cache.db", cfg.Storage.DB.DSN)
			},
		},
		{
			name: "remote flags",
			args: []string{
				"-remote-kind", "http", "-endpoint", "https://gw.example.com",
				"-token", "t0k", "-prefix", "users/1/", "-path-style",
				"-request-timeout", "3s",
			},
			assert: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "http", cfg.Remote.Kind)
				assert.Equal(t, "https://gw.example.com", cfg.Remote.Endpoint)
				assert.Equal(t, "t0k", cfg.Remote.Token)
				assert.Equal(t, "users/1/", cfg.Remote.Prefix)
				assert.True(t, cfg.Remote.UsePathStyle)
				assert.Equal(t, 3*time.Second, cfg.Remote.RequestTimeout)
			},
		},
		{
			name: "worker flags",
			args: []string{"-flush-interval", "45s", "-debounce", "1s", "-probe-interval", "5s"},
			assert: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, 45*time.Second, cfg.Workers.FlushInterval)
				assert.Equal(t, time.Second, cfg.Workers.DebounceDelay)
				assert.Equal(t, 5*time.Second, cfg.Workers.ProbeInterval)
			},
		},
		{
			name: "config alias",
			args: []string{"-config", "/etc/notevault.json"},
			assert: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/etc/notevault.json", cfg.JSONFilePath)
			},
		},
		{
			name: "short config flag",
			args: []string{"-c", "cfg.json", "-vault-name", "Home"},
			assert: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "cfg.json", cfg.JSONFilePath)
				assert.Equal(t, "Home", cfg.App.VaultName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseFlags(tt.args)
			require.NoError(t, err)
			tt.assert(t, cfg)
		})
	}
}

func TestParseFlags_InvalidDuration(t *testing.T) {
	cfg, err := ParseFlags([]string{"-flush-interval", "often"})
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error parsing flags")
}
