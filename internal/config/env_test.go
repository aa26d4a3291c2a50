// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_VAULT_NAME": "Work",
		"APP_LOG_FILE":   "/tmp/notevault.log",

		"STORAGE_BACKEND":  "remote",
		"STORAGE_DB_DSN":   "/tmp/cache.db",
		"STORAGE_DIR_ROOT": "/home/me/vault",

		"REMOTE_KIND":            "s3",
		"REMOTE_ENDPOINT":        "http://localhost:9000",
		"REMOTE_BUCKET":          "notes",
		"REMOTE_REGION":          "eu-central-1",
		"REMOTE_ACCESS_KEY":      "AKIA",
		"REMOTE_SECRET_KEY":      "secret",
		"REMOTE_TOKEN":           "bearer",
		"REMOTE_PREFIX":          "users/42/",
		"REMOTE_USE_PATH_STYLE":  "true",
		"REMOTE_REQUEST_TIMEOUT": "5s",

		"WORKERS_FLUSH_INTERVAL": "1m",
		"WORKERS_DEBOUNCE_DELAY": "500ms",
		"WORKERS_PROBE_INTERVAL": "10s",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "Work", cfg.App.VaultName)
	assert.Equal(t, "/tmp/notevault.log", cfg.App.LogFile)

	assert.Equal(t, "remote", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/cache.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/home/me/vault", cfg.Storage.Dir.Root)

	assert.Equal(t, "s3", cfg.Remote.Kind)
	assert.Equal(t, "http://localhost:9000", cfg.Remote.Endpoint)
	assert.Equal(t, "notes", cfg.Remote.Bucket)
	assert.Equal(t, "eu-central-1", cfg.Remote.Region)
	assert.Equal(t, "AKIA", cfg.Remote.AccessKey)
	assert.Equal(t, "secret", cfg.Remote.SecretKey)
	assert.Equal(t, "bearer", cfg.Remote.Token)
	assert.Equal(t, "users/42/", cfg.Remote.Prefix)
	assert.True(t, cfg.Remote.UsePathStyle)
	assert.Equal(t, 5*time.Second, cfg.Remote.RequestTimeout)

	assert.Equal(t, time.Minute, cfg.Workers.FlushInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Workers.DebounceDelay)
	assert.Equal(t, 10*time.Second, cfg.Workers.ProbeInterval)
}

func TestParseEnv_PartialFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"STORAGE_BACKEND": "directory",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, "directory", cfg.Storage.Backend)
	assert.Empty(t, cfg.Storage.Dir.Root)
	assert.Zero(t, cfg.Workers.FlushInterval)
}

func TestParseEnv_InvalidBool(t *testing.T) {
	setEnvVars(t, map[string]string{
		"REMOTE_USE_PATH_STYLE": "maybe",
	})

	err := parseEnv(&StructuredConfig{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
