// Copyright (c) 2026 Niramaya. All rights reserved.

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramaya/api/internal/platform/config"
)

/*
TestMode_SelectionRule verifies the backend mode is decided purely by the
presence of both connection parameters.
*/
func TestMode_SelectionRule(t *testing.T) {
	tests := []struct {
		name        string
		databaseURL string
		redisURL    string
		want        config.Mode
	}{
		{"both set", "postgres://localhost/niramaya", "redis://localhost:6379", config.ModeLive},
		{"database only", "postgres://localhost/niramaya", "", config.ModeLocal},
		{"redis only", "", "redis://localhost:6379", config.ModeLocal},
		{"neither", "", "", config.ModeLocal},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := &config.Config{
				DatabaseURL: test.databaseURL,
				RedisURL:    test.redisURL,
			}
			assert.Equal(t, test.want, cfg.Mode())
		})
	}
}

/*
TestLoad_Defaults verifies a bare environment yields a runnable local-mode
configuration.
*/
func TestLoad_Defaults(t *testing.T) {
	// 1. Clear the mode-selecting variables.
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.ModeLocal, cfg.Mode())
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.NotEmpty(t, cfg.LocalDataDir)
}

/*
TestLoad_LiveModeRequiresRealSecret verifies live mode refuses to start on
the baked-in development signing secret.
*/
func TestLoad_LiveModeRequiresRealSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/niramaya")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("SESSION_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}
