package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("GAME_CAPACITY", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 10, cfg.Capacity)
	assert.Equal(t, "dev", cfg.Env)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("GAME_CAPACITY", "3")
	t.Setenv("APP_ENV", "prod")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 3, cfg.Capacity)
	assert.Equal(t, "prod", cfg.Env)
}

func TestLoad_InvalidCapacity(t *testing.T) {
	for _, bad := range []string{"zero", "0", "-4"} {
		t.Setenv("GAME_CAPACITY", bad)
		_, err := Load()
		assert.Error(t, err, "capacity %q", bad)
	}
}
