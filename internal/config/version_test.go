package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersionedConfig_LegacyFlatKeys(t *testing.T) {
	data := []byte(`backend: sqlite
dataPath: /srv/workouts.db
logLevel: debug
`)

	cfg, err := ParseVersionedConfig(data)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/srv/workouts.db", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestParseVersionedConfig_SectionWinsOverLegacyKey(t *testing.T) {
	data := []byte(`backend: redis
storage:
  backend: memory
`)

	cfg, err := ParseVersionedConfig(data)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Backend)
}

func TestParseVersionedConfig_FutureVersion(t *testing.T) {
	_, err := ParseVersionedConfig([]byte("version: 99\n"))
	assert.ErrorContains(t, err, "newer than supported")
}

func TestParseVersionedConfig_Empty(t *testing.T) {
	cfg, err := ParseVersionedConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, "file", cfg.Storage.Backend)
}

func TestApplyMigrations_NoPath(t *testing.T) {
	_, err := ApplyMigrations(map[string]any{}, -1)
	assert.ErrorContains(t, err, "no migration path")
}
