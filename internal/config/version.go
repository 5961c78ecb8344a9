package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the current config schema version
const CurrentVersion = 1

// Migration represents a config migration function
type Migration struct {
	FromVersion int
	ToVersion   int
	Migrate     func(data map[string]any) (map[string]any, error)
}

// migrations is the list of migrations in order
var migrations = []Migration{
	// Migration 0 -> 1: flat keys move into storage and log sections
	{
		FromVersion: 0,
		ToVersion:   1,
		Migrate: func(data map[string]any) (map[string]any, error) {
			storage := section(data, "storage")
			moveKey(data, "backend", storage, "backend")
			moveKey(data, "dataPath", storage, "path")

			logSection := section(data, "log")
			moveKey(data, "logLevel", logSection, "level")
			moveKey(data, "logFile", logSection, "file")

			data["version"] = 1
			return data, nil
		},
	},
}

// ParseVersionedConfig parses YAML config data with version migration
// support. Fields absent from the file keep their default values, except
// the storage path, which MergeWithDefaults derives from the backend.
func ParseVersionedConfig(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if raw == nil {
		raw = make(map[string]any)
	}

	// Detect version (0 if not present = legacy config)
	version := 0
	if v, ok := raw["version"].(int); ok {
		version = v
	}

	if version > CurrentVersion {
		return nil, fmt.Errorf("config version %d is newer than supported version %d", version, CurrentVersion)
	}
	if version < CurrentVersion {
		var err error
		raw, err = ApplyMigrations(raw, version)
		if err != nil {
			return nil, fmt.Errorf("failed to migrate config: %w", err)
		}
	}

	migrated, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal migrated config: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Storage.Path = ""
	if err := yaml.Unmarshal(migrated, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse migrated config: %w", err)
	}
	return cfg, nil
}

// ApplyMigrations applies all migrations from the given version to CurrentVersion
func ApplyMigrations(data map[string]any, fromVersion int) (map[string]any, error) {
	for _, migration := range migrations {
		if migration.FromVersion == fromVersion {
			var err error
			data, err = migration.Migrate(data)
			if err != nil {
				return nil, fmt.Errorf("migration %d -> %d failed: %w",
					migration.FromVersion, migration.ToVersion, err)
			}
			fromVersion = migration.ToVersion
		}
	}

	if fromVersion < CurrentVersion {
		return nil, fmt.Errorf("no migration path from version %d to %d", fromVersion, CurrentVersion)
	}

	return data, nil
}

func section(data map[string]any, key string) map[string]any {
	if m, ok := data[key].(map[string]any); ok {
		return m
	}
	m := make(map[string]any)
	data[key] = m
	return m
}

// moveKey moves a legacy flat key into a section unless the section
// already sets it
func moveKey(data map[string]any, from string, dst map[string]any, to string) {
	v, ok := data[from]
	if !ok {
		return
	}
	delete(data, from)
	if _, exists := dst[to]; !exists {
		dst[to] = v
	}
}
