package config

import (
	"testing"

	"society/internal/domain/constants"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"directory": map[string]any{
			"maxRadiusKm": 500,
		},
		"import": map[string]any{
			"allowNameFallback": false,
		},
		"storage": map[string]any{
			"autoMigrate": true,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "DIRECTORY_MAXRADIUSKM", want: "directory.maxRadiusKm"},
		{envKey: "IMPORT_ALLOWNAMEFALLBACK", want: "import.allowNameFallback"},
		{envKey: "STORAGE_AUTOMIGRATE", want: "storage.autoMigrate"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_FillsMissingSections(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, constants.StorageDriverPostgres, cfg.Storage.Driver)
	assert.InDelta(t, 25.0, cfg.Directory.DefaultRadiusKm, 1e-9)
	assert.Zero(t, cfg.Directory.MaxRadiusKm)
	assert.Equal(t, "UTC", cfg.Import.TimeZone)
	assert.False(t, cfg.Import.AllowNameFallback)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Directory: &DirectoryConfig{DefaultRadiusKm: 10, MaxRadiusKm: 100},
		Import:    &ImportConfig{TimeZone: "Europe/Berlin", AllowNameFallback: true},
	}
	cfg.Storage.Driver = constants.StorageDriverMemory

	applyDefaults(cfg)

	assert.Equal(t, constants.StorageDriverMemory, cfg.Storage.Driver)
	assert.InDelta(t, 10.0, cfg.Directory.DefaultRadiusKm, 1e-9)
	assert.InDelta(t, 100.0, cfg.Directory.MaxRadiusKm, 1e-9)
	assert.Equal(t, "Europe/Berlin", cfg.Import.TimeZone)
	assert.True(t, cfg.Import.AllowNameFallback)
}
