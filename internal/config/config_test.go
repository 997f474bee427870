package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvSeed, EnvBlueprint, EnvInterior, EnvOutput, EnvASCII, EnvTelemetry, EnvVerbosity} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultBlueprint, cfg.Blueprint)
	assert.True(t, cfg.Telemetry)
	assert.Zero(t, cfg.Seed)
	assert.False(t, cfg.ASCII)
	assert.Empty(t, cfg.Interior)
}

func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSeed, "4242")
	t.Setenv(EnvBlueprint, "crypt")
	t.Setenv(EnvInterior, "The Rusty Anchor")
	t.Setenv(EnvOutput, "out.json")
	t.Setenv(EnvASCII, "true")
	t.Setenv(EnvTelemetry, "false")
	t.Setenv(EnvVerbosity, "2")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Config{
		Seed:      4242,
		Blueprint: "crypt",
		Interior:  "The Rusty Anchor",
		Output:    "out.json",
		ASCII:     true,
		Telemetry: false,
		Verbosity: 2,
	}, cfg)
	assert.Equal(t, int64(4242), cfg.ResolvedSeed())
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	for _, key := range []string{EnvSeed, EnvASCII, EnvTelemetry, EnvVerbosity} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, "not-a-value")
			_, err := FromEnv()
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LEVELFORGE_SEED=99\nLEVELFORGE_BLUEPRINT=undercity\n"), 0o600))

	// godotenv never overrides variables that are already set, even to empty
	os.Unsetenv(EnvSeed)
	os.Unsetenv(EnvBlueprint)
	t.Cleanup(func() {
		os.Unsetenv(EnvSeed)
		os.Unsetenv(EnvBlueprint)
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, "undercity", cfg.Blueprint)
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestNewRandReproducible(t *testing.T) {
	a, b := NewRand(7), NewRand(7)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Int63(), b.Int63())
	}
	cfg := Config{}
	assert.NotZero(t, cfg.ResolvedSeed())
}
