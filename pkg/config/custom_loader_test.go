package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/statekit/pkg/config"
)

type CustomEnvConfig struct {
	Strategy string   `env:"TEST_FSM_STRATEGY"`
	Workers  int      `env:"TEST_FSM_WORKERS"`
	Throw    bool     `env:"TEST_FSM_THROW"`
	Triggers []string `env:"TEST_FSM_TRIGGERS" envSeparator:","`
	Label    string   `env:"TEST_FSM_LABEL"`
	Empty    string   `env:"TEST_FSM_EMPTY"`
	Priority string   `env:"TEST_FSM_PRIORITY"`
}

type OverrideConfig struct {
	OverrideOnly string `env:"TEST_FSM_OVERRIDE_ONLY"`
	Strategy     string `env:"TEST_FSM_STRATEGY"`
}

type RequiredEnvConfig struct {
	Required string `env:"TEST_FSM_REQUIRED,required"`
}

func unsetFSMEnv() {
	for _, key := range []string{
		"TEST_FSM_STRATEGY",
		"TEST_FSM_WORKERS",
		"TEST_FSM_THROW",
		"TEST_FSM_TRIGGERS",
		"TEST_FSM_LABEL",
		"TEST_FSM_EMPTY",
		"TEST_FSM_PRIORITY",
		"TEST_FSM_OVERRIDE_ONLY",
		"TEST_FSM_REQUIRED",
	} {
		os.Unsetenv(key)
	}
}

func TestLoadEnv_CustomPath(t *testing.T) {
	unsetFSMEnv()
	config.ResetCache()

	err := config.LoadEnv("testdata/.env.fsm")
	require.NoError(t, err, "LoadEnv should not return error with valid file")

	var cfg CustomEnvConfig
	err = config.Load(&cfg)
	require.NoError(t, err, "Load should successfully parse config after LoadEnv")

	assert.Equal(t, "queued", cfg.Strategy)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Throw)
	assert.Equal(t, []string{"start", "stop", "reset"}, cfg.Triggers)
	assert.Equal(t, "turnstile one", cfg.Label)
	assert.Equal(t, "", cfg.Empty)
	assert.Equal(t, "base_file_value", cfg.Priority)
}

func TestLoadEnv_MultiplePaths(t *testing.T) {
	unsetFSMEnv()
	config.ResetCache()

	// Order matters: the override file wins
	err := config.LoadEnv("testdata/.env.fsm", "testdata/.env.override")
	require.NoError(t, err, "LoadEnv should not return error with valid files")

	var customCfg CustomEnvConfig
	require.NoError(t, config.Load(&customCfg))

	assert.Equal(t, "scheduled", customCfg.Strategy)
	assert.Equal(t, 8, customCfg.Workers)
	assert.Equal(t, "override_value", customCfg.Priority)
	assert.Equal(t, "turnstile one", customCfg.Label)

	var overrideCfg OverrideConfig
	require.NoError(t, config.Load(&overrideCfg))

	assert.Equal(t, "unique_to_override", overrideCfg.OverrideOnly)
	assert.Equal(t, "scheduled", overrideCfg.Strategy)
}

func TestLoadEnv_NonExistentPath(t *testing.T) {
	err := config.LoadEnv("testdata/non_existent_file.env")
	require.Error(t, err, "LoadEnv should return error with non-existent file")
}

func TestMustLoadEnv(t *testing.T) {
	assert.NotPanics(t, func() {
		config.MustLoadEnv("testdata/.env.fsm")
	}, "MustLoadEnv should not panic with valid file")

	assert.Panics(t, func() {
		config.MustLoadEnv("testdata/non_existent_file.env")
	}, "MustLoadEnv should panic with non-existent file")
}

func TestLoadEnv_WithRequiredConfig(t *testing.T) {
	unsetFSMEnv()
	config.ResetCache()

	var requiredCfg RequiredEnvConfig
	err := config.Load(&requiredCfg)
	require.Error(t, err, "Load should error when required field is missing")

	t.Setenv("TEST_FSM_REQUIRED", "required_value")

	var requiredCfg2 RequiredEnvConfig
	err = config.ForceReloadConfig(&requiredCfg2)
	require.NoError(t, err, "Load should succeed after setting required value")
	assert.Equal(t, "required_value", requiredCfg2.Required)
}

func TestLoadEnv_DefaultBehavior(t *testing.T) {
	tmpEnv := ".env"
	config.ResetCache()

	oldEnvContent, readErr := os.ReadFile(tmpEnv)
	hasOldFile := !os.IsNotExist(readErr)

	defer func() {
		os.Remove(tmpEnv)
		if hasOldFile {
			_ = os.WriteFile(tmpEnv, oldEnvContent, 0644)
		}
		os.Unsetenv("DEFAULT_ENV_VAR")
	}()

	err := os.WriteFile(tmpEnv, []byte("DEFAULT_ENV_VAR=default_from_temp"), 0644)
	require.NoError(t, err, "Failed to create temporary .env file")

	os.Unsetenv("DEFAULT_ENV_VAR")

	err = config.LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "default_from_temp", os.Getenv("DEFAULT_ENV_VAR"))
}
