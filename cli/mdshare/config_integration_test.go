//go:build integration

package main

import (
	"path/filepath"
	"testing"

	"github.com/glorpus-work/mdshare/pkg/config"
	"github.com/glorpus-work/mdshare/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInit(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	_, logs, err := runCLI(t, "--config", cfgPath, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, logs, "Configuration file created")

	cfg, err := config.LoadConfig(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultMaxAttempts, cfg.Settings.MaxAttempts)

	_, _, err = runCLI(t, "--config", cfgPath, "config", "init")
	require.ErrorIs(t, err, errors.ErrConfigFileExists)

	_, _, err = runCLI(t, "--config", cfgPath, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigSetGetShow(t *testing.T) {
	env := newCLIEnv(t, sampleIndex(), nil)

	_, _, err := env.run(t, "config", "set", "max_attempts", "7")
	require.NoError(t, err)

	out, _, err := env.run(t, "config", "get", "max_attempts")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)

	out, _, err = env.run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalogue")
	assert.Contains(t, out, "catalogue_file")
	assert.Contains(t, out, env.cataloguePath)
	assert.Contains(t, out, "Credentials")

	out, _, err = env.run(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, env.configPath+"\n", out)
}

func TestConfigSet_DoesNotPersistFlagOverrides(t *testing.T) {
	env := newCLIEnv(t, sampleIndex(), nil)

	_, _, err := env.run(t, "--catalogue", "/elsewhere.yaml", "-v", "config", "set", "max_attempts", "4")
	require.NoError(t, err)

	cfg, err := config.LoadConfig(env.configPath)
	require.NoError(t, err)
	assert.Equal(t, env.cataloguePath, cfg.Settings.CatalogueFile)
	assert.Equal(t, "warn", cfg.Settings.LogLevel)
}

func TestConfigSet_Invalid(t *testing.T) {
	env := newCLIEnv(t, sampleIndex(), nil)

	_, _, err := env.run(t, "config", "set", "max_attempts", "0")
	require.Error(t, err)

	_, _, err = env.run(t, "config", "set", "no_such_key", "1")
	require.Error(t, err)

	_, _, err = env.run(t, "config", "get", "no_such_key")
	require.Error(t, err)
}
