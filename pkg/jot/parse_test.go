package jot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RunDefaults(t *testing.T) {
	cmd, config, err := Parse([]string{"run"})
	require.NoError(t, err)

	assert.IsType(t, &RunCommand{}, cmd)
	assert.Equal(t, "run", cmd.Name())
	assert.Equal(t, "8080", config.ServerPort)
	assert.False(t, config.UsePostgres)
	assert.False(t, config.UseMemory)
	assert.False(t, config.ReadOnly)
	assert.False(t, config.StrictOwnership)
	assert.Equal(t, time.Hour, config.TokenTTL)
	assert.Equal(t, "ws://localhost:8000/rpc", config.SurrealDBURL)
}

func TestParse_Flags(t *testing.T) {
	cmd, config, err := Parse([]string{
		"-port=9090",
		"-memory",
		"-read-only",
		"-strict-ownership",
		"-token-ttl=15m",
		"run",
	})
	require.NoError(t, err)

	assert.Equal(t, "run", cmd.Name())
	assert.Equal(t, "9090", config.ServerPort)
	assert.True(t, config.UseMemory)
	assert.True(t, config.ReadOnly)
	assert.True(t, config.StrictOwnership)
	assert.Equal(t, 15*time.Minute, config.TokenTTL)
}

func TestParse_Subcommands(t *testing.T) {
	for arg, want := range map[string]Command{
		"migrate": &MigrateCommand{},
		"seed":    &SeedCommand{},
	} {
		cmd, _, err := Parse([]string{arg})
		require.NoError(t, err)
		assert.IsType(t, want, cmd)
		assert.Equal(t, arg, cmd.Name())
	}
}

func TestParse_Errors(t *testing.T) {
	_, _, err := Parse([]string{})
	require.Error(t, err, "missing subcommand")

	_, _, err = Parse([]string{"serve"})
	require.Error(t, err, "unknown subcommand")

	_, _, err = Parse([]string{"-no-such-flag", "run"})
	require.Error(t, err)
}

func TestParse_Postgres(t *testing.T) {
	_, config, err := Parse([]string{"-postgres", "run"})
	require.NoError(t, err)
	assert.True(t, config.UsePostgres)
	assert.Contains(t, config.PostgresDSN, "postgres://")
}
