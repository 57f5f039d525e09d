package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadUsesDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Resources.TotalMemoryMB)
	assert.Equal(t, "fcfs", cfg.Scheduler.Algorithm)
	assert.Equal(t, 2, cfg.Scheduler.Quantum)
	assert.Equal(t, 5, cfg.Buffer.Capacity)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SIM_MEMORY_MB", "2048")
	t.Setenv("SIM_ALGORITHM", "round_robin")
	t.Setenv("SIM_QUANTUM", "4")
	t.Setenv("SIM_LOG_DEV", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2048, cfg.Resources.TotalMemoryMB)
	assert.Equal(t, "round_robin", cfg.Scheduler.Algorithm)
	assert.Equal(t, 4, cfg.Scheduler.Quantum)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("SIM_MEMORY_MB", "lots")

	_, err := Load()
	assert.Error(t, err)
}

func TestDefaultMatchesLoadDefaults(t *testing.T) {
	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}
