package sim

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotReflectsSimulation(t *testing.T) {
	s := newSimulator(t)
	_, err := s.CreateProcess(2, 256, 3)
	require.NoError(t, err)
	s.ExecuteCycle()
	require.True(t, s.TryProduce("a"))

	state := s.Snapshot()
	assert.Equal(t, "First-Come, First-Served (FCFS)", state.Algorithm)
	assert.Equal(t, uint64(1), state.Clock)
	require.Len(t, state.Processes, 1)
	assert.Equal(t, 256, state.Resources.MemoryUsed)
	assert.Equal(t, 1, state.Buffer.Items)
	assert.NotEmpty(t, state.Events)
}

func TestExportStateIsValidJSON(t *testing.T) {
	s := newSimulator(t)
	_, err := s.CreateProcess(2, 256, 3)
	require.NoError(t, err)

	data, err := s.ExportState()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "algorithm")
	assert.Contains(t, decoded, "clock")
	assert.Contains(t, decoded, "processes")
	assert.Contains(t, decoded, "resources")
	assert.Contains(t, decoded, "buffer")
	assert.Contains(t, decoded, "events")
}
