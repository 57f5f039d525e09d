package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachos/schedsim/internal/kernel/scheduler"
)

const demoScenario = `
name: rr-demo
algorithm: round_robin
quantum: 2
processes:
  - priority: 3
    memory_mb: 256
    burst: 3
  - priority: 1
    memory_mb: 128
    burst: 2
buffer:
  - alpha
  - beta
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(demoScenario))
	require.NoError(t, err)

	assert.Equal(t, "rr-demo", sc.Name)
	assert.Equal(t, "round_robin", sc.Algorithm)
	assert.Equal(t, 2, sc.Quantum)
	require.Len(t, sc.Processes, 2)
	assert.Equal(t, ScenarioProcess{Priority: 1, MemoryMB: 128, Burst: 2}, sc.Processes[1])
	assert.Equal(t, []string{"alpha", "beta"}, sc.Buffer)
}

func TestParseScenarioRejectsMalformedYAML(t *testing.T) {
	_, err := ParseScenario([]byte("processes: [}"))
	assert.Error(t, err)
}

func TestApplyScenario(t *testing.T) {
	s := newSimulator(t)

	sc, err := ParseScenario([]byte(demoScenario))
	require.NoError(t, err)
	require.NoError(t, s.ApplyScenario(sc))

	assert.Equal(t, "Round Robin (Quantum: 2)", s.AlgorithmName())
	assert.Len(t, s.ListProcesses(), 2)
	assert.Equal(t, 384, s.ResourceStatus().MemoryUsed)
	assert.Equal(t, 2, s.BufferStatus().Items)
}

func TestApplyScenarioUnknownAlgorithm(t *testing.T) {
	s := newSimulator(t)

	err := s.ApplyScenario(&Scenario{Algorithm: "edf"})
	assert.ErrorIs(t, err, scheduler.ErrUnknownAlgorithm)
	assert.Empty(t, s.ListProcesses())
}

func TestApplyScenarioStopsAtFirstBadProcess(t *testing.T) {
	s := newSimulator(t)

	err := s.ApplyScenario(&Scenario{
		Processes: []ScenarioProcess{
			{Priority: 3, MemoryMB: 64, Burst: 1},
			{Priority: 9, MemoryMB: 64, Burst: 1},
			{Priority: 3, MemoryMB: 64, Burst: 1},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario process 2")
	assert.Len(t, s.ListProcesses(), 1, "admission stops at the failing entry")
}
