package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teachos/schedsim/internal/kernel/process"
	"github.com/teachos/schedsim/internal/kernel/resource"
)

// newFixture builds a table/pool/engine trio with memory already assigned
// for each created process, the way the facade does it.
func newFixture(t *testing.T, cfg Config) (*process.Table, *resource.Pool, *Engine) {
	t.Helper()

	table := process.NewTable()
	pool := resource.NewPool(4096)
	engine, err := New(table, pool, cfg)
	require.NoError(t, err)
	return table, pool, engine
}

func mustCreate(t *testing.T, table *process.Table, pool *resource.Pool, priority, memory, burst int) process.Snapshot {
	t.Helper()

	snap, err := table.Create(priority, memory, burst)
	require.NoError(t, err)
	require.NoError(t, pool.Assign(snap.PID, memory))
	return snap
}

func TestNewRejectsUnknownAlgorithm(t *testing.T) {
	table := process.NewTable()
	pool := resource.NewPool(1024)

	_, err := New(table, pool, Config{Algorithm: "lottery"})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestNewRejectsNonPositiveQuantum(t *testing.T) {
	table := process.NewTable()
	pool := resource.NewPool(1024)

	_, err := New(table, pool, Config{Algorithm: RoundRobin, Quantum: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantum)
}

func TestIdleWithoutProcesses(t *testing.T) {
	_, _, engine := newFixture(t, Config{Algorithm: FCFS})

	event := engine.ExecuteCycle()
	assert.Equal(t, EventIdle, event.Kind)
	assert.Equal(t, uint64(1), event.Cycle)
	assert.Nil(t, event.Process)
}

func TestFCFSRunsToCompletionInOrder(t *testing.T) {
	table, pool, engine := newFixture(t, Config{Algorithm: FCFS})
	p1 := mustCreate(t, table, pool, 3, 100, 3)
	p2 := mustCreate(t, table, pool, 3, 100, 2)

	// P1 must complete entirely before P2 ever runs.
	var order []uint32
	for i := 0; i < 5; i++ {
		event := engine.ExecuteCycle()
		require.NotNil(t, event.Process)
		order = append(order, event.Process.PID)
	}

	assert.Equal(t, []uint32{p1.PID, p1.PID, p1.PID, p2.PID, p2.PID}, order)

	s1, _ := table.Snapshot(p1.PID)
	s2, _ := table.Snapshot(p2.PID)
	assert.Equal(t, process.StateTerminated.String(), s1.State)
	assert.Equal(t, process.StateTerminated.String(), s2.State)
}

func TestFCFSEventSequence(t *testing.T) {
	table, pool, engine := newFixture(t, Config{Algorithm: FCFS})
	mustCreate(t, table, pool, 3, 100, 3)

	kinds := []EventKind{
		engine.ExecuteCycle().Kind,
		engine.ExecuteCycle().Kind,
		engine.ExecuteCycle().Kind,
		engine.ExecuteCycle().Kind,
	}
	assert.Equal(t, []EventKind{EventStarted, EventRunning, EventCompleted, EventIdle}, kinds)
}

func TestSJFPicksShortestJob(t *testing.T) {
	table, pool, engine := newFixture(t, Config{Algorithm: SJF})
	mustCreate(t, table, pool, 3, 100, 5)
	p2 := mustCreate(t, table, pool, 3, 100, 2)

	event := engine.ExecuteCycle()
	require.Equal(t, EventStarted, event.Kind)
	assert.Equal(t, p2.PID, event.Process.PID)
}

func TestSJFBreaksTiesByQueueOrder(t *testing.T) {
	table, pool, engine := newFixture(t, Config{Algorithm: SJF})
	p1 := mustCreate(t, table, pool, 3, 100, 2)
	mustCreate(t, table, pool, 3, 100, 2)

	event := engine.ExecuteCycle()
	require.Equal(t, EventStarted, event.Kind)
	assert.Equal(t, p1.PID, event.Process.PID)
}

func TestPriorityPicksLowestValue(t *testing.T) {
	table, pool, engine := newFixture(t, Config{Algorithm: Priority})
	mustCreate(t, table, pool, 4, 100, 3)
	p2 := mustCreate(t, table, pool, 1, 100, 3)
	mustCreate(t, table, pool, 2, 100, 3)

	event := engine.ExecuteCycle()
	require.Equal(t, EventStarted, event.Kind)
	assert.Equal(t, p2.PID, event.Process.PID)
}

func TestRoundRobinQuantumTrace(t *testing.T) {
	table, pool, engine := newFixture(t, Config{Algorithm: RoundRobin, Quantum: 2})
	p1 := mustCreate(t, table, pool, 3, 100, 3)

	// Cycle 1: dispatched and runs one tick.
	event := engine.ExecuteCycle()
	require.Equal(t, EventStarted, event.Kind)
	assert.Equal(t, 2, event.Process.RemainingBurst)

	// Cycle 2: quantum exhausted with burst remaining.
	event = engine.ExecuteCycle()
	require.Equal(t, EventPreempted, event.Kind)
	assert.Equal(t, 1, event.Process.RemainingBurst)
	assert.Equal(t, process.StateReady.String(), event.Process.State)

	// Cycle 3: dispatched again, burst exhausts, completed.
	event = engine.ExecuteCycle()
	require.Equal(t, EventCompleted, event.Kind)
	assert.Equal(t, 0, event.Process.RemainingBurst)

	snap, _ := table.Snapshot(p1.PID)
	assert.Equal(t, process.StateTerminated.String(), snap.State)
	assert.True(t, pool.CPUFree())
}

func TestRoundRobinSinglePreemptionAcrossRun(t *testing.T) {
	table, pool, engine := newFixture(t, Config{Algorithm: RoundRobin, Quantum: 2})
	mustCreate(t, table, pool, 3, 100, 3)

	preemptions := 0
	for i := 0; i < 10; i++ {
		if engine.ExecuteCycle().Kind == EventPreempted {
			preemptions++
		}
	}
	assert.Equal(t, 1, preemptions)
}

func TestRoundRobinAlternatesBetweenProcesses(t *testing.T) {
	table, pool, engine := newFixture(t, Config{Algorithm: RoundRobin, Quantum: 1})
	p1 := mustCreate(t, table, pool, 3, 100, 2)
	p2 := mustCreate(t, table, pool, 3, 100, 2)

	var order []uint32
	for i := 0; i < 4; i++ {
		event := engine.ExecuteCycle()
		require.NotNil(t, event.Process)
		order = append(order, event.Process.PID)
	}
	assert.Equal(t, []uint32{p1.PID, p2.PID, p1.PID, p2.PID}, order)
}

func TestAtMostOneRunningInvariant(t *testing.T) {
	algorithms := []Config{
		{Algorithm: FCFS},
		{Algorithm: SJF},
		{Algorithm: Priority},
		{Algorithm: RoundRobin, Quantum: 2},
	}

	for _, cfg := range algorithms {
		t.Run(cfg.Algorithm, func(t *testing.T) {
			table, pool, engine := newFixture(t, cfg)
			mustCreate(t, table, pool, 2, 100, 4)
			mustCreate(t, table, pool, 1, 100, 3)
			mustCreate(t, table, pool, 5, 100, 5)

			for i := 0; i < 20; i++ {
				engine.ExecuteCycle()
				running := 0
				for _, p := range table.List() {
					if p.State == process.StateRunning.String() {
						running++
					}
				}
				assert.LessOrEqual(t, running, 1)
			}
		})
	}
}

func TestCompletionReleasesMemoryExactlyOnce(t *testing.T) {
	table, pool, engine := newFixture(t, Config{Algorithm: FCFS})
	mustCreate(t, table, pool, 3, 100, 2)
	before := pool.Available()

	engine.ExecuteCycle()
	engine.ExecuteCycle() // completes

	assert.Equal(t, before+100, pool.Available())

	// Further cycles must not release again.
	engine.ExecuteCycle()
	assert.Equal(t, before+100, pool.Available())
}

func TestEngineObservesExternalSuspend(t *testing.T) {
	table, pool, engine := newFixture(t, Config{Algorithm: FCFS})
	p1 := mustCreate(t, table, pool, 3, 100, 5)
	p2 := mustCreate(t, table, pool, 3, 100, 2)

	event := engine.ExecuteCycle()
	require.Equal(t, EventStarted, event.Kind)
	require.Equal(t, p1.PID, event.Process.PID)

	// Administrative suspend off the CPU, as the facade does it.
	wasRunning, err := table.Suspend(p1.PID)
	require.NoError(t, err)
	require.True(t, wasRunning)
	pool.ReleaseCPU()

	event = engine.ExecuteCycle()
	require.Equal(t, EventStarted, event.Kind)
	assert.Equal(t, p2.PID, event.Process.PID)
}

func TestSelectNextDoesNotMutate(t *testing.T) {
	table, pool, engine := newFixture(t, Config{Algorithm: SJF})
	mustCreate(t, table, pool, 3, 100, 5)
	p2 := mustCreate(t, table, pool, 3, 100, 1)

	snap, ok := engine.SelectNext()
	require.True(t, ok)
	assert.Equal(t, p2.PID, snap.PID)
	assert.Equal(t, process.StateReady.String(), snap.State)
	assert.Equal(t, uint64(0), engine.Clock())
}

func TestSetQuantumResetsUsage(t *testing.T) {
	table, pool, engine := newFixture(t, Config{Algorithm: RoundRobin, Quantum: 2})
	mustCreate(t, table, pool, 3, 100, 10)

	engine.ExecuteCycle() // started, used quantum 1
	require.NoError(t, engine.SetQuantum(3))

	// With the counter reset, the next preemption is three cycles out.
	kinds := []EventKind{
		engine.ExecuteCycle().Kind,
		engine.ExecuteCycle().Kind,
		engine.ExecuteCycle().Kind,
	}
	assert.Equal(t, []EventKind{EventRunning, EventRunning, EventPreempted}, kinds)

	assert.ErrorIs(t, engine.SetQuantum(0), ErrInvalidQuantum)
}

func TestNameReportsAlgorithm(t *testing.T) {
	_, _, engine := newFixture(t, Config{Algorithm: RoundRobin, Quantum: 4})
	assert.Equal(t, "Round Robin (Quantum: 4)", engine.Name())
}
