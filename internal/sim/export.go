package sim

import (
	"github.com/bytedance/sonic"

	"github.com/teachos/schedsim/internal/kernel/process"
	"github.com/teachos/schedsim/internal/kernel/resource"
	"github.com/teachos/schedsim/internal/kernel/syncprim"
)

// State is a full snapshot of the simulation, for rendering or inspection
// by the driver.
type State struct {
	Algorithm string                `json:"algorithm"`
	Clock     uint64                `json:"clock"`
	Processes []process.Snapshot    `json:"processes"`
	Resources resource.Status       `json:"resources"`
	Buffer    syncprim.BufferStatus `json:"buffer"`
	Events    []string              `json:"events"`
}

// Snapshot captures the current simulation state.
func (s *Simulator) Snapshot() State {
	s.mu.Lock()
	algorithm := s.engine.Name()
	clock := s.engine.Clock()
	s.mu.Unlock()

	return State{
		Algorithm: algorithm,
		Clock:     clock,
		Processes: s.table.List(),
		Resources: s.pool.Status(),
		Buffer:    s.buffer.Status(),
		Events:    s.events.tail(s.logTail),
	}
}

// ExportState serializes the simulation snapshot as JSON.
func (s *Simulator) ExportState() ([]byte, error) {
	return sonic.Marshal(s.Snapshot())
}
