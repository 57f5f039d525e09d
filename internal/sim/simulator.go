// Package sim wires the kernel components into one simulation and exposes
// the API consumed by the presentation layer: process administration,
// scheduling cycles, inter-process messaging, and the producer-consumer
// buffer.
//
// A Simulator is constructed once at simulation start, owned by the
// driver, and torn down with it; there are no package-level singletons.
package sim

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/teachos/schedsim/internal/infrastructure/config"
	"github.com/teachos/schedsim/internal/infrastructure/monitoring"
	"github.com/teachos/schedsim/internal/kernel/ipc"
	"github.com/teachos/schedsim/internal/kernel/process"
	"github.com/teachos/schedsim/internal/kernel/resource"
	"github.com/teachos/schedsim/internal/kernel/scheduler"
	"github.com/teachos/schedsim/internal/kernel/syncprim"
)

// Simulator owns the process table, resource pool, scheduling engine,
// mailbox registry, and bounded buffer of one simulation.
//
// Administrative operations and scheduling cycles are serialized under one
// mutex: the engine is driven by exactly one coordinating caller at a
// time. The buffer's blocking operations are deliberately outside that
// lock so producers and consumers can suspend without stalling the
// scheduler.
type Simulator struct {
	mu      sync.Mutex
	log     *zap.Logger
	metrics *monitoring.Metrics

	table  *process.Table
	pool   *resource.Pool
	engine *scheduler.Engine
	mail   *ipc.Registry
	buffer *syncprim.BoundedBuffer

	events  journal
	logTail int
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger attaches a structured logger to the simulator and the
// components it owns.
func WithLogger(log *zap.Logger) Option {
	return func(s *Simulator) { s.log = log }
}

// WithMetrics attaches Prometheus metrics to the simulator.
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(s *Simulator) { s.metrics = metrics }
}

// New creates a simulation from the configuration. An unknown scheduling
// algorithm fails construction.
func New(cfg *config.Config, opts ...Option) (*Simulator, error) {
	s := &Simulator{
		log:     zap.NewNop(),
		logTail: cfg.Buffer.LogTail,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.table = process.NewTable()
	s.pool = resource.NewPool(cfg.Resources.TotalMemoryMB)
	s.mail = ipc.NewRegistry(ipc.WithLogger(s.log.Named("ipc")))
	s.buffer = syncprim.NewBoundedBuffer(
		cfg.Buffer.Capacity,
		syncprim.WithBufferLogger(s.log.Named("buffer")),
	)

	engine, err := scheduler.New(s.table, s.pool, scheduler.Config{
		Algorithm: cfg.Scheduler.Algorithm,
		Quantum:   cfg.Scheduler.Quantum,
	}, scheduler.WithLogger(s.log.Named("scheduler")))
	if err != nil {
		return nil, err
	}
	s.engine = engine

	s.metrics.SetResourceState(cfg.Resources.TotalMemoryMB, true)
	return s, nil
}

// CreateProcess admits a new process: it pre-checks and debits memory,
// allocates the next pid, queues the process as Ready, and creates its
// mailbox. On any failure nothing is mutated.
func (s *Simulator) CreateProcess(priority, memoryMB, burst int) (process.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if memoryMB > s.pool.Available() {
		return process.Snapshot{}, fmt.Errorf("%w: requested %d MB, available %d MB",
			resource.ErrInsufficientMemory, memoryMB, s.pool.Available())
	}

	snap, err := s.table.Create(priority, memoryMB, burst)
	if err != nil {
		return process.Snapshot{}, err
	}
	if err := s.pool.Assign(snap.PID, memoryMB); err != nil {
		// The pid was never visible outside the lock, so terminating the
		// fresh record keeps the table consistent.
		_, _ = s.table.Terminate(snap.PID)
		return process.Snapshot{}, err
	}
	s.mail.Create(snap.PID)

	s.metrics.RecordProcessCreated()
	s.observeState()
	s.events.add("process %d created: priority %d, %d MB, burst %d",
		snap.PID, priority, memoryMB, burst)
	s.log.Info("process created",
		zap.Uint32("pid", snap.PID),
		zap.Int("priority", priority),
		zap.Int("memory_mb", memoryMB),
		zap.Int("burst", burst),
	)
	return snap, nil
}

// ListProcesses returns snapshots of every process in creation order,
// terminated ones included.
func (s *Simulator) ListProcesses() []process.Snapshot {
	return s.table.List()
}

// ResourceStatus returns a consistent snapshot of the resource pool.
func (s *Simulator) ResourceStatus() resource.Status {
	return s.pool.Status()
}

// SetAlgorithm replaces the scheduling engine. Like the original design it
// restarts scheduling from cycle zero; processes and resources carry over.
// Unknown names fail without touching the active engine.
func (s *Simulator) SetAlgorithm(algorithm string, quantum int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	engine, err := scheduler.New(s.table, s.pool, scheduler.Config{
		Algorithm: algorithm,
		Quantum:   quantum,
	}, scheduler.WithLogger(s.log.Named("scheduler")))
	if err != nil {
		return err
	}
	s.engine = engine
	s.events.add("algorithm changed to %s", engine.Name())
	s.log.Info("algorithm changed", zap.String("algorithm", engine.Name()))
	return nil
}

// AlgorithmName returns the display name of the active algorithm.
func (s *Simulator) AlgorithmName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Name()
}

// Clock returns the number of cycles executed on the active engine.
func (s *Simulator) Clock() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Clock()
}

// ExecuteCycle advances the simulation by one tick and returns its event.
func (s *Simulator) ExecuteCycle() scheduler.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := s.engine.ExecuteCycle()

	s.metrics.RecordCycle(string(event.Kind))
	switch event.Kind {
	case scheduler.EventPreempted:
		s.metrics.RecordPreemption()
	case scheduler.EventCompleted:
		s.metrics.RecordProcessTerminated()
	}
	s.observeState()

	if event.Process != nil {
		s.events.add("cycle %d: %s (pid %d)", event.Cycle, event.Kind, event.Process.PID)
	} else {
		s.events.add("cycle %d: cpu idle", event.Cycle)
	}
	return event
}

// SelectNext reports which process the active algorithm would dispatch
// next, without advancing the simulation.
func (s *Simulator) SelectNext() (process.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SelectNext()
}

// Suspend moves a Running or Ready process to Waiting, releasing the CPU
// if the process held it.
func (s *Simulator) Suspend(pid uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasRunning, err := s.table.Suspend(pid)
	if err != nil {
		return err
	}
	if wasRunning {
		s.pool.ReleaseCPU()
	}
	s.observeState()
	s.events.add("process %d suspended", pid)
	s.log.Info("process suspended", zap.Uint32("pid", pid), zap.Bool("was_running", wasRunning))
	return nil
}

// Resume moves a Waiting process back to the tail of the ready queue.
func (s *Simulator) Resume(pid uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.table.Resume(pid); err != nil {
		return err
	}
	s.observeState()
	s.events.add("process %d resumed", pid)
	s.log.Info("process resumed", zap.Uint32("pid", pid))
	return nil
}

// Terminate forces a process into Terminated from any non-terminal state,
// releasing the CPU if held and its memory unconditionally.
func (s *Simulator) Terminate(pid uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasRunning, err := s.table.Terminate(pid)
	if err != nil {
		return err
	}
	if wasRunning {
		s.pool.ReleaseCPU()
	}
	if err := s.pool.Release(pid); err != nil {
		// Terminate is the only admin path releasing memory and the
		// table guarantees a single transition into Terminated, so an
		// unmatched release here is a programming error worth surfacing.
		s.log.Error("memory release failed", zap.Uint32("pid", pid), zap.Error(err))
	}

	s.metrics.RecordProcessTerminated()
	s.observeState()
	s.events.add("process %d terminated", pid)
	s.log.Info("process terminated", zap.Uint32("pid", pid), zap.Bool("was_running", wasRunning))
	return nil
}

// SendMessage delivers a message to the receiver's mailbox.
func (s *Simulator) SendMessage(sender, receiver uint32, content string) error {
	if err := s.mail.Send(sender, receiver, content); err != nil {
		return err
	}
	s.metrics.RecordMessageSent()
	s.events.add("message sent: %d -> %d", sender, receiver)
	return nil
}

// ReceiveMessage dequeues the head message of pid's mailbox. ok is false
// when there is none.
func (s *Simulator) ReceiveMessage(pid uint32) (ipc.Message, bool) {
	return s.mail.Receive(pid)
}

// MailboxSize returns the number of messages queued for pid.
func (s *Simulator) MailboxSize(pid uint32) int {
	return s.mail.Size(pid)
}

// Produce appends an item to the bounded buffer, suspending the caller
// while the buffer is full.
func (s *Simulator) Produce(item string) {
	s.buffer.Produce(item)
	s.metrics.RecordProduced(s.buffer.Status().Items)
}

// TryProduce appends an item without blocking; false means the buffer is
// full and nothing changed.
func (s *Simulator) TryProduce(item string) bool {
	if !s.buffer.TryProduce(item) {
		return false
	}
	s.metrics.RecordProduced(s.buffer.Status().Items)
	return true
}

// Consume removes the head item of the bounded buffer, suspending the
// caller while the buffer is empty.
func (s *Simulator) Consume() string {
	item := s.buffer.Consume()
	s.metrics.RecordConsumed(s.buffer.Status().Items)
	return item
}

// TryConsume removes the head item without blocking; ok is false when the
// buffer is empty.
func (s *Simulator) TryConsume() (string, bool) {
	item, ok := s.buffer.TryConsume()
	if !ok {
		return "", false
	}
	s.metrics.RecordConsumed(s.buffer.Status().Items)
	return item, true
}

// BufferStatus returns a consistent snapshot of the bounded buffer.
func (s *Simulator) BufferStatus() syncprim.BufferStatus {
	return s.buffer.Status()
}

// BufferLogs returns the tail of the producer-consumer activity log.
func (s *Simulator) BufferLogs() []string {
	return s.buffer.Logs(s.logTail)
}

// Events returns the tail of the simulation event journal.
func (s *Simulator) Events() []string {
	return s.events.tail(s.logTail)
}

// observeState refreshes the resource and queue gauges. Callers hold s.mu.
func (s *Simulator) observeState() {
	status := s.pool.Status()
	s.metrics.SetResourceState(status.MemoryFree, status.CPUFree)
	s.metrics.SetReadyQueueLength(s.table.ReadyLen())
}
