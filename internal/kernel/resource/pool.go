// Package resource implements CPU and memory accounting for the simulated
// kernel. The CPU is a single-unit exclusive resource; memory is a counted
// pool debited at process creation and credited exactly once at
// termination.
package resource

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrInsufficientMemory indicates the pool cannot satisfy the request.
	ErrInsufficientMemory = errors.New("insufficient memory")
	// ErrUnmatchedRelease indicates a release with no prior assignment for
	// that pid. Assignments and releases are strictly paired.
	ErrUnmatchedRelease = errors.New("unmatched memory release")
	// ErrAlreadyAssigned indicates the pid already holds an assignment.
	ErrAlreadyAssigned = errors.New("memory already assigned")
)

// Status is a consistent snapshot of the pool.
type Status struct {
	CPUFree     bool `json:"cpu_free"`
	MemoryTotal int  `json:"memory_total_mb"`
	MemoryUsed  int  `json:"memory_used_mb"`
	MemoryFree  int  `json:"memory_free_mb"`
}

// Pool tracks the CPU unit and the memory ledger. All mutations are
// serialized under one mutex because creation and termination can race.
type Pool struct {
	mu          sync.Mutex
	totalMB     int
	availableMB int
	cpuFree     bool
	assigned    map[uint32]int // pid -> MB held
}

// NewPool creates a pool with totalMB of memory and a free CPU.
func NewPool(totalMB int) *Pool {
	return &Pool{
		totalMB:     totalMB,
		availableMB: totalMB,
		cpuFree:     true,
		assigned:    make(map[uint32]int),
	}
}

// Assign debits mb from the pool on behalf of pid. The operation is
// all-or-nothing: on error no counter changes.
func (p *Pool) Assign(pid uint32, mb int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.assigned[pid]; ok {
		return fmt.Errorf("%w: pid %d", ErrAlreadyAssigned, pid)
	}
	if mb > p.availableMB {
		return fmt.Errorf("%w: requested %d MB, available %d MB", ErrInsufficientMemory, mb, p.availableMB)
	}
	p.assigned[pid] = mb
	p.availableMB -= mb
	return nil
}

// Release credits back the exact amount previously assigned to pid.
// Releasing without a matching assignment is an invariant violation.
func (p *Pool) Release(pid uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	mb, ok := p.assigned[pid]
	if !ok {
		return fmt.Errorf("%w: pid %d", ErrUnmatchedRelease, pid)
	}
	delete(p.assigned, pid)
	p.availableMB += mb
	return nil
}

// Available returns the free memory in MB.
func (p *Pool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.availableMB
}

// AcquireCPU claims the CPU unit. It reports false when the CPU is held.
func (p *Pool) AcquireCPU() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cpuFree {
		return false
	}
	p.cpuFree = false
	return true
}

// ReleaseCPU frees the CPU unit.
func (p *Pool) ReleaseCPU() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cpuFree = true
}

// CPUFree reports whether the CPU unit is free.
func (p *Pool) CPUFree() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cpuFree
}

// Status returns a consistent snapshot of the pool.
func (p *Pool) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Status{
		CPUFree:     p.cpuFree,
		MemoryTotal: p.totalMB,
		MemoryUsed:  p.totalMB - p.availableMB,
		MemoryFree:  p.availableMB,
	}
}
