// Package syncprim implements the synchronization primitives of the
// simulation: a blocking counting semaphore and the semaphore-backed
// bounded buffer of the producer-consumer problem.
package syncprim

import "sync"

// Semaphore is a counting semaphore with true blocking semantics. Acquire
// suspends the caller until the value is positive and then decrements it;
// Release increments the value and wakes one waiter. Acquire and Release
// are atomic with respect to each other.
//
// There is no timeout or cancellation: a blocked Acquire models an
// indefinite wait. Callers needing a bounded wait must layer it on top, or
// use TryAcquire.
type Semaphore struct {
	mu    sync.Mutex
	cond  *sync.Cond
	value int
}

// NewSemaphore creates a semaphore with the given initial value.
func NewSemaphore(initial int) *Semaphore {
	s := &Semaphore{value: initial}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Acquire blocks until the semaphore value is positive, then decrements it.
func (s *Semaphore) Acquire() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.value <= 0 {
		s.cond.Wait()
	}
	s.value--
}

// TryAcquire decrements the semaphore without blocking. It reports false
// when the operation would block.
func (s *Semaphore) TryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.value <= 0 {
		return false
	}
	s.value--
	return true
}

// Release increments the semaphore and wakes one waiter, if any.
func (s *Semaphore) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value++
	s.cond.Signal()
}

// Value returns the current semaphore value. It is a point-in-time
// observation for status reporting, not a synchronization tool.
func (s *Semaphore) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}
