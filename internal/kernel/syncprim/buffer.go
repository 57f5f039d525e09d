package syncprim

import (
	"go.uber.org/zap"
)

// BufferStatus is a consistent snapshot of the bounded buffer, taken under
// the mutual exclusion gate.
type BufferStatus struct {
	Capacity   int      `json:"capacity"`
	Items      int      `json:"items"`
	Content    []string `json:"content"`
	EmptySlots int      `json:"empty_slots"`
	FullSlots  int      `json:"full_slots"`
}

// BoundedBuffer is the classic producer-consumer buffer: a fixed-capacity
// FIFO guarded by two counting semaphores (empty and full slots) and a
// mutual exclusion gate around list mutation. At quiescence
// empty + full = capacity.
//
// Produce and Consume genuinely suspend the calling goroutine; the Try
// variants report would-block instead, for single-threaded cooperative
// stepping by an interactive driver.
type BoundedBuffer struct {
	capacity int
	items    []string

	mutex *Semaphore // mutual exclusion gate, initial value 1
	empty *Semaphore // free slots, initial value capacity
	full  *Semaphore // occupied slots, initial value 0

	activity activityLog
	log      *zap.Logger
}

// BufferOption configures a BoundedBuffer.
type BufferOption func(*BoundedBuffer)

// WithBufferLogger attaches a structured logger to the buffer.
func WithBufferLogger(log *zap.Logger) BufferOption {
	return func(b *BoundedBuffer) { b.log = log }
}

// NewBoundedBuffer creates an empty buffer with the given capacity.
func NewBoundedBuffer(capacity int, opts ...BufferOption) *BoundedBuffer {
	b := &BoundedBuffer{
		capacity: capacity,
		items:    make([]string, 0, capacity),
		mutex:    NewSemaphore(1),
		empty:    NewSemaphore(capacity),
		full:     NewSemaphore(0),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Produce appends an item at the tail, suspending the caller while the
// buffer is full.
func (b *BoundedBuffer) Produce(item string) {
	if !b.empty.TryAcquire() {
		b.activity.add("producer blocked: buffer full")
		b.log.Debug("producer blocked", zap.String("item", item))
		b.empty.Acquire()
	}

	b.mutex.Acquire()
	b.items = append(b.items, item)
	b.activity.add("produced %q -> buffer %d/%d", item, len(b.items), b.capacity)
	b.mutex.Release()

	b.full.Release()
}

// TryProduce appends an item without blocking. It reports false, and
// changes nothing, when the buffer is full.
func (b *BoundedBuffer) TryProduce(item string) bool {
	if !b.empty.TryAcquire() {
		b.activity.add("produce %q rejected: buffer full", item)
		return false
	}

	b.mutex.Acquire()
	b.items = append(b.items, item)
	b.activity.add("produced %q -> buffer %d/%d", item, len(b.items), b.capacity)
	b.mutex.Release()

	b.full.Release()
	return true
}

// Consume removes and returns the head item, suspending the caller while
// the buffer is empty.
func (b *BoundedBuffer) Consume() string {
	if !b.full.TryAcquire() {
		b.activity.add("consumer blocked: buffer empty")
		b.log.Debug("consumer blocked")
		b.full.Acquire()
	}

	b.mutex.Acquire()
	item := b.items[0]
	b.items = b.items[1:]
	b.activity.add("consumed %q -> buffer %d/%d", item, len(b.items), b.capacity)
	b.mutex.Release()

	b.empty.Release()
	return item
}

// TryConsume removes the head item without blocking. ok is false, and
// nothing changes, when the buffer is empty.
func (b *BoundedBuffer) TryConsume() (item string, ok bool) {
	if !b.full.TryAcquire() {
		b.activity.add("consume rejected: buffer empty")
		return "", false
	}

	b.mutex.Acquire()
	item = b.items[0]
	b.items = b.items[1:]
	b.activity.add("consumed %q -> buffer %d/%d", item, len(b.items), b.capacity)
	b.mutex.Release()

	b.empty.Release()
	return item, true
}

// Status returns a consistent snapshot taken under the mutual exclusion
// gate.
func (b *BoundedBuffer) Status() BufferStatus {
	b.mutex.Acquire()
	defer b.mutex.Release()

	content := make([]string, len(b.items))
	copy(content, b.items)
	return BufferStatus{
		Capacity:   b.capacity,
		Items:      len(b.items),
		Content:    content,
		EmptySlots: b.empty.Value(),
		FullSlots:  b.full.Value(),
	}
}

// Capacity returns the fixed capacity of the buffer.
func (b *BoundedBuffer) Capacity() int {
	return b.capacity
}

// Logs returns the last k activity log entries, oldest first.
func (b *BoundedBuffer) Logs(k int) []string {
	return b.activity.tail(k)
}
