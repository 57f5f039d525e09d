// Package ipc implements per-process mailboxes: unbounded FIFO queues of
// messages addressed by pid. A mailbox is created once, at process
// creation, and deliberately outlives its owner so late messages remain
// readable after termination.
package ipc

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoMailbox indicates the receiver has no mailbox. Sending never
// creates one as a side effect.
var ErrNoMailbox = errors.New("no mailbox for receiver")

// Message is one inbound mailbox entry.
type Message struct {
	ID        string    `json:"id"`
	Sender    uint32    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Registry holds the mailbox of every process.
type Registry struct {
	mu    sync.Mutex
	boxes map[uint32][]Message
	log   *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger attaches a structured logger to the registry.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// NewRegistry creates an empty mailbox registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		boxes: make(map[uint32][]Message),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create registers a mailbox for pid. Creating an existing mailbox is a
// no-op; queued messages are preserved.
func (r *Registry) Create(pid uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.boxes[pid]; !ok {
		r.boxes[pid] = nil
	}
}

// Send enqueues a message at the tail of the receiver's mailbox. It fails
// with ErrNoMailbox when the receiver has none.
func (r *Registry) Send(sender, receiver uint32, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.boxes[receiver]; !ok {
		return fmt.Errorf("%w: pid %d", ErrNoMailbox, receiver)
	}

	msg := Message{
		ID:        uuid.New().String(),
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now(),
	}
	r.boxes[receiver] = append(r.boxes[receiver], msg)
	r.log.Debug("message delivered",
		zap.Uint32("sender", sender),
		zap.Uint32("receiver", receiver),
		zap.String("message_id", msg.ID),
	)
	return nil
}

// Receive dequeues the head message of pid's mailbox. ok is false when the
// mailbox is missing or empty; the read is destructive.
func (r *Registry) Receive(pid uint32) (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	box, ok := r.boxes[pid]
	if !ok || len(box) == 0 {
		return Message{}, false
	}
	msg := box[0]
	r.boxes[pid] = box[1:]
	return msg, true
}

// Size returns the number of queued messages, 0 when pid has no mailbox.
func (r *Registry) Size(pid uint32) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.boxes[pid])
}
