package console

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one pending invocation. It owns its ArgStack until drained.
type Entry struct {
	ID       uuid.UUID
	Command  *Command
	Args     *ArgStack
	Line     string
	Enqueued time.Time
}

// CommandQueue is a FIFO of pending invocations shared between any number of
// producers and a single draining goroutine.
type CommandQueue struct {
	mu       sync.Mutex
	pending  []Entry
	capacity int

	newID func() uuid.UUID
	now   func() time.Time
}

// NewCommandQueue creates a queue. A capacity of zero or less means unbounded.
func NewCommandQueue(capacity int) *CommandQueue {
	if capacity < 0 {
		capacity = 0
	}
	return &CommandQueue{
		pending:  make([]Entry, 0, 16),
		capacity: capacity,
		newID:    uuid.New,
		now:      time.Now,
	}
}

// Enqueue appends an invocation. It never waits for a drain to finish.
func (q *CommandQueue) Enqueue(cmd *Command, args *ArgStack, line string) (Entry, error) {
	entry := Entry{
		ID:       q.newID(),
		Command:  cmd,
		Args:     args,
		Line:     line,
		Enqueued: q.now(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.capacity > 0 && len(q.pending) >= q.capacity {
		return Entry{}, ErrQueueFull
	}
	q.pending = append(q.pending, entry)
	return entry, nil
}

// Drain takes every entry queued so far and visits them in FIFO order with the
// lock released, so producers are never held up by a slow handler. Entries
// enqueued while visiting are left for the next drain.
func (q *CommandQueue) Drain(visit func(Entry)) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = make([]Entry, 0, cap(batch))
	q.mu.Unlock()

	for i := range batch {
		visit(batch[i])
		batch[i] = Entry{}
	}
	return len(batch)
}

// Len returns the number of pending entries.
func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Capacity returns the configured bound, zero when unbounded.
func (q *CommandQueue) Capacity() int {
	return q.capacity
}
