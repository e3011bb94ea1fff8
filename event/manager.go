// Package event implements the runtime's event queue and its single
// dispatch loop.
//
// Any goroutine may Trigger events. Exactly one dispatcher pops them in FIFO
// order and runs every listener registered for the event's type, in
// registration order, before popping the next. An event triggered from a
// listener is queued behind the current one and is never dispatched
// reentrantly.
package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"ssdui/logging"
)

var (
	ErrAlreadyRunning = errors.New("event: dispatch loop already running")
)

// Listener handles one event. c is the value passed to Run, payload is the
// value given to TriggerWith (nil for Trigger).
type Listener[C any] func(c C, payload any)

type queued[E comparable] struct {
	ev      E
	payload any
}

// Stats counts dispatcher activity.
type Stats struct {
	Triggered  uint64
	Dispatched uint64
	Unhandled  uint64
	Panics     uint64
	Dropped    uint64
}

// Manager owns the listener table and the queue.
type Manager[E comparable, C any] struct {
	_ [0]func()

	mu        sync.RWMutex
	listeners map[E][]Listener[C]

	q    *queue[queued[E]]
	wake chan struct{}

	running atomic.Bool
	closed  atomic.Bool

	triggered  atomic.Uint64
	dispatched atomic.Uint64
	unhandled  atomic.Uint64
	panics     atomic.Uint64
	dropped    atomic.Uint64
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	capacity int
}

// WithCapacity presizes the queue. It still grows on demand.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// New returns an empty manager.
func New[E comparable, C any](opts ...Option) *Manager[E, C] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager[E, C]{
		listeners: make(map[E][]Listener[C]),
		q:         newQueue[queued[E]](o.capacity),
		wake:      make(chan struct{}, 1),
	}
}

// Register appends fn to e's listeners. Registering the same function twice
// runs it twice.
func (m *Manager[E, C]) Register(e E, fn Listener[C]) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners[e] = append(m.listeners[e], fn)
}

// Listeners returns how many listeners e has.
func (m *Manager[E, C]) Listeners(e E) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.listeners[e])
}

// Trigger queues e with no payload.
func (m *Manager[E, C]) Trigger(e E) bool {
	return m.TriggerWith(e, nil)
}

// TriggerWith queues e with payload and wakes the dispatcher. It returns
// false once the dispatch loop has shut down.
func (m *Manager[E, C]) TriggerWith(e E, payload any) bool {
	if m.closed.Load() {
		m.dropped.Add(1)
		return false
	}
	m.q.push(queued[E]{ev: e, payload: payload})
	m.triggered.Add(1)
	select {
	case m.wake <- struct{}{}:
	default:
	}
	return true
}

// Pending returns the number of queued events.
func (m *Manager[E, C]) Pending() int { return m.q.len() }

// Run is the dispatch loop. It blocks while the queue is empty and returns
// nil when ctx is done; the manager rejects new events afterwards. Only one
// Run may ever be started.
func (m *Manager[E, C]) Run(ctx context.Context, c C) error {
	if !m.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer m.closed.Store(true)

	for {
		m.DispatchPending(c)
		select {
		case <-ctx.Done():
			return nil
		case <-m.wake:
		}
	}
}

// DispatchPending pops and dispatches events until the queue is empty,
// including events queued by the listeners it runs. It returns the number
// of events dispatched. It must not run concurrently with another consumer.
func (m *Manager[E, C]) DispatchPending(c C) int {
	n := 0
	for {
		item, ok := m.q.pop()
		if !ok {
			return n
		}
		m.dispatch(c, item)
		n++
	}
}

func (m *Manager[E, C]) dispatch(c C, item queued[E]) {
	m.mu.RLock()
	ls := m.listeners[item.ev]
	m.mu.RUnlock()

	m.dispatched.Add(1)
	if len(ls) == 0 {
		m.unhandled.Add(1)
		return
	}
	// Register only appends, so this prefix is stable even if a listener
	// registers more while we iterate.
	for i, fn := range ls {
		m.call(c, item, i, fn)
	}
}

func (m *Manager[E, C]) call(c C, item queued[E], i int, fn Listener[C]) {
	defer func() {
		if r := recover(); r != nil {
			m.panics.Add(1)
			logging.Logger().Error("event: listener panic",
				"event", fmt.Sprint(item.ev), "listener", i, "panic", fmt.Sprint(r))
		}
	}()
	fn(c, item.payload)
}

// Stats returns a snapshot of the counters.
func (m *Manager[E, C]) Stats() Stats {
	return Stats{
		Triggered:  m.triggered.Load(),
		Dispatched: m.dispatched.Load(),
		Unhandled:  m.unhandled.Load(),
		Panics:     m.panics.Load(),
		Dropped:    m.dropped.Load(),
	}
}
