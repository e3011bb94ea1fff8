package event

import "sync"

const minQueueSlots = 16

// queue is a multi-producer, single-consumer FIFO ring. It grows instead
// of rejecting producers, so input is never lost while a listener runs long.
type queue[T any] struct {
	mu    sync.Mutex
	head  uint32 // next slot to write
	tail  uint32 // next slot to read
	slots []T
}

func newQueue[T any](capacity int) *queue[T] {
	n := minQueueSlots
	for n < capacity {
		n <<= 1
	}
	return &queue[T]{slots: make([]T, n)}
}

// push appends v and reports the queue length before the push.
func (q *queue[T]) push(v T) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := int(q.head - q.tail)
	if n == len(q.slots) {
		q.grow()
	}
	q.slots[q.head&uint32(len(q.slots)-1)] = v
	q.head++
	return n
}

func (q *queue[T]) grow() {
	next := make([]T, len(q.slots)*2)
	mask := uint32(len(q.slots) - 1)
	n := q.head - q.tail
	for i := uint32(0); i < n; i++ {
		next[i] = q.slots[(q.tail+i)&mask]
	}
	q.slots = next
	q.tail = 0
	q.head = n
}

// pop removes the oldest value.
func (q *queue[T]) pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.head == q.tail {
		return zero, false
	}
	i := q.tail & uint32(len(q.slots)-1)
	v := q.slots[i]
	q.slots[i] = zero
	q.tail++
	return v, true
}

func (q *queue[T]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int(q.head - q.tail)
}
