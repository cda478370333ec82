// Package queue implements the bounded-in-spirit FIFO containers and the
// predicate-wake signal used to hand sensor messages from ingress callbacks
// to the batch dispatcher, following the channel/ticker idioms of
// go.viam.com/rdk/data.Collector rather than raw sync.Cond — see the
// "Waker vs. sync.Cond" resolution in DESIGN.md.
package queue

// FIFO is a strictly-append, front-pop queue. It is not itself
// synchronized: callers hold the shared queue mutex (see frontend.Core)
// around every method call, matching spec.md §4.1's single-mutex design.
type FIFO[T any] struct {
	items []T
}

// Push appends v to the back of the queue.
func (q *FIFO[T]) Push(v T) {
	q.items = append(q.items, v)
}

// Empty reports whether the queue has no elements.
func (q *FIFO[T]) Empty() bool {
	return len(q.items) == 0
}

// Len returns the number of queued elements.
func (q *FIFO[T]) Len() int {
	return len(q.items)
}

// Front returns the first element without removing it.
func (q *FIFO[T]) Front() (T, bool) {
	var zero T
	if q.Empty() {
		return zero, false
	}
	return q.items[0], true
}

// Back returns the last element without removing it.
func (q *FIFO[T]) Back() (T, bool) {
	var zero T
	if q.Empty() {
		return zero, false
	}
	return q.items[len(q.items)-1], true
}

// Pop removes and returns the first element.
func (q *FIFO[T]) Pop() (T, bool) {
	v, ok := q.Front()
	if ok {
		q.items = q.items[1:]
	}
	return v, ok
}

// Drain removes and returns every queued element, leaving the queue empty.
func (q *FIFO[T]) Drain() []T {
	items := q.items
	q.items = nil
	return items
}

// Snapshot returns a value copy of the queue's contents, front to back,
// without mutating the queue itself. Used by the fast-path resync in
// spec.md §4.4 to replay buffered IMU samples without draining imu_q.
func (q *FIFO[T]) Snapshot() []T {
	cp := make([]T, len(q.items))
	copy(cp, q.items)
	return cp
}
