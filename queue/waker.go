package queue

// Waker is a coalescing wake signal: any number of Notify calls before the
// receiver drains C() collapse into a single pending wake. This realizes
// spec.md §4.1's "condition variable notified whenever any queue gains an
// element" without losing wakeups and without blocking the notifying
// ingress goroutine (spec.md §5's "ingress callbacks must not block").
type Waker struct {
	ch chan struct{}
}

// NewWaker returns a ready-to-use Waker.
func NewWaker() *Waker {
	return &Waker{ch: make(chan struct{}, 1)}
}

// Notify schedules a wake. It never blocks.
func (w *Waker) Notify() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// C returns the channel the dispatcher selects on to wait for a wake.
func (w *Waker) C() <-chan struct{} {
	return w.ch
}
