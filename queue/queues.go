package queue

import (
	"sync"

	"go.viam.com/vio/feature"
	"go.viam.com/vio/imu"
	"go.viam.com/vio/relocalization"
)

// Queues is the Sensor Queues component of spec.md §4.1: the three FIFOs
// and the single mutex guarding them, plus the wake signal notified
// whenever any of the three gains an element.
type Queues struct {
	Mu    sync.Mutex
	IMU   FIFO[imu.Sample]
	Feat  FIFO[feature.Bundle]
	Relo  FIFO[relocalization.Bundle]
	Waker *Waker
}

// New returns an empty Queues with a ready wake signal.
func New() *Queues {
	return &Queues{Waker: NewWaker()}
}

// PushFeature enqueues a feature bundle and notifies the waker.
func (q *Queues) PushFeature(b feature.Bundle) {
	q.Mu.Lock()
	q.Feat.Push(b)
	q.Mu.Unlock()
	q.Waker.Notify()
}

// PushRelo enqueues a relocalization bundle. No notification: the
// dispatcher only needs relocalization opportunistically, per spec.md §4.5.
func (q *Queues) PushRelo(b relocalization.Bundle) {
	q.Mu.Lock()
	q.Relo.Push(b)
	q.Mu.Unlock()
}

// DrainForRestart empties the IMU and feature queues, leaving the
// relocalization queue untouched, per spec.md §4.5.
func (q *Queues) DrainForRestart() {
	q.Mu.Lock()
	q.IMU.Drain()
	q.Feat.Drain()
	q.Mu.Unlock()
}
