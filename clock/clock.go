// Package clock defines the opaque timestamp type shared by the IMU and
// feature streams, and the advisory time-offset model ("td") the back-end
// estimator maintains to align the two clocks.
package clock

import "go.uber.org/atomic"

// Timestamp is a monotonic instant, in seconds, on whichever clock produced
// it. IMU and feature timestamps live on nominally different clocks until
// reconciled through an Offset.
type Timestamp float64

// Unset is the sentinel value for "no timestamp yet" (DispatcherState.t_current
// before the first IMU sample is fed to the back-end).
const Unset Timestamp = -1

// Sub returns a-b as a plain float64 duration in seconds.
func (a Timestamp) Sub(b Timestamp) float64 {
	return float64(a - b)
}

// Add returns a advanced by dt seconds.
func (a Timestamp) Add(dt float64) Timestamp {
	return a + Timestamp(dt)
}

// Offset is the back-end-owned visual-to-inertial time offset ("td" in
// spec.md §4.6). It is written exactly once per back-end optimization and
// read on every alignment and dispatch cycle, so it is backed by an atomic
// rather than a mutex: a torn read is impossible and a stale read merely
// delays a batch by one cycle, which spec.md §9 explicitly tolerates.
type Offset struct {
	v atomic.Float64
}

// Get returns the current offset.
func (o *Offset) Get() float64 {
	return o.v.Load()
}

// Set installs a new offset, normally called by the back-end after an
// optimization converges.
func (o *Offset) Set(td float64) {
	o.v.Store(td)
}
