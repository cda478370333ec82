// Package propagate implements the Fast-Path Propagator of spec.md §4.2: a
// running pose/velocity/bias state advanced on every IMU arrival via
// midpoint integration, independent of the back-end's optimization cadence.
package propagate

import (
	"sync"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/vio/clock"
	"go.viam.com/vio/imu"
	"go.viam.com/vio/spatialmath"
)

// State is FastState from spec.md §3: exclusively owned by the fast path
// under its own mutex (M_state).
//
// Before the first resync from the back-end (see ReplaySnapshot), Q is the
// zero quaternion and P/V are zero — not a valid pose. This mirrors the
// reference estimator, which never publishes propagated odometry until the
// back-end has reached its NON_LINEAR solver phase (spec.md §3's invariant),
// so the meaningless interim state is never observed externally.
type State struct {
	mu sync.Mutex

	P, V   r3.Vector
	Q      quat.Number
	Ba, Bg r3.Vector

	accPrev, gyrPrev r3.Vector
	tLatest          clock.Timestamp
	seeded           bool
}

// Snapshot is a read-only copy of State, safe to pass around after the lock
// is released.
type Snapshot struct {
	P, V   r3.Vector
	Q      quat.Number
	Ba, Bg r3.Vector
}

// Snapshot returns a value copy of the current pose/velocity/bias state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{P: s.P, V: s.V, Q: s.Q, Ba: s.Ba, Bg: s.Bg}
}

// OnIMU advances State by one IMU sample using midpoint integration
// (spec.md §4.2 steps 1-8), under gravity vector g supplied by the back-end.
// It reports whether the state was actually stepped; the first sample after
// (re)initialization only seeds t_latest and returns false.
func (s *State) OnIMU(sample imu.Sample, g r3.Vector) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepLocked(sample, g)
}

// stepLocked is OnIMU's body, factored out so ReplaySnapshot can step
// multiple samples under a single lock acquisition. Callers must hold mu.
func (s *State) stepLocked(sample imu.Sample, g r3.Vector) bool {
	if !s.seeded {
		s.tLatest = sample.T
		s.seeded = true
		return false
	}

	dt := sample.T.Sub(s.tLatest)

	a0w := spatialmath.Rotate(s.Q, s.accPrev.Sub(s.Ba)).Sub(g)
	gyrMid := s.gyrPrev.Add(sample.Gyr).Mul(0.5).Sub(s.Bg)
	s.Q = quat.Mul(s.Q, spatialmath.DeltaQ(gyrMid.Mul(dt)))
	a1w := spatialmath.Rotate(s.Q, sample.Acc.Sub(s.Ba)).Sub(g)
	aAvg := a0w.Add(a1w).Mul(0.5)

	s.P = s.P.Add(s.V.Mul(dt)).Add(aAvg.Mul(0.5 * dt * dt))
	s.V = s.V.Add(aAvg.Mul(dt))

	s.accPrev = sample.Acc
	s.gyrPrev = sample.Gyr
	s.tLatest = sample.T
	return true
}

// ReplaySnapshot atomically resyncs State from the back-end's optimized
// sliding-window tail and replays a value-snapshot of the still-buffered
// IMU samples through it, per spec.md §4.4's post-batch resync. tLatest is
// seeded from the dispatcher's t_current, not the window's own timestamp,
// matching the reference implementation.
//
// The resync and the entire replay loop run under one acquisition of mu, so
// a concurrent OnIMU call from live IMU ingress can never interleave
// mid-replay: without that, a live sample could advance tLatest past a
// still-queued replay sample's timestamp, driving dt negative and silently
// corrupting P/V (spec.md §3's "t_latest is monotonically non-decreasing
// except across a restart").
func (s *State) ReplaySnapshot(p, v, ba, bg r3.Vector, q quat.Number, accPrev, gyrPrev r3.Vector, tCurrent clock.Timestamp, samples []imu.Sample, g r3.Vector) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.P, s.V, s.Ba, s.Bg, s.Q = p, v, ba, bg, q
	s.accPrev, s.gyrPrev = accPrev, gyrPrev
	s.tLatest = tCurrent
	s.seeded = true

	for _, sample := range samples {
		s.stepLocked(sample, g)
	}
}
