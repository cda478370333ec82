package frontend

import (
	"go.viam.com/vio/clock"
	"go.viam.com/vio/estimator"
	"go.viam.com/vio/events"
	"go.viam.com/vio/feature"
	"go.viam.com/vio/imu"
	"go.viam.com/vio/relocalization"
)

// OnIMU is the IMU ingress control endpoint (spec.md §4.5). Samples at or
// before the last accepted timestamp are dropped with a warning and never
// touch the queue or fast-path state (Testable Property 5). Accepted
// samples are enqueued, the dispatcher is notified, and the fast path is
// advanced immediately so a propagated pose is available with minimal
// latency.
func (c *Core) OnIMU(sample imu.Sample) {
	c.queues.Mu.Lock()
	if sample.T <= c.tLastImu {
		c.queues.Mu.Unlock()
		c.logger.Warnw("imu sample out of order, dropping", "t", float64(sample.T), "t_last_imu", float64(c.tLastImu))
		return
	}
	c.tLastImu = sample.T
	c.queues.IMU.Push(sample)
	c.queues.Mu.Unlock()
	c.queues.Waker.Notify()

	if c.fast.OnIMU(sample, c.estimator.Gravity()) && c.estimator.SolverFlag() == estimator.NonLinear {
		snap := c.fast.Snapshot()
		c.sink.PublishPropagatedOdometry(events.Pose{
			T: sample.T, P: snap.P, V: snap.V, Q: snap.Q, FrameID: events.Frame,
		})
	}
}

// OnFeatureBundle is the feature ingress control endpoint. The very first
// bundle is always dropped: it carries no optical-flow velocities yet
// (spec.md §4.5, §7).
func (c *Core) OnFeatureBundle(b feature.Bundle) {
	if !c.initFeature {
		c.initFeature = true
		return
	}
	c.queues.PushFeature(b)
}

// OnRelocalization is the relocalization ingress control endpoint. No
// dispatcher notification is sent: relocalization frames are consumed
// opportunistically on the next batch (spec.md §4.5).
func (c *Core) OnRelocalization(b relocalization.Bundle) {
	c.queues.PushRelo(b)
}

// Restart implements spec.md §4.5's restart procedure: drain imu_q and
// feat_q (relo_q is left as-is), clear and reparameterize the back-end, and
// reset the dispatcher's clock state. Restart is not an error path
// (spec.md §7); it always succeeds because ClearState/SetParameter are
// void back-end primitives (spec.md §6). init_feature is deliberately left
// untouched: the reference restart_callback never resets it either, and a
// restart is not the start of a new process.
//
// tLastImu is reset while holding queues.Mu, the same lock OnIMU checks it
// under, and tCurrent is reset while holding estimatorMu, the same lock
// processBatch mutates it under (core.go's DispatcherState invariant) — a
// concurrent OnIMU or dispatcher cycle must never observe a torn write to
// either field. FastState is untouched: only DispatcherState resets on
// restart (spec.md §4.5), and FastState is overwritten by the next
// post-optimization resync(), exactly as the reference restart_callback
// leaves tmp_P/tmp_Q/tmp_V/init_imu alone.
func (c *Core) Restart() {
	c.queues.DrainForRestart()
	c.queues.Mu.Lock()
	c.tLastImu = 0
	c.queues.Mu.Unlock()

	c.estimatorMu.Lock()
	c.estimator.ClearState()
	c.estimator.SetParameter()
	c.tCurrent = clock.Unset
	c.estimatorMu.Unlock()
}
