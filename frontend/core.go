// Package frontend wires the Sensor Queues, Fast-Path Propagator, Alignment
// Engine, and back-end Estimator together into the Batch Dispatcher and
// Control Endpoints of spec.md §4.4-§4.5: the single consumer goroutine and
// the ingress methods concurrent callback threads invoke.
package frontend

import (
	"context"
	"sync"

	"github.com/golang/geo/r3"
	"go.uber.org/atomic"
	"go.viam.com/utils"

	"go.viam.com/vio/align"
	"go.viam.com/vio/clock"
	"go.viam.com/vio/estimator"
	"go.viam.com/vio/events"
	"go.viam.com/vio/invariant"
	"go.viam.com/vio/logging"
	"go.viam.com/vio/propagate"
	"go.viam.com/vio/queue"
	"go.viam.com/vio/relocalization"
)

// Core is the front-end coordinator: it owns the three mutexes described in
// spec.md §5 (estimatorMu -> queueMu -> stateMu is the fixed acquisition
// order) and runs the single Batch Dispatcher goroutine.
type Core struct {
	logger    logging.Logger
	estimator estimator.Estimator
	sink      events.EventSink

	queues *queue.Queues // owns queueMu internally (Queues.Mu)
	fast   *propagate.State

	estimatorMu sync.Mutex

	// DispatcherState, spec.md §3. tCurrent is only touched by the
	// dispatcher goroutine and by Restart, both under estimatorMu; tLastImu
	// is only touched by OnIMU and Restart, both under queues.Mu. No
	// separate mutex is needed for them.
	tCurrent    clock.Timestamp
	tLastImu    clock.Timestamp
	initFeature bool

	// lastAcc/lastGyr are the running last-sample readings fed to
	// processIMU, used to interpolate the straddle sample (spec.md §4.4).
	lastAcc, lastGyr r3.Vector

	waitCount atomic.Int64

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New constructs a Core around the given back-end estimator and output
// sink. Callers must call Start to begin dispatching batches.
func New(e estimator.Estimator, sink events.EventSink, logger logging.Logger) *Core {
	return &Core{
		logger:    logger,
		estimator: e,
		sink:      sink,
		queues:    queue.New(),
		fast:      &propagate.State{},
		tCurrent:  clock.Unset,
		tLastImu:  0,
	}
}

// Start launches the Batch Dispatcher goroutine (spec.md §4.4's main loop).
func (c *Core) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.wg.Add(1)
	utils.ManagedGo(func() {
		c.run(ctx)
	}, c.wg.Done)
}

// Stop cancels the dispatcher goroutine and waits for it to exit.
func (c *Core) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
}

// WaitCount returns the number of times the Alignment Engine has returned
// empty because it was waiting for more IMU coverage (spec.md §4.3's
// sum_of_wait). Exposed for tests and diagnostics.
func (c *Core) WaitCount() int64 {
	return c.waitCount.Load()
}

// FastState exposes the current fast-path snapshot, e.g. for a caller that
// wants to read the propagated pose outside of the OnIMU publish hook.
func (c *Core) FastState() propagate.Snapshot {
	return c.fast.Snapshot()
}

// run is the Batch Dispatcher main loop of spec.md §4.4: wait for a
// non-empty batch list, process it under M_estimator, then resync the fast
// path under M_queues -> M_state.
func (c *Core) run(ctx context.Context) {
	for {
		batches := c.waitForBatches(ctx)
		if batches == nil {
			return // context canceled
		}

		c.estimatorMu.Lock()
		for _, b := range batches {
			c.processBatch(b)
		}
		c.estimatorMu.Unlock()

		c.resync()
	}
}

// waitForBatches blocks until the Alignment Engine can produce at least one
// batch, or ctx is canceled. It re-checks the predicate after every wake,
// draining the queues atomically with respect to ingress by holding
// queues.Mu for the duration of each check (Design Note 9.2, option (b)).
func (c *Core) waitForBatches(ctx context.Context) []align.Batch {
	for {
		c.queues.Mu.Lock()
		batches := align.GetBatches(&c.queues.IMU, &c.queues.Feat, c.estimator.TimeOffset().Get(), &c.waitCount, c.logger)
		c.queues.Mu.Unlock()

		if len(batches) > 0 {
			return batches
		}

		select {
		case <-ctx.Done():
			return nil
		case <-c.queues.Waker.C():
		}
	}
}

// processBatch implements spec.md §4.4's per-batch processing: feed IMU
// samples with straddle interpolation, install any pending relocalization
// frame, hand the feature bundle to the back-end, and emit per-frame
// events. Caller holds estimatorMu.
func (c *Core) processBatch(b align.Batch) {
	td := c.estimator.TimeOffset().Get()
	tf := b.Feature.T.Add(td)

	for _, sample := range b.IMUs {
		if sample.T <= tf {
			if c.tCurrent == clock.Unset {
				c.tCurrent = sample.T
			}
			dt := sample.T.Sub(c.tCurrent)
			invariant.Assert(dt >= 0, "frontend: negative dt %f feeding processIMU", dt)
			c.tCurrent = sample.T
			c.estimator.ProcessIMU(dt, sample.Acc, sample.Gyr)
			c.lastAcc, c.lastGyr = sample.Acc, sample.Gyr
		} else {
			dt1 := tf.Sub(c.tCurrent)
			dt2 := sample.T.Sub(tf)
			invariant.Assert(dt1 >= 0, "frontend: negative dt1 %f interpolating straddle sample", dt1)
			invariant.Assert(dt2 >= 0, "frontend: negative dt2 %f interpolating straddle sample", dt2)
			invariant.Assert(dt1+dt2 > 0, "frontend: degenerate interpolation window")
			w1 := dt2 / (dt1 + dt2)
			w2 := dt1 / (dt1 + dt2)
			acc := c.lastAcc.Mul(w1).Add(sample.Acc.Mul(w2))
			gyr := c.lastGyr.Mul(w1).Add(sample.Gyr.Mul(w2))
			c.estimator.ProcessIMU(dt1, acc, gyr)
			c.tCurrent = tf
		}
	}

	relo, hasRelo := c.installRelo()

	c.estimator.ProcessImage(estimator.FeatureMap(b.Feature), b.Feature.T)

	c.emitFrameEvents(b.Feature.T, relo, hasRelo)
}

// installRelo drains the relocalization queue, keeping only the most
// recently enqueued bundle, and installs it on the back-end if present
// (spec.md §4.4 step 2).
func (c *Core) installRelo() (relocalization.Bundle, bool) {
	c.queues.Mu.Lock()
	drained := c.queues.Relo.Drain()
	c.queues.Mu.Unlock()

	if len(drained) == 0 {
		return relocalization.Bundle{}, false
	}
	latest := drained[len(drained)-1]
	c.estimator.SetReloFrame(latest)
	return latest, true
}

// emitFrameEvents publishes the fixed set of per-frame outputs spec.md §6
// requires, plus a relocalization event iff one was installed this batch.
func (c *Core) emitFrameEvents(t clock.Timestamp, relo relocalization.Bundle, hasRelo bool) {
	w := c.estimator.Window()
	pose := events.Pose{T: t, P: w.P, V: w.V, Q: w.Q, FrameID: events.Frame}
	c.sink.PublishOdometry(pose)
	c.sink.PublishKeyPoses(t, nil)
	c.sink.PublishCameraPose(pose)
	c.sink.PublishPointCloud(t, nil)
	c.sink.PublishTransform(pose)
	c.sink.PublishKeyframe(t)
	if hasRelo {
		c.sink.PublishRelocalization(relo)
	}
}

// resync implements spec.md §4.4's post-batch resync: if the back-end is
// optimized, copy its window tail into FastState and replay the still
// buffered IMU samples through the fast path from a value snapshot of the
// queue, leaving the queue itself untouched. The copy and the replay run
// under one acquisition of FastState's own mutex (ReplaySnapshot), so a
// live IMU sample arriving concurrently through OnIMU can never interleave
// mid-replay and drive t_latest non-monotonic.
func (c *Core) resync() {
	c.queues.Mu.Lock()
	defer c.queues.Mu.Unlock()

	if c.estimator.SolverFlag() != estimator.NonLinear {
		return
	}
	w := c.estimator.Window()
	c.fast.ReplaySnapshot(w.P, w.V, w.Ba, w.Bg, w.Q, w.AccLast, w.GyrLast, c.tCurrent, c.queues.IMU.Snapshot(), w.Gravity)
}
