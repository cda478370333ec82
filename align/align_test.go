package align

import (
	"testing"

	"go.uber.org/atomic"
	"go.viam.com/test"

	"go.viam.com/vio/clock"
	"go.viam.com/vio/feature"
	"go.viam.com/vio/imu"
	"go.viam.com/vio/logging"
	"go.viam.com/vio/queue"
)

func sample(t float64) imu.Sample {
	return imu.Sample{T: clock.Timestamp(t)}
}

func bundle(t float64) feature.Bundle {
	return feature.Bundle{T: clock.Timestamp(t)}
}

// TestGetBatchesScenarioS1 is spec.md §8 Scenario S1: a single feature
// bundle straddled by five IMU samples with td=0.
func TestGetBatchesScenarioS1(t *testing.T) {
	var imuQ queue.FIFO[imu.Sample]
	var featQ queue.FIFO[feature.Bundle]
	for _, ts := range []float64{0.00, 0.01, 0.02, 0.03, 0.04} {
		imuQ.Push(sample(ts))
	}
	featQ.Push(bundle(0.025))

	var waitCount atomic.Int64
	logger := logging.NewTestLogger(t)

	batches := GetBatches(&imuQ, &featQ, 0, &waitCount, logger)
	test.That(t, len(batches), test.ShouldEqual, 1)

	got := batches[0].IMUs
	test.That(t, len(got), test.ShouldEqual, 4)
	test.That(t, float64(got[0].T), test.ShouldEqual, 0.00)
	test.That(t, float64(got[1].T), test.ShouldEqual, 0.01)
	test.That(t, float64(got[2].T), test.ShouldEqual, 0.02)
	test.That(t, float64(got[3].T), test.ShouldEqual, 0.03)

	// the straddle sample stays at the head of imu_q, not popped.
	front, ok := imuQ.Front()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, float64(front.T), test.ShouldEqual, 0.03)
	test.That(t, imuQ.Len(), test.ShouldEqual, 2)

	test.That(t, featQ.Empty(), test.ShouldBeTrue)
}

// TestGetBatchesScenarioS2 is Scenario S2: a feature bundle older than every
// buffered IMU sample is dropped with a warning instead of ever being paired.
func TestGetBatchesScenarioS2(t *testing.T) {
	var imuQ queue.FIFO[imu.Sample]
	var featQ queue.FIFO[feature.Bundle]
	for _, ts := range []float64{0.10, 0.11, 0.12} {
		imuQ.Push(sample(ts))
	}
	featQ.Push(bundle(0.01))

	var waitCount atomic.Int64
	logger := logging.NewTestLogger(t)

	batches := GetBatches(&imuQ, &featQ, 0, &waitCount, logger)
	test.That(t, len(batches), test.ShouldEqual, 0)
	test.That(t, featQ.Empty(), test.ShouldBeTrue)
	test.That(t, imuQ.Len(), test.ShouldEqual, 3)
}

// TestGetBatchesScenarioS3 is Scenario S3: insufficient IMU coverage past
// the feature timestamp defers the batch and increments the wait counter.
func TestGetBatchesScenarioS3(t *testing.T) {
	var imuQ queue.FIFO[imu.Sample]
	var featQ queue.FIFO[feature.Bundle]
	for _, ts := range []float64{0.00, 0.01, 0.02} {
		imuQ.Push(sample(ts))
	}
	featQ.Push(bundle(0.025))

	var waitCount atomic.Int64
	logger := logging.NewTestLogger(t)

	batches := GetBatches(&imuQ, &featQ, 0, &waitCount, logger)
	test.That(t, len(batches), test.ShouldEqual, 0)
	test.That(t, waitCount.Load(), test.ShouldEqual, int64(1))
	// nothing consumed while waiting.
	test.That(t, imuQ.Len(), test.ShouldEqual, 3)
	test.That(t, featQ.Len(), test.ShouldEqual, 1)
}

// TestGetBatchesStraddleReuse is Testable Property 3: the straddle sample of
// one batch becomes the head of the next batch's IMU list.
func TestGetBatchesStraddleReuse(t *testing.T) {
	var imuQ queue.FIFO[imu.Sample]
	var featQ queue.FIFO[feature.Bundle]
	for _, ts := range []float64{0.00, 0.01, 0.02, 0.03, 0.04, 0.05, 0.06} {
		imuQ.Push(sample(ts))
	}
	featQ.Push(bundle(0.015))
	featQ.Push(bundle(0.045))

	var waitCount atomic.Int64
	logger := logging.NewTestLogger(t)

	batches := GetBatches(&imuQ, &featQ, 0, &waitCount, logger)
	test.That(t, len(batches), test.ShouldEqual, 2)

	firstLast := batches[0].IMUs[len(batches[0].IMUs)-1]
	secondFirst := batches[1].IMUs[0]
	test.That(t, firstLast.T, test.ShouldEqual, secondFirst.T)
}

// TestGetBatchesOrderingInvariant is Testable Property 1: every batch's IMU
// samples are strictly non-decreasing in time.
func TestGetBatchesOrderingInvariant(t *testing.T) {
	var imuQ queue.FIFO[imu.Sample]
	var featQ queue.FIFO[feature.Bundle]
	for _, ts := range []float64{0, 0.01, 0.02, 0.03, 0.04, 0.05} {
		imuQ.Push(sample(ts))
	}
	featQ.Push(bundle(0.022))

	var waitCount atomic.Int64
	logger := logging.NewTestLogger(t)

	batches := GetBatches(&imuQ, &featQ, 0, &waitCount, logger)
	test.That(t, len(batches), test.ShouldEqual, 1)
	imus := batches[0].IMUs
	for i := 1; i < len(imus); i++ {
		test.That(t, imus[i].T >= imus[i-1].T, test.ShouldBeTrue)
	}
}
