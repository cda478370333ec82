// Package align implements the Alignment Engine of spec.md §4.3:
// getMeasurements, draining the sensor queues into time-aligned batches
// pairing each feature frame with the IMU samples spanning it.
package align

import (
	"go.uber.org/atomic"

	"go.viam.com/vio/feature"
	"go.viam.com/vio/imu"
	"go.viam.com/vio/logging"
	"go.viam.com/vio/queue"
)

// Batch pairs one feature frame with the IMU samples spanning it: every
// sample but the last has t < t_feature+td; the last (the straddle sample)
// has t >= t_feature+td and remains in the IMU queue for the next batch.
type Batch struct {
	IMUs    []imu.Sample
	Feature feature.Bundle
}

// GetBatches drains imuQ and featQ into zero or more Batches under the
// rules of spec.md §4.3. The caller must already hold the queues' mutex;
// GetBatches performs no locking of its own.
func GetBatches(imuQ *queue.FIFO[imu.Sample], featQ *queue.FIFO[feature.Bundle], td float64, waitCount *atomic.Int64, logger logging.Logger) []Batch {
	var batches []Batch
	for {
		if imuQ.Empty() || featQ.Empty() {
			return batches
		}

		featFront, _ := featQ.Front()
		tf := featFront.T.Add(td)

		imuBack, _ := imuQ.Back()
		if imuBack.T <= tf {
			// Not enough IMU coverage yet; wait for more to arrive.
			waitCount.Inc()
			return batches
		}

		imuFront, _ := imuQ.Front()
		if imuFront.T >= tf {
			logger.Warnw("dropping feature bundle older than all buffered imu", "t", float64(featFront.T))
			featQ.Pop()
			continue
		}

		img, _ := featQ.Pop()

		var imus []imu.Sample
		for {
			front, ok := imuQ.Front()
			if !ok || !(front.T < tf) {
				break
			}
			imuQ.Pop()
			imus = append(imus, front)
		}
		if len(imus) == 0 {
			logger.Warnw("no imu between two image frames", "t", float64(img.T))
		}

		straddle, ok := imuQ.Front()
		if !ok {
			// imuBack.T > tf guaranteed at least one sample remains beyond
			// tf; this branch would mean the queue invariant was violated.
			panic("align: imu queue unexpectedly empty after straddle collection")
		}
		imus = append(imus, straddle)

		batches = append(batches, Batch{IMUs: imus, Feature: img})
	}
}
