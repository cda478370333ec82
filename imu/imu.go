// Package imu defines the inertial sample type ingested from the IMU
// stream, following the field layout of go.viam.com/rdk/component/imu's
// AngularVelocity/Orientation readings but flattened into a single
// timestamped sample the way the estimator consumes it.
package imu

import (
	"github.com/golang/geo/r3"

	"go.viam.com/vio/clock"
)

// Sample is one inertial measurement: a timestamp plus 3-axis linear
// acceleration and angular velocity.
type Sample struct {
	T   clock.Timestamp
	Acc r3.Vector // linear acceleration
	Gyr r3.Vector // angular velocity
}
