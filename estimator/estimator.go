// Package estimator declares the boundary between the front-end
// coordinator and the nonlinear back-end estimator: only the operations
// and readable fields spec.md §6 lists are part of this contract. The
// back-end's own preintegration, initialization, and marginalization are
// out of scope (spec.md §1).
package estimator

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/vio/clock"
	"go.viam.com/vio/feature"
	"go.viam.com/vio/relocalization"
)

// SolverFlag mirrors the back-end's coarse initialization state machine.
type SolverFlag int

const (
	// Initializing means the back-end has not yet completed its first
	// sliding-window optimization.
	Initializing SolverFlag = iota
	// NonLinear means the back-end has converged at least once and its
	// window tail is safe to read.
	NonLinear
)

// WindowState is the readable sliding-window tail: Ps, Rs, Vs, Bas, Bgs at
// index WINDOW_SIZE, plus the last-accepted IMU sample and gravity (spec.md
// §6). The time offset is read separately through Estimator.TimeOffset.
type WindowState struct {
	P, V, Ba, Bg r3.Vector
	Q            quat.Number
	AccLast      r3.Vector
	GyrLast      r3.Vector
	Gravity      r3.Vector
}

// FeatureObservation is one (camera, 7-vector) reading contributed toward a
// single feature's entry in the map passed to ProcessImage.
type FeatureObservation struct {
	CameraID int
	Vector   [7]float64
}

// Estimator is the capability handle the front-end holds for the back-end.
// Every method may block on nonlinear optimization work. The front-end holds
// M_estimator around ProcessIMU, ProcessImage, SetReloFrame, ClearState and
// SetParameter; the read accessors (SolverFlag, Window, Gravity, TimeOffset)
// are also called from IMU ingress, batch alignment and the fast-path resync
// without M_estimator.
type Estimator interface {
	// ProcessIMU feeds one IMU integration step.
	ProcessIMU(dt float64, acc, gyr r3.Vector)
	// ProcessImage feeds one feature frame, keyed by feature id.
	ProcessImage(features map[int][]FeatureObservation, t clock.Timestamp)
	// SetReloFrame installs a relocalization frame for the next optimization.
	SetReloFrame(b relocalization.Bundle)
	// ClearState and SetParameter are the restart primitives.
	ClearState()
	SetParameter()

	// SolverFlag reports the current solver phase.
	SolverFlag() SolverFlag
	// Window returns the current readable sliding-window tail. Only valid
	// when SolverFlag() == NonLinear.
	Window() WindowState
	// Gravity returns the back-end's world-frame gravity vector.
	Gravity() r3.Vector
	// TimeOffset returns the current td, per spec.md §4.6's advisory
	// clock.Offset model.
	TimeOffset() *clock.Offset
}

// FeatureMap builds the {feature_id: [(camera_id, 7-vector)]} structure
// spec.md §4.4 step 3 requires from a decoded feature bundle.
func FeatureMap(b feature.Bundle) map[int][]FeatureObservation {
	out := make(map[int][]FeatureObservation, len(b.Points))
	for _, p := range b.Points {
		out[p.FeatureID] = append(out[p.FeatureID], FeatureObservation{
			CameraID: p.CameraID,
			Vector:   p.XYZUVVelocity(),
		})
	}
	return out
}
