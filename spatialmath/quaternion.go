// Package spatialmath provides the small quaternion/vector algebra the
// fast-path propagator needs, grounded on go.viam.com/rdk/spatialmath's
// choice of gonum's quat package and golang/geo's r3 package for the same
// purpose.
package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Rotate applies quaternion q to vector v: q * v * conj(q), treating v as a
// pure quaternion. q need not be unit-norm; callers that require a proper
// rotation should normalize first.
func Rotate(q quat.Number, v r3.Vector) r3.Vector {
	vq := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q, vq), quat.Conj(q))
	return r3.Vector{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// DeltaQ builds the small-angle quaternion δQ(θ) = [1, θ/2] spec.md §4.2
// uses to advance orientation by one gyro step. It is intentionally left
// unnormalized to match the reference estimator's behavior, which relies on
// the back-end's periodic optimization to keep drift bounded rather than
// renormalizing every propagation step.
func DeltaQ(theta r3.Vector) quat.Number {
	return quat.Number{Real: 1, Imag: theta.X / 2, Jmag: theta.Y / 2, Kmag: theta.Z / 2}
}

// Identity returns the identity rotation.
func Identity() quat.Number {
	return quat.Number{Real: 1}
}
