// Package relocalization defines the loop-closure correspondence bundle
// consumed opportunistically by the dispatcher, decoded from the single
// eight-scalar channel described in spec.md §6.
package relocalization

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/vio/clock"
)

// Bundle is one relocalization (loop-closure) frame.
type Bundle struct {
	T          clock.Timestamp
	FrameIndex int
	// 3D match points reported by the pose-graph source.
	MatchPoints []r3.Vector
	TVec        r3.Vector
	Quat        quat.Number
}

// FromChannel decodes a Bundle from its wire representation: a timestamp, a
// list of 3-vec match points, and a single channel carrying eight scalars in
// order t_x, t_y, t_z, q_w, q_x, q_y, q_z, frame_index, per spec.md §6.
func FromChannel(t clock.Timestamp, matchPoints []r3.Vector, channel [8]float64) Bundle {
	return Bundle{
		T:           t,
		MatchPoints: matchPoints,
		TVec:        r3.Vector{X: channel[0], Y: channel[1], Z: channel[2]},
		Quat:        quat.Number{Real: channel[3], Imag: channel[4], Jmag: channel[5], Kmag: channel[6]},
		FrameIndex:  int(channel[7]),
	}
}
