// Package feature defines the visual feature bundle ingested once per
// camera frame, and the wire-channel encoding described in spec.md §6 —
// the Go analogue of a sensor_msgs/PointCloud's parallel `channels` arrays,
// modeled the way go.viam.com/rdk/data treats a captured reading as an
// opaquely shaped value alongside positional indexing metadata.
package feature

import (
	"github.com/golang/geo/r3"

	"go.viam.com/vio/clock"
)

// NumCameras is the number of cameras multiplexed onto the channel-0
// feature/camera id encoding (NUM_OF_CAM in the original estimator).
const NumCameras = 1

// Point is one tracked feature within a Bundle.
type Point struct {
	FeatureID int
	CameraID  int
	// Normalized camera coordinates; Z is expected to be 1 (spec.md §9 open
	// question) but is copied from the wire as-is and never checked.
	X, Y, Z float64
	// Pixel coordinates.
	U, V float64
	// Pixel-space optical flow velocity.
	VX, VY float64
}

// Bundle is one frame's worth of tracked feature points.
type Bundle struct {
	T      clock.Timestamp
	Points []Point
}

// XYZUVVelocity returns the 7-vector (x, y, z, u, v, vx, vy) the back-end's
// processImage expects for this point.
func (p Point) XYZUVVelocity() [7]float64 {
	return [7]float64{p.X, p.Y, p.Z, p.U, p.V, p.VX, p.VY}
}

// EncodeChannel0 packs a feature/camera id pair into the single float
// channel-0 value the wire format carries, following the
// `feature_id * NUM_OF_CAM + camera_id` convention of spec.md §6.
func EncodeChannel0(featureID, cameraID int) float64 {
	return float64(featureID*NumCameras + cameraID)
}

// DecodeChannel0 recovers (featureID, cameraID) from a channel-0 value,
// applying the `(int)(v + 0.5)` float-to-int rounding the wire format
// mandates before the divmod split.
func DecodeChannel0(v float64) (featureID, cameraID int) {
	id := int(v + 0.5)
	return id / NumCameras, id % NumCameras
}

// FromChannels builds a Bundle's Points from the parallel per-point channel
// arrays described in spec.md §6: channel 0 is the encoded feature/camera
// id, channels 1-4 are pixel u, v, vx, vy. Normalized coordinates arrive
// alongside as parallel xs/ys/zs slices (the point cloud's `points` field
// in the original wire format).
func FromChannels(xs, ys, zs, ch0, ch1, ch2, ch3, ch4 []float64) []Point {
	n := len(xs)
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		featureID, cameraID := DecodeChannel0(ch0[i])
		pts[i] = Point{
			FeatureID: featureID,
			CameraID:  cameraID,
			X:         xs[i],
			Y:         ys[i],
			Z:         zs[i],
			U:         ch1[i],
			V:         ch2[i],
			VX:        ch3[i],
			VY:        ch4[i],
		}
	}
	return pts
}

// Normalized returns the point's normalized camera coordinates as a vector.
func (p Point) Normalized() r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
}
