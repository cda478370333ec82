package feature

import (
	"testing"

	"go.viam.com/test"
)

func TestChannel0RoundTrip(t *testing.T) {
	// Testable Property 6: EncodeChannel0/DecodeChannel0 round-trip for
	// every non-negative integer feature/camera id pair.
	for featureID := 0; featureID < 50; featureID++ {
		for cameraID := 0; cameraID < NumCameras; cameraID++ {
			v := EncodeChannel0(featureID, cameraID)
			gotFeature, gotCamera := DecodeChannel0(v)
			test.That(t, gotFeature, test.ShouldEqual, featureID)
			test.That(t, gotCamera, test.ShouldEqual, cameraID)
		}
	}
}

func TestDecodeChannel0Rounding(t *testing.T) {
	// The wire format stores the encoded id as a float and decodes with
	// (int)(v + 0.5); a value that drifted slightly below its integer
	// target must still round-trip.
	gotFeature, gotCamera := DecodeChannel0(41.999999)
	test.That(t, gotFeature, test.ShouldEqual, 42)
	test.That(t, gotCamera, test.ShouldEqual, 0)
}

func TestFromChannels(t *testing.T) {
	xs := []float64{0.1, 0.2}
	ys := []float64{0.3, 0.4}
	zs := []float64{1, 1}
	ch0 := []float64{EncodeChannel0(7, 0), EncodeChannel0(8, 0)}
	ch1 := []float64{100, 101}
	ch2 := []float64{200, 201}
	ch3 := []float64{1, 2}
	ch4 := []float64{3, 4}

	pts := FromChannels(xs, ys, zs, ch0, ch1, ch2, ch3, ch4)
	test.That(t, len(pts), test.ShouldEqual, 2)
	test.That(t, pts[0].FeatureID, test.ShouldEqual, 7)
	test.That(t, pts[0].U, test.ShouldEqual, 100.0)
	test.That(t, pts[1].FeatureID, test.ShouldEqual, 8)
	test.That(t, pts[1].VY, test.ShouldEqual, 4.0)
}
