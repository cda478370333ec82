// Package estimatortest provides a fake back-end Estimator for tests,
// following the injectable-fake pattern of go.viam.com/rdk/testutils/inject
// (a struct of overridable Func fields plus a recorded call log), adapted
// here to record calls directly since there is no external "real"
// implementation to fall back to inside this module's boundary.
package estimatortest

import (
	"sync"

	"github.com/golang/geo/r3"

	"go.viam.com/vio/clock"
	"go.viam.com/vio/estimator"
	"go.viam.com/vio/relocalization"
)

// IMUCall records one ProcessIMU invocation.
type IMUCall struct {
	Dt       float64
	Acc, Gyr r3.Vector
}

// ImageCall records one ProcessImage invocation.
type ImageCall struct {
	Features map[int][]estimator.FeatureObservation
	T        clock.Timestamp
}

// Fake is a fake Estimator. Its zero value has SolverFlag Initializing,
// zero gravity, and a zero td; tests mutate its exported fields to drive
// scenarios.
type Fake struct {
	mu sync.Mutex

	Flag     estimator.SolverFlag
	Grav     r3.Vector
	Win      estimator.WindowState
	Offset   clock.Offset
	ReloSeen []relocalization.Bundle

	IMUCalls   []IMUCall
	ImageCalls []ImageCall
	ClearCalls int
	ParamCalls int
}

// ProcessIMU records the call.
func (f *Fake) ProcessIMU(dt float64, acc, gyr r3.Vector) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.IMUCalls = append(f.IMUCalls, IMUCall{Dt: dt, Acc: acc, Gyr: gyr})
}

// ProcessImage records the call.
func (f *Fake) ProcessImage(features map[int][]estimator.FeatureObservation, t clock.Timestamp) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ImageCalls = append(f.ImageCalls, ImageCall{Features: features, T: t})
}

// SetReloFrame records the installed bundle.
func (f *Fake) SetReloFrame(b relocalization.Bundle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ReloSeen = append(f.ReloSeen, b)
}

// ClearState counts the call.
func (f *Fake) ClearState() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ClearCalls++
}

// SetParameter counts the call.
func (f *Fake) SetParameter() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ParamCalls++
}

// SolverFlag returns the configured flag.
func (f *Fake) SolverFlag() estimator.SolverFlag {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Flag
}

// Window returns the configured window state.
func (f *Fake) Window() estimator.WindowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Win
}

// Gravity returns the configured gravity vector.
func (f *Fake) Gravity() r3.Vector {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Grav
}

// TimeOffset returns a pointer to the fake's offset.
func (f *Fake) TimeOffset() *clock.Offset {
	return &f.Offset
}

// SetParamCallCount is a convenience accessor mirroring the source's
// count-based restart-idempotence test (spec.md §8, Scenario S5).
func (f *Fake) SetParamCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ParamCalls
}
