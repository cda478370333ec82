// Package events declares the publication sink the dispatcher emits
// per-batch outputs to (spec.md §6). Message transport is an explicit
// non-goal (spec.md §1); EventSink is the same kind of named external
// interface the spec already uses for Estimator, and LogSink is an
// ambient, transport-free implementation for local development, grounded
// on go.viam.com/rdk/components/movementsensor's pattern of registering
// typed readings against a component independent of any RPC transport.
package events

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/vio/clock"
	"go.viam.com/vio/logging"
	"go.viam.com/vio/relocalization"
)

// Frame is the coordinate frame label attached to every pose output, per
// spec.md §6.
const Frame = "world"

// Pose is a minimal 6-DoF pose plus velocity, shared by the odometry
// publications.
type Pose struct {
	T        clock.Timestamp
	P, V     r3.Vector
	Q        quat.Number
	FrameID  string
}

// EventSink receives the per-batch outputs the dispatcher produces.
type EventSink interface {
	// PublishPropagatedOdometry is the high-rate, fast-path pose emitted
	// on every IMU arrival once the back-end is optimized.
	PublishPropagatedOdometry(p Pose)
	// PublishOdometry is the lower-rate, optimized pose emitted once per
	// processed feature bundle.
	PublishOdometry(p Pose)
	PublishKeyPoses(t clock.Timestamp, poses []r3.Vector)
	PublishCameraPose(p Pose)
	PublishPointCloud(t clock.Timestamp, points []r3.Vector)
	PublishTransform(p Pose)
	PublishKeyframe(t clock.Timestamp)
	PublishRelocalization(b relocalization.Bundle)
}

// LogSink is a transport-free EventSink that logs each publication at
// Debug level; useful for local development and tests.
type LogSink struct {
	Logger logging.Logger
}

func (s LogSink) PublishPropagatedOdometry(p Pose) {
	s.Logger.Debugw("propagated odometry", "t", float64(p.T), "p", p.P)
}

func (s LogSink) PublishOdometry(p Pose) {
	s.Logger.Debugw("odometry", "t", float64(p.T), "p", p.P)
}

func (s LogSink) PublishKeyPoses(t clock.Timestamp, poses []r3.Vector) {
	s.Logger.Debugw("key poses", "t", float64(t), "n", len(poses))
}

func (s LogSink) PublishCameraPose(p Pose) {
	s.Logger.Debugw("camera pose", "t", float64(p.T))
}

func (s LogSink) PublishPointCloud(t clock.Timestamp, points []r3.Vector) {
	s.Logger.Debugw("point cloud", "t", float64(t), "n", len(points))
}

func (s LogSink) PublishTransform(p Pose) {
	s.Logger.Debugw("transform", "t", float64(p.T))
}

func (s LogSink) PublishKeyframe(t clock.Timestamp) {
	s.Logger.Debugw("keyframe", "t", float64(t))
}

func (s LogSink) PublishRelocalization(b relocalization.Bundle) {
	s.Logger.Debugw("relocalization", "t", float64(b.T), "frame_index", b.FrameIndex)
}
