// Package invariant provides the fatal-assertion primitive spec.md §7
// prescribes for logical-invariant violations (negative dt, degenerate
// interpolation windows): conditions that should be impossible if upstream
// ordering guarantees hold, and that a supervised process should crash and
// restart on rather than attempt to paper over.
package invariant

import "fmt"

// Assert panics with a formatted message if cond is false. It is the Go
// analogue of the reference estimator's ROS_ASSERT calls.
func Assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
