// Command viofrontend wires the front-end coordinator to a placeholder
// back-end estimator and a log-only event sink, following the
// utils.ContextualMain wiring pattern used across go.viam.com/rdk's cmd/
// binaries. It is a minimal integration example, not a deployable service:
// the real binary would substitute its own Estimator and EventSink.
package main

import (
	"context"

	"go.viam.com/utils"

	"go.viam.com/vio/config"
	"go.viam.com/vio/estimator/estimatortest"
	"go.viam.com/vio/events"
	"go.viam.com/vio/frontend"
	"go.viam.com/vio/logging"
)

var logger = logging.NewLogger("viofrontend")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

func mainWithArgs(ctx context.Context, args []string, logger logging.Logger) error {
	cfg := config.Config{}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.ReplaceGlobal(logger.Named(cfg.LoggerName))

	// No production Estimator is wired into this module (spec.md §1's
	// back-end math is out of scope); estimatortest.Fake stands in so the
	// dispatcher loop has something to run against.
	fake := &estimatortest.Fake{}
	sink := events.LogSink{Logger: logger}
	core := frontend.New(fake, sink, logger)

	core.Start(ctx)
	defer core.Stop()

	<-ctx.Done()
	return nil
}
