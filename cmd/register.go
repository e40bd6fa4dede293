package cmd

import (
	"context"

	"github.com/kingalban/aws-butler/app"
)

// RegisterAll registers all CLI commands with the runner.  ctx is the
// signal-aware context every remote call runs under.
func RegisterAll(ctx context.Context, r *app.Runner, opt *Options, version string) {
	registerHelpCommands(r, opt, version)
	registerParameterCommands(ctx, r, opt)
	registerCloudwatchCommands(ctx, r, opt)
}
