package opts

import (
	"github.com/walteh/sortdir/pkg/config"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool

	// Set before any subcommand runs; the console logger travels in the
	// command context (log.FromContext)
	Config *config.Config
}
