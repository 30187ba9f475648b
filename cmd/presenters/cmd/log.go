package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// envLogLevel overrides the default log level (lower priority than --log-level).
const envLogLevel = "PRESENTERS_LOG_LEVEL"

func addLogFlags(fs *pflag.FlagSet, opts *options) {
	def := os.Getenv(envLogLevel)
	if def == "" {
		def = "warn"
	}
	fs.StringVar(&opts.logLevel, "log-level", def, "log level (trace, debug, info, warn, error); env "+envLogLevel)
}

// newLogger returns a console logger writing to w at the given level.
func newLogger(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
