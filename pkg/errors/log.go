package errors

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LogHandler is an ErrorHandler that writes reports through a zerolog logger.
type LogHandler struct {
	// Logger receives the reports.
	Logger zerolog.Logger
	// Verbose adds stack traces to panic reports.
	Verbose bool
}

// NewLogHandler returns a LogHandler with human-readable output on stderr.
func NewLogHandler() *LogHandler {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return &LogHandler{Logger: zerolog.New(out).With().Timestamp().Logger()}
}

// HandleError logs an OpError.
func (h *LogHandler) HandleError(err *OpError) {
	if err == nil {
		return
	}
	ev := h.Logger.Error().
		Str("op", err.Op).
		Stringer("kind", err.Kind).
		Time("at", err.Timestamp)
	if err.State != "" {
		ev = ev.Str("state", err.State)
	}
	ev.Err(err.Err).Msg("presenters error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	ev := h.Logger.Error().Interface("value", err.Value)
	if err.Op != "" {
		ev = ev.Str("op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("presenters panic")
}
