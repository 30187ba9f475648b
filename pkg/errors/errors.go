// Package errors provides structured error handling for presenters and the
// platform layer that hosts them.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// Lifecycle and thread violations. Every failed presenter operation wraps one of
// these, so callers can test with errors.Is.
var (
	// ErrNotPrepared is returned when Start, Stop or Destroy is called before Prepare.
	ErrNotPrepared = stderrors.New("presenter must be prepared before use")
	// ErrAlreadyPrepared is returned by a second call to Prepare.
	ErrAlreadyPrepared = stderrors.New("presenter can be prepared only once")
	// ErrDestroyed is returned by any operation on a destroyed presenter.
	ErrDestroyed = stderrors.New("presenter was destroyed and can't be used anymore")
	// ErrInvalidThread is returned when a set is mutated outside the UI thread.
	ErrInvalidThread = stderrors.New("invalid thread: presenters must be changed on the UI thread")
	// ErrInvalidPresenter is returned when a nil presenter, or a set itself, is added to a set.
	ErrInvalidPresenter = stderrors.New("invalid presenter")
	// ErrLooperClosed is returned when work is posted to a closed looper.
	ErrLooperClosed = stderrors.New("looper is closed")
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindLifecycle indicates an illegal lifecycle transition.
	KindLifecycle
	// KindThread indicates a call from outside the designated thread.
	KindThread
	// KindPlatform indicates a failure in the host platform layer.
	KindPlatform
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates an invalid scenario or configuration.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindLifecycle:
		return "lifecycle"
	case KindThread:
		return "thread"
	case KindPlatform:
		return "platform"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// OpError records a failed operation together with the state the presenter
// was in when the call was rejected.
type OpError struct {
	// Op is the operation that failed (e.g., "presenter.Start").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// State is the presenter state at the time of the call, if applicable.
	State string
	// Err is the underlying error.
	Err error
	// Timestamp is when the error was reported. Zero for synchronous errors.
	Timestamp time.Time
}

func (e *OpError) Error() string {
	if e.State != "" {
		return fmt.Sprintf("%s [%s] state=%s: %v", e.Op, e.Kind, e.State, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Lifecycle returns an OpError for an illegal transition.
func Lifecycle(op, state string, err error) *OpError {
	return &OpError{Op: op, Kind: KindLifecycle, State: state, Err: err}
}

// Thread returns an OpError for a call made on the wrong thread.
func Thread(op string) *OpError {
	return &OpError{Op: op, Kind: KindThread, Err: ErrInvalidThread}
}

// KindOf reports the kind of the first OpError in err's chain.
func KindOf(err error) ErrorKind {
	var op *OpError
	if stderrors.As(err, &op) {
		return op.Kind
	}
	return KindUnknown
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "platform.Looper.Post").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors that have no synchronous caller to return to.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *OpError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
