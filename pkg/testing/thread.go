package testing

import "sync/atomic"

// Thread is a switchable stand-in for the UI thread. It starts "on" the UI thread.
type Thread struct {
	off atomic.Bool
}

// NewThread returns a Thread whose Check accepts callers.
func NewThread() *Thread {
	return &Thread{}
}

// Check is a platform.ThreadCheck.
func (th *Thread) Check() bool {
	return !th.off.Load()
}

// Leave makes Check reject callers.
func (th *Thread) Leave() { th.off.Store(true) }

// Enter makes Check accept callers again.
func (th *Thread) Enter() { th.off.Store(false) }
