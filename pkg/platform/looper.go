package platform

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/go-drift/presenters/pkg/errors"
)

// Looper runs callbacks one at a time on a single goroutine locked to its OS
// thread. A host without a native UI thread uses a Looper as one.
//
// Callbacks run in the order they were posted. A panicking callback is
// reported through errors.ReportPanic and does not stop the loop.
type Looper struct {
	mu     sync.Mutex
	queue  []func()
	closed bool

	wake      chan struct{}
	ready     chan struct{}
	done      chan struct{}
	startOnce sync.Once
	started   atomic.Bool
	thread    atomic.Int64
}

// NewLooper returns a stopped looper. Call Start before posting work.
func NewLooper() *Looper {
	return &Looper{
		wake:  make(chan struct{}, 1),
		ready: make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start launches the loop goroutine and waits until it owns its thread.
// Calling Start more than once has no effect.
func (l *Looper) Start() {
	l.startOnce.Do(func() {
		l.started.Store(true)
		go l.run()
		<-l.ready
	})
}

func (l *Looper) run() {
	// The thread stays locked: it exits with the goroutine and is never
	// handed to other goroutines.
	runtime.LockOSThread()
	defer close(l.done)
	defer l.thread.Store(0)

	l.thread.Store(currentThreadID())
	close(l.ready)

	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.closed {
			l.mu.Unlock()
			<-l.wake
			l.mu.Lock()
		}
		batch := l.queue
		l.queue = nil
		closed := l.closed
		l.mu.Unlock()

		for _, fn := range batch {
			l.runTask(fn)
		}
		// Posts are rejected once closed, so the queue is drained for good.
		if closed {
			return
		}
	}
}

func (l *Looper) runTask(fn func()) {
	defer errors.Recover("platform.Looper.Post")
	fn()
}

// Post queues fn to run on the loop. It returns false, and reports
// errors.ErrLooperClosed, if the looper has been closed.
func (l *Looper) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		errors.Report(&errors.OpError{
			Op:   "platform.Looper.Post",
			Kind: errors.KindPlatform,
			Err:  errors.ErrLooperClosed,
		})
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	l.signal()
	return true
}

// Call runs fn on the loop and waits for its result. When called from the
// loop itself, fn runs immediately. If ctx ends first, Call returns ctx.Err()
// and fn may still run later.
func (l *Looper) Call(ctx context.Context, fn func() error) error {
	if l.IsCurrent() {
		return fn()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	result := make(chan error, 1)
	posted := l.Post(func() {
		var err error
		defer func() { result <- err }()
		defer errors.RecoverWithCallback("platform.Looper.Call", func(p *errors.PanicError) { err = p })
		err = fn()
	})
	if !posted {
		return &errors.OpError{Op: "platform.Looper.Call", Kind: errors.KindPlatform, Err: errors.ErrLooperClosed}
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsCurrent reports whether the caller runs on the loop's thread.
// It is the looper's ThreadCheck and is false once the loop has exited.
func (l *Looper) IsCurrent() bool {
	id := l.thread.Load()
	return id != 0 && currentThreadID() == id
}

// Close stops accepting work, lets queued callbacks finish, and waits for the
// loop goroutine to exit. Close is safe to call more than once and from a
// callback running on the loop.
func (l *Looper) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.signal()

	if !l.started.Load() || l.IsCurrent() {
		return
	}
	<-l.done
}

func (l *Looper) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
