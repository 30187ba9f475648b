package testing

import (
	"sync"

	"github.com/go-drift/presenters/pkg/presenter"
)

// Hook names recorded by Recorder.
const (
	HookPrepare = "prepare"
	HookStart   = "start"
	HookStop    = "stop"
	HookDestroy = "destroy"
)

// Recorder is a presenter that records every hook it receives.
// The recording methods are safe for concurrent use; the lifecycle methods
// follow the usual single-thread rule.
type Recorder struct {
	*presenter.Scoped
	name string

	mu    sync.Mutex
	hooks []string
	fail  map[string]error
}

// NewRecorder returns a recorder in StateNone.
func NewRecorder(name string) *Recorder {
	r := &Recorder{name: name}
	r.Scoped = presenter.NewScoped(r)
	return r
}

// Name returns the name given to NewRecorder.
func (r *Recorder) Name() string { return r.name }

// FailOn makes the named hook return err. A nil err clears it.
func (r *Recorder) FailOn(hook string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail == nil {
		r.fail = make(map[string]error)
	}
	if err == nil {
		delete(r.fail, hook)
		return
	}
	r.fail[hook] = err
}

// Hooks returns a copy of the recorded hook names, oldest first.
func (r *Recorder) Hooks() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.hooks...)
}

// Reset clears the recorded hooks.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.hooks = nil
	r.mu.Unlock()
}

func (r *Recorder) record(hook string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, hook)
	return r.fail[hook]
}

// OnPrepare records the prepare hook.
func (r *Recorder) OnPrepare() error { return r.record(HookPrepare) }

// OnStart records the start hook.
func (r *Recorder) OnStart() error { return r.record(HookStart) }

// OnStop records the stop hook.
func (r *Recorder) OnStop() error { return r.record(HookStop) }

// OnDestroy records the destroy hook.
func (r *Recorder) OnDestroy() error { return r.record(HookDestroy) }
