package presenter

import (
	stderrors "errors"
	"testing"
)

// recorder is a leaf presenter that records every hook call.
type recorder struct {
	*Scoped
	name  string
	calls []string
	fail  map[string]error
}

func newRecorder(name string) *recorder {
	r := &recorder{name: name}
	r.Scoped = NewScoped(r)
	return r
}

func (r *recorder) hook(name string) error {
	r.calls = append(r.calls, name)
	return r.fail[name]
}

func (r *recorder) OnPrepare() error { return r.hook("prepare") }
func (r *recorder) OnStart() error   { return r.hook("start") }
func (r *recorder) OnStop() error    { return r.hook("stop") }
func (r *recorder) OnDestroy() error { return r.hook("destroy") }

func assertState(t *testing.T, p Presenter, want State) {
	t.Helper()
	if got := p.State(); got != want {
		t.Errorf("State() = %v, want %v", got, want)
	}
}

func assertCalls(t *testing.T, r *recorder, want ...string) {
	t.Helper()
	if len(r.calls) != len(want) {
		t.Fatalf("%s hooks = %v, want %v", r.name, r.calls, want)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Fatalf("%s hooks = %v, want %v", r.name, r.calls, want)
		}
	}
}

func assertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !stderrors.Is(err, target) {
		t.Errorf("error = %v, want %v", err, target)
	}
}
