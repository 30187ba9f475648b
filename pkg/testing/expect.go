package testing

import (
	"slices"
	"testing"

	"github.com/go-drift/presenters/pkg/presenter"
)

// ExpectState fails t if p is not in the wanted state.
func ExpectState(t testing.TB, p presenter.Presenter, want presenter.State) {
	t.Helper()
	if got := p.State(); got != want {
		t.Errorf("State() = %v, want %v", got, want)
	}
}

// ExpectHooks fails t unless r recorded exactly the given hooks, in order.
func ExpectHooks(t testing.TB, r *Recorder, want ...string) {
	t.Helper()
	if got := r.Hooks(); !slices.Equal(got, want) {
		t.Errorf("%s hooks = %v, want %v", r.Name(), got, want)
	}
}
