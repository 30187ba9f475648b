package presenter

import (
	"fmt"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/go-drift/presenters/pkg/errors"
	"github.com/go-drift/presenters/pkg/platform"
)

// Set is a presenter that owns child presenters and keeps them in step with
// its own lifecycle:
//
//   - each transition of the set is applied to every child not already in
//     the target state;
//   - a child added later is fast-forwarded to the set's current state.
//
// Every mutating method checks the set's ThreadCheck first and fails with
// errors.ErrInvalidThread, without side effects, when called elsewhere.
type Set struct {
	base  *Scoped
	check platform.ThreadCheck
	hooks Hooks
	name  string
	log   zerolog.Logger

	children []Presenter
	index    map[Presenter]int
}

// SetOption configures a Set.
type SetOption func(*Set)

// WithHooks sets extension hooks that run on each set transition before the
// transition is applied to the children.
func WithHooks(h Hooks) SetOption {
	return func(s *Set) {
		if h != nil {
			s.hooks = h
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(log zerolog.Logger) SetOption {
	return func(s *Set) { s.log = log }
}

// WithName names the set in log output.
func WithName(name string) SetOption {
	return func(s *Set) { s.name = name }
}

// NewSet returns an empty set in StateNone that only accepts calls for which
// check returns true. A nil check accepts every caller.
func NewSet(check platform.ThreadCheck, opts ...SetOption) *Set {
	if check == nil {
		check = platform.AnyThread
	}
	s := &Set{
		check: check,
		hooks: NopHooks{},
		log:   zerolog.Nop(),
		index: make(map[Presenter]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.base = NewScoped(setHooks{s})
	s.log = s.log.With().Str("component", "presenter.Set").Str("set", s.name).Logger()
	return s
}

// NewUISet returns a set bound to the host UI thread registered with
// platform.RegisterThreadCheck or platform.RegisterLooper.
func NewUISet(opts ...SetOption) *Set {
	return NewSet(platform.IsUIThread, opts...)
}

// State returns the set's own lifecycle state.
func (s *Set) State() State {
	return s.base.State()
}

// Prepare prepares the set, then every child still in StateNone.
func (s *Set) Prepare() error {
	if !s.check() {
		return errors.Thread("presenter.Set.Prepare")
	}
	return s.base.Prepare()
}

// Start starts the set, then every child not already started.
func (s *Set) Start() error {
	if !s.check() {
		return errors.Thread("presenter.Set.Start")
	}
	return s.base.Start()
}

// Stop stops the set, then every child not already stopped.
func (s *Set) Stop() error {
	if !s.check() {
		return errors.Thread("presenter.Set.Stop")
	}
	return s.base.Stop()
}

// Destroy destroys the set, then every child not already destroyed.
func (s *Set) Destroy() error {
	if !s.check() {
		return errors.Thread("presenter.Set.Destroy")
	}
	return s.base.Destroy()
}

// Add puts p into the set and brings it to the set's current state.
// Adding a presenter that is already in the set only repeats the
// fast-forward, which skips every step p has already taken.
//
// Membership is by identity. A presenter whose dynamic type is not
// comparable cannot be tracked and is rejected with errors.ErrInvalidPresenter.
// If fast-forwarding fails, p stays in the set and the error is returned.
func (s *Set) Add(p Presenter) error {
	if !s.check() {
		return errors.Thread("presenter.Set.Add")
	}
	if !hashable(p) || p == Presenter(s) {
		return &errors.OpError{Op: "presenter.Set.Add", Kind: errors.KindLifecycle, Err: errors.ErrInvalidPresenter}
	}
	if _, ok := s.index[p]; !ok {
		s.index[p] = len(s.children)
		s.children = append(s.children, p)
	}
	s.log.Debug().Stringer("state", s.State()).Int("children", len(s.children)).Msg("presenter added")

	if err := s.fastForward(p); err != nil {
		return fmt.Errorf("presenter.Set.Add: %w", err)
	}
	return nil
}

func (s *Set) fastForward(p Presenter) error {
	state := s.State()
	if state == StateNone {
		return nil
	}
	if err := prepareChild(p); err != nil {
		return err
	}
	switch state {
	case StateStarted:
		return startChild(p)
	case StateStopped:
		// A child added to a stopped set still passes through Started.
		if p.State() == StateStopped {
			return nil
		}
		if err := startChild(p); err != nil {
			return err
		}
		return stopChild(p)
	case StateDestroyed:
		return destroyChild(p)
	}
	return nil
}

// Remove takes p out of the set without changing its state.
// It reports whether p was in the set.
func (s *Set) Remove(p Presenter) (bool, error) {
	if !s.check() {
		return false, errors.Thread("presenter.Set.Remove")
	}
	if !hashable(p) {
		return false, nil
	}
	i, ok := s.index[p]
	if !ok {
		return false, nil
	}
	delete(s.index, p)
	copy(s.children[i:], s.children[i+1:])
	s.children[len(s.children)-1] = nil
	s.children = s.children[:len(s.children)-1]
	for j := i; j < len(s.children); j++ {
		s.index[s.children[j]] = j
	}
	s.log.Debug().Int("children", len(s.children)).Msg("presenter removed")
	return true, nil
}

// VisitAll calls fn for each child until fn returns true. It reports whether
// any call returned true. The order of visits is not specified.
//
// Children added or removed by fn do not change the current visit.
func (s *Set) VisitAll(fn func(p Presenter) bool) (bool, error) {
	if !s.check() {
		return false, errors.Thread("presenter.Set.VisitAll")
	}
	return s.visit(fn), nil
}

func (s *Set) visit(fn func(p Presenter) bool) bool {
	snapshot := make([]Presenter, len(s.children))
	copy(snapshot, s.children)
	for _, p := range snapshot {
		if fn(p) {
			return true
		}
	}
	return false
}

// Len returns the number of children.
func (s *Set) Len() int {
	return len(s.children)
}

// Contains reports whether p is a child of the set.
func (s *Set) Contains(p Presenter) bool {
	if !hashable(p) {
		return false
	}
	_, ok := s.index[p]
	return ok
}

// hashable reports whether p can key the identity index. Nil is not.
func hashable(p Presenter) bool {
	return p != nil && reflect.TypeOf(p).Comparable()
}

// fanOut applies step to every child and stops at the first error.
func (s *Set) fanOut(op string, step func(Presenter) error) error {
	var err error
	s.visit(func(p Presenter) bool {
		err = step(p)
		return err != nil
	})
	s.log.Debug().Str("op", op).Int("children", len(s.children)).Err(err).Msg("fan-out")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// setHooks receives the base state machine's hooks for a Set. Each hook runs
// the set's extension hook first, then applies the transition to children.
type setHooks struct{ s *Set }

func (h setHooks) OnPrepare() error {
	if err := h.s.hooks.OnPrepare(); err != nil {
		return err
	}
	return h.s.fanOut("presenter.Set.Prepare", prepareChild)
}

func (h setHooks) OnStart() error {
	if err := h.s.hooks.OnStart(); err != nil {
		return err
	}
	return h.s.fanOut("presenter.Set.Start", startChild)
}

func (h setHooks) OnStop() error {
	if err := h.s.hooks.OnStop(); err != nil {
		return err
	}
	return h.s.fanOut("presenter.Set.Stop", stopChild)
}

func (h setHooks) OnDestroy() error {
	if err := h.s.hooks.OnDestroy(); err != nil {
		return err
	}
	return h.s.fanOut("presenter.Set.Destroy", destroyChild)
}

// The child steps skip children already in the target state, so a child
// fast-forwarded by Add is never prepared or destroyed twice.

func prepareChild(p Presenter) error {
	if p.State() != StateNone {
		return nil
	}
	return p.Prepare()
}

func startChild(p Presenter) error {
	if p.State() == StateStarted {
		return nil
	}
	return p.Start()
}

func stopChild(p Presenter) error {
	if p.State() == StateStopped {
		return nil
	}
	return p.Stop()
}

func destroyChild(p Presenter) error {
	if p.State() == StateDestroyed {
		return nil
	}
	return p.Destroy()
}
