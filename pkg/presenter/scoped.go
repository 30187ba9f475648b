package presenter

import "github.com/go-drift/presenters/pkg/errors"

// Scoped is the base lifecycle state machine. It enforces the transition
// rules and calls its Hooks after every successful transition.
//
// Scoped is not safe for concurrent use. Presenters are owned by the UI thread.
type Scoped struct {
	state State
	hooks Hooks
}

// NewScoped returns a presenter in StateNone that reports transitions to hooks.
// A nil hooks value is replaced by NopHooks.
func NewScoped(hooks Hooks) *Scoped {
	if hooks == nil {
		hooks = NopHooks{}
	}
	return &Scoped{hooks: hooks}
}

// State returns the current lifecycle state.
func (s *Scoped) State() State {
	return s.state
}

// Prepare moves the presenter from None to Prepared.
func (s *Scoped) Prepare() error {
	if err := s.checkNotDestroyed("presenter.Prepare"); err != nil {
		return err
	}
	if s.state != StateNone {
		return errors.Lifecycle("presenter.Prepare", s.state.String(), errors.ErrAlreadyPrepared)
	}
	s.state = StatePrepared
	return s.hooks.OnPrepare()
}

// Start moves the presenter to Started.
// Starting a started presenter is allowed and runs OnStart again.
func (s *Scoped) Start() error {
	if err := s.checkUsable("presenter.Start"); err != nil {
		return err
	}
	s.state = StateStarted
	return s.hooks.OnStart()
}

// Stop moves the presenter to Stopped.
// Stopping a stopped presenter is allowed and runs OnStop again.
func (s *Scoped) Stop() error {
	if err := s.checkUsable("presenter.Stop"); err != nil {
		return err
	}
	s.state = StateStopped
	return s.hooks.OnStop()
}

// Destroy moves the presenter to Destroyed. Every later call fails.
func (s *Scoped) Destroy() error {
	if err := s.checkUsable("presenter.Destroy"); err != nil {
		return err
	}
	s.state = StateDestroyed
	return s.hooks.OnDestroy()
}

func (s *Scoped) checkUsable(op string) error {
	if err := s.checkNotDestroyed(op); err != nil {
		return err
	}
	if s.state == StateNone {
		return errors.Lifecycle(op, s.state.String(), errors.ErrNotPrepared)
	}
	return nil
}

func (s *Scoped) checkNotDestroyed(op string) error {
	if s.state == StateDestroyed {
		return errors.Lifecycle(op, s.state.String(), errors.ErrDestroyed)
	}
	return nil
}
