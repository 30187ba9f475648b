package presenter

// Presenter is the lifecycle contract shared by leaf presenters and sets.
type Presenter interface {
	// State returns the current lifecycle state.
	State() State
	// Prepare moves the presenter from None to Prepared. It may be called once.
	Prepare() error
	// Start moves the presenter to Started. Repeated calls are allowed.
	Start() error
	// Stop moves the presenter to Stopped. Repeated calls are allowed.
	Stop() error
	// Destroy moves the presenter to Destroyed. Nothing can be called afterwards.
	Destroy() error
}

// Hooks receives a call after each successful transition. The presenter's
// state already holds the new value when a hook runs. A hook error is returned
// from the transition that triggered it.
type Hooks interface {
	OnPrepare() error
	OnStart() error
	OnStop() error
	OnDestroy() error
}

// NopHooks implements Hooks with no-op methods.
// Embed it to override only the hooks you need.
type NopHooks struct{}

// OnPrepare is a no-op default implementation.
func (NopHooks) OnPrepare() error { return nil }

// OnStart is a no-op default implementation.
func (NopHooks) OnStart() error { return nil }

// OnStop is a no-op default implementation.
func (NopHooks) OnStop() error { return nil }

// OnDestroy is a no-op default implementation.
func (NopHooks) OnDestroy() error { return nil }
