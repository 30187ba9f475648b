// Package presenter provides the lifecycle state machine for presenters in a
// Model-View-Presenter architecture.
//
// Every presenter moves through the same lifecycle:
//
//	None -> Prepared -> Started <-> Stopped -> Destroyed
//
// Prepare may be called exactly once. Start and Stop may be repeated and
// alternate freely. Destroy is terminal: any call on a destroyed presenter
// fails with errors.ErrDestroyed.
//
// Presenters embed *Scoped and pass themselves as Hooks to react to
// transitions:
//
//	type listPresenter struct {
//	    *presenter.Scoped
//	    presenter.NopHooks
//	}
//
//	func newListPresenter() *listPresenter {
//	    p := &listPresenter{}
//	    p.Scoped = presenter.NewScoped(p)
//	    return p
//	}
//
//	func (p *listPresenter) OnStart() error {
//	    // subscribe to updates
//	    return nil
//	}
//
// A Set is a presenter that owns child presenters and keeps them in step with
// its own lifecycle. All Set mutation must happen on the UI thread; the thread
// check is injected at construction (see platform.ThreadCheck).
package presenter
