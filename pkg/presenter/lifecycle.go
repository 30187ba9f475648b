package presenter

import (
	"github.com/go-drift/presenters/pkg/errors"
	"github.com/go-drift/presenters/pkg/platform"
)

// BindLifecycle drives p from the host app lifecycle:
//
//	resumed  -> Prepare (first time only), then Start
//	paused   -> Stop
//	detached -> Destroy
//
// Inactive changes nothing. If svc is already resumed, p is started right
// away. Transition errors have no caller to return to and are sent to
// errors.Report. The returned function stops following svc.
//
// Lifecycle updates must arrive on the thread p expects.
func BindLifecycle(svc *platform.LifecycleService, p Presenter) (unbind func()) {
	apply := func(state platform.LifecycleState) {
		var err error
		var op string
		switch state {
		case platform.LifecycleStateResumed:
			op = "presenter.BindLifecycle.resumed"
			if p.State() == StateNone {
				err = p.Prepare()
			}
			if err == nil {
				err = p.Start()
			}
		case platform.LifecycleStatePaused:
			op = "presenter.BindLifecycle.paused"
			if p.State() != StateNone && p.State() != StateDestroyed {
				err = p.Stop()
			}
		case platform.LifecycleStateDetached:
			op = "presenter.BindLifecycle.detached"
			if p.State() != StateNone && p.State() != StateDestroyed {
				err = p.Destroy()
			}
		}
		if err != nil {
			errors.Report(&errors.OpError{
				Op:    op,
				Kind:  errors.KindOf(err),
				State: p.State().String(),
				Err:   err,
			})
		}
	}

	unbind = svc.AddHandler(apply)
	if svc.IsResumed() {
		apply(platform.LifecycleStateResumed)
	}
	return unbind
}
