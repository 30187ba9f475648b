// Package testing provides helpers for testing code that owns presenters.
//
// # Quick Start
//
// Record the hooks a presenter receives and assert on its lifecycle:
//
//	func TestScreen(t *testing.T) {
//	    set := presenter.NewSet(presentertest.NewThread().Check)
//	    list := presentertest.NewRecorder("list")
//	    set.Add(list)
//
//	    set.Prepare()
//	    set.Start()
//
//	    presentertest.ExpectState(t, list, presenter.StateStarted)
//	    presentertest.ExpectHooks(t, list, "prepare", "start")
//	}
//
// # Thread Checks
//
// Thread flips the answer a set receives from its thread check, so tests
// can exercise calls from outside the UI thread:
//
//	thread := presentertest.NewThread()
//	set := presenter.NewSet(thread.Check)
//	thread.Leave()
//	err := set.Start() // errors.ErrInvalidThread
package testing
