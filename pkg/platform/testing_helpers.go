package platform

// SetupTestUIThread installs a synchronous dispatch function and a thread
// check that accepts every caller. The cleanup function should be
// testing.T.Cleanup or equivalent; it registers a teardown that calls
// ResetForTest.
//
//	platform.SetupTestUIThread(t.Cleanup)
func SetupTestUIThread(cleanup func(func())) {
	RegisterDispatch(func(cb func()) { cb() })
	RegisterThreadCheck(AnyThread)
	cleanup(ResetForTest)
}
