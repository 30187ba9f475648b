package platform

import "sync"

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
	uiThread     ThreadCheck
)

// RegisterDispatch sets the dispatch function used to schedule callbacks on the UI thread.
// This should be called once by the host during initialization.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback to run on the UI thread.
// Returns true if the callback was successfully scheduled, false if no dispatch function
// is registered or the callback is nil.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}

// RegisterThreadCheck sets the check reported by IsUIThread.
func RegisterThreadCheck(check ThreadCheck) {
	dispatchMu.Lock()
	uiThread = check
	dispatchMu.Unlock()
}

// IsUIThread reports whether the caller runs on the host's UI thread.
// It returns false until a thread check has been registered.
func IsUIThread() bool {
	dispatchMu.RLock()
	check := uiThread
	dispatchMu.RUnlock()
	return check != nil && check()
}

// RegisterLooper makes l the host UI thread: Dispatch posts to l and
// IsUIThread reports whether the caller runs on l. The returned function
// puts back whatever was registered before.
func RegisterLooper(l *Looper) (restore func()) {
	dispatchMu.Lock()
	prevDispatch, prevCheck := dispatchFunc, uiThread
	dispatchFunc = func(cb func()) { l.Post(cb) }
	uiThread = l.IsCurrent
	dispatchMu.Unlock()

	return func() {
		dispatchMu.Lock()
		dispatchFunc, uiThread = prevDispatch, prevCheck
		dispatchMu.Unlock()
	}
}

// ResetForTest clears the registered dispatch function and thread check.
func ResetForTest() {
	dispatchMu.Lock()
	dispatchFunc = nil
	uiThread = nil
	dispatchMu.Unlock()
}
