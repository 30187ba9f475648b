package platform

// ThreadCheck reports whether the calling code runs on the designated thread.
type ThreadCheck func() bool

// AnyThread accepts every caller. Use it in tests and in hosts that
// serialize presenter access some other way.
func AnyThread() bool { return true }

// BindCurrentThread returns a ThreadCheck that accepts only the calling OS
// thread. The caller should hold runtime.LockOSThread for as long as the
// check is in use, otherwise the scheduler may move it to another thread.
func BindCurrentThread() ThreadCheck {
	id := currentThreadID()
	return func() bool { return currentThreadID() == id }
}
