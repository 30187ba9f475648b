package platform

import (
	"context"
	stderrors "errors"
	"runtime"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/go-drift/presenters/pkg/errors"
)

func newTestLooper(t *testing.T) *Looper {
	t.Helper()
	l := NewLooper()
	l.Start()
	t.Cleanup(l.Close)
	return l
}

// captureHandler records reported errors and panics.
type captureHandler struct {
	mu     sync.Mutex
	errs   []*errors.OpError
	panics []*errors.PanicError
}

func (h *captureHandler) HandleError(err *errors.OpError) {
	h.mu.Lock()
	h.errs = append(h.errs, err)
	h.mu.Unlock()
}

func (h *captureHandler) HandlePanic(err *errors.PanicError) {
	h.mu.Lock()
	h.panics = append(h.panics, err)
	h.mu.Unlock()
}

func installCapture(t *testing.T) *captureHandler {
	t.Helper()
	h := &captureHandler{}
	old := errors.DefaultHandler
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(old) })
	return h
}

func TestLooperRunsPostedCallbacksInOrder(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	l := NewLooper()
	l.Start()

	var got []int
	for i := 0; i < 5; i++ {
		if !l.Post(func() { got = append(got, i) }) {
			t.Fatalf("Post(%d) returned false", i)
		}
	}
	if err := l.Call(context.Background(), func() error { return nil }); err != nil {
		t.Fatalf("Call: %v", err)
	}
	l.Close()

	for i, v := range got {
		if v != i {
			t.Fatalf("callbacks ran as %v, want 0..4 in order", got)
		}
	}
	if len(got) != 5 {
		t.Fatalf("ran %d callbacks, want 5", len(got))
	}
}

func TestLooperIsCurrent(t *testing.T) {
	l := newTestLooper(t)

	if l.IsCurrent() {
		t.Error("test goroutine should not be the loop thread")
	}
	var inside bool
	if err := l.Call(context.Background(), func() error {
		inside = l.IsCurrent()
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if !inside {
		t.Error("IsCurrent() should be true on the loop")
	}
}

func TestLooperIsCurrentBeforeStart(t *testing.T) {
	l := NewLooper()
	if l.IsCurrent() {
		t.Error("IsCurrent() should be false before Start")
	}
	l.Close()
}

func TestLooperNestedCallRunsInline(t *testing.T) {
	l := newTestLooper(t)
	want := stderrors.New("inner")

	err := l.Call(context.Background(), func() error {
		return l.Call(context.Background(), func() error { return want })
	})
	if !stderrors.Is(err, want) {
		t.Errorf("Call() = %v, want %v", err, want)
	}
}

func TestLooperRecoversPanics(t *testing.T) {
	h := installCapture(t)
	l := newTestLooper(t)

	l.Post(func() { panic("posted") })
	err := l.Call(context.Background(), func() error { panic("called") })

	var perr *errors.PanicError
	if !stderrors.As(err, &perr) || perr.Value != "called" {
		t.Fatalf("Call() = %v, want PanicError for \"called\"", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.panics) != 2 {
		t.Fatalf("reported %d panics, want 2", len(h.panics))
	}
	if h.panics[0].Op != "platform.Looper.Post" || h.panics[0].Value != "posted" {
		t.Errorf("first panic = %+v", h.panics[0])
	}
	if h.panics[1] != perr || perr.Op != "platform.Looper.Call" {
		t.Errorf("Call returned %+v, reported %+v; want the same platform.Looper.Call panic", perr, h.panics[1])
	}
}

func TestLooperClosedRejectsWork(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	h := installCapture(t)
	l := NewLooper()
	l.Start()
	l.Close()
	l.Close()

	if l.Post(func() {}) {
		t.Error("Post after Close should return false")
	}
	err := l.Call(context.Background(), func() error { return nil })
	if !stderrors.Is(err, errors.ErrLooperClosed) {
		t.Errorf("Call after Close = %v, want ErrLooperClosed", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.errs) != 2 || h.errs[0].Kind != errors.KindPlatform {
		t.Errorf("reported errors = %v", h.errs)
	}
}

func TestLooperCloseDrainsQueue(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	l := NewLooper()
	l.Start()

	release := make(chan struct{})
	ran := 0
	l.Post(func() { <-release })
	l.Post(func() { ran++ })
	l.Post(func() { ran++ })

	closed := make(chan struct{})
	go func() {
		l.Close()
		close(closed)
	}()
	close(release)
	<-closed

	if ran != 2 {
		t.Errorf("ran %d queued callbacks, want 2", ran)
	}
}

func TestLooperCloseFromLoop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	l := NewLooper()
	l.Start()

	if err := l.Call(context.Background(), func() error {
		l.Close()
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	l.Close()
}

func TestLooperCallCanceledContext(t *testing.T) {
	l := newTestLooper(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := l.Call(ctx, func() error { ran = true; return nil })
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("Call() = %v, want context.Canceled", err)
	}
	l.Call(context.Background(), func() error { return nil })
	if ran {
		t.Error("callback should not run for an already canceled context")
	}
}

func TestLooperCallContextEndsWhileWaiting(t *testing.T) {
	l := newTestLooper(t)
	release := make(chan struct{})
	l.Post(func() { <-release })
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- l.Call(ctx, func() error { return nil })
	}()
	cancel()
	if err := <-done; !stderrors.Is(err, context.Canceled) {
		t.Errorf("Call() = %v, want context.Canceled", err)
	}
}

func TestRegisterLooper(t *testing.T) {
	t.Cleanup(ResetForTest)
	l := newTestLooper(t)

	if IsUIThread() {
		t.Error("IsUIThread() should be false before registration")
	}
	RegisterLooper(l)
	if IsUIThread() {
		t.Error("IsUIThread() should be false off the loop")
	}

	result := make(chan bool, 1)
	if !Dispatch(func() { result <- IsUIThread() }) {
		t.Fatal("Dispatch returned false")
	}
	if !<-result {
		t.Error("IsUIThread() should be true inside a dispatched callback")
	}
}

func TestRegisterLooperRestore(t *testing.T) {
	SetupTestUIThread(t.Cleanup)
	l := newTestLooper(t)

	restore := RegisterLooper(l)
	if IsUIThread() {
		t.Error("IsUIThread() should follow the looper once registered")
	}
	restore()
	if !IsUIThread() {
		t.Error("restore should reinstate the previous thread check")
	}
	ran := false
	Dispatch(func() { ran = true })
	if !ran {
		t.Error("restore should reinstate the previous dispatch function")
	}
}

func TestDispatchWithoutRegistration(t *testing.T) {
	ResetForTest()
	if Dispatch(func() {}) {
		t.Error("Dispatch should fail without a dispatch function")
	}
	SetupTestUIThread(t.Cleanup)
	if Dispatch(nil) {
		t.Error("Dispatch(nil) should return false")
	}
	ran := false
	Dispatch(func() { ran = true })
	if !ran || !IsUIThread() {
		t.Error("test UI thread should run callbacks synchronously and accept every caller")
	}
}

func TestBindCurrentThread(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	check := BindCurrentThread()
	if !check() {
		t.Error("check should accept the bound thread")
	}

	other := make(chan bool)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		other <- check()
	}()
	if <-other {
		t.Error("check should reject another locked thread")
	}
}
