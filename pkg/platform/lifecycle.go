package platform

import "sync"

// LifecycleState represents the current app lifecycle state.
type LifecycleState string

const (
	// LifecycleStateResumed indicates the app is visible and responding to user input.
	LifecycleStateResumed LifecycleState = "resumed"

	// LifecycleStateInactive indicates the app is transitioning (e.g., receiving a phone call).
	LifecycleStateInactive LifecycleState = "inactive"

	// LifecycleStatePaused indicates the app is not visible but still running.
	LifecycleStatePaused LifecycleState = "paused"

	// LifecycleStateDetached indicates the app is still hosted but detached from any view.
	LifecycleStateDetached LifecycleState = "detached"
)

// LifecycleHandler is called when lifecycle state changes.
type LifecycleHandler func(state LifecycleState)

// LifecycleService tracks the host app lifecycle and notifies handlers of
// changes. The host feeds it with UpdateState from the UI thread.
type LifecycleService struct {
	mu       sync.RWMutex
	state    LifecycleState
	handlers map[int]LifecycleHandler
	order    []int
	nextID   int
}

// NewLifecycleService returns a service in the given initial state.
func NewLifecycleService(initial LifecycleState) *LifecycleService {
	return &LifecycleService{
		state:    initial,
		handlers: make(map[int]LifecycleHandler),
	}
}

// State returns the current lifecycle state.
func (l *LifecycleService) State() LifecycleState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// AddHandler registers a handler to be called on lifecycle changes.
// Returns a function that removes the handler.
func (l *LifecycleService) AddHandler(handler LifecycleHandler) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.handlers[id] = handler
	l.order = append(l.order, id)
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if _, ok := l.handlers[id]; !ok {
			return
		}
		delete(l.handlers, id)
		for i, v := range l.order {
			if v == id {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	}
}

// IsResumed returns true if the app is in the resumed state.
func (l *LifecycleService) IsResumed() bool {
	return l.State() == LifecycleStateResumed
}

// UpdateState records a new lifecycle state and notifies handlers in
// registration order. Repeating the current state notifies nobody.
func (l *LifecycleService) UpdateState(newState LifecycleState) {
	l.mu.Lock()
	if l.state == newState {
		l.mu.Unlock()
		return
	}
	l.state = newState
	handlers := make([]LifecycleHandler, 0, len(l.order))
	for _, id := range l.order {
		handlers = append(handlers, l.handlers[id])
	}
	l.mu.Unlock()

	for _, h := range handlers {
		h(newState)
	}
}
