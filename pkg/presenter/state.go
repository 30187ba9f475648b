package presenter

import "fmt"

// State is a position in the presenter lifecycle. States are ordered by
// lifecycle progression.
type State int

const (
	// StateNone is the initial state, before Prepare.
	StateNone State = iota
	// StatePrepared is entered by Prepare.
	StatePrepared
	// StateStarted is entered by Start.
	StateStarted
	// StateStopped is entered by Stop.
	StateStopped
	// StateDestroyed is terminal.
	StateDestroyed
)

var stateNames = [...]string{
	StateNone:      "none",
	StatePrepared:  "prepared",
	StateStarted:   "started",
	StateStopped:   "stopped",
	StateDestroyed: "destroyed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// ParseState returns the State named by s.
func ParseState(s string) (State, error) {
	for i, name := range stateNames {
		if name == s {
			return State(i), nil
		}
	}
	return StateNone, fmt.Errorf("unknown presenter state %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(stateNames) {
		return nil, fmt.Errorf("invalid presenter state %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
