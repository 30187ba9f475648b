// Package scenario loads lifecycle scenario files and runs them against a
// presenter tree hosted on a UI looper.
package scenario

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/presenters/pkg/errors"
	"github.com/go-drift/presenters/pkg/presenter"
)

// SupportedMajor is the scenario format major version this build reads.
const SupportedMajor = "v1"

// Scenario describes a presenter tree and the steps to drive it through.
type Scenario struct {
	Version    string `yaml:"version"`
	Presenters []Node `yaml:"presenters"`
	Steps      []Step `yaml:"steps"`
}

// Node declares one presenter. Sets list the presenters they hold from the start.
type Node struct {
	Name     string   `yaml:"name"`
	Set      bool     `yaml:"set,omitempty"`
	Children []string `yaml:"children,omitempty"`
}

// Step is either an operation (Do) or a state expectation (Expect).
type Step struct {
	Do     string `yaml:"do,omitempty"`
	Target string `yaml:"target,omitempty"`
	Child  string `yaml:"child,omitempty"`
	// Error names the error the operation must fail with.
	Error string `yaml:"error,omitempty"`
	// OffThread runs the operation outside the UI thread.
	OffThread bool                       `yaml:"off_thread,omitempty"`
	Expect    map[string]presenter.State `yaml:"expect,omitempty"`
}

// Operations accepted in Step.Do.
const (
	OpPrepare = "prepare"
	OpStart   = "start"
	OpStop    = "stop"
	OpDestroy = "destroy"
	OpAdd     = "add"
	OpRemove  = "remove"
)

var knownOps = map[string]bool{
	OpPrepare: true, OpStart: true, OpStop: true, OpDestroy: true, OpAdd: true, OpRemove: true,
}

// ErrorNames maps the names usable in Step.Error to the errors they stand for.
var ErrorNames = map[string]error{
	"not_prepared":      errors.ErrNotPrepared,
	"already_prepared":  errors.ErrAlreadyPrepared,
	"destroyed":         errors.ErrDestroyed,
	"invalid_thread":    errors.ErrInvalidThread,
	"invalid_presenter": errors.ErrInvalidPresenter,
}

// Load reads and validates the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a scenario. Unknown fields are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, configError("scenario.Parse", "empty scenario")
		}
		return nil, &errors.OpError{Op: "scenario.Parse", Kind: errors.KindConfig, Err: err}
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the version, the presenter tree and every step.
func (sc *Scenario) Validate() error {
	const op = "scenario.Validate"

	version := strings.TrimSpace(sc.Version)
	if version == "" {
		return configError(op, "version is required")
	}
	if !semver.IsValid(version) {
		return configError(op, "version %q is not a valid semantic version", version)
	}
	if major := semver.Major(version); major != SupportedMajor {
		return configError(op, "version %s is not supported (want %s.x.x)", version, SupportedMajor)
	}

	nodes := make(map[string]Node, len(sc.Presenters))
	for i, n := range sc.Presenters {
		if n.Name == "" {
			return configError(op, "presenters[%d]: name is required", i)
		}
		if _, dup := nodes[n.Name]; dup {
			return configError(op, "presenter %q is declared twice", n.Name)
		}
		if !n.Set && len(n.Children) > 0 {
			return configError(op, "presenter %q has children but is not a set", n.Name)
		}
		nodes[n.Name] = n
	}
	for _, n := range sc.Presenters {
		for _, c := range n.Children {
			if _, ok := nodes[c]; !ok {
				return configError(op, "set %q holds unknown presenter %q", n.Name, c)
			}
		}
	}
	graph := make(map[string][]string, len(nodes))
	for _, n := range sc.Presenters {
		graph[n.Name] = append([]string(nil), n.Children...)
	}
	if name, ok := findCycle(sc.Presenters, graph); ok {
		return configError(op, "set %q contains itself", name)
	}

	// graph follows add and remove steps so later adds are checked
	// against the tree as it will be at that point.
	for i, st := range sc.Steps {
		if err := st.validate(nodes, graph); err != nil {
			return configError(op, "steps[%d]: %v", i, err)
		}
	}
	return nil
}

func (st Step) validate(nodes map[string]Node, graph map[string][]string) error {
	if (st.Do == "") == (len(st.Expect) == 0) {
		return fmt.Errorf("exactly one of do or expect is required")
	}
	if len(st.Expect) > 0 {
		for name := range st.Expect {
			if _, ok := nodes[name]; !ok {
				return fmt.Errorf("expect names unknown presenter %q", name)
			}
		}
		return nil
	}

	if !knownOps[st.Do] {
		return fmt.Errorf("unknown operation %q", st.Do)
	}
	target, ok := nodes[st.Target]
	if !ok {
		return fmt.Errorf("%s: unknown target %q", st.Do, st.Target)
	}
	if st.Error != "" {
		if _, ok := ErrorNames[st.Error]; !ok {
			return fmt.Errorf("%s: unknown error %q", st.Do, st.Error)
		}
	}

	switch st.Do {
	case OpAdd, OpRemove:
		if !target.Set {
			return fmt.Errorf("%s: target %q is not a set", st.Do, st.Target)
		}
		if _, ok := nodes[st.Child]; !ok {
			return fmt.Errorf("%s: unknown child %q", st.Do, st.Child)
		}
		if st.Do == OpAdd {
			if reaches(graph, st.Child, st.Target) {
				return fmt.Errorf("add: %q would contain itself", st.Target)
			}
			graph[st.Target] = append(graph[st.Target], st.Child)
		} else {
			graph[st.Target] = without(graph[st.Target], st.Child)
		}
	default:
		if st.Child != "" {
			return fmt.Errorf("%s: child is only valid for add and remove", st.Do)
		}
	}
	return nil
}

// findCycle reports a set that reaches itself through declared children.
func findCycle(list []Node, graph map[string][]string) (string, bool) {
	for _, n := range list {
		for _, c := range n.Children {
			if reaches(graph, c, n.Name) {
				return n.Name, true
			}
		}
	}
	return "", false
}

// reaches reports whether to is from, or is held below it.
func reaches(graph map[string][]string, from, to string) bool {
	seen := make(map[string]bool)
	var walk func(name string) bool
	walk = func(name string) bool {
		if name == to {
			return true
		}
		if seen[name] {
			return false
		}
		seen[name] = true
		for _, c := range graph[name] {
			if walk(c) {
				return true
			}
		}
		return false
	}
	return walk(from)
}

func without(list []string, name string) []string {
	out := list[:0:0]
	for _, v := range list {
		if v != name {
			out = append(out, v)
		}
	}
	return out
}

func configError(op, format string, args ...any) error {
	return &errors.OpError{Op: op, Kind: errors.KindConfig, Err: fmt.Errorf(format, args...)}
}
