package scenario

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog"

	"github.com/go-drift/presenters/pkg/platform"
	"github.com/go-drift/presenters/pkg/presenter"
)

// Report summarizes a run.
type Report struct {
	// Trace lists every hook call as "name: hook", in order.
	Trace []string
	// Failures lists failed expectations and unexpected errors.
	Failures []string
	// Steps is the number of steps executed.
	Steps int
}

// OK reports whether every step behaved as expected.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// Runner executes scenarios on its own UI looper. For the length of a run
// that looper is registered as the host UI thread, so runs must not overlap.
type Runner struct {
	// Out receives a human-readable log of the run. Nil discards it.
	Out io.Writer
	// Logger is passed to every set.
	Logger zerolog.Logger
}

// tree is the presenter tree built from a scenario. It is only touched on
// the looper, except by off-thread steps that exercise the thread check.
type tree struct {
	looper     *platform.Looper
	presenters map[string]presenter.Presenter
	sets       map[string]*presenter.Set
	report     *Report
	out        io.Writer
}

// Run validates sc, builds the presenter tree and executes every step. The
// returned error is non-nil only when the run could not proceed; failed
// expectations are recorded in the Report.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Report, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	out := r.Out
	if out == nil {
		out = io.Discard
	}

	looper := platform.NewLooper()
	looper.Start()
	defer looper.Close()
	defer platform.RegisterLooper(looper)()

	t := &tree{
		looper:     looper,
		presenters: make(map[string]presenter.Presenter, len(sc.Presenters)),
		sets:       make(map[string]*presenter.Set),
		report:     &Report{},
		out:        out,
	}

	err := looper.Call(ctx, func() error {
		return t.build(sc, r.Logger)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build presenters: %w", err)
	}

	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return t.report, err
		}
		t.report.Steps++
		if len(st.Expect) > 0 {
			if err := looper.Call(ctx, func() error { t.expect(i, st.Expect); return nil }); err != nil {
				return t.report, err
			}
			continue
		}
		fmt.Fprintf(out, "step %d: %s\n", i, describe(st))
		var opErr error
		if st.OffThread {
			opErr = t.apply(st)
		} else {
			callErr := looper.Call(ctx, func() error {
				opErr = t.apply(st)
				return nil
			})
			if callErr != nil {
				return t.report, callErr
			}
		}
		t.checkError(i, st, opErr)
	}
	return t.report, nil
}

func (t *tree) build(sc *Scenario, log zerolog.Logger) error {
	for _, n := range sc.Presenters {
		if n.Set {
			s := presenter.NewUISet(
				presenter.WithName(n.Name),
				presenter.WithLogger(log),
				presenter.WithHooks(&tracer{name: n.Name, tree: t}),
			)
			t.sets[n.Name] = s
			t.presenters[n.Name] = s
			continue
		}
		l := &leaf{tracer: tracer{name: n.Name, tree: t}}
		l.Scoped = presenter.NewScoped(l)
		t.presenters[n.Name] = l
	}
	for _, n := range sc.Presenters {
		for _, c := range n.Children {
			if err := t.sets[n.Name].Add(t.presenters[c]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *tree) apply(st Step) error {
	target := t.presenters[st.Target]
	switch st.Do {
	case OpPrepare:
		return target.Prepare()
	case OpStart:
		return target.Start()
	case OpStop:
		return target.Stop()
	case OpDestroy:
		return target.Destroy()
	case OpAdd:
		return t.sets[st.Target].Add(t.presenters[st.Child])
	case OpRemove:
		_, err := t.sets[st.Target].Remove(t.presenters[st.Child])
		return err
	}
	return fmt.Errorf("unknown operation %q", st.Do)
}

func (t *tree) checkError(i int, st Step, err error) {
	if st.Error == "" {
		if err != nil {
			t.fail("step %d: %s failed: %v", i, describe(st), err)
		}
		return
	}
	want := ErrorNames[st.Error]
	if !stderrors.Is(err, want) {
		t.fail("step %d: %s returned %v, want %s", i, describe(st), err, st.Error)
		return
	}
	fmt.Fprintf(t.out, "  rejected: %s\n", st.Error)
}

func (t *tree) expect(i int, want map[string]presenter.State) {
	names := make([]string, 0, len(want))
	for name := range want {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		got := t.presenters[name].State()
		if got != want[name] {
			t.fail("step %d: %s is %s, want %s", i, name, got, want[name])
			continue
		}
		fmt.Fprintf(t.out, "  ok: %s is %s\n", name, got)
	}
}

func (t *tree) fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	t.report.Failures = append(t.report.Failures, msg)
	fmt.Fprintf(t.out, "  FAIL: %s\n", msg)
}

func (t *tree) record(name, hook string) {
	line := name + ": " + hook
	t.report.Trace = append(t.report.Trace, line)
	fmt.Fprintf(t.out, "  %s\n", line)
}

func describe(st Step) string {
	s := st.Do + " " + st.Target
	if st.Child != "" {
		s += " " + st.Child
	}
	if st.OffThread {
		s += " (off thread)"
	}
	return s
}

// tracer records hook calls into the run report.
type tracer struct {
	name string
	tree *tree
}

func (h *tracer) OnPrepare() error { h.tree.record(h.name, "prepare"); return nil }
func (h *tracer) OnStart() error   { h.tree.record(h.name, "start"); return nil }
func (h *tracer) OnStop() error    { h.tree.record(h.name, "stop"); return nil }
func (h *tracer) OnDestroy() error { h.tree.record(h.name, "destroy"); return nil }

// leaf is a plain presenter that traces its transitions.
type leaf struct {
	*presenter.Scoped
	tracer
}
