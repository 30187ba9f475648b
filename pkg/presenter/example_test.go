package presenter_test

import (
	"fmt"

	"github.com/go-drift/presenters/pkg/errors"
	"github.com/go-drift/presenters/pkg/platform"
	"github.com/go-drift/presenters/pkg/presenter"
	presentertest "github.com/go-drift/presenters/pkg/testing"
)

// This example shows a set keeping its children in step, including one added
// after the set has started.
func ExampleSet() {
	set := presenter.NewSet(platform.AnyThread)
	list := presentertest.NewRecorder("list")
	detail := presentertest.NewRecorder("detail")

	set.Add(list)
	set.Prepare()
	set.Start()
	set.Add(detail)
	set.Stop()

	fmt.Println(list.Name(), list.State(), list.Hooks())
	fmt.Println(detail.Name(), detail.State(), detail.Hooks())
	// Output:
	// list stopped [prepare start stop]
	// detail stopped [prepare start stop]
}

// This example shows a child added to a stopped set passing through Started.
func ExampleSet_Add() {
	set := presenter.NewSet(platform.AnyThread)
	set.Prepare()
	set.Stop()

	late := presentertest.NewRecorder("late")
	set.Add(late)

	fmt.Println(late.Hooks())
	// Output:
	// [prepare start stop]
}

// This example shows the errors returned for illegal transitions.
func ExampleScoped() {
	p := presenter.NewScoped(nil)

	err := p.Start()
	fmt.Println(errors.Is(err, errors.ErrNotPrepared))

	p.Prepare()
	p.Destroy()
	err = p.Prepare()
	fmt.Println(errors.Is(err, errors.ErrDestroyed), p.State())
	// Output:
	// true
	// true destroyed
}

// This example shows a presenter type that embeds Scoped and overrides one hook.
func ExampleNewScoped() {
	p := newClock()
	p.Prepare()
	p.Start()
	p.Stop()
	p.Start()
	fmt.Println(p.ticks)
	// Output:
	// 2
}

type clockPresenter struct {
	*presenter.Scoped
	presenter.NopHooks
	ticks int
}

func newClock() *clockPresenter {
	p := &clockPresenter{}
	p.Scoped = presenter.NewScoped(p)
	return p
}

func (p *clockPresenter) OnStart() error {
	p.ticks++
	return nil
}
