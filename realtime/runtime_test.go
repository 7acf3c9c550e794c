package realtime_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/comalice/forestx"
	"github.com/comalice/forestx/realtime"
)

func buildLeafTree(t *testing.T, name string, a forestx.Action) *forestx.RTree {
	t.Helper()
	k := forestx.NewActionKeeper()
	k.Register(name, a)
	b := forestx.NewTreeBuilder()
	tree, err := b.Build(b.Sequence(b.Action(name)), k)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func syncFn(fn func() (forestx.TickResult, error)) forestx.Action {
	return forestx.SyncAction(forestx.ImplFn(
		func(forestx.RtArgs, forestx.TreeContextRef) (forestx.TickResult, error) {
			return fn()
		}))
}

func TestDriverReachesTerminal(t *testing.T) {
	ticks := 0
	tree := buildLeafTree(t, "countdown", syncFn(func() (forestx.TickResult, error) {
		ticks++
		if ticks < 3 {
			return forestx.Running(), nil
		}
		return forestx.Success(), nil
	}))

	d := realtime.NewDriver(tree, realtime.Config{TickRate: time.Millisecond})
	if err := d.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	res, err := d.Wait()
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsSuccess() {
		t.Errorf("expected Success, got %s", res)
	}
	if !d.Done() {
		t.Error("expected Done after a terminal result")
	}
	if d.TickNumber() != 3 {
		t.Errorf("expected 3 ticks, got %d", d.TickNumber())
	}
}

func TestDriverRunsAsyncActionToCompletion(t *testing.T) {
	tree := buildLeafTree(t, "work", forestx.AsyncAction(forestx.ImplFn(
		func(forestx.RtArgs, forestx.TreeContextRef) (forestx.TickResult, error) {
			time.Sleep(10 * time.Millisecond)
			return forestx.Success(), nil
		})))

	d := realtime.NewDriver(tree, realtime.Config{TickRate: time.Millisecond, MaxTicks: 1000})
	if err := d.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	res, err := d.Wait()
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsSuccess() {
		t.Errorf("expected the worker's Success, got %s", res)
	}
}

func TestDriverMaxTicksExceeded(t *testing.T) {
	tree := buildLeafTree(t, "forever", syncFn(func() (forestx.TickResult, error) {
		return forestx.Running(), nil
	}))

	d := realtime.NewDriver(tree, realtime.Config{TickRate: time.Millisecond, MaxTicks: 5})
	if err := d.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	_, err := d.Wait()
	if err == nil {
		t.Fatal("expected a max-ticks error")
	}
	if kind, _ := forestx.KindOf(err); kind != forestx.Unexpected {
		t.Errorf("expected an Unexpected error, got %v", err)
	}
}

func TestDriverStopBeforeTerminal(t *testing.T) {
	tree := buildLeafTree(t, "forever", syncFn(func() (forestx.TickResult, error) {
		return forestx.Running(), nil
	}))

	d := realtime.NewDriver(tree, realtime.Config{TickRate: time.Millisecond})
	if err := d.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	d.Stop()

	res, err := d.Wait()
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsRunning() {
		t.Errorf("expected Running after an early stop, got %s", res)
	}
	if d.Done() {
		t.Error("a stopped driver is not done")
	}
}

func TestDriverRecoversFromPanic(t *testing.T) {
	tree := buildLeafTree(t, "boom", syncFn(func() (forestx.TickResult, error) {
		panic("kaboom")
	}))

	d := realtime.NewDriver(tree, realtime.Config{TickRate: time.Millisecond})
	if err := d.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	_, err := d.Wait()
	if err == nil {
		t.Fatal("expected the panic to surface as an error")
	}
	if !strings.Contains(err.Error(), "kaboom") {
		t.Errorf("expected the panic value in the error, got %v", err)
	}
}

func TestDriverRejectsDoubleStart(t *testing.T) {
	tree := buildLeafTree(t, "noop", syncFn(func() (forestx.TickResult, error) {
		return forestx.Success(), nil
	}))

	d := realtime.NewDriver(tree, realtime.Config{TickRate: time.Millisecond})
	if err := d.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := d.Start(context.Background()); err == nil {
		t.Error("expected an error on the second Start")
	}
	d.Stop()
}

func TestDriverContextCancellation(t *testing.T) {
	tree := buildLeafTree(t, "forever", syncFn(func() (forestx.TickResult, error) {
		return forestx.Running(), nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	d := realtime.NewDriver(tree, realtime.Config{TickRate: time.Millisecond})
	if err := d.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()

	res, err := d.Wait()
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsRunning() {
		t.Errorf("expected Running after cancellation, got %s", res)
	}
}
