package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/comalice/forestx"
)

// Driver ticks a tree at a fixed rate until the root yields Success or
// Failure, or an error aborts the session.
type Driver struct {
	tree     *forestx.RTree
	tickRate time.Duration
	maxTicks uint64
	ticker   *time.Ticker

	mu     sync.Mutex
	ticks  uint64
	result forestx.TickResult
	err    error
	done   bool

	tickCtx    context.Context
	tickCancel context.CancelFunc
	stopped    chan struct{}
	started    bool
}

// Config configures the driver.
type Config struct {
	TickRate time.Duration // fixed tick rate; default 16.67ms (60 FPS)
	MaxTicks uint64        // abort as an error after this many ticks; 0 = unbounded
}

// NewDriver creates a driver for tree.
func NewDriver(tree *forestx.RTree, cfg Config) *Driver {
	if cfg.TickRate == 0 {
		cfg.TickRate = 16667 * time.Microsecond
	}
	return &Driver{
		tree:     tree,
		tickRate: cfg.TickRate,
		maxTicks: cfg.MaxTicks,
		stopped:  make(chan struct{}),
	}
}

// Start begins the tick loop. The loop runs until a terminal result, an
// error, MaxTicks, Stop or context cancellation.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return errors.New("driver already started")
	}
	d.started = true

	d.tickCtx, d.tickCancel = context.WithCancel(ctx)
	d.ticker = time.NewTicker(d.tickRate)
	go d.tickLoop()
	return nil
}

// Stop cancels the tick loop and waits for it to exit.
func (d *Driver) Stop() {
	d.mu.Lock()
	cancel := d.tickCancel
	d.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	<-d.stopped
}

// Wait blocks until the loop exits and returns the final outcome. If the
// loop was stopped before a terminal result, the result is Running and
// Done reports false.
func (d *Driver) Wait() (forestx.TickResult, error) {
	<-d.stopped
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.done && d.err == nil {
		return forestx.Running(), nil
	}
	return d.result, d.err
}

// Done reports whether the tree reached a terminal result.
func (d *Driver) Done() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}

// TickNumber returns the count of ticks executed so far.
func (d *Driver) TickNumber() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ticks
}

func (d *Driver) tickLoop() {
	defer close(d.stopped)
	defer d.ticker.Stop()

	for {
		select {
		case <-d.tickCtx.Done():
			return
		case <-d.ticker.C:
			if stop := d.processTick(); stop {
				return
			}
		}
	}
}

// processTick runs one tick with panic recovery; a panic inside an action
// surfaces as an Unexpected error instead of crashing the host.
func (d *Driver) processTick() (stop bool) {
	res, err := d.safeTick()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.ticks++

	switch {
	case err != nil:
		d.err = err
		return true
	case !res.IsRunning():
		d.result = res
		d.done = true
		return true
	case d.maxTicks > 0 && d.ticks >= d.maxTicks:
		d.err = forestx.NewRuntimeError(forestx.Unexpected, "no terminal result after %d ticks", d.ticks)
		return true
	}
	return false
}

func (d *Driver) safeTick() (res forestx.TickResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = forestx.NewRuntimeError(forestx.Unexpected, "panic during tick: %v", r)
		}
	}()
	return d.tree.Tick()
}
