// Package testutil provides host adapters so the same scenarios can be run
// against both the manual tick loop and the ticker-based driver.
package testutil

import (
	"context"
	"time"

	"github.com/comalice/forestx"
	"github.com/comalice/forestx/realtime"
)

// Host runs a tree to a terminal result within a tick budget.
type Host interface {
	Run(tree *forestx.RTree, maxTicks uint64) (forestx.TickResult, error)
}

// ManualHost calls Tick in a tight loop, the way an embedding game loop
// would on every frame.
type ManualHost struct {
	// Delay between ticks; zero means back-to-back.
	Delay time.Duration
}

func (h ManualHost) Run(tree *forestx.RTree, maxTicks uint64) (forestx.TickResult, error) {
	for i := uint64(0); i < maxTicks; i++ {
		res, err := tree.Tick()
		if err != nil {
			return forestx.TickResult{}, err
		}
		if !res.IsRunning() {
			return res, nil
		}
		if h.Delay > 0 {
			time.Sleep(h.Delay)
		}
	}
	return forestx.TickResult{}, forestx.NewRuntimeError(forestx.Unexpected, "no terminal result after %d ticks", maxTicks)
}

// DriverHost delegates cadence to a realtime.Driver.
type DriverHost struct {
	Rate time.Duration
}

func (h DriverHost) Run(tree *forestx.RTree, maxTicks uint64) (forestx.TickResult, error) {
	rate := h.Rate
	if rate == 0 {
		rate = time.Millisecond
	}
	drv := realtime.NewDriver(tree, realtime.Config{TickRate: rate, MaxTicks: maxTicks})
	if err := drv.Start(context.Background()); err != nil {
		return forestx.TickResult{}, err
	}
	return drv.Wait()
}
