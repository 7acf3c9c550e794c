// Package realtime provides a ticker-driven host for a forestx tree.
//
// The engine itself never decides cadence: forestx.RTree.Tick advances the
// tree by one step and returns. Driver supplies the loop: a fixed-rate
// ticker calls Tick until the root reports a terminal result, an error
// occurs, the tick budget is exhausted or the context is cancelled.
//
// # Example Usage
//
//	drv := realtime.NewDriver(tree, realtime.Config{
//		TickRate: 16667 * time.Microsecond, // 60 FPS
//	})
//	drv.Start(ctx)
//	res, err := drv.Wait()
//
// Use cases match fixed time-step control loops: game AI, robotics and
// simulation, where a repeated Running result is the expected steady state
// while asynchronous actions complete in the background.
package realtime
