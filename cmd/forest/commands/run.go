package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/comalice/forestx"
	"github.com/comalice/forestx/builtin"
	"github.com/comalice/forestx/internal/printer"
	"github.com/comalice/forestx/internal/production"
	"github.com/comalice/forestx/internal/treecfg"
	"github.com/comalice/forestx/realtime"
)

var (
	runRate     time.Duration
	runMaxTicks uint64
	runTrace    string
)

var runCmd = &cobra.Command{
	Use:   "run <tree.yaml>",
	Short: "Tick a tree definition until it reaches a terminal result",
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

func init() {
	runCmd.Flags().DurationVar(&runRate, "rate", 10*time.Millisecond, "tick rate")
	runCmd.Flags().Uint64Var(&runMaxTicks, "max-ticks", 1000, "abort after this many ticks (0 = unbounded)")
	runCmd.Flags().StringVar(&runTrace, "trace", "", "write the tick trace to this file (zstd JSONL)")
	rootCmd.AddCommand(runCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	cfg, err := treecfg.Load(args[0])
	if err != nil {
		return printer.Errorf("load tree: %v", err)
	}

	keeper := forestx.NewActionKeeper()
	builtin.Register(keeper)
	keeper.Register("sleep", forestx.AsyncAction(sleepAction{}))

	opts := []forestx.Option{}
	var tw *production.TraceWriter
	if runTrace != "" {
		tw, err = production.NewTraceWriter(runTrace)
		if err != nil {
			return printer.Errorf("open trace: %v", err)
		}
		defer tw.Close()
		opts = append(opts, forestx.WithTracer(tw))
	}

	tree, err := treecfg.BuildTree(cfg, keeper, opts...)
	if err != nil {
		return printer.Errorf("build tree %q: %v", cfg.ID, err)
	}

	printer.Info("Running tree %q from %s\n", cfg.ID, args[0])

	// The driver owns cadence; stop on terminal result, error or budget.
	drv := realtime.NewDriver(tree, realtime.Config{TickRate: runRate, MaxTicks: runMaxTicks})
	if err := drv.Start(context.Background()); err != nil {
		return printer.Errorf("start driver: %v", err)
	}
	res, err := drv.Wait()
	if err != nil {
		return printer.Errorf("tree %q: %v", cfg.ID, err)
	}

	printer.Info("Terminal result after %d ticks: ", drv.TickNumber())
	printer.Result(res)

	bb := tree.BB()
	if keys := bb.Keys(); len(keys) > 0 {
		printer.Info("Blackboard:\n")
		for _, k := range keys {
			v, _ := bb.Get(k)
			printer.KV("  "+k, v)
		}
	}
	if tw != nil {
		if werr := tw.Err(); werr != nil {
			printer.Warning("trace incomplete: %v\n", werr)
		} else {
			printer.Success("trace written to %s\n", runTrace)
		}
	}
	return nil
}

// sleepAction blocks for the given duration argument; registered async so
// the tick loop keeps running while it sleeps.
type sleepAction struct{}

func (sleepAction) Tick(args forestx.RtArgs, ctx forestx.TreeContextRef) (forestx.TickResult, error) {
	v, ok := args.FindOrIth("duration", 0)
	if !ok {
		return forestx.TickResult{}, forestx.NewRuntimeError(forestx.Unexpected, "the duration is expected")
	}
	cv, err := v.Cast(ctx)
	if err != nil {
		return forestx.TickResult{}, err
	}
	s, ok := cv.AsString()
	if !ok {
		return forestx.TickResult{}, forestx.NewRuntimeError(forestx.Unexpected, "the duration should be a string like 250ms")
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return forestx.TickResult{}, forestx.NewRuntimeError(forestx.Unexpected, "invalid duration %q: %v", s, err)
	}
	time.Sleep(d)
	return forestx.Success(), nil
}
