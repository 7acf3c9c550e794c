// Package builder offers declarative shorthand over forestx.TreeBuilder: a
// tree is written as nested combinator calls and compiled in one step.
package builder

import (
	"time"

	"github.com/comalice/forestx" // the core package
)

// Arg shortcut
func Arg(name string, v forestx.RtValue) forestx.RtArgument {
	return forestx.NewArg(name, v)
}

// Spec describes one subtree; Build lowers it into the arena.
type Spec struct {
	lower func(b *forestx.TreeBuilder) forestx.NodeID
}

// Action is a leaf dispatching to the named registered action.
func Action(name string, args ...forestx.RtArgument) Spec {
	return Spec{lower: func(b *forestx.TreeBuilder) forestx.NodeID {
		return b.Action(name, args...)
	}}
}

func composite(children []Spec, combine func(b *forestx.TreeBuilder, ids []forestx.NodeID) forestx.NodeID) Spec {
	return Spec{lower: func(b *forestx.TreeBuilder) forestx.NodeID {
		ids := make([]forestx.NodeID, len(children))
		for i, c := range children {
			ids[i] = c.lower(b)
		}
		return combine(b, ids)
	}}
}

// Sequence ticks children in order until one fails or runs.
func Sequence(children ...Spec) Spec {
	return composite(children, func(b *forestx.TreeBuilder, ids []forestx.NodeID) forestx.NodeID {
		return b.Sequence(ids...)
	})
}

// Fallback ticks children in order until one succeeds or runs.
func Fallback(children ...Spec) Spec {
	return composite(children, func(b *forestx.TreeBuilder, ids []forestx.NodeID) forestx.NodeID {
		return b.Fallback(ids...)
	})
}

// Parallel ticks all children every tick under the given policy.
func Parallel(policy forestx.ParallelPolicy, children ...Spec) Spec {
	return composite(children, func(b *forestx.TreeBuilder, ids []forestx.NodeID) forestx.NodeID {
		return b.Parallel(policy, ids...)
	})
}

// Inverter swaps the child's Success and Failure.
func Inverter(child Spec) Spec {
	return composite([]Spec{child}, func(b *forestx.TreeBuilder, ids []forestx.NodeID) forestx.NodeID {
		return b.Inverter(ids[0])
	})
}

// ForceSuccess maps the child's terminal outcome to Success.
func ForceSuccess(child Spec) Spec {
	return composite([]Spec{child}, func(b *forestx.TreeBuilder, ids []forestx.NodeID) forestx.NodeID {
		return b.ForceSuccess(ids[0])
	})
}

// ForceFailure maps the child's terminal outcome to Failure.
func ForceFailure(child Spec) Spec {
	return composite([]Spec{child}, func(b *forestx.TreeBuilder, ids []forestx.NodeID) forestx.NodeID {
		return b.ForceFailure(ids[0])
	})
}

// Retry re-runs a failing child up to limit attempts.
func Retry(limit int, child Spec) Spec {
	return composite([]Spec{child}, func(b *forestx.TreeBuilder, ids []forestx.NodeID) forestx.NodeID {
		return b.Retry(limit, ids[0])
	})
}

// Timeout fails the child once the wall-clock budget is spent.
func Timeout(budget time.Duration, child Spec) Spec {
	return composite([]Spec{child}, func(b *forestx.TreeBuilder, ids []forestx.NodeID) forestx.NodeID {
		return b.Timeout(budget, ids[0])
	})
}

// Build compiles the tree rooted at root against keeper.
func Build(root Spec, keeper *forestx.ActionKeeper, opts ...forestx.Option) (*forestx.RTree, error) {
	b := forestx.NewTreeBuilder()
	id := root.lower(b)
	return b.Build(id, keeper, opts...)
}
