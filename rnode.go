package forestx

import "time"

// NodeID addresses a node in the tree arena. IDs are stable indices assigned
// by the TreeBuilder.
type NodeID int

// NodeKind enumerates the control-node variants.
type NodeKind int

const (
	// ActionNode forwards its name and arguments to the ActionKeeper.
	ActionNode NodeKind = iota
	// SequenceNode ticks children in order until one fails or runs.
	SequenceNode
	// FallbackNode ticks children in order until one succeeds or runs.
	FallbackNode
	// ParallelNode ticks every child each tick; a ParallelPolicy combines
	// the outcomes.
	ParallelNode
	// DecoratorNode wraps a single child and transforms its outcome.
	DecoratorNode
)

func (k NodeKind) String() string {
	switch k {
	case ActionNode:
		return "action"
	case SequenceNode:
		return "sequence"
	case FallbackNode:
		return "fallback"
	case ParallelNode:
		return "parallel"
	default:
		return "decorator"
	}
}

// ParallelPolicy is the completion policy of a parallel node. It is
// configuration, not a structural variant.
type ParallelPolicy int

const (
	// RequireAll succeeds only when every child succeeds; any child failure
	// fails the node.
	RequireAll ParallelPolicy = iota
	// RequireOne succeeds as soon as any child succeeds; fails only when
	// every child has failed.
	RequireOne
)

// DecoratorKind selects the outcome mapping of a decorator. Every mapping is
// total over Success, Failure and Running.
type DecoratorKind int

const (
	// Inverter swaps Success and Failure.
	Inverter DecoratorKind = iota
	// ForceSuccess maps any terminal outcome to Success.
	ForceSuccess
	// ForceFailure maps any terminal outcome to Failure.
	ForceFailure
	// Retry re-runs a failing child up to Limit attempts.
	Retry
	// Timeout fails a Running child once its wall-clock budget is spent.
	// The dispatch layer performs no cancellation: an in-flight async task
	// still runs to completion.
	Timeout
)

// RNode is one node of the compiled tree. Children are arena indices. The
// cursor, attempts and deadline fields are the resumption state kept between
// ticks so a Running node re-enters where it left off.
type RNode struct {
	ID       NodeID
	Kind     NodeKind
	Name     string // action name for ActionNode, optional label otherwise
	Args     RtArgs
	Children []NodeID

	Policy    ParallelPolicy // ParallelNode only
	Decorator DecoratorKind  // DecoratorNode only
	Limit     int            // Retry attempts
	Budget    time.Duration  // Timeout budget

	cursor   int
	attempts int
	deadline time.Time
}
