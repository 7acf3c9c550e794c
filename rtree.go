package forestx

import (
	"fmt"
	"time"
)

// RTree is a compiled behavior tree bound to its action registry, runtime
// environment and session context. Tick is the root entry point a driver
// calls once per control cycle; the traversal itself is single-threaded and
// deterministic in document order.
type RTree struct {
	nodes  []RNode
	root   NodeID
	keeper *ActionKeeper
	env    *RtEnv
	ctx    *TreeContext
}

// Root returns the root node id.
func (t *RTree) Root() NodeID { return t.root }

// Len returns the number of nodes in the arena.
func (t *RTree) Len() int { return len(t.nodes) }

// BB returns the session blackboard, for the driver to inspect outputs.
func (t *RTree) BB() *BlackBoard { return t.ctx.BB() }

// Context returns the session context.
func (t *RTree) Context() *TreeContext { return t.ctx }

// Env returns the runtime environment.
func (t *RTree) Env() *RtEnv { return t.env }

// Tick advances the tree by exactly one step: it increments the tick
// counter and recursively ticks the root. Any error aborts the whole tick
// and propagates unchanged; it is never folded into Failure.
func (t *RTree) Tick() (TickResult, error) {
	tick := t.ctx.nextTick()
	NewTreeContextRef(t.ctx, t.root).Trace(TraceTick, fmt.Sprintf("tick %d", tick))
	return t.tickNode(t.root)
}

// RunUntilTerminal ticks the tree until the root reports Success or Failure,
// up to maxTicks. Exhausting the budget while still Running is an error.
// Hosts that own their own cadence call Tick directly instead.
func (t *RTree) RunUntilTerminal(maxTicks int) (TickResult, error) {
	for i := 0; i < maxTicks; i++ {
		res, err := t.Tick()
		if err != nil {
			return TickResult{}, err
		}
		if !res.IsRunning() {
			return res, nil
		}
	}
	return TickResult{}, errUex("no terminal result after %d ticks", maxTicks)
}

func (t *RTree) tickNode(id NodeID) (TickResult, error) {
	n := &t.nodes[id]
	var res TickResult
	var err error
	switch n.Kind {
	case ActionNode:
		res, err = t.keeper.OnTick(t.env, n.Name, n.Args, NewTreeContextRef(t.ctx, id))
	case SequenceNode:
		res, err = t.tickSequence(n)
	case FallbackNode:
		res, err = t.tickFallback(n)
	case ParallelNode:
		res, err = t.tickParallel(n)
	case DecoratorNode:
		res, err = t.tickDecorator(n)
	default:
		err = errUex("unknown node kind %d at node %d", n.Kind, id)
	}

	ref := NewTreeContextRef(t.ctx, id)
	if err != nil {
		ref.Trace(TraceError, err.Error())
		return TickResult{}, err
	}
	ref.Trace(TraceResult, res.String())
	return res, nil
}

// tickSequence resumes at the cursor; a child Failure resets the cursor and
// fails the node, Running pins the cursor, all children succeeding resets
// the cursor and succeeds. Errors leave the cursor untouched.
func (t *RTree) tickSequence(n *RNode) (TickResult, error) {
	for n.cursor < len(n.Children) {
		res, err := t.tickNode(n.Children[n.cursor])
		if err != nil {
			return TickResult{}, err
		}
		switch {
		case res.IsRunning():
			return Running(), nil
		case res.IsFailure():
			n.cursor = 0
			return res, nil
		}
		n.cursor++
	}
	n.cursor = 0
	return Success(), nil
}

// tickFallback is the Sequence dual: the first Success wins, all children
// failing fails the node.
func (t *RTree) tickFallback(n *RNode) (TickResult, error) {
	var last TickResult
	for n.cursor < len(n.Children) {
		res, err := t.tickNode(n.Children[n.cursor])
		if err != nil {
			return TickResult{}, err
		}
		switch {
		case res.IsRunning():
			return Running(), nil
		case res.IsSuccess():
			n.cursor = 0
			return res, nil
		}
		last = res
		n.cursor++
	}
	n.cursor = 0
	if last.Reason() != "" {
		return Failure(last.Reason()), nil
	}
	return Failure("all children failed"), nil
}

// tickParallel ticks the full child set every tick; no cursor is kept.
func (t *RTree) tickParallel(n *RNode) (TickResult, error) {
	var running, failures, successes int
	var reason string
	for _, c := range n.Children {
		res, err := t.tickNode(c)
		if err != nil {
			return TickResult{}, err
		}
		switch {
		case res.IsRunning():
			running++
		case res.IsFailure():
			failures++
			if reason == "" {
				reason = res.Reason()
			}
		default:
			successes++
		}
	}

	if n.Policy == RequireOne {
		if successes > 0 {
			return Success(), nil
		}
		if running > 0 {
			return Running(), nil
		}
		if reason == "" {
			reason = "no child succeeded"
		}
		return Failure(reason), nil
	}

	// RequireAll
	if failures > 0 {
		if reason == "" {
			reason = "a child failed"
		}
		return Failure(reason), nil
	}
	if running > 0 {
		return Running(), nil
	}
	return Success(), nil
}

func (t *RTree) tickDecorator(n *RNode) (TickResult, error) {
	if n.Decorator == Timeout && n.deadline.IsZero() {
		n.deadline = time.Now().Add(n.Budget)
	}

	res, err := t.tickNode(n.Children[0])
	if err != nil {
		return TickResult{}, err
	}

	switch n.Decorator {
	case Inverter:
		switch {
		case res.IsSuccess():
			return Failure("success inverted"), nil
		case res.IsFailure():
			return Success(), nil
		}
		return Running(), nil

	case ForceSuccess:
		if res.IsRunning() {
			return Running(), nil
		}
		return Success(), nil

	case ForceFailure:
		if res.IsRunning() {
			return Running(), nil
		}
		if res.IsSuccess() {
			return Failure("success forced to failure"), nil
		}
		return res, nil

	case Retry:
		switch {
		case res.IsFailure():
			n.attempts++
			if n.attempts < n.Limit {
				// The child reset itself on Failure; re-run it on the
				// next tick.
				return Running(), nil
			}
			n.attempts = 0
			return res, nil
		case res.IsSuccess():
			n.attempts = 0
			return res, nil
		}
		return Running(), nil

	case Timeout:
		if res.IsRunning() {
			if time.Now().After(n.deadline) {
				n.deadline = time.Time{}
				return Failure(fmt.Sprintf("timed out after %s", n.Budget)), nil
			}
			return Running(), nil
		}
		n.deadline = time.Time{}
		return res, nil
	}

	return TickResult{}, errUex("unknown decorator kind %d at node %d", n.Decorator, n.ID)
}
