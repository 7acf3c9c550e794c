package forestx

import (
	"fmt"
	"time"
)

// TreeBuilder provides a fluent API for constructing behavior trees over a
// node arena addressed by stable indices. Node ids are assigned
// sequentially, so building the same shape twice yields the same ids.
type TreeBuilder struct {
	nodes []RNode
}

// NewTreeBuilder creates an empty builder.
func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

func (b *TreeBuilder) add(n RNode) NodeID {
	n.ID = NodeID(len(b.nodes))
	b.nodes = append(b.nodes, n)
	return n.ID
}

// Action adds a leaf node dispatching to the named action with the given
// arguments. Argument order is fixed here and never reordered at runtime.
func (b *TreeBuilder) Action(name string, args ...RtArgument) NodeID {
	return b.add(RNode{Kind: ActionNode, Name: name, Args: args})
}

// Sequence adds a node that ticks children in order until one fails or runs.
func (b *TreeBuilder) Sequence(children ...NodeID) NodeID {
	return b.add(RNode{Kind: SequenceNode, Children: children})
}

// Fallback adds a node that ticks children in order until one succeeds or
// runs.
func (b *TreeBuilder) Fallback(children ...NodeID) NodeID {
	return b.add(RNode{Kind: FallbackNode, Children: children})
}

// Parallel adds a node that ticks every child each tick and combines the
// outcomes per policy.
func (b *TreeBuilder) Parallel(policy ParallelPolicy, children ...NodeID) NodeID {
	return b.add(RNode{Kind: ParallelNode, Policy: policy, Children: children})
}

// Inverter wraps child, swapping Success and Failure.
func (b *TreeBuilder) Inverter(child NodeID) NodeID {
	return b.add(RNode{Kind: DecoratorNode, Decorator: Inverter, Children: []NodeID{child}})
}

// ForceSuccess wraps child, mapping any terminal outcome to Success.
func (b *TreeBuilder) ForceSuccess(child NodeID) NodeID {
	return b.add(RNode{Kind: DecoratorNode, Decorator: ForceSuccess, Children: []NodeID{child}})
}

// ForceFailure wraps child, mapping any terminal outcome to Failure.
func (b *TreeBuilder) ForceFailure(child NodeID) NodeID {
	return b.add(RNode{Kind: DecoratorNode, Decorator: ForceFailure, Children: []NodeID{child}})
}

// Retry wraps child, re-running it on Failure up to limit attempts.
func (b *TreeBuilder) Retry(limit int, child NodeID) NodeID {
	return b.add(RNode{Kind: DecoratorNode, Decorator: Retry, Limit: limit, Children: []NodeID{child}})
}

// Timeout wraps child, failing it once budget of wall-clock time is spent
// while still Running.
func (b *TreeBuilder) Timeout(budget time.Duration, child NodeID) NodeID {
	return b.add(RNode{Kind: DecoratorNode, Decorator: Timeout, Budget: budget, Children: []NodeID{child}})
}

// Label attaches a name to a non-leaf node, for tracing.
func (b *TreeBuilder) Label(id NodeID, name string) {
	if int(id) < len(b.nodes) {
		b.nodes[id].Name = name
	}
}

// Option configures optional collaborators of an RTree.
type Option func(*treeOptions)

type treeOptions struct {
	bb     *BlackBoard
	tracer Tracer
	env    *RtEnv
}

// WithBlackBoard shares an existing blackboard with the tree.
func WithBlackBoard(bb *BlackBoard) Option {
	return func(o *treeOptions) { o.bb = bb }
}

// WithTracer attaches a tracer to the session.
func WithTracer(tr Tracer) Option {
	return func(o *treeOptions) { o.tracer = tr }
}

// WithEnv shares an existing runtime environment with the tree.
func WithEnv(env *RtEnv) Option {
	return func(o *treeOptions) { o.env = env }
}

// Build validates the tree shape rooted at root and compiles it against the
// given action registry. The builder can be reused afterwards; the tree owns
// a copy of the arena.
func (b *TreeBuilder) Build(root NodeID, keeper *ActionKeeper, opts ...Option) (*RTree, error) {
	if keeper == nil {
		return nil, errUex("an action keeper is required")
	}
	if err := b.validate(root); err != nil {
		return nil, err
	}

	var o treeOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.env == nil {
		o.env = NewEnv()
	}

	nodes := make([]RNode, len(b.nodes))
	copy(nodes, b.nodes)

	return &RTree{
		nodes:  nodes,
		root:   root,
		keeper: keeper,
		env:    o.env,
		ctx:    NewTreeContext(o.bb, o.tracer),
	}, nil
}

// validate checks the static shape: ids in range, leaves carry an action
// name, composites are non-empty, decorators have exactly one child, no node
// has two parents, and every node is reachable from the root.
func (b *TreeBuilder) validate(root NodeID) error {
	if int(root) < 0 || int(root) >= len(b.nodes) {
		return errUex("root node %d does not exist", root)
	}

	parents := make(map[NodeID]NodeID)
	for _, n := range b.nodes {
		switch n.Kind {
		case ActionNode:
			if n.Name == "" {
				return errUex("action node %d has no action name", n.ID)
			}
			if len(n.Children) != 0 {
				return errUex("action node %d must not have children", n.ID)
			}
		case SequenceNode, FallbackNode, ParallelNode:
			if len(n.Children) == 0 {
				return errUex("%s node %d has no children", n.Kind, n.ID)
			}
		case DecoratorNode:
			if len(n.Children) != 1 {
				return errUex("decorator node %d must have exactly one child", n.ID)
			}
			if n.Decorator == Retry && n.Limit < 1 {
				return errUex("retry node %d needs a limit of at least 1", n.ID)
			}
			if n.Decorator == Timeout && n.Budget <= 0 {
				return errUex("timeout node %d needs a positive budget", n.ID)
			}
		default:
			return errUex("node %d has unknown kind %d", n.ID, n.Kind)
		}

		for _, c := range n.Children {
			if int(c) < 0 || int(c) >= len(b.nodes) {
				return errUex("node %d references unknown child %d", n.ID, c)
			}
			if p, seen := parents[c]; seen {
				return errUex("node %d is a child of both %d and %d", c, p, n.ID)
			}
			parents[c] = n.ID
		}
	}

	if p, seen := parents[root]; seen {
		return errUex("root node %d is a child of node %d", root, p)
	}

	// Reachability: every built node must belong to the tree under root.
	visited := make(map[NodeID]bool)
	var mark func(id NodeID)
	mark = func(id NodeID) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, c := range b.nodes[id].Children {
			mark(c)
		}
	}
	mark(root)
	for _, n := range b.nodes {
		if !visited[n.ID] {
			return errUex("orphaned node %d (%s) is not reachable from root %d", n.ID, describeNode(n), root)
		}
	}

	return nil
}

func describeNode(n RNode) string {
	if n.Name != "" {
		return fmt.Sprintf("%s %q", n.Kind, n.Name)
	}
	return n.Kind.String()
}
