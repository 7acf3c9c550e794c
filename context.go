package forestx

import "sync/atomic"

// TreeContext bundles the state shared by every node for the lifetime of one
// tree-execution session: the monotonically increasing tick counter, the
// blackboard handle and the tracer handle.
type TreeContext struct {
	curTick atomic.Uint64
	bb      *BlackBoard
	tracer  Tracer
}

// NewTreeContext creates a session context around the given blackboard and
// tracer. The tick counter starts at zero; the first root tick is 1.
func NewTreeContext(bb *BlackBoard, tracer Tracer) *TreeContext {
	if bb == nil {
		bb = NewBlackBoard()
	}
	if tracer == nil {
		tracer = NoopTracer{}
	}
	return &TreeContext{bb: bb, tracer: tracer}
}

// CurrentTick returns the number of the root tick in progress.
func (c *TreeContext) CurrentTick() uint64 { return c.curTick.Load() }

// BB returns the shared blackboard.
func (c *TreeContext) BB() *BlackBoard { return c.bb }

// nextTick advances the counter; called once per root tick by RTree.
func (c *TreeContext) nextTick() uint64 { return c.curTick.Add(1) }

// TreeContextRef is the per-invocation view handed to nodes and actions. It
// adds the identity of the node currently being ticked and is cheap to copy.
type TreeContextRef struct {
	ctx  *TreeContext
	node NodeID
}

// NewTreeContextRef binds a session context to the node being ticked.
func NewTreeContextRef(ctx *TreeContext, node NodeID) TreeContextRef {
	return TreeContextRef{ctx: ctx, node: node}
}

// For returns a ref for another node of the same session.
func (r TreeContextRef) For(node NodeID) TreeContextRef {
	return TreeContextRef{ctx: r.ctx, node: node}
}

// CurrentTick returns the number of the root tick in progress.
func (r TreeContextRef) CurrentTick() uint64 { return r.ctx.CurrentTick() }

// BB returns the shared blackboard.
func (r TreeContextRef) BB() *BlackBoard { return r.ctx.bb }

// Node returns the identity of the node currently being ticked.
func (r TreeContextRef) Node() NodeID { return r.node }

// Trace records an event against the current node and tick.
func (r TreeContextRef) Trace(kind TraceKind, detail string) {
	r.ctx.tracer.Trace(TraceEvent{
		Tick:   r.ctx.CurrentTick(),
		Node:   r.node,
		Kind:   kind,
		Detail: detail,
	})
}
