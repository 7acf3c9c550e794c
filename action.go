package forestx

// Impl is the capability behind a leaf node: one unit of work invoked with
// the resolved arguments and the tick context.
type Impl interface {
	Tick(args RtArgs, ctx TreeContextRef) (TickResult, error)
}

// ImplFn adapts a plain function to Impl.
type ImplFn func(args RtArgs, ctx TreeContextRef) (TickResult, error)

func (f ImplFn) Tick(args RtArgs, ctx TreeContextRef) (TickResult, error) {
	return f(args, ctx)
}

type actionKind int

const (
	actionSync actionKind = iota
	actionAsync
)

// Action pairs an implementation with its execution mode. Sync actions run
// to completion inside the calling tick and are intended only for fast,
// non-blocking logic. Async actions run on a worker goroutine and are polled
// across ticks by the ActionKeeper.
type Action struct {
	kind actionKind
	impl Impl
}

// SyncAction wraps impl as a synchronous action.
func SyncAction(impl Impl) Action {
	return Action{kind: actionSync, impl: impl}
}

// AsyncAction wraps impl as an asynchronous action.
func AsyncAction(impl Impl) Action {
	return Action{kind: actionAsync, impl: impl}
}

// IsAsync reports the execution mode.
func (a Action) IsAsync() bool { return a.kind == actionAsync }
