package forestx

import (
	"fmt"
	"sync"
)

// ActionKeeper is the name-indexed table of registered actions. It owns the
// registered instances and dispatches ticks to the right execution mode.
type ActionKeeper struct {
	mu      sync.Mutex
	actions map[string]Action
}

// NewActionKeeper creates an empty registry.
func NewActionKeeper() *ActionKeeper {
	return &ActionKeeper{actions: make(map[string]Action)}
}

// Register inserts action under name. Re-registration overwrites: last
// writer wins. Duplicate prevention, if desired, belongs to the tree
// compiler, not this layer.
func (k *ActionKeeper) Register(name string, a Action) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.actions[name] = a
}

// Registered reports whether name has an implementation.
func (k *ActionKeeper) Registered(name string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	_, ok := k.actions[name]
	return ok
}

// OnTick resolves name and executes one tick of the action. A sync action
// runs inline. An async action goes through the env task table: absent
// submits a new task and returns Running immediately, started only polls,
// finished consumes and returns the task's produced outcome. An async action
// is therefore submitted at most once per activation.
func (k *ActionKeeper) OnTick(env *RtEnv, name string, args RtArgs, ctx TreeContextRef) (TickResult, error) {
	k.mu.Lock()
	a, ok := k.actions[name]
	k.mu.Unlock()
	if !ok {
		return TickResult{}, errUnimplemented(name)
	}

	if !a.IsAsync() {
		return a.impl.Tick(args, ctx)
	}

	state, res, err := env.Poll(name)
	switch state {
	case TaskAbsent:
		impl := a.impl
		id := env.Submit(name, func() (TickResult, error) {
			return impl.Tick(args, ctx)
		})
		ctx.Trace(TraceActionSubmitted, fmt.Sprintf("%s task %s", name, id))
		return Running(), nil
	case TaskStarted:
		return Running(), nil
	default: // TaskFinished
		ctx.Trace(TraceActionFinished, name)
		return res, err
	}
}
