package forestx

import (
	"sync"

	"github.com/google/uuid"
)

// TaskState is the per-action-name poll result for asynchronous work.
type TaskState int

const (
	// TaskAbsent: no in-flight task for the name.
	TaskAbsent TaskState = iota
	// TaskStarted: a task is in flight and has not completed.
	TaskStarted
	// TaskFinished: the task completed and its outcome was consumed.
	TaskFinished
)

type taskOutcome struct {
	result TickResult
	err    error
}

type rtTask struct {
	id   uuid.UUID
	done chan taskOutcome // buffered; written exactly once by the worker
}

// RtEnv is the runtime environment: it owns the table of in-flight
// asynchronous action handles, keyed by action name. Workers are plain
// goroutines; submission never blocks and a handle is removed the instant
// its result is consumed.
type RtEnv struct {
	mu    sync.Mutex
	tasks map[string]*rtTask
}

// NewEnv creates an empty runtime environment.
func NewEnv() *RtEnv {
	return &RtEnv{tasks: make(map[string]*rtTask)}
}

// Submit starts run on a worker goroutine and records the handle under name.
// Returns the task id for tracing.
func (e *RtEnv) Submit(name string, run func() (TickResult, error)) uuid.UUID {
	t := &rtTask{id: uuid.New(), done: make(chan taskOutcome, 1)}
	e.mu.Lock()
	e.tasks[name] = t
	e.mu.Unlock()
	go func() {
		res, err := run()
		t.done <- taskOutcome{result: res, err: err}
	}()
	return t.id
}

// Poll reports the task state for name without blocking. A finished task is
// removed from the table and its outcome returned; the handle cannot be
// consumed twice.
func (e *RtEnv) Poll(name string) (TaskState, TickResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.tasks[name]
	if !ok {
		return TaskAbsent, TickResult{}, nil
	}
	select {
	case out := <-t.done:
		delete(e.tasks, name)
		return TaskFinished, out.result, out.err
	default:
		return TaskStarted, Running(), nil
	}
}

// InFlight returns the number of outstanding task handles.
func (e *RtEnv) InFlight() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.tasks)
}
