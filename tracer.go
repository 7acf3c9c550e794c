package forestx

import (
	"fmt"
	"sync"
)

// TraceKind classifies trace events.
type TraceKind int

const (
	// TraceTick marks the start of a new root tick.
	TraceTick TraceKind = iota
	// TraceResult records the outcome a node produced this tick.
	TraceResult
	// TraceError records an error aborting the tick.
	TraceError
	// TraceActionSubmitted records the submission of an async task.
	TraceActionSubmitted
	// TraceActionFinished records the consumption of an async result.
	TraceActionFinished
)

func (k TraceKind) String() string {
	switch k {
	case TraceTick:
		return "tick"
	case TraceResult:
		return "result"
	case TraceError:
		return "error"
	case TraceActionSubmitted:
		return "submitted"
	default:
		return "finished"
	}
}

// TraceEvent is one record of the append-only tick trace.
type TraceEvent struct {
	Tick   uint64    `json:"tick"`
	Node   NodeID    `json:"node"`
	Kind   TraceKind `json:"kind"`
	Detail string    `json:"detail,omitempty"`
}

func (e TraceEvent) String() string {
	return fmt.Sprintf("[%d] node=%d %s %s", e.Tick, e.Node, e.Kind, e.Detail)
}

// Tracer is the write-only event sink shared across the tree. Implementations
// must be safe for use from worker goroutines.
type Tracer interface {
	Trace(e TraceEvent)
}

// NoopTracer discards every event.
type NoopTracer struct{}

func (NoopTracer) Trace(TraceEvent) {}

// BufferTracer records events in memory, in order of arrival.
type BufferTracer struct {
	mu     sync.Mutex
	events []TraceEvent
}

func NewBufferTracer() *BufferTracer {
	return &BufferTracer{}
}

func (t *BufferTracer) Trace(e TraceEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, e)
}

// Events returns a snapshot copy of the recorded events.
func (t *BufferTracer) Events() []TraceEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]TraceEvent, len(t.events))
	copy(out, t.events)
	return out
}
