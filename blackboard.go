package forestx

import (
	"sort"
	"sync"
)

type bbCell struct {
	value  RtValue
	locked bool
}

// BlackBoard is the shared key/value store used for inter-action
// communication. Every operation is a short critical section under a single
// mutex, so concurrent calls from the tick loop and async worker goroutines
// serialize safely. The per-key lock is advisory: pure state inside the
// container, enforced only by cooperating actions.
type BlackBoard struct {
	mu    sync.Mutex
	cells map[string]bbCell
}

// NewBlackBoard creates an empty blackboard.
func NewBlackBoard() *BlackBoard {
	return &BlackBoard{cells: make(map[string]bbCell)}
}

// Put inserts or overwrites the value for key, clearing any lock state.
// Fails if the key is currently locked.
func (b *BlackBoard) Put(key string, v RtValue) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.cells[key]; ok && c.locked {
		return errBB("the key %s is taken", key)
	}
	b.cells[key] = bbCell{value: v}
	return nil
}

// Get returns the current value for key. Reads are never blocked by the
// advisory lock.
func (b *BlackBoard) Get(key string) (RtValue, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.cells[key]
	return c.value, ok
}

// Lock transitions the key from unlocked to locked. Locking an absent or
// already locked key is an error, not a no-op.
func (b *BlackBoard) Lock(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.cells[key]
	if !ok || c.locked {
		return errBB("the key %s is taken or absent", key)
	}
	c.locked = true
	b.cells[key] = c
	return nil
}

// Unlock transitions the key from locked to unlocked. Unlocking an absent or
// unlocked key is an error, not a no-op.
func (b *BlackBoard) Unlock(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.cells[key]
	if !ok || !c.locked {
		return errBB("the key %s is not locked or absent", key)
	}
	c.locked = false
	b.cells[key] = c
	return nil
}

// IsLocked reports whether key is currently locked. Absent keys are not
// locked.
func (b *BlackBoard) IsLocked(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cells[key].locked
}

// Update applies fn to the current value of key (or def when the key is
// absent) and stores the result. The read and write happen under one
// critical section, so other actions observe them as a single unit.
// Fails if the key is locked.
func (b *BlackBoard) Update(key string, def RtValue, fn func(RtValue) RtValue) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	cur := def
	if c, ok := b.cells[key]; ok {
		if c.locked {
			return errBB("the key %s is taken", key)
		}
		cur = c.value
	}
	b.cells[key] = bbCell{value: fn(cur)}
	return nil
}

// Keys returns a sorted snapshot of the stored keys.
func (b *BlackBoard) Keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]string, 0, len(b.cells))
	for k := range b.cells {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
