package matchservice

import (
	"sync"

	"github.com/google/uuid"
)

// matchLocks serializes work on one match within the process. Entries are
// dropped once nobody holds or waits for them.
type matchLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*matchLock
}

type matchLock struct {
	mu   sync.Mutex
	refs int
}

func newMatchLocks() *matchLocks {
	return &matchLocks{locks: make(map[uuid.UUID]*matchLock)}
}

// Lock blocks until the match is free and returns the unlock function.
func (l *matchLocks) Lock(id uuid.UUID) func() {
	l.mu.Lock()
	ml, ok := l.locks[id]
	if !ok {
		ml = &matchLock{}
		l.locks[id] = ml
	}
	ml.refs++
	l.mu.Unlock()

	ml.mu.Lock()
	return func() {
		ml.mu.Unlock()
		l.mu.Lock()
		ml.refs--
		if ml.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *matchLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
