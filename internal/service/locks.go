package service

import "sync"

// transferLocks serializes transitions per transfer id. Two concurrent ship
// calls on the same transfer must not both apply the ledger deltas; unrelated
// transfers proceed in parallel.
type transferLocks struct {
	mu    sync.Mutex
	locks map[int64]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newTransferLocks() *transferLocks {
	return &transferLocks{locks: make(map[int64]*lockEntry)}
}

func (l *transferLocks) lock(id int64) {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &lockEntry{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

func (l *transferLocks) unlock(id int64) {
	l.mu.Lock()
	entry := l.locks[id]
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, id)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}
