package board

import "sync"

// boardLocks hands out one mutex per board ID. Entries are dropped once
// nobody holds or waits for them.
type boardLocks struct {
	mu    sync.Mutex
	locks map[string]*boardLock
}

type boardLock struct {
	mu   sync.Mutex
	refs int
}

func newBoardLocks() *boardLocks {
	return &boardLocks{locks: make(map[string]*boardLock)}
}

// lock blocks until id is free and returns the matching unlock.
func (l *boardLocks) lock(id string) func() {
	l.mu.Lock()
	bl, ok := l.locks[id]
	if !ok {
		bl = &boardLock{}
		l.locks[id] = bl
	}
	bl.refs++
	l.mu.Unlock()

	bl.mu.Lock()
	return func() {
		bl.mu.Unlock()

		l.mu.Lock()
		bl.refs--
		if bl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
