package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/linkboard/internal/session"
)

type entry struct {
	session    *session.Session
	lastAccess time.Time
	savedAt    uint64 // version last written to redis
}

// SessionIndex keeps the live boards in memory.
// Redis holds the durable copy; the index is what requests mutate.
type SessionIndex struct {
	mu       sync.RWMutex
	sessions map[string]*entry // board ID -> live session
	now      func() time.Time
}

// NewSessionIndex creates an empty index
func NewSessionIndex() *SessionIndex {
	return &SessionIndex{
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// Put registers a session. savedVersion is the version already persisted.
// An existing session with the same ID is replaced and closed.
func (idx *SessionIndex) Put(s *session.Session, savedVersion uint64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if old, ok := idx.sessions[s.ID()]; ok && old.session != s {
		old.session.Close()
	}
	idx.sessions[s.ID()] = &entry{session: s, lastAccess: idx.now(), savedAt: savedVersion}
}

// PutIfAbsent registers s unless another session already holds the ID,
// in which case the existing one is returned.
func (idx *SessionIndex) PutIfAbsent(s *session.Session, savedVersion uint64) (*session.Session, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if cur, ok := idx.sessions[s.ID()]; ok {
		cur.lastAccess = idx.now()
		return cur.session, false
	}
	idx.sessions[s.ID()] = &entry{session: s, lastAccess: idx.now(), savedAt: savedVersion}
	return s, true
}

// Get returns a session and refreshes its access time.
func (idx *SessionIndex) Get(id string) (*session.Session, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	e, ok := idx.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastAccess = idx.now()
	return e.session, true
}

// Peek returns a session without touching its access time.
func (idx *SessionIndex) Peek(id string) (*session.Session, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	e, ok := idx.sessions[id]
	if !ok {
		return nil, false
	}
	return e.session, true
}

// Remove drops a session from the index and closes it.
func (idx *SessionIndex) Remove(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if e, ok := idx.sessions[id]; ok {
		e.session.Close()
		delete(idx.sessions, id)
	}
}

// Count returns the number of live sessions
func (idx *SessionIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.sessions)
}

// IDs lists every live board ID.
func (idx *SessionIndex) IDs() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	ids := make([]string, 0, len(idx.sessions))
	for id := range idx.sessions {
		ids = append(ids, id)
	}
	return ids
}

// IdleSince lists the sessions not accessed after cutoff.
func (idx *SessionIndex) IdleSince(cutoff time.Time) []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var ids []string
	for id, e := range idx.sessions {
		if !e.lastAccess.After(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids
}

// ─────────────────────────────────────────────────────────────────
// Persistence bookkeeping
// ─────────────────────────────────────────────────────────────────

// Dirty reports whether the session changed since it was last saved.
func (idx *SessionIndex) Dirty(id string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	e, ok := idx.sessions[id]
	if !ok {
		return false
	}
	return e.session.Version() != e.savedAt
}

// MarkSaved records the version that reached redis.
func (idx *SessionIndex) MarkSaved(id string, version uint64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if e, ok := idx.sessions[id]; ok && version > e.savedAt {
		e.savedAt = version
	}
}
