package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lexiquiz/lexiquiz-api/internal/domain/quiz"
)

// sessionEntry holds a user's current quiz session. The session itself has
// no locks, so every access goes through mu.
type sessionEntry struct {
	mu         sync.Mutex
	session    *quiz.Session
	updates    []quiz.ProgressUpdate
	committed  bool
	lastActive time.Time
}

// pendingCommit reports whether the session completed but its progress
// has not reached the store yet.
func (e *sessionEntry) pendingCommit() bool {
	return e.session.State() == quiz.StateCompleted && !e.committed
}

// SessionRegistry keeps at most one quiz session per user.
//
// The registry lock only guards the map. Code holding it must never block on
// an entry lock, since an entry can stay locked for a whole commit.
type SessionRegistry struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*sessionEntry
	now     func() time.Time
}

// NewSessionRegistry creates an empty registry. A nil now uses time.Now.
func NewSessionRegistry(now func() time.Time) *SessionRegistry {
	if now == nil {
		now = time.Now
	}
	return &SessionRegistry{
		entries: make(map[uuid.UUID]*sessionEntry),
		now:     now,
	}
}

// Len returns the number of sessions held.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// HasPendingCommit reports whether the user has a completed, unsaved session.
func (r *SessionRegistry) HasPendingCommit(userID uuid.UUID) bool {
	e, ok := r.get(userID)
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pendingCommit()
}

// put installs s as the user's session, quitting the previous one.
// Returns ErrCommitPending if the previous session still has unsaved progress.
func (r *SessionRegistry) put(userID uuid.UUID, s *quiz.Session) error {
	next := &sessionEntry{session: s, lastActive: r.now()}

	for {
		old, ok := r.get(userID)
		if !ok {
			r.mu.Lock()
			_, raced := r.entries[userID]
			if !raced {
				r.entries[userID] = next
			}
			r.mu.Unlock()
			if raced {
				continue
			}
			return nil
		}

		old.mu.Lock()
		if old.pendingCommit() {
			old.mu.Unlock()
			return ErrCommitPending
		}

		r.mu.Lock()
		current := r.entries[userID] == old
		if current {
			old.session.Quit()
			r.entries[userID] = next
		}
		r.mu.Unlock()
		old.mu.Unlock()

		if current {
			return nil
		}
	}
}

func (r *SessionRegistry) get(userID uuid.UUID) (*sessionEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[userID]
	return e, ok
}

// remove drops the user's entry if it is still e.
func (r *SessionRegistry) remove(userID uuid.UUID, e *sessionEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries[userID] == e {
		delete(r.entries, userID)
	}
}

// with runs fn on the user's entry while holding its lock and records the
// activity. Returns ErrNoActiveSession when the user has no entry.
func (r *SessionRegistry) with(userID uuid.UUID, fn func(e *sessionEntry) error) error {
	e, ok := r.get(userID)
	if !ok {
		return ErrNoActiveSession
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastActive = r.now()
	return fn(e)
}

// expiredSession describes a session dropped by sweep.
type expiredSession struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
	State     quiz.State // state before the sweep
	Discarded int        // unsaved progress updates thrown away
}

// sweep drops every entry idle since before cutoff. Active sessions are quit.
// Entries busy in another request are left for the next sweep.
func (r *SessionRegistry) sweep(cutoff time.Time) []expiredSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []expiredSession
	for userID, e := range r.entries {
		if !e.mu.TryLock() {
			continue
		}
		if e.lastActive.Before(cutoff) {
			info := expiredSession{UserID: userID, SessionID: e.session.ID, State: e.session.State()}
			if e.pendingCommit() {
				info.Discarded = len(e.updates)
			}
			e.session.Quit()
			delete(r.entries, userID)
			expired = append(expired, info)
		}
		e.mu.Unlock()
	}
	return expired
}
