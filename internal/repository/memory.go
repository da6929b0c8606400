package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

type memorySession struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry

	// nextSweep - expired entries of abandoned sessions are dropped once per ttl.
	nextSweep time.Time
}

type memoryEntry struct {
	session   entity.Session
	expiresAt time.Time
}

// NewMemorySessionRepository - in-process sessions with the same expiry rules as redis.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return newMemorySessionRepository(ttl, time.Now)
}

func newMemorySessionRepository(ttl time.Duration, now func() time.Time) *memorySession {
	return &memorySession{
		ttl:      ttl,
		now:      now,
		sessions: make(map[string]memoryEntry),
	}
}

func (that *memorySession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.now()
	that.sweep(now)

	that.sessions[session.ID] = memoryEntry{
		session:   copySession(session),
		expiresAt: now.Add(that.ttl),
	}

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	session := copySession(&entry.session)

	return &session, nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.lookup(id); !ok {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	delete(that.sessions, id)

	return nil
}

func (that *memorySession) sweep(now time.Time) {
	if now.Before(that.nextSweep) {
		return
	}

	for id, entry := range that.sessions {
		if !now.Before(entry.expiresAt) {
			delete(that.sessions, id)
		}
	}

	that.nextSweep = now.Add(that.ttl)
}

// lookup - expired entries are dropped on access.
func (that *memorySession) lookup(id string) (memoryEntry, bool) {
	entry, ok := that.sessions[id]
	if !ok {
		return memoryEntry{}, false
	}

	if !that.now().Before(entry.expiresAt) {
		delete(that.sessions, id)
		return memoryEntry{}, false
	}

	return entry, true
}

func copySession(session *entity.Session) entity.Session {
	cp := *session
	cp.State.History = append([]entity.Move(nil), session.State.History...)

	return cp
}
