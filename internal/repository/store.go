package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var ErrNotFound = errors.New("game session not found")

// Store keeps game sessions in memory. Sessions are never written to disk.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*GameSession
	now      func() time.Time
}

func New() *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*GameSession),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (q *Store) CreateGameSession(
	ctx context.Context, state *mines.GameState,
) (*GameSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	now := q.now()
	session := &GameSession{
		GameSessionId: id,
		StartedAt:     now,
		updatedAt:     now,
		state:         state,
		now:           q.now,
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.sessions[id] = session
	return session, nil
}

func (q *Store) FetchGameSession(
	ctx context.Context, gameSessionId uuid.UUID,
) (*GameSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q.mu.RLock()
	defer q.mu.RUnlock()
	session, ok := q.sessions[gameSessionId]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

func (q *Store) DeleteGameSession(ctx context.Context, gameSessionId uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.sessions[gameSessionId]; !ok {
		return ErrNotFound
	}
	delete(q.sessions, gameSessionId)
	return nil
}

func (q *Store) Count() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.sessions)
}

// Expire drops sessions not touched since before and returns how many were
// removed.
func (q *Store) Expire(before time.Time) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for id, session := range q.sessions {
		if session.UpdatedAt().Before(before) {
			delete(q.sessions, id)
			n++
		}
	}
	return n
}

// Reap calls [Store.Expire] every interval until ctx is done.
func (q *Store) Reap(ctx context.Context, ttl, interval time.Duration, onExpire func(n int)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := q.Expire(q.now().Add(-ttl)); n > 0 && onExpire != nil {
				onExpire(n)
			}
		}
	}
}
