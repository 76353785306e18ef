package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// GameSession wraps a game with a mutex; the engine itself does no locking.
type GameSession struct {
	GameSessionId uuid.UUID
	StartedAt     time.Time

	mu        sync.Mutex
	endedAt   *time.Time
	updatedAt time.Time
	state     *mines.GameState
	now       func() time.Time
}

// GameSnapshot is a consistent view of a session taken under its lock.
type GameSnapshot struct {
	GameSessionId uuid.UUID
	StartedAt     time.Time
	EndedAt       *time.Time
	Params        mines.GameParams
	Phase         mines.Phase
	Outcome       mines.Phase
	RevealedCount int
	FlagCount     int
	Grid          mines.Grid
}

// Update runs fn on the game while holding the session lock and returns the
// state it left behind. The end time is recorded the first time the game
// reaches a terminal phase.
func (s *GameSession) Update(fn func(game *mines.GameState) error) (GameSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn(s.state)
	s.updatedAt = s.now()
	if s.endedAt == nil && s.state.Outcome().Terminal() {
		endedAt := s.updatedAt
		s.endedAt = &endedAt
	}
	return s.snapshot(), err
}

func (s *GameSession) Snapshot() GameSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *GameSession) snapshot() GameSnapshot {
	return GameSnapshot{
		GameSessionId: s.GameSessionId,
		StartedAt:     s.StartedAt,
		EndedAt:       s.endedAt,
		Params:        s.state.Params(),
		Phase:         s.state.Phase(),
		Outcome:       s.state.Outcome(),
		RevealedCount: s.state.RevealedCount(),
		FlagCount:     s.state.FlagCount(),
		Grid:          s.state.Grid(),
	}
}

func (s *GameSession) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}
