package handlers

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

type GameHandler struct {
	logger  *slog.Logger
	repo    *repository.Store
	ws      *config.WebSocket
	newRand func() *rand.Rand
}

func NewGameHandler(
	logger *slog.Logger,
	repo *repository.Store,
	ws *config.WebSocket,
	newRand func() *rand.Rand,
) *GameHandler {
	if newRand == nil {
		newRand = mines.NewRand
	}

	handler := &GameHandler{
		logger:  logger,
		repo:    repo,
		ws:      ws,
		newRand: newRand,
	}

	return handler
}

// engineStatus maps engine errors to HTTP status codes.
func engineStatus(err error) int {
	switch {
	case errors.Is(err, mines.ErrInvalidConfiguration),
		errors.Is(err, mines.ErrInsufficientSpace),
		errors.Is(err, mines.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (g GameHandler) sendEngineError(w http.ResponseWriter, err error) {
	status := engineStatus(err)
	if status == http.StatusInternalServerError {
		g.logger.Error("unexpected engine error", slog.Any("error", err))
	}
	SendErrorOrLog(w, g.logger, status, err)
}

func (g GameHandler) fetchSession(w http.ResponseWriter, r *http.Request) (*repository.GameSession, bool) {
	sessionId, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return nil, false
	}
	session, err := g.repo.FetchGameSession(r.Context(), sessionId)
	if err != nil {
		g.sendEngineError(w, err)
		return nil, false
	}
	return session, true
}

// NewGame creates a session. When row and col are given, the first cell is
// revealed right away.
func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dto, err := ParseCreateNewGameDTO(query)
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	params, err := dto.GameParams()
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	game, err := mines.New(params, g.newRand())
	if err != nil {
		g.sendEngineError(w, err)
		return
	}

	if query.Has("row") || query.Has("col") {
		p, err := ParsePosition(query)
		if err != nil {
			SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
			return
		}
		if err := game.RevealCell(p); err != nil {
			g.sendEngineError(w, err)
			return
		}
	}

	session, err := g.repo.CreateGameSession(r.Context(), game)
	if err != nil {
		g.logger.Error("unable to create game session", slog.Any("error", err))
		SendErrorOrLog(w, g.logger, http.StatusInternalServerError, err)
		return
	}

	g.logger.Debug("created game session",
		slog.String("id", session.GameSessionId.String()),
		slog.Int("width", params.Width),
		slog.Int("height", params.Height),
		slog.Int("mine_count", params.MineCount),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	SendJSONOrLog(w, g.logger, NewGameSessionDTO(session.Snapshot()))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, ok := g.fetchSession(w, r)
	if !ok {
		return
	}
	SendJSONOrLog(w, g.logger, NewGameSessionDTO(session.Snapshot()))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move, err := ParseGameMove(query.Get("move"))
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	p, err := ParsePosition(query)
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	session, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	snapshot, err := session.Update(func(game *mines.GameState) error {
		return move.Apply(game, p)
	})
	if err != nil {
		g.sendEngineError(w, err)
		return
	}

	SendJSONOrLog(w, g.logger, NewGameSessionDTO(snapshot))
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sessionId, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err := g.repo.DeleteGameSession(r.Context(), sessionId); err != nil {
		g.sendEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
