package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

const reapInterval = time.Minute

type App struct {
	logger  *slog.Logger
	router  *http.ServeMux
	repo    *repository.Store
	ws      *config.WebSocket
	newRand func() *rand.Rand
}

// New builds the application. A nil newRand seeds every game randomly.
func New(logger *slog.Logger, newRand func() *rand.Rand) (*App, error) {
	ws, err := config.NewWebSocket()
	if err != nil {
		return nil, fmt.Errorf("unable to configure websocket: %w", err)
	}

	app := &App{
		logger:  logger,
		router:  http.NewServeMux(),
		repo:    repository.New(),
		ws:      ws,
		newRand: newRand,
	}
	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.BasePath(config.BasePath()),
		middleware.Cors(),
		middleware.Logging(a.logger),
	)
}

// Start serves until ctx is cancelled, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	ttl, err := config.SessionTTL()
	if err != nil {
		return err
	}

	addr := config.Port()
	server := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: time.Second * 15,
		IdleTimeout:       time.Second * 60,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return a.repo.Reap(gCtx, ttl, reapInterval, func(n int) {
			a.logger.Info("expired idle game sessions", slog.Int("count", n))
		})
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	a.logger.Info("server listening",
		slog.String("addr", addr),
		slog.String("base path", config.BasePath()),
		slog.Duration("session ttl", ttl),
	)

	return g.Wait()
}
