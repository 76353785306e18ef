package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := New(logger, func() *rand.Rand {
		return rand.New(rand.NewPCG(1, 2))
	})
	require.NoError(t, err)
	return a
}

func TestHandlerServesUnderBasePath(t *testing.T) {
	t.Setenv("APP_BASE_PATH", "/api/")
	srv := httptest.NewServer(newTestApp(t).Handler())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/game?difficulty=easy", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusCreated, res.StatusCode)
	require.Equal(t, "http://example.com", res.Header.Get("Access-Control-Allow-Origin"))

	var dto struct {
		GameSessionId string `json:"game_session_id"`
		Width         int    `json:"width"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&dto))
	require.Equal(t, 10, dto.Width)

	res, err = http.Get(srv.URL + "/api/game/" + dto.GameSessionId)
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, err = http.Get(srv.URL + "/game/" + dto.GameSessionId)
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestStartStopsWithContext(t *testing.T) {
	t.Setenv("APP_PORT", "127.0.0.1:0")
	a := newTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- a.Start(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestStartRejectsBadSessionTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	err := newTestApp(t).Start(context.Background())
	require.ErrorContains(t, err, "SESSION_TTL")
}
