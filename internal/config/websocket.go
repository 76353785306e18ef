package config

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

// NewWebSocket reads WS_ALLOWED_ORIGINS, a comma separated list of origins
// allowed to open a game connection. Unset or empty allows any origin.
func NewWebSocket() (*WebSocket, error) {
	origins, err := allowedOrigins(os.Getenv("WS_ALLOWED_ORIGINS"))
	if err != nil {
		return nil, err
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(origins) == 0 {
				return true
			}
			_, ok := origins[r.Header.Get("Origin")]
			return ok
		},
	}

	return &WebSocket{Upgrader: upgrader}, nil
}

func allowedOrigins(s string) (map[string]struct{}, error) {
	origins := make(map[string]struct{})
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		u, err := url.Parse(o)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid origin in WS_ALLOWED_ORIGINS: %q", o)
		}
		origins[u.Scheme+"://"+u.Host] = struct{}{}
	}
	return origins, nil
}
