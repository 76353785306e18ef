package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"u": 2,
	"t": 2,
}

var commandMoves = map[string]GameMove{
	"o": Open,
	"f": Flag,
	"u": Unflag,
	"t": Toggle,
}

func parseRowCol(twoStrings []string) (p mines.Point, err error) {
	if p.Row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if p.Col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

// executeCommand runs one line of the websocket protocol:
//
//	g          fetch the game
//	o row col  reveal
//	f row col  flag
//	u row col  remove flag
//	t row col  toggle flag
func executeCommand(game *mines.GameState, c string) error {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return nil
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return errors.New("invalid number of arguments")
	}
	move, ok := commandMoves[parts[0]]
	if !ok {
		return nil
	}
	p, err := parseRowCol(parts[1:])
	if err != nil {
		return err
	}
	return move.Apply(game, p)
}

func executeCommands(game *mines.GameState, text string) error {
	for _, c := range strings.Split(text, "\n") {
		if err := executeCommand(game, c); err != nil {
			return err
		}
		if game.Outcome().Terminal() {
			break
		}
	}
	return nil
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, ok := g.fetchSession(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade connection", slog.Any("error", err))
		return
	}
	defer c.Close()

	if err := c.WriteJSON(NewGameSessionDTO(session.Snapshot())); err != nil {
		g.logger.Error("unable to write to websocket", slog.Any("error", err))
		return
	}

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.logger.Warn("unable to read from websocket", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		text := strings.TrimSpace(string(message))
		g.logger.Debug("ws command", slog.String("text", text))

		snapshot, err := session.Update(func(game *mines.GameState) error {
			return executeCommands(game, text)
		})
		if err != nil {
			err = c.WriteJSON(wrapError(err))
		} else {
			err = c.WriteJSON(NewGameSessionDTO(snapshot))
		}
		if err != nil {
			g.logger.Error("unable to write to websocket", slog.Any("error", err))
			return
		}
	}
}
