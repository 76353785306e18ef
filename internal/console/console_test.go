package console

import (
	"bytes"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func newConsole(input string) (*Console, *bytes.Buffer) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	var out bytes.Buffer
	return New(strings.NewReader(input), &out, log), &out
}

func newGame(t *testing.T, params mines.GameParams) *mines.GameState {
	t.Helper()
	game, err := mines.New(params, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return game
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		input string
		want  mines.Point
		err   bool
	}{
		{"2 3", mines.Point{Row: 2, Col: 3}, false},
		{"23", mines.Point{Row: 2, Col: 3}, false},
		{"12, 14", mines.Point{Row: 12, Col: 14}, false},
		{"  7\t0 ", mines.Point{Row: 7, Col: 0}, false},
		{"ab", mines.Point{}, true},
		{"1 2 3", mines.Point{}, true},
		{"123", mines.Point{}, true},
		{"", mines.Point{}, true},
	}
	for _, test := range tests {
		p, err := parsePoint(test.input)
		if test.err {
			require.Error(t, err, test.input)
			continue
		}
		require.NoError(t, err, test.input)
		require.Equal(t, test.want, p)
	}
}

func TestChooseDifficulty(t *testing.T) {
	c, out := newConsole("impossible\nMoyen\n")
	d, err := c.ChooseDifficulty()
	require.NoError(t, err)
	require.Equal(t, config.Medium, d)
	require.Contains(t, out.String(), "Invalid level")

	c, _ = newConsole("")
	_, err = c.ChooseDifficulty()
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestPlayWins(t *testing.T) {
	c, out := newConsole("x\nc\nab\n9 9\n11\n")
	game := newGame(t, mines.GameParams{Width: 4, Height: 3, MineCount: 0})

	outcome, err := c.Play(game)
	require.NoError(t, err)
	require.Equal(t, mines.Won, outcome)

	text := out.String()
	require.Contains(t, text, "The action must be c, f or r.")
	require.Contains(t, text, "coordinates must be integers")
	require.Contains(t, text, "Invalid coordinates: 0 <= row < 3, 0 <= column < 4")
	require.Contains(t, text, "You won!")
}

func TestPlayLoses(t *testing.T) {
	game := newGame(t, mines.GameParams{Width: 9, Height: 9, MineCount: 10})
	require.NoError(t, game.RevealCell(mines.Point{Row: 4, Col: 4}))
	mine := game.MinePositions()[0]

	script := strings.Join([]string{
		"f", "0 0",
		"r", "0 0",
		"f", "4 4",
		"c", fmt.Sprintf("%d %d", mine.Row, mine.Col),
	}, "\n") + "\n"
	c, out := newConsole(script)

	outcome, err := c.Play(game)
	require.NoError(t, err)
	require.Equal(t, mines.Lost, outcome)
	require.Contains(t, out.String(), "you hit a mine")
	require.Contains(t, out.String(), "☼")
}

func TestPlayStopsOnEOF(t *testing.T) {
	c, _ := newConsole("c\n")
	game := newGame(t, mines.GameParams{Width: 9, Height: 9, MineCount: 10})

	outcome, err := c.Play(game)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.Equal(t, mines.InProgress, outcome)
}

func TestPlayReportsInsufficientSpace(t *testing.T) {
	c, out := newConsole("c\n1 1\nc\n0 0\n")
	game := newGame(t, mines.GameParams{Width: 3, Height: 3, MineCount: 1})

	_, err := c.Play(game)
	if err != nil {
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	}
	require.Contains(t, out.String(), "Too many mines to open there")
	require.NotEqual(t, mines.AwaitingFirstReveal, game.Phase())
}

func TestRenderBoard(t *testing.T) {
	game := newGame(t, mines.GameParams{Width: 3, Height: 2, MineCount: 0})
	require.NoError(t, game.SetFlag(mines.Point{Row: 1, Col: 2}))

	board := RenderBoard(game)
	require.Equal(t, 5, strings.Count(board, "■"))
	require.Equal(t, 1, strings.Count(board, "►"))
	for _, header := range []string{"0", "1", "2"} {
		require.Contains(t, board, header)
	}
}
