package tui

import (
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func newTestUI(t *testing.T, params mines.GameParams) (*UI, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 30)
	t.Cleanup(screen.Fini)

	log := logrus.New()
	log.SetOutput(io.Discard)

	u, err := New(screen, params, func() *rand.Rand {
		return rand.New(rand.NewPCG(1, 2))
	}, log)
	require.NoError(t, err)
	return u, screen
}

func screenText(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := range w {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func click(u *UI, p mines.Point, button tcell.ButtonMask) {
	x := originX + p.Col*cellWidth + 1
	y := originY + p.Row
	u.HandleEvent(tcell.NewEventMouse(x, y, button, tcell.ModNone))
	u.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func key(u *UI, k tcell.Key, r rune) bool {
	return u.HandleEvent(tcell.NewEventKey(k, r, tcell.ModNone))
}

func TestLeftClickReveals(t *testing.T) {
	u, screen := newTestUI(t, mines.GameParams{Width: 5, Height: 4, MineCount: 0})

	u.Draw()
	require.Equal(t, "Mines left: 0", strings.TrimSpace(screenText(screen, 0)))
	require.Contains(t, screenText(screen, originY), "■")

	click(u, mines.Point{Row: 1, Col: 1}, tcell.ButtonPrimary)
	require.Equal(t, mines.Won, u.Game().Outcome())

	u.Draw()
	require.Contains(t, screenText(screen, 0), "You won!")
}

func TestRightClickTogglesFlag(t *testing.T) {
	u, screen := newTestUI(t, mines.GameParams{Width: 9, Height: 9, MineCount: 10})
	p := mines.Point{Row: 0, Col: 2}

	click(u, p, tcell.ButtonSecondary)
	cell, err := u.Game().Cell(p)
	require.NoError(t, err)
	require.Equal(t, mines.Flagged, cell.Visibility)

	u.Draw()
	require.Contains(t, screenText(screen, 0), "Mines left: 9")
	require.Contains(t, screenText(screen, originY), "►")

	click(u, p, tcell.ButtonSecondary)
	cell, err = u.Game().Cell(p)
	require.NoError(t, err)
	require.Equal(t, mines.Hidden, cell.Visibility)
}

func TestHeldButtonActsOnce(t *testing.T) {
	u, _ := newTestUI(t, mines.GameParams{Width: 9, Height: 9, MineCount: 10})
	x, y := originX+1, originY

	u.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonSecondary, tcell.ModNone))
	u.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonSecondary, tcell.ModNone))

	require.Equal(t, 1, u.Game().FlagCount())
}

func TestClicksOutsideGridAreIgnored(t *testing.T) {
	u, _ := newTestUI(t, mines.GameParams{Width: 3, Height: 3, MineCount: 1})

	click(u, mines.Point{Row: -1, Col: -1}, tcell.ButtonPrimary)
	click(u, mines.Point{Row: 0, Col: 10}, tcell.ButtonPrimary)
	require.Equal(t, mines.AwaitingFirstReveal, u.Game().Phase())
}

func TestKeyboardPlay(t *testing.T) {
	u, _ := newTestUI(t, mines.GameParams{Width: 9, Height: 9, MineCount: 10})
	require.Equal(t, mines.Point{Row: 4, Col: 4}, u.cursor)

	key(u, tcell.KeyUp, 0)
	key(u, tcell.KeyLeft, 0)
	require.Equal(t, mines.Point{Row: 3, Col: 3}, u.cursor)
	for range 10 {
		key(u, tcell.KeyDown, 0)
	}
	require.Equal(t, mines.Point{Row: 8, Col: 3}, u.cursor)

	key(u, tcell.KeyRune, 'f')
	require.Equal(t, 1, u.Game().FlagCount())
	key(u, tcell.KeyRune, 'f')
	require.Equal(t, 0, u.Game().FlagCount())

	key(u, tcell.KeyRune, ' ')
	require.NotEqual(t, mines.AwaitingFirstReveal, u.Game().Phase())

	key(u, tcell.KeyRune, 'r')
	require.Equal(t, mines.AwaitingFirstReveal, u.Game().Phase())

	require.False(t, key(u, tcell.KeyRune, 'x'))
	require.True(t, key(u, tcell.KeyRune, 'q'))
	require.True(t, key(u, tcell.KeyEscape, 0))
}

func TestLossShowsWholeBoard(t *testing.T) {
	u, screen := newTestUI(t, mines.GameParams{Width: 9, Height: 9, MineCount: 10})

	click(u, mines.Point{Row: 4, Col: 4}, tcell.ButtonPrimary)
	if u.Game().Outcome() == mines.Won {
		t.Skip("opening cleared the board")
	}
	mine := u.Game().MinePositions()[0]
	click(u, mine, tcell.ButtonPrimary)
	require.Equal(t, mines.Lost, u.Game().Outcome())

	u.Draw()
	require.Contains(t, screenText(screen, 0), "You hit a mine")
	mineRow := screenText(screen, originY+mine.Row)
	require.Contains(t, mineRow, "☼")
	for row := range 9 {
		require.NotContains(t, screenText(screen, originY+row), "■")
	}
}

func TestLevelMenu(t *testing.T) {
	u, screen := newTestUI(t, mines.GameParams{})
	require.True(t, u.InMenu())
	require.Nil(t, u.Game())

	u.Draw()
	require.Equal(t, "Choose your level:", strings.TrimSpace(screenText(screen, 0)))
	require.Contains(t, screenText(screen, originY), config.Easy.String())
	require.Contains(t, screenText(screen, originY+2), config.Hard.String())

	key(u, tcell.KeyUp, 0)
	require.Equal(t, 0, u.choice)
	key(u, tcell.KeyDown, 0)
	key(u, tcell.KeyDown, 0)
	key(u, tcell.KeyDown, 0)
	require.Equal(t, 2, u.choice)
	key(u, tcell.KeyUp, 0)

	require.False(t, key(u, tcell.KeyEnter, 0))
	require.False(t, u.InMenu())
	require.Equal(t, config.Medium.GameParams, u.Game().Params())
	require.Equal(t, mines.AwaitingFirstReveal, u.Game().Phase())

	u.Draw()
	require.Contains(t, screenText(screen, 0), "Mines left: 40")
}

func TestLevelMenuByNumberAndClick(t *testing.T) {
	u, _ := newTestUI(t, mines.GameParams{})

	key(u, tcell.KeyRune, '3')
	require.Equal(t, config.Hard.GameParams, u.Game().Params())

	key(u, tcell.KeyRune, 'd')
	require.True(t, u.InMenu())
	require.Equal(t, 2, u.choice)

	key(u, tcell.KeyRune, '9')
	require.True(t, u.InMenu())

	click(u, mines.Point{Row: 0, Col: 0}, tcell.ButtonPrimary)
	require.False(t, u.InMenu())
	require.Equal(t, config.Easy.GameParams, u.Game().Params())
	require.Equal(t, mines.AwaitingFirstReveal, u.Game().Phase())

	key(u, tcell.KeyRune, 'd')
	require.True(t, key(u, tcell.KeyRune, 'q'))
}
