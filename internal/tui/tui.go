// Package tui is a full-screen terminal front end drawn with tcell. A level
// menu comes first unless the board size is given. Left click or space
// reveals a cell, right click or f toggles a flag.
package tui

import (
	"fmt"
	"math/rand/v2"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

const (
	originX   = 2
	originY   = 2
	cellWidth = 3
)

var (
	hiddenStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	flagStyle    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	mineStyle    = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	statusStyle  = tcell.StyleDefault.Bold(true)
	helpStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	numberStyles = []tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorBlue),
		tcell.StyleDefault.Foreground(tcell.ColorGreen),
		tcell.StyleDefault.Foreground(tcell.ColorRed),
		tcell.StyleDefault.Foreground(tcell.ColorNavy),
		tcell.StyleDefault.Foreground(tcell.ColorMaroon),
		tcell.StyleDefault.Foreground(tcell.ColorTeal),
		tcell.StyleDefault.Foreground(tcell.ColorPurple),
		tcell.StyleDefault.Foreground(tcell.ColorGray),
	}
)

type UI struct {
	screen  tcell.Screen
	params  mines.GameParams
	newRand func() *rand.Rand
	log     logrus.FieldLogger

	game    *mines.GameState
	cursor  mines.Point
	buttons tcell.ButtonMask
	message string

	menu   bool
	choice int
}

// New prepares a game on an initialised screen. Zero params open the level
// menu instead. The caller owns the screen.
func New(
	screen tcell.Screen,
	params mines.GameParams,
	newRand func() *rand.Rand,
	log logrus.FieldLogger,
) (*UI, error) {
	if newRand == nil {
		newRand = mines.NewRand
	}
	u := &UI{
		screen:  screen,
		params:  params,
		newRand: newRand,
		log:     log,
	}
	if params == (mines.GameParams{}) {
		u.openMenu()
		return u, nil
	}
	if err := u.restart(); err != nil {
		return nil, err
	}
	return u, nil
}

// Game is nil while the level menu is shown.
func (u *UI) Game() *mines.GameState {
	return u.game
}

func (u *UI) InMenu() bool {
	return u.menu
}

func (u *UI) openMenu() {
	u.menu = true
	u.game = nil
	u.message = ""
	u.choice = 0
	for i, d := range config.Difficulties {
		if d.GameParams == u.params {
			u.choice = i
		}
	}
}

func (u *UI) startLevel(i int) {
	d := config.Difficulties[i]
	u.params = d.GameParams
	if err := u.restart(); err != nil {
		u.message = err.Error()
		return
	}
	u.menu = false
	u.log.WithField("difficulty", d.Name).Info("level chosen")
}

func (u *UI) restart() error {
	game, err := mines.New(u.params, u.newRand())
	if err != nil {
		return err
	}
	u.game = game
	u.cursor = mines.Point{Row: u.params.Height / 2, Col: u.params.Width / 2}
	u.message = ""
	u.log.WithField("params", fmt.Sprintf("%+v", u.params)).Info("new game")
	return nil
}

// Run handles events until the player quits.
func (u *UI) Run() error {
	u.screen.EnableMouse()
	u.Draw()
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if quit := u.HandleEvent(ev); quit {
			return nil
		}
		u.Draw()
	}
}

// cellAt maps screen coordinates to a grid cell.
func (u *UI) cellAt(x, y int) (mines.Point, bool) {
	if x < originX || y < originY {
		return mines.Point{}, false
	}
	p := mines.Point{Row: y - originY, Col: (x - originX) / cellWidth}
	return p, u.params.PointInBounds(p)
}

func (u *UI) apply(action string, fn func(mines.Point) error, p mines.Point) {
	u.cursor = p
	err := fn(p)
	u.log.WithFields(logrus.Fields{
		"action": action,
		"row":    p.Row,
		"col":    p.Col,
		"phase":  u.game.Phase().String(),
	}).Debug("move")
	if err != nil {
		u.message = err.Error()
		u.log.WithError(err).Warn("move rejected")
		return
	}
	u.message = ""
}

// HandleEvent applies one terminal event and reports whether to quit.
func (u *UI) HandleEvent(ev tcell.Event) bool {
	if _, ok := ev.(*tcell.EventResize); ok {
		u.screen.Sync()
		return false
	}
	if u.menu {
		return u.handleMenuEvent(ev)
	}

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			u.moveCursor(-1, 0)
		case tcell.KeyDown:
			u.moveCursor(1, 0)
		case tcell.KeyLeft:
			u.moveCursor(0, -1)
		case tcell.KeyRight:
			u.moveCursor(0, 1)
		case tcell.KeyEnter:
			u.apply("reveal", u.game.RevealCell, u.cursor)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case ' ':
				u.apply("reveal", u.game.RevealCell, u.cursor)
			case 'f':
				u.apply("flag", u.game.ToggleFlag, u.cursor)
			case 'r':
				if err := u.restart(); err != nil {
					u.message = err.Error()
				}
			case 'd':
				u.openMenu()
			}
		}

	case *tcell.EventMouse:
		pressed := u.pressed(ev)
		p, ok := u.cellAt(ev.Position())
		if !ok {
			break
		}
		switch {
		case pressed&tcell.ButtonPrimary != 0:
			u.apply("reveal", u.game.RevealCell, p)
		case pressed&tcell.ButtonSecondary != 0:
			u.apply("flag", u.game.ToggleFlag, p)
		}
	}
	return false
}

// pressed returns the buttons that went down with this event.
func (u *UI) pressed(ev *tcell.EventMouse) tcell.ButtonMask {
	pressed := ev.Buttons() &^ u.buttons
	u.buttons = ev.Buttons()
	return pressed
}

func (u *UI) handleMenuEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			u.choice = max(u.choice-1, 0)
		case tcell.KeyDown:
			u.choice = min(u.choice+1, len(config.Difficulties)-1)
		case tcell.KeyEnter:
			u.startLevel(u.choice)
		case tcell.KeyRune:
			switch r := ev.Rune(); {
			case r == 'q':
				return true
			case r == ' ':
				u.startLevel(u.choice)
			case r >= '1' && int(r-'1') < len(config.Difficulties):
				u.startLevel(int(r - '1'))
			}
		}

	case *tcell.EventMouse:
		pressed := u.pressed(ev)
		_, y := ev.Position()
		i := y - originY
		if pressed&tcell.ButtonPrimary != 0 && i >= 0 && i < len(config.Difficulties) {
			u.startLevel(i)
		}
	}
	return false
}

func (u *UI) moveCursor(dr, dc int) {
	p := mines.Point{Row: u.cursor.Row + dr, Col: u.cursor.Col + dc}
	if u.params.PointInBounds(p) {
		u.cursor = p
	}
}

func (u *UI) drawText(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		u.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func glyph(c mines.Cell) (rune, tcell.Style) {
	switch c.Visibility {
	case mines.Hidden:
		return '■', hiddenStyle
	case mines.Flagged:
		return '►', flagStyle
	}
	content, _ := c.Visible()
	switch {
	case content.IsMine():
		return '☼', mineStyle
	case content == 0:
		return ' ', tcell.StyleDefault
	default:
		return rune('0' + content), numberStyles[content-1]
	}
}

func (u *UI) status() string {
	left := u.game.MineCount() - u.game.FlagCount()
	switch u.game.Outcome() {
	case mines.Won:
		return "You won! Press r to play again, q to quit"
	case mines.Lost:
		return "You hit a mine. Press r to play again, q to quit"
	default:
		return fmt.Sprintf("Mines left: %d", left)
	}
}

func (u *UI) drawMenu() {
	u.drawText(originX, 0, statusStyle, "Choose your level:")
	for i, d := range config.Difficulties {
		style := tcell.StyleDefault
		if i == u.choice {
			style = style.Reverse(true)
		}
		u.drawText(originX, originY+i, style, fmt.Sprintf("%d. %s", i+1, d))
	}
	u.drawText(originX, originY+len(config.Difficulties)+1, helpStyle,
		"arrows: choose  enter/click: play  q: quit")
}

func (u *UI) Draw() {
	u.screen.Clear()
	if u.menu {
		u.drawMenu()
		u.screen.Show()
		return
	}

	u.drawText(originX, 0, statusStyle, u.status())

	grid := u.game.Grid()
	for row := range u.params.Height {
		for col := range u.params.Width {
			r, style := glyph(grid[row*u.params.Width+col])
			x := originX + col*cellWidth
			y := originY + row
			if row == u.cursor.Row && col == u.cursor.Col {
				style = style.Reverse(true)
				u.screen.SetContent(x, y, ' ', nil, style)
				u.screen.SetContent(x+2, y, ' ', nil, style)
			}
			u.screen.SetContent(x+1, y, r, nil, style)
		}
	}

	helpY := originY + u.params.Height + 1
	if u.message != "" {
		u.drawText(originX, helpY, flagStyle, u.message)
		helpY++
	}
	u.drawText(originX, helpY, helpStyle,
		"click/space: reveal  right click/f: flag  arrows: move  r: restart  d: level  q: quit")

	u.screen.Show()
}
