package mines

import (
	"fmt"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

var Log *slog.Logger = slog.Default()

type Phase uint8

const (
	AwaitingFirstReveal Phase = iota
	InProgress
	Won
	Lost
)

func (p Phase) String() string {
	switch p {
	case AwaitingFirstReveal:
		return "awaiting first reveal"
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

func (p Phase) Terminal() bool {
	return p == Won || p == Lost
}

type GameParams struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	MineCount int `json:"mine_count"`
}

func (p GameParams) Unpack() (width, height, mineCount int) {
	return p.Width, p.Height, p.MineCount
}

func (p GameParams) CellCount() int {
	return p.Width * p.Height
}

func (p GameParams) PointInBounds(pt Point) bool {
	return inBounds(p.Width, p.Height, pt)
}

func (p GameParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d",
			ErrInvalidConfiguration, p.Width, p.Height)
	}
	if p.MineCount < 0 || p.MineCount >= p.CellCount() {
		return fmt.Errorf("%w: mine count must be in [0, %d), got %d",
			ErrInvalidConfiguration, p.CellCount(), p.MineCount)
	}
	return nil
}

// GameState is a single game. It is not safe for concurrent use; callers
// must serialize access themselves.
type GameState struct {
	params   GameParams
	grid     Grid
	mines    mapset.Set[Point]
	revealed int
	phase    Phase
	rnd      *rand.Rand
}

func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// New creates a game with every cell hidden. Mines are placed on the first
// call to [GameState.RevealCell]. A nil r is replaced with [NewRand].
func New(params GameParams, r *rand.Rand) (*GameState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = NewRand()
	}
	grid := make(Grid, params.CellCount())
	for i := range grid {
		grid[i] = Cell{Content: Unset, Visibility: Hidden}
	}
	state := &GameState{
		params: params,
		grid:   grid,
		mines:  mapset.New[Point](),
		phase:  AwaitingFirstReveal,
		rnd:    r,
	}
	return state, nil
}

func (s *GameState) Params() GameParams {
	return s.params
}

func (s *GameState) Width() int {
	return s.params.Width
}

func (s *GameState) Height() int {
	return s.params.Height
}

func (s *GameState) MineCount() int {
	return s.params.MineCount
}

func (s *GameState) Phase() Phase {
	return s.phase
}

// Outcome reports the phase with AwaitingFirstReveal folded into InProgress.
func (s *GameState) Outcome() Phase {
	if s.phase == AwaitingFirstReveal {
		return InProgress
	}
	return s.phase
}

// RevealedCount is the number of safe cells opened by play. Cells disclosed
// when the game ends are not counted.
func (s *GameState) RevealedCount() int {
	return s.revealed
}

func (s *GameState) FlagCount() int {
	n := 0
	for _, c := range s.grid {
		if c.Visibility == Flagged {
			n++
		}
	}
	return n
}

// MinePositions returns the mines in row-major order. It is empty until the
// first reveal.
func (s *GameState) MinePositions() []Point {
	positions := make([]Point, 0, s.mines.Size())
	s.mines.Each(func(p Point) {
		positions = append(positions, p)
	})
	slices.SortFunc(positions, func(a, b Point) int {
		return s.index(a) - s.index(b)
	})
	return positions
}

func (s *GameState) Cell(p Point) (Cell, error) {
	if err := s.checkBounds(p); err != nil {
		return Cell{}, err
	}
	return s.grid[s.index(p)], nil
}

// Grid returns a copy of the cells in row-major order.
func (s *GameState) Grid() Grid {
	return slices.Clone(s.grid)
}

// GameState implements [fmt.Stringer]
func (s *GameState) String() string {
	return s.grid.ToString(s.params.Width)
}

func (s *GameState) index(p Point) int {
	return p.Row*s.params.Width + p.Col
}

func (s *GameState) at(p Point) *Cell {
	return &s.grid[s.index(p)]
}

func (s *GameState) checkBounds(p Point) error {
	if !s.params.PointInBounds(p) {
		return fmt.Errorf("%w: %s not in %dx%d grid",
			ErrOutOfBounds, p, s.params.Width, s.params.Height)
	}
	return nil
}

// RevealCell opens the cell at p. The first call places the mines so that p
// and its neighbours are safe. Revealing a zero cell opens the whole
// connected zero region and its border.
//
// Revealing a flagged or already revealed cell, or any cell after the game
// has ended, does nothing.
func (s *GameState) RevealCell(p Point) error {
	if err := s.checkBounds(p); err != nil {
		return err
	}
	if s.phase.Terminal() {
		return nil
	}

	if s.phase == AwaitingFirstReveal {
		excluded := mapset.New[Point]()
		excluded.Put(p)
		for _, q := range Neighbors(s.params.Width, s.params.Height, p) {
			excluded.Put(q)
		}
		if err := s.placeMines(excluded); err != nil {
			return err
		}
		s.phase = InProgress
	}

	s.open(p)

	if s.phase != Lost && s.revealed == s.params.CellCount()-s.params.MineCount {
		s.phase = Won
		s.disclose()
	}
	return nil
}

func (s *GameState) open(p Point) {
	cell := s.at(p)
	if cell.Visibility != Hidden {
		return
	}

	if cell.Content.IsMine() {
		cell.Visibility = Revealed
		s.phase = Lost
		s.disclose()
		return
	}

	todo := []Point{p}
	for len(todo) > 0 {
		q := todo[len(todo)-1]
		todo = todo[:len(todo)-1]

		c := s.at(q)
		if c.Visibility != Hidden {
			continue
		}
		c.Visibility = Revealed
		s.revealed++

		/* a zero cell has no mine around it, so its neighbours are safe */
		if c.Content == 0 {
			for _, n := range Neighbors(s.params.Width, s.params.Height, q) {
				if s.at(n).Visibility == Hidden {
					todo = append(todo, n)
				}
			}
		}
	}
}

// disclose reveals every cell, flagged ones included.
func (s *GameState) disclose() {
	for i := range s.grid {
		s.grid[i].Visibility = Revealed
	}
	Log.Debug("game over",
		slog.String("phase", s.phase.String()),
		slog.Int("revealed", s.revealed),
	)
}

func (s *GameState) SetFlag(p Point) error {
	if err := s.checkBounds(p); err != nil {
		return err
	}
	if s.phase.Terminal() {
		return nil
	}
	if cell := s.at(p); cell.Visibility == Hidden {
		cell.Visibility = Flagged
	}
	return nil
}

func (s *GameState) ClearFlag(p Point) error {
	if err := s.checkBounds(p); err != nil {
		return err
	}
	if s.phase.Terminal() {
		return nil
	}
	if cell := s.at(p); cell.Visibility == Flagged {
		cell.Visibility = Hidden
	}
	return nil
}

// ToggleFlag flags a hidden cell or unflags a flagged one.
func (s *GameState) ToggleFlag(p Point) error {
	if err := s.checkBounds(p); err != nil {
		return err
	}
	if s.at(p).Visibility == Flagged {
		return s.ClearFlag(p)
	}
	return s.SetFlag(p)
}
