package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

type CreateNewGameDTO struct {
	Width      int    `schema:"width"`
	Height     int    `schema:"height"`
	MineCount  int    `schema:"mine_count"`
	Difficulty string `schema:"difficulty"`
}

func ParseCreateNewGameDTO(src map[string][]string) (CreateNewGameDTO, error) {
	var dto CreateNewGameDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

// GameParams resolves a named difficulty or the explicit dimensions.
func (dto CreateNewGameDTO) GameParams() (mines.GameParams, error) {
	if dto.Difficulty != "" {
		d, err := config.ParseDifficulty(dto.Difficulty)
		if err != nil {
			return mines.GameParams{}, err
		}
		return d.GameParams, nil
	}
	params := mines.GameParams{
		Width:     dto.Width,
		Height:    dto.Height,
		MineCount: dto.MineCount,
	}
	return params, params.Validate()
}

type PositionDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(src map[string][]string) (mines.Point, error) {
	var dto PositionDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&dto, src); err != nil {
		return mines.Point{}, err
	}
	return mines.Point{Row: dto.Row, Col: dto.Col}, nil
}

type GameMove uint8

const (
	Open GameMove = iota + 1
	Flag
	Unflag
	Toggle
	LAST_MOVE
)

func (m GameMove) String() string {
	switch m {
	case Open:
		return "Open"
	case Flag:
		return "Flag"
	case Unflag:
		return "Unflag"
	case Toggle:
		return "Toggle"
	default:
		return fmt.Sprintf("GameMove(%d)", uint8(m))
	}
}

var ErrBadMove error

func init() {
	var allowedMoves []string
	for i := 1; i < int(LAST_MOVE); i++ {
		allowedMoves = append(allowedMoves, "'"+GameMove(i).String()+"'")
	}
	ErrBadMove = fmt.Errorf(
		"move must be one of %s",
		strings.ToLower(strings.Join(allowedMoves, ", ")),
	)
}

func ParseGameMove(s string) (move GameMove, err error) {
	switch strings.ToLower(s) {
	case "open":
		move = Open
	case "flag":
		move = Flag
	case "unflag":
		move = Unflag
	case "toggle":
		move = Toggle
	default:
		err = ErrBadMove
	}
	return
}

func (m GameMove) Apply(game *mines.GameState, p mines.Point) error {
	switch m {
	case Open:
		return game.RevealCell(p)
	case Flag:
		return game.SetFlag(p)
	case Unflag:
		return game.ClearFlag(p)
	case Toggle:
		return game.ToggleFlag(p)
	}
	return errors.New("invalid move")
}

type GameSessionDTO struct {
	GameSessionId string     `json:"game_session_id"`
	Grid          [][]string `json:"grid"`
	Width         int        `json:"width"`
	Height        int        `json:"height"`
	MineCount     int        `json:"mine_count"`
	FlagCount     int        `json:"flag_count"`
	RevealedCount int        `json:"revealed_count"`
	Phase         string     `json:"phase"`
	Outcome       string     `json:"outcome"`
	StartedAt     int64      `json:"started_at"`
	EndedAt       *int64     `json:"ended_at,omitempty"`
}

// NewGameSessionDTO renders the grid the way a player sees it: hidden and
// flagged cells never expose their content.
func NewGameSessionDTO(s repository.GameSnapshot) *GameSessionDTO {
	var endedAtInt *int64
	if s.EndedAt != nil {
		e := s.EndedAt.UnixMilli()
		endedAtInt = &e
	}
	grid := make([][]string, s.Params.Height)
	for row := range grid {
		grid[row] = make([]string, s.Params.Width)
		for col := range grid[row] {
			grid[row][col] = s.Grid[row*s.Params.Width+col].String()
		}
	}
	dto := &GameSessionDTO{
		GameSessionId: s.GameSessionId.String(),
		Grid:          grid,
		Width:         s.Params.Width,
		Height:        s.Params.Height,
		MineCount:     s.Params.MineCount,
		FlagCount:     s.FlagCount,
		RevealedCount: s.RevealedCount,
		Phase:         s.Phase.String(),
		Outcome:       s.Outcome.String(),
		StartedAt:     s.StartedAt.UnixMilli(),
		EndedAt:       endedAtInt,
	}
	return dto
}
