package config

import (
	"fmt"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type Difficulty struct {
	Name string
	mines.GameParams
}

var (
	Easy   = Difficulty{"easy", mines.GameParams{Width: 10, Height: 8, MineCount: 10}}
	Medium = Difficulty{"medium", mines.GameParams{Width: 18, Height: 14, MineCount: 40}}
	Hard   = Difficulty{"hard", mines.GameParams{Width: 24, Height: 20, MineCount: 100}}
)

var Difficulties = []Difficulty{Easy, Medium, Hard}

var difficultyAliases = map[string]Difficulty{
	"easy":      Easy,
	"facile":    Easy,
	"medium":    Medium,
	"moyen":     Medium,
	"hard":      Hard,
	"difficile": Hard,
}

func ParseDifficulty(name string) (Difficulty, error) {
	d, ok := difficultyAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		names := make([]string, 0, len(Difficulties))
		for _, d := range Difficulties {
			names = append(names, "'"+d.Name+"'")
		}
		return Difficulty{}, fmt.Errorf(
			"difficulty must be one of %s", strings.Join(names, ", "),
		)
	}
	return d, nil
}

func (d Difficulty) String() string {
	return fmt.Sprintf("%s (%dx%d, %d mines)", d.Name, d.Width, d.Height, d.MineCount)
}
