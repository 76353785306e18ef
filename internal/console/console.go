// Package console is a line-oriented front end: the player types an action
// and a coordinate, and the board is printed after every move.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

const (
	actionReveal = "c"
	actionFlag   = "f"
	actionUnflag = "r"
)

type Console struct {
	in  *bufio.Scanner
	out io.Writer
	log logrus.FieldLogger
}

func New(in io.Reader, out io.Writer, log logrus.FieldLogger) *Console {
	return &Console{
		in:  bufio.NewScanner(in),
		out: out,
		log: log,
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// readLine prompts and returns the next trimmed line. Running out of input
// is reported as [io.ErrUnexpectedEOF].
func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) ChooseDifficulty() (config.Difficulty, error) {
	names := make([]string, 0, len(config.Difficulties))
	for _, d := range config.Difficulties {
		names = append(names, d.Name)
	}
	c.printf("Choose a level: %s\n", strings.Join(names, " / "))
	for {
		line, err := c.readLine("Level: ")
		if err != nil {
			return config.Difficulty{}, err
		}
		d, err := config.ParseDifficulty(line)
		if err == nil {
			return d, nil
		}
		c.printf("Invalid level, try again...\n")
	}
}

func (c *Console) readAction() (string, error) {
	for {
		action, err := c.readLine("Action (c to reveal / f to flag / r to remove a flag): ")
		if err != nil {
			return "", err
		}
		switch action = strings.ToLower(action); action {
		case actionReveal, actionFlag, actionUnflag:
			return action, nil
		}
		c.printf("The action must be c, f or r.\n")
	}
}

// parsePoint accepts "row col" or, for small grids, the compact "rc" form.
func parsePoint(s string) (mines.Point, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) == 1 && len(fields[0]) == 2 {
		fields = []string{fields[0][:1], fields[0][1:]}
	}
	if len(fields) != 2 {
		return mines.Point{}, errors.New("expected a row and a column")
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return mines.Point{}, errors.New("coordinates must be integers")
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return mines.Point{}, errors.New("coordinates must be integers")
	}
	return mines.Point{Row: row, Col: col}, nil
}

func (c *Console) readPoint(params mines.GameParams) (mines.Point, error) {
	for {
		line, err := c.readLine("Coordinates (row then column, e.g. 2 3): ")
		if err != nil {
			return mines.Point{}, err
		}
		p, err := parsePoint(line)
		if err != nil {
			c.printf("%s.\n", err)
			continue
		}
		if !params.PointInBounds(p) {
			c.printf("Invalid coordinates: 0 <= row < %d, 0 <= column < %d\n",
				params.Height, params.Width)
			continue
		}
		return p, nil
	}
}

// Play runs game until it is won or lost and returns the outcome.
func (c *Console) Play(game *mines.GameState) (mines.Phase, error) {
	for !game.Outcome().Terminal() {
		c.printf("%s\n", RenderBoard(game))

		action, err := c.readAction()
		if err != nil {
			return game.Outcome(), err
		}
		p, err := c.readPoint(game.Params())
		if err != nil {
			return game.Outcome(), err
		}

		switch action {
		case actionReveal:
			err = game.RevealCell(p)
		case actionFlag:
			err = game.SetFlag(p)
		case actionUnflag:
			err = game.ClearFlag(p)
		}
		c.log.WithFields(logrus.Fields{
			"action": action,
			"row":    p.Row,
			"col":    p.Col,
			"phase":  game.Phase().String(),
		}).Debug("move")

		if errors.Is(err, mines.ErrInsufficientSpace) {
			c.printf("Too many mines to open there, try a corner.\n")
		} else if err != nil {
			return game.Outcome(), err
		}
	}

	c.printf("%s\n", RenderBoard(game))
	if game.Outcome() == mines.Won {
		c.printf("Well done! You won!\n")
	} else {
		c.printf("Lost... you hit a mine.\n")
	}
	return game.Outcome(), nil
}
