package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// Content is what a cell holds: a mine or the number of mines around it.
type Content int8

const (
	Unset Content = -2 // mines not placed yet
	Mine  Content = -1
)

func (c Content) IsMine() bool {
	return c == Mine
}

func (c Content) String() string {
	switch {
	case c == Mine:
		return "*"
	case c == 0:
		return "."
	case 0 < c && c <= 8:
		return strconv.Itoa(int(c))
	default:
		return "?"
	}
}

type Visibility uint8

const (
	Hidden Visibility = iota
	Revealed
	Flagged
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return "Visibility(" + strconv.Itoa(int(v)) + ")"
	}
}

type Cell struct {
	Content    Content
	Visibility Visibility
}

// Visible returns the cell content if the cell has been revealed.
func (c Cell) Visible() (Content, bool) {
	if c.Visibility != Revealed {
		return Unset, false
	}
	return c.Content, true
}

// Cell implements [fmt.Stringer]
func (c Cell) String() string {
	switch c.Visibility {
	case Hidden:
		return "#"
	case Flagged:
		return "F"
	default:
		return c.Content.String()
	}
}

// Grid is a row-major array of cells.
type Grid []Cell

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			fmt.Fprint(&b, g[y*width+x].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
