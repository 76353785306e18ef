package console

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func symbol(c mines.Cell) string {
	switch c.Visibility {
	case mines.Hidden:
		return "■"
	case mines.Flagged:
		return "►"
	}
	switch content, _ := c.Visible(); {
	case content.IsMine():
		return "☼"
	case content == 0:
		return " "
	default:
		return content.String()
	}
}

// RenderBoard draws the grid as a bordered table with row and column
// indices.
func RenderBoard(game *mines.GameState) string {
	width := game.Width()
	grid := game.Grid()

	headers := make([]string, 0, width+1)
	headers = append(headers, "")
	for col := range width {
		headers = append(headers, strconv.Itoa(col))
	}

	rows := make([][]string, 0, game.Height())
	for row := range game.Height() {
		cells := make([]string, 0, width+1)
		cells = append(cells, strconv.Itoa(row))
		for col := range width {
			cells = append(cells, symbol(grid[row*width+col]))
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}
