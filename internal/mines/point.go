package mines

import "fmt"

type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Point implements [fmt.Stringer]
func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

func inBounds(width, height int, p Point) bool {
	return 0 <= p.Row && p.Row < height && 0 <= p.Col && p.Col < width
}

// Neighbors returns the cells of the 3x3 block centered on p that lie inside
// a width x height grid, excluding p itself. Interior cells have 8
// neighbours, edge cells 5 and corner cells 3.
//
// Both adjacent mine counts and flood fill go through this function.
func Neighbors(width, height int, p Point) []Point {
	nbhd := make([]Point, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			q := Point{Row: p.Row + dr, Col: p.Col + dc}
			if inBounds(width, height, q) {
				nbhd = append(nbhd, q)
			}
		}
	}
	return nbhd
}
