package mines

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNeighbors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		width, height int
		p             Point
		want          []Point
	}{
		{
			name: "interior", width: 9, height: 9, p: Point{4, 4},
			want: []Point{{3, 3}, {3, 4}, {3, 5}, {4, 3}, {4, 5}, {5, 3}, {5, 4}, {5, 5}},
		},
		{
			name: "top edge", width: 9, height: 9, p: Point{0, 4},
			want: []Point{{0, 3}, {0, 5}, {1, 3}, {1, 4}, {1, 5}},
		},
		{
			name: "left edge", width: 9, height: 9, p: Point{4, 0},
			want: []Point{{3, 0}, {3, 1}, {4, 1}, {5, 0}, {5, 1}},
		},
		{
			name: "top left corner", width: 9, height: 9, p: Point{0, 0},
			want: []Point{{0, 1}, {1, 0}, {1, 1}},
		},
		{
			name: "bottom right corner", width: 10, height: 8, p: Point{7, 9},
			want: []Point{{6, 8}, {6, 9}, {7, 8}},
		},
		{
			name: "single cell", width: 1, height: 1, p: Point{0, 0},
			want: []Point{},
		},
		{
			name: "single row", width: 5, height: 1, p: Point{0, 2},
			want: []Point{{0, 1}, {0, 3}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, test.want, Neighbors(test.width, test.height, test.p))
		})
	}
}

func TestNeighborsStayInBounds(t *testing.T) {
	t.Parallel()

	const width, height = 7, 4
	for row := range height {
		for col := range width {
			p := Point{row, col}
			nbhd := Neighbors(width, height, p)

			edges := 0
			if row == 0 || row == height-1 {
				edges++
			}
			if col == 0 || col == width-1 {
				edges++
			}
			want := map[int]int{0: 8, 1: 5, 2: 3}[edges]
			require.Len(t, nbhd, want, "neighbours of %s", p)

			seen := map[Point]bool{}
			for _, q := range nbhd {
				require.True(t, inBounds(width, height, q), "%s out of bounds", q)
				require.NotEqual(t, p, q)
				require.False(t, seen[q], "%s listed twice", q)
				require.LessOrEqual(t, absDiff(p.Row, q.Row), 1)
				require.LessOrEqual(t, absDiff(p.Col, q.Col), 1)
				seen[q] = true
			}
		}
	}
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
