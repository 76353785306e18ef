package mines

import (
	"fmt"
	"log/slog"

	"github.com/zyedidia/generic/mapset"
)

// placeMines picks MineCount distinct cells uniformly at random outside
// excluded, then fills in the adjacent counts of every other cell.
func (s *GameState) placeMines(excluded mapset.Set[Point]) error {
	width, height, mineCount := s.params.Unpack()

	/*
	 * Write down the list of possible mine locations.
	 */
	candidates := make([]Point, 0, width*height)
	for row := range height {
		for col := range width {
			p := Point{Row: row, Col: col}
			if !excluded.Has(p) {
				candidates = append(candidates, p)
			}
		}
	}

	if mineCount > len(candidates) {
		return fmt.Errorf("%w: %d mines, %d free cells outside the opening",
			ErrInsufficientSpace, mineCount, len(candidates))
	}

	/*
	 * Now pick n off the list at random.
	 */
	k := len(candidates)
	for range mineCount {
		i := s.rnd.IntN(k)
		s.mines.Put(candidates[i])
		k--
		candidates[i] = candidates[k]
	}

	for row := range height {
		for col := range width {
			p := Point{Row: row, Col: col}
			cell := s.at(p)
			if s.mines.Has(p) {
				cell.Content = Mine
				continue
			}
			n := 0
			for _, q := range Neighbors(width, height, p) {
				if s.mines.Has(q) {
					n++
				}
			}
			cell.Content = Content(n)
		}
	}

	Log.Debug("placed mines",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("mines", mineCount),
		slog.Int("candidates", len(candidates)),
	)
	return nil
}
