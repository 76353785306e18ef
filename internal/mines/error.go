package mines

import "errors"

var (
	// ErrInvalidConfiguration is returned by [New] for non-positive
	// dimensions or a mine count outside [0, width*height).
	ErrInvalidConfiguration = errors.New("invalid game configuration")

	// ErrInsufficientSpace is returned by the first reveal when the mines do
	// not fit outside the opening cell and its neighbours.
	ErrInsufficientSpace = errors.New("not enough space for mines")

	// ErrOutOfBounds is returned by every operation given a point outside
	// the grid. The game is left unchanged.
	ErrOutOfBounds = errors.New("point out of bounds")
)
