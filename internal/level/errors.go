package level

import "errors"

var (
	// ErrLevelNotFound is returned when a level file does not exist.
	ErrLevelNotFound = errors.New("level: level file not found")

	// ErrMalformedLevel is returned when a level file does not describe a
	// complete, playable grid of the expected dimensions.
	ErrMalformedLevel = errors.New("level: malformed level")

	// ErrLevelOutOfRange is returned when a level index falls outside the
	// sequence and the sequence does not wrap.
	ErrLevelOutOfRange = errors.New("level: level index out of range")

	// ErrOutOfBounds is returned by Grid.Tile for coordinates outside the grid.
	ErrOutOfBounds = errors.New("level: coordinate out of bounds")
)
