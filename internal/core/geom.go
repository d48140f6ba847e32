// Package core provides fundamental types shared by the simulation and the
// platform layers. It contains no external dependencies (especially no Bubble
// Tea or Ebitengine) to keep game logic pure and testable.
package core

import "fmt"

// Coord is a cell position on a tile grid.
// X is the column and Y the row; Y increases downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns the neighbouring Coord in the given direction.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Dir is one of the four cardinal directions.
type Dir int

const (
	DirNone Dir = iota
	North
	South
	East
	West
)

// Delta returns the unit vector for the direction.
// DirNone and unknown values return (0, 0).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Valid reports whether d is one of the four cardinal directions.
func (d Dir) Valid() bool {
	return d >= North && d <= West
}

// String returns a human-readable name for the direction.
func (d Dir) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	default:
		return "None"
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
