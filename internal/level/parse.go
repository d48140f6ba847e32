package level

import (
	"bufio"
	"bytes"
	"fmt"
	"unicode"
)

// Built-in level dimensions. Every file of the built-in pack has exactly
// this many rows and columns.
const (
	DefaultRows = 9
	DefaultCols = 12
)

// Dims is the expected size of a level grid.
// The zero value means "infer from the file".
type Dims struct {
	Rows int `yaml:"rows" toml:"rows"`
	Cols int `yaml:"cols" toml:"cols"`
}

// DefaultDims returns the dimensions of the built-in pack.
func DefaultDims() Dims {
	return Dims{Rows: DefaultRows, Cols: DefaultCols}
}

// IsZero reports whether no dimensions were set.
func (d Dims) IsZero() bool {
	return d.Rows <= 0 && d.Cols <= 0
}

// String returns "COLSxROWS".
func (d Dims) String() string {
	return fmt.Sprintf("%dx%d", d.Cols, d.Rows)
}

// Parse reads a level file into a grid.
// With non-zero dims the file must have exactly dims.Rows rows of
// dims.Cols tiles; anything smaller or larger is ErrMalformedLevel.
func Parse(data []byte, dims Dims) (*Grid, error) {
	var rows [][]TileKind

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		row := parseRow(scanner.Text())
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLevel, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedLevel)
	}

	if !dims.IsZero() {
		if len(rows) != dims.Rows {
			return nil, fmt.Errorf("%w: %d rows, want %d", ErrMalformedLevel, len(rows), dims.Rows)
		}
		for y, row := range rows {
			if len(row) != dims.Cols {
				return nil, fmt.Errorf("%w: row %d has %d tiles, want %d", ErrMalformedLevel, y+1, len(row), dims.Cols)
			}
		}
	}

	return NewGrid(rows)
}

// parseRow converts one line of a level file, skipping whitespace.
func parseRow(line string) []TileKind {
	var row []TileKind
	for _, r := range line {
		if unicode.IsSpace(r) {
			continue
		}
		row = append(row, TileFromSymbol(r))
	}
	return row
}

// Validate checks that a grid is playable: it must contain exactly one
// player spawn.
func Validate(g *Grid) error {
	_, err := g.PlayerSpawn()
	return err
}
