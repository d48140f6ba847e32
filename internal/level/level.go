package level

import "fmt"

// Level is a loaded, validated level.
type Level struct {
	Index int    // 0-indexed position in the source
	Title string // Display name
	Pack  string // Source name
	Grid  *Grid
}

// Number returns the 1-indexed level number.
func (l *Level) Number() int {
	return l.Index + 1
}

// ResolveDims returns the dimensions a source's files must have:
// the pack's own declaration wins over the fallback.
func ResolveDims(src Source, fallback Dims) Dims {
	if d := src.Dims(); !d.IsZero() {
		return d
	}
	return fallback
}

// Load reads, parses and validates level index of src.
// A missing file yields ErrLevelNotFound and an unusable one
// ErrMalformedLevel; no partially populated grid is ever returned.
func Load(src Source, index int, dims Dims) (*Level, error) {
	data, err := src.Read(index)
	if err != nil {
		return nil, err
	}

	grid, err := Parse(data, dims)
	if err != nil {
		return nil, fmt.Errorf("%s level %d: %w", src.Name(), index+1, err)
	}
	if err := Validate(grid); err != nil {
		return nil, fmt.Errorf("%s level %d: %w", src.Name(), index+1, err)
	}

	return &Level{
		Index: index,
		Title: src.Title(index),
		Pack:  src.Name(),
		Grid:  grid,
	}, nil
}
