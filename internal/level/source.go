package level

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the optional pack description at the root of a level directory.
const ManifestFile = "pack.yaml"

// LevelExt is the extension of level files discovered without a manifest.
const LevelExt = ".txt"

// Source is an ordered collection of level files.
type Source interface {
	// Name identifies the pack (e.g. "classic").
	Name() string

	// Len returns the number of levels.
	Len() int

	// Title returns a display name for level i (0-indexed).
	Title(i int) string

	// Read returns the raw contents of level i.
	Read(i int) ([]byte, error)

	// Dims returns the grid size declared by the pack, or the zero Dims.
	Dims() Dims
}

// Manifest is the YAML structure of pack.yaml.
type Manifest struct {
	Name   string          `yaml:"name"`
	Rows   int             `yaml:"rows,omitempty"`
	Cols   int             `yaml:"cols,omitempty"`
	Levels []ManifestLevel `yaml:"levels"`
}

// ManifestLevel is a single level entry in pack.yaml.
type ManifestLevel struct {
	File  string `yaml:"file"`
	Title string `yaml:"title,omitempty"`
}

type entry struct {
	file  string
	title string
}

// FSSource reads levels from an fs.FS, such as an embedded directory.
type FSSource struct {
	fsys    fs.FS
	name    string
	dims    Dims
	entries []entry
}

// NewFSSource builds a source from the root of fsys.
// If pack.yaml exists it defines the level order, titles and dimensions;
// otherwise every *.txt file is used, ordered by the number in its name.
func NewFSSource(fsys fs.FS, name string) (*FSSource, error) {
	src := &FSSource{fsys: fsys, name: name}

	data, err := fs.ReadFile(fsys, ManifestFile)
	switch {
	case err == nil:
		if err := src.applyManifest(data); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		if err := src.scan(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("level: reading %s: %w", ManifestFile, err)
	}

	return src, nil
}

// NewDirSource builds a source from a directory on disk.
func NewDirSource(dir string) (*FSSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: directory %s", ErrLevelNotFound, dir)
		}
		return nil, fmt.Errorf("level: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("level: %s is not a directory", dir)
	}
	return NewFSSource(os.DirFS(dir), filepath.Base(filepath.Clean(dir)))
}

// applyManifest fills the source from pack.yaml contents.
func (s *FSSource) applyManifest(data []byte) error {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("level: parsing %s: %w", ManifestFile, err)
	}
	if m.Name != "" {
		s.name = m.Name
	}
	s.dims = Dims{Rows: m.Rows, Cols: m.Cols}
	for _, l := range m.Levels {
		if l.File == "" {
			return fmt.Errorf("level: %s: level entry without file", ManifestFile)
		}
		s.entries = append(s.entries, entry{file: l.File, title: l.Title})
	}
	return nil
}

// scan discovers level files in the root directory.
func (s *FSSource) scan() error {
	dirEntries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return fmt.Errorf("level: listing levels: %w", err)
	}

	for _, d := range dirEntries {
		if d.IsDir() || !strings.EqualFold(path.Ext(d.Name()), LevelExt) {
			continue
		}
		s.entries = append(s.entries, entry{file: d.Name()})
	}

	sort.SliceStable(s.entries, func(i, j int) bool {
		return lessLevelFile(s.entries[i].file, s.entries[j].file)
	})
	return nil
}

// Name returns the pack name.
func (s *FSSource) Name() string {
	return s.name
}

// Len returns the number of levels.
func (s *FSSource) Len() int {
	return len(s.entries)
}

// Dims returns the grid size declared in pack.yaml.
func (s *FSSource) Dims() Dims {
	return s.dims
}

// File returns the file name of level i, or "" if i is out of range.
func (s *FSSource) File(i int) string {
	if i < 0 || i >= len(s.entries) {
		return ""
	}
	return s.entries[i].file
}

// Title returns the manifest title of level i, or "Level N".
func (s *FSSource) Title(i int) string {
	if i < 0 || i >= len(s.entries) {
		return ""
	}
	if t := s.entries[i].title; t != "" {
		return t
	}
	return fmt.Sprintf("Level %d", i+1)
}

// Index returns the position of the level stored in file, or -1.
func (s *FSSource) Index(file string) int {
	for i, e := range s.entries {
		if e.file == file {
			return i
		}
	}
	return -1
}

// Read returns the contents of level i.
func (s *FSSource) Read(i int) ([]byte, error) {
	if i < 0 || i >= len(s.entries) {
		return nil, fmt.Errorf("%w: %d of %d", ErrLevelOutOfRange, i+1, len(s.entries))
	}

	file := s.entries[i].file
	data, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrLevelNotFound, file)
		}
		return nil, fmt.Errorf("level: reading %s: %w", file, err)
	}
	return data, nil
}

// lessLevelFile orders "level2.txt" before "level10.txt".
// Files without a number sort after numbered ones, by name.
func lessLevelFile(a, b string) bool {
	na, okA := fileNumber(a)
	nb, okB := fileNumber(b)
	switch {
	case okA && okB && na != nb:
		return na < nb
	case okA != okB:
		return okA
	default:
		return a < b
	}
}

// fileNumber extracts the first run of digits in a file name.
func fileNumber(name string) (int, bool) {
	start := strings.IndexFunc(name, unicode.IsDigit)
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(name) && name[end] >= '0' && name[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(name[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
