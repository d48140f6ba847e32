// Package registry provides a global registry for level packs.
// Packs register themselves in init() functions, allowing the CLI and the
// platforms to discover and open packs without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/slimekoban/internal/level"
)

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID     string
	Title  string
	Levels int
}

// Factory opens a fresh source for a pack.
type Factory func() (level.Source, error)

type pack struct {
	factory Factory
	title   string
}

var (
	packs = make(map[string]pack)
	mu    sync.RWMutex
)

// Register adds a level pack to the registry.
// Typically called from a pack's init() function.
// Panics if a pack with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := packs[id]; exists {
		panic(fmt.Sprintf("registry: pack %q already registered", id))
	}

	packs[id] = pack{factory: f, title: title}
}

// List returns information about all registered packs, sorted by ID.
// Packs that fail to open are listed with zero levels.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(packs))
	for id, p := range packs {
		info := PackInfo{ID: id, Title: p.title}
		if src, err := p.factory(); err == nil {
			info.Levels = src.Len()
		}
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Open creates a source for the pack with the given ID.
// Returns an error if the pack ID is not registered.
func Open(id string) (level.Source, error) {
	mu.RLock()
	p, ok := packs[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown pack %q", id)
	}

	src, err := p.factory()
	if err != nil {
		return nil, fmt.Errorf("registry: opening pack %q: %w", id, err)
	}
	return src, nil
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := packs[id]
	return ok
}
