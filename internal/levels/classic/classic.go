// Package classic embeds the built-in level pack and registers it as
// "classic".
package classic

import (
	"embed"
	"io/fs"

	"github.com/vovakirdan/slimekoban/internal/level"
	"github.com/vovakirdan/slimekoban/internal/registry"
)

// ID is the registry name of the built-in pack.
const ID = "classic"

//go:embed data/*.txt data/pack.yaml
var data embed.FS

func init() {
	registry.Register(ID, "Slimekoban classic", New)
}

// New opens the embedded pack.
func New() (level.Source, error) {
	sub, err := fs.Sub(data, "data")
	if err != nil {
		return nil, err
	}
	return level.NewFSSource(sub, ID)
}
