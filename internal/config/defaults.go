package config

import (
	_ "embed"

	"github.com/vovakirdan/slimekoban/internal/level"
)

//go:embed defaults/slimekoban.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Levels: LevelsConfig{
			Pack:   "classic",
			Rows:   level.DefaultRows,
			Cols:   level.DefaultCols,
			Policy: string(level.PolicyClamp),
		},
		Audio: AudioConfig{
			Music:  true,
			Volume: 0.4,
		},
		Window: WindowConfig{
			TileSize: 16,
			Scale:    3,
			VSync:    true,
		},
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    23234,
			HostKey: ".ssh/slimekoban_ed25519",
		},
		TickRate: 30,
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
