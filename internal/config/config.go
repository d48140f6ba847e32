// Package config provides YAML/TOML configuration loading for slimekoban.
package config

import (
	"fmt"

	"github.com/vovakirdan/slimekoban/internal/level"
	"github.com/vovakirdan/slimekoban/internal/sokoban"
)

// Config contains all slimekoban settings.
type Config struct {
	Levels   LevelsConfig  `yaml:"levels" toml:"levels"`
	Rules    sokoban.Rules `yaml:"rules" toml:"rules"`
	Audio    AudioConfig   `yaml:"audio" toml:"audio"`
	Window   WindowConfig  `yaml:"window" toml:"window"`
	Storage  StorageConfig `yaml:"storage" toml:"storage"`
	Server   ServerConfig  `yaml:"server" toml:"server"`
	TickRate int           `yaml:"tick_rate" toml:"tick_rate"` // Terminal frames per second
}

// LevelsConfig selects the level pack and how it is sequenced.
type LevelsConfig struct {
	Pack   string `yaml:"pack" toml:"pack"`     // Registered pack, used when Dir is empty
	Dir    string `yaml:"dir" toml:"dir"`       // Directory of level files
	Rows   int    `yaml:"rows" toml:"rows"`     // 0 infers the size from the files
	Cols   int    `yaml:"cols" toml:"cols"`
	Policy string `yaml:"policy" toml:"policy"` // "clamp" or "wrap"
}

// AudioConfig controls background music in the window frontend.
type AudioConfig struct {
	Music  bool    `yaml:"music" toml:"music"`
	Volume float64 `yaml:"volume" toml:"volume"` // 0.0 - 1.0
}

// WindowConfig controls the window frontend.
type WindowConfig struct {
	TileSize int  `yaml:"tile_size" toml:"tile_size"` // Pixels per tile
	Scale    int  `yaml:"scale" toml:"scale"`         // Window size multiplier
	VSync    bool `yaml:"vsync" toml:"vsync"`
}

// StorageConfig selects the records database.
// A DSN starting with postgres:// uses PostgreSQL, anything else is a
// SQLite file path. Empty means ~/.slimekoban/records.db.
type StorageConfig struct {
	DSN string `yaml:"dsn" toml:"dsn"`
}

// ServerConfig contains SSH server defaults.
type ServerConfig struct {
	Host    string `yaml:"host" toml:"host"`
	Port    int    `yaml:"port" toml:"port"`
	HostKey string `yaml:"host_key" toml:"host_key"`
}

// Dims returns the expected grid size.
func (c LevelsConfig) Dims() level.Dims {
	return level.Dims{Rows: c.Rows, Cols: c.Cols}
}

// BoundsPolicy parses the configured sequence policy.
func (c LevelsConfig) BoundsPolicy() (level.Policy, error) {
	return level.ParsePolicy(c.Policy)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := c.Levels.BoundsPolicy(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Levels.Rows < 0 || c.Levels.Cols < 0 {
		return fmt.Errorf("config: level size %dx%d must not be negative", c.Levels.Cols, c.Levels.Rows)
	}
	if c.Levels.Pack == "" && c.Levels.Dir == "" {
		return fmt.Errorf("config: either levels.pack or levels.dir is required")
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("config: audio.volume %.2f out of range 0-1", c.Audio.Volume)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.TickRate)
	}
	if c.Window.TileSize <= 0 || c.Window.Scale <= 0 {
		return fmt.Errorf("config: window tile_size and scale must be positive")
	}
	return nil
}
