package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// localConfigPath is checked relative to the working directory.
const localConfigPath = "configs/slimekoban.yaml"

// Load loads the configuration.
// Search order: customPath -> ~/.slimekoban/config.{yaml,toml} ->
// ./configs/slimekoban.yaml -> embedded default -> hardcoded default.
// Files only need to set the values they change.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(customPath, data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	for _, name := range []string{"config.yaml", "config.toml"} {
		if path := userConfigPath(name); path != "" {
			if data, err := os.ReadFile(path); err == nil {
				if cfg, err := decode(path, data); err == nil {
					return cfg, nil
				}
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(localConfigPath); err == nil {
		if cfg, err := decode(localConfigPath, data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decode("default.yaml", defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decode parses data on top of the hardcoded defaults. The format is
// chosen by the file extension: .toml is TOML, anything else YAML.
func decode(path string, data []byte) (Config, error) {
	cfg := Default()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Dir returns ~/.slimekoban, or empty if home is unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".slimekoban")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}
