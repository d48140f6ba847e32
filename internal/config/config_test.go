package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/slimekoban/internal/level"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// isolate points HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded default = %+v\nhardcoded = %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadYAMLAndTOMLParity(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "custom.yaml")
	tomlPath := filepath.Join(dir, "custom.toml")

	writeFile(t, yamlPath, `
levels:
  dir: ./my-levels
  rows: 0
  policy: wrap
rules:
  vacuous_completion: true
audio:
  music: false
tick_rate: 60
`)
	writeFile(t, tomlPath, `
tick_rate = 60

[levels]
dir = "./my-levels"
rows = 0
policy = "wrap"

[rules]
vacuous_completion = true

[audio]
music = false
`)

	fromYAML, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("Load yaml failed: %v", err)
	}
	fromTOML, err := Load(tomlPath)
	if err != nil {
		t.Fatalf("Load toml failed: %v", err)
	}
	if fromYAML != fromTOML {
		t.Errorf("yaml and toml differ:\n%+v\n%+v", fromYAML, fromTOML)
	}

	if fromYAML.Levels.Dir != "./my-levels" || fromYAML.TickRate != 60 || !fromYAML.Rules.VacuousCompletion {
		t.Errorf("values not applied: %+v", fromYAML)
	}
	// Unset values keep their defaults.
	if fromYAML.Levels.Cols != level.DefaultCols || fromYAML.Audio.Volume != 0.4 {
		t.Errorf("defaults lost: %+v", fromYAML)
	}
	if p, _ := fromYAML.Levels.BoundsPolicy(); p != level.PolicyWrap {
		t.Errorf("policy = %q, want wrap", p)
	}
	if d := fromYAML.Levels.Dims(); d.Rows != 0 || d.Cols != level.DefaultCols {
		t.Errorf("Dims() = %+v", d)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, bad, "levels = [")
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("bad toml error = %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(work, localConfigPath), "tick_rate: 20\n")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TickRate != 20 {
		t.Errorf("local config not used: tick_rate = %d", cfg.TickRate)
	}

	writeFile(t, filepath.Join(home, ".slimekoban", "config.toml"), "tick_rate = 15\n")
	cfg, _ = Load("")
	if cfg.TickRate != 15 {
		t.Errorf("user toml should win over local: tick_rate = %d", cfg.TickRate)
	}

	writeFile(t, filepath.Join(home, ".slimekoban", "config.yaml"), "tick_rate: 10\n")
	cfg, _ = Load("")
	if cfg.TickRate != 10 {
		t.Errorf("user yaml should win: tick_rate = %d", cfg.TickRate)
	}

	custom := filepath.Join(work, "custom.yaml")
	writeFile(t, custom, "tick_rate: 5\n")
	cfg, _ = Load(custom)
	if cfg.TickRate != 5 {
		t.Errorf("custom path should win: tick_rate = %d", cfg.TickRate)
	}
}

func TestLoadSkipsBrokenUserConfig(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".slimekoban", "config.yaml"), "tick_rate: [oops\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TickRate != Default().TickRate {
		t.Errorf("tick_rate = %d, want default", cfg.TickRate)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad policy", func(c *Config) { c.Levels.Policy = "bounce" }, "policy"},
		{"negative rows", func(c *Config) { c.Levels.Rows = -1 }, "negative"},
		{"no levels", func(c *Config) { c.Levels.Pack = "" }, "levels.pack"},
		{"volume", func(c *Config) { c.Audio.Volume = 2 }, "volume"},
		{"tick rate", func(c *Config) { c.TickRate = 0 }, "tick_rate"},
		{"tile size", func(c *Config) { c.Window.TileSize = 0 }, "tile_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}
