package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings are the editor-wide switches the painting core reads.
type Settings struct {
	AutoBorder     bool `yaml:"auto_border"`
	MaxSpawnRadius int  `yaml:"max_spawn_radius"`
	FillWindow     int  `yaml:"fill_window"`
	PreviewMargin  int  `yaml:"preview_margin"`
	MaxUndo        int  `yaml:"max_undo"`
}

func Default() Settings {
	return Settings{
		AutoBorder:     true,
		MaxSpawnRadius: 5,
		FillWindow:     100,
		PreviewMargin:  3,
		MaxUndo:        100,
	}
}

// Load reads a YAML settings file over the defaults. Keys missing from the
// file keep their default value.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("settings: load %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("settings: unmarshal %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML over the defaults and normalises out-of-range values.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), err
	}
	s.normalise()
	return s, nil
}

func (s *Settings) normalise() {
	d := Default()
	if s.MaxSpawnRadius < 1 {
		s.MaxSpawnRadius = d.MaxSpawnRadius
	}
	if s.FillWindow < 3 {
		s.FillWindow = d.FillWindow
	}
	if s.PreviewMargin < 0 {
		s.PreviewMargin = d.PreviewMargin
	}
	if s.MaxUndo < 1 {
		s.MaxUndo = d.MaxUndo
	}
}

// SpawnRadius clamps a requested spawn radius to [1, MaxSpawnRadius].
func (s Settings) SpawnRadius(r int) int {
	if r < 1 {
		return 1
	}
	if r > s.MaxSpawnRadius {
		return s.MaxSpawnRadius
	}
	return r
}
