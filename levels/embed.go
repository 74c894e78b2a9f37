package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Load reads a scenario from disk when name is an existing file path,
// otherwise from the embedded levels. The .yaml extension is optional.
func Load(name string) (*Scenario, error) {
	clean := cleanLevelName(name)
	data, err := os.ReadFile(name)
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(clean, filepath.Ext(clean))
	}
	return sc, nil
}

// Parse decodes a scenario document and fills in defaults.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if err := sc.normalise(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// List returns the embedded scenario names.
func List() ([]string, error) {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	return names, nil
}

func cleanLevelName(name string) string {
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	s = filepath.Base(s)
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}
