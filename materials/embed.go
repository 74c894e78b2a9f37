package materials

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var DefaultsFS embed.FS

// DefaultFiles are the embedded material files loaded when no list is given.
var DefaultFiles = []string{"borders.yaml", "brushes.yaml"}

// Load reads name from dir when present on disk, otherwise from the
// embedded defaults.
func Load(dir, name string) ([]byte, error) {
	clean := cleanMaterialPath(name)
	if dir != "" {
		if data, err := os.ReadFile(diskMaterialPath(dir, clean)); err == nil {
			return data, nil
		}
	}
	return DefaultsFS.ReadFile(clean)
}

func cleanMaterialPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "materials/"); ok {
		return after
	}
	return s
}

func diskMaterialPath(dir, clean string) string {
	return filepath.Join(dir, filepath.FromSlash(clean))
}
