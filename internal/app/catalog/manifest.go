// Package catalog loads the static benchmark catalog, filters it, and
// summarizes it.
//
// The catalog is described by a YAML manifest listing one delimited-text
// source per category:
//
//	sources:
//	  - category: molecular_vis
//	    path: sheets/molecular_vis.csv
//	  - category: main
//	    path: sheets/main.csv
//
// Relative paths are resolved against the manifest's directory.
package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrEmptyManifest is returned when a manifest lists no sources.
var ErrEmptyManifest = errors.New("catalog: manifest lists no sources")

// Source is one catalog resource.
type Source struct {
	Category string `yaml:"category"`
	Path     string `yaml:"path"`
}

// Manifest lists catalog sources in load order.
type Manifest struct {
	Sources []Source `yaml:"sources"`
}

// LoadManifest reads and validates the manifest at path.
func LoadManifest(fsys afero.Fs, path string) (Manifest, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Manifest{}, fmt.Errorf("catalog: read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("catalog: parse manifest %s: %w", path, err)
	}
	if len(m.Sources) == 0 {
		return Manifest{}, ErrEmptyManifest
	}

	base := filepath.Dir(path)
	seen := map[string]bool{}
	for i := range m.Sources {
		s := &m.Sources[i]
		s.Category = strings.TrimSpace(s.Category)
		s.Path = strings.TrimSpace(s.Path)
		if s.Path == "" {
			return Manifest{}, fmt.Errorf("catalog: source %d has no path", i+1)
		}
		if s.Category == "" {
			s.Category = strings.TrimSuffix(filepath.Base(s.Path), filepath.Ext(s.Path))
		}
		if seen[s.Category] {
			return Manifest{}, fmt.Errorf("catalog: duplicate category %q", s.Category)
		}
		seen[s.Category] = true
		if !filepath.IsAbs(s.Path) {
			s.Path = filepath.Join(base, s.Path)
		}
	}
	return m, nil
}
