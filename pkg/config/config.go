// Package config loads world configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for fields left empty.
const (
	DefaultWidth    = 64
	DefaultHeight   = 64
	DefaultCellSize = 16
	DefaultRadius   = 5
	DefaultDelay    = 300 * time.Millisecond
	DefaultPort     = 3000
)

// Default returns a configuration with every field at its default.
func Default() *World {
	w := &World{}
	w.ApplyDefaults()
	return w
}

// ApplyDefaults fills zero fields.
func (w *World) ApplyDefaults() {
	if w.Version == "" {
		w.Version = "0.1.0"
	}
	if w.Grid.Width == 0 {
		w.Grid.Width = DefaultWidth
	}
	if w.Grid.Height == 0 {
		w.Grid.Height = DefaultHeight
	}
	if w.Grid.CellSize == 0 {
		w.Grid.CellSize = DefaultCellSize
	}
	if w.Zoning.Radius == 0 {
		w.Zoning.Radius = DefaultRadius
	}
	if w.Spawner.Delay == 0 {
		w.Spawner.Delay = DefaultDelay
	}
	if w.Server.Port == 0 {
		w.Server.Port = DefaultPort
	}
	if w.Log.Level == "" {
		w.Log.Level = "info"
	}
	if w.Log.Format == "" {
		w.Log.Format = "text"
	}
}

// Load reads a world configuration from a YAML file. Relative catalog paths
// are resolved against the file's directory.
func Load(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var w World
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	w.ApplyDefaults()

	if w.Spawner.Catalog != "" && !filepath.IsAbs(w.Spawner.Catalog) {
		w.Spawner.Catalog = filepath.Join(filepath.Dir(path), w.Spawner.Catalog)
	}
	return &w, nil
}

// LoadProject loads the configuration from a project directory.
// It looks for world.yaml in the given directory.
func LoadProject(projectDir string) (*World, error) {
	return Load(filepath.Join(projectDir, "world.yaml"))
}
