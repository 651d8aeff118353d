package config

import (
	"time"

	"github.com/ChicagoDave/citycore/pkg/grid"
)

// World is the top-level configuration of a simulated city.
type World struct {
	Version string     `yaml:"version" json:"version"`
	Grid    GridDef    `yaml:"grid" json:"grid"`
	Zoning  ZoningDef  `yaml:"zoning" json:"zoning"`
	Spawner SpawnerDef `yaml:"spawner" json:"spawner"`
	Server  ServerDef  `yaml:"server" json:"server"`
	Log     LogDef     `yaml:"log" json:"log"`
}

type GridDef struct {
	Width    int `yaml:"width" json:"width"`
	Height   int `yaml:"height" json:"height"`
	CellSize int `yaml:"cell_size" json:"cell_size"`
}

// Dims returns the grid extent.
func (g GridDef) Dims() grid.Dims {
	return grid.Dims{Width: g.Width, Height: g.Height}
}

type ZoningDef struct {
	Radius int `yaml:"radius" json:"radius"`
}

type SpawnerDef struct {
	// Delay between placements; negative disables the pause.
	Delay   time.Duration `yaml:"delay" json:"delay"`
	Seed    int64         `yaml:"seed" json:"seed"`
	Catalog string        `yaml:"catalog" json:"catalog,omitempty"`
}

type ServerDef struct {
	Port int `yaml:"port" json:"port"`
}

type LogDef struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}
