package road

import "github.com/ChicagoDave/citycore/pkg/grid"

// Connections records which sides of a road cell join a neighboring road.
type Connections struct {
	Top    bool `json:"top" yaml:"top"`
	Right  bool `json:"right" yaml:"right"`
	Bottom bool `json:"bottom" yaml:"bottom"`
	Left   bool `json:"left" yaml:"left"`
}

// Has reports whether side d is connected.
func (c Connections) Has(d grid.Direction) bool {
	switch d {
	case grid.Top:
		return c.Top
	case grid.Right:
		return c.Right
	case grid.Bottom:
		return c.Bottom
	case grid.Left:
		return c.Left
	}
	return false
}

// With returns c with side d set to v.
func (c Connections) With(d grid.Direction, v bool) Connections {
	switch d {
	case grid.Top:
		c.Top = v
	case grid.Right:
		c.Right = v
	case grid.Bottom:
		c.Bottom = v
	case grid.Left:
		c.Left = v
	}
	return c
}

// Or merges two flag sets.
func (c Connections) Or(o Connections) Connections {
	return Connections{
		Top:    c.Top || o.Top,
		Right:  c.Right || o.Right,
		Bottom: c.Bottom || o.Bottom,
		Left:   c.Left || o.Left,
	}
}

// Count returns the number of connected sides.
func (c Connections) Count() int {
	n := 0
	for _, d := range grid.Directions {
		if c.Has(d) {
			n++
		}
	}
	return n
}

// Open returns the number of unconnected sides.
func (c Connections) Open() int {
	return 4 - c.Count()
}

// Cell is a placed road tile.
type Cell struct {
	grid.Cell   `yaml:",inline"`
	Connections Connections `json:"connections" yaml:"connections"`
}

// Archetype classifies the cell's connection pattern.
func (c Cell) Archetype() Archetype {
	return Classify(c.Connections)
}
