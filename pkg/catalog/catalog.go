// Package catalog holds the read-only list of buildings the spawner can
// place, keyed by zone type.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ChicagoDave/citycore/pkg/grid"
	"github.com/ChicagoDave/citycore/pkg/zone"
)

//go:embed default.yaml
var defaultCatalog []byte

// Spawnable is a building template.
type Spawnable struct {
	Name         string           `yaml:"name" json:"name"`
	Size         grid.Size        `yaml:"size" json:"size"`
	Tile         int              `yaml:"tile" json:"tile"`
	Orientations []grid.Direction `yaml:"orientations" json:"orientations"`
	Zone         zone.Type        `yaml:"-" json:"zone"`
}

// Allows reports whether the template may face d.
func (s Spawnable) Allows(d grid.Direction) bool {
	for _, o := range s.Orientations {
		if o == d {
			return true
		}
	}
	return false
}

// Extent returns the footprint width and height along the x and y axes when
// the building faces d. Side-facing buildings swap their dimensions.
func (s Spawnable) Extent(d grid.Direction) (x, y int) {
	if d == grid.Right || d == grid.Left {
		return s.Size.Height, s.Size.Width
	}
	return s.Size.Width, s.Size.Height
}

// Catalog is the set of spawnables grouped by zone type.
type Catalog struct {
	entries map[zone.Type][]Spawnable
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var raw map[zone.Type][]Spawnable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	c := &Catalog{entries: make(map[zone.Type][]Spawnable, len(raw))}
	for t, list := range raw {
		for i := range list {
			list[i].Zone = t
		}
		c.entries[t] = list
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// New builds a catalog from explicit entries. Each entry's Zone selects its
// group.
func New(entries ...Spawnable) *Catalog {
	c := &Catalog{entries: make(map[zone.Type][]Spawnable)}
	for _, e := range entries {
		c.entries[e.Zone] = append(c.entries[e.Zone], e)
	}
	return c
}

// Types returns the zone types that have entries, sorted by name.
func (c *Catalog) Types() []zone.Type {
	out := make([]zone.Type, 0, len(c.entries))
	for t := range c.entries {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// For returns the entries of a zone type.
func (c *Catalog) For(t zone.Type) []Spawnable {
	return c.entries[t]
}

// Len returns the total number of entries.
func (c *Catalog) Len() int {
	n := 0
	for _, list := range c.entries {
		n += len(list)
	}
	return n
}

// MaxExtent returns the longest footprint side of any entry of the type.
func (c *Catalog) MaxExtent(t zone.Type) int {
	m := 0
	for _, s := range c.entries[t] {
		m = max(m, s.Size.Width, s.Size.Height)
	}
	return m
}

// Fitting returns the entries of type t that may face d and whose oriented
// footprint fits within w by h cells.
func (c *Catalog) Fitting(t zone.Type, d grid.Direction, w, h int) []Spawnable {
	var out []Spawnable
	for _, s := range c.entries[t] {
		if !s.Allows(d) {
			continue
		}
		ex, ey := s.Extent(d)
		if ex <= w && ey <= h {
			out = append(out, s)
		}
	}
	return out
}
