package world

import (
	"fmt"
	"image/color"
	"sort"
	"sync"

	"github.com/ChicagoDave/citycore/pkg/grid"
)

// Tile is a tileset index placed on a cell.
type Tile struct {
	grid.Cell
	Index int `json:"index"`
}

// Layer is an in-memory tile layer.
type Layer struct {
	mu    sync.Mutex
	tiles map[grid.Key]int
}

// NewLayer creates an empty layer.
func NewLayer() *Layer {
	return &Layer{tiles: make(map[grid.Key]int)}
}

// Put places a tile at c.
func (l *Layer) Put(c grid.Cell, tile int) {
	l.mu.Lock()
	l.tiles[c.Key()] = tile
	l.mu.Unlock()
}

// Remove clears c.
func (l *Layer) Remove(c grid.Cell) {
	l.mu.Lock()
	delete(l.tiles, c.Key())
	l.mu.Unlock()
}

// Reset replaces every tile.
func (l *Layer) Reset(tiles []Tile) {
	l.mu.Lock()
	l.tiles = make(map[grid.Key]int, len(tiles))
	for _, t := range tiles {
		l.tiles[t.Key()] = t.Index
	}
	l.mu.Unlock()
}

// Tiles returns the placed tiles ordered by x, then y.
func (l *Layer) Tiles() []Tile {
	l.mu.Lock()
	out := make([]Tile, 0, len(l.tiles))
	for k, idx := range l.tiles {
		out = append(out, Tile{Cell: k.Cell(), Index: idx})
	}
	l.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Cell.Less(out[j].Cell) })
	return out
}

// Preview is the rectangle currently highlighted by a tool.
type Preview struct {
	Rect  grid.Rect  `json:"rect"`
	Color color.RGBA `json:"-"`
	Hex   string     `json:"color"`
}

// previewOverlay keeps the latest preview for snapshots.
type previewOverlay struct {
	mu      sync.Mutex
	current *Preview
}

func (o *previewOverlay) Show(r grid.Rect, c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	o.mu.Lock()
	o.current = &Preview{Rect: r, Color: rgba, Hex: hexColor(rgba)}
	o.mu.Unlock()
}

func (o *previewOverlay) Clear() {
	o.mu.Lock()
	o.current = nil
	o.mu.Unlock()
}

func (o *previewOverlay) get() *Preview {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current == nil {
		return nil
	}
	p := *o.current
	return &p
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
