package grid

// Rect is an inclusive cell rectangle with Min <= Max on both axes.
type Rect struct {
	Min Cell `json:"min"`
	Max Cell `json:"max"`
}

// RectOf returns the normalized rectangle spanned by two corner cells.
func RectOf(a, b Cell) Rect {
	return Rect{
		Min: Cell{min(a.X, b.X), min(a.Y, b.Y)},
		Max: Cell{max(a.X, b.X), max(a.Y, b.Y)},
	}
}

// Width returns the number of columns covered.
func (r Rect) Width() int { return r.Max.X - r.Min.X + 1 }

// Height returns the number of rows covered.
func (r Rect) Height() int { return r.Max.Y - r.Min.Y + 1 }

// Contains reports whether c lies inside r.
func (r Rect) Contains(c Cell) bool {
	return c.X >= r.Min.X && c.X <= r.Max.X && c.Y >= r.Min.Y && c.Y <= r.Max.Y
}

// Each calls fn for every cell of r in row-major order.
func (r Rect) Each(fn func(Cell)) {
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			fn(Cell{x, y})
		}
	}
}

// Bounds returns the bounding rectangle of cells. ok is false for an empty set.
func Bounds(cells []Cell) (r Rect, ok bool) {
	if len(cells) == 0 {
		return Rect{}, false
	}
	r = Rect{Min: cells[0], Max: cells[0]}
	for _, c := range cells[1:] {
		r.Min.X = min(r.Min.X, c.X)
		r.Min.Y = min(r.Min.Y, c.Y)
		r.Max.X = max(r.Max.X, c.X)
		r.Max.Y = max(r.Max.Y, c.Y)
	}
	return r, true
}

// Size is a footprint extent in cells.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Dims is the extent of a grid, used for boundary checks.
type Dims struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// InBounds reports whether c is a valid cell of the grid.
func (d Dims) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < d.Width && c.Y < d.Height
}

// OnEdge reports whether c lies on the outermost ring of the grid.
func (d Dims) OnEdge(c Cell) bool {
	return c.X == 0 || c.Y == 0 || c.X >= d.Width-1 || c.Y >= d.Height-1
}

// Index returns the row-major index of an in-bounds cell.
func (d Dims) Index(c Cell) int {
	return c.Y*d.Width + c.X
}
