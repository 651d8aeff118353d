package input

import "github.com/ChicagoDave/citycore/pkg/grid"

// Surface maps raw pointer samples in pixels to cell events. A primary press
// that moves to another cell before release becomes a drag; moves are only
// reported when the hovered cell changes.
type Surface struct {
	dims     grid.Dims
	cellSize int
	emit     func(Event)

	pressed  bool
	button   Button
	origin   grid.Cell
	dragging bool
	last     grid.Cell
	dragLast grid.Cell
	hovering bool
}

// NewSurface creates a surface over a grid whose cells are cellSize pixels
// wide. Events are passed to emit in order.
func NewSurface(dims grid.Dims, cellSize int, emit func(Event)) *Surface {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Surface{dims: dims, cellSize: cellSize, emit: emit}
}

// CellAt returns the cell under a pixel and whether it lies on the grid.
func (s *Surface) CellAt(px, py int) (grid.Cell, bool) {
	c := grid.Cell{X: floorDiv(px, s.cellSize), Y: floorDiv(py, s.cellSize)}
	return c, s.dims.InBounds(c)
}

// Press handles a button going down.
func (s *Surface) Press(px, py int, b Button) {
	c, ok := s.CellAt(px, py)
	if !ok {
		return
	}
	if b == Primary {
		s.pressed = true
		s.button = b
		s.origin = c
	}
	s.emit(Event{Kind: PointerDown, Cell: c, Button: b})
}

// Motion handles pointer movement.
func (s *Surface) Motion(px, py int) {
	c, ok := s.CellAt(px, py)
	if !ok {
		if !s.pressed {
			return
		}
		c = s.clamp(c)
	} else if !s.hovering || c != s.last {
		s.hovering = true
		s.last = c
		s.emit(Event{Kind: PointerMove, Cell: c})
	}
	if !s.pressed {
		return
	}
	if !s.dragging && c != s.origin {
		s.dragging = true
		s.dragLast = s.origin
		s.emit(Event{Kind: DragStart, Cell: s.origin})
	}
	if s.dragging {
		s.dragTo(c)
	}
}

func (s *Surface) dragTo(c grid.Cell) {
	if c == s.dragLast {
		return
	}
	s.dragLast = c
	s.emit(Event{Kind: DragMove, Cell: c})
}

// Release handles a button going up.
func (s *Surface) Release(px, py int) {
	c, ok := s.CellAt(px, py)
	if !ok {
		c = s.clamp(c)
	}
	if s.dragging {
		s.emit(Event{Kind: DragEnd, Cell: c})
	}
	if s.pressed || ok {
		s.emit(Event{Kind: PointerUp, Cell: c})
	}
	s.pressed = false
	s.dragging = false
}

func (s *Surface) clamp(c grid.Cell) grid.Cell {
	c.X = max(0, min(c.X, s.dims.Width-1))
	c.Y = max(0, min(c.Y, s.dims.Height-1))
	return c
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
