// Package areaselect turns drag gestures into rectangular cell selections.
package areaselect

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/ChicagoDave/citycore/pkg/grid"
)

// Options configures a Selector.
type Options struct {
	Overlay      grid.Overlay
	Color        color.Color
	HoverPreview bool
	OnSelect     func(start, end grid.Cell)
}

// Selector tracks a single drag gesture and previews the covered rectangle.
// A new Selector starts disabled.
type Selector struct {
	overlay  grid.Overlay
	color    color.Color
	hover    bool
	onSelect func(start, end grid.Cell)

	enabled  bool
	dragging bool
	start    grid.Cell
}

// New creates a disabled selector.
func New(opts Options) *Selector {
	s := &Selector{
		overlay:  opts.Overlay,
		color:    opts.Color,
		hover:    opts.HoverPreview,
		onSelect: opts.OnSelect,
	}
	if s.overlay == nil {
		s.overlay = grid.NopOverlay{}
	}
	if s.color == nil {
		s.color = colornames.Black
	}
	return s
}

// Enable starts listening to drag input.
func (s *Selector) Enable() {
	s.enabled = true
}

// Disable clears the preview and drops any drag in progress without emitting.
func (s *Selector) Disable() {
	s.enabled = false
	s.dragging = false
	s.start = grid.Cell{}
	s.overlay.Clear()
}

// Enabled reports whether drag input is handled.
func (s *Selector) Enabled() bool { return s.enabled }

// Dragging reports whether a gesture is in progress.
func (s *Selector) Dragging() bool { return s.dragging }

// SetColor sets the preview tint.
func (s *Selector) SetColor(c color.Color) {
	s.color = c
}

// Color returns the preview tint.
func (s *Selector) Color() color.Color { return s.color }

// SetHoverPreview toggles the 1x1 preview under the pointer.
func (s *Selector) SetHoverPreview(on bool) {
	s.hover = on
	if !on && !s.dragging {
		s.overlay.Clear()
	}
}

// DragStart remembers the first cell of the gesture.
func (s *Selector) DragStart(c grid.Cell) {
	if !s.enabled {
		return
	}
	s.dragging = true
	s.start = c
	s.overlay.Show(grid.RectOf(c, c), s.color)
}

// DragMove previews the rectangle between the start cell and c.
func (s *Selector) DragMove(c grid.Cell) {
	if !s.enabled || !s.dragging {
		return
	}
	s.overlay.Show(grid.RectOf(s.start, c), s.color)
}

// DragEnd emits the selection with the raw start and end cells. Callers
// normalize the rectangle themselves.
func (s *Selector) DragEnd(c grid.Cell) {
	if !s.enabled || !s.dragging {
		return
	}
	start := s.start
	s.dragging = false
	s.start = grid.Cell{}
	s.overlay.Clear()
	if s.onSelect != nil {
		s.onSelect(start, c)
	}
}

// Hover previews the cell under the pointer when hover preview is on and no
// drag is in progress.
func (s *Selector) Hover(c grid.Cell) {
	if !s.enabled || s.dragging || !s.hover {
		return
	}
	s.overlay.Show(grid.RectOf(c, c), s.color)
}
